package htmltag

import "strings"

// placeholder marks where an interpolation occurred in the text handed to
// the tokenizer.  After escapePlaceholder doubles every "$", no user text
// can contain "x$x", so splitting on it is unambiguous; and the leading
// letter makes the tokenizer treat it as an ordinary tag or attribute name.
// A single sentinel value is reused for every interpolation: occurrences
// are disambiguated by order, not content.
//
// The exact value is an internal constant, not API.
const placeholder = "x$x"

func escapePlaceholder(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

func unescapePlaceholder(s string) string {
	return strings.ReplaceAll(s, "$$", "$")
}
