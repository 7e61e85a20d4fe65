// Package taglib defines the interpolation descriptor shared by every
// tag-string engine in this repository.
//
// A template decomposes into an ordered sequence of parts, each of which is
// either a literal text fragment or a Thunk: a deferred value accessor paired
// with the source text of the interpolated expression, an optional conversion
// and an optional format specification.  The engines (htmltag, shtag, sqltag)
// consume the sequence left to right; a thunk's Getvalue is invoked exactly
// once, at the moment its part is consumed, so side effects in interpolated
// expressions are strictly ordered no matter where the value lands.
package taglib

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Part is one element of a decoded template sequence.  There are exactly two
// implementations: Text and *Thunk.
type Part interface {
	part()
}

// Text is a literal template fragment.
type Text string

// Thunk is a deferred interpolation.
type Thunk struct {
	Getvalue   func() interface{} // invoked once, when the thunk is consumed
	Raw        string             // source text of the expression, never evaluated
	Conv       Conversion
	FormatSpec string
}

func (Text) part()   {}
func (*Thunk) part() {}

// Lit returns a literal part.
func Lit(s string) Part { return Text(s) }

// Val returns a thunk over an already-computed value.
func Val(raw string, v interface{}) *Thunk {
	return &Thunk{Getvalue: func() interface{} { return v }, Raw: raw}
}

// Deferred returns a thunk whose value is computed by fn when consumed.
func Deferred(raw string, fn func() interface{}) *Thunk {
	return &Thunk{Getvalue: fn, Raw: raw}
}

// DecodeRaw interprets backslash escape sequences (\n, \t, ☃, ...) in
// the literal fragments of a part sequence, leaving thunks untouched.
// Template text loaded from files arrives uninterpreted; this applies the
// same escapes a quoted string literal would.
func DecodeRaw(parts ...Part) []Part {
	var decoded = make([]Part, len(parts))
	for i, part := range parts {
		switch p := part.(type) {
		case Text:
			decoded[i] = Text(decodeEscapes(string(p)))
		default:
			decoded[i] = part
		}
	}
	return decoded
}

func decodeEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		if s[0] != '\\' || len(s) == 1 {
			r, size := utf8.DecodeRuneInString(s)
			b.WriteRune(r)
			s = s[size:]
			continue
		}
		if c := s[1]; c == '\'' || c == '"' {
			b.WriteByte(c)
			s = s[2:]
			continue
		}
		r, _, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			// Not a recognized escape; keep the backslash literally.
			b.WriteByte('\\')
			s = s[1:]
			continue
		}
		b.WriteRune(r)
		s = tail
	}
	return b.String()
}
