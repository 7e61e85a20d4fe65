// Package shtag builds shell command lines from tag-string templates,
// quoting every interpolated value so it lands in the command as a single
// word.
package shtag

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tagstr/tagstr/taglib"
)

// Command is a shell command string whose interpolated parts have already
// been quoted.  Interpolating a Command into another template splices it in
// verbatim, enabling recursive construction of pipelines and substitutions.
type Command string

// Sh assembles a command from a decoded part sequence.  Literal fragments
// pass through as written; each thunk's value is quoted unless it is
// already a Command.
func Sh(parts ...taglib.Part) (Command, error) {
	var b strings.Builder
	for _, part := range taglib.DecodeRaw(parts...) {
		switch p := part.(type) {
		case taglib.Text:
			b.WriteString(string(p))
		case *taglib.Thunk:
			switch value := p.Getvalue().(type) {
			case Command:
				b.WriteString(string(value))
			default:
				// It may be nonsensical to stringify arbitrary values,
				// but they will be safely quoted.
				b.WriteString(Quote(fmt.Sprint(value)))
			}
		default:
			return "", fmt.Errorf("shtag: unknown part type %T", part)
		}
	}
	return Command(b.String()), nil
}

var safeWord = regexp.MustCompile(`^[A-Za-z0-9@%+=:,./_-]+$`)

// Quote returns s escaped for use as a single word in a POSIX shell
// command: unquoted if every character is safe, otherwise single-quoted
// with embedded single quotes escaped.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if safeWord.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
