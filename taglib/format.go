package taglib

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Conversion is the pre-formatting transform attached to a thunk.
type Conversion byte

const (
	ConvNone  Conversion = 0
	ConvRepr  Conversion = 'r'
	ConvStr   Conversion = 's'
	ConvASCII Conversion = 'a'
)

// ErrBadConversion reports an unrecognized conversion flag.
var ErrBadConversion = errors.New("taglib: bad conversion")

// ErrBadFormatSpec reports a malformed or inapplicable format specification.
var ErrBadFormatSpec = errors.New("taglib: bad format spec")

// FormatValue applies a thunk's conversion and format spec to its value.  An
// empty spec after a conversion returns the converted value unchanged; a
// non-empty spec always yields a string.
func FormatValue(v interface{}, conv Conversion, spec string) (interface{}, error) {
	switch conv {
	case ConvNone:
	case ConvStr:
		v = stringify(v)
	case ConvRepr:
		v = repr(v)
	case ConvASCII:
		v = asciify(repr(v))
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadConversion, string(conv))
	}
	if spec == "" {
		return v, nil
	}
	return applySpec(v, spec)
}

func stringify(v interface{}) string {
	return fmt.Sprint(v)
}

// repr is the diagnostic form of a value: strings are quoted, everything
// else uses Go syntax.
func repr(v interface{}) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%#v", v)
}

func asciify(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case r > 0xffff:
			fmt.Fprintf(&b, `\U%08x`, r)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String()
}

// spec grammar: [[fill]align][sign][#][0][width][,][.precision][verb]
type formatSpec struct {
	fill      rune
	align     byte // '<', '>', '^', '=' or 0
	sign      byte // '+', '-', ' ' or 0
	alt       bool
	width     int
	comma     bool
	precision int // -1 when absent
	verb      byte
}

func parseSpec(spec string) (formatSpec, error) {
	var fs = formatSpec{fill: ' ', precision: -1}
	var rest = spec

	isAlign := func(b byte) bool { return b == '<' || b == '>' || b == '^' || b == '=' }

	// fill+align: the fill may be any rune followed by an align byte.
	if r, size := utf8.DecodeRuneInString(rest); size > 0 && len(rest) > size && isAlign(rest[size]) {
		fs.fill, fs.align = r, rest[size]
		rest = rest[size+1:]
	} else if len(rest) > 0 && isAlign(rest[0]) {
		fs.align = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-' || rest[0] == ' ') {
		fs.sign = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 && rest[0] == '#' {
		fs.alt = true
		rest = rest[1:]
	}
	if len(rest) > 0 && rest[0] == '0' {
		if fs.align == 0 {
			fs.align, fs.fill = '=', '0'
		}
		rest = rest[1:]
	}
	for len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
		fs.width = fs.width*10 + int(rest[0]-'0')
		rest = rest[1:]
	}
	if len(rest) > 0 && rest[0] == ',' {
		fs.comma = true
		rest = rest[1:]
	}
	if len(rest) > 0 && rest[0] == '.' {
		rest = rest[1:]
		if len(rest) == 0 || rest[0] < '0' || rest[0] > '9' {
			return fs, fmt.Errorf("%w: missing precision in %q", ErrBadFormatSpec, spec)
		}
		fs.precision = 0
		for len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
			fs.precision = fs.precision*10 + int(rest[0]-'0')
			rest = rest[1:]
		}
	}
	if len(rest) > 1 {
		return fs, fmt.Errorf("%w: %q", ErrBadFormatSpec, spec)
	}
	if len(rest) == 1 {
		fs.verb = rest[0]
	}
	return fs, nil
}

var groupingPrinter = message.NewPrinter(language.English)

func applySpec(v interface{}, spec string) (string, error) {
	fs, err := parseSpec(spec)
	if err != nil {
		return "", err
	}

	var body string
	var numeric bool
	switch fs.verb {
	case 0:
		if i, ok := toInt(v); ok {
			body, numeric = formatInt(i, fs, 'd'), true
		} else if f, ok := toFloat(v); ok {
			body, numeric = formatFloat(f, fs, 'g'), true
		} else {
			body = truncate(stringify(v), fs.precision)
		}
	case 's':
		body = truncate(stringify(v), fs.precision)
	case 'd', 'b', 'o', 'x', 'X':
		i, ok := toInt(v)
		if !ok {
			return "", fmt.Errorf("%w: %q needs an integer, have %T", ErrBadFormatSpec, spec, v)
		}
		body, numeric = formatInt(i, fs, fs.verb), true
	case 'c':
		i, ok := toInt(v)
		if !ok {
			return "", fmt.Errorf("%w: %q needs an integer, have %T", ErrBadFormatSpec, spec, v)
		}
		body = string(rune(i))
	case 'e', 'E', 'f', 'F', 'g', 'G', '%':
		f, ok := toFloat(v)
		if !ok {
			return "", fmt.Errorf("%w: %q needs a number, have %T", ErrBadFormatSpec, spec, v)
		}
		body, numeric = formatFloat(f, fs, fs.verb), true
	default:
		return "", fmt.Errorf("%w: unknown verb %q", ErrBadFormatSpec, string(fs.verb))
	}

	return pad(body, fs, numeric), nil
}

func truncate(s string, precision int) string {
	if precision < 0 {
		return s
	}
	var runes = []rune(s)
	if len(runes) <= precision {
		return s
	}
	return string(runes[:precision])
}

func formatInt(i int64, fs formatSpec, verb byte) string {
	var neg = i < 0
	var u = uint64(i)
	if neg {
		u = uint64(-i)
	}
	var digits string
	switch verb {
	case 'd':
		if fs.comma {
			digits = groupingPrinter.Sprintf("%d", u)
		} else {
			digits = strconv.FormatUint(u, 10)
		}
	case 'b':
		digits = strconv.FormatUint(u, 2)
	case 'o':
		digits = strconv.FormatUint(u, 8)
	case 'x':
		digits = strconv.FormatUint(u, 16)
	case 'X':
		digits = strings.ToUpper(strconv.FormatUint(u, 16))
	}
	if fs.alt {
		switch verb {
		case 'b':
			digits = "0b" + digits
		case 'o':
			digits = "0o" + digits
		case 'x':
			digits = "0x" + digits
		case 'X':
			digits = "0X" + digits
		}
	}
	return signPrefix(neg, fs) + digits
}

func formatFloat(f float64, fs formatSpec, verb byte) string {
	var neg = math.Signbit(f) && !math.IsNaN(f)
	f = math.Abs(f)
	var prec = fs.precision
	var digits string
	switch verb {
	case 'f', 'F':
		if prec < 0 {
			prec = 6
		}
		digits = strconv.FormatFloat(f, 'f', prec, 64)
	case 'e', 'E':
		if prec < 0 {
			prec = 6
		}
		digits = strconv.FormatFloat(f, byte(verb|0x20), prec, 64)
		if verb == 'E' {
			digits = strings.ToUpper(digits)
		}
	case 'g', 'G':
		if prec == 0 {
			prec = 1
		}
		digits = strconv.FormatFloat(f, 'g', prec, 64)
		if verb == 'G' {
			digits = strings.ToUpper(digits)
		}
	case '%':
		if prec < 0 {
			prec = 6
		}
		digits = strconv.FormatFloat(f*100, 'f', prec, 64) + "%"
	}
	if fs.comma {
		digits = groupFloat(digits)
	}
	return signPrefix(neg, fs) + digits
}

// groupFloat inserts thousands separators into the integer portion of an
// already-formatted decimal number.
func groupFloat(s string) string {
	var intPart = s
	var tail string
	if i := strings.IndexAny(s, ".eE%"); i >= 0 {
		intPart, tail = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return intPart + tail
	}
	var b strings.Builder
	var lead = len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + tail
}

func signPrefix(neg bool, fs formatSpec) string {
	switch {
	case neg:
		return "-"
	case fs.sign == '+':
		return "+"
	case fs.sign == ' ':
		return " "
	}
	return ""
}

func pad(body string, fs formatSpec, numeric bool) string {
	var gap = fs.width - utf8.RuneCountInString(body)
	if gap <= 0 {
		return body
	}
	var filler = strings.Repeat(string(fs.fill), gap)
	var align = fs.align
	if align == 0 {
		if numeric {
			align = '>'
		} else {
			align = '<'
		}
	}
	switch align {
	case '<':
		return body + filler
	case '>':
		return filler + body
	case '^':
		var left = gap / 2
		return strings.Repeat(string(fs.fill), left) + body + strings.Repeat(string(fs.fill), gap-left)
	case '=':
		// pad between the sign and the digits
		if len(body) > 0 && (body[0] == '-' || body[0] == '+' || body[0] == ' ') {
			return string(body[0]) + filler + body[1:]
		}
		return filler + body
	}
	return body
}

func toInt(v interface{}) (int64, bool) {
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}
