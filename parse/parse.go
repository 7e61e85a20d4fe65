// Package parse decomposes template text into the part sequence the
// tag-string engines consume.
//
// A template file is literal text with interpolation fields written as
// {path}, {path!conv} or {path!conv:spec}, where path is a dotted key path
// into the data map supplied at bind time.  Doubled braces ({{ and }})
// produce literal braces.
package parse

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/tagstr/tagstr/taglib"
)

// Template is a parsed template: literal fragments interleaved with fields.
type Template struct {
	Name  string // used only for error messages
	elems []element
}

// element is either literal text or a field; exactly one case applies.
type element struct {
	text  string
	field *field
}

type field struct {
	path []string
	raw  string
	conv taglib.Conversion
	spec string
}

// New scans the template text.  The name does not need to be a real file
// name.
func New(name, text string) (*Template, error) {
	var t = &Template{Name: name}
	var literal strings.Builder
	for i := 0; i < len(text); {
		switch c := text[i]; c {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				literal.WriteByte('{')
				i += 2
				continue
			}
			var end = strings.IndexByte(text[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("template %s: unterminated field at offset %d", name, i)
			}
			f, err := parseField(text[i+1 : i+end])
			if err != nil {
				return nil, fmt.Errorf("template %s: %v", name, err)
			}
			if literal.Len() > 0 {
				t.elems = append(t.elems, element{text: literal.String()})
				literal.Reset()
			}
			t.elems = append(t.elems, element{field: f})
			i += end + 1
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				literal.WriteByte('}')
				i += 2
				continue
			}
			return nil, fmt.Errorf("template %s: stray '}' at offset %d", name, i)
		default:
			literal.WriteByte(c)
			i++
		}
	}
	if literal.Len() > 0 {
		t.elems = append(t.elems, element{text: literal.String()})
	}
	return t, nil
}

func parseField(body string) (*field, error) {
	var f = &field{}
	var expr = body
	if colon := strings.IndexByte(expr, ':'); colon >= 0 {
		f.spec = expr[colon+1:]
		expr = expr[:colon]
	}
	if bang := strings.IndexByte(expr, '!'); bang >= 0 {
		switch conv := expr[bang+1:]; conv {
		case "r":
			f.conv = taglib.ConvRepr
		case "s":
			f.conv = taglib.ConvStr
		case "a":
			f.conv = taglib.ConvASCII
		default:
			return nil, fmt.Errorf("%w: %q", taglib.ErrBadConversion, conv)
		}
		expr = expr[:bang]
	}
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty field expression in {%s}", body)
	}
	f.path = strings.Split(expr, ".")
	f.raw = expr
	return f, nil
}

// Fields returns the source expression of each interpolation field, in
// order.
func (t *Template) Fields() []string {
	var raws []string
	for _, e := range t.elems {
		if e.field != nil {
			raws = append(raws, e.field.raw)
		}
	}
	return raws
}

// Bind pairs the template with a data map, producing the part sequence.
// Every field path must resolve in the data; the lookups themselves stay
// deferred inside each thunk, so values are read when the engine consumes
// the thunk, in source order.
func (t *Template) Bind(data map[string]interface{}) ([]taglib.Part, error) {
	for _, e := range t.elems {
		if e.field == nil {
			continue
		}
		if _, err := lookup(data, e.field.path); err != nil {
			return nil, fmt.Errorf("template %s: %v", t.Name, err)
		}
	}
	var parts = make([]taglib.Part, len(t.elems))
	for i, e := range t.elems {
		if e.field == nil {
			parts[i] = taglib.Text(e.text)
			continue
		}
		var f = e.field
		parts[i] = &taglib.Thunk{
			Getvalue: func() interface{} {
				v, _ := lookup(data, f.path)
				return v
			},
			Raw:        f.raw,
			Conv:       f.conv,
			FormatSpec: f.spec,
		}
	}
	return parts, nil
}

// lookup walks a dotted key path through nested maps, using reflection for
// map types other than map[string]interface{}.
func lookup(data interface{}, path []string) (interface{}, error) {
	var v = data
	for i, key := range path {
		switch m := v.(type) {
		case map[string]interface{}:
			var ok bool
			if v, ok = m[key]; !ok {
				return nil, fmt.Errorf("data key %q not found", strings.Join(path[:i+1], "."))
			}
		default:
			var rv = reflect.ValueOf(v)
			if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
				return nil, fmt.Errorf("cannot descend into %T at %q", v, strings.Join(path[:i+1], "."))
			}
			var item = rv.MapIndex(reflect.ValueOf(key))
			if !item.IsValid() {
				return nil, fmt.Errorf("data key %q not found", strings.Join(path[:i+1], "."))
			}
			v = item.Interface()
		}
	}
	return v, nil
}
