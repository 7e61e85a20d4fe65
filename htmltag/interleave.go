package htmltag

import (
	"fmt"
	"strings"
)

// interleave splits text on the placeholder and pairs each occurrence, left
// to right, with the next pending value.  It returns the interleaved items
// [text0, value0, text1, ..., textK] with every literal substring unescaped,
// and the values left unconsumed.
//
// A text that is exactly one placeholder returns that value standalone,
// preserving its type: a value used as a whole attribute value or whole
// child must not be coerced to a string here.
func interleave(text string, values []interface{}) ([]interface{}, []interface{}, error) {
	if text == placeholder {
		if len(values) == 0 {
			return nil, nil, fmt.Errorf("%w: placeholder with no pending value", ErrInternal)
		}
		return values[:1:1], values[1:], nil
	}

	var parts = strings.Split(text, placeholder)
	var k = len(parts) - 1
	if k > len(values) {
		return nil, nil, fmt.Errorf("%w: %d placeholders, %d pending values", ErrInternal, k, len(values))
	}

	var items = make([]interface{}, 0, 2*k+1)
	for i := 0; i < k; i++ {
		items = append(items, unescapePlaceholder(parts[i]), values[i])
	}
	items = append(items, unescapePlaceholder(parts[k]))
	return items, values[k:], nil
}

// joinWithValues is the degenerate interleave used for tag names and plain
// attribute values, which are always textual: the interleaved items collapse
// to one string.  The single-item case passes the item through unchanged, so
// a name that is entirely one interpolation keeps its original type (this is
// how a component reference survives tag position).
func joinWithValues(text string, values []interface{}) (interface{}, []interface{}, error) {
	items, remaining, err := interleave(text, values)
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 1 {
		return items[0], remaining, nil
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString(fmt.Sprint(item))
	}
	return b.String(), remaining, nil
}
