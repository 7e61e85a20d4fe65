package htmltag

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"

	"golang.org/x/net/html"

	"github.com/tagstr/tagstr/taglib"
)

// CloseCurrent, interpolated in end-tag position (</{...}>), closes the
// currently open element without checking its name.
var CloseCurrent closeMarker

type closeMarker struct{}

// Build assembles a document tree from a decoded part sequence.
//
// Literal fragments are escaped and fed to the tokenizer; each thunk is
// resolved on the spot (Getvalue once, then conversion and format spec) and
// replaced in the text stream by a placeholder.  Tokenizer events then
// re-pair every placeholder with its value by position: in tag names,
// attribute keys (whole-mapping expansion), attribute values, end tags and
// text data.
//
// A template with one top-level node yields that node; several top-level
// siblings yield a fragment containing them; no content at all is
// ErrEmptyResult.  A failed build yields no tree and the builder is not
// reused.
func Build(parts ...taglib.Part) (*Node, error) {
	var b = newBuilder()
	for _, part := range taglib.DecodeRaw(parts...) {
		switch p := part.(type) {
		case taglib.Text:
			b.buf.WriteString(escapePlaceholder(string(p)))
		case *taglib.Thunk:
			var value = p.Getvalue()
			if p.Conv != taglib.ConvNone || p.FormatSpec != "" {
				var err error
				if value, err = taglib.FormatValue(value, p.Conv, p.FormatSpec); err != nil {
					return nil, err
				}
			}
			b.pending = append(b.pending, value)
			b.buf.WriteString(placeholder)
		default:
			return nil, fmt.Errorf("%w: unknown part type %T", ErrType, part)
		}
	}
	if err := b.run(); err != nil {
		return nil, err
	}
	return b.result()
}

// builder holds the full parse state: the synthetic fragment root, the stack
// of currently open nodes (non-owning references into the tree), and the
// queue of resolved interpolation values awaiting their placeholders.
type builder struct {
	buf     bytes.Buffer
	root    *Node
	stack   []*Node
	pending []interface{}
}

func newBuilder() *builder {
	var root = &Node{}
	return &builder{root: root, stack: []*Node{root}}
}

func (b *builder) top() *Node { return b.stack[len(b.stack)-1] }

// run drives the tokenizer over the escaped template text and dispatches
// its three structural events.
func (b *builder) run() error {
	var z = html.NewTokenizer(strings.NewReader(b.buf.String()))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return fmt.Errorf("%w: %v", ErrStructure, err)
			}
			return nil
		case html.StartTagToken:
			var t = z.Token()
			if err := b.startTag(t.Data, t.Attr); err != nil {
				return err
			}
		case html.SelfClosingTagToken:
			var t = z.Token()
			if err := b.startTag(t.Data, t.Attr); err != nil {
				return err
			}
			// <tag/> opens and closes on one token.
			b.stack = b.stack[:len(b.stack)-1]
		case html.EndTagToken:
			if err := b.endTag(z.Token().Data); err != nil {
				return err
			}
		case html.TextToken:
			if err := b.text(z.Token().Data); err != nil {
				return err
			}
		default:
			// comments and doctypes are dropped; a placeholder inside one
			// holds a pending value that no later event could claim
			if strings.Contains(z.Token().Data, placeholder) {
				return fmt.Errorf("%w: interpolated value inside ignored markup", ErrInternal)
			}
		}
	}
}

// startTag resolves the tag name and attribute list against the pending
// values, then opens a new node under the current top of stack.
func (b *builder) startTag(name string, attrs []html.Attribute) error {
	tagValue, remaining, err := joinWithValues(name, b.pending)
	if err != nil {
		return err
	}
	b.pending = remaining
	tag, err := asTag(tagValue)
	if err != nil {
		return err
	}

	var nodeAttrs Attrs
	for _, attr := range attrs {
		switch {
		case attr.Key == placeholder:
			// whole-mapping expansion: <a {attrs}>
			value, err := b.pop("attribute expansion")
			if err != nil {
				return err
			}
			mapped, ok := asMapping(value)
			if !ok {
				return fmt.Errorf("%w: attribute expansion requires a mapping, have %T", ErrType, value)
			}
			for _, a := range mapped {
				nodeAttrs.Set(a.Key, a.Val)
			}
		case strings.Contains(attr.Key, placeholder):
			return fmt.Errorf("%w: cannot interpolate attribute names", ErrStructure)
		case attr.Val == placeholder:
			// key={value}: keep the value's type until render time
			value, err := b.pop("attribute value")
			if err != nil {
				return err
			}
			nodeAttrs.Set(unescapePlaceholder(attr.Key), value)
		case attr.Val == "":
			// bare attribute
			nodeAttrs.Set(unescapePlaceholder(attr.Key), true)
		default:
			value, remaining, err := joinWithValues(attr.Val, b.pending)
			if err != nil {
				return err
			}
			b.pending = remaining
			nodeAttrs.Set(unescapePlaceholder(attr.Key), value)
		}
	}

	var node = &Node{Tag: tag, Attrs: nodeAttrs}
	b.top().Children = append(b.top().Children, node)
	b.stack = append(b.stack, node)
	return nil
}

// text interleaves character data with the pending values and appends the
// results as children.  An item that is itself a sequence is spliced in
// element by element; empty strings are dropped.
func (b *builder) text(data string) error {
	items, remaining, err := interleave(data, b.pending)
	if err != nil {
		return err
	}
	b.pending = remaining

	var node = b.top()
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s != "" {
				node.Children = append(node.Children, s)
			}
			continue
		}
		if seq, ok := asSequence(item); ok {
			node.Children = append(node.Children, seq...)
			continue
		}
		node.Children = append(node.Children, item)
	}
	return nil
}

// endTag pops the current node and checks that the resolved end-tag matches
// its tag.  An end tag written as the bare placeholder resolves against the
// pending queue; the CloseCurrent marker skips the identity check entirely.
func (b *builder) endTag(name string) error {
	if len(b.stack) == 1 {
		return fmt.Errorf("%w: unexpected end tag %q", ErrStructure, unescapePlaceholder(name))
	}
	var node = b.top()
	b.stack = b.stack[:len(b.stack)-1]

	var resolved interface{}
	if name == placeholder {
		var err error
		if resolved, err = b.pop("end tag"); err != nil {
			return err
		}
	} else {
		var err error
		if resolved, b.pending, err = joinWithValues(name, b.pending); err != nil {
			return err
		}
	}

	if _, ok := resolved.(closeMarker); ok {
		return nil
	}
	if !tagMatches(node.Tag, resolved) {
		return fmt.Errorf("%w: start tag %s does not match end tag %v", ErrStructure, tagLabel(node.Tag), resolved)
	}
	return nil
}

// result finalizes the parse: any value still pending is a codec defect,
// and the synthetic root unwraps per the child count.  Whitespace-only text
// around the top-level content is trimmed before counting.
func (b *builder) result() (*Node, error) {
	if len(b.pending) != 0 {
		return nil, fmt.Errorf("%w: %d interpolated values were never consumed", ErrInternal, len(b.pending))
	}
	var children = trimBlank(b.root.Children)
	switch len(children) {
	case 0:
		return nil, ErrEmptyResult
	case 1:
		if node, ok := children[0].(*Node); ok {
			return node, nil
		}
	}
	return &Node{Children: children}, nil
}

func (b *builder) pop(context string) (interface{}, error) {
	if len(b.pending) == 0 {
		return nil, fmt.Errorf("%w: %s placeholder with no pending value", ErrInternal, context)
	}
	var value = b.pending[0]
	b.pending = b.pending[1:]
	return value, nil
}

func trimBlank(children []interface{}) []interface{} {
	var blank = func(v interface{}) bool {
		s, ok := v.(string)
		return ok && strings.TrimSpace(s) == ""
	}
	for len(children) > 0 && blank(children[0]) {
		children = children[1:]
	}
	for len(children) > 0 && blank(children[len(children)-1]) {
		children = children[:len(children)-1]
	}
	return children
}

// asTag types an interpolated tag-position value.
func asTag(v interface{}) (Tag, error) {
	switch t := v.(type) {
	case string:
		return ElementTag(t), nil
	case Tag:
		return t, nil
	case Component:
		return ComponentTag(t), nil
	case func(children []interface{}, attrs Attrs) (interface{}, error):
		return ComponentTag(t), nil
	}
	return nil, fmt.Errorf("%w: tag must be a string or component, have %T", ErrType, v)
}

func tagMatches(tag Tag, resolved interface{}) bool {
	switch t := tag.(type) {
	case ElementTag:
		s, ok := resolved.(string)
		return ok && s == string(t)
	case ComponentTag:
		var rv = reflect.ValueOf(resolved)
		return rv.Kind() == reflect.Func && rv.Pointer() == reflect.ValueOf(t).Pointer()
	}
	return false
}

func tagLabel(tag Tag) string {
	switch t := tag.(type) {
	case ElementTag:
		return string(t)
	case ComponentTag:
		return "<component>"
	}
	return "<fragment>"
}
