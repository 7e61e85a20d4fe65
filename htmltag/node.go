package htmltag

import (
	"fmt"
	"reflect"
	"sort"
)

// Component is a callable usable in tag position.  It receives the node's
// children as positional values and its attributes as options, and returns
// a renderable value: a *Node, a sequence of renderable values, or any
// plain value.
type Component func(children []interface{}, attrs Attrs) (interface{}, error)

// Tag identifies what a node renders as.  A nil Tag denotes a fragment.
// There are two implementations: ElementTag and ComponentTag.
type Tag interface {
	isTag()
}

// ElementTag names a literal element.
type ElementTag string

// ComponentTag is a deferred component invocation; the node it tags is not
// self-contained until resolved.
type ComponentTag Component

func (ElementTag) isTag()   {}
func (ComponentTag) isTag() {}

// Attr is a single attribute.  Val keeps whatever type the interpolation
// supplied: string, bool, a style mapping, or an arbitrary value coerced
// only at render time.
type Attr struct {
	Key string
	Val interface{}
}

// Attrs is an ordered attribute set.
type Attrs []Attr

// Get returns the value stored under key.
func (a Attrs) Get(key string) (interface{}, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return nil, false
}

// Set replaces the value under key, or appends it if absent, preserving the
// position of existing keys.
func (a *Attrs) Set(key string, val interface{}) {
	for i, attr := range *a {
		if attr.Key == key {
			(*a)[i].Val = val
			return
		}
	}
	*a = append(*a, Attr{key, val})
}

// Node is one element of the document tree.
type Node struct {
	Tag      Tag
	Attrs    Attrs
	Children []interface{}
}

// Fragment reports whether the node has no tag of its own.
func (n *Node) Fragment() bool { return n.Tag == nil }

// maxResolveDepth bounds recursive component resolution.  Legitimate
// component trees stay far below this; hitting it means a component keeps
// returning further components without converging.
const maxResolveDepth = 1000

// Resolve produces the literal form of the tree: every component tag is
// invoked with its children and attributes, recursively, until only element
// and fragment nodes remain.  Non-node children pass through untouched.
func (n *Node) Resolve() (*Node, error) {
	return n.resolve(0)
}

func (n *Node) resolve(depth int) (*Node, error) {
	if depth > maxResolveDepth {
		return nil, fmt.Errorf("%w: component recursion exceeded %d levels", ErrStructure, maxResolveDepth)
	}
	if component, ok := n.Tag.(ComponentTag); ok {
		result, err := component(n.Children, n.Attrs)
		if err != nil {
			return nil, err
		}
		return toNode(result).resolve(depth + 1)
	}

	var resolved = &Node{Tag: n.Tag, Attrs: n.Attrs}
	for _, child := range n.Children {
		if childNode, ok := child.(*Node); ok {
			r, err := childNode.resolve(depth + 1)
			if err != nil {
				return nil, err
			}
			resolved.Children = append(resolved.Children, r)
		} else {
			resolved.Children = append(resolved.Children, child)
		}
	}
	return resolved, nil
}

// toNode lifts a component's return value into a node: nodes pass through,
// sequences become fragment children, anything else becomes a single child.
func toNode(v interface{}) *Node {
	switch v := v.(type) {
	case *Node:
		return v
	case nil:
		return &Node{}
	}
	if items, ok := asSequence(v); ok {
		return &Node{Children: items}
	}
	return &Node{Children: []interface{}{v}}
}

// asSequence reports whether v is a sliceable sequence of values (excluding
// strings and byte slices, which count as scalar content).
func asSequence(v interface{}) ([]interface{}, bool) {
	if items, ok := v.([]interface{}); ok {
		return items, true
	}
	var rv = reflect.ValueOf(v)
	if kind := rv.Kind(); kind != reflect.Slice && kind != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	var items = make([]interface{}, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// asMapping normalizes the mapping forms accepted for attribute expansion
// and style attributes.  Plain Go maps are unordered, so their keys are
// sorted for deterministic output; use Attrs when order matters.
func asMapping(v interface{}) ([]Attr, bool) {
	switch m := v.(type) {
	case Attrs:
		return m, true
	case []Attr:
		return m, true
	case map[string]interface{}:
		return sortedAttrs(len(m), func(f func(string, interface{})) {
			for k, v := range m {
				f(k, v)
			}
		}), true
	case map[string]string:
		return sortedAttrs(len(m), func(f func(string, interface{})) {
			for k, v := range m {
				f(k, v)
			}
		}), true
	}
	return nil, false
}

func sortedAttrs(n int, each func(func(string, interface{}))) []Attr {
	var attrs = make([]Attr, 0, n)
	each(func(k string, v interface{}) {
		attrs = append(attrs, Attr{k, v})
	})
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })
	return attrs
}
