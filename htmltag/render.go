package htmltag

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Render resolves the tree and serializes it to HTML.  Rendering has no
// side effects beyond resolution: repeated calls on the same tree produce
// identical output (components are re-invoked each time).
func (n *Node) Render() (string, error) {
	resolved, err := n.Resolve()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := writeNode(&b, resolved); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderIndent is Render with every child on its own line, indented one
// level per element depth.  The indentation is cosmetic; tags, attributes
// and text content are serialized identically to Render.
func (n *Node) RenderIndent(indent string) (string, error) {
	resolved, err := n.Resolve()
	if err != nil {
		return "", err
	}
	var lines []string
	if err := writeIndented(&lines, resolved, indent, 0); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeText escapes character data.  Quotes are left alone; attribute
// values go through html.EscapeString instead.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func writeNode(b *strings.Builder, n *Node) error {
	element, err := elementName(n)
	if err != nil {
		return err
	}
	if element != "" {
		attrs, err := attrString(n.Attrs)
		if err != nil {
			return err
		}
		b.WriteString("<" + element + attrs + ">")
	}
	for _, child := range n.Children {
		switch c := child.(type) {
		case string:
			b.WriteString(escapeText(c))
		case *Node:
			if err := writeNode(b, c); err != nil {
				return err
			}
		default:
			// arbitrary values are coerced without escaping
			b.WriteString(fmt.Sprint(c))
		}
	}
	if element != "" {
		b.WriteString("</" + element + ">")
	}
	return nil
}

func writeIndented(lines *[]string, n *Node, indent string, depth int) error {
	element, err := elementName(n)
	if err != nil {
		return err
	}
	var pad = strings.Repeat(indent, depth)
	var childDepth = depth
	if element != "" {
		attrs, err := attrString(n.Attrs)
		if err != nil {
			return err
		}
		if len(n.Children) == 0 {
			*lines = append(*lines, pad+"<"+element+attrs+"></"+element+">")
			return nil
		}
		*lines = append(*lines, pad+"<"+element+attrs+">")
		childDepth++
	}
	var childPad = strings.Repeat(indent, childDepth)
	for _, child := range n.Children {
		switch c := child.(type) {
		case string:
			*lines = append(*lines, childPad+escapeText(c))
		case *Node:
			if err := writeIndented(lines, c, indent, childDepth); err != nil {
				return err
			}
		default:
			*lines = append(*lines, childPad+fmt.Sprint(c))
		}
	}
	if element != "" {
		*lines = append(*lines, pad+"</"+element+">")
	}
	return nil
}

// elementName returns the literal tag to serialize, or "" for a fragment.
// Only resolved trees reach here, so a component tag is a misuse.
func elementName(n *Node) (string, error) {
	switch t := n.Tag.(type) {
	case ElementTag:
		return string(t), nil
	case ComponentTag:
		return "", fmt.Errorf("%w: cannot render an unresolved component node", ErrStructure)
	}
	if len(n.Attrs) > 0 {
		return "", fmt.Errorf("%w: untagged node cannot have attributes", ErrStructure)
	}
	return "", nil
}

// attrString serializes an attribute set: the style mapping first, then the
// remaining attributes in stored order.  Boolean true renders as a bare
// key, false and nil suppress the attribute.
func attrString(attrs Attrs) (string, error) {
	var b strings.Builder
	if style, ok := attrs.Get("style"); ok {
		mapped, ok := asMapping(style)
		if !ok {
			return "", fmt.Errorf("%w: expected style attribute to be a mapping, have %T", ErrType, style)
		}
		var pairs = make([]string, len(mapped))
		for i, p := range mapped {
			pairs[i] = p.Key + ":" + fmt.Sprint(p.Val)
		}
		b.WriteString(` style="` + html.EscapeString(strings.Join(pairs, ";")) + `"`)
	}
	for _, attr := range attrs {
		if attr.Key == "style" {
			continue
		}
		switch v := attr.Val.(type) {
		case bool:
			if v {
				b.WriteString(" " + attr.Key)
			}
		case nil:
		default:
			b.WriteString(" " + attr.Key + `="` + html.EscapeString(fmt.Sprint(v)) + `"`)
		}
	}
	return b.String(), nil
}
