/*
Package htmltag builds HTML document trees from templates whose literal text
is interleaved with lazily-evaluated interpolations.

The template arrives as a taglib part sequence.  Build escapes the literal
fragments, replaces each interpolation with an internal placeholder, and
streams the result through the x/net/html tokenizer.  The tokenizer only
understands text, so the builder re-associates every placeholder with its
value from the structural events alone: a placeholder in a tag name joins
into the name, a bare placeholder key expands a whole attribute mapping, a
placeholder attribute value keeps the value's original type, and
placeholders in character data become children (sequences are spliced in as
individual siblings).

A node's tag may be a Component, in which case Resolve invokes it with the
node's children and attributes, recursively, before Render serializes the
tree.

	greeting := taglib.Val("name", "world")
	node, err := htmltag.Build(
		taglib.Lit("<p class=greeting>hello "), greeting, taglib.Lit("</p>"),
	)
	// node.Render() == `<p class="greeting">hello world</p>`
*/
package htmltag
