package htmltag

import (
	"errors"
	"testing"

	"github.com/tagstr/tagstr/taglib"
)

func mustBuild(t *testing.T, parts ...taglib.Part) *Node {
	t.Helper()
	node, err := Build(parts...)
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func mustRender(t *testing.T, parts ...taglib.Part) string {
	t.Helper()
	out, err := mustBuild(t, parts...).Render()
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestBuildRender(t *testing.T) {
	tests := []struct {
		name  string
		parts []taglib.Part
		want  string
	}{
		{"literal only",
			[]taglib.Part{taglib.Lit(`<p class="x">hi</p>`)},
			`<p class="x">hi</p>`},
		{"text interpolation",
			[]taglib.Part{taglib.Lit("<p>hello "), taglib.Val("name", "world"), taglib.Lit("</p>")},
			`<p>hello world</p>`},
		{"tag name interpolation",
			[]taglib.Part{taglib.Lit("<h"), taglib.Val("level", 2), taglib.Lit(">T</h"), taglib.Val("level", 2), taglib.Lit(">")},
			`<h2>T</h2>`},
		{"attribute value interpolation",
			[]taglib.Part{taglib.Lit(`<a href="/u/`), taglib.Val("id", 17), taglib.Lit(`">x</a>`)},
			`<a href="/u/17">x</a>`},
		{"bare attribute",
			[]taglib.Part{taglib.Lit(`<input disabled>hi</input>`)},
			`<input disabled>hi</input>`},
		{"dollar in text and attributes",
			[]taglib.Part{taglib.Lit(`<p title="a$b">cost: $5 & up</p>`)},
			`<p title="a$b">cost: $5 &amp; up</p>`},
		{"numeric interpolation is coerced in text",
			[]taglib.Part{taglib.Lit("<p>"), taglib.Val("n", 42), taglib.Lit("</p>")},
			`<p>42</p>`},
		{"format spec applied once at consumption",
			[]taglib.Part{taglib.Lit("<p>"), &taglib.Thunk{
				Getvalue:   func() interface{} { return 3.14159 },
				Raw:        "pi",
				FormatSpec: ".2f",
			}, taglib.Lit("</p>")},
			`<p>3.14</p>`},
		{"conversion repr",
			[]taglib.Part{taglib.Lit("<p>"), &taglib.Thunk{
				Getvalue: func() interface{} { return "q" },
				Raw:      "s",
				Conv:     taglib.ConvRepr,
			}, taglib.Lit("</p>")},
			`<p>"q"</p>`},
		{"self-closing syntax",
			[]taglib.Part{taglib.Lit(`<div><br/>x</div>`)},
			`<div><br></br>x</div>`},
	}
	for _, test := range tests {
		if got := mustRender(t, test.parts...); got != test.want {
			t.Errorf("%s: got %q, want %q", test.name, got, test.want)
		}
	}
}

// Scenario: <a {attrs} color=dark{color}>{children}</a> merges the expanded
// mapping, joins the partial attribute value, and splices the sequence as
// direct children.
func TestAttributeExpansionAndSplice(t *testing.T) {
	var attrs = map[string]interface{}{"style": map[string]string{"font-size": "bold"}}
	var items = []interface{}{
		&Node{Tag: ElementTag("i"), Children: []interface{}{"1"}},
		&Node{Tag: ElementTag("i"), Children: []interface{}{"2"}},
		&Node{Tag: ElementTag("i"), Children: []interface{}{"3"}},
	}
	node := mustBuild(t,
		taglib.Lit("<a "), taglib.Val("attrs", attrs),
		taglib.Lit(" color=dark"), taglib.Val("color", "blue"),
		taglib.Lit(">"), taglib.Val("items", items), taglib.Lit("</a>"),
	)
	if len(node.Children) != 3 {
		t.Fatalf("got %d children, want 3 spliced in", len(node.Children))
	}
	out, err := node.Render()
	if err != nil {
		t.Fatal(err)
	}
	var want = `<a style="font-size:bold" color="darkblue"><i>1</i><i>2</i><i>3</i></a>`
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

// Scenario: key={object} keeps the object's type until render-time coercion.
func TestWholeAttributeValueKeepsType(t *testing.T) {
	type config struct{ depth int }
	node := mustBuild(t,
		taglib.Lit("<div data-config="), taglib.Val("cfg", config{3}), taglib.Lit(">x</div>"),
	)
	v, ok := node.Attrs.Get("data-config")
	if !ok {
		t.Fatal("attribute missing")
	}
	if got, ok := v.(config); !ok || got.depth != 3 {
		t.Errorf("attribute value = %#v, want config{3}", v)
	}
}

func TestEmptyResult(t *testing.T) {
	for _, parts := range [][]taglib.Part{
		{},
		{taglib.Lit("")},
		{taglib.Lit("   \n\t ")},
	} {
		if _, err := Build(parts...); !errors.Is(err, ErrEmptyResult) {
			t.Errorf("Build(%v) = %v, want ErrEmptyResult", parts, err)
		}
	}
}

// Scenario: one top-level node comes back unwrapped; two siblings come back
// inside a fragment.
func TestRootUnwrapping(t *testing.T) {
	single := mustBuild(t, taglib.Lit("<p>x</p>"))
	if single.Tag != ElementTag("p") {
		t.Errorf("single: tag = %v, want p", single.Tag)
	}

	pair := mustBuild(t, taglib.Lit("<p>x</p><p>y</p>"))
	if !pair.Fragment() {
		t.Fatalf("pair: want a fragment, got tag %v", pair.Tag)
	}
	if len(pair.Children) != 2 {
		t.Errorf("pair: %d children, want 2", len(pair.Children))
	}

	// surrounding whitespace doesn't force a fragment
	padded := mustBuild(t, taglib.Lit("\n    <p>x</p>\n"))
	if padded.Tag != ElementTag("p") {
		t.Errorf("padded: tag = %v, want p", padded.Tag)
	}

	// markup-free content stays a fragment holding the bare string
	text := mustBuild(t, taglib.Lit("hello "), taglib.Val("name", "X"))
	if !text.Fragment() {
		t.Fatalf("text: want a fragment, got tag %v", text.Tag)
	}
	if len(text.Children) != 1 || text.Children[0] != "hello X" {
		t.Errorf("text: children = %#v, want [hello X]", text.Children)
	}
	if out, err := text.Render(); err != nil || out != "hello X" {
		t.Errorf("text: rendered %q, %v", out, err)
	}
}

// Scenario: </{...}> with the CloseCurrent marker closes the open element
// without a name check.
func TestEndTagShorthand(t *testing.T) {
	out := mustRender(t,
		taglib.Lit("<h"), taglib.Val("level", 3), taglib.Lit(">T</"),
		taglib.Val("...", CloseCurrent), taglib.Lit(">"),
	)
	if want := "<h3>T</h3>"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestEndTagMismatch(t *testing.T) {
	if _, err := Build(taglib.Lit("<a>x</b>")); !errors.Is(err, ErrStructure) {
		t.Errorf("mismatch: got %v, want ErrStructure", err)
	}
	if _, err := Build(taglib.Lit("</b>")); !errors.Is(err, ErrStructure) {
		t.Errorf("stray end tag: got %v, want ErrStructure", err)
	}
}

// An interpolation inside a comment has no event to claim its value; the
// build fails as soon as the comment is tokenized, before the value can be
// mis-paired with a later placeholder.
func TestInterpolationInsideComment(t *testing.T) {
	_, err := Build(
		taglib.Lit("<!-- "), taglib.Val("a", 1),
		taglib.Lit(" --><p>"), taglib.Val("b", 2), taglib.Lit("</p>"),
	)
	if !errors.Is(err, ErrInternal) {
		t.Errorf("got %v, want ErrInternal", err)
	}
}

func TestExpansionRequiresMapping(t *testing.T) {
	_, err := Build(taglib.Lit("<a "), taglib.Val("attrs", 42), taglib.Lit(">x</a>"))
	if !errors.Is(err, ErrType) {
		t.Errorf("got %v, want ErrType", err)
	}
}

func TestInterpolatedAttributeNameRejected(t *testing.T) {
	_, err := Build(taglib.Lit("<a data-"), taglib.Val("k", "x"), taglib.Lit("=1>x</a>"))
	if !errors.Is(err, ErrStructure) {
		t.Errorf("got %v, want ErrStructure", err)
	}
}

// Getvalue is invoked exactly once per thunk, in source order, when the
// thunk is consumed rather than when its placeholder is matched.
func TestEvaluationOrder(t *testing.T) {
	var counter int
	var seen []int
	tick := func() interface{} {
		counter++
		seen = append(seen, counter)
		return counter
	}
	mustBuild(t,
		taglib.Lit("<ul><li a="), taglib.Deferred("a", tick),
		taglib.Lit(">"), taglib.Deferred("b", tick),
		taglib.Lit("</li><li>"), taglib.Deferred("c", tick),
		taglib.Lit("</li></ul>"),
	)
	if counter != 3 {
		t.Fatalf("counter = %d, want 3", counter)
	}
	for i, v := range seen {
		if v != i+1 {
			t.Fatalf("evaluation order %v not strictly increasing", seen)
		}
	}
}

func TestComponentTag(t *testing.T) {
	wrapper := func(children []interface{}, attrs Attrs) (interface{}, error) {
		return &Node{
			Tag:      ElementTag("div"),
			Attrs:    Attrs{{"class", "simple-wrapper"}},
			Children: children,
		}, nil
	}
	out := mustRender(t,
		taglib.Lit("<"), taglib.Val("wrapper", wrapper),
		taglib.Lit(">inner</"), taglib.Val("wrapper", wrapper), taglib.Lit(">"),
	)
	if want := `<div class="simple-wrapper">inner</div>`; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestComponentEndTagMismatch(t *testing.T) {
	a := func(children []interface{}, attrs Attrs) (interface{}, error) { return &Node{}, nil }
	b := func(children []interface{}, attrs Attrs) (interface{}, error) { return &Node{}, nil }
	_, err := Build(
		taglib.Lit("<"), taglib.Val("a", a),
		taglib.Lit(">x</"), taglib.Val("b", b), taglib.Lit(">"),
	)
	if !errors.Is(err, ErrStructure) {
		t.Errorf("got %v, want ErrStructure", err)
	}
}
