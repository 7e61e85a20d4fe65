package htmltag

import (
	"errors"
	"strings"
	"testing"

	"github.com/andreyvit/diff"

	"github.com/tagstr/tagstr/taglib"
)

func TestRenderAttributes(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{"stored order",
			&Node{Tag: ElementTag("a"), Attrs: Attrs{{"href", "/x"}, {"id", "first"}}},
			`<a href="/x" id="first"></a>`},
		{"style renders first",
			&Node{Tag: ElementTag("a"), Attrs: Attrs{{"id", "x"}, {"style", map[string]string{"color": "red"}}}},
			`<a style="color:red" id="x"></a>`},
		{"style pairs joined and sorted",
			&Node{Tag: ElementTag("a"), Attrs: Attrs{{"style", map[string]string{"color": "red", "background": "blue"}}}},
			`<a style="background:blue;color:red"></a>`},
		{"boolean attributes",
			&Node{Tag: ElementTag("input"), Attrs: Attrs{{"checked", true}, {"hidden", false}, {"title", nil}}},
			`<input checked></input>`},
		{"values escaped",
			&Node{Tag: ElementTag("a"), Attrs: Attrs{{"title", `say "hi" & <go>`}}},
			`<a title="say &#34;hi&#34; &amp; &lt;go&gt;"></a>`},
		{"non-string value coerced",
			&Node{Tag: ElementTag("a"), Attrs: Attrs{{"tabindex", 3}}},
			`<a tabindex="3"></a>`},
	}
	for _, test := range tests {
		got, err := test.node.Render()
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: got %q, want %q", test.name, got, test.want)
		}
	}
}

func TestRenderChildren(t *testing.T) {
	node := &Node{Tag: ElementTag("p"), Children: []interface{}{
		"a < b",
		&Node{Tag: ElementTag("b"), Children: []interface{}{"bold"}},
		42,
	}}
	got, err := node.Render()
	if err != nil {
		t.Fatal(err)
	}
	if want := `<p>a &lt; b<b>bold</b>42</p>`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderFragmentWithAttrsFails(t *testing.T) {
	var node = &Node{Attrs: Attrs{{"id", "x"}}}
	if _, err := node.Render(); !errors.Is(err, ErrStructure) {
		t.Errorf("got %v, want ErrStructure", err)
	}
}

func TestRenderStyleNotMapping(t *testing.T) {
	var node = &Node{Tag: ElementTag("p"), Attrs: Attrs{{"style", "color:red"}}}
	if _, err := node.Render(); !errors.Is(err, ErrType) {
		t.Errorf("got %v, want ErrType", err)
	}
}

func TestRenderIdempotent(t *testing.T) {
	node := mustBuild(t, taglib.Lit(`<ul><li a="1">x</li><li>y</li></ul>`))
	first, err := node.Render()
	if err != nil {
		t.Fatal(err)
	}
	second, err := node.Render()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("render not idempotent:\n%v", diff.LineDiff(first, second))
	}
}

func TestRenderIndent(t *testing.T) {
	node := mustBuild(t, taglib.Lit(`<div id="x"><p>one</p><p>two<b>!</b></p></div>`))
	got, err := node.RenderIndent("  ")
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`<div id="x">`,
		`  <p>`,
		`    one`,
		`  </p>`,
		`  <p>`,
		`    two`,
		`    <b>`,
		`      !`,
		`    </b>`,
		`  </p>`,
		`</div>`,
	}, "\n")
	if got != want {
		t.Errorf("indent output mismatch:\n%v", diff.LineDiff(want, got))
	}

	// indentation is cosmetic: stripping it back recovers the plain render
	plain, err := node.Render()
	if err != nil {
		t.Fatal(err)
	}
	var collapsed = strings.ReplaceAll(strings.ReplaceAll(got, "\n", ""), " ", "")
	if collapsed != strings.ReplaceAll(plain, " ", "") {
		t.Errorf("indented content diverges from plain render:\n%s\nvs\n%s", got, plain)
	}
}
