package tagstr

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	var path = filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBundleCompileAndRender(t *testing.T) {
	var dir = t.TempDir()
	var page = writeFile(t, dir, "page.html",
		`<div class="{theme}"><p>hello {user.name}</p></div>`)
	writeFile(t, dir, "ignored.txt", "not a template")

	registry, err := NewBundle().
		AddGlobalsMap(map[string]interface{}{"theme": "dark"}).
		AddTemplateDir(dir).
		Compile()
	if err != nil {
		t.Fatal(err)
	}

	if len(registry.Names()) != 1 {
		t.Fatalf("registered %v, want just the html file", registry.Names())
	}
	out, err := registry.Render(page, map[string]interface{}{
		"user": map[string]interface{}{"name": "ann"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := `<div class="dark"><p>hello ann</p></div>`; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestBundleDataOverridesGlobals(t *testing.T) {
	registry, err := NewBundle().
		AddGlobalsMap(map[string]interface{}{"title": "default"}).
		AddTemplateString("t", "<h1>{title}</h1>").
		Compile()
	if err != nil {
		t.Fatal(err)
	}
	out, err := registry.Render("t", map[string]interface{}{"title": "override"})
	if err != nil {
		t.Fatal(err)
	}
	if want := "<h1>override</h1>"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestBundleGlobalsFile(t *testing.T) {
	var dir = t.TempDir()
	var globals = writeFile(t, dir, "globals.yaml", "site: example\nversion: 3\n")

	registry, err := NewBundle().
		AddGlobalsFile(globals).
		AddTemplateString("t", "<footer>{site} v{version}</footer>").
		Compile()
	if err != nil {
		t.Fatal(err)
	}
	out, err := registry.Render("t", nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := "<footer>example v3</footer>"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestBundleDuplicateGlobal(t *testing.T) {
	_, err := NewBundle().
		AddGlobalsMap(map[string]interface{}{"k": 1}).
		AddGlobalsMap(map[string]interface{}{"k": 2}).
		Compile()
	if err == nil || !strings.Contains(err.Error(), "already defined") {
		t.Errorf("got %v, want duplicate-global error", err)
	}
}

func TestBundleStickyError(t *testing.T) {
	_, err := NewBundle().
		AddTemplateFile("/does/not/exist.html").
		AddTemplateString("t", "<p>x</p>").
		Compile()
	if err == nil {
		t.Error("expected the bundle to carry the file error through Compile")
	}
}

func TestBundleParseErrorSurfacesAtCompile(t *testing.T) {
	_, err := NewBundle().
		AddTemplateString("bad", "<p>{unterminated</p>").
		Compile()
	if err == nil {
		t.Error("expected a parse error")
	}
}

func TestRegistryMissingTemplate(t *testing.T) {
	registry, err := NewBundle().Compile()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := registry.Render("nope", nil); err == nil {
		t.Error("expected an error for an unknown template")
	}
}

func TestRegistryRenderIndent(t *testing.T) {
	registry, err := NewBundle().
		AddTemplateString("t", "<ul><li>{a}</li></ul>").
		Compile()
	if err != nil {
		t.Fatal(err)
	}
	out, err := registry.RenderIndent("t", map[string]interface{}{"a": "x"}, "  ")
	if err != nil {
		t.Fatal(err)
	}
	var want = "<ul>\n  <li>\n    x\n  </li>\n</ul>"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}
