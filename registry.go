package tagstr

import (
	"fmt"

	"github.com/tagstr/tagstr/htmltag"
	"github.com/tagstr/tagstr/parse"
)

// Registry is the compiled output of a bundle: parsed templates plus the
// bundle's globals, ready to render against per-call data.
type Registry struct {
	templates map[string]*parse.Template
	globals   map[string]interface{}
}

// Template returns the named template, if it was added to the bundle.
func (r *Registry) Template(name string) (*parse.Template, bool) {
	tmpl, ok := r.templates[name]
	return tmpl, ok
}

// Names returns the names of all registered templates.
func (r *Registry) Names() []string {
	var names = make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}

// Build binds the named template to the merged globals+data and builds the
// document tree.  Per-call data wins over globals on key collisions.
func (r *Registry) Build(name string, data map[string]interface{}) (*htmltag.Node, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	var merged = make(map[string]interface{}, len(r.globals)+len(data))
	for k, v := range r.globals {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}
	parts, err := tmpl.Bind(merged)
	if err != nil {
		return nil, err
	}
	return htmltag.Build(parts...)
}

// Render builds the named template and serializes it to HTML.
func (r *Registry) Render(name string, data map[string]interface{}) (string, error) {
	node, err := r.Build(name, data)
	if err != nil {
		return "", err
	}
	return node.Render()
}

// RenderIndent is Render in indented output mode.
func (r *Registry) RenderIndent(name string, data map[string]interface{}, indent string) (string, error) {
	node, err := r.Build(name, data)
	if err != nil {
		return "", err
	}
	return node.RenderIndent(indent)
}
