package main

import (
	"github.com/spf13/cobra"

	"github.com/tagstr/tagstr/htmltag"
	"github.com/tagstr/tagstr/taglib"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Render a built-in demo document",
	Long: `Builds a small document in code, exercising interpolated tag names,
attribute expansion from maps, component tags, and child splicing, then
renders it to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		node, err := demoDocument()
		if err != nil {
			return err
		}
		rendered, err := renderNode(node)
		if err != nil {
			return err
		}
		return emit(cmd, rendered)
	},
}

func demoDocument() (*htmltag.Node, error) {
	var (
		titleLevel = 1
		titleStyle = map[string]string{"color": "blue"}
		bodyStyle  = map[string]string{"color": "red"}
	)

	paragraphs := []struct{ title, body string }{
		{"First Title", "Lorem ipsum dolor sit amet. Aut voluptatibus earum non facilis mollitia."},
		{"Second Title", "Ut corporis nemo in consequuntur galisum aut modi sunt a quasi deleniti."},
	}

	var sections []interface{}
	for _, p := range paragraphs {
		section, err := htmltag.Build(
			taglib.Lit("<h"),
			taglib.Val("title_level", titleLevel),
			taglib.Lit(" "),
			taglib.Val("title_attrs", map[string]interface{}{"style": titleStyle}),
			taglib.Lit(">"),
			taglib.Val("title", p.title),
			taglib.Lit("</"),
			taglib.Val("...", htmltag.CloseCurrent),
			taglib.Lit(">\n<p "),
			taglib.Val("body_attrs", map[string]interface{}{"style": bodyStyle}),
			taglib.Lit(">"),
			taglib.Val("body", p.body),
			taglib.Lit("</p>"),
		)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	var wrapper htmltag.Component = func(children []interface{}, attrs htmltag.Attrs) (interface{}, error) {
		return htmltag.Build(
			taglib.Lit(`<div class="simple-wrapper">`),
			taglib.Val("children", children),
			taglib.Lit("</div>"),
		)
	}

	return htmltag.Build(
		taglib.Lit("<"),
		taglib.Val("wrapper", wrapper),
		taglib.Lit(">"),
		taglib.Val("sections", sections),
		taglib.Lit("</"),
		taglib.Val("wrapper", wrapper),
		taglib.Lit(">"),
	)
}
