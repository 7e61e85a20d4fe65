/*
Package tagstr implements tag-string templating: templates whose literal
text is interleaved with lazily-evaluated interpolations, rebuilt into
structured results by small engines sharing one descriptor shape.

The engines live in sub-packages:

	htmltag    HTML document trees with component support
	shtag      shell commands with automatic quoting
	sqltag     SQL statements with named parameter bindings

Each engine consumes a sequence of taglib.Part values: literal text
fragments alternating with taglib.Thunk interpolation descriptors.  In-code
callers construct the sequence directly (taglib.Lit, taglib.Val,
taglib.Deferred); file-based templates go through this package's Bundle,
which scans {field} references and binds them to data maps.

Usage example

On startup, parse a globals file and all templates in a directory, and keep
them fresh during development:

	registry, err := tagstr.NewBundle().
		WatchFiles(mode == "dev").           // reload templates on change
		AddGlobalsFile("views/globals.yaml").
		AddTemplateDir("views").             // load *.html recursively
		Compile()

To render a page:

	html, err := registry.Render("views/account.html", map[string]interface{}{
		"user":    user,
		"account": account,
	})

Advanced usages are better served by the sub-packages directly: htmltag for
programmatic tree construction and components, parse for custom template
sources.
*/
package tagstr
