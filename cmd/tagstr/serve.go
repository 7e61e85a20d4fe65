package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/tagstr/tagstr"
)

var (
	servePort int

	serveCmd = &cobra.Command{
		Use:   "serve FILE",
		Short: "Serve a template over HTTP, recompiling on change",
		Long: `Starts a development server that renders the given template file on
each request.  Query string parameters become template data, and the file
is watched and recompiled when it changes on disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			registry, err := tagstr.NewBundle().
				WatchFiles(true).
				AddTemplateFile(filename).
				Compile()
			if err != nil {
				return err
			}

			handler := func(w http.ResponseWriter, req *http.Request) {
				data := make(map[string]interface{})
				for k, v := range req.URL.Query() {
					data[k] = v[0]
				}
				node, err := registry.Build(filename, data)
				if err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				rendered, err := renderNode(node)
				if err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				if minifyFlag {
					if minified, err := getMinifier().String("text/html", rendered); err == nil {
						rendered = minified
					}
				}
				io.WriteString(w, rendered)
			}

			tagstr.Logger.Info().Int("port", servePort).Str("template", filename).Msg("listening")
			return http.ListenAndServe(fmt.Sprintf(":%d", servePort), http.HandlerFunc(handler))
		},
	}
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 9812, "port on which to listen")
}
