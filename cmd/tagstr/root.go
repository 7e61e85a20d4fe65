package main

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"

	"github.com/tagstr/tagstr/htmltag"
)

var (
	verbosity  int
	indentFlag string
	minifyFlag bool

	rootCmd = &cobra.Command{
		Use:   "tagstr",
		Short: "Render tag-string templates",
		Long: `tagstr renders HTML from tag-string templates: literal text
interleaved with lazily-evaluated interpolations, rebuilt into a document
tree and serialized with HTML-aware escaping.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch verbosity {
			case 0:
				zerolog.SetGlobalLevel(zerolog.WarnLevel)
			case 1:
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			default:
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG)")
	rootCmd.PersistentFlags().StringVar(&indentFlag, "indent", "", "Pretty-print output, indenting nested elements by the given string")
	rootCmd.PersistentFlags().BoolVar(&minifyFlag, "minify", false, "Minify the rendered HTML")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sqlDemoCmd)
	rootCmd.AddCommand(shDemoCmd)
}

var (
	minifier     *minify.M
	minifierOnce sync.Once
)

func getMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.AddFunc("text/html", html.Minify)
	})
	return minifier
}

// renderNode serializes a document tree per the --indent flag.
func renderNode(n *htmltag.Node) (string, error) {
	if indentFlag != "" {
		return n.RenderIndent(indentFlag)
	}
	return n.Render()
}

// emit prints rendered HTML, applying the output flags.
func emit(cmd *cobra.Command, rendered string) error {
	if minifyFlag {
		minified, err := getMinifier().String("text/html", rendered)
		if err != nil {
			return fmt.Errorf("minify: %w", err)
		}
		rendered = minified
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
