package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tagstr/tagstr"
)

var (
	dataFile    string
	globalsFile string

	renderCmd = &cobra.Command{
		Use:   "render FILE",
		Short: "Render a template file",
		Long: `Compiles the given template file and renders it to stdout.  Template
data is read from the YAML file named by --data; --globals supplies
values shared across templates, which the data file may override.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			bundle := tagstr.NewBundle().AddTemplateFile(filename)
			if globalsFile != "" {
				bundle.AddGlobalsFile(globalsFile)
			}
			registry, err := bundle.Compile()
			if err != nil {
				return err
			}

			var data map[string]interface{}
			if dataFile != "" {
				content, err := os.ReadFile(dataFile)
				if err != nil {
					return err
				}
				if err := yaml.Unmarshal(content, &data); err != nil {
					return err
				}
			}

			node, err := registry.Build(filename, data)
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
)

func init() {
	renderCmd.Flags().StringVar(&dataFile, "data", "", "YAML file of template data")
	renderCmd.Flags().StringVar(&globalsFile, "globals", "", "YAML file of global values")
}
