package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tagstr/tagstr/shtag"
	"github.com/tagstr/tagstr/taglib"
)

var shDemoCmd = &cobra.Command{
	Use:   "sh-demo",
	Short: "Show shell command building with safe quoting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hostile := "two words; $(rm -rf /)"
		simple, err := shtag.Sh(
			taglib.Lit("ls -ls "),
			taglib.Val("filename", hostile),
		)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), simple)

		inner, err := shtag.Sh(
			taglib.Lit("echo "),
			taglib.Val("filename", hostile),
		)
		if err != nil {
			return err
		}
		composed, err := shtag.Sh(
			taglib.Lit("wc -c $("),
			taglib.Val("inner", inner),
			taglib.Lit(")"),
		)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), composed)
		return nil
	},
}
