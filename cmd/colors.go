package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Prints the language color table",
	Long:  `Prints the effective language color table, including overrides from the config file.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printColors(a, os.Stdout)
	},
}

func printColors(a *app, w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Language", "Color"})
	for _, language := range a.colors.Languages() {
		tw.AppendRow(table.Row{language, a.colors.Lookup(language)})
	}
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"(other)", a.colors.Fallback()})
	tw.Render()
}

func init() {
	rootCmd.AddCommand(colorsCmd)
}
