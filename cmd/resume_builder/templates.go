package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the template catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printTemplates(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func printTemplates(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tLAYOUT\tSECTIONS")
	for _, d := range templates.All() {
		id := d.ID
		if id == templates.DefaultID {
			id += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", id, d.Name, d.Category, d.Layout.Variant, strings.Join(d.Layout.ReadingOrder(), ","))
	}
	return tw.Flush()
}
