// internal/commands/list_pages.go
package biostat

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mwiater/biostat/internal/pages"
	"github.com/spf13/cobra"
)

// listPagesCmd implements 'list pages'.
var listPagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the pages with their routes, controls and graphs",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := pages.NewCatalog()
		if err != nil {
			return err
		}
		listPages(cmd.OutOrStdout(), catalog)
		return nil
	},
}

// listTransformsCmd implements 'list transforms'.
var listTransformsCmd = &cobra.Command{
	Use:   "transforms",
	Short: "List each page's transforms and their dependencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := pages.NewCatalog()
		if err != nil {
			return err
		}
		listTransforms(cmd.OutOrStdout(), catalog)
		return nil
	},
}

func listPages(out io.Writer, catalog *pages.Catalog) {
	title := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)

	for _, p := range catalog.Pages() {
		title.Fprintf(out, "%s", p.Header.Title)
		fmt.Fprintf(out, "  %s\n", p.Path)
		if !p.Interactive() {
			dim.Fprintln(out, "  static page")
			continue
		}
		for _, c := range p.Controls() {
			fmt.Fprintf(out, "  slider %-12s [%g, %g] step %g, default %g\n", c.ID, c.Min, c.Max, c.Step, c.Value)
		}
		fmt.Fprintf(out, "  graphs %s\n", strings.Join(p.Graphs(), ", "))
	}
}

func listTransforms(out io.Writer, catalog *pages.Catalog) {
	name := color.New(color.FgGreen)
	kind := color.New(color.FgYellow)

	for _, p := range catalog.Pages() {
		if !p.Interactive() {
			continue
		}
		fmt.Fprintln(out, p.Path)
		for _, t := range p.Transforms().Transforms() {
			fmt.Fprint(out, "  ")
			name.Fprintf(out, "%-24s", t.Name)
			kind.Fprintf(out, " %-9s", t.Kind)
			fmt.Fprintf(out, " %s -> %s", strings.Join(t.Inputs, ", "), t.Output)
			if len(t.States) > 0 {
				fmt.Fprintf(out, " (reads %s)", strings.Join(t.States, ", "))
			}
			fmt.Fprintln(out)
		}
	}
}

func init() {
	listCmd.AddCommand(listPagesCmd)
	listCmd.AddCommand(listTransformsCmd)
}
