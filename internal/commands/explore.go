// internal/commands/explore.go
package biostat

import (
	"github.com/mwiater/biostat/internal/pages"
	"github.com/mwiater/biostat/internal/tui"
	"github.com/spf13/cobra"
)

// startExplorer is a function alias to tui.Start so tests can stub the terminal UI.
var startExplorer = tui.Start

// exploreCmd opens the terminal explorer.
var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Explore the pages in the terminal",
	Long:  `The 'explore' command opens an interactive terminal view: pick a page, move its sliders with the arrow keys and watch the charts redraw as sparklines.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := pages.NewCatalog()
		if err != nil {
			return err
		}
		return startExplorer(catalog)
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
