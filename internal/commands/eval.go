// internal/commands/eval.go
package biostat

import (
	"encoding/json"
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/mwiater/biostat/internal/control"
	"github.com/mwiater/biostat/internal/engine"
	"github.com/mwiater/biostat/internal/pages"
	"github.com/spf13/cobra"
)

var (
	evalSets   []string
	evalClicks []string
)

// evalCmd prints one chart of a page as plotly figure JSON.
var evalCmd = &cobra.Command{
	Use:   "eval <page> <graph>",
	Short: "Print the figure JSON of a page's chart",
	Long: `Evaluate a page with its default slider values, overridden by --set id=value,
and print the figure drawn into the named graph. --click graph:curve:index
selects a point as a chart click would.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := pages.NewCatalog()
		if err != nil {
			return err
		}
		p, err := findPage(catalog, args[0])
		if err != nil {
			return err
		}
		req, err := evalRequest(evalSets, evalClicks)
		if err != nil {
			return err
		}
		updates, err := engine.Evaluate(p, req)
		if err != nil {
			return fmt.Errorf("evaluate %s: %w", p.Name, err)
		}

		for _, u := range updates {
			if u.Target != args[1] || u.Figure == nil {
				continue
			}
			if DebugEnabled() {
				pp.Fprintln(cmd.ErrOrStderr(), u.Figure.Layout)
			}
			out, err := json.MarshalIndent(u, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		return fmt.Errorf("page %s has no graph %q (have %v)", p.Name, args[1], p.Graphs())
	},
}

// evalRequest turns the --set and --click flags into a full-render request.
func evalRequest(sets, clicks []string) (engine.Request, error) {
	req := engine.Request{Change: engine.Change{
		Values:     make(map[string]float64, len(sets)),
		Selections: make(map[string]*control.Selection, len(clicks)),
	}}
	for _, s := range sets {
		id, v, err := control.ParseAssignment(s)
		if err != nil {
			return req, err
		}
		req.Values[id] = v
	}
	for _, c := range clicks {
		graph, sel, err := control.ParseClick(c)
		if err != nil {
			return req, err
		}
		req.Selections[graph] = sel
	}
	return req, nil
}

func init() {
	evalCmd.Flags().StringArrayVar(&evalSets, "set", nil, "slider value as id=value (repeatable)")
	evalCmd.Flags().StringArrayVar(&evalClicks, "click", nil, "chart click as graph:curve:index (repeatable)")
	rootCmd.AddCommand(evalCmd)
}
