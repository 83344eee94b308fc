// internal/commands/render.go
package biostat

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mwiater/biostat/internal/engine"
	"github.com/mwiater/biostat/internal/logging"
	"github.com/mwiater/biostat/internal/pages"
	"github.com/mwiater/biostat/internal/render"
	"github.com/mwiater/biostat/internal/report"
	"github.com/mwiater/biostat/internal/util"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var renderOpts struct {
	OutDir string
	Format string
	Width  int
	Height int
}

// renderCmd writes every chart of every page as an image.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render every chart at its default settings to image files",
	Args:  cobra.NoArgs,
	Long: `Render every chart at its default settings. png and svg write one image per
chart; html writes a single standalone report that draws all charts with plotly.js.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := pages.NewCatalog()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(renderOpts.OutDir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", renderOpts.OutDir, err)
		}

		if renderOpts.Format == "html" {
			path, err := writeReport(catalog, renderOpts.OutDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		}

		format, err := render.ParseFormat(renderOpts.Format)
		if err != nil {
			return err
		}

		written, err := renderCatalog(catalog, renderOpts.OutDir, format, render.Options{Width: renderOpts.Width, Height: renderOpts.Height})
		if err != nil {
			return err
		}
		for _, path := range written {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

// renderCatalog renders each page's charts concurrently and returns the
// written paths in page order.
func renderCatalog(catalog *pages.Catalog, dir string, format render.Format, opts render.Options) ([]string, error) {
	type job struct {
		page   string
		update engine.Update
	}
	var jobs []job
	for _, p := range catalog.Pages() {
		if !p.Interactive() {
			continue
		}
		updates, err := engine.Evaluate(p, engine.Request{})
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", p.Name, err)
		}
		for _, u := range updates {
			if u.Figure != nil {
				jobs = append(jobs, job{page: p.Name, update: u})
			}
		}
	}

	paths := make([]string, len(jobs))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, j := range jobs {
		g.Go(func() error {
			var buf bytes.Buffer
			if err := render.Render(&buf, *j.update.Figure, format, opts); err != nil {
				return fmt.Errorf("render %s/%s: %w", j.page, j.update.Target, err)
			}
			path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", j.page, j.update.Target, format))
			if err := util.WriteFile(path, buf.Bytes()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			paths[i] = path
			logging.LogEvent("rendered %s (%d bytes)", path, buf.Len())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// writeReport writes the standalone HTML report into dir.
func writeReport(catalog *pages.Catalog, dir string) (string, error) {
	cfg := GetConfig()
	html, err := report.Generate(catalog, report.Options{
		PlotlyURL:  cfg.PlotlyScript(),
		Stylesheet: cfg.Stylesheet(),
	})
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "report.html")
	if err := util.WriteFile(path, []byte(html)); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	logging.LogEvent("wrote report %s", path)
	return path, nil
}

func init() {
	renderCmd.Flags().StringVarP(&renderOpts.OutDir, "out", "o", "charts", "directory the images are written to")
	renderCmd.Flags().StringVarP(&renderOpts.Format, "format", "f", string(render.PNG), "output format: png, svg or html")
	renderCmd.Flags().IntVar(&renderOpts.Width, "width", 0, "image width in pixels (0 = default)")
	renderCmd.Flags().IntVar(&renderOpts.Height, "height", 0, "image height in pixels (0 = default)")
	rootCmd.AddCommand(renderCmd)
}
