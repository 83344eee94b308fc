// internal/commands/serve.go
package biostat

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/biostat/internal/logging"
	"github.com/mwiater/biostat/internal/pages"
	"github.com/mwiater/biostat/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd starts the web application.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pages over HTTP",
	Long: `Serve the pages, their JSON and image API, the websocket update channel
and Prometheus metrics on the configured address until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := pages.NewCatalog()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := GetConfig()
		logging.LogEvent("serving %d pages on http://%s", len(catalog.Pages()), cfg.Addr())
		return server.New(*cfg, catalog).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
