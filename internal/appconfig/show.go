// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &fallback
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Listen Address:   %s\n", cfg.Addr())
	fmt.Fprintf(out, "  Debug:            %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:         %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Metrics:          %v\n", cfg.Metrics)
	fmt.Fprintf(out, "  Websocket:        %v\n", cfg.Websocket)
	fmt.Fprintf(out, "  Session TTL:      %s\n", cfg.SessionTTL())
	fmt.Fprintf(out, "  Shutdown Timeout: %s\n", cfg.ShutdownTimeout())
	fmt.Fprintf(out, "  Plotly Script:    %s\n", cfg.PlotlyScript())
	fmt.Fprintf(out, "  Stylesheet:       %s\n", cfg.Stylesheet())
	if cfg.AssetsDir != "" {
		fmt.Fprintf(out, "  Assets Dir:       %s\n", cfg.AssetsDir)
	} else {
		fmt.Fprintln(out, "  Assets Dir:       (embedded)")
	}
}
