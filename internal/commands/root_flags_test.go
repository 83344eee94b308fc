// internal/commands/root_flags_test.go
package biostat

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/biostat/internal/logging"
	"github.com/spf13/viper"
)

var persistentFlags = []string{"debug", "host", "port", "metrics", "websocket", "assetsDir", "logFile"}

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// useConfig points the root command at a fresh config file and a temporary
// log file, restoring the previous state when the test ends.
func useConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := writeTempConfig(t, content)

	prevCfgFile := cfgFile
	cfgFile = configPath
	viper.SetConfigFile(configPath)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
	})
	t.Cleanup(func() { _ = logging.Close() })

	for _, name := range persistentFlags {
		resetFlag(name)
	}
	_ = rootCmd.PersistentFlags().Set("logFile", filepath.Join(t.TempDir(), "biostat.log"))
	t.Cleanup(func() {
		for _, name := range persistentFlags {
			resetFlag(name)
		}
	})
	return configPath
}

func TestPersistentPreRunEUsesFlagValues(t *testing.T) {
	configPath := useConfig(t, "port: 9000\nmetrics: false\n")

	_ = rootCmd.PersistentFlags().Set("debug", "true")
	_ = rootCmd.PersistentFlags().Set("host", "0.0.0.0")

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	if currentConfig == nil || currentConfig.ConfigPath != configPath {
		t.Fatalf("expected config loaded with path %s", configPath)
	}
	if !currentConfig.Debug {
		t.Fatalf("expected debug flag to flow into config: %+v", currentConfig)
	}
	if got := currentConfig.Addr(); got != "0.0.0.0:9000" {
		t.Fatalf("expected flag host and file port, got %s", got)
	}
	if currentConfig.Metrics {
		t.Fatalf("expected metrics disabled by the config file")
	}
	if !currentConfig.Websocket {
		t.Fatalf("expected websocket to keep its default")
	}
}

func TestPersistentPreRunEInvalidPort(t *testing.T) {
	useConfig(t, "{}\n")
	_ = rootCmd.PersistentFlags().Set("port", "70000")

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
		t.Fatalf("expected error for an out of range port")
	}
}

func TestShowConfigCommandOutput(t *testing.T) {
	configPath := useConfig(t, "{}\n")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--debug", "show", "config"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	_, err := rootCmd.ExecuteC()
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Config file: "+configPath) {
		t.Fatalf("expected config file path in output, got %s", out)
	}
	if !strings.Contains(out, "Debug:            true") {
		t.Fatalf("expected debug in output, got %s", out)
	}
	if !strings.Contains(out, "Listen Address:   127.0.0.1:8050") {
		t.Fatalf("expected default address in output, got %s", out)
	}
}
