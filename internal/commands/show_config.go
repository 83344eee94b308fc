// internal/commands/show_config.go
package biostat

import (
	"github.com/mwiater/biostat/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the YAML config is loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		fallback := appconfig.Default()
		fallback.Debug = viper.GetBool("debug")
		fallback.Host = viper.GetString("host")
		fallback.Port = viper.GetInt("port")
		fallback.Metrics = viper.GetBool("metrics")
		fallback.Websocket = viper.GetBool("websocket")
		fallback.LogFile = viper.GetString("logFile")
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), GetConfig(), fallback)
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
