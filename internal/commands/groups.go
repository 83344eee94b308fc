// internal/commands/groups.go
package biostat

import "github.com/spf13/cobra"

// listCmd groups the listing commands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List pages, transforms or commands",
}

// showCmd groups the inspection commands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show settings",
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
