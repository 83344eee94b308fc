// cmd/biostat/main.go
package main

import (
	biostat "github.com/mwiater/biostat/internal/commands"
)

// Set by the linker at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = biostat.SetVersionInfo
	executeCmd     = biostat.Execute
)

// main starts the biostat CLI application by delegating to the
// cobra root command defined in the biostat package.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
