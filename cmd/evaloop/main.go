// cmd/evaloop/main.go
package main

import (
	cmd "github.com/mwiater/evaloop/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main injects build information and hands off to the cobra root command.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
