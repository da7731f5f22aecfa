package main

import (
	"os"

	"github.com/truthlens/truthlens/internal/cli"
)

// Release metadata, injected with -ldflags. Defaults identify a local
// source build; `truthlens version` reports them.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := cli.NewRootCommand(version, commit, date)
	if err := root.Execute(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}
