package main

import (
	"fmt"
	"runtime"

	"github.com/gateixeira/walletmon/internal/cli"
)

var (
	// These will be set by build flags
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetVersion(fmt.Sprintf("%s (commit: %s, built: %s, %s %s/%s)",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH))

	cli.Execute()
}
