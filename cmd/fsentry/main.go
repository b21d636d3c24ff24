package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fsentry/fsentry/internal/cmd"
	"github.com/fsentry/fsentry/internal/config"
	"github.com/fsentry/fsentry/internal/util"
)

// Set by the build process using ldflags.
var (
	binaryName = "fsentry"
	version    = "unknown"
	commit     = "unknown"
	buildTime  = "unknown"
)

func main() {
	os.Exit(run())
}

// run exists so deferred cleanup still happens before the process exit code is set.
func run() int {
	rootCmd := cmd.NewRootCmd(fmt.Sprintf("%s %s (commit: %s, built: %s)", binaryName, version, commit, buildTime))
	defer config.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *util.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return util.GeneralError
	}
	return 0
}
