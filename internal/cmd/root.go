package cmd

import (
	"github.com/fsentry/fsentry/internal/cmd/check"
	"github.com/fsentry/fsentry/internal/config"
	globalConfig "github.com/fsentry/fsentry/pkg/config"
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the fsentry command tree. Version information is provided by the build via
// main's ldflags vars.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fsentry",
		Short: "Detect unexpected changes to a directory tree using per-file digests",
		Long: `fsentry detects unauthorized or unexpected modifications to a directory tree.

A baseline snapshot records a SHA-256 digest for every regular file under a root directory.
Verifying compares the current tree against the baseline and classifies every file as changed,
new, or missing. The baseline file itself is plain JSON and is not cryptographically protected.
`,
		Version:      version,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags are parsed by this point, so the logger can be built from them.
			_, err := globalConfig.GetLogger()
			return err
		},
	}

	config.InitGlobalFlags(cmd)
	cmd.AddCommand(check.NewCreateCmd())
	cmd.AddCommand(check.NewVerifyCmd())
	return cmd
}
