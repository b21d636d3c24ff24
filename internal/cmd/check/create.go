package check

import (
	"fmt"

	"github.com/dsnet/golib/unitconv"
	"github.com/fsentry/fsentry/internal/cmdfmt"
	"github.com/fsentry/fsentry/internal/util"
	"github.com/fsentry/fsentry/pkg/check"
	"github.com/fsentry/fsentry/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const baselineFlagHelp = "Baseline file name (default: baseline.json)."

func NewCreateCmd() *cobra.Command {
	backendCfg := check.CreateCfg{}

	cmd := &cobra.Command{
		Use:   "create <path>",
		Short: "Record a baseline of per-file digests for a directory tree",
		Long: `Record a baseline of per-file digests for a directory tree.

Walks the full tree under <path> and records a SHA-256 digest for every regular file. The
resulting baseline unconditionally overwrites any existing baseline file at the same location.
Files that cannot be read are excluded from the baseline since they could never be verified later.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backendCfg.Directory = args[0]
			return runCreateCmd(cmd, backendCfg)
		},
	}

	cmd.Flags().StringVar(&backendCfg.BaselinePath, "baseline", "baseline.json", baselineFlagHelp)
	addScanFlags(cmd, &backendCfg.Scan)
	return cmd
}

func addScanFlags(cmd *cobra.Command, scan *check.ScanOptions) {
	cmd.Flags().StringArrayVar(&scan.Exclude, "exclude", nil,
		"Glob pattern matched against the path relative to the root; matching files and directories are not scanned (repeatable).")
	cmd.Flags().StringVar(&scan.FilterExpr, "filter-files", "", filesystem.FilterFilesHelp)
}

func runCreateCmd(cmd *cobra.Command, cfg check.CreateCfg) error {
	result, err := check.Create(cmd.Context(), afero.NewOsFs(), cfg)
	if err != nil {
		return err
	}

	for _, path := range result.Skipped {
		cmdfmt.Printf("Error reading file %s (excluded from baseline)\n", path)
	}
	cmdfmt.Printf("Baseline created for %s with %d files (%sB hashed)\n",
		cfg.Directory, len(result.Snapshot.Files),
		unitconv.FormatPrefix(float64(result.BytesHashed), unitconv.IEC, 1))

	if result.PersistErr != nil {
		return util.NewExitError(fmt.Errorf("baseline was built but could not be written: %w", result.PersistErr), util.GeneralError)
	}
	cmdfmt.Printf("Baseline saved to %s\n", cfg.BaselinePath)
	return nil
}
