package check

import (
	"errors"
	"fmt"

	"github.com/fsentry/fsentry/internal/cmdfmt"
	"github.com/fsentry/fsentry/internal/util"
	"github.com/fsentry/fsentry/pkg/check"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func NewVerifyCmd() *cobra.Command {
	backendCfg := check.VerifyCfg{}

	cmd := &cobra.Command{
		Use:   "verify [path]",
		Short: "Compare the current tree state against a stored baseline",
		Long: `Compare the current tree state against a stored baseline.

The comparison always runs against the root directory recorded in the baseline; a positional path
is accepted for symmetry with create but ignored. Each baseline entry is classified as changed,
missing, or unchanged, and files on disk without a baseline entry are reported as new. The
baseline's last_checked timestamp is updated and written back after the comparison.

When drift is found the command exits with a distinct non-zero code so scripted callers can react.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerifyCmd(cmd, backendCfg)
		},
	}

	cmd.Flags().StringVar(&backendCfg.BaselinePath, "baseline", "baseline.json", baselineFlagHelp)
	addScanFlags(cmd, &backendCfg.Scan)
	return cmd
}

func runVerifyCmd(cmd *cobra.Command, cfg check.VerifyCfg) error {
	report, err := check.Verify(cmd.Context(), afero.NewOsFs(), cfg)
	if err != nil {
		return err
	}

	if report.Clean() {
		cmdfmt.Printf("All files match the baseline. No changes detected.\n")
	} else {
		tbl := cmdfmt.NewPrintomatic([]string{"status", "path", "detail"}, []string{"status", "path", "detail"})
		for _, path := range report.Changed {
			detail := ""
			if report.Unreadable[path] {
				detail = "unreadable during verification"
			}
			tbl.AddItem("changed", path, detail)
		}
		for _, path := range report.New {
			tbl.AddItem("new", path, "not in baseline")
		}
		for _, path := range report.Missing {
			tbl.AddItem("missing", path, "in baseline but not found")
		}
		tbl.PrintRemaining()
		cmdfmt.Printf("Summary: %d changed | %d new | %d missing\n",
			len(report.Changed), len(report.New), len(report.Missing))
	}

	if report.PersistErr != nil {
		return util.NewExitError(fmt.Errorf("unable to update baseline timestamps: %w", report.PersistErr), util.GeneralError)
	}
	if !report.Clean() {
		return util.NewExitError(errors.New("integrity drift detected"), util.PartialSuccess)
	}
	return nil
}
