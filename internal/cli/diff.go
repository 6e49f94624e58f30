package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/ownerswap/pkg/dirdiff"
)

func newDiffCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: MsgDiffShort,
		Long: `Diff compares every file of the before directory with the file of the same
name in the after directory and prints the ones that differ. Unless --dry-run
is set, the changed files are also copied to the out directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, map[string]string{
				"before":  "diff.before",
				"after":   "diff.after",
				"out":     "diff.out",
				"unified": "diff.unified",
			}, nil)
			if err != nil {
				return err
			}

			out := cfg.Diff.Out
			if opts.dryRun {
				out = ""
			}
			entries, err := dirdiff.Run(opts.fs, dirdiff.Options{
				Before: cfg.Diff.Before,
				After:  cfg.Diff.After,
				Out:    out,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(w, MsgNoDifferences)
				return nil
			}
			if err := dirdiff.Render(w, entries, cfg.Diff.Unified); err != nil {
				return err
			}
			fmt.Fprintf(w, MsgDiffSummary, len(entries))
			if out != "" {
				fmt.Fprintf(w, MsgDiffWritten, out)
			}
			return nil
		},
	}

	cmd.Flags().String("before", "", MsgFlagBefore)
	cmd.Flags().String("after", "", MsgFlagAfter)
	cmd.Flags().String("out", "", MsgFlagOut)
	cmd.Flags().Bool("unified", false, MsgFlagUnified)
	return cmd
}
