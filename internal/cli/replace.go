package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/ownerswap/pkg/audit"
	"github.com/arthur-debert/ownerswap/pkg/config"
	"github.com/arthur-debert/ownerswap/pkg/filesystem"
	"github.com/arthur-debert/ownerswap/pkg/logging"
	"github.com/arthur-debert/ownerswap/pkg/processor"
	"github.com/arthur-debert/ownerswap/pkg/ui/styles"
)

func newReplaceCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "replace <source> [destination]",
		Short:   MsgReplaceShort,
		Long:    MsgReplaceLong,
		Example: MsgReplaceExample,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, map[string]string{
				"dir":       "files.dir",
				"workers":   "files.workers",
				"audit-dir": "audit.dir",
			}, rewriteArgs(args))
			if err != nil {
				return err
			}
			if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
				cfg.Audit.Echo = false
			}
			if err := cfg.ValidateRewrite(); err != nil {
				return err
			}
			return runReplace(cmd.Context(), cmd.OutOrStdout(), opts.fs, cfg, opts.dryRun)
		},
	}

	cmd.Flags().String("dir", "", MsgFlagDir)
	cmd.Flags().Int("workers", 0, MsgFlagWorkers)
	cmd.Flags().String("audit-dir", "", MsgFlagAuditDir)
	cmd.Flags().BoolP("quiet", "q", false, MsgFlagQuiet)
	return cmd
}

// rewriteArgs turns <source> [destination] into config overrides. A missing
// destination removes the source owner.
func rewriteArgs(args []string) map[string]interface{} {
	dest := ""
	if len(args) > 1 {
		dest = args[1]
	}
	return map[string]interface{}{
		"rewrite.source":      args[0],
		"rewrite.destination": dest,
	}
}

func runReplace(ctx context.Context, w io.Writer, fsys filesystem.FS, cfg *config.Config, dryRun bool) (err error) {
	logger := logging.GetLogger("cli.replace")

	var rec processor.Recorder
	var alog *audit.Log
	if !dryRun {
		alog, err = audit.Open(fsys, audit.Options{Dir: cfg.Audit.Dir})
		if err != nil {
			return err
		}
		defer func() {
			if cerr := alog.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		rec = alog
	}

	run, err := processor.Process(ctx, fsys, processor.Options{
		Dir:         cfg.Files.Dir,
		Source:      cfg.Rewrite.Source,
		Destination: cfg.Rewrite.Destination,
		DryRun:      dryRun,
		Workers:     cfg.Files.Workers,
	}, rec)

	out := styles.NewRenderer(w)
	if run != nil && cfg.Audit.Echo {
		for _, c := range run.Changes {
			fmt.Fprint(w, out.Change(c.Path, c.Before, c.After))
		}
	}
	if err != nil {
		return err
	}

	logger.Info().Str("run", run.ID).Int("changed", len(run.Changes)).Msg("Replace finished")
	if dryRun {
		fmt.Fprintln(w, out.Notice(MsgDryRunNotice))
	}
	fmt.Fprintf(w, MsgReplaceSummary, len(run.Changes), len(run.Files))
	if alog != nil {
		fmt.Fprintf(w, MsgAuditWritten, alog.Path())
	}
	return nil
}
