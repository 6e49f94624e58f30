package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/ownerswap/pkg/report"
)

func newReportCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: MsgReportShort,
		Long:  MsgReportLong,
		Example: `  # Owners of the default directory, most frequent first
  ownerswap report

  # Machine readable output
  ownerswap report --dir codeowners --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, map[string]string{
				"dir":    "report.dir",
				"format": "report.format",
			}, nil)
			if err != nil {
				return err
			}
			format, err := report.ParseFormat(cfg.Report.Format)
			if err != nil {
				return err
			}

			r, err := report.Collect(opts.fs, cfg.Report.Dir)
			if err != nil {
				return err
			}
			return r.Render(cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().String("dir", "", MsgFlagDir)
	cmd.Flags().StringP("format", "f", "", MsgFlagFormat)
	return cmd
}
