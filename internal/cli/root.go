package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arthur-debert/ownerswap/internal/version"
	"github.com/arthur-debert/ownerswap/pkg/config"
	"github.com/arthur-debert/ownerswap/pkg/filesystem"
	"github.com/arthur-debert/ownerswap/pkg/logging"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbosity  int
	configFile string
	dryRun     bool
	fs         filesystem.FS
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{fs: filesystem.NewOS()}

	rootCmd := &cobra.Command{
		Use:     "ownerswap",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	initTemplateFormatting()
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newReplaceCmd(opts))
	rootCmd.AddCommand(newReportCmd(opts))
	rootCmd.AddCommand(newDiffCmd(opts))
	rootCmd.AddCommand(newGitHubCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	initTopics(rootCmd)

	return rootCmd
}

// loadConfig builds the effective configuration, letting the flags of cmd
// that were set explicitly override the matching config keys.
func (o *globalOptions) loadConfig(cmd *cobra.Command, keys map[string]string, extra map[string]interface{}) (*config.Config, error) {
	overrides := flagOverrides(cmd.Flags(), keys)
	for k, v := range extra {
		overrides[k] = v
	}
	return config.Load(config.LoadOptions{
		ConfigFile: o.configFile,
		Overrides:  overrides,
	})
}

// flagOverrides maps changed flags to config keys. Slice flags keep their
// elements; everything else is passed as text and decoded by the loader.
func flagOverrides(flags *pflag.FlagSet, keys map[string]string) map[string]interface{} {
	overrides := make(map[string]interface{})
	for name, key := range keys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			overrides[key] = sv.GetSlice()
			continue
		}
		overrides[key] = f.Value.String()
	}
	return overrides
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(w, MsgVersionCommit, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(w, MsgVersionBuilt, version.Date)
			}
		},
	}
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long: `Config prints the configuration ownerswap would use, after merging the
built-in defaults, the config file, OWNERSWAP_* environment variables and flags.
The GitHub token is redacted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, nil, nil)
			if err != nil {
				return err
			}
			out, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
