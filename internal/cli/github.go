package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/ownerswap/pkg/audit"
	"github.com/arthur-debert/ownerswap/pkg/config"
	"github.com/arthur-debert/ownerswap/pkg/github"
	"github.com/arthur-debert/ownerswap/pkg/ui/styles"
)

// githubFlags are the connection flags shared by the github subcommands.
var githubFlags = map[string]string{
	"org":        "github.org",
	"base-url":   "github.base_url",
	"upload-url": "github.upload_url",
	"visibility": "github.visibility",
}

func newGitHubCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "github",
		Short: MsgGitHubShort,
		Long:  MsgGitHubLong,
	}

	cmd.PersistentFlags().String("org", "", MsgFlagOrg)
	cmd.PersistentFlags().String("base-url", "", MsgFlagBaseURL)
	cmd.PersistentFlags().String("upload-url", "", MsgFlagUploadURL)
	cmd.PersistentFlags().String("visibility", "", MsgFlagVisibility)

	cmd.AddCommand(newGitHubInspectCmd(opts))
	cmd.AddCommand(newGitHubReplaceCmd(opts))
	return cmd
}

func newGitHubClient(ctx context.Context, cfg *config.Config) (*github.Client, error) {
	if err := cfg.ValidateGitHub(); err != nil {
		return nil, err
	}
	return github.NewClient(ctx, cfg.GitHub.Token, cfg.GitHub.BaseURL, cfg.GitHub.UploadURL)
}

func newGitHubInspectCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: MsgGitHubInspectShort,
		Long: `Inspect reads the CODEOWNERS file of every active repository and lists each
owner with the repositories that name it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, githubFlags, nil)
			if err != nil {
				return err
			}
			client, err := newGitHubClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			owners, err := client.Inspect(cmd.Context(), cfg.GitHub.Org, cfg.GitHub.Visibility)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(owners) == 0 {
				fmt.Fprintln(w, MsgNoOwners)
				return nil
			}
			for _, o := range owners {
				fmt.Fprintf(w, MsgOwnerItem, o.Name, strings.Join(o.Repos, ", "))
			}
			return nil
		},
	}
}

func newGitHubReplaceCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace <source> [destination]",
		Short: MsgGitHubReplaceShort,
		Long: `Replace rewrites the CODEOWNERS file of every active repository of the
organization. Each changed file is committed to a branch and proposed in a
pull request against the default branch. Leaving out [destination] removes
<source> instead.`,
		Example: MsgGitHubReplaceExample,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := map[string]string{
				"allow":         "github.allow",
				"deny":          "github.deny",
				"reviewer":      "github.reviewers",
				"team-reviewer": "github.team_reviewers",
				"branch":        "github.branch",
				"title":         "github.pr_title",
				"body":          "github.pr_body",
				"delay":         "github.delay",
				"audit-dir":     "audit.dir",
			}
			for k, v := range githubFlags {
				keys[k] = v
			}
			cfg, err := opts.loadConfig(cmd, keys, rewriteArgs(args))
			if err != nil {
				return err
			}
			if err := cfg.ValidateRewrite(); err != nil {
				return err
			}
			client, err := newGitHubClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return runGitHubReplace(cmd.Context(), cmd.OutOrStdout(), opts, client, cfg)
		},
	}

	cmd.Flags().StringSlice("allow", nil, MsgFlagAllow)
	cmd.Flags().StringSlice("deny", nil, MsgFlagDeny)
	cmd.Flags().StringSlice("reviewer", nil, MsgFlagReviewer)
	cmd.Flags().StringSlice("team-reviewer", nil, MsgFlagTeamReviewer)
	cmd.Flags().String("branch", "", MsgFlagBranch)
	cmd.Flags().String("title", "", MsgFlagTitle)
	cmd.Flags().String("body", "", MsgFlagBody)
	cmd.Flags().Duration("delay", 0, MsgFlagDelay)
	cmd.Flags().String("audit-dir", "", MsgFlagAuditDir)
	return cmd
}

func runGitHubReplace(ctx context.Context, w io.Writer, opts *globalOptions, client *github.Client, cfg *config.Config) (err error) {
	r := &github.Replacer{
		Client:        client,
		Org:           cfg.GitHub.Org,
		Visibility:    cfg.GitHub.Visibility,
		Source:        cfg.Rewrite.Source,
		Destination:   cfg.Rewrite.Destination,
		Branch:        cfg.GitHub.Branch,
		Title:         cfg.GitHub.PRTitle,
		Body:          cfg.GitHub.PRBody,
		Reviewers:     cfg.GitHub.Reviewers,
		TeamReviewers: cfg.GitHub.TeamReviewers,
		Allow:         cfg.GitHub.Allow,
		Deny:          cfg.GitHub.Deny,
		DryRun:        opts.dryRun,
		Delay:         cfg.GitHub.Delay.Std(),
	}

	if !opts.dryRun {
		alog, openErr := audit.Open(opts.fs, audit.Options{Dir: cfg.Audit.Dir})
		if openErr != nil {
			return openErr
		}
		defer func() {
			if cerr := alog.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		r.Recorder = alog
	}

	outcomes, runErr := r.Run(ctx)

	out := styles.NewRenderer(w)
	if cfg.Audit.Echo {
		for _, o := range outcomes {
			if o.Status == github.StatusPlanned || o.Status == github.StatusOpened {
				fmt.Fprint(w, out.Change(o.Repo+"/"+o.Path, o.Before, o.After))
			}
		}
	}
	if len(outcomes) > 0 {
		if err := renderOutcomes(w, outcomes); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	if opts.dryRun {
		fmt.Fprintln(w, MsgPRBodyPreview)
		body, err := out.Markdown(r.Body)
		if err != nil {
			return err
		}
		fmt.Fprint(w, body)
		fmt.Fprintln(w, out.Notice(MsgDryRunNotice))
	}
	return nil
}

func renderOutcomes(w io.Writer, outcomes []github.Outcome) error {
	data := pterm.TableData{{"Repository", "Status", "Pull request"}}
	for _, o := range outcomes {
		data = append(data, []string{o.Repo, string(o.Status), o.PR})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}
