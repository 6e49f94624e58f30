package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort          = "Replace owners in CODEOWNERS files"
	MsgReplaceShort       = "Replace an owner in a directory of CODEOWNERS files"
	MsgReportShort        = "Show how often each owner is named"
	MsgReportLong         = "Report counts every owner token on the rule lines of the configured directory."
	MsgDiffShort          = "Compare a directory before and after a rewrite"
	MsgGitHubShort        = "Work on the CODEOWNERS files of a GitHub organization"
	MsgGitHubReplaceShort = "Replace an owner and open a pull request per repository"
	MsgGitHubInspectShort = "List the owners named across an organization"
	MsgConfigShort        = "Print the effective configuration"
	MsgVersionShort       = "Print version information"

	// Status messages
	MsgDryRunNotice     = "DRY RUN MODE - No changes were made"
	MsgReplaceSummary   = "Rewrote %d of %d files.\n"
	MsgAuditWritten     = "Audit log: %s\n"
	MsgNoDifferences    = "No differences."
	MsgDiffSummary      = "%d files differ.\n"
	MsgDiffWritten      = "Wrote changed files to %s\n"
	MsgNoOwners         = "No owners found."
	MsgOwnerItem        = "  %s (%s)\n"
	MsgPRBodyPreview    = "Pull request body:"
	MsgVersionFormat    = "ownerswap version %s\n"
	MsgVersionCommit    = "Commit: %s\n"
	MsgVersionBuilt     = "Built:  %s\n"
	MsgTopicsHeader     = "Available help topics:"
	MsgTopicItem        = "  %s\n"
	MsgUnknownHelpTopic = "Unknown help topic %q\n"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun       = "Preview changes without executing them"
	MsgFlagConfig       = "Config file (default is ./.ownerswap.toml or ./ownerswap.toml)"
	MsgFlagDir          = "Directory of CODEOWNERS files"
	MsgFlagWorkers      = "Number of files rewritten in parallel"
	MsgFlagAuditDir     = "Directory receiving the audit log"
	MsgFlagQuiet        = "Do not print the changed files"
	MsgFlagFormat       = "Output format (text, table, json, yaml)"
	MsgFlagBefore       = "Directory holding the original files"
	MsgFlagAfter        = "Directory holding the rewritten files"
	MsgFlagOut          = "Directory receiving the changed files"
	MsgFlagUnified      = "Show unified diffs instead of before/after blocks"
	MsgFlagOrg          = "GitHub organization"
	MsgFlagBaseURL      = "GitHub Enterprise API base URL"
	MsgFlagUploadURL    = "GitHub Enterprise upload URL"
	MsgFlagVisibility   = "Repositories to list (all, public, private, forks, sources, member)"
	MsgFlagAllow        = "Only process these repositories"
	MsgFlagDeny         = "Never process these repositories"
	MsgFlagReviewer     = "Request a review from this user"
	MsgFlagTeamReviewer = "Request a review from this team"
	MsgFlagBranch       = "Branch receiving the commit"
	MsgFlagTitle        = "Pull request title"
	MsgFlagBody         = "Pull request body"
	MsgFlagDelay        = "Pause between two pull requests"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/replace-long.txt
	msgReplaceLongRaw string
	MsgReplaceLong    = strings.TrimSpace(msgReplaceLongRaw)

	//go:embed msgs/replace-example.txt
	msgReplaceExampleRaw string
	MsgReplaceExample    = strings.TrimRight(msgReplaceExampleRaw, "\n")

	//go:embed msgs/github-long.txt
	msgGitHubLongRaw string
	MsgGitHubLong    = strings.TrimSpace(msgGitHubLongRaw)

	//go:embed msgs/github-replace-example.txt
	msgGitHubReplaceExampleRaw string
	MsgGitHubReplaceExample    = strings.TrimRight(msgGitHubReplaceExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
