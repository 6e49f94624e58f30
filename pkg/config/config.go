package config

import (
	"strings"
	"time"

	"github.com/arthur-debert/ownerswap/pkg/errors"
)

// Config is the complete ownerswap configuration.
type Config struct {
	Rewrite RewriteConfig `koanf:"rewrite" toml:"rewrite"`
	Files   FilesConfig   `koanf:"files" toml:"files"`
	Audit   AuditConfig   `koanf:"audit" toml:"audit"`
	Report  ReportConfig  `koanf:"report" toml:"report"`
	Diff    DiffConfig    `koanf:"diff" toml:"diff"`
	GitHub  GitHubConfig  `koanf:"github" toml:"github"`
}

// RewriteConfig names the owner being replaced and its replacement.
// An empty destination removes the source owner.
type RewriteConfig struct {
	Source      string `koanf:"source" toml:"source"`
	Destination string `koanf:"destination" toml:"destination"`
}

// FilesConfig controls the local directory pass.
type FilesConfig struct {
	Dir     string `koanf:"dir" toml:"dir"`
	Workers int    `koanf:"workers" toml:"workers"`
}

// AuditConfig controls where the operation log is written.
type AuditConfig struct {
	Dir  string `koanf:"dir" toml:"dir"`
	Echo bool   `koanf:"echo" toml:"echo"`
}

// ReportConfig controls the owner frequency report.
type ReportConfig struct {
	Dir    string `koanf:"dir" toml:"dir"`
	Format string `koanf:"format" toml:"format"`
}

// DiffConfig controls the before/after directory comparison.
type DiffConfig struct {
	Before  string `koanf:"before" toml:"before"`
	After   string `koanf:"after" toml:"after"`
	Out     string `koanf:"out" toml:"out"`
	Unified bool   `koanf:"unified" toml:"unified"`
}

// GitHubConfig controls the remote mode.
type GitHubConfig struct {
	BaseURL       string   `koanf:"base_url" toml:"base_url"`
	UploadURL     string   `koanf:"upload_url" toml:"upload_url"`
	Token         string   `koanf:"token" toml:"token"`
	Org           string   `koanf:"org" toml:"org"`
	Visibility    string   `koanf:"visibility" toml:"visibility"`
	Branch        string   `koanf:"branch" toml:"branch"`
	PRTitle       string   `koanf:"pr_title" toml:"pr_title"`
	PRBody        string   `koanf:"pr_body" toml:"pr_body"`
	Allow         []string `koanf:"allow" toml:"allow"`
	Deny          []string `koanf:"deny" toml:"deny"`
	Reviewers     []string `koanf:"reviewers" toml:"reviewers"`
	TeamReviewers []string `koanf:"team_reviewers" toml:"team_reviewers"`
	Delay         Duration `koanf:"delay" toml:"delay"`
}

// Duration is a time.Duration that reads and writes as "3s" style text.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// ValidateRewrite checks the settings needed to rewrite owners.
func (c *Config) ValidateRewrite() error {
	if strings.TrimSpace(c.Rewrite.Source) == "" {
		return errors.New(errors.ErrConfigValid, "rewrite.source must not be empty")
	}
	if strings.TrimSpace(c.Rewrite.Source) == strings.TrimSpace(c.Rewrite.Destination) {
		return errors.New(errors.ErrConfigValid, "rewrite.source and rewrite.destination are the same owner").
			WithDetail("owner", c.Rewrite.Source)
	}
	if c.Files.Workers < 1 {
		return errors.Newf(errors.ErrConfigValid, "files.workers must be at least 1, got %d", c.Files.Workers)
	}
	return nil
}

// ValidateGitHub checks the settings needed to talk to GitHub.
func (c *Config) ValidateGitHub() error {
	if c.GitHub.Org == "" {
		return errors.New(errors.ErrConfigValid, "github.org must not be empty")
	}
	if c.GitHub.Branch == "" {
		return errors.New(errors.ErrConfigValid, "github.branch must not be empty")
	}
	if c.GitHub.UploadURL != "" && c.GitHub.BaseURL == "" {
		return errors.New(errors.ErrConfigValid, "github.upload_url requires github.base_url")
	}
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
