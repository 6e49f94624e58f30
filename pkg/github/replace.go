package github

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/ownerswap/pkg/audit"
	"github.com/arthur-debert/ownerswap/pkg/errors"
	"github.com/arthur-debert/ownerswap/pkg/logging"
	"github.com/arthur-debert/ownerswap/pkg/rewrite"
)

// Status is what happened to one repository during a Replacer run.
type Status string

const (
	StatusDenied    Status = "denied"
	StatusMissing   Status = "missing"
	StatusUnchanged Status = "unchanged"
	StatusPlanned   Status = "planned"
	StatusOpened    Status = "opened"
)

// Outcome reports the result for one repository.
type Outcome struct {
	Repo   string
	Path   string
	Status Status
	Before string
	After  string
	// PR is the pull request URL when one was opened.
	PR string
}

// Recorder receives the before/after content of every rewritten file.
type Recorder interface {
	Write(audit.Record) error
}

// Replacer rewrites one owner across an organization.
type Replacer struct {
	Client      *Client
	Org         string
	Visibility  string
	Source      string
	Destination string

	Branch        string
	Title         string
	Body          string
	Reviewers     []string
	TeamReviewers []string

	// Allow, when non-empty, restricts the run to the named repositories.
	// Deny always wins over Allow.
	Allow []string
	Deny  []string

	DryRun   bool
	Delay    time.Duration
	Recorder Recorder
}

// CommitMessage describes the rewrite.
func (r *Replacer) CommitMessage() string {
	if r.Destination == "" {
		return fmt.Sprintf("Remove %s", r.Source)
	}
	return fmt.Sprintf("Update %s to %s", r.Source, r.Destination)
}

// Run processes every active repository in listing order. It stops at the
// first failing repository and returns the outcomes gathered so far.
func (r *Replacer) Run(ctx context.Context) ([]Outcome, error) {
	logger := logging.GetLogger("github").With().Str("org", r.Org).Logger()
	defer logging.LogOperationStart(logger, "replace")()

	repos, err := r.Client.ListActiveRepositories(ctx, r.Org, r.Visibility)
	if err != nil {
		return nil, err
	}

	allow, deny := toSet(r.Allow), toSet(r.Deny)
	var outcomes []Outcome
	opened := 0
	for _, repo := range repos {
		name := repo.GetName()
		out := Outcome{Repo: name}

		if _, ok := deny[name]; ok || (len(allow) > 0 && !contains(allow, name)) {
			logger.Info().Str("repo", name).Msg("Repository denied")
			out.Status = StatusDenied
			outcomes = append(outcomes, out)
			continue
		}

		fc, err := r.Client.GetCodeowners(ctx, repo, "")
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			logger.Info().Str("repo", name).Msg("No CODEOWNERS file")
			out.Status = StatusMissing
			outcomes = append(outcomes, out)
			continue
		}
		if err != nil {
			return outcomes, err
		}
		before, err := fc.GetContent()
		if err != nil {
			return outcomes, errors.Wrap(err, errors.ErrGitHubAPI, "failed to decode CODEOWNERS").
				WithDetail("repo", name)
		}

		out.Path = fc.GetPath()
		out.Before = before
		out.After = rewrite.Content(before, r.Source, r.Destination)
		if out.After == before {
			logger.Info().Str("repo", name).Msg("No target owner")
			out.Status = StatusUnchanged
			outcomes = append(outcomes, out)
			continue
		}

		if r.Recorder != nil {
			rec := audit.Record{Path: name + "/" + out.Path, Before: before, After: out.After}
			if err := r.Recorder.Write(rec); err != nil {
				return outcomes, err
			}
		}

		if r.DryRun {
			logger.Info().Str("repo", name).Msg("Would open pull request")
			out.Status = StatusPlanned
			outcomes = append(outcomes, out)
			continue
		}

		if opened > 0 {
			if err := sleep(ctx, r.Delay); err != nil {
				return outcomes, errors.Wrap(err, errors.ErrCanceled, "replace canceled")
			}
		}
		if err := r.Client.CreatePatch(ctx, repo, fc, out.After, r.Branch, r.CommitMessage()); err != nil {
			return outcomes, err
		}
		pr, err := r.Client.OpenPR(ctx, repo, r.Title, r.Branch, r.Body, r.Reviewers, r.TeamReviewers)
		if err != nil {
			return outcomes, err
		}
		opened++

		out.Status = StatusOpened
		out.PR = pr.GetHTMLURL()
		outcomes = append(outcomes, out)
		logger.Info().Str("repo", name).Str("pr", out.PR).Msg("Pull request opened")
	}

	return outcomes, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func contains(set map[string]struct{}, name string) bool {
	_, ok := set[name]
	return ok
}
