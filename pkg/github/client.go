// Package github rewrites CODEOWNERS files across the repositories of a
// GitHub organization and opens a pull request for every changed file.
package github

import (
	"context"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v48/github"
	"golang.org/x/oauth2"

	"github.com/arthur-debert/ownerswap/pkg/errors"
	"github.com/arthur-debert/ownerswap/pkg/logging"
)

// CodeownersPaths are tried in order when looking up a repository's file.
var CodeownersPaths = []string{".github/CODEOWNERS", "CODEOWNERS"}

// Client wraps the go-github client with the calls ownerswap needs.
type Client struct {
	gh *gh.Client
}

// NewClient returns a client authenticated with token, or anonymous when
// token is empty. A non-empty baseURL targets a GitHub Enterprise server;
// uploadURL defaults to baseURL.
func NewClient(ctx context.Context, token, baseURL, uploadURL string) (*Client, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	if baseURL == "" {
		return &Client{gh: gh.NewClient(httpClient)}, nil
	}
	if uploadURL == "" {
		uploadURL = baseURL
	}
	c, err := gh.NewEnterpriseClient(baseURL, uploadURL, httpClient)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid enterprise url %s", baseURL)
	}
	return &Client{gh: c}, nil
}

// ListActiveRepositories returns every non-archived repository of org.
// visibility is passed as the listing type (all, public, private, ...).
func (c *Client) ListActiveRepositories(ctx context.Context, org, visibility string) ([]*gh.Repository, error) {
	logger := logging.GetLogger("github")
	opt := &gh.RepositoryListByOrgOptions{
		Type:        visibility,
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var repos []*gh.Repository
	for {
		page, resp, err := c.gh.Repositories.ListByOrg(ctx, org, opt)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrGitHubAPI, "failed to list repositories of %s", org).
				WithDetail("org", org)
		}
		for _, r := range page {
			if r.GetArchived() {
				logger.Debug().Str("repo", r.GetFullName()).Msg("Skipping archived repository")
				continue
			}
			repos = append(repos, r)
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	logger.Debug().Str("org", org).Int("count", len(repos)).Msg("Listed repositories")
	return repos, nil
}

// GetCodeowners fetches the CODEOWNERS file of repo at ref, or at the default
// branch when ref is empty. It returns a NOT_FOUND error when no file exists.
func (c *Client) GetCodeowners(ctx context.Context, repo *gh.Repository, ref string) (*gh.RepositoryContent, error) {
	if ref == "" {
		ref = repo.GetDefaultBranch()
	}
	for _, path := range CodeownersPaths {
		fc, _, resp, err := c.gh.Repositories.GetContents(ctx, ownerOf(repo), repo.GetName(), path,
			&gh.RepositoryContentGetOptions{Ref: ref})
		if err == nil && fc != nil {
			if fc.Path == nil {
				fc.Path = gh.String(path)
			}
			return fc, nil
		}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			continue
		}
		if err == nil {
			// a directory listing lives at this path
			continue
		}
		return nil, errors.Wrapf(err, errors.ErrGitHubAPI, "failed to get %s", path).
			WithDetail("repo", repo.GetName())
	}
	return nil, errors.New(errors.ErrNotFound, "no CODEOWNERS file").
		WithDetail("repo", repo.GetName())
}

// CreatePatch commits newContent over old on branch, creating the branch from
// the head of the default branch when it does not exist yet.
func (c *Client) CreatePatch(ctx context.Context, repo *gh.Repository, old *gh.RepositoryContent, newContent, branch, message string) error {
	owner, name := ownerOf(repo), repo.GetName()

	exists, err := c.branchExists(ctx, repo, branch)
	if err != nil {
		return err
	}
	if !exists {
		base, _, err := c.gh.Git.GetRef(ctx, owner, name, "refs/heads/"+repo.GetDefaultBranch())
		if err != nil {
			return errors.Wrapf(err, errors.ErrGitHubBranch, "failed to resolve %s", repo.GetDefaultBranch()).
				WithDetail("repo", name)
		}
		ref := &gh.Reference{
			Ref:    gh.String("refs/heads/" + branch),
			Object: &gh.GitObject{SHA: base.Object.SHA},
		}
		if _, _, err := c.gh.Git.CreateRef(ctx, owner, name, ref); err != nil {
			return errors.Wrapf(err, errors.ErrGitHubBranch, "failed to create branch %s", branch).
				WithDetail("repo", name)
		}
		logger := logging.GetLogger("github")
		logger.Debug().Str("repo", name).Str("branch", branch).Msg("Created branch")
	}

	opt := &gh.RepositoryContentFileOptions{
		Message: gh.String(message),
		Content: []byte(newContent),
		SHA:     gh.String(old.GetSHA()),
		Branch:  gh.String(branch),
	}
	if _, _, err := c.gh.Repositories.UpdateFile(ctx, owner, name, old.GetPath(), opt); err != nil {
		return errors.Wrapf(err, errors.ErrGitHubCommit, "failed to commit %s", old.GetPath()).
			WithDetail("repo", name)
	}
	return nil
}

// OpenPR opens a pull request from branch into the default branch and
// requests the given reviewers when there are any.
func (c *Client) OpenPR(ctx context.Context, repo *gh.Repository, title, branch, body string, reviewers, teamReviewers []string) (*gh.PullRequest, error) {
	owner, name := ownerOf(repo), repo.GetName()

	pr, _, err := c.gh.PullRequests.Create(ctx, owner, name, &gh.NewPullRequest{
		Title: gh.String(title),
		Head:  gh.String(branch),
		Base:  gh.String(repo.GetDefaultBranch()),
		Body:  gh.String(body),
		Draft: gh.Bool(false),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrGitHubPR, "failed to open pull request").
			WithDetail("repo", name)
	}

	if len(reviewers) > 0 || len(teamReviewers) > 0 {
		_, _, err := c.gh.PullRequests.RequestReviewers(ctx, owner, name, pr.GetNumber(), gh.ReviewersRequest{
			Reviewers:     reviewers,
			TeamReviewers: teamReviewers,
		})
		if err != nil {
			return pr, errors.Wrapf(err, errors.ErrGitHubPR, "failed to request reviewers on #%d", pr.GetNumber()).
				WithDetail("repo", name)
		}
	}
	return pr, nil
}

func (c *Client) branchExists(ctx context.Context, repo *gh.Repository, branch string) (bool, error) {
	_, resp, err := c.gh.Repositories.GetBranch(ctx, ownerOf(repo), repo.GetName(), branch, false)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrGitHubBranch, "failed to check branch %s", branch).
			WithDetail("repo", repo.GetName())
	}
	return true, nil
}

func ownerOf(repo *gh.Repository) string {
	if login := repo.GetOwner().GetLogin(); login != "" {
		return login
	}
	owner, _, _ := strings.Cut(repo.GetFullName(), "/")
	return owner
}
