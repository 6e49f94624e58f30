package github

import (
	"context"
	"sort"
	"strings"

	"github.com/arthur-debert/ownerswap/pkg/errors"
	"github.com/arthur-debert/ownerswap/pkg/logging"
	"github.com/arthur-debert/ownerswap/pkg/rewrite"
)

// Owner is one owner token and the repositories whose CODEOWNERS name it.
type Owner struct {
	Name  string   `json:"name" yaml:"name"`
	Repos []string `json:"repos" yaml:"repos"`
}

// Inspect lists every owner named in the CODEOWNERS files of org's active
// repositories, sorted by name. Repositories without a file are skipped.
func (c *Client) Inspect(ctx context.Context, org, visibility string) ([]Owner, error) {
	logger := logging.GetLogger("github")
	defer logging.LogOperationStart(logger, "inspect")()

	repos, err := c.ListActiveRepositories(ctx, org, visibility)
	if err != nil {
		return nil, err
	}

	byOwner := make(map[string][]string)
	for _, repo := range repos {
		fc, err := c.GetCodeowners(ctx, repo, "")
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			logger.Debug().Str("repo", repo.GetName()).Msg("No CODEOWNERS file")
			continue
		}
		if err != nil {
			return nil, err
		}
		content, err := fc.GetContent()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrGitHubAPI, "failed to decode CODEOWNERS").
				WithDetail("repo", repo.GetName())
		}

		for _, name := range ownersOf(content) {
			byOwner[name] = append(byOwner[name], repo.GetName())
		}
	}

	owners := make([]Owner, 0, len(byOwner))
	for name, repos := range byOwner {
		owners = append(owners, Owner{Name: name, Repos: repos})
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i].Name < owners[j].Name })
	return owners, nil
}

// ownersOf returns the distinct owners of a file in first-seen order.
func ownersOf(content string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, line := range strings.Split(content, "\n") {
		for _, name := range rewrite.Owners(line) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}
