package github

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/ownerswap/pkg/errors"
)

func TestNewClient(t *testing.T) {
	c, err := NewClient(context.Background(), "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/", c.gh.BaseURL.String())

	c, err = NewClient(context.Background(), "token", "https://ghe.example.com/", "")
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/", c.gh.BaseURL.String())
	assert.Equal(t, "https://ghe.example.com/api/uploads/", c.gh.UploadURL.String())

	_, err = NewClient(context.Background(), "", "://bad", "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestListActiveRepositories(t *testing.T) {
	f := newFakeGitHub(t)
	f.repos = []string{"web", "legacy", "api"}
	f.archived["legacy"] = true
	c := f.client(t)

	repos, err := c.ListActiveRepositories(context.Background(), testOrg, "private")
	require.NoError(t, err)

	var names []string
	for _, r := range repos {
		names = append(names, r.GetName())
	}
	assert.Equal(t, []string{"web", "api"}, names)
}

func TestListActiveRepositoriesError(t *testing.T) {
	f := newFakeGitHub(t)
	f.fail["GET /orgs/acme/repos"] = http.StatusInternalServerError
	c := f.client(t)

	_, err := c.ListActiveRepositories(context.Background(), testOrg, "all")
	assert.True(t, errors.IsErrorCode(err, errors.ErrGitHubAPI))
	assert.Equal(t, testOrg, errors.GetErrorDetails(err)["org"])
}

func TestGetCodeowners(t *testing.T) {
	f := newFakeGitHub(t)
	f.repos = []string{"web", "api", "docs"}
	f.files["web/.github/CODEOWNERS"] = "* @a\n"
	f.files["api/CODEOWNERS"] = "* @b\n"
	c := f.client(t)

	repos, err := c.ListActiveRepositories(context.Background(), testOrg, "all")
	require.NoError(t, err)
	require.Len(t, repos, 3)

	t.Run("github directory", func(t *testing.T) {
		fc, err := c.GetCodeowners(context.Background(), repos[0], "")
		require.NoError(t, err)
		assert.Equal(t, ".github/CODEOWNERS", fc.GetPath())
		content, err := fc.GetContent()
		require.NoError(t, err)
		assert.Equal(t, "* @a\n", content)
	})

	t.Run("root fallback", func(t *testing.T) {
		fc, err := c.GetCodeowners(context.Background(), repos[1], "main")
		require.NoError(t, err)
		assert.Equal(t, "CODEOWNERS", fc.GetPath())
		assert.Equal(t, "sha-api", fc.GetSHA())
	})

	t.Run("missing", func(t *testing.T) {
		_, err := c.GetCodeowners(context.Background(), repos[2], "")
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("server error", func(t *testing.T) {
		f.fail["GET /repos/acme/web/contents/.github/CODEOWNERS"] = http.StatusBadGateway
		_, err := c.GetCodeowners(context.Background(), repos[0], "")
		assert.True(t, errors.IsErrorCode(err, errors.ErrGitHubAPI))
	})
}

func TestCreatePatchAndOpenPR(t *testing.T) {
	f := newFakeGitHub(t)
	f.repos = []string{"web"}
	f.files["web/.github/CODEOWNERS"] = "* @a\n"
	c := f.client(t)
	ctx := context.Background()

	repos, err := c.ListActiveRepositories(ctx, testOrg, "all")
	require.NoError(t, err)
	fc, err := c.GetCodeowners(ctx, repos[0], "")
	require.NoError(t, err)

	require.NoError(t, c.CreatePatch(ctx, repos[0], fc, "* @b\n", "update-codeowners", "Update a to b"))
	assert.True(t, f.called("GET /repos/acme/web/git/ref/heads/main"))
	assert.True(t, f.called("POST /repos/acme/web/git/refs"))
	assert.Contains(t, f.bodies["PUT /repos/acme/web/contents/.github/CODEOWNERS"], `"sha":"sha-web"`)
	assert.Contains(t, f.bodies["PUT /repos/acme/web/contents/.github/CODEOWNERS"], `"branch":"update-codeowners"`)

	pr, err := c.OpenPR(ctx, repos[0], "Update codeowners", "update-codeowners", "body", nil, []string{"platform"})
	require.NoError(t, err)
	assert.Equal(t, 7, pr.GetNumber())
	assert.Contains(t, f.bodies["POST /repos/acme/web/pulls"], `"base":"main"`)
	assert.Contains(t, f.bodies["POST /repos/acme/web/pulls/7/requested_reviewers"], `"team_reviewers":["platform"]`)
}

func TestCreatePatchExistingBranch(t *testing.T) {
	f := newFakeGitHub(t)
	f.repos = []string{"web"}
	f.files["web/CODEOWNERS"] = "* @a\n"
	f.branches["web"] = true
	c := f.client(t)
	ctx := context.Background()

	repos, err := c.ListActiveRepositories(ctx, testOrg, "all")
	require.NoError(t, err)
	fc, err := c.GetCodeowners(ctx, repos[0], "")
	require.NoError(t, err)

	require.NoError(t, c.CreatePatch(ctx, repos[0], fc, "* @b\n", "update-codeowners", "Update a to b"))
	assert.False(t, f.called("POST /repos/acme/web/git/refs"))

	_, err = c.OpenPR(ctx, repos[0], "t", "update-codeowners", "", nil, nil)
	require.NoError(t, err)
	assert.False(t, f.called("POST /repos/acme/web/pulls/7/requested_reviewers"))
}

func TestCreatePatchErrors(t *testing.T) {
	tests := []struct {
		name string
		fail string
		code errors.ErrorCode
	}{
		{name: "branch lookup", fail: "GET /repos/acme/web/branches/update-codeowners", code: errors.ErrGitHubBranch},
		{name: "base ref", fail: "GET /repos/acme/web/git/ref/heads/main", code: errors.ErrGitHubBranch},
		{name: "create ref", fail: "POST /repos/acme/web/git/refs", code: errors.ErrGitHubBranch},
		{name: "commit", fail: "PUT /repos/acme/web/contents/CODEOWNERS", code: errors.ErrGitHubCommit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeGitHub(t)
			f.repos = []string{"web"}
			f.files["web/CODEOWNERS"] = "* @a\n"
			c := f.client(t)
			ctx := context.Background()

			repos, err := c.ListActiveRepositories(ctx, testOrg, "all")
			require.NoError(t, err)
			fc, err := c.GetCodeowners(ctx, repos[0], "")
			require.NoError(t, err)

			f.fail[tt.fail] = http.StatusInternalServerError
			err = c.CreatePatch(ctx, repos[0], fc, "* @b\n", "update-codeowners", "m")
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Equal(t, "web", errors.GetErrorDetails(err)["repo"])
		})
	}
}

func TestInspect(t *testing.T) {
	f := newFakeGitHub(t)
	f.repos = []string{"web", "api", "docs"}
	f.files["web/.github/CODEOWNERS"] = "* @a\n.github @b @team/a\n"
	f.files["api/CODEOWNERS"] = "# @ignored\n* @b @c\n.github @a @c\n"
	c := f.client(t)

	owners, err := c.Inspect(context.Background(), testOrg, "all")
	require.NoError(t, err)
	assert.Equal(t, []Owner{
		{Name: "a", Repos: []string{"web", "api"}},
		{Name: "b", Repos: []string{"web", "api"}},
		{Name: "c", Repos: []string{"api"}},
		{Name: "team/a", Repos: []string{"web"}},
	}, owners)
}

func TestInspectEmpty(t *testing.T) {
	f := newFakeGitHub(t)
	c := f.client(t)

	owners, err := c.Inspect(context.Background(), testOrg, "all")
	require.NoError(t, err)
	assert.Empty(t, owners)
}
