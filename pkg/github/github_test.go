package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/ownerswap/pkg/audit"
)

const testOrg = "acme"

// fakeGitHub serves the subset of the REST API the client uses.
type fakeGitHub struct {
	t *testing.T

	mu       sync.Mutex
	repos    []string
	archived map[string]bool
	// files maps "repo/path" to content
	files    map[string]string
	branches map[string]bool
	fail     map[string]int
	calls    []string
	bodies   map[string]string
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	return &fakeGitHub{
		t:        t,
		archived: map[string]bool{},
		files:    map[string]string{},
		branches: map[string]bool{},
		fail:     map[string]int{},
		bodies:   map[string]string{},
	}
}

func (f *fakeGitHub) client(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), "token", srv.URL+"/", "")
	require.NoError(t, err)
	return c
}

func (f *fakeGitHub) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(f.t, json.NewEncoder(w).Encode(v))
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api/v3")
	call := r.Method + " " + path
	f.calls = append(f.calls, call)
	if body, err := io.ReadAll(r.Body); err == nil && len(body) > 0 {
		f.bodies[call] = string(body)
	}
	if status, ok := f.fail[call]; ok {
		w.WriteHeader(status)
		return
	}

	repoPrefix := fmt.Sprintf("/repos/%s/", testOrg)
	switch {
	case r.Method == http.MethodGet && path == fmt.Sprintf("/orgs/%s/repos", testOrg):
		f.listRepos(w, r)
	case strings.HasPrefix(path, repoPrefix):
		repo, rest, _ := strings.Cut(strings.TrimPrefix(path, repoPrefix), "/")
		f.serveRepo(w, r, repo, rest)
	default:
		f.t.Errorf("unexpected request: %s", call)
		w.WriteHeader(http.StatusNotImplemented)
	}
}

// listRepos returns one repository per page.
func (f *fakeGitHub) listRepos(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		_, err := fmt.Sscanf(p, "%d", &page)
		assert.NoError(f.t, err)
	}
	if page < len(f.repos) {
		next := *r.URL
		q := next.Query()
		q.Set("page", fmt.Sprint(page+1))
		next.RawQuery = q.Encode()
		w.Header().Set("Link", fmt.Sprintf(`<http://%s%s>; rel="next"`, r.Host, next.RequestURI()))
	}

	repos := []map[string]interface{}{}
	if page <= len(f.repos) {
		name := f.repos[page-1]
		repos = append(repos, map[string]interface{}{
			"name":           name,
			"full_name":      testOrg + "/" + name,
			"owner":          map[string]string{"login": testOrg},
			"default_branch": "main",
			"archived":       f.archived[name],
		})
	}
	f.writeJSON(w, http.StatusOK, repos)
}

func (f *fakeGitHub) serveRepo(w http.ResponseWriter, r *http.Request, repo, rest string) {
	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(rest, "contents/"):
		p := strings.TrimPrefix(rest, "contents/")
		content, ok := f.files[repo+"/"+p]
		if !ok {
			f.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
			return
		}
		f.writeJSON(w, http.StatusOK, map[string]string{
			"type":     "file",
			"path":     p,
			"sha":      "sha-" + repo,
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte(content)),
		})
	case r.Method == http.MethodPut && strings.HasPrefix(rest, "contents/"):
		f.writeJSON(w, http.StatusOK, map[string]interface{}{"commit": map[string]string{"sha": "new"}})
	case r.Method == http.MethodGet && strings.HasPrefix(rest, "branches/"):
		if !f.branches[repo] {
			f.writeJSON(w, http.StatusNotFound, map[string]string{"message": "Branch not found"})
			return
		}
		f.writeJSON(w, http.StatusOK, map[string]string{"name": strings.TrimPrefix(rest, "branches/")})
	case r.Method == http.MethodGet && rest == "git/ref/heads/main":
		f.writeJSON(w, http.StatusOK, map[string]interface{}{
			"ref":    "refs/heads/main",
			"object": map[string]string{"sha": "main-sha", "type": "commit"},
		})
	case r.Method == http.MethodPost && rest == "git/refs":
		f.branches[repo] = true
		f.writeJSON(w, http.StatusCreated, map[string]interface{}{"ref": "refs/heads/update-codeowners"})
	case r.Method == http.MethodPost && rest == "pulls":
		f.writeJSON(w, http.StatusCreated, map[string]interface{}{
			"number":   7,
			"html_url": fmt.Sprintf("https://github.example.com/%s/%s/pull/7", testOrg, repo),
		})
	case r.Method == http.MethodPost && rest == "pulls/7/requested_reviewers":
		f.writeJSON(w, http.StatusCreated, map[string]interface{}{"number": 7})
	default:
		f.t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func (f *fakeGitHub) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

type memRecorder struct{ records []audit.Record }

func (m *memRecorder) Write(r audit.Record) error {
	m.records = append(m.records, r)
	return nil
}
