package spider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gnomegl/gitoverlap/internal/github"
	"github.com/stretchr/testify/require"
)

type fakeUser struct {
	Login     string
	Name      string
	ID        int64
	Type      string
	Following []int64
}

// fakeGitHub serves the user and following endpoints from memory.
type fakeGitHub struct {
	mu       sync.Mutex
	users    map[string]*fakeUser
	logins   map[int64]string
	failures map[string]int
	hits     map[string]int
}

func newFakeGitHub(users ...*fakeUser) *fakeGitHub {
	f := &fakeGitHub{
		users:    make(map[string]*fakeUser),
		logins:   make(map[int64]string),
		failures: make(map[string]int),
		hits:     make(map[string]int),
	}
	for _, u := range users {
		if u.Type == "" {
			u.Type = "User"
		}
		f.users[strings.ToLower(u.Login)] = u
		f.logins[u.ID] = u.Login
	}
	return f
}

// failNext makes the next n requests to path answer 500.
func (f *fakeGitHub) failNext(path string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = n
}

func (f *fakeGitHub) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeGitHub) record(w http.ResponseWriter, r *http.Request) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[r.URL.Path]++
	if f.failures[r.URL.Path] > 0 {
		f.failures[r.URL.Path]--
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message":"Server Error"}`)
		return false
	}
	return true
}

func notFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, `{"message":"Not Found"}`)
}

func (f *fakeGitHub) writeUser(w http.ResponseWriter, u *fakeUser) {
	json.NewEncoder(w).Encode(map[string]any{
		"login":     u.Login,
		"id":        u.ID,
		"name":      u.Name,
		"type":      u.Type,
		"following": len(u.Following),
	})
}

func (f *fakeGitHub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{login}", func(w http.ResponseWriter, r *http.Request) {
		if !f.record(w, r) {
			return
		}
		u, ok := f.users[strings.ToLower(r.PathValue("login"))]
		if !ok {
			notFound(w)
			return
		}
		f.writeUser(w, u)
	})
	mux.HandleFunc("GET /users/{login}/following", func(w http.ResponseWriter, r *http.Request) {
		if !f.record(w, r) {
			return
		}
		u, ok := f.users[strings.ToLower(r.PathValue("login"))]
		if !ok {
			notFound(w)
			return
		}

		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		if perPage <= 0 {
			perPage = 30
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page <= 0 {
			page = 1
		}
		start := (page - 1) * perPage
		end := start + perPage
		if start > len(u.Following) {
			start = len(u.Following)
		}
		if end > len(u.Following) {
			end = len(u.Following)
		}
		if end < len(u.Following) {
			next := *r.URL
			q := next.Query()
			q.Set("page", strconv.Itoa(page+1))
			next.RawQuery = q.Encode()
			w.Header().Set("Link", fmt.Sprintf(`<http://%s/api/v3%s>; rel="next"`, r.Host, next.RequestURI()))
		}

		out := make([]map[string]any, 0, end-start)
		for _, id := range u.Following[start:end] {
			out = append(out, map[string]any{"id": id, "login": fmt.Sprintf("user%d", id)})
		}
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("GET /user/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !f.record(w, r) {
			return
		}
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		login, ok := f.logins[id]
		if !ok {
			notFound(w)
			return
		}
		f.writeUser(w, f.users[strings.ToLower(login)])
	})
	return mux
}

func newTestCollector(t *testing.T, f *fakeGitHub, cfg CollectorConfig) *Collector {
	t.Helper()

	server := httptest.NewServer(http.StripPrefix("/api/v3", f.handler()))
	t.Cleanup(server.Close)

	pool, err := github.NewClientPool([]string{"test-token"}, nil)
	require.NoError(t, err)
	require.NoError(t, pool.UseEnterprise(server.URL))

	if cfg.RetryWait == 0 {
		cfg.RetryWait = time.Millisecond
	}
	cfg.Progress = io.Discard
	cfg.Status = io.Discard
	return NewCollector(pool, cfg, nil)
}
