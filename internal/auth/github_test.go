package auth

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	appcli "github.com/gnomegl/gitoverlap/internal/cli"
	"github.com/gnomegl/gitoverlap/internal/config"
	gh "github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func releaseServer(t *testing.T, tag string) *gh.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/gnomegl/gitoverlap/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tag_name":%q}`, tag)
	})
	server := httptest.NewServer(http.StripPrefix("/api/v3", mux))
	t.Cleanup(server.Close)

	client, err := gh.NewClient(nil).WithEnterpriseURLs(server.URL, server.URL)
	require.NoError(t, err)
	return client
}

func TestCheckLatestVersionReportsNewer(t *testing.T) {
	color.NoColor = true
	client := releaseServer(t, "v1.2.0")

	var buf bytes.Buffer
	checkLatestVersion(context.Background(), client, "1.1.0", &buf)
	assert.Contains(t, buf.String(), "A new version of gitoverlap is available: 1.2.0 (you're running 1.1.0)")
	assert.Contains(t, buf.String(), "go install github.com/gnomegl/gitoverlap@latest")
}

func TestCheckLatestVersionQuiet(t *testing.T) {
	client := releaseServer(t, "v1.1.0")

	var buf bytes.Buffer
	checkLatestVersion(context.Background(), client, "1.1.0", &buf)
	checkLatestVersion(context.Background(), client, "(devel)", &buf)
	assert.Empty(t, buf.String())
}

// runSetup calls SetupPool from inside a real cli action.
func runSetup(t *testing.T, cfg *config.AppConfig, args ...string) error {
	t.Helper()
	var setupErr error
	app := appcli.NewApp(func(c *cli.Context) error {
		_, setupErr = SetupPool(c.Context, c, cfg)
		return nil
	})
	require.NoError(t, app.Run(append([]string{"gitoverlap"}, args...)))
	return setupErr
}

func TestSetupPoolRejectsBadToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Bad credentials"}`)
	})
	server := httptest.NewServer(http.StripPrefix("/api/v3", mux))
	t.Cleanup(server.Close)

	tokenFile := filepath.Join(t.TempDir(), "tokens.txt")
	require.NoError(t, os.WriteFile(tokenFile, []byte("ghp_bad\n"), 0600))

	cfg := config.Default()
	cfg.TokenFile = tokenFile
	cfg.APIURL = server.URL + "/"

	err := runSetup(t, &cfg)
	assert.ErrorContains(t, err, "token 1 validation failed")
}

func TestSetupPoolMissingTokenFile(t *testing.T) {
	cfg := config.Default()
	cfg.TokenFile = filepath.Join(t.TempDir(), "missing.txt")

	err := runSetup(t, &cfg)
	assert.Error(t, err)
}
