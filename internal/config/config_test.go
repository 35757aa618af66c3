package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	appcli "github.com/gnomegl/gitoverlap/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// parse runs the real flag set inside dir so the default file names resolve
// against test fixtures.
func parse(t *testing.T, dir string, args ...string) (*AppConfig, error) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	var cfg *AppConfig
	var parseErr error
	app := appcli.NewApp(func(c *cli.Context) error {
		cfg, parseErr = ParseConfig(c)
		return nil
	})
	require.NoError(t, app.Run(append([]string{"gitoverlap"}, args...)))
	return cfg, parseErr
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultNamesFile, "HillaryClinton\nrealDonaldTrump\nBernieSanders\n")

	cfg, err := parse(t, dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"HillaryClinton", "realDonaldTrump", "BernieSanders"}, cfg.Candidates)
	assert.Equal(t, []string{"HillaryClinton", "realDonaldTrump"}, cfg.Mutual)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, "text", cfg.Report)
	assert.Equal(t, 5, cfg.Top)
	assert.Equal(t, 5000, cfg.MaxFriends)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.RetryWait)
	assert.True(t, cfg.ResolveLogins)
}

func TestParseConfigArgsReplaceNamesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultNamesFile, "someone\n")

	cfg, err := parse(t, dir, "@alice", "bob", "ALICE")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, cfg.Candidates)
	assert.Equal(t, []string{"alice", "bob"}, cfg.Mutual)
}

func TestParseConfigMissingNamesFile(t *testing.T) {
	_, err := parse(t, t.TempDir())
	assert.True(t, errors.Is(err, ErrNoCandidates))
}

func TestParseConfigFlagsOverrideYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultConfigFile, `
candidates: [alice, bob, carol]
mutual: [bob, carol]
output: graph.gml
report: json
top: 3
workers: 8
retry_wait: 30s
`)

	cfg, err := parse(t, dir, "--workers", "2", "--report", "csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob", "carol"}, cfg.Candidates)
	assert.Equal(t, []string{"bob", "carol"}, cfg.Mutual)
	assert.Equal(t, "graph.gml", cfg.Output)
	assert.Equal(t, 3, cfg.Top)
	assert.Equal(t, 30*time.Second, cfg.RetryWait)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "csv", cfg.Report)
}

func TestParseConfigExplicitMissingConfigFile(t *testing.T) {
	_, err := parse(t, t.TempDir(), "--config", "nope.yaml", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read YAML config file")
}

func TestParseConfigBadMutual(t *testing.T) {
	_, err := parse(t, t.TempDir(), "--mutual", "alice", "alice", "bob")
	assert.True(t, errors.Is(err, ErrBadMutualPair))
}

func TestParseConfigValidation(t *testing.T) {
	_, err := parse(t, t.TempDir(), "--report", "xml", "--workers", "0", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report must be one of: text json csv")
	assert.Contains(t, err.Error(), "workers must be at least 1")
}

func TestSingleCandidateHasNoMutualPair(t *testing.T) {
	cfg := Default()
	cfg.Candidates = []string{"alice"}
	require.NoError(t, cfg.Finalize())

	_, _, ok := cfg.MutualPair()
	assert.False(t, ok)
}

func TestGithubConfig(t *testing.T) {
	cfg := Default()
	cfg.MaxFriends = 100
	cfg.Workers = 2
	cfg.RequestsPerSecond = 0

	gh := cfg.GithubConfig()
	assert.Equal(t, 100, gh.MaxFriends)
	assert.Equal(t, 2, gh.MaxConcurrentRequests)
	assert.Zero(t, gh.RequestsPerSecond)
	assert.Equal(t, 100, gh.PerPage)
}
