package auth

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gnomegl/gitoverlap/internal/config"
	"github.com/gnomegl/gitoverlap/internal/github"
	"github.com/gnomegl/gitoverlap/internal/utils"
	gh "github.com/google/go-github/v57/github"
	"github.com/urfave/cli/v2"
)

const (
	repoOwner = "gnomegl"
	repoName  = "gitoverlap"
)

// SetupPool builds the client pool from the token file, or from the single
// token resolved by github.GetToken, and validates every token in it.
func SetupPool(ctx context.Context, c *cli.Context, cfg *config.AppConfig) (*github.ClientPool, error) {
	var tokens, proxies []string
	var err error
	if cfg.TokenFile != "" {
		if tokens, err = github.ReadTokenFile(cfg.TokenFile); err != nil {
			return nil, err
		}
	} else {
		tokens = []string{github.GetToken(c)}
	}
	if cfg.ProxyFile != "" {
		if proxies, err = github.ReadProxyFile(cfg.ProxyFile); err != nil {
			return nil, err
		}
	}

	pool, err := github.NewClientPool(tokens, proxies)
	if err != nil {
		return nil, err
	}
	if cfg.APIURL != "" {
		if err := pool.UseEnterprise(cfg.APIURL); err != nil {
			return nil, err
		}
	} else {
		checkLatestVersion(ctx, pool.GetClient().Client, utils.GetVersion(), color.Error)
	}

	for i, mc := range pool.AllClients() {
		if mc.Token == "" {
			continue
		}
		if err := github.ValidateToken(ctx, mc.Client); err != nil {
			return nil, fmt.Errorf("token %d validation failed: %w", i+1, err)
		}
	}
	return pool, nil
}

func checkLatestVersion(ctx context.Context, client *gh.Client, current string, w io.Writer) {
	if current == "" || current == "unknown" || current == "(devel)" {
		return
	}
	release, _, err := client.Repositories.GetLatestRelease(ctx, repoOwner, repoName)
	if err != nil {
		return
	}

	latest := strings.TrimPrefix(release.GetTagName(), "v")
	if latest == "" || latest == current {
		return
	}
	color.New(color.FgYellow).Fprintf(w, "A new version of %s is available: %s (you're running %s)\n", repoName, latest, current)
	color.New(color.FgYellow).Fprintln(w, "To update:")
	color.New(color.FgCyan).Fprintf(w, "go install github.com/%s/%s@latest\n\n", repoOwner, repoName)
}
