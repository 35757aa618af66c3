package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/go-github/v57/github"
	"github.com/urfave/cli/v2"
)

const (
	appDir      = "gitoverlap"
	TokenEnvVar = "GITOVERLAP_GITHUB_TOKEN"
)

var ErrInvalidToken = errors.New("invalid GitHub token")

func tokenFilePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	if configDir == "" {
		return "", fmt.Errorf("no user config directory")
	}
	return filepath.Join(configDir, appDir, "token"), nil
}

func SaveToken(token string) error {
	path, err := tokenFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0600)
}

func LoadSavedToken() string {
	path, err := tokenFilePath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// GetToken resolves the token from the flag (which also reads the env var),
// then the saved token file, then an interactive prompt unless --no-prompt.
func GetToken(c *cli.Context) string {
	if token := c.String("token"); token != "" {
		if err := SaveToken(token); err == nil {
			color.New(color.FgGreen).Fprintln(color.Error, "Token saved successfully")
		}
		return token
	}

	if token := LoadSavedToken(); token != "" {
		return token
	}

	if c.Bool("no-prompt") {
		color.New(color.FgYellow).Fprintln(color.Error, "Running without a token. Unauthenticated requests are limited to 60 per hour.")
		return ""
	}

	color.New(color.FgYellow).Fprintln(color.Error, "\nA GitHub personal access token is recommended: following lists of several accounts quickly exhaust the anonymous rate limit.")
	color.New(color.FgBlue).Fprintln(color.Error, "To create a new token:")
	fmt.Fprintln(os.Stderr, "1. Visit: https://github.com/settings/tokens")
	fmt.Fprintln(os.Stderr, "2. Click 'Generate new token' (classic)")
	fmt.Fprintln(os.Stderr, "3. Give it a name (e.g. 'gitoverlap')")
	fmt.Fprintln(os.Stderr, "4. No scopes are required for public following lists")
	fmt.Fprintln(os.Stderr, "5. Click 'Generate token' and paste it below")
	fmt.Fprintln(os.Stderr, "\nNote: The token will be saved locally for future use")

	fmt.Fprint(os.Stderr, "\nPaste your token here (or press Enter to continue without one): ")
	var input string
	fmt.Scanln(&input)
	token := strings.TrimSpace(input)

	if token == "" {
		color.New(color.FgYellow).Fprintln(color.Error, "\nRunning without a token. You may hit rate limits.")
		return ""
	}
	if err := SaveToken(token); err == nil {
		color.New(color.FgGreen).Fprintln(color.Error, "Token saved successfully")
	}
	return token
}

func ValidateToken(ctx context.Context, client *github.Client) error {
	_, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusUnauthorized:
				return ErrInvalidToken
			case http.StatusForbidden:
				// Rate limited - skip validation, token is likely valid
				color.New(color.FgYellow).Fprintln(color.Error, "[!] Rate limited, skipping token validation")
				return nil
			}
		}
		return fmt.Errorf("error validating token: %w", err)
	}
	return nil
}
