package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gnomegl/gitoverlap/internal/github"
	"github.com/urfave/cli/v2"
)

const (
	DefaultConfigFile = "gitoverlap.yaml"
	DefaultNamesFile  = "candidates.txt"
	DefaultOutput     = "network.gexf"
)

var (
	ErrNoCandidates  = errors.New("no candidate accounts given")
	ErrBadMutualPair = errors.New("mutual expects exactly two distinct logins")
)

type AppConfig struct {
	Candidates        []string      `yaml:"candidates" validate:"dive,required"`
	NamesFile         string        `yaml:"names_file"`
	Mutual            []string      `yaml:"mutual"`
	Output            string        `yaml:"output" validate:"required"`
	Format            string        `yaml:"format" validate:"omitempty,oneof=gexf gml dot gv"`
	Report            string        `yaml:"report" validate:"omitempty,oneof=text json csv"`
	Top               int           `yaml:"top" validate:"gte=0"`
	MaxFriends        int           `yaml:"max_friends" validate:"gte=0"`
	Workers           int           `yaml:"workers" validate:"gte=1,lte=32"`
	Retries           int           `yaml:"retries" validate:"gte=1,lte=20"`
	RetryWait         time.Duration `yaml:"retry_wait" validate:"gte=0"`
	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gte=0"`
	SkipOrganizations bool          `yaml:"skip_organizations"`
	ResolveLogins     bool          `yaml:"resolve_logins"`
	APIURL            string        `yaml:"api_url" validate:"omitempty,url"`
	TokenFile         string        `yaml:"token_file"`
	ProxyFile         string        `yaml:"proxy_file"`
	Verbose           bool          `yaml:"verbose"`
}

func Default() AppConfig {
	gh := github.DefaultConfig()
	return AppConfig{
		NamesFile:         DefaultNamesFile,
		Output:            DefaultOutput,
		Report:            "text",
		Top:               5,
		MaxFriends:        gh.MaxFriends,
		Workers:           gh.MaxConcurrentRequests,
		Retries:           gh.Retries,
		RetryWait:         gh.RetryWait,
		RequestsPerSecond: gh.RequestsPerSecond,
		ResolveLogins:     true,
	}
}

// GithubConfig maps the request settings onto the client layer's config.
func (c *AppConfig) GithubConfig() github.Config {
	cfg := github.DefaultConfig()
	cfg.MaxFriends = c.MaxFriends
	cfg.MaxConcurrentRequests = c.Workers
	cfg.Retries = c.Retries
	cfg.RetryWait = c.RetryWait
	cfg.RequestsPerSecond = c.RequestsPerSecond
	return cfg
}

// ParseConfig layers the YAML file, then flags the user actually set, then
// positional logins. Candidates fall back to the names file.
func ParseConfig(c *cli.Context) (*AppConfig, error) {
	cfg := Default()

	path := c.String("config")
	if path == "" {
		path = DefaultConfigFile
	}
	if err := LoadYAMLConfig(path, &cfg, c.IsSet("config")); err != nil {
		return nil, err
	}

	applyFlags(c, &cfg)

	if c.NArg() > 0 {
		cfg.Candidates = c.Args().Slice()
	}
	if len(cfg.Candidates) == 0 {
		names, err := ReadNamesFile(cfg.NamesFile)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: pass logins as arguments or create %s", ErrNoCandidates, cfg.NamesFile)
			}
			return nil, err
		}
		cfg.Candidates = names
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyFlags(c *cli.Context, cfg *AppConfig) {
	if c.IsSet("names") {
		cfg.NamesFile = c.String("names")
	}
	if c.IsSet("mutual") {
		cfg.Mutual = splitList(c.String("mutual"))
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("report") {
		cfg.Report = c.String("report")
	}
	if c.IsSet("top") {
		cfg.Top = c.Int("top")
	}
	if c.IsSet("max-friends") {
		cfg.MaxFriends = c.Int("max-friends")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("retries") {
		cfg.Retries = c.Int("retries")
	}
	if c.IsSet("retry-wait") {
		cfg.RetryWait = c.Duration("retry-wait")
	}
	if c.IsSet("rps") {
		cfg.RequestsPerSecond = c.Float64("rps")
	}
	if c.IsSet("skip-orgs") {
		cfg.SkipOrganizations = c.Bool("skip-orgs")
	}
	if c.IsSet("no-resolve") {
		cfg.ResolveLogins = !c.Bool("no-resolve")
	}
	if c.IsSet("api-url") {
		cfg.APIURL = c.String("api-url")
	}
	if c.IsSet("token-file") {
		cfg.TokenFile = c.String("token-file")
	}
	if c.IsSet("proxy-file") {
		cfg.ProxyFile = c.String("proxy-file")
	}
	if c.IsSet("verbose") {
		cfg.Verbose = c.Bool("verbose")
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Finalize normalizes candidate logins, fills the default mutual pair and
// validates the result.
func (c *AppConfig) Finalize() error {
	c.Candidates = NormalizeLogins(c.Candidates)
	if len(c.Candidates) == 0 {
		return ErrNoCandidates
	}

	c.Mutual = NormalizeLogins(c.Mutual)
	switch {
	case len(c.Mutual) == 0 && len(c.Candidates) >= 2:
		c.Mutual = []string{c.Candidates[0], c.Candidates[1]}
	case len(c.Mutual) != 0 && len(c.Mutual) != 2:
		return fmt.Errorf("%w: got %v", ErrBadMutualPair, c.Mutual)
	}

	c.Format = strings.ToLower(c.Format)
	c.Report = strings.ToLower(c.Report)
	return ValidateStruct(c)
}

// MutualPair returns the two logins to intersect, or false when there are
// fewer than two candidates.
func (c *AppConfig) MutualPair() (string, string, bool) {
	if len(c.Mutual) != 2 {
		return "", "", false
	}
	return c.Mutual[0], c.Mutual[1], true
}
