package spider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/gnomegl/gitoverlap/internal/github"
	"github.com/gnomegl/gitoverlap/internal/overlap"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type CollectorConfig struct {
	MaxFriends        int
	MaxWorkers        int
	PerPage           int
	Retries           int
	RetryWait         time.Duration
	RequestsPerSecond float64
	SkipOrganizations bool
	// Progress receives progress bars; defaults to stderr.
	Progress io.Writer
	// Status receives colored status lines; defaults to color.Output.
	Status io.Writer
}

func ConfigFromGithub(cfg github.Config) CollectorConfig {
	return CollectorConfig{
		MaxFriends:        cfg.MaxFriends,
		MaxWorkers:        cfg.MaxConcurrentRequests,
		PerPage:           cfg.PerPage,
		Retries:           cfg.Retries,
		RetryWait:         cfg.RetryWait,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}
}

// Collector fetches the following lists of the named accounts.
type Collector struct {
	config  CollectorConfig
	filters *Filters
	fetcher *RelationFetcher
	logger  *zap.Logger
	out     io.Writer
}

func NewCollector(pool *github.ClientPool, cfg CollectorConfig, logger *zap.Logger) *Collector {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.Progress == nil {
		cfg.Progress = os.Stderr
	}
	if cfg.Status == nil {
		cfg.Status = color.Output
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	limiter := rate.NewLimiter(limit, cfg.MaxWorkers)

	return &Collector{
		config: cfg,
		filters: &Filters{
			MaxFriends:        cfg.MaxFriends,
			SkipOrganizations: cfg.SkipOrganizations,
		},
		fetcher: NewRelationFetcher(pool, limiter, RetryPolicy{Attempts: cfg.Retries, Wait: cfg.RetryWait}, cfg.PerPage, logger),
		logger:  logger,
		out:     cfg.Status,
	}
}

func (c *Collector) newBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(10),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(c.config.Progress),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]#[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: "-",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// Collect returns one NamedAccount per login that exists, in input order.
// Missing accounts and filtered organizations are reported and skipped; any
// other failure cancels the remaining fetches.
func (c *Collector) Collect(ctx context.Context, logins []string) ([]overlap.NamedAccount, error) {
	color.New(color.FgCyan).Fprintf(c.out, "Fetching following lists for %d accounts\n", len(logins))
	fmt.Fprintf(c.out, "  Max friends: %d | Workers: %d\n", c.config.MaxFriends, c.config.MaxWorkers)

	results := make([]*overlap.NamedAccount, len(logins))
	var skipped []string
	var skippedMu sync.Mutex
	skip := func(reason string) {
		skippedMu.Lock()
		skipped = append(skipped, reason)
		skippedMu.Unlock()
	}

	bar := c.newBar(len(logins), "[cyan]Enumerating following[reset]")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.MaxWorkers)

	for i, login := range logins {
		g.Go(func() error {
			defer bar.Add(1)

			profile, err := c.fetcher.FetchProfile(gctx, login)
			if errors.Is(err, ErrAccountNotFound) {
				skip(fmt.Sprintf("%s (not found)", login))
				return nil
			}
			if err != nil {
				return err
			}
			if !c.filters.PassesAccountFilter(profile) {
				skip(fmt.Sprintf("%s (organization)", login))
				return nil
			}

			ids, err := c.fetcher.FetchFollowingIDs(gctx, profile.Login, c.filters)
			if err != nil {
				return err
			}
			c.logger.Debug("collected account",
				zap.String("login", profile.Login),
				zap.Int("following", profile.Following),
				zap.Int("fetched", len(ids)))

			account := overlap.NewNamedAccount(profile.Login, profile.Name, profile.ID, ids)
			results[i] = &account
			return nil
		})
	}

	err := g.Wait()
	bar.Finish()
	fmt.Fprintln(c.config.Progress)
	if err != nil {
		return nil, err
	}

	sort.Strings(skipped)
	for _, s := range skipped {
		color.New(color.FgYellow).Fprintf(c.out, "[!] Skipped %s\n", s)
	}

	accounts := make([]overlap.NamedAccount, 0, len(logins))
	for _, a := range results {
		if a != nil {
			accounts = append(accounts, *a)
		}
	}
	color.New(color.FgGreen).Fprintf(c.out, "[+] Collected %d of %d accounts\n", len(accounts), len(logins))
	return accounts, nil
}
