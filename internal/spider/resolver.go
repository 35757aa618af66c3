package spider

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ResolveLogins looks up the login of each ID. Lookups that fail are logged
// and left out of the result.
func (c *Collector) ResolveLogins(ctx context.Context, ids []int64) map[int64]string {
	logins := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return logins
	}

	var mu sync.Mutex
	bar := c.newBar(len(ids), "[cyan]Resolving accounts[reset]")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.MaxWorkers)
	for _, id := range ids {
		g.Go(func() error {
			defer bar.Add(1)
			login, err := c.fetcher.FetchLogin(gctx, id)
			if err != nil {
				c.logger.Warn("could not resolve account", zap.Int64("id", id), zap.Error(err))
				return nil
			}
			mu.Lock()
			logins[id] = login
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	bar.Finish()
	return logins
}
