package spider

import (
	"context"
	"errors"
	"net/http"
	"time"

	gh "github.com/google/go-github/v57/github"
	"go.uber.org/zap"
)

type RetryPolicy struct {
	Attempts int
	Wait     time.Duration
}

// backoff reports whether err is worth another attempt, and how long to wait
// before it. Rate limit errors wait for the window to reset.
func (p RetryPolicy) backoff(err error) (time.Duration, bool) {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return time.Until(rateErr.Rate.Reset.Time) + time.Second, true
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		if abuseErr.RetryAfter != nil {
			return *abuseErr.RetryAfter, true
		}
		return p.Wait, true
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound, http.StatusUnauthorized, http.StatusUnprocessableEntity:
			return 0, false
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}
	return p.Wait, true
}

// do calls fn until it succeeds, fails permanently or runs out of attempts.
func (p RetryPolicy) do(ctx context.Context, logger *zap.Logger, op string, fn func() error) error {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		wait, ok := p.backoff(err)
		if !ok || attempt == attempts {
			return err
		}
		if wait < 0 {
			wait = 0
		}

		logger.Warn("request failed, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
