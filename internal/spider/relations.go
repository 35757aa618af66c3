package spider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gnomegl/gitoverlap/internal/github"
	gh "github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var ErrAccountNotFound = errors.New("account not found")

type Profile struct {
	Login          string
	Name           string
	ID             int64
	Following      int
	IsOrganization bool
}

// RelationFetcher wraps the handful of GitHub endpoints the analysis needs.
// Every request waits on the shared limiter and goes through the retry policy.
type RelationFetcher struct {
	pool    *github.ClientPool
	limiter *rate.Limiter
	retry   RetryPolicy
	perPage int
	logger  *zap.Logger
}

func NewRelationFetcher(pool *github.ClientPool, limiter *rate.Limiter, retry RetryPolicy, perPage int, logger *zap.Logger) *RelationFetcher {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RelationFetcher{
		pool:    pool,
		limiter: limiter,
		retry:   retry,
		perPage: perPage,
		logger:  logger,
	}
}

func (rf *RelationFetcher) call(ctx context.Context, op string, fn func(mc *github.ManagedClient) (*gh.Response, error)) error {
	return rf.retry.do(ctx, rf.logger, op, func() error {
		if err := rf.limiter.Wait(ctx); err != nil {
			return err
		}
		mc := rf.pool.GetClient()
		resp, err := fn(mc)
		mc.Track(resp)
		return err
	})
}

func isNotFound(err error) bool {
	var respErr *gh.ErrorResponse
	return errors.As(err, &respErr) && respErr.Response != nil &&
		respErr.Response.StatusCode == http.StatusNotFound
}

func (rf *RelationFetcher) FetchProfile(ctx context.Context, login string) (*Profile, error) {
	var user *gh.User
	err := rf.call(ctx, "users.get", func(mc *github.ManagedClient) (*gh.Response, error) {
		u, resp, err := mc.Client.Users.Get(ctx, login)
		user = u
		return resp, err
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s: %w", login, ErrAccountNotFound)
		}
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", login, err)
	}

	return &Profile{
		Login:          user.GetLogin(),
		Name:           user.GetName(),
		ID:             user.GetID(),
		Following:      user.GetFollowing(),
		IsOrganization: user.GetType() == "Organization",
	}, nil
}

// FetchFollowingIDs pages through the accounts login follows, stopping once
// the filter's friend cap is reached.
func (rf *RelationFetcher) FetchFollowingIDs(ctx context.Context, login string, filters *Filters) ([]int64, error) {
	if filters == nil {
		filters = &Filters{}
	}
	var ids []int64
	opts := &gh.ListOptions{PerPage: rf.perPage}

	for {
		var users []*gh.User
		var next int
		err := rf.call(ctx, "users.list_following", func(mc *github.ManagedClient) (*gh.Response, error) {
			u, resp, err := mc.Client.Users.ListFollowing(ctx, login, opts)
			users = u
			if resp != nil {
				next = resp.NextPage
			}
			return resp, err
		})
		if err != nil {
			if isNotFound(err) {
				return nil, fmt.Errorf("%s: %w", login, ErrAccountNotFound)
			}
			return nil, fmt.Errorf("failed to list accounts followed by %s: %w", login, err)
		}

		for _, u := range users {
			ids = append(ids, u.GetID())
		}
		rf.logger.Debug("fetched following page",
			zap.String("login", login),
			zap.Int("page", opts.Page),
			zap.Int("total", len(ids)))

		if next == 0 || filters.FriendLimitReached(len(ids)) {
			break
		}
		opts.Page = next
	}
	return filters.Cap(ids), nil
}

func (rf *RelationFetcher) FetchLogin(ctx context.Context, id int64) (string, error) {
	var user *gh.User
	err := rf.call(ctx, "users.get_by_id", func(mc *github.ManagedClient) (*gh.Response, error) {
		u, resp, err := mc.Client.Users.GetByID(ctx, id)
		user = u
		return resp, err
	})
	if err != nil {
		return "", fmt.Errorf("failed to look up account %d: %w", id, err)
	}
	return user.GetLogin(), nil
}
