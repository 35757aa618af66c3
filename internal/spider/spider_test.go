package spider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidatesFake() *fakeGitHub {
	return newFakeGitHub(
		&fakeUser{Login: "alice", Name: "Alice", ID: 1, Following: []int64{10, 11, 12, 13, 14}},
		&fakeUser{Login: "Bob", ID: 2, Following: []int64{11, 12}},
		&fakeUser{Login: "carol", ID: 3},
		&fakeUser{Login: "acme", ID: 4, Type: "Organization", Following: []int64{10}},
		&fakeUser{Login: "dave", ID: 10},
		&fakeUser{Login: "erin", ID: 11},
	)
}

func TestCollectPreservesOrderAndSkipsMissing(t *testing.T) {
	c := newTestCollector(t, candidatesFake(), CollectorConfig{MaxWorkers: 3, Retries: 1})

	accounts, err := c.Collect(context.Background(), []string{"bob", "ghost", "alice", "carol"})
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	assert.Equal(t, "Bob", accounts[0].Login)
	assert.Equal(t, []int64{11, 12}, accounts[0].Friends())
	assert.Equal(t, "alice", accounts[1].Login)
	assert.Equal(t, "Alice", accounts[1].Name)
	assert.Equal(t, int64(1), accounts[1].ID)
	assert.Equal(t, 5, accounts[1].FriendCount())
	assert.Equal(t, "carol", accounts[2].Login)
	assert.Equal(t, 0, accounts[2].FriendCount())
}

func TestCollectPaginatesAndCaps(t *testing.T) {
	f := candidatesFake()
	c := newTestCollector(t, f, CollectorConfig{MaxWorkers: 1, PerPage: 2, MaxFriends: 3, Retries: 1})

	accounts, err := c.Collect(context.Background(), []string{"alice"})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, []int64{10, 11, 12}, accounts[0].Friends())
	assert.Equal(t, 2, f.hitCount("/users/alice/following"))
}

func TestCollectReadsEveryPage(t *testing.T) {
	f := candidatesFake()
	c := newTestCollector(t, f, CollectorConfig{MaxWorkers: 1, PerPage: 2, Retries: 1})

	accounts, err := c.Collect(context.Background(), []string{"alice"})
	require.NoError(t, err)
	assert.Equal(t, 5, accounts[0].FriendCount())
	assert.Equal(t, 3, f.hitCount("/users/alice/following"))
}

func TestCollectSkipsOrganizations(t *testing.T) {
	c := newTestCollector(t, candidatesFake(), CollectorConfig{Retries: 1, SkipOrganizations: true})

	accounts, err := c.Collect(context.Background(), []string{"acme", "bob"})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Bob", accounts[0].Login)
}

func TestCollectRetriesServerErrors(t *testing.T) {
	f := candidatesFake()
	f.failNext("/users/Bob/following", 2)
	c := newTestCollector(t, f, CollectorConfig{Retries: 3})

	accounts, err := c.Collect(context.Background(), []string{"Bob"})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, 2, accounts[0].FriendCount())
	assert.Equal(t, 3, f.hitCount("/users/Bob/following"))
}

func TestCollectGivesUpAfterRetries(t *testing.T) {
	f := candidatesFake()
	f.failNext("/users/alice", 5)
	c := newTestCollector(t, f, CollectorConfig{Retries: 2})

	_, err := c.Collect(context.Background(), []string{"alice"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to fetch profile for alice")
	assert.Equal(t, 2, f.hitCount("/users/alice"))
}

func TestCollectHonorsCancellation(t *testing.T) {
	f := candidatesFake()
	f.failNext("/users/alice", 5)
	c := newTestCollector(t, f, CollectorConfig{Retries: 5, RetryWait: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Collect(ctx, []string{"alice"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResolveLogins(t *testing.T) {
	c := newTestCollector(t, candidatesFake(), CollectorConfig{Retries: 1})

	got := c.ResolveLogins(context.Background(), []int64{10, 11, 999})
	assert.Equal(t, map[int64]string{10: "dave", 11: "erin"}, got)
	assert.Empty(t, c.ResolveLogins(context.Background(), nil))
}
