// Package overlap analyzes who a fixed set of named accounts follow: how
// popular each followed account is among them, how much their following lists
// overlap, and which followed accounts they share.
package overlap

import (
	"sort"
	"strings"
)

type FollowSet map[int64]struct{}

func NewFollowSet(ids ...int64) FollowSet {
	set := make(FollowSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s FollowSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s FollowSet) Len() int {
	return len(s)
}

// Sorted returns the members in ascending order.
func (s FollowSet) Sorted() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IntersectionSize walks the smaller set.
func (s FollowSet) IntersectionSize(other FollowSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for id := range small {
		if large.Contains(id) {
			n++
		}
	}
	return n
}

func (s FollowSet) Intersect(other FollowSet) FollowSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(FollowSet)
	for id := range small {
		if large.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// NamedAccount is one account under analysis. The follow set is copied on
// construction and never handed out by reference.
type NamedAccount struct {
	Login string
	Name  string
	ID    int64

	friends FollowSet
}

func NewNamedAccount(login, name string, id int64, friends []int64) NamedAccount {
	return NamedAccount{
		Login:   login,
		Name:    name,
		ID:      id,
		friends: NewFollowSet(friends...),
	}
}

func (a NamedAccount) Follows(id int64) bool {
	return a.friends.Contains(id)
}

func (a NamedAccount) FriendCount() int {
	return len(a.friends)
}

func (a NamedAccount) Friends() []int64 {
	return a.friends.Sorted()
}

// DisplayName falls back to the login when no name is set.
func (a NamedAccount) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Login
}

// SortByLogin returns a copy of accounts ordered by login. Pass the result to
// ComputeOverlap to get alphabetical ordering among equal overlap counts.
func SortByLogin(accounts []NamedAccount) []NamedAccount {
	sorted := make([]NamedAccount, len(accounts))
	copy(sorted, accounts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Login < sorted[j].Login
	})
	return sorted
}

// distinct keeps the first account per exact login. The free functions all
// share this identity rule; NewStore additionally folds case.
func distinct(accounts []NamedAccount) []NamedAccount {
	seen := make(map[string]struct{}, len(accounts))
	out := make([]NamedAccount, 0, len(accounts))
	for _, a := range accounts {
		if _, dup := seen[a.Login]; dup {
			continue
		}
		seen[a.Login] = struct{}{}
		out = append(out, a)
	}
	return out
}

// Store is an immutable snapshot of named accounts. Repeated logins keep the
// first occurrence.
type Store struct {
	accounts []NamedAccount
	byLogin  map[string]int
}

func NewStore(accounts []NamedAccount) *Store {
	s := &Store{
		accounts: make([]NamedAccount, 0, len(accounts)),
		byLogin:  make(map[string]int, len(accounts)),
	}
	for _, a := range accounts {
		key := strings.ToLower(a.Login)
		if _, exists := s.byLogin[key]; exists {
			continue
		}
		s.byLogin[key] = len(s.accounts)
		s.accounts = append(s.accounts, a)
	}
	return s
}

func (s *Store) Len() int {
	return len(s.accounts)
}

func (s *Store) Accounts() []NamedAccount {
	out := make([]NamedAccount, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Lookup matches logins case-insensitively, as GitHub does.
func (s *Store) Lookup(login string) (NamedAccount, bool) {
	i, ok := s.byLogin[strings.ToLower(login)]
	if !ok {
		return NamedAccount{}, false
	}
	return s.accounts[i], true
}

func (s *Store) Sorted() *Store {
	return NewStore(SortByLogin(s.accounts))
}

func (s *Store) Popularity() Popularity {
	return CountPopularity(s.accounts)
}

func (s *Store) Overlap() []OverlapEntry {
	return ComputeOverlap(s.accounts)
}

func (s *Store) MutualFriends(a, b string) FollowSet {
	return MutualFriends(s.accounts, a, b)
}

func (s *Store) Graph() *FollowGraph {
	return BuildGraph(s.accounts, s.Popularity())
}
