package display

import (
	"sort"

	"github.com/gnomegl/gitoverlap/internal/overlap"
)

// BuildReport runs every query against store. The store should already be
// sorted by login so that overlap ties come out alphabetically.
func BuildReport(store *overlap.Store, opts ReportOptions) *Report {
	accounts := store.Accounts()

	candidates := make([]FriendCount, 0, len(accounts))
	for _, a := range accounts {
		candidates = append(candidates, FriendCount{Login: a.Login, Name: a.Name, Count: a.FriendCount()})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Login < candidates[j].Login
	})

	pop := store.Popularity()
	var common []PopularAccount
	for _, e := range pop.MostCommon(opts.Top) {
		common = append(common, PopularAccount{ID: e.ID, Count: e.Count})
	}

	r := &Report{
		Candidates: candidates,
		MostCommon: common,
		Overlap:    store.Overlap(),
	}

	if opts.MutualA != "" && opts.MutualB != "" {
		_, okA := store.Lookup(opts.MutualA)
		_, okB := store.Lookup(opts.MutualB)
		r.Mutual = &MutualResult{
			A:        opts.MutualA,
			B:        opts.MutualB,
			MissingA: !okA,
			MissingB: !okB,
			IDs:      store.MutualFriends(opts.MutualA, opts.MutualB).Sorted(),
		}
	}
	return r
}

func (r *Report) SetGraph(g *overlap.FollowGraph, output, format string) {
	r.Graph = &GraphSummary{
		Nodes:    g.NodeCount(),
		Edges:    g.EdgeCount(),
		Shared:   len(g.External),
		Isolated: g.Isolated(),
		Output:   output,
		Format:   format,
	}
}

// UnresolvedIDs lists the external IDs shown in the report, for login lookup.
func (r *Report) UnresolvedIDs() []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	add := func(id int64) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, p := range r.MostCommon {
		if p.Login == "" {
			add(p.ID)
		}
	}
	if r.Mutual != nil {
		for _, id := range r.Mutual.IDs {
			if _, ok := r.Mutual.Logins[id]; !ok {
				add(id)
			}
		}
	}
	return ids
}

func (r *Report) Annotate(logins map[int64]string) {
	for i := range r.MostCommon {
		if login, ok := logins[r.MostCommon[i].ID]; ok {
			r.MostCommon[i].Login = login
		}
	}
	if r.Mutual == nil {
		return
	}
	for _, id := range r.Mutual.IDs {
		if login, ok := logins[id]; ok {
			if r.Mutual.Logins == nil {
				r.Mutual.Logins = make(map[int64]string)
			}
			r.Mutual.Logins[id] = login
		}
	}
}
