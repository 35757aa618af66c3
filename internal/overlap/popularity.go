package overlap

import "sort"

// Popularity maps a followed account ID to the number of distinct named
// accounts that follow it.
type Popularity map[int64]int

type PopularityEntry struct {
	ID    int64
	Count int
}

// CountPopularity tallies followers per ID. An account that appears more than
// once in the input, by exact login, is counted once.
func CountPopularity(accounts []NamedAccount) Popularity {
	counts := make(Popularity)
	for _, a := range distinct(accounts) {
		for id := range a.friends {
			counts[id]++
		}
	}
	return counts
}

func (p Popularity) Count(id int64) int {
	return p[id]
}

// Shared reports whether more than one named account follows id.
func (p Popularity) Shared(id int64) bool {
	return p[id] > 1
}

// MostCommon returns up to n entries by count descending, ties by ID
// ascending. n <= 0 returns every entry.
func (p Popularity) MostCommon(n int) []PopularityEntry {
	entries := make([]PopularityEntry, 0, len(p))
	for id, count := range p {
		entries = append(entries, PopularityEntry{ID: id, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].ID < entries[j].ID
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
