package overlap

import "sort"

// OverlapEntry is the number of accounts followed by both A and B. A precedes
// B in the input passed to ComputeOverlap.
type OverlapEntry struct {
	A     string `json:"a"`
	B     string `json:"b"`
	Count int    `json:"shared"`
}

// ComputeOverlap returns one entry per pair i<j of accounts, ordered by Count
// descending. Equal counts keep the order in which the pairs were generated,
// so callers that want alphabetical ties must pass SortByLogin output.
// Repeated logins are paired once, from their first occurrence.
func ComputeOverlap(accounts []NamedAccount) []OverlapEntry {
	accounts = distinct(accounts)
	n := len(accounts)
	entries := make([]OverlapEntry, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			entries = append(entries, OverlapEntry{
				A:     accounts[i].Login,
				B:     accounts[j].Login,
				Count: accounts[i].friends.IntersectionSize(accounts[j].friends),
			})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}
