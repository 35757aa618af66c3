package display

import "github.com/gnomegl/gitoverlap/internal/overlap"

type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatCSV  OutputFormat = "csv"
)

type FriendCount struct {
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
	Count int    `json:"following"`
}

type PopularAccount struct {
	ID    int64  `json:"id"`
	Login string `json:"login,omitempty"`
	Count int    `json:"followed_by"`
}

type MutualResult struct {
	A        string           `json:"a"`
	B        string           `json:"b"`
	MissingA bool             `json:"missing_a,omitempty"`
	MissingB bool             `json:"missing_b,omitempty"`
	IDs      []int64          `json:"ids"`
	Logins   map[int64]string `json:"logins,omitempty"`
}

type GraphSummary struct {
	Nodes    int      `json:"nodes"`
	Edges    int      `json:"edges"`
	Shared   int      `json:"shared_accounts"`
	Isolated []string `json:"isolated,omitempty"`
	Output   string   `json:"output,omitempty"`
	Format   string   `json:"format,omitempty"`
}

type Report struct {
	Candidates []FriendCount          `json:"candidates"`
	MostCommon []PopularAccount       `json:"most_common"`
	Overlap    []overlap.OverlapEntry `json:"overlap"`
	Mutual     *MutualResult          `json:"mutual,omitempty"`
	Graph      *GraphSummary          `json:"graph,omitempty"`
}

type ReportOptions struct {
	Top     int
	MutualA string
	MutualB string
}

// NDJSON records, one per line, discriminated by Type.
type ndjsonRecord struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}
