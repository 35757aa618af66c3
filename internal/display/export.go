package display

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

func outputJSON(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)

	records := make([]ndjsonRecord, 0, len(r.Candidates)+len(r.MostCommon)+len(r.Overlap)+2)
	for _, c := range r.Candidates {
		records = append(records, ndjsonRecord{Type: "candidate", Data: c})
	}
	for _, p := range r.MostCommon {
		records = append(records, ndjsonRecord{Type: "most_common", Data: p})
	}
	for _, e := range r.Overlap {
		records = append(records, ndjsonRecord{Type: "overlap", Data: e})
	}
	if r.Mutual != nil {
		records = append(records, ndjsonRecord{Type: "mutual", Data: r.Mutual})
	}
	if r.Graph != nil {
		records = append(records, ndjsonRecord{Type: "graph", Data: r.Graph})
	}

	for _, rec := range records {
		if err := encoder.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// outputCSV writes the overlap table, the only part of the report that is
// naturally tabular.
func outputCSV(w io.Writer, r *Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"account_a", "account_b", "shared"}); err != nil {
		return err
	}
	for _, e := range r.Overlap {
		if err := writer.Write([]string{e.A, e.B, strconv.Itoa(e.Count)}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
