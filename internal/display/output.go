package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.Bold, color.FgCyan)
	nameColor   = color.New(color.FgYellow)
	countColor  = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	dimColor    = color.New(color.FgWhite)
)

func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, json or csv)", s)
	}
}

// Results writes the report in the requested format.
func Results(w io.Writer, r *Report, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return outputJSON(w, r)
	case FormatCSV:
		return outputCSV(w, r)
	default:
		outputText(w, r)
		return nil
	}
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	headerColor.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", 60))
}

func accountLabel(id int64, login string) string {
	if login == "" {
		return fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%s (%d)", login, id)
}

func outputText(w io.Writer, r *Report) {
	section(w, "FRIENDS PER CANDIDATE")
	width := 0
	for _, c := range r.Candidates {
		if len(c.Login) > width {
			width = len(c.Login)
		}
	}
	for _, c := range r.Candidates {
		nameColor.Fprintf(w, "%-*s", width, c.Login)
		countColor.Fprintf(w, " %6d\n", c.Count)
	}

	section(w, "MOST COMMON FRIENDS")
	if len(r.MostCommon) == 0 {
		dimColor.Fprintln(w, "No followed accounts")
	}
	for _, p := range r.MostCommon {
		fmt.Fprintf(w, "%s ", accountLabel(p.ID, p.Login))
		countColor.Fprintf(w, "followed by %d\n", p.Count)
	}

	section(w, "FRIEND OVERLAP")
	if len(r.Overlap) == 0 {
		dimColor.Fprintln(w, "Fewer than two candidates, nothing to compare")
	}
	for _, e := range r.Overlap {
		nameColor.Fprintf(w, "%s", e.A)
		fmt.Fprint(w, " & ")
		nameColor.Fprintf(w, "%s", e.B)
		countColor.Fprintf(w, ": %d\n", e.Count)
	}

	if m := r.Mutual; m != nil {
		section(w, fmt.Sprintf("FOLLOWED BY BOTH %s AND %s", m.A, m.B))
		if m.MissingA {
			warnColor.Fprintf(w, "[!] %s is not among the collected candidates\n", m.A)
		}
		if m.MissingB {
			warnColor.Fprintf(w, "[!] %s is not among the collected candidates\n", m.B)
		}
		if len(m.IDs) == 0 {
			dimColor.Fprintln(w, "No shared accounts")
		}
		for _, id := range m.IDs {
			fmt.Fprintf(w, "  - %s\n", accountLabel(id, m.Logins[id]))
		}
		if len(m.IDs) > 1 {
			dimColor.Fprintf(w, "%d accounts are followed by both\n", len(m.IDs))
		}
	}

	if g := r.Graph; g != nil {
		section(w, "GRAPH")
		fmt.Fprintf(w, "%s %d\n", color.WhiteString("Nodes:"), g.Nodes)
		fmt.Fprintf(w, "%s %d\n", color.WhiteString("Edges:"), g.Edges)
		fmt.Fprintf(w, "%s %d\n", color.WhiteString("Shared accounts:"), g.Shared)
		if len(g.Isolated) > 0 {
			fmt.Fprintf(w, "%s %s\n", color.WhiteString("Isolated candidates:"), strings.Join(g.Isolated, ", "))
		}
		if g.Output != "" {
			fmt.Fprintf(w, "%s %s (%s)\n", color.WhiteString("Output:"), g.Output, g.Format)
		}
	}
}
