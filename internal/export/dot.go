package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gnomegl/gitoverlap/internal/overlap"
)

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// WriteDOT draws named accounts as labelled boxes and external accounts as
// small unlabelled points unless their login was resolved.
func WriteDOT(w io.Writer, g *overlap.FollowGraph, meta Meta) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "digraph follows {\n")
	if meta.Description != "" {
		fmt.Fprintf(bw, "  label=%s;\n", dotQuote(meta.Description))
	}
	fmt.Fprintf(bw, "  edge [arrowsize=0.3, penwidth=0.3];\n")

	for _, n := range g.Nodes() {
		if n.Kind == overlap.NamedNode {
			fmt.Fprintf(bw, "  %s [shape=box, label=%s];\n", dotQuote(n.Key()), dotQuote(label(n)))
			continue
		}
		if n.Login != "" {
			fmt.Fprintf(bw, "  %s [shape=ellipse, fontsize=8, label=%s];\n", dotQuote(n.Key()), dotQuote(n.Login))
			continue
		}
		fmt.Fprintf(bw, "  %s [shape=point, label=\"\"];\n", dotQuote(n.Key()))
	}
	for _, e := range g.SortedEdges() {
		fmt.Fprintf(bw, "  %s -> %s;\n", dotQuote(sourceKey(e.Source)), dotQuote(targetKey(e.Target)))
	}
	fmt.Fprintf(bw, "}\n")
	return bw.Flush()
}
