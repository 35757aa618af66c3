package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gnomegl/gitoverlap/internal/overlap"
)

var gmlEscaper = strings.NewReplacer(`"`, "&quot;", "&", "&amp;")

// WriteGML numbers nodes in Nodes() order since GML ids are integers.
func WriteGML(w io.Writer, g *overlap.FollowGraph) error {
	bw := bufio.NewWriter(w)

	nodes := g.Nodes()
	index := make(map[string]int, len(nodes))

	fmt.Fprintf(bw, "graph [\n  directed 1\n")
	for i, n := range nodes {
		index[n.Key()] = i
		fmt.Fprintf(bw, "  node [\n    id %d\n    label \"%s\"\n    kind \"%s\"\n    account_id %d\n    followed_by %d\n  ]\n",
			i, gmlEscaper.Replace(label(n)), n.Kind, n.ID, n.Followers)
	}
	for _, e := range g.SortedEdges() {
		fmt.Fprintf(bw, "  edge [\n    source %d\n    target %d\n    weight %d\n  ]\n",
			index[sourceKey(e.Source)], index[targetKey(e.Target)], e.Weight)
	}
	fmt.Fprintf(bw, "]\n")
	return bw.Flush()
}
