// Package export writes a follow graph in formats that graph tools can lay out
// and render: GEXF for Gephi, GML, and Graphviz DOT.
package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gnomegl/gitoverlap/internal/overlap"
)

type Format string

const (
	GEXF Format = "gexf"
	GML  Format = "gml"
	DOT  Format = "dot"
)

var ErrUnknownFormat = errors.New("unknown graph format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case GEXF, GML, DOT:
		return f, nil
	case "gv":
		return DOT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath derives the format from the file extension, falling back to
// GEXF.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return GEXF
	}
	return f
}

type Meta struct {
	Creator     string
	Description string
}

// label is empty for external accounts that were never resolved, so only the
// named accounts carry text in the picture.
func label(n *overlap.Node) string {
	if n.Kind == overlap.NamedNode {
		if n.Name != "" && n.Name != n.Login {
			return n.Name + " (" + n.Login + ")"
		}
		return n.Login
	}
	return n.Login
}

func targetKey(id int64) string {
	return fmt.Sprintf("x:%d", id)
}

func sourceKey(login string) string {
	return "n:" + login
}

func Write(w io.Writer, format Format, g *overlap.FollowGraph, meta Meta) error {
	switch format {
	case GEXF:
		return WriteGEXF(w, g, meta)
	case GML:
		return WriteGML(w, g)
	case DOT:
		return WriteDOT(w, g, meta)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
