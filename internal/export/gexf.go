package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gnomegl/gitoverlap/internal/overlap"
)

type gexfFile struct {
	XMLName xml.Name  `xml:"gexf"`
	XMLNS   string    `xml:"xmlns,attr"`
	Version string    `xml:"version,attr"`
	Meta    gexfMeta  `xml:"meta"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfMeta struct {
	LastModified string `xml:"lastmodifieddate,attr"`
	Creator      string `xml:"creator"`
	Description  string `xml:"description"`
}

type gexfGraph struct {
	DefaultEdgeType  string               `xml:"defaultedgetype,attr"`
	Mode             string               `xml:"mode,attr"`
	AttributeClasses []gexfAttributeClass `xml:"attributes"`
	Nodes            gexfNodes            `xml:"nodes"`
	Edges            gexfEdges            `xml:"edges"`
}

type gexfAttributeClass struct {
	Class      string          `xml:"class,attr"`
	Attributes []gexfAttribute `xml:"attribute"`
}

type gexfAttribute struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type gexfNodes struct {
	Nodes []gexfNode `xml:"node"`
}

type gexfNode struct {
	ID        string        `xml:"id,attr"`
	Label     string        `xml:"label,attr"`
	AttValues gexfAttValues `xml:"attvalues"`
}

type gexfAttValues struct {
	AttValues []gexfAttValue `xml:"attvalue"`
}

type gexfAttValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type gexfEdges struct {
	Edges []gexfEdge `xml:"edge"`
}

type gexfEdge struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
	Weight string `xml:"weight,attr,omitempty"`
}

func WriteGEXF(w io.Writer, g *overlap.FollowGraph, meta Meta) error {
	graphNodes := g.Nodes()
	nodes := make([]gexfNode, 0, len(graphNodes))
	for _, node := range graphNodes {
		nodes = append(nodes, gexfNode{
			ID:    node.Key(),
			Label: label(node),
			AttValues: gexfAttValues{AttValues: []gexfAttValue{
				{For: "0", Value: node.Kind.String()},
				{For: "1", Value: strconv.FormatInt(node.ID, 10)},
				{For: "2", Value: strconv.Itoa(node.Followers)},
			}},
		})
	}

	graphEdges := g.SortedEdges()
	edges := make([]gexfEdge, 0, len(graphEdges))
	for i, edge := range graphEdges {
		edges = append(edges, gexfEdge{
			ID:     fmt.Sprintf("e%d", i),
			Source: sourceKey(edge.Source),
			Target: targetKey(edge.Target),
			Weight: strconv.Itoa(edge.Weight),
		})
	}

	doc := gexfFile{
		XMLNS:   "http://gexf.net/1.3",
		Version: "1.3",
		Meta: gexfMeta{
			LastModified: time.Now().Format("2006-01-02"),
			Creator:      meta.Creator,
			Description:  meta.Description,
		},
		Graph: gexfGraph{
			DefaultEdgeType: "directed",
			Mode:            "static",
			AttributeClasses: []gexfAttributeClass{
				{
					Class: "node",
					Attributes: []gexfAttribute{
						{ID: "0", Title: "kind", Type: "string"},
						{ID: "1", Title: "account_id", Type: "long"},
						{ID: "2", Title: "followed_by", Type: "integer"},
					},
				},
			},
			Nodes: gexfNodes{Nodes: nodes},
			Edges: gexfEdges{Edges: edges},
		},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
