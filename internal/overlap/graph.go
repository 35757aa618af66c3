package overlap

import (
	"fmt"
	"sort"
)

type NodeKind int

const (
	NamedNode NodeKind = iota
	ExternalNode
)

func (k NodeKind) String() string {
	switch k {
	case NamedNode:
		return "named"
	case ExternalNode:
		return "external"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

type Node struct {
	Kind  NodeKind
	Login string
	Name  string
	// ID is the external account ID, or the named account's own ID if known.
	ID int64
	// Followers counts named accounts pointing at an external node.
	Followers int
}

// Key is unique across both node kinds.
func (n *Node) Key() string {
	if n.Kind == NamedNode {
		return "n:" + n.Login
	}
	return fmt.Sprintf("x:%d", n.ID)
}

type Edge struct {
	Source string
	Target int64
	Weight int
}

type edgeKey struct {
	source string
	target int64
}

// FollowGraph is a directed graph from named accounts to the external
// accounts they follow. Named and external nodes are kept in separate maps so
// a numeric login never collides with an ID.
type FollowGraph struct {
	Named    map[string]*Node
	External map[int64]*Node
	edges    map[edgeKey]*Edge
}

func NewFollowGraph() *FollowGraph {
	return &FollowGraph{
		Named:    make(map[string]*Node),
		External: make(map[int64]*Node),
		edges:    make(map[edgeKey]*Edge),
	}
}

// BuildGraph adds every named account as a node, then each followed ID whose
// popularity is above 1 together with one edge per follower.
func BuildGraph(accounts []NamedAccount, pop Popularity) *FollowGraph {
	g := NewFollowGraph()
	for _, a := range distinct(accounts) {
		g.AddNamed(&Node{Kind: NamedNode, Login: a.Login, Name: a.Name, ID: a.ID})
		for _, id := range a.friends.Sorted() {
			if !pop.Shared(id) {
				continue
			}
			g.AddExternal(id)
			g.AddEdge(a.Login, id)
		}
	}
	return g
}

func (g *FollowGraph) AddNamed(node *Node) bool {
	if _, exists := g.Named[node.Login]; exists {
		return false
	}
	node.Kind = NamedNode
	g.Named[node.Login] = node
	return true
}

func (g *FollowGraph) AddExternal(id int64) bool {
	if _, exists := g.External[id]; exists {
		return false
	}
	g.External[id] = &Node{Kind: ExternalNode, ID: id}
	return true
}

// AddEdge records source following target. Repeating the same pair bumps the
// weight instead of adding a parallel edge.
func (g *FollowGraph) AddEdge(source string, target int64) {
	key := edgeKey{source: source, target: target}
	if existing, ok := g.edges[key]; ok {
		existing.Weight++
		return
	}
	g.edges[key] = &Edge{Source: source, Target: target, Weight: 1}
	if node, ok := g.External[target]; ok {
		node.Followers++
	}
}

// Annotate sets logins on external nodes so exporters can label them.
func (g *FollowGraph) Annotate(logins map[int64]string) {
	for id, login := range logins {
		if node, ok := g.External[id]; ok {
			node.Login = login
		}
	}
}

func (g *FollowGraph) HasNamed(login string) bool {
	_, ok := g.Named[login]
	return ok
}

func (g *FollowGraph) HasExternal(id int64) bool {
	_, ok := g.External[id]
	return ok
}

func (g *FollowGraph) HasEdge(source string, target int64) bool {
	_, ok := g.edges[edgeKey{source: source, target: target}]
	return ok
}

func (g *FollowGraph) NodeCount() int {
	return len(g.Named) + len(g.External)
}

func (g *FollowGraph) EdgeCount() int {
	return len(g.edges)
}

// Nodes lists named nodes by login, then external nodes by ID.
func (g *FollowGraph) Nodes() []*Node {
	nodes := make([]*Node, 0, g.NodeCount())
	logins := make([]string, 0, len(g.Named))
	for login := range g.Named {
		logins = append(logins, login)
	}
	sort.Strings(logins)
	for _, login := range logins {
		nodes = append(nodes, g.Named[login])
	}
	ids := make([]int64, 0, len(g.External))
	for id := range g.External {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		nodes = append(nodes, g.External[id])
	}
	return nodes
}

// SortedEdges orders edges by source login, then target ID.
func (g *FollowGraph) SortedEdges() []*Edge {
	edges := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// Isolated returns named accounts with no outgoing edge, sorted.
func (g *FollowGraph) Isolated() []string {
	outgoing := make(map[string]bool, len(g.Named))
	for key := range g.edges {
		outgoing[key.source] = true
	}
	var logins []string
	for login := range g.Named {
		if !outgoing[login] {
			logins = append(logins, login)
		}
	}
	sort.Strings(logins)
	return logins
}
