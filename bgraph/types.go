// Package bgraph implements the behaviour graph: the labeled directed
// graph derived from a closed & consistent RST by quotienting rows by
// O-equivalence. It also implements level-slice isomorphism testing,
// period search, and folding a behaviour graph into a V1CA or R1CA.
//
// Nodes and edges live in a flat arena (slices, index-pair edges) rather
// than a pointer graph, so the period loop's back-edges never create a
// reference cycle.
package bgraph

import (
	"sort"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/oclearn/onecounter/alphabet"
)

// Node is one O-equivalence class: a level (counter value) and the
// shortest witness word discovered for that class.
type Node struct {
	Label     alphabet.Word
	Level     int
	Initial   bool
	Accepting bool
}

// Edge connects two nodes by a symbol, carrying the counter delta
// between its endpoints' levels (for a visibly alphabet, the symbol's
// own effect).
type Edge struct {
	From, To int
	Symbol   alphabet.Symbol
	Effect   int
}

// Graph is the behaviour graph: a flat arena of Nodes and Edges.
type Graph struct {
	nodes   []Node
	edges   []Edge
	outIdx  [][]int // node index -> edge indices leaving it
	inIdx   [][]int // node index -> edge indices entering it
	byLabel map[string]int
	initial int
	levels  *treeset.Set
}

func newGraph() *Graph {
	return &Graph{
		byLabel: make(map[string]int),
		levels:  treeset.NewWith(utils.IntComparator),
		initial: -1,
	}
}

// NumNodes reports the number of nodes (O-equivalence classes).
func (g *Graph) NumNodes() int { return len(g.nodes) }

// Node returns node i's data.
func (g *Graph) Node(i int) Node { return g.nodes[i] }

// Initial returns the index of the initial node (the class of the empty
// word), or -1 if the graph has none.
func (g *Graph) Initial() int { return g.initial }

// Levels returns the sorted distinct levels present in the graph.
func (g *Graph) Levels() []int {
	vals := g.levels.Values()
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = v.(int)
	}
	sort.Ints(out)
	return out
}

// MaxLevel returns the highest level present, or -1 for an empty graph.
func (g *Graph) MaxLevel() int {
	ls := g.Levels()
	if len(ls) == 0 {
		return -1
	}
	return ls[len(ls)-1]
}

// StatesOfLevel returns the indices of every node at the given level, in
// ascending index order.
func (g *Graph) StatesOfLevel(level int) []int {
	var out []int
	for i, n := range g.nodes {
		if n.Level == level {
			out = append(out, i)
		}
	}
	return out
}

// NodeByLabel returns the index of the node labeled by word, if any.
func (g *Graph) NodeByLabel(word alphabet.Word) (int, bool) {
	i, ok := g.byLabel[word.String()]
	return i, ok
}

func (g *Graph) addNode(label alphabet.Word, level int) int {
	idx := len(g.nodes)
	g.nodes = append(g.nodes, Node{Label: append(alphabet.Word{}, label...), Level: level})
	g.outIdx = append(g.outIdx, nil)
	g.inIdx = append(g.inIdx, nil)
	g.byLabel[label.String()] = idx
	g.levels.Add(level)
	return idx
}

func (g *Graph) addEdge(from, to int, symbol alphabet.Symbol, effect int) int {
	idx := len(g.edges)
	g.edges = append(g.edges, Edge{From: from, To: to, Symbol: symbol, Effect: effect})
	g.outIdx[from] = append(g.outIdx[from], idx)
	g.inIdx[to] = append(g.inIdx[to], idx)
	return idx
}

// OutEdges returns the indices of edges leaving node i.
func (g *Graph) OutEdges(i int) []int { return g.outIdx[i] }

// InEdges returns the indices of edges entering node i.
func (g *Graph) InEdges(i int) []int { return g.inIdx[i] }

// Edge returns edge e's data.
func (g *Graph) Edge(e int) Edge { return g.edges[e] }

// NumEdges reports the number of edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Succ returns the node reached from node i by symbol, if any edge from i
// carries that symbol.
func (g *Graph) Succ(i int, symbol alphabet.Symbol) (int, bool) {
	for _, ei := range g.outIdx[i] {
		e := g.edges[ei]
		if e.Symbol == symbol {
			return e.To, true
		}
	}
	return 0, false
}

// HasPredecessor reports whether some edge labeled symbol enters node i.
func (g *Graph) HasPredecessor(i int, symbol alphabet.Symbol) bool {
	for _, ei := range g.inIdx[i] {
		if g.edges[ei].Symbol == symbol {
			return true
		}
	}
	return false
}

// Subgraph returns a copy of g restricted to nodes whose level lies in
// [lo, hi] and the edges among them. Labels, levels, and flags carry
// over; the initial node carries over only if it falls inside the
// window.
func (g *Graph) Subgraph(lo, hi int) *Graph {
	sub := newGraph()
	remap := make(map[int]int)
	for i, n := range g.nodes {
		if n.Level < lo || n.Level > hi {
			continue
		}
		ni := sub.addNode(n.Label, n.Level)
		sub.nodes[ni].Initial = n.Initial
		sub.nodes[ni].Accepting = n.Accepting
		if n.Initial {
			sub.initial = ni
		}
		remap[i] = ni
	}
	for _, e := range g.edges {
		from, okFrom := remap[e.From]
		to, okTo := remap[e.To]
		if okFrom && okTo {
			sub.addEdge(from, to, e.Symbol, e.Effect)
		}
	}
	return sub
}

// Couple is a pairing of two node indices produced by isomorphism testing
// or period detection. For IsIsomorphicTo, Low indexes the receiver and
// High the other graph; for a Period, both index the graph the period
// was detected on.
type Couple struct {
	Low, High int
}
