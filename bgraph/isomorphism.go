package bgraph

import "github.com/oclearn/onecounter/alphabet"

// tagMap is the labelling map threaded through one pairing attempt:
// every node visited in lockstep gets a canonical integer tag, and two
// nodes (one per side) carry the same tag iff they were first reached
// at the same step. Attempts that fail leave the map partially
// extended, so callers clone before each attempt and keep the clone
// only on success.
type tagMap struct {
	left  map[int]int // node index in the left graph -> tag
	right map[int]int // node index in the right graph -> tag
	next  int
}

func newTagMap() *tagMap {
	return &tagMap{left: map[int]int{}, right: map[int]int{}}
}

func (m *tagMap) clone() *tagMap {
	cp := &tagMap{
		left:  make(map[int]int, len(m.left)),
		right: make(map[int]int, len(m.right)),
		next:  m.next,
	}
	for k, v := range m.left {
		cp.left[k] = v
	}
	for k, v := range m.right {
		cp.right[k] = v
	}
	return cp
}

// match reconciles the tags of n1 (left side) and n2 (right side): both
// untagged mints a fresh shared tag, both tagged must agree, and a tag
// on one side only is a mismatch.
func (m *tagMap) match(n1, n2 int) bool {
	t1, ok1 := m.left[n1]
	t2, ok2 := m.right[n2]
	if ok1 != ok2 {
		return false
	}
	if ok1 {
		return t1 == t2
	}
	m.left[n1] = m.next
	m.right[n2] = m.next
	m.next++
	return true
}

// isStateIsomorphic runs a lockstep BFS from n1 (in g1) and n2 (in g2),
// requiring agreement on accepting/initial flags, successor-presence,
// and predecessor-presence for every symbol, and extending tags with a
// consistent labelling throughout. On failure tags is left partially
// extended; the caller discards it.
func isStateIsomorphic(g1, g2 *Graph, n1, n2 int, tags *tagMap, symbols []alphabet.Symbol) bool {
	f1, f2 := g1.Node(n1), g2.Node(n2)
	if f1.Accepting != f2.Accepting || f1.Initial != f2.Initial {
		return false
	}
	if !tags.match(n1, n2) {
		return false
	}

	type pair struct{ x, y int }
	visited := map[int]bool{n1: true}
	queue := []pair{{n1, n2}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		for _, sigma := range symbols {
			sx, okx := g1.Succ(p.x, sigma)
			sy, oky := g2.Succ(p.y, sigma)
			if okx != oky {
				return false
			}
			if okx {
				nx, ny := g1.Node(sx), g2.Node(sy)
				if nx.Accepting != ny.Accepting || nx.Initial != ny.Initial {
					return false
				}
				if !tags.match(sx, sy) {
					return false
				}
				if !visited[sx] {
					visited[sx] = true
					queue = append(queue, pair{sx, sy})
				}
			}
			if g1.HasPredecessor(p.x, sigma) != g2.HasPredecessor(p.y, sigma) {
				return false
			}
		}
	}
	return true
}

// IsIsomorphicTo decides whether g and other are isomorphic when
// explored from their respective starting levels: every state of g at
// fromLevel1 must pair with a state of other at fromLevel2 such that a
// lockstep BFS from each pair agrees on flags, successor- and
// predecessor-presence, and the shared labelling. Pairs are committed
// one at a time, recursing on the remaining starts and backtracking on
// failure. It returns the full list of start-state pairs (Low indexing
// g, High indexing other) if every start pairs, or ok=false otherwise.
//
// Callers wanting the period test of a single behaviour graph pass two
// Subgraph windows of it; edges leaving a window are absent from the
// comparison by construction.
func (g *Graph) IsIsomorphicTo(other *Graph, fromLevel1, fromLevel2 int, symbols []alphabet.Symbol) ([]Couple, bool) {
	starts1 := g.StatesOfLevel(fromLevel1)
	starts2 := other.StatesOfLevel(fromLevel2)
	if len(starts1) != len(starts2) {
		return nil, false
	}

	used := make(map[int]bool, len(starts2))
	var couples []Couple

	var rec func(idx int, tags *tagMap) bool
	rec = func(idx int, tags *tagMap) bool {
		if idx == len(starts1) {
			return true
		}
		for _, s2 := range starts2 {
			if used[s2] {
				continue
			}
			attempt := tags.clone()
			if !isStateIsomorphic(g, other, starts1[idx], s2, attempt, symbols) {
				continue
			}
			used[s2] = true
			couples = append(couples, Couple{Low: starts1[idx], High: s2})
			if rec(idx+1, attempt) {
				return true
			}
			couples = couples[:len(couples)-1]
			used[s2] = false
		}
		return false
	}

	if rec(0, newTagMap()) {
		return couples, true
	}
	return nil, false
}
