package bgraph

import (
	"fmt"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/rst"
	"github.com/oclearn/onecounter/teacher"
)

// Build derives a behaviour graph from a deduplicated RST: one node per
// row of each table, initial = the class of the empty word, accepting =
// nodes of table 0 whose empty-word column cell is true, and one edge per
// (node, symbol) whose successor's counter value falls within the RST's
// range. Counter values come from wc -- the visibly alphabet when
// learning a V1CA, the teacher's counter queries when learning an R1CA --
// and an edge's effect is the counter delta between its endpoints.
func Build(dedup *rst.RST, t teacher.Membership, wc alphabet.Counter) (*Graph, error) {
	g := newGraph()

	for i, table := range dedup.Tables() {
		for _, label := range table.RowLabels() {
			g.addNode(label, i)
		}
	}

	initIdx, ok := g.NodeByLabel(alphabet.Word{})
	if !ok {
		return nil, ErrNoInitialNode
	}
	g.initial = initIdx
	g.nodes[initIdx].Initial = true

	t0, err := dedup.Table(0)
	if err != nil {
		return nil, err
	}
	epsCol, ok := t0.ColIndexOf(alphabet.Word{})
	if !ok {
		return nil, fmt.Errorf("%w: table 0 missing empty column", ErrFoldInvariant)
	}
	for ri, label := range t0.RowLabels() {
		if t0.At(ri, epsCol) {
			idx, ok := g.NodeByLabel(label)
			if !ok {
				return nil, fmt.Errorf("%w: row %q not registered as node", ErrFoldInvariant, label.String())
			}
			g.nodes[idx].Accepting = true
		}
	}

	symbols := wc.Symbols()
	for ni := 0; ni < len(g.nodes); ni++ {
		node := g.nodes[ni]
		for _, sigma := range symbols {
			succWord := append(append(alphabet.Word{}, node.Label...), sigma)
			cv := wc.CounterValue(succWord)
			if cv < 0 || cv >= dedup.Size() {
				continue
			}
			target, err := dedup.Table(cv)
			if err != nil {
				return nil, err
			}
			label, err := resolveRow(target, succWord, t)
			if err != nil {
				return nil, err
			}
			toIdx, ok := g.NodeByLabel(label)
			if !ok {
				return nil, fmt.Errorf("%w: resolved row %q has no node", ErrFoldInvariant, label.String())
			}
			g.addEdge(ni, toIdx, sigma, cv-node.Level)
		}
	}

	return g, nil
}

// resolveRow finds the row of target whose boolean vector is O-equivalent
// to word's, querying the teacher to compute word's vector if word is not
// already a literal row of target. It never mutates target.
func resolveRow(target *rst.Table, word alphabet.Word, t teacher.Membership) (alphabet.Word, error) {
	if target.HasRow(word) {
		return word, nil
	}
	vec := make([]bool, target.NumCols())
	for i, col := range target.ColLabels() {
		full := append(append(alphabet.Word{}, word...), col...)
		v, err := t.MembershipQuery(full)
		if err != nil {
			return nil, err
		}
		vec[i] = v
	}
	for ri := 0; ri < target.NumRows(); ri++ {
		rv := target.RowVector(ri)
		match := true
		for k := range vec {
			if vec[k] != rv[k] {
				match = false
				break
			}
		}
		if match {
			return target.RowLabels()[ri], nil
		}
	}
	return nil, fmt.Errorf("%w: no row of target table is O-equivalent to %q", ErrFoldInvariant, word.String())
}
