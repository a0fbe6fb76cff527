package teachers

import (
	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/bgraph"
	"github.com/oclearn/onecounter/teacher"
)

// accepter is satisfied by both *v1ca.V1CA and *r1ca.R1CA.
type accepter interface {
	Accepts(w alphabet.Word) (bool, error)
}

// evalGraph walks g from its initial node, consuming w one symbol at a
// time via Succ; a missing edge rejects outright. Since Build only ever
// marks a table-0 row Accepting, landing on an accepting node after
// consuming the whole word already implies the word's counter came back
// to 0, so no separate counter check is needed here.
func evalGraph(g *bgraph.Graph, w alphabet.Word) bool {
	cur := g.Initial()
	for _, sym := range w {
		next, ok := g.Succ(cur, sym)
		if !ok {
			return false
		}
		cur = next
	}
	return g.Node(cur).Accepting
}

// evalDescribable dispatches a teacher's bg/automaton argument to the
// right evaluator: *bgraph.Graph walks edge by edge, anything else
// satisfying accepter (the two automaton kinds) is asked directly.
func evalDescribable(d teacher.Describable, w alphabet.Word) (bool, error) {
	if g, ok := d.(*bgraph.Graph); ok {
		return evalGraph(g, w), nil
	}
	if a, ok := d.(accepter); ok {
		return a.Accepts(w)
	}
	return false, nil
}
