package bgraph

import "github.com/oclearn/onecounter/alphabet"

// Period is a detected periodic stratum: level m is the bottom of the
// period, width k is the period length, and Pairing maps each state at
// level m to its counterpart at level m+k.
type Period struct {
	Level   int
	Width   int
	Pairing []Couple
}

// FindPeriod searches candidate (m, k) pairs in ascending order --
// smallest level first, and for each level, smallest width first. For
// each candidate it carves the two level windows [m, m+k] and
// [m+k, m+2k] out of the graph and tests them for isomorphism from
// their bottom levels; the first candidate whose windows test
// isomorphic is the detected period, with the pairing resolved back to
// node indices of g. ok is false when no candidate succeeds (including
// graphs too shallow to admit any).
func (g *Graph) FindPeriod(symbols []alphabet.Symbol) (Period, bool) {
	maxLevel := g.MaxLevel()
	if maxLevel < 1 {
		return Period{}, false
	}
	for m := 0; m <= maxLevel; m++ {
		for k := 1; m+2*k <= maxLevel+1; k++ {
			sub1 := g.Subgraph(m, m+k)
			sub2 := g.Subgraph(m+k, m+2*k)
			pairs, ok := sub1.IsIsomorphicTo(sub2, m, m+k, symbols)
			if !ok {
				continue
			}
			couples := make([]Couple, 0, len(pairs))
			for _, p := range pairs {
				low, okLow := g.NodeByLabel(sub1.Node(p.Low).Label)
				high, okHigh := g.NodeByLabel(sub2.Node(p.High).Label)
				if !okLow || !okHigh {
					couples = nil
					break
				}
				couples = append(couples, Couple{Low: low, High: high})
			}
			if couples == nil {
				continue
			}
			return Period{Level: m, Width: k, Pairing: couples}, true
		}
	}
	return Period{}, false
}
