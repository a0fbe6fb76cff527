package bgraph

import (
	"fmt"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/automaton"
	"github.com/oclearn/onecounter/automaton/r1ca"
	"github.com/oclearn/onecounter/automaton/v1ca"
)

// fold tracks which nodes survive a fold (levels up to and including
// the cut) and the contiguous state ids assigned to them.
type fold struct {
	g       *Graph
	stateOf map[int]int // kept node index -> contiguous state id
	kept    []int       // state id -> kept node index
}

func newFold(g *Graph, cut int) *fold {
	f := &fold{g: g, stateOf: map[int]int{}}
	for n := 0; n < g.NumNodes(); n++ {
		if g.Node(n).Level <= cut {
			f.stateOf[n] = len(f.kept)
			f.kept = append(f.kept, n)
		}
	}
	return f
}

func (f *fold) state(n int) (int, error) {
	s, ok := f.stateOf[n]
	if !ok {
		return 0, fmt.Errorf("%w: node %d was cut away with no surviving role", ErrFoldInvariant, n)
	}
	return s, nil
}

// FoldV1CA folds the behaviour graph into a V1CA. With a detected
// period (m, k) the automaton keeps only levels 0..m+k and has max
// level m+k: each surviving node's edges are keyed at its home level,
// and for every paired (low, high) node the period is closed at the max
// level with two kinds of mirrored entries -- high's decrementing edges
// replayed at low (loop-in-bottom, taken when the counter re-enters the
// stratum from above) and low's incrementing edges replayed at high
// (loop-in-top, letting the counter climb past the fold). A low edge
// sharing its symbol with a mirrored return is recolored loop-out: it
// is the copy of that return taken while the counter is still at or
// below the period level. With no period detected, the whole explored
// graph becomes the automaton verbatim, which only accepts words whose
// counter stays within the explored range.
func (g *Graph) FoldV1CA(a alphabet.Visibly, symbols []alphabet.Symbol) (*v1ca.V1CA, error) {
	period, periodic := g.FindPeriod(symbols)
	cut := g.MaxLevel()
	if periodic {
		cut = period.Level + period.Width
	}
	f := newFold(g, cut)

	transitions := make(map[v1ca.Key]v1ca.Value)
	for _, n := range f.kept {
		fromState := f.stateOf[n]
		level := g.Node(n).Level
		for _, ei := range g.OutEdges(n) {
			e := g.Edge(ei)
			toState, ok := f.stateOf[e.To]
			if !ok {
				continue // the target was cut; the period mirrors stand in for it
			}
			key := v1ca.Key{State: fromState, Counter: level, Symbol: e.Symbol}
			transitions[key] = v1ca.Value{Next: toState, Color: automaton.Initial}
		}
	}

	if periodic {
		for _, c := range period.Pairing {
			lowState, err := f.state(c.Low)
			if err != nil {
				return nil, err
			}
			highState, err := f.state(c.High)
			if err != nil {
				return nil, err
			}
			for _, ei := range g.OutEdges(c.High) {
				e := g.Edge(ei)
				if e.Effect >= 0 {
					continue
				}
				toState, err := f.state(e.To)
				if err != nil {
					return nil, err
				}
				transitions[v1ca.Key{State: lowState, Counter: cut, Symbol: e.Symbol}] = v1ca.Value{Next: toState, Color: automaton.LoopInBottom}
				homeKey := v1ca.Key{State: lowState, Counter: g.Node(c.Low).Level, Symbol: e.Symbol}
				if v, ok := transitions[homeKey]; ok {
					v.Color = automaton.LoopOut
					transitions[homeKey] = v
				}
			}
			for _, ei := range g.OutEdges(c.Low) {
				e := g.Edge(ei)
				if e.Effect <= 0 {
					continue
				}
				toState, err := f.state(e.To)
				if err != nil {
					return nil, err
				}
				transitions[v1ca.Key{State: highState, Counter: cut, Symbol: e.Symbol}] = v1ca.Value{Next: toState, Color: automaton.LoopInTop}
			}
		}
	}

	initial, err := f.state(g.Initial())
	if err != nil {
		return nil, err
	}
	accepting := map[int]bool{}
	for _, n := range f.kept {
		if g.Node(n).Accepting {
			accepting[f.stateOf[n]] = true
		}
	}

	return v1ca.New(len(f.kept), initial, accepting, a, cut, transitions)
}

// FoldR1CA folds the behaviour graph into an R1CA. With a detected
// period (m, k) the rules mirror FoldV1CA's closure, expressed as
// threshold conditions on the live counter instead of max-level keys: a
// paired low node gets its high partner's decrementing edges gated at
// counter > m (the wrap taken on every pass after the first), its own
// copy of any such symbol is gated at counter <= m (the final descent
// out of the loop), and a paired high node gets its low partner's
// incrementing edges ungated so the counter can climb freely. With no
// period detected the explored graph is emitted verbatim with
// unconditional rules and no counter gating at all.
func (g *Graph) FoldR1CA(basic alphabet.Basic, symbols []alphabet.Symbol) (*r1ca.R1CA, error) {
	period, periodic := g.FindPeriod(symbols)
	cut := g.MaxLevel()
	if periodic {
		cut = period.Level + period.Width
	}
	f := newFold(g, cut)

	initial, err := f.state(g.Initial())
	if err != nil {
		return nil, err
	}
	b, err := r1ca.NewBuilder(len(f.kept), initial, basic)
	if err != nil {
		return nil, err
	}
	for _, n := range f.kept {
		if g.Node(n).Accepting {
			if err := b.Accept(f.stateOf[n]); err != nil {
				return nil, err
			}
		}
	}

	// gated[n] holds the symbols whose return edge wraps at paired low
	// node n: the home copy of such an edge must stop firing once the
	// counter has climbed past the period level.
	gated := map[int]map[alphabet.Symbol]bool{}
	if periodic {
		for _, c := range period.Pairing {
			for _, ei := range g.OutEdges(c.High) {
				e := g.Edge(ei)
				if e.Effect < 0 {
					if gated[c.Low] == nil {
						gated[c.Low] = map[alphabet.Symbol]bool{}
					}
					gated[c.Low][e.Symbol] = true
				}
			}
		}
	}

	for _, n := range f.kept {
		fromState := f.stateOf[n]
		for _, ei := range g.OutEdges(n) {
			e := g.Edge(ei)
			toState, ok := f.stateOf[e.To]
			if !ok {
				continue
			}
			rule := r1ca.Rule{Cond: r1ca.Unconditional, Effect: e.Effect, Next: toState}
			if gated[n][e.Symbol] {
				rule = r1ca.Rule{Cond: r1ca.CounterLE, Threshold: period.Level, Effect: e.Effect, Next: toState}
			}
			if err := b.AddRule(fromState, e.Symbol, rule); err != nil {
				return nil, err
			}
		}
	}

	if periodic {
		for _, c := range period.Pairing {
			lowState, err := f.state(c.Low)
			if err != nil {
				return nil, err
			}
			highState, err := f.state(c.High)
			if err != nil {
				return nil, err
			}
			for _, ei := range g.OutEdges(c.High) {
				e := g.Edge(ei)
				if e.Effect >= 0 {
					continue
				}
				toState, err := f.state(e.To)
				if err != nil {
					return nil, err
				}
				rule := r1ca.Rule{Cond: r1ca.CounterGT, Threshold: period.Level, Effect: e.Effect, Next: toState}
				if err := b.AddRule(lowState, e.Symbol, rule); err != nil {
					return nil, err
				}
			}
			for _, ei := range g.OutEdges(c.Low) {
				e := g.Edge(ei)
				if e.Effect <= 0 {
					continue
				}
				toState, err := f.state(e.To)
				if err != nil {
					return nil, err
				}
				rule := r1ca.Rule{Cond: r1ca.Unconditional, Effect: e.Effect, Next: toState}
				if err := b.AddRule(highState, e.Symbol, rule); err != nil {
					return nil, err
				}
			}
		}
	}

	return b.Build(), nil
}
