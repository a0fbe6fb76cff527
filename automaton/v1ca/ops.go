package v1ca

import (
	"github.com/google/uuid"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/automaton"
)

// Complement returns an automaton accepting exactly the words v rejects,
// among valid words whose counter ends at 0. Words whose counter goes
// negative or ends above 0 are rejected by both v and its complement,
// since Accepts always requires a final counter of 0. It adds one trap
// state absorbing every transition missing from v's map.
func (v *V1CA) Complement() *V1CA {
	trap := v.NumStates
	tr := make(map[Key]Value, len(v.Transitions)+1)
	for k, val := range v.Transitions {
		tr[k] = val
	}
	symbols := v.Alphabet.Symbols()
	for s := 0; s <= trap; s++ {
		for c := 0; c <= v.MaxLevel; c++ {
			for _, sym := range symbols {
				key := Key{State: s, Counter: c, Symbol: sym}
				if _, ok := tr[key]; !ok {
					tr[key] = Value{Next: trap, Color: automaton.Initial}
				}
			}
		}
	}
	accepting := make(map[int]bool, v.NumStates+1-len(v.Accepting))
	for s := 0; s <= trap; s++ {
		if !v.Accepting[s] {
			accepting[s] = true
		}
	}
	return &V1CA{
		NumStates:   trap + 1,
		Initial:     v.Initial,
		Accepting:   accepting,
		Alphabet:    v.Alphabet,
		MaxLevel:    v.MaxLevel,
		Transitions: tr,
		DebugID:     uuid.New().String(),
	}
}

// raiseLevel returns a copy of v whose max level is newMax: no new states
// are introduced, since the top counter row already stands in for every
// level above it (that's what folding a period means), so raising the
// level only has to replicate that row across the newly opened counter
// range for a product's counter dimension to line up.
func (v *V1CA) raiseLevel(newMax int) *V1CA {
	if newMax <= v.MaxLevel {
		clone := *v
		clone.Transitions = make(map[Key]Value, len(v.Transitions))
		for k, val := range v.Transitions {
			clone.Transitions[k] = val
		}
		clone.Accepting = make(map[int]bool, len(v.Accepting))
		for s, b := range v.Accepting {
			clone.Accepting[s] = b
		}
		return &clone
	}
	tr := make(map[Key]Value, len(v.Transitions)*2)
	for k, val := range v.Transitions {
		tr[k] = val
		// replicate the top-level counter row across the newly opened
		// counter range so the raised automaton behaves identically at
		// every level between the old and new bound.
		if k.Counter == v.MaxLevel {
			for c := v.MaxLevel + 1; c <= newMax; c++ {
				tr[Key{State: k.State, Counter: c, Symbol: k.Symbol}] = val
			}
		}
	}
	accepting := make(map[int]bool, len(v.Accepting))
	for s, b := range v.Accepting {
		accepting[s] = b
	}
	return &V1CA{
		NumStates:   v.NumStates,
		Initial:     v.Initial,
		Accepting:   accepting,
		Alphabet:    v.Alphabet,
		MaxLevel:    newMax,
		Transitions: tr,
		DebugID:     v.DebugID,
	}
}

// Intersection builds the product automaton of v and other. If the two
// operands have different max levels, the lower one is raised first
// (its top counter row is replicated; no states are added) so the product's counter
// dimension is well-defined at every level either operand can reach.
func (v *V1CA) Intersection(other *V1CA) (*V1CA, error) {
	if !v.Alphabet.Equal(other.Alphabet) {
		return nil, automaton.ErrAlphabetMismatch
	}
	a, b := v, other
	if a.MaxLevel < b.MaxLevel {
		a = a.raiseLevel(b.MaxLevel)
	} else if b.MaxLevel < a.MaxLevel {
		b = b.raiseLevel(a.MaxLevel)
	}
	maxLevel := a.MaxLevel

	pairID := make(map[[2]int]int)
	id := func(sa, sb int) (int, bool) {
		key := [2]int{sa, sb}
		if i, ok := pairID[key]; ok {
			return i, false
		}
		i := len(pairID)
		pairID[key] = i
		return i, true
	}

	initial, _ := id(a.Initial, b.Initial)
	accepting := make(map[int]bool)
	tr := make(map[Key]Value)
	symbols := a.Alphabet.Symbols()

	// reachable product construction: only pairs discovered by walking
	// transitions from the initial pair are ever assigned an id, since
	// the product's state count is bounded by a.NumStates*b.NumStates
	// but usually far smaller.
	queue := [][2]int{{a.Initial, b.Initial}}
	for len(queue) > 0 {
		pair := queue[0]
		queue = queue[1:]
		sa, sb := pair[0], pair[1]
		pid, _ := id(sa, sb)
		if a.Accepting[sa] && b.Accepting[sb] {
			accepting[pid] = true
		}
		for c := 0; c <= maxLevel; c++ {
			for _, sym := range symbols {
				va, oka := a.Transitions[Key{State: sa, Counter: c, Symbol: sym}]
				vb, okb := b.Transitions[Key{State: sb, Counter: c, Symbol: sym}]
				if !oka || !okb {
					continue
				}
				next, fresh := id(va.Next, vb.Next)
				if fresh {
					queue = append(queue, [2]int{va.Next, vb.Next})
				}
				tr[Key{State: pid, Counter: c, Symbol: sym}] = Value{Next: next, Color: automaton.Initial}
			}
		}
	}

	return &V1CA{
		NumStates:   len(pairID),
		Initial:     initial,
		Accepting:   accepting,
		Alphabet:    a.Alphabet,
		MaxLevel:    maxLevel,
		Transitions: tr,
		DebugID:     uuid.New().String(),
	}, nil
}

// Empty performs a breadth-first search from the initial state (bounded by the state
// count times maxLevel+1, since a cycle at a fixed counter index can't
// discover anything new) to find an accepted witness, reporting the
// shortest one found by breadth order if any reachable state is
// accepting.
func (v *V1CA) Empty() (alphabet.Word, bool) {
	type frontier struct {
		state, counter int
		word           alphabet.Word
	}
	seen := map[[2]int]bool{}
	start := frontier{state: v.Initial, counter: 0}
	if v.Accepting[v.Initial] {
		return alphabet.Word{}, false
	}
	queue := []frontier{start}
	seen[[2]int{v.Initial, 0}] = true
	symbols := v.Alphabet.Symbols()
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, sym := range symbols {
			key := Key{State: cur.state, Counter: v.clipped(cur.counter), Symbol: sym}
			val, ok := v.Transitions[key]
			if !ok {
				continue
			}
			nc := cur.counter + v.Alphabet.Effect(sym)
			if nc < 0 {
				continue
			}
			word := append(append(alphabet.Word{}, cur.word...), sym)
			if nc == 0 && v.Accepting[val.Next] {
				return word, false
			}
			sk := [2]int{val.Next, v.clipped(nc)}
			if !seen[sk] {
				seen[sk] = true
				queue = append(queue, frontier{state: val.Next, counter: nc, word: word})
			}
		}
	}
	return nil, true
}

// IsSubsetOf reports whether every word v accepts is accepted by other,
// i.e. v intersected with other's complement is empty. When it is not,
// the witness word v accepts and other rejects is returned.
func (v *V1CA) IsSubsetOf(other *V1CA) (alphabet.Word, bool, error) {
	return witnessSubset(v, other)
}

// IsEquivalentTo reports whether v and other accept the same language,
// via mutual subset checks, returning a counter-example word if not.
func (v *V1CA) IsEquivalentTo(other *V1CA) (alphabet.Word, bool, error) {
	ce, sub, err := witnessSubset(v, other)
	if err != nil {
		return nil, false, err
	}
	if !sub {
		return ce, false, nil
	}
	ce, sub, err = witnessSubset(other, v)
	if err != nil {
		return nil, false, err
	}
	if !sub {
		return ce, false, nil
	}
	return nil, true, nil
}

func witnessSubset(a, b *V1CA) (alphabet.Word, bool, error) {
	prod, err := a.Intersection(b.Complement())
	if err != nil {
		return nil, false, err
	}
	w, empty := prod.Empty()
	if empty {
		return nil, true, nil
	}
	return w, false, nil
}
