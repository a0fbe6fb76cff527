// Package v1ca implements the visibly one-counter automaton: a finite
// automaton whose counter effect is determined solely by the symbol read
// (the visibly alphabet), with a bounded transition map keyed by
// (state, counter, symbol) and colored edges standing in for the
// unbounded counter range above the fold's max level.
package v1ca

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/automaton"
)

// ErrNoTransition names the case of no entry for (state,
// min(counter, maxLevel), symbol). Accepts does not return it: it
// reports such a word as rejected, with a nil error.
var ErrNoTransition = errors.New("v1ca: no transition")

// Key indexes the transition map.
type Key struct {
	State   int
	Counter int
	Symbol  alphabet.Symbol
}

// Value is a transition map entry.
type Value struct {
	Next  int
	Color automaton.Color
}

// V1CA is a visibly one-counter automaton.
type V1CA struct {
	NumStates   int
	Initial     int
	Accepting   map[int]bool
	Alphabet    alphabet.Visibly
	MaxLevel    int
	Transitions map[Key]Value

	// DebugID disambiguates automata synthesized by Intersection and
	// Complement (whose states are otherwise anonymous integers) in
	// Describe output, since several get built in the course of one
	// equivalence check.
	DebugID string
}

// New builds a V1CA from its raw fields, validating accepting/initial
// bounds.
func New(numStates, initial int, accepting map[int]bool, a alphabet.Visibly, maxLevel int, transitions map[Key]Value) (*V1CA, error) {
	if initial < 0 || initial >= numStates {
		return nil, fmt.Errorf("%w: initial state %d", automaton.ErrOutOfRange, initial)
	}
	acc := make(map[int]bool, len(accepting))
	for s, v := range accepting {
		if s < 0 || s >= numStates {
			return nil, fmt.Errorf("%w: accepting state %d", automaton.ErrOutOfRange, s)
		}
		if v {
			acc[s] = true
		}
	}
	tr := make(map[Key]Value, len(transitions))
	for k, v := range transitions {
		tr[k] = v
	}
	return &V1CA{
		NumStates:   numStates,
		Initial:     initial,
		Accepting:   acc,
		Alphabet:    a,
		MaxLevel:    maxLevel,
		Transitions: tr,
		DebugID:     uuid.New().String(),
	}, nil
}

func (v *V1CA) clipped(counter int) int {
	if counter > v.MaxLevel {
		return v.MaxLevel
	}
	return counter
}

// Accepts evaluates w: the counter starts at 0, moves by each symbol's
// visible effect, and the transition map is consulted with the counter
// clipped to MaxLevel. A word whose counter ever goes negative, or for
// which no transition exists, is rejected. w is accepted iff the
// counter is back at 0 and the final state is accepting.
func (v *V1CA) Accepts(w alphabet.Word) (bool, error) {
	state := v.Initial
	counter := 0
	for _, sym := range w {
		key := Key{State: state, Counter: v.clipped(counter), Symbol: sym}
		val, ok := v.Transitions[key]
		if !ok {
			return false, nil
		}
		counter += v.Alphabet.Effect(sym)
		if counter < 0 {
			return false, nil
		}
		state = val.Next
	}
	return counter == 0 && v.Accepting[state], nil
}

// Describe renders the automaton to stdout via pterm, tagged for
// disambiguation when several automata are printed in one run.
func (v *V1CA) Describe(tag string) {
	describe(v, tag)
}
