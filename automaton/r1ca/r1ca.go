// Package r1ca implements the realtime one-counter automaton: a finite
// automaton whose counter effect is an arbitrary integer per transition
// (not tied to the symbol alone, as in v1ca), and whose transitions may
// be conditioned on the counter's value relative to a threshold. A
// CounterQuery capability on the teacher is required to learn one, since
// membership alone cannot distinguish two words that reach the same
// state by different counter paths.
package r1ca

import (
	"errors"
	"fmt"

	"github.com/oclearn/onecounter/alphabet"
)

// ErrNoTransition indicates Evaluate found no rule matching the current
// (state, symbol, counter).
var ErrNoTransition = errors.New("r1ca: no transition")

// ErrAmbiguousRule indicates two rules registered for the same
// (state, symbol) can both fire for some counter value.
var ErrAmbiguousRule = errors.New("r1ca: ambiguous rule")

// Condition names when a conditional rule fires.
type Condition int

const (
	// Unconditional rules always fire.
	Unconditional Condition = iota
	// CounterLE fires when the counter is <= Threshold (loop-out).
	CounterLE
	// CounterGT fires when the counter is > Threshold (loop-in).
	CounterGT
)

// Rule is one transition rule attached to a (state, symbol) pair.
type Rule struct {
	Cond      Condition
	Threshold int
	Effect    int
	Next      int
}

func (r Rule) applies(counter int) bool {
	switch r.Cond {
	case Unconditional:
		return true
	case CounterLE:
		return counter <= r.Threshold
	case CounterGT:
		return counter > r.Threshold
	default:
		return false
	}
}

// Key indexes the rule table.
type Key struct {
	State  int
	Symbol alphabet.Symbol
}

// R1CA is a realtime one-counter automaton.
type R1CA struct {
	NumStates int
	Initial   int
	Accepting map[int]bool
	Alphabet  alphabet.Basic
	Rules     map[Key][]Rule
}

func (r *R1CA) step(state, counter int, sym alphabet.Symbol) (int, int, error) {
	rules := r.Rules[Key{State: state, Symbol: sym}]
	var matched *Rule
	for i := range rules {
		if rules[i].applies(counter) {
			if matched != nil {
				return 0, 0, fmt.Errorf("%w: state %d symbol %c counter %d", ErrAmbiguousRule, state, rune(sym), counter)
			}
			matched = &rules[i]
		}
	}
	if matched == nil {
		return 0, 0, ErrNoTransition
	}
	nc := counter + matched.Effect
	if nc < 0 {
		return 0, 0, ErrNoTransition
	}
	return matched.Next, nc, nil
}

// Evaluate runs w from the initial state and counter 0, accepting iff
// it reaches the end with counter 0 in an accepting state. A word
// hitting ErrNoTransition (no rule fires, or the counter would go
// negative) is rejected, not an error.
func (r *R1CA) Evaluate(w alphabet.Word) (bool, error) {
	_, accept, err := r.run(w)
	return accept, err
}

// Accepts satisfies automaton.Automaton by forwarding to Evaluate, so
// the learner can hold a *V1CA and a *R1CA behind the same interface.
func (r *R1CA) Accepts(w alphabet.Word) (bool, error) {
	return r.Evaluate(w)
}

// Count returns the counter value reached after reading w, for teachers
// that answer counter queries. If w gets stuck partway (no rule fires,
// or the counter would go negative), Count returns -1 and a nil error;
// it returns a non-nil error only for ErrAmbiguousRule, a malformed
// rule table.
func (r *R1CA) Count(w alphabet.Word) (int, error) {
	counter, _, err := r.run(w)
	return counter, err
}

func (r *R1CA) run(w alphabet.Word) (int, bool, error) {
	state := r.Initial
	counter := 0
	for _, sym := range w {
		next, nc, err := r.step(state, counter, sym)
		if err != nil {
			if errors.Is(err, ErrNoTransition) {
				return -1, false, nil
			}
			return -1, false, err
		}
		state, counter = next, nc
	}
	return counter, counter == 0 && r.Accepting[state], nil
}

// Describe renders r to stdout via pterm.
func (r *R1CA) Describe(tag string) {
	describe(r, tag)
}
