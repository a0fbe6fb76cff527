package r1ca

import (
	"fmt"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/automaton"
)

// Builder accumulates rules incrementally and validates non-overlap at
// insertion time rather than deferring the check to Evaluate. Rules are
// stored as given (condition and threshold), not expanded per counter
// value; Evaluate resolves them against the live counter.
type Builder struct {
	numStates int
	initial   int
	accepting map[int]bool
	alphabet  alphabet.Basic
	rules     map[Key][]Rule
}

// NewBuilder starts a builder for an automaton with the given state
// count, initial state, and alphabet.
func NewBuilder(numStates, initial int, a alphabet.Basic) (*Builder, error) {
	if initial < 0 || initial >= numStates {
		return nil, fmt.Errorf("%w: initial state %d", automaton.ErrOutOfRange, initial)
	}
	return &Builder{
		numStates: numStates,
		initial:   initial,
		accepting: map[int]bool{},
		alphabet:  a,
		rules:     map[Key][]Rule{},
	}, nil
}

// Accept marks state as accepting.
func (b *Builder) Accept(state int) error {
	if state < 0 || state >= b.numStates {
		return fmt.Errorf("%w: state %d", automaton.ErrOutOfRange, state)
	}
	b.accepting[state] = true
	return nil
}

// AddRule registers rule on (state, symbol), rejecting it if it would
// overlap an already-registered rule for some counter value (two
// Unconditional rules, or two conditional rules whose ranges intersect).
func (b *Builder) AddRule(state int, symbol alphabet.Symbol, rule Rule) error {
	if state < 0 || state >= b.numStates || rule.Next < 0 || rule.Next >= b.numStates {
		return fmt.Errorf("%w: state %d or next %d", automaton.ErrOutOfRange, state, rule.Next)
	}
	key := Key{State: state, Symbol: symbol}
	for _, existing := range b.rules[key] {
		if overlaps(existing, rule) {
			return fmt.Errorf("%w: state %d symbol %c", ErrAmbiguousRule, state, rune(symbol))
		}
	}
	b.rules[key] = append(b.rules[key], rule)
	return nil
}

func overlaps(a, b Rule) bool {
	if a.Cond == Unconditional || b.Cond == Unconditional {
		return true
	}
	if a.Cond == b.Cond {
		return true // two LE or two GT rules on the same key always overlap somewhere
	}
	// one LE, one GT: overlap iff the LE side's threshold lies strictly
	// above the GT side's, i.e. LE's range [0,tLE] meets GT's range
	// (tGT, inf).
	le, gt := a, b
	if a.Cond == CounterGT {
		le, gt = b, a
	}
	return le.Threshold > gt.Threshold
}

// Build finalizes the automaton.
func (b *Builder) Build() *R1CA {
	rules := make(map[Key][]Rule, len(b.rules))
	for k, rs := range b.rules {
		cp := make([]Rule, len(rs))
		copy(cp, rs)
		rules[k] = cp
	}
	accepting := make(map[int]bool, len(b.accepting))
	for s, v := range b.accepting {
		accepting[s] = v
	}
	return &R1CA{
		NumStates: b.numStates,
		Initial:   b.initial,
		Accepting: accepting,
		Alphabet:  b.alphabet,
		Rules:     rules,
	}
}
