// Package learner drives the RST closure/consistency fixed point, builds
// the behaviour graph, and folds it into an automaton, refining on
// counter-examples from the teacher until equivalence holds.
package learner

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/automaton"
	"github.com/oclearn/onecounter/automaton/r1ca"
	"github.com/oclearn/onecounter/automaton/v1ca"
	"github.com/oclearn/onecounter/bgraph"
	"github.com/oclearn/onecounter/rst"
	"github.com/oclearn/onecounter/teacher"
)

// Mode selects which automaton kind Learn folds toward.
type Mode int

const (
	ModeV1CA Mode = iota
	ModeR1CA
)

func (m Mode) String() string {
	switch m {
	case ModeV1CA:
		return "v1ca"
	case ModeR1CA:
		return "r1ca"
	default:
		return "unknown"
	}
}

// ErrUnknownMode indicates Learn was called with a Mode other than
// ModeV1CA or ModeR1CA.
var ErrUnknownMode = errors.New("learner: unknown mode")

// Learner holds the teacher a learning run queries; it owns no other
// state between calls (each Learn* call starts a fresh RST).
type Learner struct {
	t teacher.Teacher
}

// New returns a Learner querying t.
func New(t teacher.Teacher) *Learner {
	return &Learner{t: t}
}

// Learn dispatches to LearnV1CA or LearnR1CA by mode, for callers (the
// CLI) that select the mode at runtime from a flag rather than at
// compile time.
func (l *Learner) Learn(mode Mode, a alphabet.Visibly, verbose bool) (automaton.Automaton, error) {
	switch mode {
	case ModeV1CA:
		return l.LearnV1CA(a, verbose)
	case ModeR1CA:
		return l.LearnR1CA(verbose)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}
}

// LearnV1CA runs the driving loop to a V1CA: alternate closure/
// consistency fixes to a fixed point, build the behaviour graph, ask
// partial equivalence, and (if that holds) fold and ask full
// equivalence -- looping on whichever counter-example comes back until
// both queries agree.
func (l *Learner) LearnV1CA(a alphabet.Visibly, verbose bool) (*v1ca.V1CA, error) {
	r, err := rst.New(l.t)
	if err != nil {
		return nil, err
	}

	for {
		passes, err := closeAndStabilize(r, l.t, a)
		if err != nil {
			return nil, err
		}
		if verbose {
			pterm.Info.Printfln("RST closed & consistent after %d passes", passes)
		}

		dedup := r.RemoveDuplicateRows()
		g, err := bgraph.Build(dedup, l.t, a)
		if err != nil {
			return nil, err
		}
		if verbose {
			g.Describe("behaviour-graph")
		}

		ce, ok, err := l.t.PartialEquivalenceQuery(g, "behaviour-graph")
		if err != nil {
			return nil, err
		}
		if ok {
			if verbose {
				pterm.Info.Printfln("partial-equivalence counter-example: %q", ce.String())
			}
			if err := validateCounterExample(ce, a, true); err != nil {
				return nil, err
			}
			if err := r.AddCounterExample(ce, l.t, a); err != nil {
				return nil, err
			}
			continue
		}

		m, err := g.FoldV1CA(a, a.Symbols())
		if err != nil {
			return nil, err
		}
		if verbose {
			m.Describe("v1ca")
		}

		ce, ok, err = l.t.EquivalenceQuery(m, "v1ca")
		if err != nil {
			return nil, err
		}
		if ok {
			if verbose {
				pterm.Info.Printfln("equivalence counter-example: %q", ce.String())
			}
			if err := validateCounterExample(ce, a, true); err != nil {
				return nil, err
			}
			if err := r.AddCounterExample(ce, l.t, a); err != nil {
				return nil, err
			}
			continue
		}

		return m, nil
	}
}

// LearnR1CA mirrors LearnV1CA, folding to an R1CA instead. It requires
// the teacher to additionally implement teacher.CounterQuery (directly,
// or through a *teacher.Cached wrapper's inner teacher); absent that
// capability it returns teacher.ErrNoCounterQuery. The RST is
// stratified by the teacher's counter queries, since a realtime
// target's counter moves are not visible from the symbols alone.
func (l *Learner) LearnR1CA(verbose bool) (*r1ca.R1CA, error) {
	cq, ok := counterCapable(l.t)
	if !ok {
		return nil, teacher.ErrNoCounterQuery
	}
	basic := cq.Alphabet()
	wc := queryCounter{cq: cq, symbols: basic.Symbols()}

	r, err := rst.New(l.t)
	if err != nil {
		return nil, err
	}

	for {
		passes, err := closeAndStabilize(r, l.t, wc)
		if err != nil {
			return nil, err
		}
		if verbose {
			pterm.Info.Printfln("RST closed & consistent after %d passes", passes)
		}

		dedup := r.RemoveDuplicateRows()
		g, err := bgraph.Build(dedup, l.t, wc)
		if err != nil {
			return nil, err
		}
		if verbose {
			g.Describe("behaviour-graph")
		}

		ce, ok, err := l.t.PartialEquivalenceQuery(g, "behaviour-graph")
		if err != nil {
			return nil, err
		}
		if ok {
			if verbose {
				pterm.Info.Printfln("partial-equivalence counter-example: %q", ce.String())
			}
			if err := validateCounterExample(ce, wc, false); err != nil {
				return nil, err
			}
			if err := r.AddCounterExample(ce, l.t, wc); err != nil {
				return nil, err
			}
			continue
		}

		m, err := g.FoldR1CA(basic, wc.Symbols())
		if err != nil {
			return nil, err
		}
		if verbose {
			m.Describe("r1ca")
		}

		ce, ok, err = l.t.EquivalenceQuery(m, "r1ca")
		if err != nil {
			return nil, err
		}
		if ok {
			if verbose {
				pterm.Info.Printfln("equivalence counter-example: %q", ce.String())
			}
			if err := validateCounterExample(ce, wc, false); err != nil {
				return nil, err
			}
			if err := r.AddCounterExample(ce, l.t, wc); err != nil {
				return nil, err
			}
			continue
		}

		return m, nil
	}
}

// closeAndStabilize alternates MakeConsistent and MakeClosed until
// neither finds a violation, returning the number of passes taken (at
// least 1).
func closeAndStabilize(r *rst.RST, t teacher.Membership, wc alphabet.Counter) (int, error) {
	for pass := 1; ; pass++ {
		consistent, err := r.MakeConsistent(t, wc)
		if err != nil {
			return pass, err
		}
		closed, err := r.MakeClosed(t, wc)
		if err != nil {
			return pass, err
		}
		if consistent && closed {
			return pass, nil
		}
	}
}

// queryCounter adapts a teacher's counter-query capability to the
// alphabet.Counter shape the RST and behaviour graph stratify by. A
// counter query that fails is reported as -1, the invalid-word
// sentinel, so the word is skipped rather than mis-stratified.
type queryCounter struct {
	cq      teacher.CounterQuery
	symbols []alphabet.Symbol
}

func (c queryCounter) Symbols() []alphabet.Symbol { return c.symbols }

func (c queryCounter) CounterValue(w alphabet.Word) int {
	v, err := c.cq.CountQuery(w)
	if err != nil {
		return -1
	}
	return v
}

// validateCounterExample enforces the teacher contract on a returned
// counter-example: every symbol within the alphabet, and a counter
// value the learner can place -- exactly zero in the visibly case,
// non-negative (reachable) in the realtime case. A violation is fatal
// to the learning run.
func validateCounterExample(ce alphabet.Word, wc alphabet.Counter, wantZero bool) error {
	allowed := make(map[alphabet.Symbol]bool)
	for _, s := range wc.Symbols() {
		allowed[s] = true
	}
	for _, s := range ce {
		if !allowed[s] {
			return fmt.Errorf("%w: counter-example %q uses symbol %q", teacher.ErrContractViolation, ce.String(), string(rune(s)))
		}
	}
	cv := wc.CounterValue(ce)
	if wantZero && cv != 0 {
		return fmt.Errorf("%w: counter-example %q has counter value %d", teacher.ErrContractViolation, ce.String(), cv)
	}
	if !wantZero && cv < 0 {
		return fmt.Errorf("%w: counter-example %q is not reachable", teacher.ErrContractViolation, ce.String())
	}
	return nil
}

func counterCapable(t teacher.Teacher) (teacher.CounterQuery, bool) {
	if cq, ok := t.(teacher.CounterQuery); ok {
		return cq, true
	}
	if cached, ok := t.(*teacher.Cached); ok {
		if cq, ok := cached.Inner().(teacher.CounterQuery); ok {
			return cq, true
		}
	}
	return nil, false
}
