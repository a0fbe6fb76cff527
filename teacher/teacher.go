// Package teacher defines the oracle interfaces the learner queries, and a
// caching wrapper that memoizes membership answers.
//
// A teacher answers three kinds of questions: membership ("is w in the
// language?"), partial equivalence ("does the current behaviour graph's
// induced language match mine?"), and full equivalence ("does the folded
// automaton's language match mine?"). An R1CA-capable teacher additionally
// answers counter-value queries.
package teacher

import (
	"errors"

	"github.com/oclearn/onecounter/alphabet"
)

// Sentinel errors surfaced by teacher implementations and consumers.
var (
	// ErrContractViolation indicates a counter-example failed the caller's
	// entitlement: non-zero counter value, or symbols outside the alphabet.
	ErrContractViolation = errors.New("teacher: contract violation")

	// ErrNoCounterQuery indicates an operation required a CounterQuery
	// capability the teacher does not implement.
	ErrNoCounterQuery = errors.New("teacher: counter-query capability required")
)

// Describable is satisfied by anything an equivalence query needs to render
// for a human-in-the-loop teacher (behaviour graphs and automata both
// qualify).
type Describable interface {
	Describe(tag string)
}

// Membership answers membership queries. Implementations need not memoize;
// callers that want memoization should wrap with Cached.
type Membership interface {
	// MembershipQuery reports whether w belongs to the teacher's language.
	MembershipQuery(w alphabet.Word) (bool, error)
}

// PartialEquivalence answers partial-equivalence queries against a
// behaviour graph (any Describable graph-shaped value; the learner always
// passes a *bgraph.Graph, typed only as Describable here to avoid an
// import cycle between teacher and bgraph).
type PartialEquivalence interface {
	// PartialEquivalenceQuery returns a counter-zero counter-example on
	// which the teacher's language and the behaviour graph's induced
	// language disagree, or ok=false if none exists.
	PartialEquivalenceQuery(bg Describable, tag string) (ce alphabet.Word, ok bool, err error)
}

// Equivalence answers full-equivalence queries against a folded automaton
// (left as Describable for the same reason as PartialEquivalence).
type Equivalence interface {
	// EquivalenceQuery returns a counter-example on which the teacher's
	// language and the automaton's language disagree, or ok=false if none
	// exists.
	EquivalenceQuery(a Describable, tag string) (ce alphabet.Word, ok bool, err error)
}

// CounterQuery is the optional R1CA capability: the teacher's counter
// value for a word (-1 when no run of the target automaton reaches it),
// plus the basic alphabet the target language is over. The counter
// values stratify the RST while learning, standing in for the visibly
// alphabet's per-symbol effects that a realtime target lacks.
type CounterQuery interface {
	CountQuery(w alphabet.Word) (int, error)
	Alphabet() alphabet.Basic
}

// Teacher bundles the three required capabilities. Implementations that also
// satisfy CounterQuery may be learned against in R1CA mode.
type Teacher interface {
	Membership
	PartialEquivalence
	Equivalence
}

// Cached wraps a Teacher, memoizing MembershipQuery answers in a map keyed by
// word. PartialEquivalenceQuery and EquivalenceQuery are never cached and
// always delegate to the wrapped teacher.
//
// Cached is not safe for concurrent use: per spec, the cache is owned
// exclusively by the learner driving a single learning run.
type Cached struct {
	inner Teacher
	cache map[string]bool
}

// NewCached wraps inner in a fresh, empty cache.
func NewCached(inner Teacher) *Cached {
	return &Cached{inner: inner, cache: make(map[string]bool)}
}

// MembershipQuery consults the cache first; on a miss it queries inner and
// stores the answer before returning it. Errors from inner are never
// cached.
func (c *Cached) MembershipQuery(w alphabet.Word) (bool, error) {
	key := w.String()
	if v, ok := c.cache[key]; ok {
		return v, nil
	}
	v, err := c.inner.MembershipQuery(w)
	if err != nil {
		return false, err
	}
	c.cache[key] = v
	return v, nil
}

// PartialEquivalenceQuery always delegates to the wrapped teacher.
func (c *Cached) PartialEquivalenceQuery(bg Describable, tag string) (alphabet.Word, bool, error) {
	return c.inner.PartialEquivalenceQuery(bg, tag)
}

// EquivalenceQuery always delegates to the wrapped teacher.
func (c *Cached) EquivalenceQuery(a Describable, tag string) (alphabet.Word, bool, error) {
	return c.inner.EquivalenceQuery(a, tag)
}

// CacheSize reports how many distinct words have cached membership answers.
func (c *Cached) CacheSize() int {
	return len(c.cache)
}

// Inner returns the wrapped teacher, useful for capability type-assertions
// (e.g. to CounterQuery) that must bypass the cache wrapper.
func (c *Cached) Inner() Teacher {
	return c.inner
}
