package teachers

import (
	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/teacher"
)

// anbamMaxLen bounds the brute-force counter-example search.
const anbamMaxLen = 8

// ANBAM is the counter-query-capable teacher for the realtime language
// of words a^n b a^m whose counter drains back to zero, i.e. m = n: 'a'
// counts up before the 'b' and down after it, which no fixed per-symbol
// effect can express, so the language needs an R1CA rather than a V1CA.
// CountQuery reports the run's counter for any valid prefix shape (a^n,
// or a^n b a^m with m <= n) and -1 for everything else, the words no
// run reaches.
type ANBAM struct {
	basic alphabet.Basic
}

// NewANBAM builds the realtime example teacher.
func NewANBAM() (*ANBAM, error) {
	basic, err := alphabet.NewBasic('a', 'b')
	if err != nil {
		return nil, err
	}
	return &ANBAM{basic: basic}, nil
}

// Alphabet returns the language's basic alphabet {a, b}.
func (t *ANBAM) Alphabet() alphabet.Basic {
	return t.basic
}

// parseAnBam splits w into (n, m, sawB, ok): ok is true iff w has the
// shape a^n or a^n b a^m; sawB distinguishes the two.
func parseAnBam(w alphabet.Word) (n, m int, sawB, ok bool) {
	i := 0
	for i < len(w) && w[i] == 'a' {
		n++
		i++
	}
	if i == len(w) {
		return n, 0, false, true
	}
	if w[i] != 'b' {
		return 0, 0, false, false
	}
	i++
	for i < len(w) && w[i] == 'a' {
		m++
		i++
	}
	return n, m, true, i == len(w)
}

// MembershipQuery reports whether w has the form a^n b a^n.
func (t *ANBAM) MembershipQuery(w alphabet.Word) (bool, error) {
	n, m, sawB, ok := parseAnBam(w)
	return ok && sawB && m == n, nil
}

// CountQuery returns the counter value w's run reaches: n for a^n, n-m
// for a^n b a^m with m <= n, and -1 otherwise (the counter underflowed,
// or w left the language's prefix shape entirely).
func (t *ANBAM) CountQuery(w alphabet.Word) (int, error) {
	n, m, _, ok := parseAnBam(w)
	if !ok || m > n {
		return -1, nil
	}
	return n - m, nil
}

func (t *ANBAM) member(w alphabet.Word) bool {
	ok, _ := t.MembershipQuery(w)
	return ok
}

// PartialEquivalenceQuery brute-forces a word on which bg's induced
// language disagrees with the target.
func (t *ANBAM) PartialEquivalenceQuery(bg teacher.Describable, tag string) (alphabet.Word, bool, error) {
	return findDisagreementBasic(t.basic.Symbols(), anbamMaxLen,
		func(w alphabet.Word) (bool, error) { return t.member(w), nil },
		func(w alphabet.Word) (bool, error) { return evalDescribable(bg, w) },
	)
}

// EquivalenceQuery brute-forces a word on which a's language disagrees
// with the target.
func (t *ANBAM) EquivalenceQuery(a teacher.Describable, tag string) (alphabet.Word, bool, error) {
	return findDisagreementBasic(t.basic.Symbols(), anbamMaxLen,
		func(w alphabet.Word) (bool, error) { return t.member(w), nil },
		func(w alphabet.Word) (bool, error) { return evalDescribable(a, w) },
	)
}
