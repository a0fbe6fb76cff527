package teachers

import (
	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/teacher"
)

// anbnMaxLen bounds the brute-force search for counter-examples; a
// period this shallow is already enough to distinguish any wrong guess
// a learner reaching this teacher could produce for {a^n b^n}.
const anbnMaxLen = 8

// AnBn is the automatic teacher for scenario S1: the visibly language
// {a^n b^n | n >= 0} over {a:+1, b:-1}.
type AnBn struct {
	alphabet alphabet.Visibly
}

// NewAnBn builds the S1 teacher.
func NewAnBn() (*AnBn, error) {
	a, err := alphabet.NewVisibly(map[alphabet.Symbol]int{'a': 1, 'b': -1})
	if err != nil {
		return nil, err
	}
	return &AnBn{alphabet: a}, nil
}

// Alphabet returns the visibly alphabet {a:+1, b:-1}.
func (t *AnBn) Alphabet() alphabet.Visibly {
	return t.alphabet
}

func (t *AnBn) member(w alphabet.Word) bool {
	i := 0
	n := 0
	for i < len(w) && w[i] == 'a' {
		n++
		i++
	}
	m := 0
	for i < len(w) && w[i] == 'b' {
		m++
		i++
	}
	return i == len(w) && n == m
}

// MembershipQuery reports whether w is of the form a^n b^n.
func (t *AnBn) MembershipQuery(w alphabet.Word) (bool, error) {
	return t.member(w), nil
}

// PartialEquivalenceQuery brute-forces a counter-zero word on which bg's
// induced language disagrees with {a^n b^n}.
func (t *AnBn) PartialEquivalenceQuery(bg teacher.Describable, tag string) (alphabet.Word, bool, error) {
	ce, ok, err := findDisagreementVisibly(t.alphabet, anbnMaxLen,
		func(w alphabet.Word) (bool, error) { return t.member(w), nil },
		func(w alphabet.Word) (bool, error) { return evalDescribable(bg, w) },
	)
	return ce, ok, err
}

// EquivalenceQuery brute-forces a counter-zero word on which a's
// language disagrees with {a^n b^n}.
func (t *AnBn) EquivalenceQuery(a teacher.Describable, tag string) (alphabet.Word, bool, error) {
	ce, ok, err := findDisagreementVisibly(t.alphabet, anbnMaxLen,
		func(w alphabet.Word) (bool, error) { return t.member(w), nil },
		func(w alphabet.Word) (bool, error) { return evalDescribable(a, w) },
	)
	return ce, ok, err
}
