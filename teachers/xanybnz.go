package teachers

import (
	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/teacher"
)

// xanybnzMaxLen bounds the brute-force counter-example search; kept
// short since the alphabet already has five symbols.
const xanybnzMaxLen = 6

// XaNyBnZ is the automatic teacher for scenario S2: the visibly language
// {x^i a^n y^j b^n z^k | i,j,k>=0, n>=0} over {a:+1, b:-1, x:0, y:0, z:0}.
type XaNyBnZ struct {
	alphabet alphabet.Visibly
}

// NewXaNyBnZ builds the S2 teacher.
func NewXaNyBnZ() (*XaNyBnZ, error) {
	a, err := alphabet.NewVisibly(map[alphabet.Symbol]int{'a': 1, 'b': -1, 'x': 0, 'y': 0, 'z': 0})
	if err != nil {
		return nil, err
	}
	return &XaNyBnZ{alphabet: a}, nil
}

// Alphabet returns the visibly alphabet {a:+1, b:-1, x:0, y:0, z:0}.
func (t *XaNyBnZ) Alphabet() alphabet.Visibly {
	return t.alphabet
}

func (t *XaNyBnZ) member(w alphabet.Word) bool {
	i := 0
	skip := func(sym alphabet.Symbol) {
		for i < len(w) && w[i] == sym {
			i++
		}
	}
	skip('x')
	n := 0
	for i < len(w) && w[i] == 'a' {
		n++
		i++
	}
	skip('y')
	m := 0
	for i < len(w) && w[i] == 'b' {
		m++
		i++
	}
	skip('z')
	return i == len(w) && n == m
}

// MembershipQuery reports whether w is of the form x^i a^n y^j b^n z^k.
func (t *XaNyBnZ) MembershipQuery(w alphabet.Word) (bool, error) {
	return t.member(w), nil
}

// PartialEquivalenceQuery brute-forces a counter-zero word on which bg's
// induced language disagrees with the target.
func (t *XaNyBnZ) PartialEquivalenceQuery(bg teacher.Describable, tag string) (alphabet.Word, bool, error) {
	return findDisagreementVisibly(t.alphabet, xanybnzMaxLen,
		func(w alphabet.Word) (bool, error) { return t.member(w), nil },
		func(w alphabet.Word) (bool, error) { return evalDescribable(bg, w) },
	)
}

// EquivalenceQuery brute-forces a counter-zero word on which a's
// language disagrees with the target.
func (t *XaNyBnZ) EquivalenceQuery(a teacher.Describable, tag string) (alphabet.Word, bool, error) {
	return findDisagreementVisibly(t.alphabet, xanybnzMaxLen,
		func(w alphabet.Word) (bool, error) { return t.member(w), nil },
		func(w alphabet.Word) (bool, error) { return evalDescribable(a, w) },
	)
}
