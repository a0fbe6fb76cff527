package r1ca_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/automaton/r1ca"
)

// anbam builds a realtime one-counter automaton for {a^n b a^n}: state
// 0 counts 'a' up before the 'b'; state 1 counts 'a' down after it.
// The unconditional decrement rule already rejects on underflow (more
// trailing than leading a's), so no threshold gating is needed here,
// and Evaluate's final counter-zero requirement pins the trailing run
// to the same length as the leading one.
func anbam(t *testing.T) *r1ca.R1CA {
	t.Helper()
	basic, err := alphabet.NewBasic('a', 'b')
	require.NoError(t, err)
	b, err := r1ca.NewBuilder(2, 0, basic)
	require.NoError(t, err)
	require.NoError(t, b.Accept(1))
	require.NoError(t, b.AddRule(0, 'a', r1ca.Rule{Cond: r1ca.Unconditional, Effect: 1, Next: 0}))
	require.NoError(t, b.AddRule(0, 'b', r1ca.Rule{Cond: r1ca.Unconditional, Effect: 0, Next: 1}))
	require.NoError(t, b.AddRule(1, 'a', r1ca.Rule{Cond: r1ca.Unconditional, Effect: -1, Next: 1}))
	return b.Build()
}

func TestR1CA_Evaluate(t *testing.T) {
	m := anbam(t)
	cases := []struct {
		word   string
		accept bool
	}{
		{"b", true},
		{"ab", false},
		{"aba", true},
		{"aabaa", true},
		{"aaba", false},
		{"aabaaa", false},
	}
	for _, c := range cases {
		got, err := m.Evaluate(alphabet.NewWord(c.word))
		require.NoError(t, err)
		require.Equalf(t, c.accept, got, "word %q", c.word)
	}
}

func TestR1CA_Count(t *testing.T) {
	m := anbam(t)
	n, err := m.Count(alphabet.NewWord("aab"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestBuilder_RejectsOverlappingRules(t *testing.T) {
	basic, err := alphabet.NewBasic('a')
	require.NoError(t, err)
	b, err := r1ca.NewBuilder(1, 0, basic)
	require.NoError(t, err)
	require.NoError(t, b.AddRule(0, 'a', r1ca.Rule{Cond: r1ca.CounterLE, Threshold: 2, Next: 0}))
	err = b.AddRule(0, 'a', r1ca.Rule{Cond: r1ca.CounterGT, Threshold: 1, Next: 0})
	require.Error(t, err)
	require.True(t, errors.Is(err, r1ca.ErrAmbiguousRule))
}

func TestBuilder_AllowsAdjacentNonOverlappingRules(t *testing.T) {
	basic, err := alphabet.NewBasic('a')
	require.NoError(t, err)
	b, err := r1ca.NewBuilder(1, 0, basic)
	require.NoError(t, err)
	require.NoError(t, b.AddRule(0, 'a', r1ca.Rule{Cond: r1ca.CounterLE, Threshold: 1, Next: 0}))
	require.NoError(t, b.AddRule(0, 'a', r1ca.Rule{Cond: r1ca.CounterGT, Threshold: 1, Next: 0}))
}
