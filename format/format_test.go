package format_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/automaton"
	"github.com/oclearn/onecounter/automaton/r1ca"
	"github.com/oclearn/onecounter/automaton/v1ca"
	"github.com/oclearn/onecounter/format"
)

// anbnV1CA is a one-state counter machine accepting balanced words over
// {a, b}; the round-trip cases exercise its a^n b^n slice.
func anbnV1CA(t *testing.T) *v1ca.V1CA {
	t.Helper()
	a, err := alphabet.NewVisibly(map[alphabet.Symbol]int{'a': 1, 'b': -1})
	require.NoError(t, err)
	tr := map[v1ca.Key]v1ca.Value{
		{State: 0, Counter: 0, Symbol: 'a'}: {Next: 0, Color: automaton.LoopOut},
		{State: 0, Counter: 0, Symbol: 'b'}: {Next: 0, Color: automaton.LoopInBottom},
	}
	m, err := v1ca.New(1, 0, map[int]bool{0: true}, a, 0, tr)
	require.NoError(t, err)
	return m
}

func TestWriteReadV1CA_RoundTrips(t *testing.T) {
	m := anbnV1CA(t)
	var buf bytes.Buffer
	require.NoError(t, format.WriteV1CA(&buf, m))

	got, err := format.ReadV1CA(&buf)
	require.NoError(t, err)

	for _, w := range []string{"", "ab", "aabb", "a", "abb", "ba"} {
		word := alphabet.NewWord(w)
		wantAcc, err := m.Accepts(word)
		require.NoError(t, err)
		gotAcc, err := got.Accepts(word)
		require.NoError(t, err)
		assert.Equalf(t, wantAcc, gotAcc, "word %q", w)
	}
}

func anbamR1CA(t *testing.T) *r1ca.R1CA {
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

func TestWriteReadR1CA_RoundTrips(t *testing.T) {
	m := anbamR1CA(t)
	var buf bytes.Buffer
	require.NoError(t, format.WriteR1CA(&buf, m))

	got, err := format.ReadR1CA(&buf)
	require.NoError(t, err)

	for _, w := range []string{"b", "ab", "aba", "aabaa", "aaba", "aabaaa"} {
		word := alphabet.NewWord(w)
		wantAcc, err := m.Evaluate(word)
		require.NoError(t, err)
		gotAcc, err := got.Evaluate(word)
		require.NoError(t, err)
		assert.Equalf(t, wantAcc, gotAcc, "word %q", w)
	}
}

func TestReadV1CA_ParseErrorOnMissingArrow(t *testing.T) {
	src := "1\n0\n0\n-\na:1\n0 0 a 0\n"
	_, err := format.ReadV1CA(strings.NewReader(src))
	require.Error(t, err)
	var perr *format.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 6, perr.Line)
}

func TestReadV1CA_ParseErrorOnBadSymbol(t *testing.T) {
	src := "1\n0\n0\n-\na:1\n0->0 z 0\n"
	_, err := format.ReadV1CA(strings.NewReader(src))
	require.Error(t, err)
	var perr *format.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestReadR1CA_ParseErrorOnUnrepresentableRange(t *testing.T) {
	src := "2\n0\n0\n1\na b\n0->0 a 1 3-5\n"
	_, err := format.ReadR1CA(strings.NewReader(src))
	require.Error(t, err)
	var perr *format.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestReadV1CA_EmptyAcceptingList(t *testing.T) {
	src := "1\n0\n0\n-\na:1 b:-1\n0->0 a 0\n"
	m, err := format.ReadV1CA(strings.NewReader(src))
	require.NoError(t, err)
	acc, err := m.Accepts(alphabet.NewWord(""))
	require.NoError(t, err)
	assert.False(t, acc)
}
