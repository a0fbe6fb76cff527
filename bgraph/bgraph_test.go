package bgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/bgraph"
	"github.com/oclearn/onecounter/rst"
)

type anbnMembership struct{}

func (anbnMembership) MembershipQuery(w alphabet.Word) (bool, error) {
	n, m := 0, 0
	i := 0
	for ; i < len(w) && w[i] == 'a'; i++ {
		n++
	}
	for ; i < len(w) && w[i] == 'b'; i++ {
		m++
	}
	return i == len(w) && n == m, nil
}

func mustVisibly(t *testing.T) alphabet.Visibly {
	t.Helper()
	a, err := alphabet.NewVisibly(map[alphabet.Symbol]int{'a': 1, 'b': -1})
	require.NoError(t, err)
	return a
}

// counterExample brute-forces counter-zero words up to maxLen for the
// first one on which the graph's induced language disagrees with mq --
// the same search an automatic teacher's partial-equivalence query
// performs.
func counterExample(g *bgraph.Graph, mq anbnMembership, a alphabet.Visibly, maxLen int) (alphabet.Word, bool) {
	words := []alphabet.Word{{}}
	frontier := []alphabet.Word{{}}
	for l := 1; l <= maxLen; l++ {
		var next []alphabet.Word
		for _, w := range frontier {
			for _, s := range a.Symbols() {
				nw := append(append(alphabet.Word{}, w...), s)
				next = append(next, nw)
				words = append(words, nw)
			}
		}
		frontier = next
	}
	for _, w := range words {
		if a.CounterValue(w) != 0 {
			continue
		}
		want, _ := mq.MembershipQuery(w)
		got := true
		cur := g.Initial()
		for _, sym := range w {
			nxt, ok := g.Succ(cur, sym)
			if !ok {
				got = false
				break
			}
			cur = nxt
		}
		if got {
			got = g.Node(cur).Accepting
		}
		if want != got {
			return w, true
		}
	}
	return nil, false
}

// learnedGraph drives an RST through the same refinement the learner
// performs: closure and consistency to a fixed point, then a brute-
// forced partial-equivalence counter-example, until the behaviour
// graph's induced language agrees with the target on every counter-zero
// word the search covers.
func learnedGraph(t *testing.T) (*bgraph.Graph, anbnMembership, alphabet.Visibly) {
	t.Helper()
	mq := anbnMembership{}
	a := mustVisibly(t)
	r, err := rst.New(mq)
	require.NoError(t, err)

	for round := 0; round < 200; round++ {
		closed, err := r.MakeClosed(mq, a)
		require.NoError(t, err)
		consistent, err := r.MakeConsistent(mq, a)
		require.NoError(t, err)
		if !closed || !consistent {
			continue
		}
		dedup := r.RemoveDuplicateRows()
		g, err := bgraph.Build(dedup, mq, a)
		require.NoError(t, err)
		ce, found := counterExample(g, mq, a, 8)
		if !found {
			return g, mq, a
		}
		require.NoError(t, r.AddCounterExample(ce, mq, a))
	}
	t.Fatal("behaviour graph did not stabilize")
	return nil, mq, a
}

func TestBuild_MarksInitialAndAccepting(t *testing.T) {
	g, _, _ := learnedGraph(t)
	require.NotEqual(t, -1, g.Initial())
	require.True(t, g.Node(g.Initial()).Initial)
	require.True(t, g.Node(g.Initial()).Accepting)
}

func TestFoldV1CA_AcceptsAnBn(t *testing.T) {
	g, _, a := learnedGraph(t)

	m, err := g.FoldV1CA(a, a.Symbols())
	require.NoError(t, err)

	cases := []struct {
		word   string
		accept bool
	}{
		{"", true},
		{"ab", true},
		{"aabb", true},
		{"aaabbb", true},
		{"a", false},
		{"abb", false},
	}
	for _, c := range cases {
		ok, err := m.Accepts(alphabet.NewWord(c.word))
		require.NoError(t, err)
		require.Equalf(t, c.accept, ok, "word %q", c.word)
	}
}

func TestFoldR1CA_AcceptsAnBn(t *testing.T) {
	g, _, a := learnedGraph(t)

	m, err := g.FoldR1CA(a.Basic(), a.Symbols())
	require.NoError(t, err)

	cases := []struct {
		word   string
		accept bool
	}{
		{"", true},
		{"ab", true},
		{"aabb", true},
		{"a", false},
	}
	for _, c := range cases {
		ok, err := m.Evaluate(alphabet.NewWord(c.word))
		require.NoError(t, err)
		require.Equalf(t, c.accept, ok, "word %q", c.word)
	}
}

func TestFindPeriod_PicksSmallestLevelThenWidth(t *testing.T) {
	g, _, a := learnedGraph(t)

	period, ok := g.FindPeriod(a.Symbols())
	require.True(t, ok)
	require.Equal(t, 1, period.Width, "smallest width must win")
	require.Equal(t, 1, period.Level)
	require.NotEmpty(t, period.Pairing)
	for _, c := range period.Pairing {
		require.Equal(t, period.Level, g.Node(c.Low).Level)
		require.Equal(t, period.Level+period.Width, g.Node(c.High).Level)
	}
}

func TestSubgraph_RestrictsLevelsAndEdges(t *testing.T) {
	g, _, _ := learnedGraph(t)

	sub := g.Subgraph(1, 2)
	require.NotZero(t, sub.NumNodes())
	for i := 0; i < sub.NumNodes(); i++ {
		level := sub.Node(i).Level
		require.GreaterOrEqual(t, level, 1)
		require.LessOrEqual(t, level, 2)
	}
	for e := 0; e < sub.NumEdges(); e++ {
		edge := sub.Edge(e)
		require.Less(t, edge.From, sub.NumNodes())
		require.Less(t, edge.To, sub.NumNodes())
	}
}

func TestIsIsomorphicTo_RejectsMismatchedWindows(t *testing.T) {
	g, _, a := learnedGraph(t)

	// level 0 holds the initial (and accepting) class, which no higher
	// level can mirror.
	sub1 := g.Subgraph(0, 1)
	sub2 := g.Subgraph(1, 2)
	_, ok := sub1.IsIsomorphicTo(sub2, 0, 1, a.Symbols())
	require.False(t, ok)
}

func TestGraph_LevelsAndStates(t *testing.T) {
	g, _, _ := learnedGraph(t)
	levels := g.Levels()
	require.NotEmpty(t, levels)
	require.Equal(t, 0, levels[0])
	for _, l := range levels {
		require.NotEmpty(t, g.StatesOfLevel(l))
	}
}
