package learner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/learner"
	"github.com/oclearn/onecounter/teacher"
	"github.com/oclearn/onecounter/teachers"
)

// TestLearnV1CA_AnBn exercises invariant 8 (learner termination) for
// scenario S1: the returned V1CA must be equivalent to the teacher's
// language, so running EquivalenceQuery against it again finds nothing.
func TestLearnV1CA_AnBn(t *testing.T) {
	tt, err := teachers.NewAnBn()
	require.NoError(t, err)

	l := learner.New(tt)
	m, err := l.LearnV1CA(tt.Alphabet(), false)
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
		{"ba", false},
	}
	for _, c := range cases {
		got, err := m.Accepts(alphabet.NewWord(c.word))
		require.NoError(t, err)
		assert.Equalf(t, c.accept, got, "word %q", c.word)
	}

	_, ok, err := tt.EquivalenceQuery(m, "v1ca")
	require.NoError(t, err)
	assert.False(t, ok, "learned automaton must be equivalent to the teacher")
}

// TestLearnV1CA_XaNyBnZ exercises scenario S2.
func TestLearnV1CA_XaNyBnZ(t *testing.T) {
	tt, err := teachers.NewXaNyBnZ()
	require.NoError(t, err)

	l := learner.New(tt)
	m, err := l.LearnV1CA(tt.Alphabet(), false)
	require.NoError(t, err)

	cases := []struct {
		word   string
		accept bool
	}{
		{"", true},
		{"xyz", true},
		{"abz", true},
		{"xxaaybbz", true},
		{"bba", false},
		{"xaby", false},
	}
	for _, c := range cases {
		got, err := m.Accepts(alphabet.NewWord(c.word))
		require.NoError(t, err)
		assert.Equalf(t, c.accept, got, "word %q", c.word)
	}

	_, ok, err := tt.EquivalenceQuery(m, "v1ca")
	require.NoError(t, err)
	assert.False(t, ok, "learned automaton must be equivalent to the teacher")
}

// TestLearnR1CA_ANBAM exercises scenario S3, the R1CA-only language.
func TestLearnR1CA_ANBAM(t *testing.T) {
	tt, err := teachers.NewANBAM()
	require.NoError(t, err)

	l := learner.New(tt)
	m, err := l.LearnR1CA(false)
	require.NoError(t, err)

	cases := []struct {
		word   string
		accept bool
	}{
		{"b", true},
		{"aba", true},
		{"aabaa", true},
		{"ab", false},
		{"aabaaa", false},
	}
	for _, c := range cases {
		got, err := m.Evaluate(alphabet.NewWord(c.word))
		require.NoError(t, err)
		assert.Equalf(t, c.accept, got, "word %q", c.word)
	}

	_, ok, err := tt.EquivalenceQuery(m, "r1ca")
	require.NoError(t, err)
	assert.False(t, ok, "learned automaton must be equivalent to the teacher")
}

// TestLearn_UnknownMode exercises the dispatcher's error path.
func TestLearn_UnknownMode(t *testing.T) {
	tt, err := teachers.NewAnBn()
	require.NoError(t, err)
	l := learner.New(tt)
	_, err = l.Learn(learner.Mode(99), tt.Alphabet(), false)
	require.ErrorIs(t, err, learner.ErrUnknownMode)
}

// TestLearnR1CA_RequiresCounterQuery exercises LearnR1CA's capability
// check against a teacher with no CounterQuery, directly and through a
// Cached wrapper.
func TestLearnR1CA_RequiresCounterQuery(t *testing.T) {
	tt, err := teachers.NewAnBn()
	require.NoError(t, err)

	l := learner.New(tt)
	_, err = l.LearnR1CA(false)
	require.ErrorIs(t, err, teacher.ErrNoCounterQuery)

	cached := teacher.NewCached(tt)
	l2 := learner.New(cached)
	_, err = l2.LearnR1CA(false)
	require.ErrorIs(t, err, teacher.ErrNoCounterQuery)
}

// badTeacher answers membership honestly but returns an out-of-alphabet
// counter-example from every equivalence query, violating the teacher
// contract.
type badTeacher struct{ inner *teachers.AnBn }

func (b badTeacher) MembershipQuery(w alphabet.Word) (bool, error) {
	return b.inner.MembershipQuery(w)
}

func (b badTeacher) PartialEquivalenceQuery(bg teacher.Describable, tag string) (alphabet.Word, bool, error) {
	return alphabet.NewWord("zz"), true, nil
}

func (b badTeacher) EquivalenceQuery(a teacher.Describable, tag string) (alphabet.Word, bool, error) {
	return alphabet.NewWord("zz"), true, nil
}

// TestLearnV1CA_TeacherContractViolation exercises the fatal path for a
// counter-example outside the alphabet.
func TestLearnV1CA_TeacherContractViolation(t *testing.T) {
	tt, err := teachers.NewAnBn()
	require.NoError(t, err)

	l := learner.New(badTeacher{inner: tt})
	_, err = l.LearnV1CA(tt.Alphabet(), false)
	require.ErrorIs(t, err, teacher.ErrContractViolation)
}

// TestLearnV1CA_ThroughCached exercises the Cached wrapper end to end.
func TestLearnV1CA_ThroughCached(t *testing.T) {
	tt, err := teachers.NewAnBn()
	require.NoError(t, err)
	cached := teacher.NewCached(tt)

	l := learner.New(cached)
	m, err := l.LearnV1CA(tt.Alphabet(), false)
	require.NoError(t, err)

	got, err := m.Accepts(alphabet.NewWord("aabb"))
	require.NoError(t, err)
	assert.True(t, got)
	assert.Positive(t, cached.CacheSize())
}
