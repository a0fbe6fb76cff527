package teachers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/teachers"
)

func TestAnBn_MembershipQuery(t *testing.T) {
	tt, err := teachers.NewAnBn()
	require.NoError(t, err)

	cases := []struct {
		word   string
		member bool
	}{
		{"", true},
		{"ab", true},
		{"aabb", true},
		{"aaabbb", true},
		{"a", false},
		{"abb", false},
		{"ba", false},
		{"aab", false},
	}
	for _, c := range cases {
		got, err := tt.MembershipQuery(alphabet.NewWord(c.word))
		require.NoError(t, err)
		assert.Equalf(t, c.member, got, "word %q", c.word)
	}
}

func TestXaNyBnZ_MembershipQuery(t *testing.T) {
	tt, err := teachers.NewXaNyBnZ()
	require.NoError(t, err)

	cases := []struct {
		word   string
		member bool
	}{
		{"", true},
		{"xy z", false}, // space is outside the alphabet, just exercises unknown symbols gracefully
		{"xxayybz", true},
		{"aabb", true},
		{"xaayybbz", true},
		{"xaaabbz", false}, // n=3, m=2
		{"ba", false},
	}
	for _, c := range cases {
		got, err := tt.MembershipQuery(alphabet.NewWord(c.word))
		require.NoError(t, err)
		assert.Equalf(t, c.member, got, "word %q", c.word)
	}
}

func TestANBAM_MembershipAndCountQuery(t *testing.T) {
	tt, err := teachers.NewANBAM()
	require.NoError(t, err)

	cases := []struct {
		word    string
		member  bool
		counter int
	}{
		{"", false, 0},  // valid prefix, counter 0, but no 'b' yet
		{"a", false, 1}, // climbing prefix
		{"b", true, 0},
		{"ab", false, 1}, // counter not drained (m < n)
		{"aba", true, 0},
		{"aabaa", true, 0},
		{"aaba", false, 1},    // counter not drained
		{"aabaaa", false, -1}, // m > n: the counter underflowed
		{"abb", false, -1},    // not of the a^n b a^m shape at all
	}
	for _, c := range cases {
		gotMember, err := tt.MembershipQuery(alphabet.NewWord(c.word))
		require.NoError(t, err)
		assert.Equalf(t, c.member, gotMember, "membership %q", c.word)

		gotCount, err := tt.CountQuery(alphabet.NewWord(c.word))
		require.NoError(t, err)
		assert.Equalf(t, c.counter, gotCount, "count %q", c.word)
	}
}

func TestANBAM_Alphabet(t *testing.T) {
	tt, err := teachers.NewANBAM()
	require.NoError(t, err)
	assert.True(t, tt.Alphabet().Contains('a'))
	assert.True(t, tt.Alphabet().Contains('b'))
	assert.False(t, tt.Alphabet().Contains('c'))
}
