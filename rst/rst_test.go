package rst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/rst"
)

// anbnMembership is a bare membership oracle for { a^n b^n | n >= 0 },
// used to exercise RST without pulling in the teacher or teachers package.
type anbnMembership struct{}

func (anbnMembership) MembershipQuery(w alphabet.Word) (bool, error) {
	i := 0
	for i < len(w) && w[i] == 'a' {
		i++
	}
	j := i
	for j < len(w) && w[j] == 'b' {
		j++
	}
	return j == len(w) && j-i == i, nil
}

func mustVisibly(t *testing.T) alphabet.Visibly {
	t.Helper()
	a, err := alphabet.NewVisibly(map[alphabet.Symbol]int{'a': 1, 'b': -1})
	require.NoError(t, err)
	return a
}

func TestNew_EmptyCellCorrect(t *testing.T) {
	r, err := rst.New(anbnMembership{})
	require.NoError(t, err)
	require.Equal(t, 1, r.Size())
	table, err := r.Table(0)
	require.NoError(t, err)
	v, err := table.AtLabels(alphabet.Word{}, alphabet.Word{})
	require.NoError(t, err)
	assert.True(t, v, "empty word is in a^n b^n")
}

func TestAddRow_DuplicateErrors(t *testing.T) {
	r, err := rst.New(anbnMembership{})
	require.NoError(t, err)
	err = r.AddRow(alphabet.Word{}, 0, anbnMembership{})
	assert.ErrorIs(t, err, rst.ErrDuplicateRow)
}

func TestAddRowIfAbsent_NoOp(t *testing.T) {
	r, err := rst.New(anbnMembership{})
	require.NoError(t, err)
	require.NoError(t, r.AddRowIfAbsent(alphabet.Word{}, 0, anbnMembership{}))
	table, _ := r.Table(0)
	assert.Equal(t, 1, table.NumRows())
}

func TestCellCorrectness(t *testing.T) {
	r, err := rst.New(anbnMembership{})
	require.NoError(t, err)
	require.NoError(t, r.AddRow(alphabet.NewWord("a"), 1, anbnMembership{}))
	require.NoError(t, r.AddCol(alphabet.NewWord("b"), 1, anbnMembership{}))
	table, err := r.Table(1)
	require.NoError(t, err)
	for ri, row := range table.RowLabels() {
		for ci, col := range table.ColLabels() {
			word := append(append(alphabet.Word{}, row...), col...)
			want, _ := anbnMembership{}.MembershipQuery(word)
			assert.Equal(t, want, table.At(ri, ci), "cell (%q,%q)", row.String(), col.String())
		}
	}
}

func TestAddCounterExample_S5(t *testing.T) {
	a := mustVisibly(t)
	r, err := rst.New(anbnMembership{})
	require.NoError(t, err)

	require.NoError(t, r.AddCounterExample(alphabet.NewWord("aabb"), anbnMembership{}, a))

	require.Equal(t, 3, r.Size())

	t0, err := r.Table(0)
	require.NoError(t, err)
	assert.True(t, t0.HasRow(alphabet.Word{}))
	assert.True(t, t0.HasRow(alphabet.NewWord("aabb")))

	t1, err := r.Table(1)
	require.NoError(t, err)
	assert.True(t, t1.HasRow(alphabet.NewWord("a")))
	assert.True(t, t1.HasRow(alphabet.NewWord("aab")))

	t2, err := r.Table(2)
	require.NoError(t, err)
	assert.True(t, t2.HasRow(alphabet.NewWord("aa")))
}

func TestRemoveDuplicateRows_PreservesDistinctVectors(t *testing.T) {
	a := mustVisibly(t)
	r, err := rst.New(anbnMembership{})
	require.NoError(t, err)
	require.NoError(t, r.AddCounterExample(alphabet.NewWord("aabb"), anbnMembership{}, a))
	// Force a scan over closure to build out enough rows that duplicates appear.
	for i := 0; i < 10; i++ {
		closed, err := r.MakeClosed(anbnMembership{}, a)
		require.NoError(t, err)
		consistent, err := r.MakeConsistent(anbnMembership{}, a)
		require.NoError(t, err)
		if closed && consistent {
			break
		}
	}
	deduped := r.RemoveDuplicateRows()
	for _, table := range deduped.Tables() {
		for i := 0; i < table.NumRows(); i++ {
			for j := i + 1; j < table.NumRows(); j++ {
				vi, vj := table.RowVector(i), table.RowVector(j)
				same := true
				for k := range vi {
					if vi[k] != vj[k] {
						same = false
						break
					}
				}
				assert.False(t, same, "rows %d and %d have identical vectors after dedup", i, j)
			}
		}
	}
}

func TestMakeClosed_FixedPoint(t *testing.T) {
	a := mustVisibly(t)
	r, err := rst.New(anbnMembership{})
	require.NoError(t, err)
	require.NoError(t, r.AddCounterExample(alphabet.NewWord("aabb"), anbnMembership{}, a))

	for i := 0; i < 20; i++ {
		closed, err := r.MakeClosed(anbnMembership{}, a)
		require.NoError(t, err)
		consistent, err := r.MakeConsistent(anbnMembership{}, a)
		require.NoError(t, err)
		if closed && consistent {
			break
		}
	}
	closed, err := r.MakeClosed(anbnMembership{}, a)
	require.NoError(t, err)
	assert.True(t, closed)

	// Every (table, row, symbol) triple in range must have a represented
	// O-equivalence class.
	for i, table := range r.Tables() {
		for _, u := range table.RowLabels() {
			for _, sigma := range a.Symbols() {
				uSigma := append(append(alphabet.Word{}, u...), sigma)
				cv := a.CounterValue(uSigma)
				if cv < 0 || cv >= r.Size() {
					continue
				}
				target := r.Tables()[cv]
				if target.HasRow(uSigma) {
					continue
				}
				found := false
				vec := make([]bool, target.NumCols())
				for ci, col := range target.ColLabels() {
					word := append(append(alphabet.Word{}, uSigma...), col...)
					v, err := anbnMembership{}.MembershipQuery(word)
					require.NoError(t, err)
					vec[ci] = v
				}
				for ri := 0; ri < target.NumRows(); ri++ {
					rv := target.RowVector(ri)
					same := true
					for k := range vec {
						if vec[k] != rv[k] {
							same = false
							break
						}
					}
					if same {
						found = true
						break
					}
				}
				require.Truef(t, found, "table %d row %q symbol %q: no representative in table %d", i, u.String(), string(rune(sigma)), cv)
			}
		}
	}
}
