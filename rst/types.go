// Package rst implements the regular stratified table (RST): the
// observation table at the heart of the learner, split into one sub-table
// per counter value.
//
// Each Table holds row labels (words whose counter value equals the
// table's index) and column labels (suffixes), with a dense boolean cell
// matrix of membership-query answers. RST is the ordered sequence of
// tables indexed 0, 1, 2, ...
package rst

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/oclearn/onecounter/alphabet"
)

// Table is a single counter-value stratum of the RST: a dense boolean
// matrix indexed by row label (a word of that counter value) and column
// label (a suffix).
type Table struct {
	rowLabels []alphabet.Word
	colLabels []alphabet.Word
	data      [][]bool // data[r][c]

	rowIndex map[string]int
	colIndex map[string]int

	rowDigest []string // memoized structhash digest of each row, fast-reject only
}

func newTable() *Table {
	return &Table{
		rowIndex: make(map[string]int),
		colIndex: make(map[string]int),
	}
}

// RowLabels returns the table's row labels in insertion order. The slice
// must not be mutated by callers.
func (t *Table) RowLabels() []alphabet.Word { return t.rowLabels }

// ColLabels returns the table's column labels in insertion order. The
// slice must not be mutated by callers.
func (t *Table) ColLabels() []alphabet.Word { return t.colLabels }

// NumRows reports the number of rows in the table.
func (t *Table) NumRows() int { return len(t.rowLabels) }

// NumCols reports the number of columns in the table.
func (t *Table) NumCols() int { return len(t.colLabels) }

// HasRow reports whether label is already a row of the table.
func (t *Table) HasRow(label alphabet.Word) bool {
	_, ok := t.rowIndex[label.String()]
	return ok
}

// HasCol reports whether label is already a column of the table.
func (t *Table) HasCol(label alphabet.Word) bool {
	_, ok := t.colIndex[label.String()]
	return ok
}

// RowIndexOf returns the row index of label, or (-1, false) if absent.
func (t *Table) RowIndexOf(label alphabet.Word) (int, bool) {
	i, ok := t.rowIndex[label.String()]
	if !ok {
		return -1, false
	}
	return i, true
}

// ColIndexOf returns the column index of label, or (-1, false) if absent.
func (t *Table) ColIndexOf(label alphabet.Word) (int, bool) {
	i, ok := t.colIndex[label.String()]
	if !ok {
		return -1, false
	}
	return i, true
}

// RowVector returns the boolean vector for the row at index r. The slice
// must not be mutated by callers.
func (t *Table) RowVector(r int) []bool { return t.data[r] }

// At returns the cell value for row index r and column index c.
func (t *Table) At(r, c int) bool { return t.data[r][c] }

// AtLabels returns the cell value for the given row and column labels,
// erroring if either is absent.
func (t *Table) AtLabels(row, col alphabet.Word) (bool, error) {
	r, ok := t.RowIndexOf(row)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRow, row.String())
	}
	c, ok := t.ColIndexOf(col)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownColumn, col.String())
	}
	return t.data[r][c], nil
}

// rowDigestOf computes (and memoizes) a content digest of row r's boolean
// vector, used as a fast-reject before an exact comparison. Collisions are
// possible; callers must still fall back to an exact vector compare to
// decide equality, never rely on the digest alone.
func (t *Table) rowDigestOf(r int) string {
	if t.rowDigest == nil {
		t.rowDigest = make([]string, len(t.rowLabels))
	}
	for len(t.rowDigest) <= r {
		t.rowDigest = append(t.rowDigest, "")
	}
	if t.rowDigest[r] == "" {
		h, err := structhash.Hash(t.data[r], 1)
		if err != nil {
			// structhash only fails on unsupported types; []bool is always
			// hashable, so this path is unreachable in practice.
			h = fmt.Sprintf("%v", t.data[r])
		}
		t.rowDigest[r] = h
	}
	return t.rowDigest[r]
}

func vectorsEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// rowsEqual reports whether rows r1 and r2 of the table carry identical
// boolean vectors: O-equivalence within one table.
func (t *Table) rowsEqual(r1, r2 int) bool {
	if t.rowDigestOf(r1) != t.rowDigestOf(r2) {
		return false
	}
	return vectorsEqual(t.data[r1], t.data[r2])
}

// clone produces a deep, independent copy of the table.
func (t *Table) clone() *Table {
	nt := newTable()
	nt.rowLabels = append([]alphabet.Word(nil), t.rowLabels...)
	nt.colLabels = append([]alphabet.Word(nil), t.colLabels...)
	nt.data = make([][]bool, len(t.data))
	for i, row := range t.data {
		nt.data[i] = append([]bool(nil), row...)
	}
	for k, v := range t.rowIndex {
		nt.rowIndex[k] = v
	}
	for k, v := range t.colIndex {
		nt.colIndex[k] = v
	}
	return nt
}
