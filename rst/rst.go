package rst

import (
	"fmt"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/teacher"
)

// RST is the regular stratified table: an ordered sequence of Tables
// indexed by counter value.
type RST struct {
	tables []*Table
}

// New creates an RST with a single table at counter value 0, containing
// the empty-word row and the empty-word column, with its one cell filled
// via a membership query on the empty word.
func New(t teacher.Membership) (*RST, error) {
	r := &RST{}
	r.ensureTable(0)
	if err := r.AddCol(alphabet.Word{}, 0, t); err != nil {
		return nil, err
	}
	if err := r.AddRow(alphabet.Word{}, 0, t); err != nil {
		return nil, err
	}
	return r, nil
}

// Size reports the number of tables (one more than the highest counter
// value represented).
func (r *RST) Size() int { return len(r.tables) }

// Table returns the table at counter value cv. cv must be in [0, Size()).
func (r *RST) Table(cv int) (*Table, error) {
	if cv < 0 {
		return nil, ErrNegativeCounterValue
	}
	if cv >= len(r.tables) {
		return nil, fmt.Errorf("%w: cv=%d size=%d", ErrOutOfRange, cv, len(r.tables))
	}
	return r.tables[cv], nil
}

// Tables returns every table, indexed by counter value. The slice must not
// be mutated by callers.
func (r *RST) Tables() []*Table { return r.tables }

// ensureTable grows the table list (creating empty intermediate tables) so
// that index cv exists, returning it.
func (r *RST) ensureTable(cv int) *Table {
	for len(r.tables) <= cv {
		r.tables = append(r.tables, newTable())
	}
	return r.tables[cv]
}

// fillCell computes the membership query for row.col and stores it.
func fillCell(t teacher.Membership, row, col alphabet.Word) (bool, error) {
	word := append(append(alphabet.Word{}, row...), col...)
	return t.MembershipQuery(word)
}

// AddRow appends a new row labeled name to the table at counter value cv
// (creating intermediate empty tables as needed), filling every cell via a
// membership query against the table's existing columns. It is an error to
// add a row label already present in that table; use AddRowIfAbsent for the
// lenient path.
func (r *RST) AddRow(name alphabet.Word, cv int, t teacher.Membership) error {
	if cv < 0 {
		return ErrNegativeCounterValue
	}
	table := r.ensureTable(cv)
	if table.HasRow(name) {
		return fmt.Errorf("%w: %q at cv=%d", ErrDuplicateRow, name.String(), cv)
	}
	row := make([]bool, len(table.colLabels))
	for i, col := range table.colLabels {
		v, err := fillCell(t, name, col)
		if err != nil {
			return err
		}
		row[i] = v
	}
	table.rowIndex[name.String()] = len(table.rowLabels)
	table.rowLabels = append(table.rowLabels, name)
	table.data = append(table.data, row)
	if table.rowDigest != nil {
		table.rowDigest = append(table.rowDigest, "")
	}
	return nil
}

// AddRowIfAbsent is the lenient counterpart to AddRow: a no-op if name is
// already a row of the table at cv.
func (r *RST) AddRowIfAbsent(name alphabet.Word, cv int, t teacher.Membership) error {
	if cv >= 0 && cv < len(r.tables) && r.tables[cv].HasRow(name) {
		return nil
	}
	return r.AddRow(name, cv, t)
}

// AddCol appends a new column labeled name to the table at counter value
// cv (creating intermediate empty tables as needed), filling every cell via
// a membership query against the table's existing rows. It is an error to
// add a column label already present in that table; use AddColIfAbsent for
// the lenient path.
func (r *RST) AddCol(name alphabet.Word, cv int, t teacher.Membership) error {
	if cv < 0 {
		return ErrNegativeCounterValue
	}
	table := r.ensureTable(cv)
	if table.HasCol(name) {
		return fmt.Errorf("%w: %q at cv=%d", ErrDuplicateCol, name.String(), cv)
	}
	for r2, row := range table.rowLabels {
		v, err := fillCell(t, row, name)
		if err != nil {
			return err
		}
		table.data[r2] = append(table.data[r2], v)
	}
	table.colIndex[name.String()] = len(table.colLabels)
	table.colLabels = append(table.colLabels, name)
	// New column invalidates memoized digests.
	table.rowDigest = nil
	return nil
}

// AddColIfAbsent is the lenient counterpart to AddCol: a no-op if name is
// already a column of the table at cv.
func (r *RST) AddColIfAbsent(name alphabet.Word, cv int, t teacher.Membership) error {
	if cv >= 0 && cv < len(r.tables) && r.tables[cv].HasCol(name) {
		return nil
	}
	return r.AddCol(name, cv, t)
}

// CompareRows reports whether u and v are O-equivalent: both are rows of
// the table at cv and their boolean vectors are identical.
func (r *RST) CompareRows(u, v alphabet.Word, cv int) (bool, error) {
	table, err := r.Table(cv)
	if err != nil {
		return false, err
	}
	ri, ok := table.RowIndexOf(u)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRow, u.String())
	}
	rj, ok := table.RowIndexOf(v)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRow, v.String())
	}
	return table.rowsEqual(ri, rj), nil
}

// AddCounterExample ingests a counter-example into the RST: for every
// non-empty prefix p of ce, with counter value cv(p) >= 0, p is added as
// a row at table cv(p) (if absent), and the complementary suffix (ce
// with p removed from the front) is added as a column of that same table
// (if absent) -- concatenating p with that column always reproduces ce,
// a word suitable for membership queries. Prefixes with a negative
// counter value (invalid words) are skipped.
func (r *RST) AddCounterExample(ce alphabet.Word, t teacher.Membership, wc alphabet.Counter) error {
	for i := 1; i <= len(ce); i++ {
		p := ce[:i]
		cv := wc.CounterValue(p)
		if cv < 0 {
			continue
		}
		suffix := append(alphabet.Word{}, ce[i:]...)
		if err := r.AddRowIfAbsent(p, cv, t); err != nil {
			return err
		}
		if err := r.AddColIfAbsent(suffix, cv, t); err != nil {
			return err
		}
	}
	return nil
}

// RemoveDuplicateRows returns a new RST in which, within each table, only
// the first occurrence of every distinct row vector is kept; later
// duplicates are dropped. The receiver is untouched.
func (r *RST) RemoveDuplicateRows() *RST {
	out := &RST{tables: make([]*Table, len(r.tables))}
	for i, table := range r.tables {
		nt := newTable()
		nt.colLabels = append([]alphabet.Word(nil), table.colLabels...)
		for k, v := range table.colIndex {
			nt.colIndex[k] = v
		}
		seen := make([]int, 0, len(table.rowLabels)) // kept row indices, in the original table
		for ri := range table.rowLabels {
			dup := false
			for _, kept := range seen {
				if table.rowsEqual(ri, kept) {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			seen = append(seen, ri)
			nt.rowIndex[table.rowLabels[ri].String()] = len(nt.rowLabels)
			nt.rowLabels = append(nt.rowLabels, table.rowLabels[ri])
			nt.data = append(nt.data, append([]bool(nil), table.data[ri]...))
		}
		out.tables[i] = nt
	}
	return out
}

// Clone produces a deep, independent copy of r.
func (r *RST) Clone() *RST {
	out := &RST{tables: make([]*Table, len(r.tables))}
	for i, t := range r.tables {
		out.tables[i] = t.clone()
	}
	return out
}
