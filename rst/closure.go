package rst

import (
	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/teacher"
)

// computeVector evaluates word's row vector against the given column
// labels via fresh membership queries, without inserting word as a row
// anywhere. Used by MakeClosed to test whether an as-yet-unrepresented
// successor would be O-equivalent to an existing row.
func computeVector(t teacher.Membership, word alphabet.Word, cols []alphabet.Word) ([]bool, error) {
	vec := make([]bool, len(cols))
	for i, c := range cols {
		v, err := fillCell(t, word, c)
		if err != nil {
			return nil, err
		}
		vec[i] = v
	}
	return vec, nil
}

// MakeClosed scans every (table i, row u, symbol sigma) triple in
// ascending order. For each successor u.sigma whose counter value falls
// within the current RST range, it checks whether some row of the target
// table is O-equivalent to u.sigma. If none is, u.sigma is appended as a
// new row of that table and MakeClosed returns false immediately, one
// violation per call; the driver re-scans after every fix. It returns
// true only when a full scan finds no violation.
func (r *RST) MakeClosed(t teacher.Membership, wc alphabet.Counter) (bool, error) {
	for i := range r.tables {
		table := r.tables[i]
		for ri := 0; ri < len(table.rowLabels); ri++ {
			u := table.rowLabels[ri]
			for _, sigma := range wc.Symbols() {
				uSigma := appendSymbol(u, sigma)
				cv := wc.CounterValue(uSigma)
				if cv < 0 || cv >= len(r.tables) {
					continue
				}
				target := r.tables[cv]
				if target.HasRow(uSigma) {
					continue
				}
				vec, err := computeVector(t, uSigma, target.colLabels)
				if err != nil {
					return false, err
				}
				found := false
				for rj := range target.rowLabels {
					if vectorsEqual(vec, target.data[rj]) {
						found = true
						break
					}
				}
				if !found {
					if err := r.AddRow(uSigma, cv, t); err != nil {
						return false, err
					}
					return false, nil
				}
			}
		}
	}
	return true, nil
}

// MakeConsistent scans every pair of O-equivalent rows (u, v) within the
// same table, in ascending table/row order. For each symbol sigma with
// cv(u.sigma) = cv(v.sigma) >= 0 and within the current RST range, it
// looks for a witnessing column c of the target table on which
// membership(u.sigma.c) differs from membership(v.sigma.c). On the first
// witness found, sigma.c is appended as a new column of u's own table
// and MakeConsistent returns false immediately: cv(sigma.c) is the
// negation of that table's index, so it is the one placement the column
// convention admits, and the new column splits u from v on the next
// pass. It returns true only when a full scan finds no violation.
func (r *RST) MakeConsistent(t teacher.Membership, wc alphabet.Counter) (bool, error) {
	for i := range r.tables {
		table := r.tables[i]
		for ri := 0; ri < len(table.rowLabels); ri++ {
			for rj := ri + 1; rj < len(table.rowLabels); rj++ {
				if !table.rowsEqual(ri, rj) {
					continue
				}
				u := table.rowLabels[ri]
				v := table.rowLabels[rj]
				for _, sigma := range wc.Symbols() {
					uSigma := appendSymbol(u, sigma)
					vSigma := appendSymbol(v, sigma)
					cvU := wc.CounterValue(uSigma)
					cvV := wc.CounterValue(vSigma)
					if cvU < 0 || cvV < 0 || cvU != cvV {
						continue
					}
					cv := cvU
					if cv >= len(r.tables) {
						continue
					}
					target := r.tables[cv]
					for _, c := range target.colLabels {
						mu, err := fillCell(t, uSigma, c)
						if err != nil {
							return false, err
						}
						mv, err := fillCell(t, vSigma, c)
						if err != nil {
							return false, err
						}
						if mu != mv {
							newCol := append(alphabet.Word{sigma}, c...)
							if err := r.AddColIfAbsent(newCol, i, t); err != nil {
								return false, err
							}
							return false, nil
						}
					}
				}
			}
		}
	}
	return true, nil
}

func appendSymbol(w alphabet.Word, s alphabet.Symbol) alphabet.Word {
	out := make(alphabet.Word, len(w)+1)
	copy(out, w)
	out[len(w)] = s
	return out
}
