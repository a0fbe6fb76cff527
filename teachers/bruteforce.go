// Package teachers collects concrete example teachers: the automatic
// (oracle-function-backed) teachers for scenarios S1-S3, and an
// interactive teacher that asks a human to check behaviour graphs and
// automata by hand.
package teachers

import (
	"github.com/oclearn/onecounter/alphabet"
)

// wordsUpTo enumerates every word over symbols of length 0..maxLen, in
// ascending length order, so the first disagreement found is also the
// shortest.
func wordsUpTo(symbols []alphabet.Symbol, maxLen int) []alphabet.Word {
	words := []alphabet.Word{{}}
	frontier := []alphabet.Word{{}}
	for l := 1; l <= maxLen; l++ {
		next := make([]alphabet.Word, 0, len(frontier)*len(symbols))
		for _, w := range frontier {
			for _, s := range symbols {
				nw := append(append(alphabet.Word{}, w...), s)
				next = append(next, nw)
				words = append(words, nw)
			}
		}
		frontier = next
	}
	return words
}

// findDisagreementVisibly brute-forces words over a's symbols up to
// maxLen, restricted to those whose visible counter value is 0 (a
// counter-example must itself be counter-zero, per the RST's
// AddCounterExample contract), returning the first one on which want and
// got disagree.
func findDisagreementVisibly(a alphabet.Visibly, maxLen int, want, got func(alphabet.Word) (bool, error)) (alphabet.Word, bool, error) {
	for _, w := range wordsUpTo(a.Symbols(), maxLen) {
		if a.CounterValue(w) != 0 {
			continue
		}
		wv, err := want(w)
		if err != nil {
			return nil, false, err
		}
		gv, err := got(w)
		if err != nil {
			return nil, false, err
		}
		if wv != gv {
			return w, true, nil
		}
	}
	return nil, false, nil
}

// findDisagreementBasic is findDisagreementVisibly without the
// counter-zero filter, for R1CA teachers whose alphabet carries no
// visible per-symbol effect to filter by.
func findDisagreementBasic(symbols []alphabet.Symbol, maxLen int, want, got func(alphabet.Word) (bool, error)) (alphabet.Word, bool, error) {
	for _, w := range wordsUpTo(symbols, maxLen) {
		wv, err := want(w)
		if err != nil {
			return nil, false, err
		}
		gv, err := got(w)
		if err != nil {
			return nil, false, err
		}
		if wv != gv {
			return w, true, nil
		}
	}
	return nil, false, nil
}
