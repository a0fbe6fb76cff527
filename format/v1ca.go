package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/automaton"
	"github.com/oclearn/onecounter/automaton/v1ca"
)

func writeVisiblyAlphabet(w io.Writer, a alphabet.Visibly) error {
	syms := a.Symbols()
	fields := make([]string, len(syms))
	for i, s := range syms {
		fields[i] = fmt.Sprintf("%c:%d", rune(s), a.Effect(s))
	}
	_, err := fmt.Fprintln(w, strings.Join(fields, " "))
	return err
}

func readVisiblyAlphabet(sc *lineScanner) (alphabet.Visibly, error) {
	line, ln, ok := sc.next()
	if !ok {
		return alphabet.Visibly{}, parseErr(ln, 1, "missing alphabet header line")
	}
	effects := map[alphabet.Symbol]int{}
	for _, field := range strings.Fields(line) {
		i := strings.IndexByte(field, ':')
		if i < 0 {
			return alphabet.Visibly{}, parseErr(ln, 1, "alphabet entry %q missing ':'", field)
		}
		runes := []rune(field[:i])
		if len(runes) != 1 {
			return alphabet.Visibly{}, parseErr(ln, 1, "alphabet symbol %q is not a single character", field[:i])
		}
		effect, err := parseIntField(field[i+1:], ln, 1, "alphabet effect")
		if err != nil {
			return alphabet.Visibly{}, err
		}
		effects[alphabet.Symbol(runes[0])] = effect
	}
	a, err := alphabet.NewVisibly(effects)
	if err != nil {
		return alphabet.Visibly{}, parseErr(ln, 1, "%s", err)
	}
	return a, nil
}

// WriteV1CA serializes v to w in the textual automaton format. Colors
// are descriptive bookkeeping from folding and are not written; ReadV1CA
// reconstructs every transition with color automaton.Initial.
func WriteV1CA(w io.Writer, v *v1ca.V1CA) error {
	accepting := make([]int, 0, len(v.Accepting))
	for s, acc := range v.Accepting {
		if acc {
			accepting = append(accepting, s)
		}
	}
	if err := writeHeader(w, v.NumStates, v.MaxLevel, v.Initial, accepting); err != nil {
		return err
	}
	if err := writeVisiblyAlphabet(w, v.Alphabet); err != nil {
		return err
	}

	type edgeKey struct {
		state  int
		symbol alphabet.Symbol
	}
	byEdge := map[edgeKey]map[int]int{} // counter -> next
	for k, val := range v.Transitions {
		key := edgeKey{state: k.State, symbol: k.Symbol}
		if byEdge[key] == nil {
			byEdge[key] = map[int]int{}
		}
		byEdge[key][k.Counter] = val.Next
	}

	keys := make([]edgeKey, 0, len(byEdge))
	for k := range byEdge {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].state != keys[j].state {
			return keys[i].state < keys[j].state
		}
		return keys[i].symbol < keys[j].symbol
	})

	for _, key := range keys {
		counters := byEdge[key]
		cs := make([]int, 0, len(counters))
		for c := range counters {
			cs = append(cs, c)
		}
		sort.Ints(cs)
		i := 0
		for i < len(cs) {
			start := i
			next := counters[cs[start]]
			for i+1 < len(cs) && cs[i+1] == cs[i]+1 && counters[cs[i+1]] == next {
				i++
			}
			rng := rangeSpec{low: cs[start], high: cs[i]}
			if _, err := fmt.Fprintf(w, "%d->%d %c %s\n", key.state, next, rune(key.symbol), rng.String()); err != nil {
				return err
			}
			i++
		}
	}
	return nil
}

// ReadV1CA parses a V1CA from r. Any malformed line is reported as a
// *ParseError naming its line and column.
func ReadV1CA(r io.Reader) (*v1ca.V1CA, error) {
	sc := newLineScanner(r)
	numStates, maxLevel, initial, accepting, err := readHeader(sc)
	if err != nil {
		return nil, err
	}
	a, err := readVisiblyAlphabet(sc)
	if err != nil {
		return nil, err
	}

	transitions := map[v1ca.Key]v1ca.Value{}
	for {
		text, ln, ok := sc.next()
		if !ok {
			break
		}
		tl, err := parseTransitionLine(text, ln, false)
		if err != nil {
			return nil, err
		}
		if tl.src < 0 || tl.src >= numStates || tl.dst < 0 || tl.dst >= numStates {
			return nil, parseErr(ln, 1, "state index out of range [0,%d)", numStates)
		}
		if !a.Contains(tl.symbol) {
			return nil, parseErr(ln, 1, "symbol %q not in alphabet", string(rune(tl.symbol)))
		}
		high := tl.rng.high
		if tl.rng.open {
			high = maxLevel
		}
		for c := tl.rng.low; c <= high; c++ {
			transitions[v1ca.Key{State: tl.src, Counter: c, Symbol: tl.symbol}] = v1ca.Value{Next: tl.dst, Color: automaton.Initial}
		}
	}

	return v1ca.New(numStates, initial, accepting, a, maxLevel, transitions)
}
