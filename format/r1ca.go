package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/automaton/r1ca"
)

func writeBasicAlphabet(w io.Writer, a alphabet.Basic) error {
	syms := a.Symbols()
	fields := make([]string, len(syms))
	for i, s := range syms {
		fields[i] = string(rune(s))
	}
	_, err := fmt.Fprintln(w, strings.Join(fields, " "))
	return err
}

func readBasicAlphabet(sc *lineScanner) (alphabet.Basic, error) {
	line, ln, ok := sc.next()
	if !ok {
		return alphabet.Basic{}, parseErr(ln, 1, "missing alphabet header line")
	}
	var syms []alphabet.Symbol
	for _, field := range strings.Fields(line) {
		runes := []rune(field)
		if len(runes) != 1 {
			return alphabet.Basic{}, parseErr(ln, 1, "alphabet symbol %q is not a single character", field)
		}
		syms = append(syms, alphabet.Symbol(runes[0]))
	}
	a, err := alphabet.NewBasic(syms...)
	if err != nil {
		return alphabet.Basic{}, parseErr(ln, 1, "%s", err)
	}
	return a, nil
}

func ruleRange(rule r1ca.Rule) rangeSpec {
	switch rule.Cond {
	case r1ca.Unconditional:
		return rangeSpec{low: 0, open: true}
	case r1ca.CounterLE:
		return rangeSpec{low: 0, high: rule.Threshold}
	case r1ca.CounterGT:
		return rangeSpec{low: rule.Threshold + 1, open: true}
	default:
		return rangeSpec{low: 0, open: true}
	}
}

func rangeToRule(rng rangeSpec, next int, effect int, line int) (r1ca.Rule, error) {
	switch {
	case rng.open && rng.low == 0:
		return r1ca.Rule{Cond: r1ca.Unconditional, Effect: effect, Next: next}, nil
	case rng.open && rng.low > 0:
		return r1ca.Rule{Cond: r1ca.CounterGT, Threshold: rng.low - 1, Effect: effect, Next: next}, nil
	case !rng.open && rng.low == 0:
		return r1ca.Rule{Cond: r1ca.CounterLE, Threshold: rng.high, Effect: effect, Next: next}, nil
	default:
		return r1ca.Rule{}, parseErr(line, 1, "counter range %s does not start at 0 or extend unbounded", rng.String())
	}
}

// WriteR1CA serializes r to w in the textual automaton format. The max
// level header field is always written as 0: R1CA has no fold-derived
// level bound, unlike V1CA.
func WriteR1CA(w io.Writer, r *r1ca.R1CA) error {
	accepting := make([]int, 0, len(r.Accepting))
	for s, acc := range r.Accepting {
		if acc {
			accepting = append(accepting, s)
		}
	}
	if err := writeHeader(w, r.NumStates, 0, r.Initial, accepting); err != nil {
		return err
	}
	if err := writeBasicAlphabet(w, r.Alphabet); err != nil {
		return err
	}

	keys := make([]r1ca.Key, 0, len(r.Rules))
	for k := range r.Rules {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].State != keys[j].State {
			return keys[i].State < keys[j].State
		}
		return keys[i].Symbol < keys[j].Symbol
	})

	for _, key := range keys {
		rules := append([]r1ca.Rule(nil), r.Rules[key]...)
		sort.Slice(rules, func(i, j int) bool { return rules[i].Threshold < rules[j].Threshold })
		for _, rule := range rules {
			rng := ruleRange(rule)
			if _, err := fmt.Fprintf(w, "%d->%d %c %d %s\n", key.State, rule.Next, rune(key.Symbol), rule.Effect, rng.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadR1CA parses an R1CA from r. Any malformed line is reported as a
// *ParseError naming its line and column; a transition whose counter
// range cannot be expressed as a Rule (see rangeToRule) is also a
// ParseError, since it would silently misrepresent the automaton.
func ReadR1CA(r io.Reader) (*r1ca.R1CA, error) {
	sc := newLineScanner(r)
	numStates, _, initial, accepting, err := readHeader(sc)
	if err != nil {
		return nil, err
	}
	a, err := readBasicAlphabet(sc)
	if err != nil {
		return nil, err
	}

	b, err := r1ca.NewBuilder(numStates, initial, a)
	if err != nil {
		return nil, err
	}
	for s := range accepting {
		if err := b.Accept(s); err != nil {
			return nil, err
		}
	}

	for {
		text, ln, ok := sc.next()
		if !ok {
			break
		}
		tl, err := parseTransitionLine(text, ln, true)
		if err != nil {
			return nil, err
		}
		if tl.src < 0 || tl.src >= numStates || tl.dst < 0 || tl.dst >= numStates {
			return nil, parseErr(ln, 1, "state index out of range [0,%d)", numStates)
		}
		if !a.Contains(tl.symbol) {
			return nil, parseErr(ln, 1, "symbol %q not in alphabet", string(rune(tl.symbol)))
		}
		rule, err := rangeToRule(tl.rng, tl.dst, tl.effect, ln)
		if err != nil {
			return nil, err
		}
		if err := b.AddRule(tl.src, tl.symbol, rule); err != nil {
			return nil, err
		}
	}

	return b.Build(), nil
}
