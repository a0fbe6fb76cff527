// Package format reads and writes automata in a plain textual
// representation, independent of the V1CA/R1CA in-memory shapes.
//
// Grammar (whitespace-significant within a line, blank lines ignored):
//
//	state_count
//	max_level
//	initial
//	accepting_1 accepting_2 ...      ("-" when there are none)
//	alphabet line                    (symbol:effect pairs for V1CA,
//	                                   bare symbols for R1CA)
//	src->dst symbol [effect] range
//	...
//
// range is one of:
//
//	N        a single counter value (V1CA only)
//	N-M      an inclusive range [N, M]
//	N+       an unbounded range [N, ...)
//
// R1CA transition lines carry an extra effect field, since an R1CA
// rule's counter effect is an arbitrary integer rather than a fixed
// per-symbol value; its range is further restricted to the shapes a
// Rule can express: "0-M" (CounterLE), "N+" with N>0 (CounterGT), and
// "0+" (Unconditional).
package format

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/oclearn/onecounter/alphabet"
)

// ParseError reports a malformed line, with its 1-based line number and
// the column at which parsing failed.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("format: line %d col %d: %s", e.Line, e.Col, e.Msg)
}

func parseErr(line, col int, format string, args ...any) error {
	return &ParseError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// lineScanner wraps bufio.Scanner to track 1-based line numbers and skip
// blank lines transparently.
type lineScanner struct {
	sc   *bufio.Scanner
	line int
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{sc: bufio.NewScanner(r)}
}

// next returns the next non-blank line, or ok=false at EOF.
func (s *lineScanner) next() (string, int, bool) {
	for s.sc.Scan() {
		s.line++
		text := strings.TrimSpace(s.sc.Text())
		if text == "" {
			continue
		}
		return text, s.line, true
	}
	return "", s.line, false
}

func parseIntField(s string, line, col int, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, parseErr(line, col, "%s: %q is not a decimal integer", what, s)
	}
	return n, nil
}

func parseIntList(fields []string, line, col int, what string) ([]int, error) {
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := parseIntField(f, line, col, what)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// rangeSpec is a parsed "N", "N-M", or "N+" field.
type rangeSpec struct {
	low, high int
	open      bool // true for "N+"
}

func parseRange(s string, line, col int) (rangeSpec, error) {
	if strings.HasSuffix(s, "+") {
		n, err := parseIntField(strings.TrimSuffix(s, "+"), line, col, "range start")
		if err != nil {
			return rangeSpec{}, err
		}
		return rangeSpec{low: n, open: true}, nil
	}
	if i := strings.IndexByte(s, '-'); i > 0 {
		lo, err := parseIntField(s[:i], line, col, "range start")
		if err != nil {
			return rangeSpec{}, err
		}
		hi, err := parseIntField(s[i+1:], line, col, "range end")
		if err != nil {
			return rangeSpec{}, err
		}
		if hi < lo {
			return rangeSpec{}, parseErr(line, col, "range end %d below start %d", hi, lo)
		}
		return rangeSpec{low: lo, high: hi}, nil
	}
	n, err := parseIntField(s, line, col, "counter value")
	if err != nil {
		return rangeSpec{}, err
	}
	return rangeSpec{low: n, high: n}, nil
}

func (r rangeSpec) String() string {
	if r.open {
		return fmt.Sprintf("%d+", r.low)
	}
	if r.low == r.high {
		return strconv.Itoa(r.low)
	}
	return fmt.Sprintf("%d-%d", r.low, r.high)
}

// transitionLine is "src->dst symbol [effect] range", split into fields.
type transitionLine struct {
	src, dst  int
	symbol    alphabet.Symbol
	effect    int
	hasEffect bool
	rng       rangeSpec
}

func parseTransitionLine(text string, line int, wantEffect bool) (transitionLine, error) {
	arrow := strings.Index(text, "->")
	if arrow < 0 {
		return transitionLine{}, parseErr(line, 1, "missing '->' in transition line %q", text)
	}
	src, err := parseIntField(strings.TrimSpace(text[:arrow]), line, 1, "source state")
	if err != nil {
		return transitionLine{}, err
	}
	rest := strings.Fields(text[arrow+2:])
	wantFields := 3
	if wantEffect {
		wantFields = 4
	}
	if len(rest) != wantFields {
		return transitionLine{}, parseErr(line, arrow+2, "expected %d fields after '->', got %d", wantFields, len(rest))
	}
	dst, err := parseIntField(rest[0], line, arrow+2, "destination state")
	if err != nil {
		return transitionLine{}, err
	}
	symRunes := []rune(rest[1])
	if len(symRunes) != 1 {
		return transitionLine{}, parseErr(line, arrow+2, "symbol field %q is not a single character", rest[1])
	}
	tl := transitionLine{src: src, dst: dst, symbol: alphabet.Symbol(symRunes[0])}
	idx := 2
	if wantEffect {
		eff, err := parseIntField(rest[idx], line, arrow+2, "effect")
		if err != nil {
			return transitionLine{}, err
		}
		tl.effect, tl.hasEffect = eff, true
		idx++
	}
	rng, err := parseRange(rest[idx], line, arrow+2)
	if err != nil {
		return transitionLine{}, err
	}
	tl.rng = rng
	return tl, nil
}

func writeHeader(w io.Writer, numStates, maxLevel, initial int, accepting []int) error {
	sort.Ints(accepting)
	lines := []string{
		strconv.Itoa(numStates),
		strconv.Itoa(maxLevel),
		strconv.Itoa(initial),
	}
	accLine := "-"
	if len(accepting) > 0 {
		acc := make([]string, len(accepting))
		for i, a := range accepting {
			acc[i] = strconv.Itoa(a)
		}
		accLine = strings.Join(acc, " ")
	}
	lines = append(lines, accLine)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func readHeader(sc *lineScanner) (numStates, maxLevel, initial int, accepting map[int]bool, err error) {
	line1, ln1, ok := sc.next()
	if !ok {
		return 0, 0, 0, nil, parseErr(ln1, 1, "missing state count header line")
	}
	numStates, err = parseIntField(line1, ln1, 1, "state count")
	if err != nil {
		return
	}
	line2, ln2, ok := sc.next()
	if !ok {
		return 0, 0, 0, nil, parseErr(ln2, 1, "missing max level header line")
	}
	maxLevel, err = parseIntField(line2, ln2, 1, "max level")
	if err != nil {
		return
	}
	line3, ln3, ok := sc.next()
	if !ok {
		return 0, 0, 0, nil, parseErr(ln3, 1, "missing initial state header line")
	}
	initial, err = parseIntField(line3, ln3, 1, "initial state")
	if err != nil {
		return
	}
	line4, ln4, ok := sc.next()
	if !ok {
		return 0, 0, 0, nil, parseErr(ln4, 1, "missing accepting states header line")
	}
	accepting = map[int]bool{}
	if strings.TrimSpace(line4) != "-" {
		ints, perr := parseIntList(strings.Fields(line4), ln4, 1, "accepting state")
		if perr != nil {
			err = perr
			return
		}
		for _, s := range ints {
			accepting[s] = true
		}
	}
	return numStates, maxLevel, initial, accepting, nil
}
