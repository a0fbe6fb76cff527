package teachers

import (
	"errors"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/teacher"
)

// ErrInteractiveClosed indicates the readline session ended (EOF or
// interrupt) before the user answered a query.
var ErrInteractiveClosed = errors.New("teachers: interactive session closed")

// Interactive is a human-in-the-loop teacher: membership queries are
// asked on the terminal, and behaviour graphs / automata are rendered
// via Describe before asking for a counter-example or confirmation.
type Interactive struct {
	alphabet alphabet.Visibly
	repl     *readline.Instance
}

// NewInteractive opens a readline session prompting over a.
func NewInteractive(a alphabet.Visibly) (*Interactive, error) {
	repl, err := readline.New("oclearn> ")
	if err != nil {
		return nil, err
	}
	return &Interactive{alphabet: a, repl: repl}, nil
}

// Alphabet returns the visibly alphabet this teacher was opened with.
func (t *Interactive) Alphabet() alphabet.Visibly {
	return t.alphabet
}

// Close releases the underlying readline session.
func (t *Interactive) Close() error {
	return t.repl.Close()
}

func (t *Interactive) ask(prompt string) (string, error) {
	t.repl.SetPrompt(prompt)
	line, err := t.repl.Readline()
	if err != nil {
		return "", ErrInteractiveClosed
	}
	return strings.TrimSpace(line), nil
}

// MembershipQuery asks the user whether w belongs to their language.
func (t *Interactive) MembershipQuery(w alphabet.Word) (bool, error) {
	for {
		line, err := t.ask("member? \"" + w.String() + "\" [y/n]: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			pterm.Error.Println("please answer y or n")
		}
	}
}

// PartialEquivalenceQuery renders bg and asks for a counter-zero
// counter-example, or confirmation that it looks right.
func (t *Interactive) PartialEquivalenceQuery(bg teacher.Describable, tag string) (alphabet.Word, bool, error) {
	bg.Describe(tag)
	return t.askCounterExample("behaviour graph")
}

// EquivalenceQuery renders a and asks for a counter-zero counter-example,
// or confirmation that it looks right.
func (t *Interactive) EquivalenceQuery(a teacher.Describable, tag string) (alphabet.Word, bool, error) {
	a.Describe(tag)
	return t.askCounterExample("automaton")
}

func (t *Interactive) askCounterExample(what string) (alphabet.Word, bool, error) {
	pterm.Info.Printfln("check the %s above", what)
	for {
		line, err := t.ask("counter-example, or OK: ")
		if err != nil {
			return nil, false, err
		}
		if strings.EqualFold(line, "ok") {
			return nil, false, nil
		}
		w := alphabet.NewWord(line)
		if !t.alphabet.IsFrom(w) {
			pterm.Error.Println("word contains a symbol outside the alphabet")
			continue
		}
		if t.alphabet.CounterValue(w) != 0 {
			pterm.Error.Println("counter-example must have counter value 0")
			continue
		}
		return w, true, nil
	}
}
