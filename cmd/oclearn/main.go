/*
Oclearn drives one of the example teachers through active learning and
prints the resulting automaton.

Usage:

	oclearn [flags]

The flags are:

	-s, --scenario {anbn|xaybz|anbam}
		Select the example teacher/language to learn. anbn is
		{a^n b^n}, xaybz is {x^i a^n y^j b^n z^k}, anbam is the
		R1CA-only language {a^n b a^n}.

	-m, --mode {v1ca|r1ca}
		Select which automaton kind to fold toward. anbam only
		supports r1ca; anbn and xaybz only support v1ca.

	-v, --verbose
		Print the behaviour graph and candidate automaton at every
		round via pterm, instead of only the final result.

	-c, --config FILE
		Optional TOML file listing sample words to check membership
		of against the learned automaton once learning finishes.

	-o, --out FILE
		Optional path to write the learned automaton to, in the
		textual automaton format.

Exit codes: 0 on success, 1 if the learner itself fails (a teacher
contract violation or fold invariant break), 2 on a flag or config
error.
*/
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"

	"github.com/oclearn/onecounter/alphabet"
	"github.com/oclearn/onecounter/automaton"
	"github.com/oclearn/onecounter/automaton/r1ca"
	"github.com/oclearn/onecounter/automaton/v1ca"
	"github.com/oclearn/onecounter/format"
	"github.com/oclearn/onecounter/learner"
	"github.com/oclearn/onecounter/teacher"
	"github.com/oclearn/onecounter/teachers"
)

const (
	// ExitSuccess indicates a successful run.
	ExitSuccess = iota
	// ExitLearnerError indicates the learner itself failed.
	ExitLearnerError
	// ExitFlagError indicates a bad flag or config value.
	ExitFlagError
)

var (
	returnCode = ExitSuccess

	flagScenario = pflag.StringP("scenario", "s", "anbn", "example teacher to learn: anbn, xaybz, or anbam")
	flagMode     = pflag.StringP("mode", "m", "v1ca", "automaton kind to fold toward: v1ca or r1ca")
	flagVerbose  = pflag.BoolP("verbose", "v", false, "print the behaviour graph and candidate automaton every round")
	flagConfig   = pflag.StringP("config", "c", "", "TOML file of sample words to check after learning")
	flagOut      = pflag.StringP("out", "o", "", "write the learned automaton to this file in the textual format")
)

// config is the optional TOML file shape accepted by -c/--config.
type config struct {
	Words []string `toml:"words"`
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	t, a, mode, err := buildScenario(*flagScenario, *flagMode)
	if err != nil {
		pterm.Error.Printfln("%s", err)
		returnCode = ExitFlagError
		return
	}

	var cfg config
	if *flagConfig != "" {
		if _, err := toml.DecodeFile(*flagConfig, &cfg); err != nil {
			pterm.Error.Printfln("reading config: %s", err)
			returnCode = ExitFlagError
			return
		}
	}

	cached := teacher.NewCached(t)
	l := learner.New(cached)

	m, err := l.Learn(mode, a, *flagVerbose)
	if err != nil {
		pterm.Error.Printfln("learning failed: %s", err)
		returnCode = ExitLearnerError
		return
	}

	pterm.Success.Printfln("learned %s automaton for scenario %q (%d cached membership queries)", mode, *flagScenario, cached.CacheSize())
	m.Describe(*flagScenario)

	checkSampleWords(m, cfg.Words)

	if *flagOut != "" {
		if err := writeAutomaton(*flagOut, mode, m); err != nil {
			pterm.Error.Printfln("writing %s: %s", *flagOut, err)
			returnCode = ExitLearnerError
			return
		}
	}
}

func buildScenario(scenario, mode string) (teacher.Teacher, alphabet.Visibly, learner.Mode, error) {
	var m learner.Mode
	switch mode {
	case "v1ca":
		m = learner.ModeV1CA
	case "r1ca":
		m = learner.ModeR1CA
	default:
		return nil, alphabet.Visibly{}, 0, fmt.Errorf("unknown mode %q: want v1ca or r1ca", mode)
	}

	switch scenario {
	case "anbn":
		if m != learner.ModeV1CA {
			return nil, alphabet.Visibly{}, 0, fmt.Errorf("scenario %q only supports mode v1ca", scenario)
		}
		t, err := teachers.NewAnBn()
		if err != nil {
			return nil, alphabet.Visibly{}, 0, err
		}
		return t, t.Alphabet(), m, nil
	case "xaybz":
		if m != learner.ModeV1CA {
			return nil, alphabet.Visibly{}, 0, fmt.Errorf("scenario %q only supports mode v1ca", scenario)
		}
		t, err := teachers.NewXaNyBnZ()
		if err != nil {
			return nil, alphabet.Visibly{}, 0, err
		}
		return t, t.Alphabet(), m, nil
	case "anbam":
		if m != learner.ModeR1CA {
			return nil, alphabet.Visibly{}, 0, fmt.Errorf("scenario %q only supports mode r1ca", scenario)
		}
		t, err := teachers.NewANBAM()
		if err != nil {
			return nil, alphabet.Visibly{}, 0, err
		}
		// R1CA learning stratifies by the teacher's counter queries; no
		// visibly alphabet is involved and the zero value is never read.
		return t, alphabet.Visibly{}, m, nil
	default:
		return nil, alphabet.Visibly{}, 0, fmt.Errorf("unknown scenario %q: want anbn, xaybz, or anbam", scenario)
	}
}

func checkSampleWords(m automaton.Automaton, words []string) {
	for _, w := range words {
		word := alphabet.NewWord(w)
		accept, err := m.Accepts(word)
		if err != nil {
			pterm.Error.Printfln("checking %q: %s", w, err)
			continue
		}
		pterm.Info.Printfln("%q -> %v", w, accept)
	}
}

func writeAutomaton(path string, mode learner.Mode, m automaton.Automaton) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch mode {
	case learner.ModeV1CA:
		return format.WriteV1CA(f, m.(*v1ca.V1CA))
	default:
		return format.WriteR1CA(f, m.(*r1ca.R1CA))
	}
}
