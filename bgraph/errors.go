package bgraph

import "errors"

// Sentinel errors surfaced while building or folding a behaviour graph.
var (
	// ErrFoldInvariant indicates a required edge or node was absent while
	// folding a detected period into an automaton -- the teacher supplied
	// inconsistent membership answers.
	ErrFoldInvariant = errors.New("bgraph: invariant broken during fold")

	// ErrNoInitialNode indicates a graph built from an RST with no
	// representative for the empty word at counter value 0.
	ErrNoInitialNode = errors.New("bgraph: no initial node")
)
