package r1ca

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
)

func (c Condition) String() string {
	switch c {
	case Unconditional:
		return "always"
	case CounterLE:
		return "counter<=t"
	case CounterGT:
		return "counter>t"
	default:
		return "unknown"
	}
}

func describe(r *R1CA, tag string) {
	pterm.DefaultSection.Println("R1CA: " + tag)
	pterm.Info.Printfln("states=%d initial=%d accepting=%d", r.NumStates, r.Initial, len(r.Accepting))

	byState := make(map[int][]string)
	for k, rules := range r.Rules {
		for _, rule := range rules {
			line := fmt.Sprintf("%c [%s t=%d] effect=%+d -> %d", rune(k.Symbol), rule.Cond, rule.Threshold, rule.Effect, rule.Next)
			byState[k.State] = append(byState[k.State], line)
		}
	}

	var roots []pterm.TreeNode
	for s := 0; s < r.NumStates; s++ {
		label := fmt.Sprintf("state %d", s)
		if s == r.Initial {
			label += " (initial)"
		}
		if r.Accepting[s] {
			label += " (accepting)"
		}
		lines := byState[s]
		sort.Strings(lines)
		children := make([]pterm.TreeNode, len(lines))
		for i, l := range lines {
			children[i] = pterm.TreeNode{Text: l}
		}
		roots = append(roots, pterm.TreeNode{Text: label, Children: children})
	}

	root := pterm.TreeNode{Text: tag, Children: roots}
	_ = pterm.DefaultTree.WithRoot(root).Render()
}
