package v1ca

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
)

// describe renders v as a pterm tree: one branch per state, one leaf per
// outgoing transition, annotated with its counter index and color.
func describe(v *V1CA, tag string) {
	pterm.DefaultSection.Println("V1CA: " + tag)
	pterm.Info.Printfln("states=%d initial=%d maxLevel=%d accepting=%d id=%s", v.NumStates, v.Initial, v.MaxLevel, len(v.Accepting), v.DebugID)

	byState := make(map[int][]string)
	for k, val := range v.Transitions {
		line := fmt.Sprintf("counter=%d %c -> %d [%s]", k.Counter, rune(k.Symbol), val.Next, val.Color)
		byState[k.State] = append(byState[k.State], line)
	}

	var roots []pterm.TreeNode
	for s := 0; s < v.NumStates; s++ {
		label := fmt.Sprintf("state %d", s)
		if s == v.Initial {
			label += " (initial)"
		}
		if v.Accepting[s] {
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
