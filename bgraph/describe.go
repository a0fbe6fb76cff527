package bgraph

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
)

// Describe renders g as a pterm tree rooted at tag: one branch per node
// in index order (labeled by its witness word and level, with the
// initial node flagged), one leaf per outgoing edge. It satisfies teacher.Describable, the hook a teacher
// uses to show a human-in-the-loop the behaviour graph before a partial-
// equivalence query.
func (g *Graph) Describe(tag string) {
	pterm.DefaultSection.Println("behaviour graph: " + tag)
	pterm.Info.Printfln("nodes=%d edges=%d levels=%v", g.NumNodes(), g.NumEdges(), g.Levels())

	roots := make([]pterm.TreeNode, g.NumNodes())
	for i, n := range g.nodes {
		label := fmt.Sprintf("%q (level %d)", n.Label.String(), n.Level)
		if n.Initial {
			label += " (initial)"
		}
		if n.Accepting {
			label += " (accepting)"
		}
		var lines []string
		for _, ei := range g.OutEdges(i) {
			e := g.Edge(ei)
			lines = append(lines, fmt.Sprintf("%c [effect %+d] -> %q", rune(e.Symbol), e.Effect, g.nodes[e.To].Label.String()))
		}
		sort.Strings(lines)
		children := make([]pterm.TreeNode, len(lines))
		for j, l := range lines {
			children[j] = pterm.TreeNode{Text: l}
		}
		roots[i] = pterm.TreeNode{Text: label, Children: children}
	}

	root := pterm.TreeNode{Text: tag, Children: roots}
	_ = pterm.DefaultTree.WithRoot(root).Render()
}
