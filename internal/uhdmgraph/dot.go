package uhdmgraph

import (
	"fmt"
	"strings"

	"github.com/zboralski/lattice"
)

// Theme holds DOT colors for graph rendering, grounded on render.Theme but
// trimmed to the provenance categories uhdmgraph actually emits: plain
// containment/extension edges and CFG branch edges, not ARM64 call
// provenance.
type Theme struct {
	Background string
	NodeFill   string
	NodeBorder string
	TextColor  string
	EdgeColor  string
	TrueColor  string
	FalseColor string
}

// NASA is the NASA/Bauhaus theme carried over from render.Theme: geometric,
// monochrome, sparse color.
var NASA = Theme{
	Background: "#F5F5F5",
	NodeFill:   "white",
	NodeBorder: "#1A1A1A",
	TextColor:  "#1A1A1A",
	EdgeColor:  "#424242",
	TrueColor:  "#0B3D91",
	FalseColor: "#FC3D21",
}

// dotEscape escapes a string for use in a DOT label.
func dotEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}

// dotID turns an arbitrary hierarchical path into a safe DOT identifier.
func dotID(name string) string {
	var b strings.Builder
	b.WriteString("n_")
	for _, c := range name {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteRune(c)
		} else {
			fmt.Fprintf(&b, "_%04x", c)
		}
	}
	return b.String()
}

// GraphDOT renders an instance-containment or class-extension lattice.Graph
// as Graphviz DOT, grounded on render.CallgraphDOT's node/edge emission
// shape.
func GraphDOT(g *lattice.Graph, title string, t Theme) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", title)
	fmt.Fprintf(&b, "  bgcolor=%q;\n  node [shape=box style=filled fillcolor=%q color=%q fontcolor=%q];\n",
		t.Background, t.NodeFill, t.NodeBorder, t.TextColor)
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "  %s [label=%q];\n", dotID(n), dotEscape(n))
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %s -> %s [color=%q];\n", dotID(e.Caller), dotID(e.Callee), t.EdgeColor)
	}
	b.WriteString("}\n")
	return b.String()
}

// CFGDOT renders a single lattice.FuncCFG as Graphviz DOT, one subgraph
// cluster per function when cfg holds several. Grounded on
// render.convertFuncCFG's block/successor model and render.CallgraphDOT's
// cond-based edge styling (true/false branches colored distinctly, all
// other successors in the base edge color).
func CFGDOT(cfg *lattice.CFGGraph, t Theme) string {
	var b strings.Builder
	b.WriteString("digraph cfg {\n")
	fmt.Fprintf(&b, "  bgcolor=%q;\n  node [shape=box style=filled fillcolor=%q color=%q fontcolor=%q];\n",
		t.Background, t.NodeFill, t.NodeBorder, t.TextColor)
	for fi, fn := range cfg.Funcs {
		fmt.Fprintf(&b, "  subgraph cluster_%d {\n    label=%q;\n", fi, dotEscape(fn.Name))
		for _, blk := range fn.Blocks {
			label := blockLabel(blk)
			fmt.Fprintf(&b, "    %s [label=%q%s];\n", blockID(fi, blk.ID), dotEscape(label), termStyle(blk.Term))
		}
		for _, blk := range fn.Blocks {
			for _, s := range blk.Succs {
				fmt.Fprintf(&b, "    %s -> %s [color=%q label=%q];\n",
					blockID(fi, blk.ID), blockID(fi, s.BlockID), edgeColor(s.Cond, t), s.Cond)
			}
		}
		b.WriteString("  }\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func blockID(funcIdx, blockID int) string {
	return fmt.Sprintf("b_%d_%d", funcIdx, blockID)
}

func termStyle(term bool) string {
	if term {
		return " peripheries=2"
	}
	return ""
}

func edgeColor(cond string, t Theme) string {
	switch cond {
	case "true":
		return t.TrueColor
	case "false":
		return t.FalseColor
	default:
		return t.EdgeColor
	}
}

func blockLabel(blk *lattice.BasicBlock) string {
	if len(blk.Calls) == 0 {
		return fmt.Sprintf("#%d", blk.ID)
	}
	labels := make([]string, len(blk.Calls))
	for i, c := range blk.Calls {
		labels[i] = c.Callee
	}
	return fmt.Sprintf("#%d: %s", blk.ID, strings.Join(labels, ", "))
}
