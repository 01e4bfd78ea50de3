package flowgraph

import (
	"bytes"
	"fmt"
	"strings"
)

// DefaultWrapColumn is the label wrap width used when Options leaves it
// unset.
const DefaultWrapColumn = 30

// Graphviz shape per node kind.
var shapes = map[Kind]string{
	KindStart:    "ellipse",
	KindEnd:      "ellipse",
	KindProcess:  "box",
	KindDecision: "diamond",
	KindInput:    "parallelogram",
	KindOutput:   "parallelogram",
	KindCall:     "box",
}

// Fill color per node kind.
var colors = map[Kind]string{
	KindStart:    "lightgreen",
	KindEnd:      "lightcoral",
	KindProcess:  "lightyellow",
	KindDecision: "lightblue",
	KindInput:    "lightcyan",
	KindOutput:   "lightgreen",
	KindCall:     "plum",
}

// Options configures DOT export.
type Options struct {
	// WrapColumn is the greedy word-wrap width for node labels.
	// Zero means DefaultWrapColumn.
	WrapColumn int
	// RankDir is the graph layout direction ("TB" when empty).
	RankDir string
}

// ToDOT serializes the graph as Graphviz DOT. Nodes are emitted in ascending
// id order and edges in each node's insertion order, so identical graphs
// always produce byte-identical output. An empty graph yields an empty
// string.
func ToDOT(g *Graph, opts Options) string {
	if g == nil || g.Len() == 0 {
		return ""
	}

	wrap := opts.WrapColumn
	if wrap <= 0 {
		wrap = DefaultWrapColumn
	}
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  splines=ortho;\n")
	buf.WriteString("  node [fontname=\"Arial\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Arial\", fontsize=9];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := escape(wrapLabel(n.Label, wrap))
		shape := shapes[n.Kind]
		color := colors[n.Kind]
		width, height := "1.0", "0.5"
		if n.Kind == KindDecision {
			width, height = "1.5", "1.0"
		}
		fmt.Fprintf(&buf, "  %d [label=\"%s\", shape=%s, fillcolor=%s, style=filled, width=%s, height=%s];\n",
			n.ID, label, shape, color, width, height)
	}

	buf.WriteString("\n")
	for _, n := range g.Nodes() {
		for _, e := range n.Succs {
			if e.Label != "" {
				fmt.Fprintf(&buf, "  %d -> %d [label=\"%s\"];\n", n.ID, e.To, escape(e.Label))
			} else {
				fmt.Fprintf(&buf, "  %d -> %d;\n", n.ID, e.To)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// wrapLabel greedily wraps a label at word boundaries. Words longer than the
// width stay whole; lines are joined with newlines, escaped later for DOT.
func wrapLabel(label string, width int) string {
	if len(label) <= width {
		return label
	}

	words := strings.Fields(label)
	var lines []string
	var current []string
	length := 0

	for _, word := range words {
		if len(current) > 0 && length+len(word)+1 > width {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
			length = 0
		}
		if len(current) > 0 {
			length++
		}
		current = append(current, word)
		length += len(word)
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	return strings.Join(lines, "\n")
}

// escape quotes characters meaningful to the DOT grammar inside a
// double-quoted string, turning real newlines into DOT line breaks.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}
