package flowgraph

import (
	"regexp"
	"strings"
	"testing"

	"github.com/l3aro/go-flowchart/pkg/pytree"
)

var (
	nodeLineRe = regexp.MustCompile(`^  \d+ \[label=`)
	edgeLineRe = regexp.MustCompile(`^  \d+ -> \d+`)
)

func countLines(dot string) (nodes, edges int) {
	for _, line := range strings.Split(dot, "\n") {
		switch {
		case edgeLineRe.MatchString(line):
			edges++
		case nodeLineRe.MatchString(line):
			nodes++
		}
	}
	return nodes, edges
}

func TestToDOTEmptyGraph(t *testing.T) {
	if got := ToDOT(&Graph{}, Options{}); got != "" {
		t.Errorf("ToDOT(empty) = %q, want empty string", got)
	}
	if got := ToDOT(nil, Options{}); got != "" {
		t.Errorf("ToDOT(nil) = %q, want empty string", got)
	}
}

func TestToDOTCountsMatchGraph(t *testing.T) {
	g := build(
		funcDef("f", []string{"n"},
			ifStmt("n > 0",
				[]pytree.Statement{ret("n")},
				nil,
			),
		),
		whileStmt("x < 10", assign("x", "x + 1")),
	)

	nodes, edges := countLines(ToDOT(g, Options{}))
	if nodes != g.Len() {
		t.Errorf("exported %d node records, graph has %d", nodes, g.Len())
	}
	if edges != g.EdgeCount() {
		t.Errorf("exported %d edge records, graph has %d", edges, g.EdgeCount())
	}
}

func TestToDOTDeterministic(t *testing.T) {
	stmts := []pytree.Statement{
		ifStmt("a", []pytree.Statement{assign("x", "1")}, []pytree.Statement{assign("x", "2")}),
		whileStmt("b", callStmt("print", "print(x)")),
	}

	first := ToDOT(Build(pytree.Module{Body: stmts}), Options{})
	for i := 0; i < 10; i++ {
		if got := ToDOT(Build(pytree.Module{Body: stmts}), Options{}); got != first {
			t.Fatalf("rebuild %d produced different DOT output", i)
		}
	}
}

func TestToDOTEscapesLabels(t *testing.T) {
	g := build(callStmt("print", `print("hello")`))
	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, `print(\"hello\")`) {
		t.Errorf("quotes not escaped in output:\n%s", dot)
	}
	if strings.Contains(dot, `label="print("`) {
		t.Errorf("raw quote leaked into attribute:\n%s", dot)
	}
}

func TestToDOTShapesAndColors(t *testing.T) {
	g := build(
		ifStmt("x", []pytree.Statement{callStmt("input", "input()")}, nil),
		callStmt("work", "work()"),
	)
	dot := ToDOT(g, Options{})

	for _, want := range []string{
		"shape=ellipse, fillcolor=lightgreen",   // START
		"shape=diamond, fillcolor=lightblue",    // decision
		"shape=parallelogram, fillcolor=lightcyan", // input
		"shape=box, fillcolor=plum",             // call
		"shape=ellipse, fillcolor=lightcoral",   // END
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTEdgeLabels(t *testing.T) {
	g := build(ifStmt("x", []pytree.Statement{assign("a", "1")}, nil))
	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, `[label="True"]`) || !strings.Contains(dot, `[label="False"]`) {
		t.Errorf("branch labels missing:\n%s", dot)
	}
}

func TestToDOTRankDir(t *testing.T) {
	g := build(assign("x", "1"))

	if dot := ToDOT(g, Options{}); !strings.Contains(dot, "rankdir=TB;") {
		t.Errorf("default rankdir missing:\n%s", dot)
	}
	if dot := ToDOT(g, Options{RankDir: "LR"}); !strings.Contains(dot, "rankdir=LR;") {
		t.Errorf("rankdir override ignored:\n%s", dot)
	}
}

func TestWrapLabel(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"short label untouched", "x = 1", 30, "x = 1"},
		{
			"wraps at word boundaries",
			"result = compute(first_value, second_value)",
			30,
			"result = compute(first_value,\nsecond_value)",
		},
		{
			"single long word stays whole",
			"averyveryverylongidentifierwithoutspaces",
			10,
			"averyveryverylongidentifierwithoutspaces",
		},
		{
			"multiple lines",
			"aaaa bbbb cccc dddd eeee",
			9,
			"aaaa bbbb\ncccc dddd\neeee",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapLabel(tt.in, tt.width); got != tt.want {
				t.Errorf("wrapLabel(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}
