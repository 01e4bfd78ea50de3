package flowgraph

import (
	"testing"

	"github.com/l3aro/go-flowchart/pkg/pytree"
)

func TestCyclomaticEmptyGraph(t *testing.T) {
	if got := Cyclomatic(&Graph{}); got != 0 {
		t.Errorf("Cyclomatic(empty) = %d, want 0", got)
	}
}

func TestCyclomaticAtLeastOne(t *testing.T) {
	graphs := []*Graph{
		build(),
		build(assign("x", "1")),
		build(ret("x"), assign("y", "1"), assign("z", "2")),
		build(funcDef("f", nil, ret("1"))),
	}
	for i, g := range graphs {
		if m := Cyclomatic(g); m < 1 {
			t.Errorf("graph %d: cyclomatic = %d, want >= 1", i, m)
		}
	}
}

func TestStraightLineComplexitiesAgree(t *testing.T) {
	g := build(assign("x", "1"), assign("y", "2"), callStmt("print", "print(x)"))

	if m := Cyclomatic(g); m != 1 {
		t.Errorf("cyclomatic = %d, want 1", m)
	}
	if m := DecisionComplexity(g); m != 1 {
		t.Errorf("decision complexity = %d, want 1", m)
	}
}

func TestRateRiskBands(t *testing.T) {
	tests := []struct {
		value int
		want  Risk
	}{
		{1, RiskLow},
		{10, RiskLow},
		{11, RiskModerate},
		{20, RiskModerate},
		{21, RiskHigh},
		{50, RiskHigh},
		{51, RiskVeryHigh},
		{200, RiskVeryHigh},
	}

	for _, tt := range tests {
		if got := RateRisk(tt.value); got != tt.want {
			t.Errorf("RateRisk(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestMeasure(t *testing.T) {
	g := build(
		ifStmt("x > 0",
			[]pytree.Statement{callStmt("print", "print(x)")},
			[]pytree.Statement{callStmt("input", "input()")},
		),
	)

	m := Measure(g)
	if m.Nodes != g.Len() {
		t.Errorf("Nodes = %d, want %d", m.Nodes, g.Len())
	}
	if m.Edges != g.EdgeCount() {
		t.Errorf("Edges = %d, want %d", m.Edges, g.EdgeCount())
	}
	if m.Cyclomatic != 2 || m.DecisionBased != 2 {
		t.Errorf("complexities = %d/%d, want 2/2", m.Cyclomatic, m.DecisionBased)
	}
	if m.Risk != RiskLow {
		t.Errorf("Risk = %q, want %q", m.Risk, RiskLow)
	}

	wantKinds := map[Kind]int{
		KindStart:    1,
		KindEnd:      1,
		KindDecision: 1,
		KindOutput:   1,
		KindInput:    1,
	}
	for kind, want := range wantKinds {
		if m.ByKind[kind] != want {
			t.Errorf("ByKind[%s] = %d, want %d", kind, m.ByKind[kind], want)
		}
	}

	total := 0
	for _, n := range m.ByKind {
		total += n
	}
	if total != m.Nodes {
		t.Errorf("kind counts sum to %d, want %d", total, m.Nodes)
	}
}
