package flowgraph

// Risk is the qualitative band derived from cyclomatic complexity.
type Risk string

const (
	RiskLow      Risk = "Low Risk"
	RiskModerate Risk = "Moderate Risk"
	RiskHigh     Risk = "High Risk"
	RiskVeryHigh Risk = "Very High Risk"
)

// Metrics is the analysis result for one graph.
type Metrics struct {
	Cyclomatic    int          `json:"cyclomatic_complexity"` // E - N + 2P
	DecisionBased int          `json:"decision_complexity"`   // decisions + 1
	Risk          Risk         `json:"risk_rating"`
	Nodes         int          `json:"node_count"`
	Edges         int          `json:"edge_count"`
	ByKind        map[Kind]int `json:"counts_by_kind"`
}

// Cyclomatic computes McCabe's complexity M = E - N + 2P with P = 1, floored
// at 1. An empty graph has no meaningful complexity and yields 0.
func Cyclomatic(g *Graph) int {
	if g.Len() == 0 {
		return 0
	}
	m := g.EdgeCount() - g.Len() + 2
	if m < 1 {
		return 1
	}
	return m
}

// DecisionComplexity counts decision nodes plus one, the hand-countable
// alternative to the edge formula.
func DecisionComplexity(g *Graph) int {
	count := 0
	for _, n := range g.Nodes() {
		if n.Kind == KindDecision {
			count++
		}
	}
	return count + 1
}

// RateRisk maps a cyclomatic value to its risk band. Bands are inclusive on
// the upper bound and checked in ascending order.
func RateRisk(complexity int) Risk {
	switch {
	case complexity <= 10:
		return RiskLow
	case complexity <= 20:
		return RiskModerate
	case complexity <= 50:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}

// Measure computes the full result record for a graph.
func Measure(g *Graph) Metrics {
	byKind := make(map[Kind]int)
	for _, n := range g.Nodes() {
		byKind[n.Kind]++
	}

	cyclomatic := Cyclomatic(g)
	return Metrics{
		Cyclomatic:    cyclomatic,
		DecisionBased: DecisionComplexity(g),
		Risk:          RateRisk(cyclomatic),
		Nodes:         g.Len(),
		Edges:         g.EdgeCount(),
		ByKind:        byKind,
	}
}
