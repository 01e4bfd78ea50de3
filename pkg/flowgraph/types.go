// Package flowgraph builds flowchart-style control-flow graphs from Python
// statement trees, derives McCabe-style complexity metrics, and exports the
// graph as Graphviz DOT.
package flowgraph

// Kind categorizes a graph node for shape, color, and metric purposes.
type Kind string

const (
	KindStart    Kind = "start"    // program or function entry
	KindEnd      Kind = "end"      // program exit
	KindProcess  Kind = "process"  // assignment or generic statement
	KindDecision Kind = "decision" // conditional or loop condition
	KindInput    Kind = "input"    // input-producing call
	KindOutput   Kind = "output"   // output-producing call, return
	KindCall     Kind = "call"     // opaque function call
)

// Edge is one outgoing edge of a node. Labels exist only on decision edges
// ("True"/"False"); all other edges are unlabeled.
type Edge struct {
	To    int    `json:"to"`
	Label string `json:"label,omitempty"`
}

// Node is one vertex of the control-flow graph. IDs are dense and ascending
// within a build session. Successors preserve insertion order; the
// predecessor set is traversal bookkeeping only and never drives output.
type Node struct {
	ID        int    `json:"id"`
	Label     string `json:"label"`
	Kind      Kind   `json:"kind"`
	Condition string `json:"condition,omitempty"` // decision nodes only
	Succs     []Edge `json:"successors"`

	preds map[int]struct{}

	// Set on loop decisions whose exit edge has not been added yet; the
	// next edge out of this node is labeled "False" on insertion.
	pendingExitLabel bool
}

// Predecessors returns the ids of nodes with an edge into n, unordered.
func (n *Node) Predecessors() []int {
	out := make([]int, 0, len(n.preds))
	for id := range n.preds {
		out = append(out, id)
	}
	return out
}

// Graph is an arena of nodes addressed by integer id. Edges hold ids rather
// than pointers, so loop back-edges introduce no ownership cycles. A graph
// is built once by a Builder; afterwards callers treat it as read-only.
type Graph struct {
	nodes []*Node
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Node returns the node with the given id, or nil if out of range.
func (g *Graph) Node(id int) *Node {
	if id < 0 || id >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// Nodes returns all nodes in ascending id order.
func (g *Graph) Nodes() []*Node { return g.nodes }

// EdgeCount returns the total number of edges across all nodes.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, n := range g.nodes {
		total += len(n.Succs)
	}
	return total
}

// add allocates a node with the next dense id.
func (g *Graph) add(label string, kind Kind, condition string) *Node {
	n := &Node{
		ID:        len(g.nodes),
		Label:     label,
		Kind:      kind,
		Condition: condition,
		preds:     make(map[int]struct{}),
	}
	g.nodes = append(g.nodes, n)
	return n
}

// addEdge appends from→to with the given label, keeping the predecessor set
// in sync.
func (g *Graph) addEdge(from, to int, label string) {
	src, dst := g.Node(from), g.Node(to)
	if src == nil || dst == nil {
		return
	}
	src.Succs = append(src.Succs, Edge{To: to, Label: label})
	dst.preds[from] = struct{}{}
}
