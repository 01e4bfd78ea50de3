package flowgraph

import (
	"strings"

	"github.com/l3aro/go-flowchart/pkg/pytree"
)

// Branch labels carried by decision edges.
const (
	LabelTrue  = "True"
	LabelFalse = "False"
)

// Call classification tables: callee base names that produce output or
// consume input. Anything else is an opaque call.
var (
	outputCallees = map[string]bool{"print": true}
	inputCallees  = map[string]bool{"input": true}
)

// frontier is the set of node ids whose control flow is still open, awaiting
// connection to the next constructed node. It is threaded through traversal
// as a value; nested constructs receive and return their own frontiers.
type frontier []int

// mergeFrontiers unions two frontiers, preserving order and dropping
// duplicates.
func mergeFrontiers(a, b frontier) frontier {
	seen := make(map[int]struct{}, len(a)+len(b))
	out := make(frontier, 0, len(a)+len(b))
	for _, fr := range [2]frontier{a, b} {
		for _, id := range fr {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// Build constructs the control-flow graph for one module in a single
// structured traversal: START, the top-level statements, then END collecting
// every open exit. Each call is an independent session with its own id
// namespace.
func Build(mod pytree.Module) *Graph {
	b := &builder{g: &Graph{}}

	start := b.g.add("START", KindStart, "")
	fr := frontier{start.ID}
	fr = b.statements(mod.Body, fr)

	end := b.g.add("END", KindEnd, "")
	b.connect(fr, end.ID)

	return b.g
}

type builder struct {
	g *Graph
}

// connect wires every open exit to target and returns the new frontier
// {target}. An empty frontier adds no edges, which is how statements after a
// return become unreachable instead of failing.
func (b *builder) connect(fr frontier, target int) frontier {
	for _, id := range fr {
		b.edgeFrom(id, target)
	}
	return frontier{target}
}

// edgeFrom adds one edge out of an open exit. A loop decision awaiting its
// exit edge labels that edge "False" here, whether flow continues to the
// next statement or closes back over an enclosing loop.
func (b *builder) edgeFrom(from, to int) {
	label := ""
	if n := b.g.Node(from); n != nil && n.pendingExitLabel {
		label = LabelFalse
		n.pendingExitLabel = false
	}
	b.g.addEdge(from, to, label)
}

// statements visits a sequence in source order, each statement transforming
// the frontier.
func (b *builder) statements(stmts []pytree.Statement, fr frontier) frontier {
	for _, s := range stmts {
		fr = b.statement(s, fr)
	}
	return fr
}

func (b *builder) statement(s pytree.Statement, fr frontier) frontier {
	switch s.Kind {
	case pytree.KindFunctionDef:
		return b.functionDef(s, fr)
	case pytree.KindIf:
		return b.conditional(s, fr)
	case pytree.KindWhile:
		return b.loop(s.Cond, s.Body, fr)
	case pytree.KindFor:
		return b.loop("for "+s.Target+" in "+s.Iter, s.Body, fr)
	case pytree.KindReturn:
		return b.returnStmt(s, fr)
	case pytree.KindAssign:
		label := strings.Join(s.Targets, " = ") + " = " + s.Value
		n := b.g.add(label, KindProcess, "")
		return b.connect(fr, n.ID)
	case pytree.KindAugAssign:
		n := b.g.add(s.Target+" "+s.Op+" "+s.Value, KindProcess, "")
		return b.connect(fr, n.ID)
	case pytree.KindExpr:
		return b.exprStmt(s, fr)
	default:
		// Unrecognized statements degrade to a single generic node;
		// traversal never stalls.
		label := s.Value
		if label == "" {
			label = "# " + string(s.Kind)
		}
		n := b.g.add(label, KindProcess, "")
		return b.connect(fr, n.ID)
	}
}

// functionDef threads module flow through a function entry node, traverses
// the body, and guarantees a determinate exit: a body without a top-level
// return gets a synthesized nil return.
func (b *builder) functionDef(s pytree.Statement, fr frontier) frontier {
	label := "def " + s.Name + "(" + strings.Join(s.Params, ", ") + ")"
	entry := b.g.add(label, KindStart, "")
	fr = b.connect(fr, entry.ID)

	fr = b.statements(s.Body, fr)

	for _, stmt := range s.Body {
		if stmt.IsReturn() {
			return fr
		}
	}
	ret := b.g.add("return None", KindOutput, "")
	return b.connect(fr, ret.ID)
}

// conditional builds an if/else. Both branches are traversed from the
// decision, true side first, and the decision's two edges are then labeled
// by insertion order. The merged frontier is the union of both branch exits.
func (b *builder) conditional(s pytree.Statement, fr frontier) frontier {
	d := b.g.add(s.Cond, KindDecision, s.Cond)
	b.connect(fr, d.ID)

	trueExit := b.branch(s.Body, d.ID)
	falseExit := b.branch(s.Else, d.ID)

	// True branch was traversed first, so insertion order discriminates
	// the branches.
	if len(d.Succs) == 2 {
		d.Succs[0].Label = LabelTrue
		d.Succs[1].Label = LabelFalse
	}

	return mergeFrontiers(trueExit, falseExit)
}

// branch traverses one arm of a conditional. An empty arm synthesizes a
// pass-through node so the decision always gains a discrete edge; without it
// the two-edge invariant would depend on whatever merges later.
func (b *builder) branch(stmts []pytree.Statement, decision int) frontier {
	if len(stmts) == 0 {
		n := b.g.add("pass", KindProcess, "")
		return b.connect(frontier{decision}, n.ID)
	}
	return b.statements(stmts, frontier{decision})
}

// loop builds a while/for: the body is traversed from the decision and every
// body exit closes back to it. Loop edges are labeled by their own rule,
// independent of the conditional's order-based one: edges staying inside the
// loop are True, the eventual exit edge is False.
func (b *builder) loop(cond string, body []pytree.Statement, fr frontier) frontier {
	d := b.g.add(cond, KindDecision, cond)
	b.connect(fr, d.ID)

	bodyExit := b.statements(body, frontier{d.ID})
	for _, id := range bodyExit {
		b.edgeFrom(id, d.ID)
	}

	// Everything the loop added out of the decision stays inside it: the
	// body entry, or the self-loop left by an empty body. The exit edge
	// does not exist yet; connect labels it False when flow continues.
	for i := range d.Succs {
		d.Succs[i].Label = LabelTrue
	}
	d.pendingExitLabel = true

	return frontier{d.ID}
}

// returnStmt terminates the current path: the frontier empties, so whatever
// follows on this path gets no incoming edge.
func (b *builder) returnStmt(s pytree.Statement, fr frontier) frontier {
	label := "return"
	if s.HasValue {
		label = "return " + s.Value
	}
	n := b.g.add(label, KindOutput, "")
	b.connect(fr, n.ID)
	return nil
}

// exprStmt classifies call statements by callee name and renders everything
// else as a plain process step.
func (b *builder) exprStmt(s pytree.Statement, fr frontier) frontier {
	kind := KindProcess
	if s.IsCall {
		kind = classifyCall(s.Callee)
	}
	n := b.g.add(s.Value, kind, "")
	return b.connect(fr, n.ID)
}

func classifyCall(callee string) Kind {
	name := strings.ToLower(callee)
	switch {
	case outputCallees[name]:
		return KindOutput
	case inputCallees[name]:
		return KindInput
	default:
		return KindCall
	}
}
