// Package parser turns Python source into the statement tree consumed by
// the flow-graph builder. It parses with tree-sitter and renders expression
// sub-trees back to display text from the source bytes.
package parser

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/l3aro/go-flowchart/pkg/pytree"
)

// ParseFile parses the Python file at path into a statement tree.
func ParseFile(ctx context.Context, path string) (pytree.Module, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return pytree.Module{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	mod, err := Parse(ctx, content)
	if err != nil {
		return pytree.Module{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return mod, nil
}

// Parse parses Python source into a statement tree. Source that does not
// parse cleanly (the tree contains ERROR nodes) is rejected outright; no
// partial tree is returned.
func Parse(ctx context.Context, src []byte) (pytree.Module, error) {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return pytree.Module{}, fmt.Errorf("parsing source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return pytree.Module{}, fmt.Errorf("syntax error in source")
	}

	c := converter{src: src}
	return pytree.Module{Body: c.statements(root)}, nil
}

// converter walks the tree-sitter parse tree and produces pytree statements.
type converter struct {
	src []byte
}

// statements converts every statement child of a module or block node.
func (c *converter) statements(node *sitter.Node) []pytree.Statement {
	if node == nil {
		return nil
	}

	var out []pytree.Statement
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, c.statement(child))
	}
	return out
}

func (c *converter) statement(node *sitter.Node) pytree.Statement {
	switch node.Type() {
	case "function_definition":
		return c.functionDef(node)
	case "decorated_definition":
		if def := node.ChildByFieldName("definition"); def != nil && def.Type() == "function_definition" {
			return c.functionDef(def)
		}
		return c.other(node)
	case "if_statement":
		return c.ifStatement(node)
	case "while_statement":
		return c.whileStatement(node)
	case "for_statement":
		return c.forStatement(node)
	case "return_statement":
		return c.returnStatement(node)
	case "expression_statement":
		return c.exprStatement(node)
	default:
		return c.other(node)
	}
}

func (c *converter) functionDef(node *sitter.Node) pytree.Statement {
	return pytree.Statement{
		Kind:   pytree.KindFunctionDef,
		Name:   c.render(node.ChildByFieldName("name")),
		Params: c.parameters(node.ChildByFieldName("parameters")),
		Body:   c.statements(node.ChildByFieldName("body")),
		Line:   line(node),
	}
}

// parameters extracts formal parameter names, keeping splat markers
// (*args, **kwargs) verbatim.
func (c *converter) parameters(node *sitter.Node) []string {
	if node == nil {
		return nil
	}

	var params []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		p := node.NamedChild(i)
		if p == nil {
			continue
		}
		if name := p.ChildByFieldName("name"); name != nil {
			params = append(params, c.render(name))
			continue
		}
		if p.Type() == "identifier" || p.NamedChildCount() == 0 {
			params = append(params, c.render(p))
			continue
		}
		// typed_parameter and splat patterns: the name is the first
		// named child unless the pattern itself is the name.
		if first := p.NamedChild(0); first != nil && first.Type() == "identifier" {
			params = append(params, c.render(first))
		} else {
			params = append(params, c.render(p))
		}
	}
	return params
}

// ifStatement converts an if/elif/else chain. Each elif becomes a nested If
// on the false side, so the builder only ever sees two-way conditionals.
func (c *converter) ifStatement(node *sitter.Node) pytree.Statement {
	stmt := pytree.Statement{
		Kind: pytree.KindIf,
		Cond: c.render(node.ChildByFieldName("condition")),
		Body: c.statements(node.ChildByFieldName("consequence")),
		Line: line(node),
	}

	// Alternatives appear in source order: zero or more elif clauses
	// followed by at most one else clause. Fold them right-to-left.
	var clauses []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		if t := child.Type(); t == "elif_clause" || t == "else_clause" {
			clauses = append(clauses, child)
		}
	}

	var elseBody []pytree.Statement
	for i := len(clauses) - 1; i >= 0; i-- {
		clause := clauses[i]
		if clause.Type() == "else_clause" {
			elseBody = c.statements(clause.ChildByFieldName("body"))
			continue
		}
		elseBody = []pytree.Statement{{
			Kind: pytree.KindIf,
			Cond: c.render(clause.ChildByFieldName("condition")),
			Body: c.statements(clause.ChildByFieldName("consequence")),
			Else: elseBody,
			Line: line(clause),
		}}
	}
	stmt.Else = elseBody

	return stmt
}

func (c *converter) whileStatement(node *sitter.Node) pytree.Statement {
	return pytree.Statement{
		Kind: pytree.KindWhile,
		Cond: c.render(node.ChildByFieldName("condition")),
		Body: c.statements(node.ChildByFieldName("body")),
		Line: line(node),
	}
}

func (c *converter) forStatement(node *sitter.Node) pytree.Statement {
	return pytree.Statement{
		Kind:   pytree.KindFor,
		Target: c.render(node.ChildByFieldName("left")),
		Iter:   c.render(node.ChildByFieldName("right")),
		Body:   c.statements(node.ChildByFieldName("body")),
		Line:   line(node),
	}
}

func (c *converter) returnStatement(node *sitter.Node) pytree.Statement {
	stmt := pytree.Statement{Kind: pytree.KindReturn, Line: line(node)}
	if value := node.NamedChild(0); value != nil {
		stmt.Value = c.render(value)
		stmt.HasValue = true
	}
	return stmt
}

// exprStatement converts expression statements: assignments, augmented
// assignments, calls, and bare expressions.
func (c *converter) exprStatement(node *sitter.Node) pytree.Statement {
	expr := node.NamedChild(0)
	if expr == nil {
		return c.other(node)
	}

	switch expr.Type() {
	case "assignment":
		return c.assignment(expr)
	case "augmented_assignment":
		return pytree.Statement{
			Kind:   pytree.KindAugAssign,
			Target: c.render(expr.ChildByFieldName("left")),
			Op:     c.render(expr.ChildByFieldName("operator")),
			Value:  c.render(expr.ChildByFieldName("right")),
			Line:   line(node),
		}
	case "call":
		return pytree.Statement{
			Kind:   pytree.KindExpr,
			IsCall: true,
			Callee: c.calleeName(expr.ChildByFieldName("function")),
			Value:  c.render(expr),
			Line:   line(node),
		}
	default:
		return pytree.Statement{
			Kind:  pytree.KindExpr,
			Value: c.render(expr),
			Line:  line(node),
		}
	}
}

// assignment flattens chained targets (x = y = 1) into a target list.
func (c *converter) assignment(node *sitter.Node) pytree.Statement {
	var targets []string
	value := ""

	for node != nil {
		targets = append(targets, c.render(node.ChildByFieldName("left")))
		right := node.ChildByFieldName("right")
		if right != nil && right.Type() == "assignment" {
			node = right
			continue
		}
		value = c.render(right)
		break
	}

	return pytree.Statement{
		Kind:    pytree.KindAssign,
		Targets: targets,
		Value:   value,
	}
}

// other wraps any unrecognized statement as best-effort display text.
func (c *converter) other(node *sitter.Node) pytree.Statement {
	return pytree.Statement{
		Kind:  pytree.KindOther,
		Value: c.render(node),
		Line:  line(node),
	}
}

// calleeName resolves the base identifier of a call target: the trailing
// attribute for dotted calls, the identifier itself otherwise.
func (c *converter) calleeName(fn *sitter.Node) string {
	if fn == nil {
		return ""
	}
	if fn.Type() == "attribute" {
		if attr := fn.ChildByFieldName("attribute"); attr != nil {
			return c.render(attr)
		}
	}
	text := c.render(fn)
	if idx := strings.LastIndex(text, "."); idx >= 0 {
		return text[idx+1:]
	}
	return text
}

// render slices the node's source text and collapses internal whitespace so
// multi-line expressions display as a single line. A node whose text cannot
// be recovered renders as a placeholder naming its structural kind.
func (c *converter) render(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start >= uint32(len(c.src)) || end > uint32(len(c.src)) || start >= end {
		return "# " + node.Type()
	}
	text := strings.Join(strings.Fields(string(c.src[start:end])), " ")
	if text == "" {
		return "# " + node.Type()
	}
	return text
}

func line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}
