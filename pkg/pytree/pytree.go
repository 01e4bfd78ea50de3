// Package pytree defines the statement-tree contract between the parser
// front end and the flow-graph builder. Statements carry their expressions
// pre-rendered to display text, so consumers never touch the parse tree.
package pytree

// Kind identifies the structural shape of a statement.
type Kind string

const (
	KindFunctionDef Kind = "function_def" // def name(params): body
	KindIf          Kind = "if"           // if/elif/else (elif nested in Else)
	KindWhile       Kind = "while"        // while cond: body
	KindFor         Kind = "for"          // for target in iter: body
	KindReturn      Kind = "return"       // return [value]
	KindAssign      Kind = "assign"       // targets = value
	KindAugAssign   Kind = "aug_assign"   // target op value (e.g. x += 1)
	KindExpr        Kind = "expr"         // bare expression statement
	KindOther       Kind = "other"        // anything else, best-effort text
)

// Statement is one node of the statement tree. Which fields are meaningful
// depends on Kind; unused fields are zero.
type Statement struct {
	Kind Kind `json:"kind"`

	// Function definitions.
	Name   string   `json:"name,omitempty"`   // function name
	Params []string `json:"params,omitempty"` // formal parameter names

	// Conditionals and while loops.
	Cond string `json:"cond,omitempty"` // rendered condition expression

	// For loops and assignments.
	Target  string   `json:"target,omitempty"`  // loop binding / aug-assign target
	Iter    string   `json:"iter,omitempty"`    // rendered iterable
	Targets []string `json:"targets,omitempty"` // assignment targets (chained)
	Op      string   `json:"op,omitempty"`      // augmented operator text ("+=")

	// Rendered value: assignment RHS, return expression, or the whole
	// statement text for expression/other statements.
	Value    string `json:"value,omitempty"`
	HasValue bool   `json:"has_value,omitempty"` // return carries an expression

	// Expression statements that are calls.
	IsCall bool   `json:"is_call,omitempty"`
	Callee string `json:"callee,omitempty"` // callee base identifier

	// Nested statement sequences.
	Body []Statement `json:"body,omitempty"`
	Else []Statement `json:"else,omitempty"`

	Line int `json:"line,omitempty"` // 1-based source line
}

// Module is the top-level statement sequence of one source file.
type Module struct {
	Body []Statement `json:"body"`
}

// IsReturn reports whether the statement is a return statement. The builder
// uses it to decide whether a function body needs a synthetic nil return.
func (s Statement) IsReturn() bool { return s.Kind == KindReturn }
