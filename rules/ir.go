package rules

// Value is the dynamic value type flowing through the rules interpreter:
// string, bool, float64, []Value, map[string]Value, or nil ("unset").
type Value interface{}

// Expr is a node of the small expression language endpoint rules are
// written in.
type Expr interface {
	isExpr()
}

type StringLiteral struct{ Value string }
type NumberLiteral struct{ Value float64 }
type BoolLiteral struct{ Value bool }

// Ref reads a bound name out of the current environment -- either a
// top-level parameter or a name bound by an earlier condition's Assign.
type Ref struct{ Name string }

// Call invokes a BuiltinFn with the given argument expressions.
type Call struct {
	Fn   string
	Args []Expr
}

// Template is a string with {name} and {ref#member} interpolation holes,
// stored as alternating literal/hole parts for fast rendering.
type Template struct {
	Parts []TemplatePart
}

type TemplatePart struct {
	Literal string // used when Hole == ""
	Hole    string // "name" or "ref#member"; empty means this part is Literal
}

func (*StringLiteral) isExpr() {}
func (*NumberLiteral) isExpr() {}
func (*BoolLiteral) isExpr()   {}
func (*Ref) isExpr()           {}
func (*Call) isExpr()          {}
func (*Template) isExpr()      {}

// Condition is one guard clause of a rule node: it evaluates Fn(Args...)
// and, if the result is truthy, optionally binds it to Assign for the
// remainder of the node's conditions and its body.
type Condition struct {
	Fn     string
	Args   []Expr
	Assign string // "" if this condition binds nothing
}

// Node is one element of the rule-set tree: endpoint, error, or tree.
type Node interface {
	isNode()
	GetConditions() []Condition
}

type baseNode struct {
	Conditions []Condition
}

func (b baseNode) GetConditions() []Condition { return b.Conditions }

// EndpointNode emits a resolved endpoint when its conditions all succeed.
type EndpointNode struct {
	baseNode
	Url        Expr
	Properties map[string]Value
	Headers    map[string][]Expr
}

// ErrorNode fails resolution with a message when its conditions succeed.
type ErrorNode struct {
	baseNode
	Message Expr
}

// TreeNode recurses into Children in order; the first child whose own
// conditions all succeed wins. An empty match (no child succeeds) is
// non-fatal: the parent tree simply didn't produce a result, and the
// caller (Interpreter.Resolve or a parent tree) continues to its own next
// sibling.
type TreeNode struct {
	baseNode
	Children []Node
}

func (*EndpointNode) isNode() {}
func (*ErrorNode) isNode()    {}
func (*TreeNode) isNode()     {}

// Parameter is one declared input of a rule set, with an optional default.
type Parameter struct {
	Name         string
	Type         string // "String", "Boolean"
	Default      Value
	HasDefault   bool
	Required     bool
	BuiltIn      string // e.g. "AWS::Region"; "" if not a SDK built-in
	Documentation string
}

// RuleSet is a parsed smithy.rules#endpointRuleSet trait: an ordered list
// of top-level parameters (with optional defaults) and the root rule tree.
type RuleSet struct {
	Parameters []Parameter
	Rules      []Node
}

// ResolvedEndpoint is the result of a successful rule match.
type ResolvedEndpoint struct {
	Url        string
	Properties map[string]Value
	Headers    map[string][]string
}

// ErrUnresolvedEndpoint is returned when no top-level rule matches.
type ErrUnresolvedEndpoint struct{}

func (*ErrUnresolvedEndpoint) Error() string { return "no endpoint rule matched" }

// ErrRuleError wraps an explicit error-node message.
type ErrRuleError struct{ Message string }

func (e *ErrRuleError) Error() string { return e.Message }
