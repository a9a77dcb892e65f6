package rules

import "fmt"

// Lowerer walks the same RuleSet AST as Interpreter but emits target-source
// text instead of computing a Value, so the two paths can never diverge in
// what they consider a legal AST. It targets a small expression-oriented
// pseudo-language the codegen package's templates embed directly into a
// generated resolve(config) function body.
type Lowerer struct {
	varCounter int
}

func NewLowerer() *Lowerer { return &Lowerer{} }

// LowerResolveFunction renders rs as a sequence of statements implementing
// resolve(config) -> Endpoint.
func (lo *Lowerer) LowerResolveFunction(rs *RuleSet) (string, error) {
	out := ""
	for _, p := range rs.Parameters {
		if p.HasDefault {
			out += fmt.Sprintf("let %s = config.%s ?? %#v\n", p.Name, p.Name, p.Default)
		}
	}
	body, err := lo.lowerNodes(rs.Rules, 0)
	if err != nil {
		return "", err
	}
	out += body
	out += indent(0) + "return unresolved_endpoint_error()\n"
	return out, nil
}

func indent(depth int) string {
	s := ""
	for i := 0; i < depth; i++ {
		s += "    "
	}
	return s
}

func (lo *Lowerer) lowerNodes(nodes []Node, depth int) (string, error) {
	out := ""
	for _, n := range nodes {
		guard, err := lo.lowerConditions(n.GetConditions(), depth)
		if err != nil {
			return "", err
		}
		out += indent(depth) + "if " + guard + " {\n"
		switch node := n.(type) {
		case *EndpointNode:
			url, err := lo.lowerExpr(node.Url)
			if err != nil {
				return "", err
			}
			out += indent(depth+1) + fmt.Sprintf("return Endpoint{url: %s}\n", url)
		case *ErrorNode:
			msg, err := lo.lowerExpr(node.Message)
			if err != nil {
				return "", err
			}
			out += indent(depth+1) + fmt.Sprintf("return Err(%s)\n", msg)
		case *TreeNode:
			sub, err := lo.lowerNodes(node.Children, depth+1)
			if err != nil {
				return "", err
			}
			out += sub
		}
		out += indent(depth) + "}\n"
	}
	return out, nil
}

func (lo *Lowerer) lowerConditions(conds []Condition, depth int) (string, error) {
	if len(conds) == 0 {
		return "true", nil
	}
	clauses := make([]string, 0, len(conds))
	for _, c := range conds {
		args := make([]string, 0, len(c.Args))
		for _, a := range c.Args {
			s, err := lo.lowerExpr(a)
			if err != nil {
				return "", err
			}
			args = append(args, s)
		}
		call := fmt.Sprintf("%s(%s)", lowerFnName(c.Fn), join(args, ", "))
		if c.Assign != "" {
			call = fmt.Sprintf("(%s = %s)", c.Assign, call)
		}
		clauses = append(clauses, call)
	}
	return join(clauses, " && "), nil
}

func (lo *Lowerer) lowerExpr(e Expr) (string, error) {
	switch expr := e.(type) {
	case *StringLiteral:
		return fmt.Sprintf("%q", expr.Value), nil
	case *NumberLiteral:
		return fmt.Sprintf("%v", expr.Value), nil
	case *BoolLiteral:
		return fmt.Sprintf("%v", expr.Value), nil
	case *Ref:
		return expr.Name, nil
	case *Call:
		args := make([]string, 0, len(expr.Args))
		for _, a := range expr.Args {
			s, err := lo.lowerExpr(a)
			if err != nil {
				return "", err
			}
			args = append(args, s)
		}
		return fmt.Sprintf("%s(%s)", lowerFnName(expr.Fn), join(args, ", ")), nil
	case *Template:
		out := `"`
		for _, part := range expr.Parts {
			if part.Hole == "" {
				out += part.Literal
			} else {
				out += "${" + part.Hole + "}"
			}
		}
		return out + `"`, nil
	default:
		return "", fmt.Errorf("lower: unknown expression type %T", e)
	}
}

// lowerFnName maps a rules-engine builtin name to the runtime function the
// emitted code calls; dotted names (aws.partition) become underscored
// identifiers valid in more target languages.
func lowerFnName(fn string) string {
	out := make([]byte, 0, len(fn))
	for i := 0; i < len(fn); i++ {
		if fn[i] == '.' {
			out = append(out, '_')
		} else {
			out = append(out, fn[i])
		}
	}
	return string(out)
}

func join(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}
