package rules

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/smithy-gen/sdkgen/partitions"
)

// Environment is the scoped name->value mapping conditions read from and
// bind into. A child scope is created per rule node so assignments don't
// leak across sibling branches of a tree.
type Environment struct {
	parent *Environment
	vars   map[string]Value
}

func NewEnvironment(params map[string]Value) *Environment {
	return &Environment{vars: params}
}

func (e *Environment) child() *Environment {
	return &Environment{parent: e, vars: make(map[string]Value)}
}

func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (e *Environment) Set(name string, v Value) {
	e.vars[name] = v
}

// Interpreter evaluates a RuleSet against an Environment. This is the
// self-test / fixture-validation path; the code emitter's Lowerer
// (lower.go) walks the identical AST to produce target source instead of
// a Value.
type Interpreter struct {
	Partitions *partitions.File
}

func NewInterpreter(p *partitions.File) *Interpreter {
	return &Interpreter{Partitions: p}
}

// Resolve runs a RuleSet's rule list against env, returning the first
// matched endpoint or error, or ErrUnresolvedEndpoint if nothing matched.
func (in *Interpreter) Resolve(rs *RuleSet, env *Environment) (*ResolvedEndpoint, error) {
	return in.resolveNodes(rs.Rules, env)
}

func (in *Interpreter) resolveNodes(nodes []Node, env *Environment) (*ResolvedEndpoint, error) {
	for _, n := range nodes {
		scope := env.child()
		ok, err := in.evalConditions(n.GetConditions(), scope)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		switch node := n.(type) {
		case *EndpointNode:
			return in.evalEndpoint(node, scope)
		case *ErrorNode:
			msg, err := in.evalExprString(node.Message, scope)
			if err != nil {
				return nil, err
			}
			return nil, &ErrRuleError{Message: msg}
		case *TreeNode:
			result, err := in.resolveNodes(node.Children, scope)
			if err != nil {
				if _, unresolved := err.(*ErrUnresolvedEndpoint); unresolved {
					continue // non-fatal: try the next sibling of this tree
				}
				return nil, err
			}
			return result, nil
		}
	}
	return nil, &ErrUnresolvedEndpoint{}
}

func (in *Interpreter) evalConditions(conds []Condition, env *Environment) (bool, error) {
	for _, c := range conds {
		v, err := in.call(c.Fn, c.Args, env)
		if err != nil {
			return false, err
		}
		if c.Assign != "" {
			env.Set(c.Assign, v)
		}
		if !truthy(v) {
			return false, nil
		}
	}
	return true, nil
}

func (in *Interpreter) evalEndpoint(node *EndpointNode, env *Environment) (*ResolvedEndpoint, error) {
	u, err := in.evalExprString(node.Url, env)
	if err != nil {
		return nil, err
	}
	headers := make(map[string][]string, len(node.Headers))
	for k, exprs := range node.Headers {
		for _, e := range exprs {
			s, err := in.evalExprString(e, env)
			if err != nil {
				return nil, err
			}
			headers[k] = append(headers[k], s)
		}
	}
	return &ResolvedEndpoint{Url: u, Properties: node.Properties, Headers: headers}, nil
}

func truthy(v Value) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	default:
		return true
	}
}

func (in *Interpreter) evalExprString(e Expr, env *Environment) (string, error) {
	v, err := in.eval(e, env)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string result, got %T", v)
	}
	return s, nil
}

func (in *Interpreter) eval(e Expr, env *Environment) (Value, error) {
	switch expr := e.(type) {
	case *StringLiteral:
		return expr.Value, nil
	case *NumberLiteral:
		return expr.Value, nil
	case *BoolLiteral:
		return expr.Value, nil
	case *Ref:
		v, ok := env.Get(expr.Name)
		if !ok {
			return nil, nil
		}
		return v, nil
	case *Call:
		return in.call(expr.Fn, expr.Args, env)
	case *Template:
		return in.renderTemplate(expr, env)
	default:
		return nil, fmt.Errorf("unknown expression type %T", e)
	}
}

func (in *Interpreter) renderTemplate(t *Template, env *Environment) (string, error) {
	var b strings.Builder
	for _, part := range t.Parts {
		if part.Hole == "" {
			b.WriteString(part.Literal)
			continue
		}
		name, member, hasMember := strings.Cut(part.Hole, "#")
		v, ok := env.Get(name)
		if !ok {
			return "", fmt.Errorf("template references unbound name %q", name)
		}
		if hasMember {
			m, ok := v.(map[string]Value)
			if !ok {
				return "", fmt.Errorf("template member access %q on non-record value", part.Hole)
			}
			v = m[member]
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("template hole %q did not resolve to a string", part.Hole)
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func (in *Interpreter) evalArgs(args []Expr, env *Environment) ([]Value, error) {
	out := make([]Value, 0, len(args))
	for _, a := range args {
		v, err := in.eval(a, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// call dispatches one BuiltinFn invocation. Arguments are indexed and
// type-asserted without a prior arity or type check, so a call with too few
// or mistyped arguments panics; the Lowerer emits calls without checking
// arity or types either.
func (in *Interpreter) call(fn string, argExprs []Expr, env *Environment) (Value, error) {
	args, err := in.evalArgs(argExprs, env)
	if err != nil {
		return nil, err
	}
	switch fn {
	case "isSet":
		return args[0] != nil, nil
	case "not":
		return !truthy(args[0]), nil
	case "booleanEquals":
		return args[0] == args[1], nil
	case "stringEquals":
		return args[0] == args[1], nil
	case "getAttr":
		return getAttr(args[0], args[1].(string))
	case "substring":
		return substring(args[0].(string), int(args[1].(float64)), int(args[2].(float64)), len(args) > 3 && args[3].(bool))
	case "uriEncode":
		return url.QueryEscape(args[0].(string)), nil
	case "parseURL":
		return parseURL(args[0].(string))
	case "isValidHostLabel":
		allowSub := len(args) > 1 && truthy(args[1])
		return isValidHostLabel(args[0].(string), allowSub), nil
	case "aws.partition":
		return in.awsPartition(args[0].(string))
	case "aws.parseArn":
		return awsParseArn(args[0].(string))
	case "aws.isVirtualHostableS3Bucket":
		allowSub := len(args) > 1 && truthy(args[1])
		return IsVirtualHostableS3Bucket(args[0].(string), allowSub), nil
	default:
		return nil, fmt.Errorf("unknown rules builtin %q", fn)
	}
}

func getAttr(v Value, path string) (Value, error) {
	cur := v
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]Value)
		if !ok {
			return nil, fmt.Errorf("getAttr: %q is not a record", seg)
		}
		cur = m[seg]
	}
	return cur, nil
}

func substring(s string, start, stop int, reverse bool) (Value, error) {
	if reverse {
		start, stop = len(s)-stop, len(s)-start
	}
	if start < 0 || stop > len(s) || start > stop {
		return nil, nil
	}
	return s[start:stop], nil
}

func parseURL(raw string) (Value, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, nil
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return map[string]Value{
		"scheme":              u.Scheme,
		"authority":           u.Host,
		"path":                path,
		"normalizedPath":      strings.TrimSuffix(path, "/") + "/",
		"isIp":                looksLikeIPv4(u.Hostname()),
	}, nil
}

var hostLabelRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)

func isValidHostLabel(s string, allowSubDomains bool) bool {
	if !allowSubDomains {
		return hostLabelRe.MatchString(s) && len(s) <= 63
	}
	for _, label := range strings.Split(s, ".") {
		if !isValidHostLabel(label, false) {
			return false
		}
	}
	return true
}

func (in *Interpreter) awsPartition(region string) (Value, error) {
	if in.Partitions == nil {
		return nil, fmt.Errorf("aws.partition: no partitions file loaded")
	}
	p, outputs, _ := in.Partitions.Resolve(region)
	if p == nil {
		return nil, nil
	}
	return map[string]Value{
		"name":                 p.Id,
		"dnsSuffix":            outputs.DnsSuffix,
		"dualStackDnsSuffix":   outputs.DualStackDnsSuffix,
		"supportsFIPS":         outputs.SupportsFIPS,
		"supportsDualStack":    outputs.SupportsDualStack,
		"implicitGlobalRegion": outputs.ImplicitGlobalRegion,
	}, nil
}

func awsParseArn(s string) (Value, error) {
	arn, err := ParseArn(s)
	if err != nil {
		return nil, nil // aws.parseArn returns an optional, not a hard error
	}
	resourceId := make([]Value, len(arn.ResourceId))
	for i, r := range arn.ResourceId {
		resourceId[i] = r
	}
	return map[string]Value{
		"partition":  arn.Partition,
		"service":    arn.Service,
		"region":     arn.Region,
		"accountId":  arn.AccountId,
		"resourceId": resourceId,
	}, nil
}
