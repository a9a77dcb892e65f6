package rules

import (
	"fmt"
	"strings"

	"github.com/smithy-gen/sdkgen/data"
)

// Parse decodes a smithy.rules#endpointRuleSet trait document (already
// order-preserved by data.Object) into a RuleSet. The document shape is
// fixed by the Smithy rules-engine spec: {"version", "parameters", "rules"}.
func Parse(doc *data.Object) (*RuleSet, error) {
	rs := &RuleSet{}
	if params := doc.GetObject("parameters"); params != nil {
		for _, name := range params.Keys() {
			p, err := parseParameter(name, params.GetObject(name))
			if err != nil {
				return nil, err
			}
			rs.Parameters = append(rs.Parameters, p)
		}
	}
	rawRules := doc.GetArray("rules")
	nodes, err := parseNodes(rawRules)
	if err != nil {
		return nil, err
	}
	rs.Rules = nodes
	return rs, nil
}

func parseParameter(name string, o *data.Object) (Parameter, error) {
	p := Parameter{Name: name, Type: o.GetString("type")}
	if o.Has("default") {
		p.Default = o.Get("default")
		p.HasDefault = true
	}
	p.Required = o.GetBool("required")
	p.BuiltIn = o.GetString("builtIn")
	p.Documentation = o.GetString("documentation")
	return p, nil
}

func parseNodes(raw []interface{}) ([]Node, error) {
	var nodes []Node
	for _, r := range raw {
		o := data.AsObject(r)
		n, err := parseNode(o)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func parseNode(o *data.Object) (Node, error) {
	conds, err := parseConditions(o.GetArray("conditions"))
	if err != nil {
		return nil, err
	}
	base := baseNode{Conditions: conds}
	switch o.GetString("type") {
	case "endpoint":
		ep := o.GetObject("endpoint")
		if ep == nil {
			return nil, fmt.Errorf("endpoint node missing endpoint object")
		}
		urlExpr, err := parseExpr(ep.Get("url"))
		if err != nil {
			return nil, err
		}
		props := make(map[string]Value)
		if propsObj := ep.GetObject("properties"); propsObj != nil {
			for _, k := range propsObj.Keys() {
				props[k] = propsObj.Get(k)
			}
		}
		headers := make(map[string][]Expr)
		if hdrObj := ep.GetObject("headers"); hdrObj != nil {
			for _, k := range hdrObj.Keys() {
				arr := hdrObj.GetArray(k)
				var exprs []Expr
				for _, v := range arr {
					e, err := parseExpr(v)
					if err != nil {
						return nil, err
					}
					exprs = append(exprs, e)
				}
				headers[k] = exprs
			}
		}
		return &EndpointNode{baseNode: base, Url: urlExpr, Properties: props, Headers: headers}, nil
	case "error":
		msgExpr, err := parseExpr(o.Get("error"))
		if err != nil {
			return nil, err
		}
		return &ErrorNode{baseNode: base, Message: msgExpr}, nil
	case "tree":
		children, err := parseNodes(o.GetArray("rules"))
		if err != nil {
			return nil, err
		}
		return &TreeNode{baseNode: base, Children: children}, nil
	default:
		return nil, fmt.Errorf("unknown rule node type %q", o.GetString("type"))
	}
}

func parseConditions(raw []interface{}) ([]Condition, error) {
	var conds []Condition
	for _, r := range raw {
		o := data.AsObject(r)
		c := Condition{Fn: o.GetString("fn"), Assign: o.GetString("assign")}
		for _, a := range o.GetArray("argv") {
			e, err := parseExpr(a)
			if err != nil {
				return nil, err
			}
			c.Args = append(c.Args, e)
		}
		conds = append(conds, c)
	}
	return conds, nil
}

// parseExpr decodes one JSON value from a rules document into an Expr.
// Function calls appear as {"fn": "...", "argv": [...]}; references appear
// as {"ref": "name"}; everything else is a literal.
func parseExpr(v interface{}) (Expr, error) {
	switch val := v.(type) {
	case string:
		return parseTemplate(val), nil
	case float64:
		return &NumberLiteral{Value: val}, nil
	case bool:
		return &BoolLiteral{Value: val}, nil
	case nil:
		return &StringLiteral{Value: ""}, nil
	case *data.Object:
		if val.Has("ref") {
			return &Ref{Name: val.GetString("ref")}, nil
		}
		if val.Has("fn") {
			c := &Call{Fn: val.GetString("fn")}
			for _, a := range val.GetArray("argv") {
				e, err := parseExpr(a)
				if err != nil {
					return nil, err
				}
				c.Args = append(c.Args, e)
			}
			return c, nil
		}
		return nil, fmt.Errorf("unrecognized expression object: %v", val.Keys())
	case map[string]interface{}:
		return parseExpr(data.ObjectFromMap(val))
	default:
		return nil, fmt.Errorf("unrecognized expression value %T", v)
	}
}

// parseTemplate splits a string literal on {name} / {ref#member} holes. A
// plain string with no '{' becomes a StringLiteral rather than a Template.
func parseTemplate(s string) Expr {
	if !strings.ContainsRune(s, '{') {
		return &StringLiteral{Value: s}
	}
	var parts []TemplatePart
	i := 0
	for i < len(s) {
		open := strings.IndexByte(s[i:], '{')
		if open < 0 {
			parts = append(parts, TemplatePart{Literal: s[i:]})
			break
		}
		open += i
		if open > i {
			parts = append(parts, TemplatePart{Literal: s[i:open]})
		}
		closeIdx := strings.IndexByte(s[open:], '}')
		if closeIdx < 0 {
			parts = append(parts, TemplatePart{Literal: s[open:]})
			break
		}
		closeIdx += open
		parts = append(parts, TemplatePart{Hole: s[open+1 : closeIdx]})
		i = closeIdx + 1
	}
	return &Template{Parts: parts}
}
