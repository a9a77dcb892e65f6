package codegen

import (
	"fmt"
	"strings"

	smithy "github.com/smithy-gen/sdkgen"
	"github.com/smithy-gen/sdkgen/rules"
)

// EndpointEmitter renders a service's endpoint resolver module by lowering
// its smithy.rules#endpointRuleSet trait through rules.Lowerer.
type EndpointEmitter struct {
	*BaseEmitter
	Symbols *smithy.SymbolsProvider
}

func NewEndpointEmitter(base *BaseEmitter, sym *smithy.SymbolsProvider) *EndpointEmitter {
	return &EndpointEmitter{BaseEmitter: base, Symbols: sym}
}

func (e *EndpointEmitter) Emit(serviceId smithy.ShapeId) (string, error) {
	ruleSetTraitId := smithy.MustShapeIdOf("smithy.rules#endpointRuleSet")
	tv, ok := e.Symbols.GetTrait(serviceId, ruleSetTraitId)
	if !ok {
		return "", fmt.Errorf("service %s has no endpointRuleSet trait", serviceId)
	}
	wrapped, ok := tv.Raw.(*smithy.EndpointRuleSetTrait)
	if !ok {
		return "", fmt.Errorf("service %s endpointRuleSet trait has unexpected payload type", serviceId)
	}
	ruleSet, err := rules.Parse(wrapped.Document)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint rule set for %s: %w", serviceId, err)
	}
	body, err := rules.NewLowerer().LowerResolveFunction(ruleSet)
	if err != nil {
		return "", fmt.Errorf("lowering endpoint rule set for %s: %w", serviceId, err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated from the endpointRuleSet trait of %s. DO NOT EDIT.\n\n", serviceId)
	b.WriteString("func resolve(config Config) (Endpoint, error) {\n")
	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			continue
		}
		b.WriteString("\t" + line + "\n")
	}
	b.WriteString("}\n")
	return b.String(), nil
}
