package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	smithy "github.com/smithy-gen/sdkgen"
	"github.com/smithy-gen/sdkgen/data"
)

func buildEndpointRuleSetModel(t *testing.T) (*smithy.SymbolsProvider, smithy.ShapeId) {
	t.Helper()

	ruleSetDoc := data.NewObject()
	ruleSetDoc.Put("version", "1.0")
	ruleSetDoc.Put("parameters", data.NewObject())
	endpointNode := data.NewObject()
	endpointNode.Put("type", "endpoint")
	endpointNode.Put("conditions", []interface{}{})
	endpointObj := data.NewObject()
	endpointObj.Put("url", "https://widgets.example.com")
	endpointNode.Put("endpoint", endpointObj)
	ruleSetDoc.Put("rules", []interface{}{endpointNode})

	traits := data.NewObject()
	traits.Put("smithy.rules#endpointRuleSet", ruleSetDoc)

	shapes := smithy.NewShapes()
	shapes.Put("smithy.example#Widgets", &smithy.Shape{Type: "service", Version: "2024-01-01", Traits: traits})
	ast := &smithy.AST{Smithy: "2.0", Shapes: shapes}

	m, err := smithy.BuildModel(ast, smithy.NewTraitRegistry(), smithy.NewIssuesBag(smithy.IssuePolicyCollect))
	require.NoError(t, err)
	return smithy.NewSymbolsProvider(m), smithy.MustShapeIdOf("smithy.example#Widgets")
}

func TestEndpointEmitterLowersFixedUrlRule(t *testing.T) {
	sym, serviceId := buildEndpointRuleSetModel(t)
	e := NewEndpointEmitter(NewBaseEmitter("", false), sym)

	out, err := e.Emit(serviceId)
	require.NoError(t, err)
	require.Contains(t, out, "func resolve(config Config) (Endpoint, error) {")
	require.Contains(t, out, `return Endpoint{url: "https://widgets.example.com"}`)
}

func TestEndpointEmitterRequiresRuleSetTrait(t *testing.T) {
	shapes := smithy.NewShapes()
	shapes.Put("smithy.example#Bare", &smithy.Shape{Type: "service", Version: "2024-01-01"})
	ast := &smithy.AST{Smithy: "2.0", Shapes: shapes}
	m, err := smithy.BuildModel(ast, smithy.NewTraitRegistry(), smithy.NewIssuesBag(smithy.IssuePolicyCollect))
	require.NoError(t, err)
	sym := smithy.NewSymbolsProvider(m)

	e := NewEndpointEmitter(NewBaseEmitter("", false), sym)
	_, err = e.Emit(smithy.MustShapeIdOf("smithy.example#Bare"))
	require.Error(t, err)
}
