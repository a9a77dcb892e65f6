package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	smithy "github.com/smithy-gen/sdkgen"
	"github.com/smithy-gen/sdkgen/data"
)

func buildWidgetsAST(t *testing.T) *smithy.AST {
	t.Helper()

	httpTraits := data.NewObject()
	httpPayload := data.NewObject()
	httpPayload.Put("method", "GET")
	httpPayload.Put("uri", "/widgets/{id}")
	httpTraits.Put("smithy.api#http", httpPayload)

	inputMembers := smithy.NewMembers()
	labelTraits := data.NewObject()
	labelTraits.Put("smithy.api#httpLabel", true)
	labelTraits.Put("smithy.api#required", true)
	inputMembers.Put("id", &smithy.Member{Target: "smithy.api#String", Traits: labelTraits})

	outputMembers := smithy.NewMembers()
	outputMembers.Put("name", &smithy.Member{Target: "smithy.api#String"})

	notFoundTraits := data.NewObject()
	notFoundTraits.Put("smithy.api#error", "client")
	notFoundTraits.Put("smithy.api#httpError", float64(404))

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

	serviceTraits := data.NewObject()
	serviceTraits.Put("aws.protocols#restJson1", data.NewObject())
	serviceTraits.Put("smithy.rules#endpointRuleSet", ruleSetDoc)

	shapes := smithy.NewShapes()
	shapes.Put("smithy.example#GetWidgetInput", &smithy.Shape{Type: "structure", Members: inputMembers})
	shapes.Put("smithy.example#GetWidgetOutput", &smithy.Shape{Type: "structure", Members: outputMembers})
	shapes.Put("smithy.example#NotFound", &smithy.Shape{Type: "structure", Traits: notFoundTraits})
	shapes.Put("smithy.example#GetWidget", &smithy.Shape{
		Type:   "operation",
		Traits: httpTraits,
		Input:  &smithy.ShapeRef{Target: "smithy.example#GetWidgetInput"},
		Output: &smithy.ShapeRef{Target: "smithy.example#GetWidgetOutput"},
		Errors: []*smithy.ShapeRef{{Target: "smithy.example#NotFound"}},
	})
	shapes.Put("smithy.example#Widgets", &smithy.Shape{
		Type:       "service",
		Version:    "2024-01-01",
		Traits:     serviceTraits,
		Operations: []*smithy.ShapeRef{{Target: "smithy.example#GetWidget"}},
	})
	return &smithy.AST{Smithy: "2.0", Shapes: shapes}
}

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	return &Orchestrator{
		OutDir: "",
		Hooks:  DefaultHooks(),
		Logger: zap.NewNop(),
		Issues: smithy.NewIssuesBag(smithy.IssuePolicyCollect),
		Traits: smithy.NewTraitRegistry(),
		RunId:  "test-run",
	}
}

func TestBuildSymbolsProducesModelAndSymbols(t *testing.T) {
	o := newTestOrchestrator(t)
	model, sym, err := o.BuildSymbols(buildWidgetsAST(t))
	require.NoError(t, err)
	require.NotNil(t, model)
	require.NotNil(t, sym)
}

func TestRunEmitsSelectedService(t *testing.T) {
	o := newTestOrchestrator(t)
	model, sym, err := o.BuildSymbols(buildWidgetsAST(t))
	require.NoError(t, err)

	results, err := o.Run(context.Background(), model, sym, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Widgets", results[0].ServiceName)
	require.NoError(t, results[0].Err)
}

func TestRunHonorsServiceFilterHook(t *testing.T) {
	o := newTestOrchestrator(t)
	model, sym, err := o.BuildSymbols(buildWidgetsAST(t))
	require.NoError(t, err)

	o.Hooks.ServiceFilter = func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId) bool {
		return false
	}
	results, err := o.Run(context.Background(), model, sym, nil)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestRunAppliesReadmeWriterHook(t *testing.T) {
	o := newTestOrchestrator(t)
	model, sym, err := o.BuildSymbols(buildWidgetsAST(t))
	require.NoError(t, err)

	called := false
	o.Hooks.ReadmeWriter = func(sym *smithy.SymbolsProvider, serviceId smithy.ShapeId, rendered string) string {
		called = true
		return rendered
	}
	results, err := o.Run(context.Background(), model, sym, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.True(t, called)
}

func buildDuplicateServiceAST(t *testing.T) *smithy.AST {
	t.Helper()
	shapes := smithy.NewShapes()
	shapes.Put("smithy.example#Widgets", &smithy.Shape{Type: "service", Version: "2024-01-01"})
	shapes.Put("smithy.example#Gadgets", &smithy.Shape{Type: "service", Version: "2024-01-01"})
	return &smithy.AST{Smithy: "2.0", Shapes: shapes}
}

func TestBuildSymbolsUnderCollectPolicyProceedsPastRecordedIssue(t *testing.T) {
	o := newTestOrchestrator(t)
	model, sym, err := o.BuildSymbols(buildDuplicateServiceAST(t))
	require.NoError(t, err)
	require.NotNil(t, model)
	require.NotNil(t, sym)
	require.Equal(t, 1, o.Issues.Len())
}

func TestBuildSymbolsUnderAbortPolicyFailsOnRecordedIssue(t *testing.T) {
	o := newTestOrchestrator(t)
	o.Issues = smithy.NewIssuesBag(smithy.IssuePolicyAbort)
	_, _, err := o.BuildSymbols(buildDuplicateServiceAST(t))
	require.Error(t, err)
}

func TestRunFiltersByRequestedServiceName(t *testing.T) {
	o := newTestOrchestrator(t)
	model, sym, err := o.BuildSymbols(buildWidgetsAST(t))
	require.NoError(t, err)

	results, err := o.Run(context.Background(), model, sym, []string{"NoSuchService"})
	require.NoError(t, err)
	require.Empty(t, results)
}
