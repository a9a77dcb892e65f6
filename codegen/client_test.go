package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	smithy "github.com/smithy-gen/sdkgen"
)

func buildGetWidgetModel(t *testing.T) (*smithy.Model, *smithy.SymbolsProvider, smithy.ShapeId, []smithy.ShapeId) {
	t.Helper()

	inputMembers := smithy.NewMembers()
	inputMembers.Put("id", &smithy.Member{Target: "smithy.api#String"})
	outputMembers := smithy.NewMembers()
	outputMembers.Put("name", &smithy.Member{Target: "smithy.api#String"})

	shapes := smithy.NewShapes()
	shapes.Put("smithy.example#GetWidgetInput", &smithy.Shape{Type: "structure", Members: inputMembers})
	shapes.Put("smithy.example#GetWidgetOutput", &smithy.Shape{Type: "structure", Members: outputMembers})
	shapes.Put("smithy.example#GetWidget", &smithy.Shape{
		Type:   "operation",
		Input:  &smithy.ShapeRef{Target: "smithy.example#GetWidgetInput"},
		Output: &smithy.ShapeRef{Target: "smithy.example#GetWidgetOutput"},
	})
	shapes.Put("smithy.example#Widgets", &smithy.Shape{
		Type:       "service",
		Version:    "2024-01-01",
		Operations: []*smithy.ShapeRef{{Target: "smithy.example#GetWidget"}},
	})
	ast := &smithy.AST{Smithy: "2.0", Shapes: shapes}

	m, err := smithy.BuildModel(ast, smithy.NewTraitRegistry(), smithy.NewIssuesBag(smithy.IssuePolicyCollect))
	require.NoError(t, err)
	sym := smithy.NewSymbolsProvider(m)
	serviceId := smithy.MustShapeIdOf("smithy.example#Widgets")
	ops, err := sym.OperationsOf(serviceId)
	require.NoError(t, err)
	return m, sym, serviceId, ops
}

func TestClientEmitterRendersOneMethodPerOperation(t *testing.T) {
	m, sym, serviceId, ops := buildGetWidgetModel(t)
	e := NewClientEmitter(NewBaseEmitter("", false), m, sym)

	out, err := e.Emit(serviceId, ops)
	require.NoError(t, err)
	require.Contains(t, out, "type WidgetsClient struct")
	require.Contains(t, out, "func NewWidgetsClient(config Config, httpClient HttpClient) *WidgetsClient")
	require.Contains(t, out, "func (c *WidgetsClient) GetWidget(ctx context.Context, input *GetWidgetInput) (*GetWidgetOutput, error)")
}

func TestClientEmitterRejectsUnknownOperation(t *testing.T) {
	m, sym, serviceId, _ := buildGetWidgetModel(t)
	e := NewClientEmitter(NewBaseEmitter("", false), m, sym)

	_, err := e.Emit(serviceId, []smithy.ShapeId{smithy.MustShapeIdOf("smithy.example#GetWidgetInput")})
	require.Error(t, err)
}
