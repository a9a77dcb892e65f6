package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	smithy "github.com/smithy-gen/sdkgen"
	"github.com/smithy-gen/sdkgen/data"
)

func TestReadmeEmitterIncludesDocumentationAndUsage(t *testing.T) {
	traits := data.NewObject()
	traits.Put("smithy.api#documentation", "<p>Manages <b>widgets</b>.</p>")

	shapes := smithy.NewShapes()
	shapes.Put("smithy.example#Widgets", &smithy.Shape{Type: "service", Version: "2024-01-01", Traits: traits})
	ast := &smithy.AST{Smithy: "2.0", Shapes: shapes}
	m, err := smithy.BuildModel(ast, smithy.NewTraitRegistry(), smithy.NewIssuesBag(smithy.IssuePolicyCollect))
	require.NoError(t, err)
	sym := smithy.NewSymbolsProvider(m)

	e := NewReadmeEmitter(NewBaseEmitter("", false), sym)
	out, err := e.Emit(smithy.MustShapeIdOf("smithy.example#Widgets"), "Widgets")
	require.NoError(t, err)
	require.Contains(t, out, "# Widgets")
	require.Contains(t, out, "Manages **widgets**.")
	require.Contains(t, out, "client := NewWidgetsClient(config, httpClient)")
}

func TestReadmeEmitterOmitsDocBlockWhenTraitAbsent(t *testing.T) {
	shapes := smithy.NewShapes()
	shapes.Put("smithy.example#Widgets", &smithy.Shape{Type: "service", Version: "2024-01-01"})
	ast := &smithy.AST{Smithy: "2.0", Shapes: shapes}
	m, err := smithy.BuildModel(ast, smithy.NewTraitRegistry(), smithy.NewIssuesBag(smithy.IssuePolicyCollect))
	require.NoError(t, err)
	sym := smithy.NewSymbolsProvider(m)

	e := NewReadmeEmitter(NewBaseEmitter("", false), sym)
	out, err := e.Emit(smithy.MustShapeIdOf("smithy.example#Widgets"), "Widgets")
	require.NoError(t, err)
	require.Contains(t, out, "# Widgets")
	require.Contains(t, out, "## Usage")
	require.NotContains(t, out, "Manages")
}
