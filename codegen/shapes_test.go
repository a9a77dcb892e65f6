package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	smithy "github.com/smithy-gen/sdkgen"
	"github.com/smithy-gen/sdkgen/data"
)

func buildWidgetModel(t *testing.T) (*smithy.Model, *smithy.SymbolsProvider) {
	t.Helper()

	requiredTraits := data.NewObject()
	requiredTraits.Put("smithy.api#required", true)

	members := smithy.NewMembers()
	members.Put("id", &smithy.Member{Target: "smithy.api#String", Traits: requiredTraits})
	members.Put("name", &smithy.Member{Target: "smithy.api#String"})

	shapes := smithy.NewShapes()
	shapes.Put("smithy.example#Widget", &smithy.Shape{Type: "structure", Members: members})
	ast := &smithy.AST{Smithy: "2.0", Shapes: shapes}

	m, err := smithy.BuildModel(ast, smithy.NewTraitRegistry(), smithy.NewIssuesBag(smithy.IssuePolicyCollect))
	require.NoError(t, err)
	return m, smithy.NewSymbolsProvider(m)
}

func TestShapesEmitterRequiredMembersAreNotPointers(t *testing.T) {
	m, sym := buildWidgetModel(t)
	base := NewBaseEmitter("", false)
	e := NewShapesEmitter(base, m, sym)

	out, err := e.Emit("widgets", []smithy.ShapeId{smithy.MustShapeIdOf("smithy.example#Widget")})
	require.NoError(t, err)
	require.Contains(t, out, "ID string `json:\"id\"`")
	require.Contains(t, out, "Name *string `json:\"name\"`")
}
