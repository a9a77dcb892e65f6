package smithy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smithy-gen/sdkgen/data"
)

func structureShape(memberName, target string, traits *data.Object) *Shape {
	members := NewMembers()
	members.Put(memberName, &Member{Target: target, Traits: traits})
	return &Shape{Type: "structure", Members: members}
}

func TestBuildModelInternsStructureMembers(t *testing.T) {
	shapes := NewShapes()
	shapes.Put("smithy.example#Widget", structureShape("name", "smithy.api#String", nil))
	ast := &AST{Smithy: "2.0", Shapes: shapes}

	m, err := BuildModel(ast, NewTraitRegistry(), NewIssuesBag(IssuePolicyCollect))
	require.NoError(t, err)

	widgetId := MustShapeIdOf("smithy.example#Widget")
	st, ok := m.ShapeType(widgetId)
	require.True(t, ok)
	structure, ok := st.(*StructureShape)
	require.True(t, ok)
	require.Len(t, structure.Members, 1)

	memberId := MustShapeIdOf("smithy.example#Widget$name")
	require.Equal(t, memberId, structure.Members[0])

	target, ok := m.ShapeType(memberId)
	require.True(t, ok)
	ts, ok := target.(*TargetShape)
	require.True(t, ok)
	require.Equal(t, MustShapeIdOf("smithy.api#String"), ts.Target)
}

func TestBuildModelTracksSingleService(t *testing.T) {
	shapes := NewShapes()
	shapes.Put("smithy.example#Widgets", &Shape{Type: "service", Version: "2024-01-01"})
	shapes.Put("smithy.example#OtherService", &Shape{Type: "service", Version: "2024-01-01"})
	ast := &AST{Smithy: "2.0", Shapes: shapes}

	issues := NewIssuesBag(IssuePolicyCollect)
	m, err := BuildModel(ast, NewTraitRegistry(), issues)
	require.NoError(t, err)

	id, ok := m.ServiceId()
	require.True(t, ok)
	require.Equal(t, MustShapeIdOf("smithy.example#Widgets"), id)
	require.False(t, issues.Empty())
}

func TestBuildModelRejectsMalformedShapeId(t *testing.T) {
	shapes := NewShapes()
	shapes.Put("not-an-absolute-id", &Shape{Type: "string"})
	ast := &AST{Smithy: "2.0", Shapes: shapes}

	_, err := BuildModel(ast, NewTraitRegistry(), NewIssuesBag(IssuePolicyCollect))
	require.Error(t, err)
}

func TestBuildModelParsesHttpTrait(t *testing.T) {
	traits := data.NewObject()
	httpTrait := data.NewObject()
	httpTrait.Put("method", "GET")
	httpTrait.Put("uri", "/widgets/{id}")
	httpTrait.Put("code", float64(200))
	traits.Put("smithy.api#http", httpTrait)

	shapes := NewShapes()
	shapes.Put("smithy.example#GetWidget", &Shape{Type: "operation", Traits: traits})
	ast := &AST{Smithy: "2.0", Shapes: shapes}

	m, err := BuildModel(ast, NewTraitRegistry(), NewIssuesBag(IssuePolicyCollect))
	require.NoError(t, err)

	opId := MustShapeIdOf("smithy.example#GetWidget")
	tvs := m.Traits(opId)
	require.Len(t, tvs, 1)
	h, ok := tvs[0].Raw.(*HttpTrait)
	require.True(t, ok)
	require.Equal(t, "GET", h.Method)
	require.Equal(t, "/widgets/{id}", h.Uri)
	require.Equal(t, 200, h.Code)
}
