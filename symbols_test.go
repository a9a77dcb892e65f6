package smithy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smithy-gen/sdkgen/data"
)

func TestSymbolsProviderFlattensMixinMembers(t *testing.T) {
	baseMembers := NewMembers()
	baseMembers.Put("id", &Member{Target: "smithy.api#String"})
	shapes := NewShapes()
	shapes.Put("smithy.example#Base", &Shape{Type: "structure", Members: baseMembers})

	childMembers := NewMembers()
	childMembers.Put("name", &Member{Target: "smithy.api#String"})
	shapes.Put("smithy.example#Child", &Shape{
		Type:    "structure",
		Members: childMembers,
		Mixins:  []*ShapeRef{{Target: "smithy.example#Base"}},
	})
	ast := &AST{Smithy: "2.0", Shapes: shapes}

	m, err := BuildModel(ast, NewTraitRegistry(), NewIssuesBag(IssuePolicyCollect))
	require.NoError(t, err)
	sym := NewSymbolsProvider(m)

	members, err := sym.Members(MustShapeIdOf("smithy.example#Child"))
	require.NoError(t, err)
	require.ElementsMatch(t, []ShapeId{
		MustShapeIdOf("smithy.example#Child$name"),
		MustShapeIdOf("smithy.example#Base$id"),
	}, members)
}

func TestSymbolsProviderChildWinsOnRedeclaredMember(t *testing.T) {
	baseMembers := NewMembers()
	baseMembers.Put("id", &Member{Target: "smithy.api#String"})
	shapes := NewShapes()
	shapes.Put("smithy.example#Base", &Shape{Type: "structure", Members: baseMembers})

	childMembers := NewMembers()
	childMembers.Put("id", &Member{Target: "smithy.api#Integer"})
	shapes.Put("smithy.example#Child", &Shape{
		Type:    "structure",
		Members: childMembers,
		Mixins:  []*ShapeRef{{Target: "smithy.example#Base"}},
	})
	ast := &AST{Smithy: "2.0", Shapes: shapes}

	m, err := BuildModel(ast, NewTraitRegistry(), NewIssuesBag(IssuePolicyCollect))
	require.NoError(t, err)
	sym := NewSymbolsProvider(m)

	members, err := sym.Members(MustShapeIdOf("smithy.example#Child"))
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, MustShapeIdOf("smithy.example#Child$id"), members[0])

	target := sym.ResolvedTarget(members[0])
	require.Equal(t, MustShapeIdOf("smithy.api#Integer"), target)
}

func TestSymbolsProviderMergesMixinMemberTraitsUnderneathRedeclaredMember(t *testing.T) {
	baseRequired := data.NewObject()
	baseRequired.Put("smithy.api#required", true)
	baseRequired.Put("smithy.api#documentation", "inherited doc")
	baseMembers := NewMembers()
	baseMembers.Put("id", &Member{Target: "smithy.api#String", Traits: baseRequired})
	shapes := NewShapes()
	shapes.Put("smithy.example#Base", &Shape{Type: "structure", Members: baseMembers})

	childDoc := data.NewObject()
	childDoc.Put("smithy.api#documentation", "child doc")
	childMembers := NewMembers()
	childMembers.Put("id", &Member{Target: "smithy.api#Integer", Traits: childDoc})
	shapes.Put("smithy.example#Child", &Shape{
		Type:    "structure",
		Members: childMembers,
		Mixins:  []*ShapeRef{{Target: "smithy.example#Base"}},
	})
	ast := &AST{Smithy: "2.0", Shapes: shapes}

	m, err := BuildModel(ast, NewTraitRegistry(), NewIssuesBag(IssuePolicyCollect))
	require.NoError(t, err)
	sym := NewSymbolsProvider(m)

	members, err := sym.Members(MustShapeIdOf("smithy.example#Child"))
	require.NoError(t, err)
	require.Len(t, members, 1)
	childId := members[0]
	require.Equal(t, MustShapeIdOf("smithy.example#Child$id"), childId)

	// smithy.api#required only appears on the mixin member -- it must still
	// surface on the winning child member.
	tv, ok := sym.GetTrait(childId, MustShapeIdOf("smithy.api#required"))
	require.True(t, ok)
	require.Equal(t, true, tv.Raw)

	// smithy.api#documentation is declared on both -- the child's own value
	// wins, not the mixin's.
	tv, ok = sym.GetTrait(childId, MustShapeIdOf("smithy.api#documentation"))
	require.True(t, ok)
	require.Equal(t, "child doc", tv.Raw)
}

func TestSymbolsProviderDetectsMixinCycle(t *testing.T) {
	shapes := NewShapes()
	shapes.Put("smithy.example#A", &Shape{
		Type:   "structure",
		Mixins: []*ShapeRef{{Target: "smithy.example#B"}},
	})
	shapes.Put("smithy.example#B", &Shape{
		Type:   "structure",
		Mixins: []*ShapeRef{{Target: "smithy.example#A"}},
	})
	ast := &AST{Smithy: "2.0", Shapes: shapes}

	m, err := BuildModel(ast, NewTraitRegistry(), NewIssuesBag(IssuePolicyCollect))
	require.NoError(t, err)
	sym := NewSymbolsProvider(m)

	_, err = sym.Members(MustShapeIdOf("smithy.example#A"))
	require.Error(t, err)
}

func TestSymbolsProviderOperationsOfService(t *testing.T) {
	shapes := NewShapes()
	shapes.Put("smithy.example#GetWidget", &Shape{Type: "operation"})
	shapes.Put("smithy.example#Widgets", &Shape{
		Type:       "service",
		Version:    "2024-01-01",
		Operations: []*ShapeRef{{Target: "smithy.example#GetWidget"}},
	})
	ast := &AST{Smithy: "2.0", Shapes: shapes}

	m, err := BuildModel(ast, NewTraitRegistry(), NewIssuesBag(IssuePolicyCollect))
	require.NoError(t, err)
	sym := NewSymbolsProvider(m)

	ops, err := sym.OperationsOf(MustShapeIdOf("smithy.example#Widgets"))
	require.NoError(t, err)
	require.Equal(t, []ShapeId{MustShapeIdOf("smithy.example#GetWidget")}, ops)
}
