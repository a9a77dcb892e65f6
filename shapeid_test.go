package smithy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeIdInterning(t *testing.T) {
	direct, err := ShapeIdOf("smithy.example.foo#ExampleShapeName$memberName")
	require.NoError(t, err)
	composed, err := ShapeIdCompose("smithy.example.foo#ExampleShapeName", "memberName")
	require.NoError(t, err)
	assert.Equal(t, direct, composed)
}

func TestShapeIdPreludeIdentity(t *testing.T) {
	id, err := ShapeIdOf("smithy.api#Blob")
	require.NoError(t, err)
	assert.Equal(t, ShapeIdBlob, id)
}

func TestShapeIdMember(t *testing.T) {
	id, err := ShapeIdOf("ns#Foo$bar")
	require.NoError(t, err)
	parent, member, ok := id.Member()
	require.True(t, ok)
	assert.Equal(t, "bar", member)
	wantParent, err := ShapeIdOf("ns#Foo")
	require.NoError(t, err)
	assert.Equal(t, wantParent, parent)
}
