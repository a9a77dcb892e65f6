package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeIdempotent(t *testing.T) {
	once := Snake("ExampleShapeName")
	twice := Snake(once)
	assert.Equal(t, once, twice)
}

func TestScreamIdempotent(t *testing.T) {
	once := Scream("max_results")
	twice := Scream(once)
	assert.Equal(t, once, twice)
}

func TestEscapeReserved(t *testing.T) {
	assert.Equal(t, "type_", EscapeReserved("type"))
	assert.Equal(t, "Foo", EscapeReserved("Foo"))
}

func TestPascalTypeStripsNamespace(t *testing.T) {
	ns := NewNameScope()
	assert.Equal(t, "Widget", ns.PascalType("smithy.example#Widget"))
}
