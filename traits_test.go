package smithy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smithy-gen/sdkgen/data"
)

func TestTraitRegistryParsesHttpFromDataObject(t *testing.T) {
	r := NewTraitRegistry()
	payload := data.NewObject()
	payload.Put("method", "PUT")
	payload.Put("uri", "/items/{id}")

	raw, err := r.Parse("smithy.api#http", payload)
	require.NoError(t, err)
	h, ok := raw.(*HttpTrait)
	require.True(t, ok)
	require.Equal(t, "PUT", h.Method)
	require.Equal(t, "/items/{id}", h.Uri)
}

func TestTraitRegistryParsesHttpFromPlainMap(t *testing.T) {
	r := NewTraitRegistry()
	payload := map[string]interface{}{"method": "DELETE", "uri": "/items/{id}", "code": float64(204)}

	raw, err := r.Parse("smithy.api#http", payload)
	require.NoError(t, err)
	h, ok := raw.(*HttpTrait)
	require.True(t, ok)
	require.Equal(t, "DELETE", h.Method)
	require.Equal(t, 204, h.Code)
}

func TestTraitRegistryMarkerTraitsReturnTrue(t *testing.T) {
	r := NewTraitRegistry()
	raw, err := r.Parse("smithy.api#required", nil)
	require.NoError(t, err)
	require.Equal(t, true, raw)
}

func TestTraitRegistryUnknownTraitPassesThroughRaw(t *testing.T) {
	r := NewTraitRegistry()
	raw, err := r.Parse("smithy.example#custom", "hello")
	require.NoError(t, err)
	require.Equal(t, "hello", raw)
}

func TestTraitRegistryParsesRangeBounds(t *testing.T) {
	r := NewTraitRegistry()
	payload := data.NewObject()
	payload.Put("min", float64(1))
	payload.Put("max", float64(100))

	raw, err := r.Parse("smithy.api#range", payload)
	require.NoError(t, err)
	rt, ok := raw.(*RangeTrait)
	require.True(t, ok)
	require.True(t, rt.HasMin)
	require.True(t, rt.HasMax)
	require.Equal(t, 1, rt.Min.AsInt())
	require.Equal(t, 100, rt.Max.AsInt())
}

func TestTraitRegistryRangeDefaultsWhenBoundsAbsent(t *testing.T) {
	r := NewTraitRegistry()
	raw, err := r.Parse("smithy.api#range", data.NewObject())
	require.NoError(t, err)
	rt, ok := raw.(*RangeTrait)
	require.True(t, ok)
	require.False(t, rt.HasMin)
	require.False(t, rt.HasMax)
}

func TestTraitRegistryAuthTraitOrdersSchemes(t *testing.T) {
	r := NewTraitRegistry()
	raw, err := r.Parse("smithy.api#auth", []interface{}{"aws.auth#sigv4", "smithy.api#httpBasicAuth"})
	require.NoError(t, err)
	at, ok := raw.(*AuthTrait)
	require.True(t, ok)
	require.Equal(t, []string{"aws.auth#sigv4", "smithy.api#httpBasicAuth"}, at.Schemes)
}
