package protocol

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	smithy "github.com/smithy-gen/sdkgen"
	"github.com/smithy-gen/sdkgen/data"
)

func TestBuildRequestSubstitutesLabelsAndQuery(t *testing.T) {
	binding := &RequestBinding{Method: "GET", UriTemplate: "/widgets/{id}"}
	req, err := BuildRequest(
		context.Background(),
		"https://example.com",
		binding,
		map[string]string{"id": "abc123"},
		map[string]string{"limit": "10"},
		map[string]string{"X-Trace-Id": "t-1"},
		nil,
	)
	require.NoError(t, err)
	require.Equal(t, "GET", req.Method)
	require.Equal(t, "/widgets/abc123", req.URL.Path)
	require.Equal(t, "10", req.URL.Query().Get("limit"))
	require.Equal(t, "t-1", req.Header.Get("X-Trace-Id"))
}

func TestBuildRequestJoinsEndpointPathWithTemplate(t *testing.T) {
	binding := &RequestBinding{Method: "POST", UriTemplate: "/"}
	req, err := BuildRequest(context.Background(), "https://example.com/prefix", binding, nil, nil, nil, strings.NewReader("{}"))
	require.NoError(t, err)
	require.Equal(t, "/prefix/", req.URL.Path)
}

func TestDeclaredErrorDiscriminatorPrefersHeader(t *testing.T) {
	resp := httptest.NewRecorder().Result()
	resp.Header.Set("X-Amzn-Errortype", "com.example#NotFoundException:http://internal/")
	require.Equal(t, "NotFoundException", DeclaredErrorDiscriminator(resp))
}

func TestDeclaredErrorDiscriminatorEmptyWithoutHeader(t *testing.T) {
	resp := httptest.NewRecorder().Result()
	require.Equal(t, "", DeclaredErrorDiscriminator(resp))
}

func TestResolveAuthFallsBackToServiceSigv4Trait(t *testing.T) {
	serviceTraits := data.NewObject()
	serviceTraits.Put("aws.protocols#restJson1", data.NewObject())
	serviceTraits.Put("aws.auth#sigv4", data.NewObject())

	shapes := smithy.NewShapes()
	shapes.Put("smithy.example#GetWidget", &smithy.Shape{Type: "operation"})
	shapes.Put("smithy.example#Widgets", &smithy.Shape{
		Type:       "service",
		Version:    "2024-01-01",
		Traits:     serviceTraits,
		Operations: []*smithy.ShapeRef{{Target: "smithy.example#GetWidget"}},
	})
	ast := &smithy.AST{Smithy: "2.0", Shapes: shapes}
	m, err := smithy.BuildModel(ast, smithy.NewTraitRegistry(), smithy.NewIssuesBag(smithy.IssuePolicyCollect))
	require.NoError(t, err)
	sym := smithy.NewSymbolsProvider(m)

	schemeId, ok := ResolveAuth(sym, smithy.MustShapeIdOf("smithy.example#Widgets"), smithy.MustShapeIdOf("smithy.example#GetWidget"))
	require.True(t, ok)
	require.Equal(t, smithy.MustShapeIdOf("aws.auth#sigv4"), schemeId)
}

func TestResolveAuthReturnsFalseWithNoAuthInfo(t *testing.T) {
	shapes := smithy.NewShapes()
	shapes.Put("smithy.example#GetWidget", &smithy.Shape{Type: "operation"})
	shapes.Put("smithy.example#Widgets", &smithy.Shape{
		Type:       "service",
		Version:    "2024-01-01",
		Operations: []*smithy.ShapeRef{{Target: "smithy.example#GetWidget"}},
	})
	ast := &smithy.AST{Smithy: "2.0", Shapes: shapes}
	m, err := smithy.BuildModel(ast, smithy.NewTraitRegistry(), smithy.NewIssuesBag(smithy.IssuePolicyCollect))
	require.NoError(t, err)
	sym := smithy.NewSymbolsProvider(m)

	_, ok := ResolveAuth(sym, smithy.MustShapeIdOf("smithy.example#Widgets"), smithy.MustShapeIdOf("smithy.example#GetWidget"))
	require.False(t, ok)
}
