package sigv4

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigningKey(t *testing.T) {
	key := DeriveSigningKey("secret", "20130708", Target{Region: "us-east-1", Service: "s3"})
	want, err := hex.DecodeString("05445e7d332d166e92ebffac4b4a7aed827f2701c3dcc199f4f98d94fd5e1545")
	require.NoError(t, err)
	assert.Equal(t, want, key)
}

func TestCanonicalRequest(t *testing.T) {
	req := CanonicalRequest{
		Method: "GET",
		Path:   "/foo",
		Query: map[string]string{
			"baz": "$qux",
			"foo": "%bar",
		},
		Headers: map[string]string{
			"host":       "s3.amazonaws.com",
			"x-amz-date": "20130708T220855Z",
		},
	}
	got := BuildCanonicalRequest(req)
	want := "GET\n/foo\nbaz=%24qux&foo=%25bar\nhost:s3.amazonaws.com\nx-amz-date:20130708T220855Z\n\nhost;x-amz-date\n" +
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	assert.Equal(t, want, got)
}

func TestSignDeterministic(t *testing.T) {
	req := CanonicalRequest{Method: "GET", Path: "/", Headers: map[string]string{"host": "example.com"}}
	cr := BuildCanonicalRequest(req)
	target := Target{Region: "us-east-1", Service: "s3"}
	sig1 := Sign("20130708T220855Z", target, "secret", cr)
	sig2 := Sign("20130708T220855Z", target, "secret", cr)
	assert.Equal(t, sig1, sig2)
}

func TestCanonicalPathDefaultsToSlash(t *testing.T) {
	assert.Equal(t, "/", CanonicalPath(""))
}
