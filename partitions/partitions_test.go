package partitions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePartitions = `{
  "partitions": [
    {
      "id": "aws",
      "regionRegex": "^(us|eu|ap)-\\w+-\\d+$",
      "outputs": {"dnsSuffix": "amazonaws.com", "supportsFIPS": true, "supportsDualStack": true, "implicitGlobalRegion": "us-east-1"},
      "regions": {
        "us-east-1": {},
        "cn-northwest-1-like": {"dnsSuffix": "example.amazonaws.com"}
      }
    },
    {
      "id": "aws-cn",
      "regionRegex": "^cn-\\w+-\\d+$",
      "outputs": {"dnsSuffix": "amazonaws.com.cn", "supportsFIPS": false, "supportsDualStack": true, "implicitGlobalRegion": "cn-north-1"},
      "regions": {}
    }
  ]
}`

func TestResolveExactRegionMatch(t *testing.T) {
	f, err := Load([]byte(samplePartitions))
	require.NoError(t, err)

	p, outputs, ok := f.Resolve("us-east-1")
	require.True(t, ok)
	require.Equal(t, "aws", p.Id)
	require.Equal(t, "amazonaws.com", outputs.DnsSuffix)
}

func TestResolveRegionOutputOverride(t *testing.T) {
	f, err := Load([]byte(samplePartitions))
	require.NoError(t, err)

	_, outputs, ok := f.Resolve("cn-northwest-1-like")
	require.True(t, ok)
	require.Equal(t, "example.amazonaws.com", outputs.DnsSuffix)
}

func TestResolveRegexFallback(t *testing.T) {
	f, err := Load([]byte(samplePartitions))
	require.NoError(t, err)

	p, _, ok := f.Resolve("cn-north-1")
	require.True(t, ok)
	require.Equal(t, "aws-cn", p.Id)
}

func TestResolveUnknownRegionFallsBackToDefaultPartition(t *testing.T) {
	f, err := Load([]byte(samplePartitions))
	require.NoError(t, err)

	p, _, ok := f.Resolve("mars-central-1")
	require.False(t, ok)
	require.Equal(t, "aws", p.Id)
}
