package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArnParsing(t *testing.T) {
	arn, err := ParseArn("arn:aws:ec2:us-east-1:012345678910:vpc/vpc-0e9801d129EXAMPLE")
	require.NoError(t, err)
	assert.Equal(t, "aws", arn.Partition)
	assert.Equal(t, "ec2", arn.Service)
	assert.Equal(t, "us-east-1", arn.Region)
	assert.Equal(t, "012345678910", arn.AccountId)
	assert.Equal(t, []string{"vpc", "vpc-0e9801d129EXAMPLE"}, arn.ResourceId)
}

func TestArnParsingInvalid(t *testing.T) {
	_, err := ParseArn("arn:aws:sns")
	assert.Error(t, err)
	var invalid *ErrInvalidArn
	assert.ErrorAs(t, err, &invalid)
}

func TestVirtualHostableS3Bucket(t *testing.T) {
	assert.True(t, IsVirtualHostableS3Bucket("a--b--x-s3", false))
	assert.False(t, IsVirtualHostableS3Bucket("a-.b-.c", true))
}
