package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	smithygo "github.com/aws/smithy-go"
)

func TestAPIErrorSatisfiesSmithyGoInterface(t *testing.T) {
	e := NewAPIError("NotFound", "no such widget", false)
	var apiErr smithygo.APIError = e

	require.Equal(t, "NotFound", apiErr.ErrorCode())
	require.Equal(t, "no such widget", apiErr.ErrorMessage())
	require.Equal(t, smithygo.FaultClient, apiErr.ErrorFault())
	require.Equal(t, "NotFound: no such widget", e.Error())
}

func TestAPIErrorRetryableMapsToServerFault(t *testing.T) {
	e := NewAPIError("ThrottlingException", "slow down", true)
	require.Equal(t, smithygo.FaultServer, e.ErrorFault())
}

func TestAPIErrorAsGenericCarriesFields(t *testing.T) {
	e := NewAPIError("Oops", "bad request", false)
	g := e.AsGeneric()
	require.Equal(t, "Oops", g.Code)
	require.Equal(t, "bad request", g.Message)
	require.Equal(t, smithygo.FaultClient, g.Fault)
}
