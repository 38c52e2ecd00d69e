package reservation

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEnvelopeApproved(t *testing.T) {
	status, env := BuildEnvelope(Result{Approved: true, OrderID: "abc", Authentic: true})

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, "abc", env.OrderID)
	assert.Nil(t, env.Error)
	assert.True(t, env.Authentic)
}

func TestBuildEnvelopeDeclined(t *testing.T) {
	status, env := BuildEnvelope(Result{
		Reason:    KindAmountExceedsLimit,
		Message:   "User does not have sufficient funds",
		Authentic: true,
	})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, KindAmountExceedsLimit, env.Error.Type)
	assert.NotEmpty(t, env.Error.Message)
}

func TestBuildEnvelopeUnverified(t *testing.T) {
	status, env := BuildEnvelope(DeclineUnverified())

	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, KindVerificationFailed, env.Error.Type)
	assert.False(t, env.Authentic)
}

func TestEnvelopeWireFieldNames(t *testing.T) {
	_, env := BuildEnvelope(Result{Approved: true, OrderID: "abc"})
	b, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"orderId":"abc","authentic":false}`, string(b))

	_, env = BuildEnvelope(Result{Reason: KindUnderMaintenance, Message: "still being built", Authentic: true})
	b, err = json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"type":"under_maintenance","message":"still being built"},"authentic":true}`, string(b))
}

func TestErrorKindWireStrings(t *testing.T) {
	// wire contract, must not drift
	assert.Equal(t, "amount_exceeds_limit", string(KindAmountExceedsLimit))
	assert.Equal(t, "under_maintenance", string(KindUnderMaintenance))
}
