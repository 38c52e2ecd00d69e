package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/qrpay-gateway/internal/qrlink"
	"github.com/example/qrpay-gateway/internal/reservation"
)

func testRouter() *qrlink.Router {
	return qrlink.NewRouter("komoju-demo")
}

func okEnvelope(orderID string) reservation.Envelope {
	return reservation.Envelope{Success: true, OrderID: orderID, Authentic: true}
}

func declineEnvelope(msg string) reservation.Envelope {
	return reservation.Envelope{
		Error: &reservation.WireError{Type: reservation.KindAmountExceedsLimit, Message: msg},
	}
}

func TestHappyPath(t *testing.T) {
	m := New(testRouter())
	require.Equal(t, StateIdle, m.State())

	require.NoError(t, m.Advance(ScanStarted{}))
	require.Equal(t, StateScanning, m.State())

	ref := "https://example.com/payments/abc"
	require.NoError(t, m.Advance(LinkOpened{URI: qrlink.BuildDeepLink("komoju-demo", ref)}))
	require.Equal(t, StateRouted, m.State())
	assert.Equal(t, ref, m.Reference())

	require.NoError(t, m.Advance(SubmitReservation{}))
	require.Equal(t, StateProcessing, m.State())

	require.NoError(t, m.Advance(EnvelopeReceived{Envelope: okEnvelope("order-1")}))
	require.Equal(t, StateConfirmed, m.State())
	assert.Equal(t, "order-1", m.OrderID())

	require.NoError(t, m.Advance(UserConfirmed{}))
	assert.Equal(t, StateSucceeded, m.State())
}

func TestUnrelatedLinkIsIgnored(t *testing.T) {
	m := New(testRouter())
	require.NoError(t, m.Advance(ScanStarted{}))

	for _, uri := range []string{
		"other-app://nexus_link/abc",
		"komoju-demo://elsewhere/abc",
	} {
		require.NoError(t, m.Advance(LinkOpened{URI: uri}))
		assert.Equal(t, StateScanning, m.State(), "uri %q", uri)
	}
}

func TestMalformedLinkStaysPut(t *testing.T) {
	m := New(testRouter())
	require.NoError(t, m.Advance(ScanStarted{}))

	err := m.Advance(LinkOpened{URI: "komoju-demo://nexus_link/%zz"})
	assert.ErrorIs(t, err, qrlink.ErrMalformedReference)
	assert.Equal(t, StateScanning, m.State())
}

func TestDeclineCarriesMessage(t *testing.T) {
	m := Resume(testRouter(), "ref")
	require.NoError(t, m.Advance(SubmitReservation{}))

	require.NoError(t, m.Advance(EnvelopeReceived{Envelope: declineEnvelope("User does not have sufficient funds")}))
	assert.Equal(t, StateFailed, m.State())
	assert.Equal(t, "User does not have sufficient funds", m.FailureMessage())
}

func TestColdStartResume(t *testing.T) {
	m := Resume(testRouter(), "https://example.com/payments/abc")
	assert.Equal(t, StateRouted, m.State())
	assert.Equal(t, "https://example.com/payments/abc", m.Reference())

	// bypassed Idle/Scanning, but the rest of the flow works as usual
	require.NoError(t, m.Advance(SubmitReservation{}))
	assert.Equal(t, StateProcessing, m.State())
}

func TestSingleInFlightReservation(t *testing.T) {
	m := Resume(testRouter(), "ref")
	require.NoError(t, m.Advance(SubmitReservation{}))

	err := m.Advance(SubmitReservation{})
	assert.ErrorIs(t, err, ErrReservationInFlight)
	assert.Equal(t, StateProcessing, m.State())

	// settling the reservation clears the guard, and the terminal state
	// rejects another submit outright
	require.NoError(t, m.Advance(EnvelopeReceived{Envelope: okEnvelope("order-1")}))
	assert.ErrorIs(t, m.Advance(SubmitReservation{}), ErrBadTransition)
}

func TestFailureFromConfirmed(t *testing.T) {
	m := Resume(testRouter(), "ref")
	require.NoError(t, m.Advance(SubmitReservation{}))
	require.NoError(t, m.Advance(EnvelopeReceived{Envelope: okEnvelope("order-1")}))
	require.Equal(t, StateConfirmed, m.State())

	require.NoError(t, m.Advance(FlowFailed{Message: "session expired"}))
	assert.Equal(t, StateFailed, m.State())
	assert.Equal(t, "session expired", m.FailureMessage())
}

func TestInvalidTransitions(t *testing.T) {
	m := New(testRouter())

	assert.ErrorIs(t, m.Advance(UserConfirmed{}), ErrBadTransition)
	assert.ErrorIs(t, m.Advance(SubmitReservation{}), ErrBadTransition)
	assert.ErrorIs(t, m.Advance(EnvelopeReceived{}), ErrBadTransition)
	assert.ErrorIs(t, m.Advance(FlowFailed{}), ErrBadTransition)
	assert.Equal(t, StateIdle, m.State())
}
