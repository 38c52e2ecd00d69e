// Package reservation implements the gateway-side reserve decision: request
// types, the decision engine, the error taxonomy and the wire envelope.
package reservation

import "net/http"

// RequestType is the dispatch tag of an inbound reservation request.
type RequestType int

const (
	// TypeUnknown covers every request type this gateway does not handle.
	TypeUnknown RequestType = iota
	// TypePaymentCreate asks the gateway to reserve a payment.
	TypePaymentCreate
)

// ParseRequestType maps the wire `type` string onto the dispatch tag.
// Unrecognized values land on TypeUnknown on purpose; the engine's default
// arm handles them.
func ParseRequestType(s string) RequestType {
	switch s {
	case "payment.create":
		return TypePaymentCreate
	default:
		return TypeUnknown
	}
}

// Request is the inbound reserve-payment body. A zero amount is a valid
// reservation; only negative amounts fail validation.
type Request struct {
	Type    string  `json:"type" validate:"required"`
	Mode    string  `json:"mode"`
	Payment Payment `json:"payment"`
}

// Payment carries the amount to reserve, in minor currency units.
type Payment struct {
	Amount   int64  `json:"amount" validate:"gte=0"`
	Currency string `json:"currency,omitempty"`
}

// ErrorKind enumerates the wire-visible decline reasons. The string values
// are part of the wire contract and must stay stable.
type ErrorKind string

const (
	// KindAmountExceedsLimit declines amounts above the configured limit.
	KindAmountExceedsLimit ErrorKind = "amount_exceeds_limit"
	// KindUnderMaintenance is the catch-all for request types the gateway
	// does not recognize.
	KindUnderMaintenance ErrorKind = "under_maintenance"
	// KindVerificationFailed declines unverified requests when the gateway
	// runs with signature enforcement on.
	KindVerificationFailed ErrorKind = "verification_failed"
)

// HTTPStatus maps a decline reason onto the transport status code.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindVerificationFailed:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// Result is the outcome of a reserve decision. Exactly one of the approved
// and declined shapes is populated: OrderID when Approved, Reason/Message
// otherwise. Authentic carries the signature verification outcome and is
// independent of the approve/decline branch.
type Result struct {
	Approved  bool
	OrderID   string
	Reason    ErrorKind
	Message   string
	Authentic bool
}
