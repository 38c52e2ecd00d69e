package reservation

import "net/http"

// Envelope is the canonical wire response for the reserve endpoint. The body
// is present on success and on decline alike; clients surface error.message
// to the user.
type Envelope struct {
	Success   bool       `json:"success"`
	OrderID   string     `json:"orderId,omitempty"`
	Error     *WireError `json:"error,omitempty"`
	Authentic bool       `json:"authentic"`
}

// WireError is the typed decline block inside a failure envelope.
type WireError struct {
	Type    ErrorKind `json:"type"`
	Message string    `json:"message"`
}

// BuildEnvelope serializes a Result into the wire envelope and picks the
// transport status code: 200 for approvals, the reason's status otherwise.
func BuildEnvelope(res Result) (int, Envelope) {
	if res.Approved {
		return http.StatusOK, Envelope{
			Success:   true,
			OrderID:   res.OrderID,
			Authentic: res.Authentic,
		}
	}
	return res.Reason.HTTPStatus(), Envelope{
		Success:   false,
		Error:     &WireError{Type: res.Reason, Message: res.Message},
		Authentic: res.Authentic,
	}
}
