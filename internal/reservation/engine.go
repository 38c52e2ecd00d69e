package reservation

import "github.com/google/uuid"

// DefaultAmountLimit is the reserve ceiling in minor units; anything above it
// is never approved.
const DefaultAmountLimit = 20000

// Engine turns a reservation request into an approve/decline result. It is
// stateless and does no I/O; the only nondeterminism is order id generation.
type Engine struct {
	AmountLimit int64
}

// NewEngine returns an Engine with the default amount limit.
func NewEngine() *Engine {
	return &Engine{AmountLimit: DefaultAmountLimit}
}

// Decide applies the decision table, in order:
//
//  1. any type other than payment.create -> under_maintenance
//  2. amount above the limit             -> amount_exceeds_limit
//  3. otherwise approved with a fresh v4 order id
//
// verified is threaded through to the result untouched; signature failure and
// business decline are orthogonal signals here.
func (e *Engine) Decide(req Request, verified bool) Result {
	switch ParseRequestType(req.Type) {
	case TypePaymentCreate:
		if req.Payment.Amount > e.AmountLimit {
			return Result{
				Reason:    KindAmountExceedsLimit,
				Message:   "User does not have sufficient funds",
				Authentic: verified,
			}
		}
		// a real gateway would reserve against a ledger here and hand back
		// the id the order was stored under
		return Result{
			Approved:  true,
			OrderID:   uuid.NewString(),
			Authentic: verified,
		}
	default:
		return Result{
			Reason:    KindUnderMaintenance,
			Message:   "still being built",
			Authentic: verified,
		}
	}
}

// DeclineUnverified is the result used when signature enforcement is on and
// verification failed; the engine never produces it on its own.
func DeclineUnverified() Result {
	return Result{
		Reason:  KindVerificationFailed,
		Message: "request signature could not be verified",
	}
}
