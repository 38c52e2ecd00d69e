// Package flow drives the client-side payment journey: scan a QR, follow the
// deep link, reserve, confirm. The machine is an explicit value advanced by
// events so it can be exercised without any rendering environment.
package flow

import (
	"errors"
	"fmt"
	"sync"

	"github.com/example/qrpay-gateway/internal/qrlink"
	"github.com/example/qrpay-gateway/internal/reservation"
)

// State is one screen-state of the payment journey.
type State int

const (
	StateIdle State = iota
	StateScanning
	StateRouted
	StateProcessing
	StateConfirmed
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateScanning:
		return "Scanning"
	case StateRouted:
		return "Routed"
	case StateProcessing:
		return "Processing"
	case StateConfirmed:
		return "Confirmed"
	case StateSucceeded:
		return "Succeeded"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Event advances the machine. Each event type is valid from specific states;
// anything else is rejected with ErrBadTransition.
type Event interface{ flowEvent() }

// ScanStarted moves Idle -> Scanning on user action.
type ScanStarted struct{}

// LinkOpened carries a deep link URI. A routed link moves Scanning -> Routed;
// a URI outside the app's grammar is ignored and the state stays put.
type LinkOpened struct{ URI string }

// SubmitReservation moves Routed -> Processing. At most one reservation may
// be in flight per machine instance.
type SubmitReservation struct{}

// EnvelopeReceived carries the gateway response and settles the in-flight
// reservation: Processing -> Confirmed on success, -> Failed on decline.
type EnvelopeReceived struct{ Envelope reservation.Envelope }

// UserConfirmed moves Confirmed -> Succeeded.
type UserConfirmed struct{}

// FlowFailed aborts from Processing or Confirmed into the terminal Failed.
type FlowFailed struct{ Message string }

func (ScanStarted) flowEvent()       {}
func (LinkOpened) flowEvent()        {}
func (SubmitReservation) flowEvent() {}
func (EnvelopeReceived) flowEvent()  {}
func (UserConfirmed) flowEvent()     {}
func (FlowFailed) flowEvent()        {}

var (
	// ErrBadTransition rejects an event the current state does not accept.
	ErrBadTransition = errors.New("flow: event not valid in current state")
	// ErrReservationInFlight rejects a duplicate submit while one
	// reservation is still outstanding.
	ErrReservationInFlight = errors.New("flow: reservation already in flight")
)

// Machine is one payment flow instance. Safe for concurrent use.
type Machine struct {
	router *qrlink.Router

	mu       sync.Mutex
	state    State
	ref      string
	orderID  string
	failMsg  string
	inFlight bool
}

// New returns a Machine in Idle.
func New(router *qrlink.Router) *Machine {
	return &Machine{router: router, state: StateIdle}
}

// Resume returns a Machine already in Routed, for cold starts where the app
// was launched directly by a deep link.
func Resume(router *qrlink.Router, ref string) *Machine {
	return &Machine{router: router, state: StateRouted, ref: ref}
}

// State returns the current state.
func (f *Machine) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Reference returns the decoded payment reference once routed.
func (f *Machine) Reference() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ref
}

// OrderID returns the order id once the reservation succeeded.
func (f *Machine) OrderID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderID
}

// FailureMessage returns the user-facing message in Failed.
func (f *Machine) FailureMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failMsg
}

// Advance applies one event. A LinkOpened that does not match the app's link
// grammar is not an error; it is ignored and the state is left unchanged.
func (f *Machine) Advance(ev Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch ev := ev.(type) {
	case ScanStarted:
		if f.state != StateIdle {
			return ErrBadTransition
		}
		f.state = StateScanning
		return nil

	case LinkOpened:
		if f.state != StateScanning {
			return ErrBadTransition
		}
		match, ok, err := f.router.Route(ev.URI)
		if err != nil {
			// malformed reference segment: handled locally, no transition
			return err
		}
		if !ok {
			return nil
		}
		f.ref = match.Reference
		f.state = StateRouted
		return nil

	case SubmitReservation:
		if f.inFlight {
			return ErrReservationInFlight
		}
		if f.state != StateRouted {
			return ErrBadTransition
		}
		f.inFlight = true
		f.state = StateProcessing
		return nil

	case EnvelopeReceived:
		if f.state != StateProcessing {
			return ErrBadTransition
		}
		f.inFlight = false
		if ev.Envelope.Success {
			f.orderID = ev.Envelope.OrderID
			f.state = StateConfirmed
			return nil
		}
		if ev.Envelope.Error != nil {
			f.failMsg = ev.Envelope.Error.Message
		}
		f.state = StateFailed
		return nil

	case UserConfirmed:
		if f.state != StateConfirmed {
			return ErrBadTransition
		}
		f.state = StateSucceeded
		return nil

	case FlowFailed:
		if f.state != StateProcessing && f.state != StateConfirmed {
			return ErrBadTransition
		}
		f.inFlight = false
		f.failMsg = ev.Message
		f.state = StateFailed
		return nil

	default:
		return ErrBadTransition
	}
}
