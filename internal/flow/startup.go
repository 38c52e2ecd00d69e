package flow

import (
	"context"

	"github.com/example/qrpay-gateway/internal/qrlink"
)

// LaunchURIFunc reports the URI the app was launched with, or "" when the app
// was opened normally. It may block (the platform resolves this async).
type LaunchURIFunc func(ctx context.Context) (string, error)

// Resolution is the one-shot async result of resolving the initial flow
// state at startup: pending until the launch URI is known, then ready.
// Resolution failure is absorbed; the flow degrades to a fresh Idle machine
// rather than surfacing an error to the render path.
type Resolution struct {
	router *qrlink.Router
	done   chan struct{}
	m      *Machine
	err    error
}

// ResolveInitial starts resolving the machine the app should boot into. A
// launch URI that routes yields a machine already in Routed (cold start via
// link); anything else, including resolution failure, yields an Idle machine.
// Warm and cold starts converge on the same decoded reference either way.
func ResolveInitial(ctx context.Context, router *qrlink.Router, launch LaunchURIFunc) *Resolution {
	r := &Resolution{router: router, done: make(chan struct{})}
	go func() {
		defer close(r.done)

		uri, err := launch(ctx)
		if err != nil {
			r.err = err
			r.m = New(router)
			return
		}
		match, ok, err := router.Route(uri)
		if err != nil || !ok {
			r.m = New(router)
			return
		}
		r.m = Resume(router, match.Reference)
	}()
	return r
}

// Await blocks until resolution completes and returns the boot machine. The
// returned error is informational only; the machine is always usable.
func (r *Resolution) Await(ctx context.Context) (*Machine, error) {
	select {
	case <-r.done:
		return r.m, r.err
	case <-ctx.Done():
		return New(r.router), ctx.Err()
	}
}
