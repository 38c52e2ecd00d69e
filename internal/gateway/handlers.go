package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	m "github.com/example/qrpay-gateway/pkg/metrics"

	"github.com/example/qrpay-gateway/internal/queue"
	"github.com/example/qrpay-gateway/internal/reservation"
	"github.com/example/qrpay-gateway/internal/store"
)

const maxBodyBytes = 1 << 20

// reserveHandler is the reserve-payment endpoint. Verification runs over the
// exact bytes read off the wire, before any JSON parsing touches them.
func (s *Server) reserveHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	rawBody, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		rawBody = nil
	}

	verified := s.verifier.Verify(rawBody, r.Header.Get(s.cfg.SignatureHeader), s.cfg.PublicKeyPath)

	// parse up front so declines still log and publish what was asked for;
	// whatever decoded before a failure stays available for observability
	var req reservation.Request
	parseErr := json.Unmarshal(rawBody, &req)

	var res reservation.Result
	switch {
	case s.cfg.RequireSig && !verified:
		res = reservation.DeclineUnverified()
	case parseErr != nil || s.validate.Struct(req) != nil:
		// a decode failure can leave req partially filled (an amount that
		// overflows int64 decodes as zero); never hand that to the engine
		res = reservation.Result{
			Reason:    reservation.KindUnderMaintenance,
			Message:   "invalid reservation request",
			Authentic: verified,
		}
	default:
		res = s.engine.Decide(req, verified)
	}

	status, env := reservation.BuildEnvelope(res)

	s.recordAndPublish(r, req, res)

	outcome := "DECLINED"
	if res.Approved {
		outcome = "APPROVED"
	}
	m.IncReserve(outcome, string(res.Reason), res.Authentic)
	m.ObserveReserve(outcome, time.Since(start).Seconds())

	s.log.Info().
		Str("outcome", outcome).
		Str("error_type", string(res.Reason)).
		Bool("authentic", res.Authentic).
		Int64("amount", req.Payment.Amount).
		Msg("reserve decision")

	writeJSON(w, status, env)
}

// recordAndPublish feeds the optional collaborators; their failures are
// logged, never surfaced to the caller.
func (s *Server) recordAndPublish(r *http.Request, req reservation.Request, res reservation.Result) {
	if s.orders == nil && s.events == nil {
		return
	}
	ctx, cancel := contextFor(r)
	defer cancel()

	if s.orders != nil && res.Approved {
		rec := store.Record{
			OrderID:   res.OrderID,
			Amount:    req.Payment.Amount,
			Currency:  req.Payment.Currency,
			Mode:      req.Mode,
			Authentic: res.Authentic,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.orders.Record(ctx, rec); err != nil {
			s.log.Error().Err(err).Str("order_id", res.OrderID).Msg("record reservation")
		}
	}

	if s.events != nil {
		outcome := "DECLINED"
		if res.Approved {
			outcome = "APPROVED"
		}
		ev := queue.OutcomeEvent{
			OrderID:   res.OrderID,
			Outcome:   outcome,
			ErrorType: string(res.Reason),
			Amount:    req.Payment.Amount,
			Mode:      req.Mode,
			Authentic: res.Authentic,
		}
		if err := s.events.Publish(ctx, ev); err != nil {
			s.log.Error().Err(err).Msg("publish outcome event")
		}
	}
}

// orderHandler looks up a recorded reservation by order id.
func (s *Server) orderHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if s.orders == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   map[string]string{"type": "not_found", "message": "order lookup is not enabled"},
		})
		return
	}

	rec, err := s.orders.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   map[string]string{"type": "not_found", "message": "unknown order id"},
		})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("order_id", id).Msg("order lookup")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   map[string]string{"type": "internal", "message": "order lookup failed"},
		})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
