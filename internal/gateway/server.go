// Package gateway wires the reserve endpoint: HTTP routing, signature
// verification, the decision engine, and the optional store/queue
// collaborators.
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/example/qrpay-gateway/internal/config"
	"github.com/example/qrpay-gateway/internal/queue"
	"github.com/example/qrpay-gateway/internal/reservation"
	"github.com/example/qrpay-gateway/internal/signature"
	"github.com/example/qrpay-gateway/internal/store"
)

const serviceName = "qrpay-gateway"

// OrderRecorder records approved reservations. *store.Reservations
// implements it; tests substitute fakes.
type OrderRecorder interface {
	Record(ctx context.Context, rec store.Record) error
	Get(ctx context.Context, orderID string) (store.Record, error)
}

// OutcomePublisher emits a decision event after every reserve.
// *queue.Publisher implements it.
type OutcomePublisher interface {
	Publish(ctx context.Context, ev queue.OutcomeEvent) error
}

// Server is the gateway HTTP server.
type Server struct {
	cfg      config.Gateway
	log      zerolog.Logger
	verifier *signature.Verifier
	engine   *reservation.Engine
	validate *validator.Validate

	// optional; nil when not configured
	orders OrderRecorder
	events OutcomePublisher

	router *mux.Router
}

// New assembles a Server. orders and events may be nil.
func New(cfg config.Gateway, log zerolog.Logger, verifier *signature.Verifier, orders OrderRecorder, events OutcomePublisher) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log,
		verifier: verifier,
		engine:   &reservation.Engine{AmountLimit: cfg.AmountLimit},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		orders:   orders,
		events:   events,
		router:   mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(metricsMiddleware)

	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":      true,
			"service": serviceName,
			"ts":      time.Now().UTC(),
		})
	}).Methods(http.MethodGet)

	s.router.HandleFunc("/nexus/reserve", s.reserveHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/nexus/orders/{id}", s.orderHandler).Methods(http.MethodGet)
}

// Handler returns the full middleware-wrapped handler, exported for tests.
func (s *Server) Handler() http.Handler {
	return cors.AllowAll().Handler(s.router)
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	server := &http.Server{
		Addr:         s.cfg.HTTPAddr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		s.log.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			s.log.Error().Err(err).Msg("http shutdown")
		}
	}()

	s.log.Info().Str("addr", s.cfg.HTTPAddr).Msg("listening")
	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
