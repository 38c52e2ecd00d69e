// cmd/gateway/main.go
package main

import (
	"context"
	"time"

	"github.com/example/qrpay-gateway/internal/config"
	"github.com/example/qrpay-gateway/internal/gateway"
	"github.com/example/qrpay-gateway/internal/queue"
	"github.com/example/qrpay-gateway/internal/signature"
	"github.com/example/qrpay-gateway/internal/store"
	"github.com/example/qrpay-gateway/pkg/logger"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New("qrpay-gateway")

	verifier := signature.NewVerifier(signature.NewFileKeys())

	var orders gateway.OrderRecorder
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		reservations, err := store.Open(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("open reservation store")
		}
		defer reservations.Close()
		orders = reservations
		log.Info().Msg("reservation store enabled")
	}

	var events gateway.OutcomePublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher := queue.New(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer publisher.Close()
		events = publisher
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("outcome events enabled")
	}

	srv := gateway.New(cfg, log, verifier, orders, events)
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
