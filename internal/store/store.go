// Package store persists approved reservations in Postgres. The decision
// core stays stateless; the store only records outcomes after the fact and
// backs the order-lookup endpoint.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no reservation exists under an order id.
var ErrNotFound = errors.New("store: reservation not found")

// Record is one approved reservation.
type Record struct {
	OrderID   string    `json:"orderId"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	Authentic bool      `json:"authentic"`
	CreatedAt time.Time `json:"createdAt"`
}

// Reservations is a pgxpool-backed reservation log.
type Reservations struct {
	pool *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS reservations (
	order_id   uuid PRIMARY KEY,
	amount     bigint NOT NULL,
	currency   text NOT NULL DEFAULT '',
	mode       text NOT NULL DEFAULT '',
	authentic  boolean NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now()
)`

// Open connects to databaseURL and ensures the reservations table exists.
func Open(ctx context.Context, databaseURL string) (*Reservations, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure reservations table: %w", err)
	}
	return &Reservations{pool: pool}, nil
}

// Record inserts an approved reservation.
func (s *Reservations) Record(ctx context.Context, rec Record) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO reservations (order_id, amount, currency, mode, authentic, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.OrderID, rec.Amount, rec.Currency, rec.Mode, rec.Authentic, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reservation %s: %w", rec.OrderID, err)
	}
	return nil
}

// Get fetches a reservation by order id.
func (s *Reservations) Get(ctx context.Context, orderID string) (Record, error) {
	var rec Record
	err := s.pool.QueryRow(ctx,
		`SELECT order_id, amount, currency, mode, authentic, created_at
		 FROM reservations WHERE order_id = $1`,
		orderID,
	).Scan(&rec.OrderID, &rec.Amount, &rec.Currency, &rec.Mode, &rec.Authentic, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("select reservation %s: %w", orderID, err)
	}
	return rec, nil
}

// Close releases the pool.
func (s *Reservations) Close() {
	s.pool.Close()
}
