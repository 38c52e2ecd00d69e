// Package config reads process configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Gateway holds everything the gateway binary needs.
type Gateway struct {
	HTTPAddr        string
	Scheme          string
	SignatureHeader string
	PublicKeyPath   string
	AmountLimit     int64
	RequireSig      bool

	// optional collaborators; empty means disabled
	DatabaseURL  string
	KafkaBrokers []string
	KafkaTopic   string
}

// FromEnv builds a Gateway config, falling back to the demo defaults.
func FromEnv() Gateway {
	return Gateway{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		Scheme:          getenv("GATEWAY_SCHEME", "komoju-demo"),
		SignatureHeader: getenv("GATEWAY_SIGNATURE_HEADER", "nexus-signature"),
		PublicKeyPath:   getenv("GATEWAY_PUBKEY_PATH", "./keys/komoju-pub.pem"),
		AmountLimit:     getenvInt64("GATEWAY_AMOUNT_LIMIT", 20000),
		RequireSig:      getenvBool("GATEWAY_REQUIRE_SIGNATURE", false),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		KafkaBrokers:    splitList(getenv("KAFKA_BROKERS", "")),
		KafkaTopic:      getenv("KAFKA_TOPIC", "reservations.outcome"),
	}
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt64(k string, d int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
