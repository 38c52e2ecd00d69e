// cmd/payclient/main.go
//
// Demo client: walks one payment flow end to end against a running gateway.
// Takes the deep link a merchant QR would carry, routes it through the flow
// machine, submits the reserve request, and confirms on success.
package main

import (
	"bytes"
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/example/qrpay-gateway/internal/flow"
	"github.com/example/qrpay-gateway/internal/qrlink"
	"github.com/example/qrpay-gateway/internal/reservation"
	"github.com/example/qrpay-gateway/pkg/logger"
)

func main() {
	var (
		gatewayURL = flag.String("gateway", "http://localhost:8080", "gateway base URL")
		scheme     = flag.String("scheme", "komoju-demo", "registered deep link scheme")
		link       = flag.String("link", "", "deep link URI (default: built from -ref)")
		ref        = flag.String("ref", "https://example.com/payments/demo", "payment reference to encode when -link is empty")
		amount     = flag.Int64("amount", 5000, "amount in minor units")
		mode       = flag.String("mode", "test", "payment mode")
		signKey    = flag.String("sign-key", "", "PEM RSA private key; when set the request is signed")
		header     = flag.String("signature-header", "nexus-signature", "signature header name")
	)
	flag.Parse()

	log := logger.New("payclient")

	uri := *link
	if uri == "" {
		uri = qrlink.BuildDeepLink(*scheme, *ref)
	}

	router := qrlink.NewRouter(*scheme)

	// cold start directly from the link, same as the app being launched by it
	res := flow.ResolveInitial(context.Background(), router, func(context.Context) (string, error) {
		return uri, nil
	})
	m, err := res.Await(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("initial state resolution degraded")
	}
	if m.State() != flow.StateRouted {
		log.Fatal().Str("uri", uri).Msg("link did not route")
	}
	log.Info().Str("reference", m.Reference()).Msg("routed")

	if err := m.Advance(flow.SubmitReservation{}); err != nil {
		log.Fatal().Err(err).Msg("submit")
	}

	env, err := reserve(*gatewayURL, *header, *signKey, reservation.Request{
		Type: "payment.create",
		Mode: *mode,
		Payment: reservation.Payment{
			Amount: *amount,
		},
	})
	if err != nil {
		_ = m.Advance(flow.FlowFailed{Message: err.Error()})
		log.Fatal().Err(err).Msg("reserve call")
	}

	if err := m.Advance(flow.EnvelopeReceived{Envelope: env}); err != nil {
		log.Fatal().Err(err).Msg("apply envelope")
	}

	switch m.State() {
	case flow.StateConfirmed:
		_ = m.Advance(flow.UserConfirmed{})
		log.Info().
			Str("order_id", m.OrderID()).
			Bool("authentic", env.Authentic).
			Str("state", m.State().String()).
			Msg("payment succeeded")
	default:
		log.Error().
			Str("message", m.FailureMessage()).
			Bool("authentic", env.Authentic).
			Msg("payment declined")
		os.Exit(1)
	}
}

func reserve(baseURL, header, signKeyPath string, req reservation.Request) (reservation.Envelope, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return reservation.Envelope{}, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, baseURL+"/nexus/reserve", bytes.NewReader(body))
	if err != nil {
		return reservation.Envelope{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if signKeyPath != "" {
		sig, err := signBody(signKeyPath, body)
		if err != nil {
			return reservation.Envelope{}, fmt.Errorf("sign request: %w", err)
		}
		httpReq.Header.Set(header, sig)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return reservation.Envelope{}, err
	}
	defer resp.Body.Close()

	var env reservation.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return reservation.Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}

func signBody(keyPath string, body []byte) (string, error) {
	pemBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return "", err
	}
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return "", fmt.Errorf("no PEM block in %s", keyPath)
	}

	var key *rsa.PrivateKey
	if k, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		key = k
	} else if k, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := k.(*rsa.PrivateKey)
		if !ok {
			return "", fmt.Errorf("private key in %s is not RSA", keyPath)
		}
		key = rsaKey
	} else {
		return "", fmt.Errorf("unsupported private key in %s", keyPath)
	}

	digest := sha256.Sum256(body)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}
