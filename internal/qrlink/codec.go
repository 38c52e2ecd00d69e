// Package qrlink handles the payment reference carried inside merchant QR
// payloads and app deep links: percent-encoding for the link segment and
// routing of incoming URIs against the registered link grammar.
package qrlink

import (
	"errors"
	"net/url"
)

// ErrMalformedReference is returned when a link segment is not valid
// percent-encoding and cannot be decoded into a payment reference.
var ErrMalformedReference = errors.New("qrlink: malformed payment reference")

// EncodeForLink percent-encodes a payment reference so it can travel as a
// single deep-link path segment. The reference itself is opaque; nothing is
// assumed about its internal structure.
func EncodeForLink(ref string) string {
	return url.PathEscape(ref)
}

// DecodeFromLink reverses EncodeForLink. Decoding happens exactly once, so a
// doubly-encoded input comes back singly-encoded rather than fully decoded.
func DecodeFromLink(encoded string) (string, error) {
	ref, err := url.PathUnescape(encoded)
	if err != nil {
		return "", ErrMalformedReference
	}
	return ref, nil
}
