// Package signature verifies the detached signature the payment network sends
// with each reserve request. The signature covers the exact raw body bytes as
// received; re-encoding the payload before verifying would break it.
package signature

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"strings"
)

// Verifier checks SHA-256 RSA signatures against public keys resolved through
// an injected KeyProvider.
type Verifier struct {
	keys KeyProvider
}

// NewVerifier returns a Verifier backed by the given provider.
func NewVerifier(keys KeyProvider) *Verifier {
	return &Verifier{keys: keys}
}

// Verify reports whether signatureHeader is a valid detached signature over
// rawBody under the key at keyRef. It never fails loudly: a missing or
// malformed header, an unresolvable key, and a cryptographic mismatch all
// come back as false.
func (v *Verifier) Verify(rawBody []byte, signatureHeader, keyRef string) bool {
	sig, err := base64.StdEncoding.DecodeString(strings.TrimSpace(signatureHeader))
	if err != nil || len(sig) == 0 {
		return false
	}

	pub, err := v.publicKey(keyRef)
	if err != nil {
		return false
	}

	digest := sha256.Sum256(rawBody)
	return rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], sig) == nil
}

func (v *Verifier) publicKey(keyRef string) (*rsa.PublicKey, error) {
	pemBytes, err := v.keys.Resolve(keyRef)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errNotPEM
	}
	// accept both PKIX ("PUBLIC KEY") and PKCS#1 ("RSA PUBLIC KEY") encodings
	if pub, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		if rsaPub, ok := pub.(*rsa.PublicKey); ok {
			return rsaPub, nil
		}
		return nil, errNotRSA
	}
	return x509.ParsePKCS1PublicKey(block.Bytes)
}

var (
	errNotPEM = pemError("no PEM block in key material")
	errNotRSA = pemError("public key is not RSA")
)

type pemError string

func (e pemError) Error() string { return string(e) }
