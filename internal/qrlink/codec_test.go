package qrlink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	refs := []string{
		"https://example.com/payments/abc123",
		"https://example.com/pay?session=s_01&sig=a+b/c",
		"plain-token",
		"spaces and slashes / and ? and # and %",
		"ünïcode-参照-🎌",
		"",
	}
	for _, ref := range refs {
		got, err := DecodeFromLink(EncodeForLink(ref))
		require.NoError(t, err, "ref %q", ref)
		assert.Equal(t, ref, got)
	}
}

func TestDecodeOnce(t *testing.T) {
	// a doubly-encoded value must come back singly-encoded
	got, err := DecodeFromLink("%2520")
	require.NoError(t, err)
	assert.Equal(t, "%20", got)
}

func TestDecodeMalformed(t *testing.T) {
	for _, in := range []string{"%zz", "abc%2", "%", "100%"} {
		_, err := DecodeFromLink(in)
		assert.ErrorIs(t, err, ErrMalformedReference, "input %q", in)
	}
}
