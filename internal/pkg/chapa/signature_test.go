package chapa

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSignature(t *testing.T) {
	payload := []byte(`{"tx_ref":"abc","status":"success"}`)

	sig := ComputeSignature(payload, "s3cret")

	// Independently computed HMAC-SHA256 hex digest.
	assert.Equal(t, "92e39fb3ba132c8974b871bd2fd7d40f86a8bb9048b79bf3f426331efa1f1b13", sig)
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"tx_ref":"abc","status":"success"}`)
	good := ComputeSignature(payload, "s3cret")

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, VerifySignature(payload, good, "s3cret"))
	})

	t.Run("wrong signature", func(t *testing.T) {
		err := VerifySignature(payload, "deadbeef", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("wrong secret", func(t *testing.T) {
		err := VerifySignature(payload, good, "other")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("tampered body", func(t *testing.T) {
		err := VerifySignature([]byte(`{"tx_ref":"abc","status":"failed"}`), good, "s3cret")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("no secret configured", func(t *testing.T) {
		err := VerifySignature(payload, good, "")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestSignatureFromHeader(t *testing.T) {
	h := http.Header{}
	assert.Empty(t, SignatureFromHeader(h))

	h.Set("x-chapa-signature", "alt")
	assert.Equal(t, "alt", SignatureFromHeader(h))

	// Canonical header wins when both are present.
	h.Set("Chapa-Signature", "main")
	assert.Equal(t, "main", SignatureFromHeader(h))
}
