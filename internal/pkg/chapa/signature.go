package chapa

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
)

var (
	ErrInvalidSignature = errors.New("webhook signature mismatch")
	ErrNotConfigured    = errors.New("webhook secret not configured")
)

// Header names Chapa uses for the webhook signature.
const (
	SignatureHeader    = "Chapa-Signature"
	SignatureHeaderAlt = "x-chapa-signature"
)

// ComputeSignature returns the hex HMAC-SHA256 of body under secret.
func ComputeSignature(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the received signature against the raw request
// body in constant time. The body must be the exact bytes Chapa sent,
// before any JSON decoding.
func VerifySignature(body []byte, signature, secret string) error {
	if secret == "" {
		return ErrNotConfigured
	}
	expected := ComputeSignature(body, secret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// SignatureFromHeader extracts the signature from either header variant.
func SignatureFromHeader(h http.Header) string {
	if sig := h.Get(SignatureHeader); sig != "" {
		return sig
	}
	return h.Get(SignatureHeaderAlt)
}
