package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	// ErrMissingInput: one of order id, payment id or signature is empty.
	// No digest is computed in that case.
	ErrMissingInput = errors.New("missing payment details")

	// ErrSecretUnset: the server-side shared secret is not configured.
	// Verification fails closed; this must never be reported as an
	// invalid signature.
	ErrSecretUnset = errors.New("payment secret not configured")

	// ErrSignatureMismatch: the supplied signature does not match the
	// expected digest.
	ErrSignatureMismatch = errors.New("invalid payment signature")
)

// VerifySignature checks the gateway's proof that a payment completed:
// HMAC-SHA256 over "orderID|paymentID" keyed with the shared secret,
// rendered as lowercase hex. The comparison uses hmac.Equal; since the
// compared value is a digest rather than a secret, plain equality would
// also be acceptable, but constant-time costs nothing here.
func VerifySignature(orderID, paymentID, signature, secret string) error {
	if orderID == "" || paymentID == "" || signature == "" {
		return ErrMissingInput
	}
	if secret == "" {
		return ErrSecretUnset
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}

// SignPayload computes the digest the gateway would send for the given
// pair. Used in tests and by local tooling to fabricate valid callbacks.
func SignPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
