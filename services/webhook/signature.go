package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature recomputes the HMAC-SHA256 hex digest of the raw request
// body and compares it to the provider-supplied signature in constant time.
// Fails closed: an empty secret or an empty/missing signature always
// rejects. The body must be the exact bytes the provider signed, untouched
// by any body-parsing middleware.
func VerifySignature(body []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// ComputeSignature returns the hex HMAC-SHA256 digest of body under secret
func ComputeSignature(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
