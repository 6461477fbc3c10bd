package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// verifyTallySignature checks the base64 HMAC-SHA256 digest Tally sends
// in its signature header against the raw request body. An empty
// configured secret disables the check.
func verifyTallySignature(secret []byte, body []byte, signatureHeader string) bool {
	if len(secret) == 0 {
		return true
	}

	provided := strings.TrimSpace(signatureHeader)
	if provided == "" {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(provided))
}
