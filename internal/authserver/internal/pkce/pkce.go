// Package pkce implements Proof Key for Code Exchange (RFC 7636) challenge
// derivation and verification.
package pkce

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	pkgoauth "github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

// Verifier length bounds per RFC 7636 Section 4.1.
const (
	MinVerifierLength = 43
	MaxVerifierLength = 128
)

// Challenge computes the code challenge for a verifier using the given
// method: base64url(sha256(verifier)) without padding for S256, the verifier
// itself for plain.
func Challenge(verifier, method string) (string, error) {
	switch method {
	case pkgoauth.CodeChallengeMethodS256:
		sum := sha256.Sum256([]byte(verifier))
		return base64.RawURLEncoding.EncodeToString(sum[:]), nil
	case pkgoauth.CodeChallengeMethodPlain, "":
		return verifier, nil
	default:
		return "", fmt.Errorf("unsupported code challenge method %q", method)
	}
}

// Verify reports whether the verifier matches the stored challenge under
// the stored method. The comparison is constant-time.
func Verify(verifier, challenge, method string) bool {
	if len(verifier) < MinVerifierLength || len(verifier) > MaxVerifierLength {
		return false
	}

	expected, err := Challenge(verifier, method)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(challenge)) == 1
}
