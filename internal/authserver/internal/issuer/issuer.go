// Package issuer builds and signs access tokens.
package issuer

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs JWT access tokens with a single shared symmetric secret.
// This is a deliberate demo simplification; production systems should use
// asymmetric signing with key rotation.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// New creates a token issuer. ttl is the default token lifetime applied
// when Issue is called with a zero ttl. now is injectable for tests; pass
// nil for time.Now.
func New(secret, issuerURL, audience string, ttl time.Duration, now func() time.Time) *Issuer {
	if now == nil {
		now = time.Now
	}
	return &Issuer{
		secret:   []byte(secret),
		issuer:   issuerURL,
		audience: audience,
		ttl:      ttl,
		now:      now,
	}
}

// Issue signs a token carrying the given claims. The iat, exp, iss, and aud
// claims are always injected from the server identity, overwriting any
// caller-supplied values.
func (i *Issuer) Issue(claims map[string]any, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = i.ttl
	}

	now := i.now()
	mapClaims := make(jwt.MapClaims, len(claims)+4)
	for key, value := range claims {
		mapClaims[key] = value
	}
	mapClaims["iat"] = now.Unix()
	mapClaims["exp"] = now.Add(ttl).Unix()
	mapClaims["iss"] = i.issuer
	mapClaims["aud"] = i.audience

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// TTL returns the default token lifetime, used to populate expires_in.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
