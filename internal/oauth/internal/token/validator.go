package token

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vgupta/flight-booking-mcp/internal/oauth/oautherr"
)

// TokenClaims represents validated JWT claims from an access token.
type TokenClaims struct {
	Subject   string
	ClientID  string
	Issuer    string
	Audience  []string
	Scope     string
	Scopes    []string
	Resource  string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Validator validates access tokens signed with the shared symmetric secret.
type Validator struct {
	secret    []byte
	issuer    string
	audience  string
	clockSkew time.Duration
	now       func() time.Time
}

// NewValidator creates a token validator. now is injectable for tests; pass
// nil for time.Now.
func NewValidator(secret []byte, issuer, audience string, clockSkew time.Duration, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{
		secret:    secret,
		issuer:    issuer,
		audience:  audience,
		clockSkew: clockSkew,
		now:       now,
	}
}

// ValidateToken decodes and verifies the signature, issuer, and audience in
// one parse, then re-checks expiry against the clock. Signature verification
// already enforces exp, but the explicit check guards against parser leeway
// wider than the intended skew.
func (v *Validator) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	parsed, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.clockSkew),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, oautherr.NewTokenExpiredError("ValidateToken", err)
		}
		return nil, oautherr.NewInvalidTokenError("ValidateToken", err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, oautherr.NewInvalidTokenError("ValidateToken", fmt.Errorf("invalid claims type"))
	}

	claims, err := extractClaims(mapClaims)
	if err != nil {
		return nil, err
	}

	if v.now().Add(-v.clockSkew).After(claims.ExpiresAt) {
		return nil, oautherr.NewTokenExpiredError("ValidateToken", fmt.Errorf("token expired at %v", claims.ExpiresAt))
	}

	return claims, nil
}

// extractClaims maps JWT claims into TokenClaims.
func extractClaims(mapClaims jwt.MapClaims) (*TokenClaims, error) {
	claims := &TokenClaims{}

	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return nil, oautherr.NewInvalidTokenError("extractClaims", fmt.Errorf("missing sub claim"))
	}
	claims.Subject = sub

	iss, err := mapClaims.GetIssuer()
	if err != nil || iss == "" {
		return nil, oautherr.NewInvalidTokenError("extractClaims", fmt.Errorf("missing iss claim"))
	}
	claims.Issuer = iss

	aud, err := mapClaims.GetAudience()
	if err != nil || len(aud) == 0 {
		return nil, oautherr.NewInvalidTokenError("extractClaims", fmt.Errorf("missing aud claim"))
	}
	claims.Audience = aud

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, oautherr.NewInvalidTokenError("extractClaims", fmt.Errorf("missing exp claim"))
	}
	claims.ExpiresAt = exp.Time

	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}

	if clientID, ok := mapClaims["client_id"].(string); ok {
		claims.ClientID = clientID
	}
	if resource, ok := mapClaims["resource"].(string); ok {
		claims.Resource = resource
	}
	if scope, ok := mapClaims["scope"].(string); ok {
		claims.Scope = scope
		claims.Scopes = strings.Fields(scope)
	}

	return claims, nil
}
