package issuer

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-signing-secret"

func parseToken(t *testing.T, signed string, opts ...jwt.ParserOption) jwt.MapClaims {
	t.Helper()

	opts = append(opts, jwt.WithValidMethods([]string{"HS256"}))
	token, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, opts...)
	if err != nil {
		t.Fatalf("Failed to parse issued token: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("Claims type = %T, want jwt.MapClaims", token.Claims)
	}
	return claims
}

func TestIssuer_Issue(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	iss := New(testSecret, "http://localhost:8081", "flight-api", time.Hour, func() time.Time { return now })

	signed, err := iss.Issue(map[string]any{
		"sub":       "demo-user",
		"client_id": "web-client",
		"scope":     "read write",
	}, 0)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	claims := parseToken(t, signed, jwt.WithTimeFunc(func() time.Time { return now }))

	if claims["sub"] != "demo-user" {
		t.Errorf("sub = %v, want demo-user", claims["sub"])
	}
	if claims["client_id"] != "web-client" {
		t.Errorf("client_id = %v, want web-client", claims["client_id"])
	}
	if claims["scope"] != "read write" {
		t.Errorf("scope = %v, want read write", claims["scope"])
	}
	if claims["iss"] != "http://localhost:8081" {
		t.Errorf("iss = %v, want http://localhost:8081", claims["iss"])
	}
	if claims["aud"] != "flight-api" {
		t.Errorf("aud = %v, want flight-api", claims["aud"])
	}
	if got := int64(claims["iat"].(float64)); got != now.Unix() {
		t.Errorf("iat = %v, want %v", got, now.Unix())
	}
	if got := int64(claims["exp"].(float64)); got != now.Add(time.Hour).Unix() {
		t.Errorf("exp = %v, want %v", got, now.Add(time.Hour).Unix())
	}
}

func TestIssuer_Issue_CustomTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	iss := New(testSecret, "http://localhost:8081", "flight-api", time.Hour, func() time.Time { return now })

	signed, err := iss.Issue(map[string]any{"sub": "s"}, 5*time.Minute)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	claims := parseToken(t, signed, jwt.WithTimeFunc(func() time.Time { return now }))
	if got := int64(claims["exp"].(float64)); got != now.Add(5*time.Minute).Unix() {
		t.Errorf("exp = %v, want %v", got, now.Add(5*time.Minute).Unix())
	}
}

func TestIssuer_Issue_IdentityClaimsNotOverridable(t *testing.T) {
	t.Parallel()

	iss := New(testSecret, "http://localhost:8081", "flight-api", time.Hour, nil)

	signed, err := iss.Issue(map[string]any{
		"sub": "user",
		"iss": "http://attacker.example.com",
		"aud": "other-api",
	}, 0)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	claims := parseToken(t, signed)
	if claims["iss"] != "http://localhost:8081" {
		t.Errorf("iss = %v, caller must not override issuer identity", claims["iss"])
	}
	if claims["aud"] != "flight-api" {
		t.Errorf("aud = %v, caller must not override audience", claims["aud"])
	}
}

func TestIssuer_Issue_SignatureVerifiable(t *testing.T) {
	t.Parallel()

	iss := New(testSecret, "http://localhost:8081", "flight-api", time.Hour, nil)

	signed, err := iss.Issue(map[string]any{"sub": "user"}, 0)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	// Verification with a different secret must fail.
	_, err = jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte("wrong-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err == nil {
		t.Error("Parse with wrong secret should fail")
	}
}

func TestIssuer_TTL(t *testing.T) {
	t.Parallel()

	iss := New(testSecret, "http://localhost:8081", "flight-api", 42*time.Minute, nil)
	if got := iss.TTL(); got != 42*time.Minute {
		t.Errorf("TTL() = %v, want 42m", got)
	}
}
