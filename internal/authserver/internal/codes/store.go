// Package codes provides the in-memory authorization code store.
package codes

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/vgupta/flight-booking-mcp/internal/authserver/authcore"
	"github.com/vgupta/flight-booking-mcp/internal/authserver/internal/pkce"
)

// codeByteLength is the entropy of a generated code: 32 bytes = 256 bits,
// base64url-encoded to a 43 character URL-safe string.
const codeByteLength = 32

// Store holds issued authorization codes behind a mutex so that marking a
// code used and handing it back is a single mutually-exclusive operation.
// Two concurrent redemption attempts for the same code can therefore never
// both succeed.
//
// Entries are never deleted; abandoned codes persist for the process
// lifetime. A production system would sweep expired entries.
type Store struct {
	mu    sync.Mutex
	codes map[string]*authcore.AuthorizationCode
	ttl   time.Duration
	now   func() time.Time
}

// NewStore creates a code store. ttl is the code lifetime (600s per the
// OAuth demo configuration). now is injectable for tests; pass nil for
// time.Now.
func NewStore(ttl time.Duration, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		codes: make(map[string]*authcore.AuthorizationCode),
		ttl:   ttl,
		now:   now,
	}
}

// IssueRequest carries the request parameters a new code is bound to.
type IssueRequest struct {
	ClientID            string
	RedirectURI         string
	Scope               string
	CodeChallenge       string
	CodeChallengeMethod string
}

// Issue mints a fresh one-time authorization code bound to the request.
func (s *Store) Issue(req IssueRequest) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate authorization code: %w", err)
	}

	issuedAt := s.now()
	record := &authcore.AuthorizationCode{
		Code:                code,
		ClientID:            req.ClientID,
		RedirectURI:         req.RedirectURI,
		Scope:               req.Scope,
		CodeChallenge:       req.CodeChallenge,
		CodeChallengeMethod: req.CodeChallengeMethod,
		IssuedAt:            issuedAt,
		ExpiresAt:           issuedAt.Add(s.ttl),
		Used:                false,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code] = record

	return code, nil
}

// RedeemRequest carries the token-exchange parameters to validate a code
// against.
type RedeemRequest struct {
	Code         string
	ClientID     string
	RedirectURI  string
	CodeVerifier string
}

// Redeem validates a code against the request and consumes it. The full
// validation sequence runs under the store lock, and the used flag flips
// before the record is returned, so a code is redeemable at most once even
// under concurrent requests.
//
// Each failure mode returns a distinct sentinel from authcore:
// ErrCodeNotFound, ErrCodeExpiredOrUsed, ErrCodeBindingMismatch,
// ErrVerifierRequired, ErrVerifierMismatch.
func (s *Store) Redeem(req RedeemRequest) (*authcore.AuthorizationCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.codes[req.Code]
	if !ok {
		return nil, authcore.ErrCodeNotFound
	}

	if record.Used || s.now().After(record.ExpiresAt) {
		return nil, authcore.ErrCodeExpiredOrUsed
	}

	if record.ClientID != req.ClientID || record.RedirectURI != req.RedirectURI {
		return nil, authcore.ErrCodeBindingMismatch
	}

	if record.CodeChallenge != "" {
		if req.CodeVerifier == "" {
			return nil, authcore.ErrVerifierRequired
		}
		if !pkce.Verify(req.CodeVerifier, record.CodeChallenge, record.CodeChallengeMethod) {
			return nil, authcore.ErrVerifierMismatch
		}
	}

	record.Used = true

	// Return a copy so callers cannot mutate stored state.
	redeemed := *record
	return &redeemed, nil
}

// generateCode returns a URL-safe random string with 256 bits of entropy.
func generateCode() (string, error) {
	buf := make([]byte, codeByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
