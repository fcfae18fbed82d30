package authcore

import (
	"errors"
)

// Sentinel errors for authorization server operations.
// These are used for error identification and testing; handlers map them to
// OAuth protocol errors.
var (
	// ErrClientNotFound indicates the client_id is not registered.
	ErrClientNotFound = errors.New("client not found")

	// ErrCodeNotFound indicates the authorization code does not exist.
	ErrCodeNotFound = errors.New("authorization code not found")

	// ErrCodeExpiredOrUsed indicates the code was already redeemed or is
	// past its expiry.
	ErrCodeExpiredOrUsed = errors.New("authorization code expired or used")

	// ErrCodeBindingMismatch indicates the presented client_id or
	// redirect_uri does not match the values bound at issuance.
	ErrCodeBindingMismatch = errors.New("client or redirect URI mismatch")

	// ErrVerifierRequired indicates a PKCE challenge was stored but no
	// code_verifier was presented.
	ErrVerifierRequired = errors.New("code verifier required")

	// ErrVerifierMismatch indicates the presented code_verifier does not
	// match the stored challenge.
	ErrVerifierMismatch = errors.New("invalid code verifier")
)
