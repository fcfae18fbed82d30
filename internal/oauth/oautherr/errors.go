// Package oautherr provides OAuth error constructors.
// This package is separate from internal/oauth to avoid import cycles when
// internal packages need to create OAuth errors.
package oautherr

import (
	ierrors "github.com/vgupta/flight-booking-mcp/internal/errors"
)

// Domain identifier for OAuth errors.
const domainOAuth = "oauth"

// NewInvalidTokenError creates a DomainError for a token failing signature,
// issuer, audience, or structural validation.
func NewInvalidTokenError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainOAuth, op, ierrors.ErrInvalidToken, err).
		WithContext("oauth_error", ierrors.CodeInvalidToken)
}

// NewTokenExpiredError creates a DomainError for an expired token.
func NewTokenExpiredError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainOAuth, op, ierrors.ErrExpiredToken, err).
		WithContext("oauth_error", ierrors.CodeInvalidToken).
		WithContext("reason", "token_expired")
}

// NewMissingAuthHeaderError creates a DomainError for an absent
// Authorization header.
func NewMissingAuthHeaderError(op string) *ierrors.DomainError {
	return ierrors.New(domainOAuth, op, ierrors.ErrMissingAuthHeader, nil).
		WithContext("oauth_error", ierrors.CodeInvalidRequest)
}

// NewMalformedAuthHeaderError creates a DomainError for an Authorization
// header that does not carry a Bearer token.
func NewMalformedAuthHeaderError(op string) *ierrors.DomainError {
	return ierrors.New(domainOAuth, op, ierrors.ErrMalformedAuthHeader, nil).
		WithContext("oauth_error", ierrors.CodeInvalidRequest)
}

// NewInsufficientScopeError creates a DomainError for a token lacking
// required scopes.
func NewInsufficientScopeError(op string, required []string) *ierrors.DomainError {
	return ierrors.New(domainOAuth, op, ierrors.ErrInsufficientScope, nil).
		WithContext("oauth_error", ierrors.CodeInsufficientScope).
		WithContext("required_scopes", required)
}
