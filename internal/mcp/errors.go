package mcp

import (
	"errors"
)

// Sentinel errors for the JSON-RPC layer. Handlers map these onto the
// protocol error codes; wrap them with DomainError from internal/errors
// when more context is needed.
var (
	ErrParseError     = errors.New("parse error")
	ErrInvalidRequest = errors.New("invalid request")
	ErrMethodNotFound = errors.New("method not found")
	ErrInvalidParams  = errors.New("invalid params")
	ErrInternalError  = errors.New("internal error")

	// Tool registry failures.
	ErrToolNotFound          = errors.New("tool not found")
	ErrToolAlreadyRegistered = errors.New("tool already registered")
	ErrToolExecutionFailed   = errors.New("tool execution failed")

	// Resource registry failures.
	ErrResourceNotFound          = errors.New("resource not found")
	ErrResourceAlreadyRegistered = errors.New("resource already registered")
	ErrResourceReadFailed        = errors.New("resource read failed")
)
