// Package mcp provides the Model Context Protocol (MCP) server for the
// flight booking demo, with JSON-RPC 2.0 protocol handling, a tool
// registry, and resource management. The flight tools themselves live in
// the flighttools subpackage.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
)

// Handler routes JSON-RPC 2.0 requests to the protocol methods
// (initialize, tools/list, tools/call, resources/list, resources/read).
type Handler interface {
	// HandleRequest processes one request. Protocol failures are
	// reported through the response's Error field, not the returned
	// error, so a transport can always write a JSON-RPC envelope.
	HandleRequest(ctx context.Context, req *Request) (*Response, error)
}

// Request is a JSON-RPC 2.0 request.
type Request struct {
	// JSONRPC must be "2.0".
	JSONRPC string `json:"jsonrpc"`

	// ID may be a string, a number, or absent for notifications.
	ID any `json:"id,omitempty"`

	// Method is the protocol method to invoke.
	Method string `json:"method"`

	// Params holds method-specific parameters, decoded per method.
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response. Exactly one of Result and Error
// is set.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id,omitempty"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`

	// Cause is the underlying error, kept for errors.Is checks and
	// never serialized.
	Cause error `json:"-"`
}

const (
	// ProtocolVersion is the MCP revision this server speaks.
	ProtocolVersion = "2024-11-05"

	// JSONRPCVersion is the JSON-RPC version used by MCP.
	JSONRPCVersion = "2.0"
)

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// MCP-specific error codes.
const (
	CodeResourceNotFound = -32002
	CodeToolNotFound     = -32003
)

// ToolRegistry manages the tools exposed through tools/list and
// tools/call. Implementations must be safe for concurrent use.
type ToolRegistry interface {
	// RegisterTool adds a tool under name. Registering the same name
	// twice is an error.
	RegisterTool(name string, tool Tool) error

	// GetTool looks up a registered tool by name.
	GetTool(name string) (Tool, error)

	// ListTools returns definitions for every registered tool. The
	// returned slice must not be modified.
	ListTools() []ToolDefinition
}

// Tool is one executable operation, such as searching flights or
// creating a booking.
type Tool interface {
	// Execute runs the tool with the decoded tools/call arguments.
	Execute(ctx context.Context, args map[string]any) (any, error)

	// Definition returns the metadata clients use for discovery.
	Definition() ToolDefinition
}

// ToolDefinition describes a tool for client discovery.
type ToolDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// InputSchema is a JSON Schema object describing the arguments.
	InputSchema map[string]any `json:"inputSchema"`
}

// ResourceRegistry manages the read-only resources exposed through
// resources/list and resources/read. Implementations must be safe for
// concurrent use.
type ResourceRegistry interface {
	// RegisterResource adds a provider under uri. Registering the same
	// URI twice is an error.
	RegisterResource(uri string, provider ResourceProvider) error

	// GetResource looks up a resource by URI and reads its content.
	GetResource(ctx context.Context, uri string) (*Resource, error)

	// ListResources returns definitions for every registered resource.
	// The returned slice must not be modified.
	ListResources() []ResourceDefinition
}

// ResourceProvider serves the content behind one resource URI.
type ResourceProvider interface {
	// Read returns the current content of the resource.
	Read(ctx context.Context) (*Resource, error)

	// Definition returns the metadata clients use for discovery.
	Definition() ResourceDefinition
}

// Resource is the content of a read resource.
type Resource struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

// ResourceDefinition describes a resource for client discovery.
type ResourceDefinition struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// NewError builds an Error with the given code, message, and optional
// data payload.
func NewError(code int, message string, data any) *Error {
	return &Error{Code: code, Message: message, Data: data}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("JSON-RPC error %d: %s (data: %v)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("JSON-RPC error %d: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Validate checks the envelope fields required by JSON-RPC 2.0.
func (r *Request) Validate() error {
	if r.JSONRPC != JSONRPCVersion {
		return ErrInvalidRequest
	}
	if r.Method == "" {
		return ErrInvalidRequest
	}
	return nil
}

// IsError reports whether the response carries an error.
func (r *Response) IsError() bool {
	return r.Error != nil
}
