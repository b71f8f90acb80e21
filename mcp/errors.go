package mcp

import (
	"encoding/json"
	"fmt"
)

var (
	// ErrTransportClosed reports that the child process is gone: its stdin
	// pipe rejected a write, its stdout reached EOF, or Shutdown already ran.
	ErrTransportClosed = fmt.Errorf("mcp: transport closed")

	// ErrProtocol reports a violated wire contract, such as a response whose
	// id does not match the request. The session is unusable afterwards.
	ErrProtocol = fmt.Errorf("mcp: protocol violation")

	// ErrNotInitialized reports use of the client before Initialize succeeded.
	ErrNotInitialized = fmt.Errorf("mcp: client not initialized")
)

// InitializationError wraps a failure during session establishment and names
// the stage that failed.
type InitializationError struct {
	Stage string // "handshake" or "discovery"
	Err   error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("mcp: initialization failed during %s: %v", e.Stage, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// RPCError is the error object from a JSON-RPC response.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("mcp: server error %d: %s", e.Code, e.Message)
}

// ToolError reports that the server answered a tool invocation with an error
// payload. It is recoverable: the session and child process remain healthy,
// only this invocation failed.
type ToolError struct {
	Tool string
	RPC  *RPCError
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("mcp: tool %q failed: %s (code %d)", e.Tool, e.RPC.Message, e.RPC.Code)
}

func (e *ToolError) Unwrap() error { return e.RPC }
