// Package mcp implements a minimal Model Context Protocol client speaking
// newline-delimited JSON-RPC to a server child process over stdio. It covers
// the session handshake, tool discovery and tool invocation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	globalconfig "noa/config"
)

const (
	clientName    = "noa"
	clientVersion = "1.0.0"
)

// Client drives one MCP session over a Transport. Requests are strictly
// sequential: one request on the wire, one response read back, matched by id.
type Client struct {
	transport Transport

	idCounter   atomic.Uint64
	mu          sync.Mutex
	initialized atomic.Bool

	serverInfo ServerInfo
	tools      []mcptypes.Tool
}

// NewClient wraps a transport. The session is not usable until Initialize
// completes.
func NewClient(transport Transport) *Client {
	return &Client{transport: transport}
}

// Initialize performs the session handshake and discovers the server's tools.
// On failure the returned error is an *InitializationError naming the stage;
// the transport is left to the caller to shut down.
func (c *Client) Initialize(ctx context.Context) error {
	params := initializeParams{
		ProtocolVersion: protocolVersion,
		Capabilities:    map[string]any{},
		ClientInfo:      ClientInfo{Name: clientName, Version: clientVersion},
	}

	var result initializeResult
	if err := c.call(ctx, MethodInitialize, params, &result); err != nil {
		return &InitializationError{Stage: "handshake", Err: err}
	}
	c.serverInfo = result.ServerInfo

	tools, err := c.listTools(ctx)
	if err != nil {
		return &InitializationError{Stage: "discovery", Err: err}
	}
	c.tools = tools

	c.initialized.Store(true)
	if globalconfig.DebugLog != nil {
		globalconfig.DebugLog.Printf("[MCP] initialized against %s %s, %d tools",
			c.serverInfo.Name, c.serverInfo.Version, len(c.tools))
	}
	return nil
}

// listTools walks tools/list, following pagination cursors until the server
// stops returning one.
func (c *Client) listTools(ctx context.Context) ([]mcptypes.Tool, error) {
	var (
		tools  []mcptypes.Tool
		cursor string
		seen   bool
	)
	for {
		var result struct {
			Tools      *[]mcptypes.Tool `json:"tools"`
			NextCursor string           `json:"nextCursor"`
		}
		if err := c.call(ctx, MethodToolsList, toolsListParams{Cursor: cursor}, &result); err != nil {
			return nil, err
		}
		if result.Tools == nil {
			if !seen {
				return nil, fmt.Errorf("response carries no tool list")
			}
		} else {
			seen = true
			tools = append(tools, *result.Tools...)
		}
		if result.NextCursor == "" {
			return tools, nil
		}
		cursor = result.NextCursor
	}
}

// Invoke calls one tool and returns the server's result verbatim. A server
// error payload comes back as a *ToolError; the session stays usable.
// Transport or protocol failures are fatal to the session.
func (c *Client) Invoke(ctx context.Context, name string, arguments map[string]any) (json.RawMessage, error) {
	if !c.initialized.Load() {
		return nil, ErrNotInitialized
	}
	if arguments == nil {
		arguments = map[string]any{}
	}

	var result json.RawMessage
	err := c.call(ctx, MethodToolsCall, toolsCallParams{Name: name, Arguments: arguments}, &result)
	if err != nil {
		if rpcErr, ok := err.(*RPCError); ok {
			return nil, &ToolError{Tool: name, RPC: rpcErr}
		}
		return nil, err
	}
	return result, nil
}

// Tools returns the catalog discovered during Initialize.
func (c *Client) Tools() ([]mcptypes.Tool, error) {
	if !c.initialized.Load() {
		return nil, ErrNotInitialized
	}
	out := make([]mcptypes.Tool, len(c.tools))
	copy(out, c.tools)
	return out, nil
}

// ServerInfo reports the server identity from the handshake.
func (c *Client) ServerInfo() ServerInfo {
	return c.serverInfo
}

// Close shuts the transport down, terminating the server process. Idempotent.
func (c *Client) Close() error {
	return c.transport.Shutdown()
}

// call sends one request and reads exactly one response line. The response id
// must match the request id; anything else means the framing contract is
// broken and the session cannot be trusted, so it surfaces as ErrProtocol.
func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	id := c.idCounter.Add(1)
	payload, err := json.Marshal(request{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", method, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if globalconfig.DebugLog != nil {
		globalconfig.DebugLog.Printf("[MCP] -> %s", payload)
	}
	if err := c.transport.Send(ctx, payload); err != nil {
		return err
	}

	line, err := c.transport.ReceiveLine(ctx)
	if err != nil {
		return err
	}
	if globalconfig.DebugLog != nil {
		globalconfig.DebugLog.Printf("[MCP] <- %s", line)
	}

	var resp response
	if err := json.Unmarshal(line, &resp); err != nil {
		return fmt.Errorf("%w: undecodable response: %v", ErrProtocol, err)
	}
	if resp.ID == nil || *resp.ID != id {
		return fmt.Errorf("%w: response id does not match request id %d", ErrProtocol, id)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if out != nil && resp.Result != nil {
		if err := json.Unmarshal(resp.Result, out); err != nil {
			return fmt.Errorf("%w: undecodable %s result: %v", ErrProtocol, method, err)
		}
	}
	return nil
}
