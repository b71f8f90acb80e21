package mcp

import "encoding/json"

// JSON-RPC methods understood by MCP servers that this client uses.
const (
	MethodInitialize = "initialize"
	MethodToolsList  = "tools/list"
	MethodToolsCall  = "tools/call"
)

const (
	jsonRPCVersion = "2.0"

	// protocolVersion is the MCP revision announced during the handshake.
	// mcp-neo4j-cypher accepts this revision.
	protocolVersion = "2024-11-05"
)

// request is a single JSON-RPC request, serialized as one line on the wire.
type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// response is the envelope the server answers with. ID is a pointer so a
// missing id (a notification, or a malformed reply) is distinguishable from
// id 0.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *uint64         `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// ClientInfo identifies this application during the initialize handshake.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ServerInfo is the server's self-description from the handshake response.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeParams struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ClientInfo      ClientInfo     `json:"clientInfo"`
}

type initializeResult struct {
	ProtocolVersion string     `json:"protocolVersion"`
	ServerInfo      ServerInfo `json:"serverInfo"`
}

type toolsListParams struct {
	Cursor string `json:"cursor,omitempty"`
}

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}
