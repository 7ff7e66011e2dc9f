package protocol

import "encoding/json"

// Request represents a minimal JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response models a JSON-RPC 2.0 response. ID always echoes the request id,
// including null, so it carries no omitempty.
type Response struct {
	JSONRPC string         `json:"jsonrpc"`
	Result  any            `json:"result,omitempty"`
	Error   *ResponseError `json:"error,omitempty"`
	ID      any            `json:"id"`
}

// ResponseError holds JSON-RPC error data.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON-RPC error codes used by the dispatcher.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeToolNotFound   = -32000
)

// NewResponse builds a success envelope for the given id.
func NewResponse(id, result any) Response {
	return Response{JSONRPC: "2.0", ID: id, Result: result}
}

// NewError builds an error envelope for the given id.
func NewError(id any, code int, message string) Response {
	return Response{JSONRPC: "2.0", ID: id, Error: &ResponseError{Code: code, Message: message}}
}

// ToolDescriptor describes a tool exposed for discovery.
type ToolDescriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  *JSONSchema `json:"parameters,omitempty"`
}

// JSONSchema is a minimal subset to describe tool parameter shapes.
type JSONSchema struct {
	Type                 string                `json:"type,omitempty"`
	Properties           map[string]JSONSchema `json:"properties,omitempty"`
	Required             []string              `json:"required,omitempty"`
	Description          string                `json:"description,omitempty"`
	AdditionalProperties any                   `json:"additionalProperties,omitempty"`
}

// ListToolsResult is the payload for listTools / tools/list.
type ListToolsResult struct {
	Tools []ToolDescriptor `json:"tools"`
}

// ListResourcesResult is the payload for listResources / resources/list.
type ListResourcesResult struct {
	Resources []any `json:"resources"`
}

// ListPromptsResult is the payload for listPrompts / prompts/list.
type ListPromptsResult struct {
	Prompts []any `json:"prompts"`
}

// CallParams represents parameters for tools/call. Older clients nest the
// name and arguments under a "tool" object; both spellings are accepted.
type CallParams struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"arguments,omitempty"`
	Tool *NestedCall     `json:"tool,omitempty"`
}

// NestedCall is the legacy nested form of tools/call parameters.
type NestedCall struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"arguments,omitempty"`
}

// ResolvedName returns the tool name, preferring the flat form.
func (p CallParams) ResolvedName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Tool != nil {
		return p.Tool.Name
	}
	return ""
}

// ResolvedArgs returns the arguments, defaulting to an empty object.
func (p CallParams) ResolvedArgs() json.RawMessage {
	if len(p.Args) > 0 {
		return p.Args
	}
	if p.Tool != nil && len(p.Tool.Args) > 0 {
		return p.Tool.Args
	}
	return json.RawMessage(`{}`)
}

// CallResult is the payload for a successful tool invocation.
type CallResult struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// InitializeResult is the payload for initialize and its aliases.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
}

// Capabilities flags what the mock server supports.
type Capabilities struct {
	SupportsToolCalls bool `json:"supportsToolCalls"`
	SupportsStreams   bool `json:"supportsStreams"`
}

// ServerInfo identifies the server in the handshake.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
