package mcp

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/ferrolab/mcp-mockserver/internal/protocol"
	"github.com/ferrolab/mcp-mockserver/internal/version"
)

// ServerName is reported in the initialize handshake.
const ServerName = "mcp-mockserver"

// ProtocolVersion is the protocol revision the mock advertises.
const ProtocolVersion = "2024-11-05"

// handlerFunc processes the params of one dispatched request.
type handlerFunc func(ctx context.Context, params json.RawMessage) (any, *protocol.ResponseError)

// methodAliases maps every accepted alias to its canonical method name.
var methodAliases = map[string]string{
	"tools/list":     "listTools",
	"resources/list": "listResources",
	"prompts/list":   "listPrompts",
	"callTool":       "tools/call",
	"init":           "initialize",
	"handshake":      "initialize",
}

// noopMethods all resolve to a shared handler returning an empty object.
var noopMethods = []string{"ping", "serverInfo", "getMetadata", "status"}

// Server dispatches JSON-RPC requests against a toolbox. The method table is
// built once in NewServer, with aliases and the noop set pre-resolved, so the
// accepted-method set is a plain map lookup.
type Server struct {
	toolbox *Toolbox
	methods map[string]handlerFunc
}

// NewServer wires a toolbox into a dispatcher.
func NewServer(tb *Toolbox) *Server {
	s := &Server{toolbox: tb, methods: make(map[string]handlerFunc)}

	s.methods["listTools"] = s.handleListTools
	s.methods["listResources"] = s.handleListResources
	s.methods["listPrompts"] = s.handleListPrompts
	s.methods["tools/call"] = s.handleCallTool
	s.methods["initialize"] = s.handleInitialize
	for _, m := range noopMethods {
		s.methods[m] = handleNoop
	}
	for alias, canonical := range methodAliases {
		s.methods[alias] = s.methods[canonical]
	}
	return s
}

// Methods returns the sorted set of accepted method names.
func (s *Server) Methods() []string {
	names := make([]string, 0, len(s.methods))
	for m := range s.methods {
		names = append(names, m)
	}
	sort.Strings(names)
	return names
}

// Handle routes a single request. The response id always echoes the request
// id unchanged, null included. Match on method is exact and case-sensitive.
func (s *Server) Handle(ctx context.Context, req protocol.Request) protocol.Response {
	handler, ok := s.methods[req.Method]
	if !ok {
		return protocol.NewError(req.ID, protocol.CodeMethodNotFound, "Method not found")
	}

	result, rpcErr := handler(ctx, req.Params)
	if rpcErr != nil {
		return protocol.Response{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
	}
	return protocol.NewResponse(req.ID, result)
}

func (s *Server) handleListTools(_ context.Context, _ json.RawMessage) (any, *protocol.ResponseError) {
	return protocol.ListToolsResult{Tools: s.toolbox.Describe()}, nil
}

func (s *Server) handleListResources(_ context.Context, _ json.RawMessage) (any, *protocol.ResponseError) {
	return protocol.ListResourcesResult{Resources: []any{}}, nil
}

func (s *Server) handleListPrompts(_ context.Context, _ json.RawMessage) (any, *protocol.ResponseError) {
	return protocol.ListPromptsResult{Prompts: []any{}}, nil
}

func (s *Server) handleCallTool(ctx context.Context, raw json.RawMessage) (any, *protocol.ResponseError) {
	var params protocol.CallParams
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, &protocol.ResponseError{Code: protocol.CodeInvalidParams, Message: "invalid params"}
		}
	}

	name := params.ResolvedName()
	if name == "" {
		return nil, &protocol.ResponseError{Code: protocol.CodeInvalidParams, Message: "Missing tool name"}
	}

	result, rpcErr := s.toolbox.Call(ctx, name, params.ResolvedArgs())
	if rpcErr != nil {
		return nil, rpcErr
	}
	return result, nil
}

func (s *Server) handleInitialize(_ context.Context, _ json.RawMessage) (any, *protocol.ResponseError) {
	return protocol.InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: protocol.Capabilities{
			SupportsToolCalls: true,
			SupportsStreams:   false,
		},
		ServerInfo: protocol.ServerInfo{
			Name:    ServerName,
			Version: version.Get().Version,
		},
	}, nil
}

func handleNoop(_ context.Context, _ json.RawMessage) (any, *protocol.ResponseError) {
	return map[string]any{}, nil
}
