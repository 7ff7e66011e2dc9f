package mcp

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/ferrolab/mcp-mockserver/internal/protocol"
	"github.com/ferrolab/mcp-mockserver/internal/tools"
)

func newTestServer() *Server {
	return NewServer(NewToolbox(tools.Echo()))
}

func handle(t *testing.T, method string, params string, id any) protocol.Response {
	t.Helper()
	req := protocol.Request{JSONRPC: "2.0", Method: method, ID: id}
	if params != "" {
		req.Params = json.RawMessage(params)
	}
	return newTestServer().Handle(context.Background(), req)
}

func TestMethodsEnumeration(t *testing.T) {
	want := []string{
		"callTool", "getMetadata", "handshake", "init", "initialize",
		"listPrompts", "listResources", "listTools", "ping", "prompts/list",
		"resources/list", "serverInfo", "status", "tools/call", "tools/list",
	}
	got := newTestServer().Methods()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("accepted methods mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestListToolsAndAlias(t *testing.T) {
	for _, method := range []string{"listTools", "tools/list"} {
		resp := handle(t, method, "", 1)
		if resp.Error != nil {
			t.Fatalf("%s: unexpected error %+v", method, resp.Error)
		}
		result, ok := resp.Result.(protocol.ListToolsResult)
		if !ok {
			t.Fatalf("%s: unexpected result type %T", method, resp.Result)
		}
		if len(result.Tools) != 1 || result.Tools[0].Name != "echo" {
			t.Fatalf("%s: expected single echo tool, got %+v", method, result.Tools)
		}
	}
}

func TestEmptyListings(t *testing.T) {
	for _, method := range []string{"listResources", "resources/list"} {
		resp := handle(t, method, "", 1)
		result, ok := resp.Result.(protocol.ListResourcesResult)
		if !ok || result.Resources == nil || len(result.Resources) != 0 {
			t.Fatalf("%s: expected empty resources, got %+v", method, resp.Result)
		}
	}
	for _, method := range []string{"listPrompts", "prompts/list"} {
		resp := handle(t, method, "", 1)
		result, ok := resp.Result.(protocol.ListPromptsResult)
		if !ok || result.Prompts == nil || len(result.Prompts) != 0 {
			t.Fatalf("%s: expected empty prompts, got %+v", method, resp.Result)
		}
	}
}

func TestCallToolEcho(t *testing.T) {
	resp := handle(t, "tools/call", `{"name":"echo","arguments":{"message":"hi"}}`, 2)
	if resp.Error != nil {
		t.Fatalf("unexpected error %+v", resp.Error)
	}
	assertEchoOutput(t, resp.Result, "hi")
}

func TestCallToolNestedFallback(t *testing.T) {
	resp := handle(t, "callTool", `{"tool":{"name":"echo","arguments":{"message":"nested"}}}`, 7)
	if resp.Error != nil {
		t.Fatalf("unexpected error %+v", resp.Error)
	}
	assertEchoOutput(t, resp.Result, "nested")
}

func TestCallToolDefaultsArguments(t *testing.T) {
	resp := handle(t, "tools/call", `{"name":"echo"}`, 3)
	if resp.Error != nil {
		t.Fatalf("unexpected error %+v", resp.Error)
	}
	assertEchoOutput(t, resp.Result, "")
}

func TestCallToolMissingName(t *testing.T) {
	resp := handle(t, "tools/call", `{"arguments":{"message":"hi"}}`, 4)
	if resp.Error == nil || resp.Error.Code != protocol.CodeInvalidParams {
		t.Fatalf("expected code %d, got %+v", protocol.CodeInvalidParams, resp.Error)
	}
	if resp.Error.Message != "Missing tool name" {
		t.Fatalf("unexpected message %q", resp.Error.Message)
	}
}

func TestCallToolUnknown(t *testing.T) {
	resp := handle(t, "tools/call", `{"name":"nope"}`, 5)
	if resp.Error == nil || resp.Error.Code != protocol.CodeToolNotFound {
		t.Fatalf("expected code %d, got %+v", protocol.CodeToolNotFound, resp.Error)
	}
	if resp.Error.Message != "Tool not found: nope" {
		t.Fatalf("unexpected message %q", resp.Error.Message)
	}
}

func TestInitializeAndAliases(t *testing.T) {
	for _, method := range []string{"initialize", "init", "handshake"} {
		resp := handle(t, method, "", 1)
		if resp.Error != nil {
			t.Fatalf("%s: unexpected error %+v", method, resp.Error)
		}
		result, ok := resp.Result.(protocol.InitializeResult)
		if !ok {
			t.Fatalf("%s: unexpected result type %T", method, resp.Result)
		}
		if result.ProtocolVersion != ProtocolVersion {
			t.Fatalf("%s: protocol version %q", method, result.ProtocolVersion)
		}
		if !result.Capabilities.SupportsToolCalls || result.Capabilities.SupportsStreams {
			t.Fatalf("%s: unexpected capabilities %+v", method, result.Capabilities)
		}
		if result.ServerInfo.Name != ServerName || result.ServerInfo.Version == "" {
			t.Fatalf("%s: unexpected server info %+v", method, result.ServerInfo)
		}
	}
}

func TestNoopMethods(t *testing.T) {
	for _, method := range noopMethods {
		resp := handle(t, method, "", 1)
		if resp.Error != nil {
			t.Fatalf("%s: unexpected error %+v", method, resp.Error)
		}
		result, ok := resp.Result.(map[string]any)
		if !ok || len(result) != 0 {
			t.Fatalf("%s: expected empty object result, got %+v", method, resp.Result)
		}
	}
}

func TestMethodNotFound(t *testing.T) {
	resp := handle(t, "unknown-thing", "", 5)
	if resp.Error == nil || resp.Error.Code != protocol.CodeMethodNotFound {
		t.Fatalf("expected code %d, got %+v", protocol.CodeMethodNotFound, resp.Error)
	}
}

func TestCaseSensitiveDispatch(t *testing.T) {
	for _, method := range []string{"LISTTOOLS", "Tools/List", "listtools"} {
		resp := handle(t, method, "", 1)
		if resp.Error == nil || resp.Error.Code != protocol.CodeMethodNotFound {
			t.Fatalf("%s: expected method-not-found, got %+v", method, resp)
		}
	}
}

func TestIDEchoedUnchanged(t *testing.T) {
	for _, id := range []any{nil, float64(42), "abc"} {
		resp := newTestServer().Handle(context.Background(), protocol.Request{Method: "ping", ID: id})
		if !reflect.DeepEqual(resp.ID, id) {
			t.Fatalf("id not echoed: sent %v (%T), got %v (%T)", id, id, resp.ID, resp.ID)
		}
	}
}

func assertEchoOutput(t *testing.T, result any, want string) {
	t.Helper()
	call, ok := result.(protocol.CallResult)
	if !ok {
		t.Fatalf("unexpected result type %T", result)
	}
	if call.Type != "tool_result" {
		t.Fatalf("unexpected result kind %q", call.Type)
	}
	raw, err := json.Marshal(call.Value)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	var value struct {
		Output string `json:"output"`
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if value.Output != want {
		t.Fatalf("expected output %q, got %q", want, value.Output)
	}
}
