package tools

import (
	"context"
	"encoding/json"

	"github.com/ferrolab/mcp-mockserver/internal/protocol"
)

// echoArgs is the accepted argument shape for the echo tool.
type echoArgs struct {
	Message string `json:"message"`
}

// echoOutput is the value carried inside the tool_result envelope.
type echoOutput struct {
	Output string `json:"output"`
}

// echoTool reflects its message argument back to the caller.
type echoTool struct{}

// Echo constructs the built-in echo tool instance.
func Echo() *echoTool {
	return &echoTool{}
}

func (t *echoTool) Descriptor() protocol.ToolDescriptor {
	return protocol.ToolDescriptor{
		Name:        "echo",
		Description: "Echoes the provided message back to the caller.",
		Parameters: &protocol.JSONSchema{
			Type: "object",
			Properties: map[string]protocol.JSONSchema{
				"message": {Type: "string", Description: "Text to echo back."},
			},
		},
	}
}

// Invoke tolerates absent or malformed arguments; the output defaults to "".
func (t *echoTool) Invoke(_ context.Context, raw json.RawMessage) (protocol.CallResult, *protocol.ResponseError) {
	var args echoArgs
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &args)
	}
	return protocol.CallResult{Type: "tool_result", Value: echoOutput{Output: args.Message}}, nil
}
