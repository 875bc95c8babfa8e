package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// TransformArgs are the arguments accepted by a transform tool.
type TransformArgs struct {
	// Input is written to the command's stdin.
	Input string `json:"input"`
	// Args are appended to the command's fixed arguments.
	Args []string `json:"args,omitempty"`
}

// ParseArguments unmarshals CallToolRequest arguments into TransformArgs.
func ParseArguments(req *mcp.CallToolRequest) (TransformArgs, error) {
	var args TransformArgs

	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return args, nil
	}

	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return args, fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	return args, nil
}
