package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// decode binds MCP request arguments onto a typed request struct. Arguments
// that are not a JSON object fail here rather than silently zeroing fields.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	if err := req.BindArguments(&result); err != nil {
		return result, fmt.Errorf("decode arguments: %w", err)
	}
	return result, nil
}
