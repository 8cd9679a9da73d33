package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

/*
Tool pairs an MCP tool schema with the function that executes it.  Providers
convert the schema into their native function-calling format and call
Execute when the model requests the tool.
*/
type Tool struct {
	Schema  mcp.Tool
	Execute func(ctx context.Context, args map[string]any) (string, error)
}

// Find returns the tool with the given name from the list.
func Find(list []Tool, name string) (Tool, bool) {
	for _, tool := range list {
		if tool.Schema.Name == name {
			return tool, true
		}
	}
	return Tool{}, false
}

// StringArg reads a string argument, tolerating absence.
func StringArg(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return value
}
