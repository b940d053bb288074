package tools

import (
	"fmt"
	"strconv"
	"strings"

	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/duckduckgo-mcp/library/mcperr"
)

// toolError renders an error as a tool-level failure result. Taxonomy errors
// keep their guidance text so MCP clients can surface actionable advice;
// protocol errors (err return) are reserved for transport failures.
func toolError(err error) *mcp.CallToolResult {
	if me, ok := mcperr.From(err); ok {
		return mcp.NewToolResultError(fmt.Sprintf("%s\nGuidance: %s", me.Error(), me.Guidance()))
	}
	return mcp.NewToolResultError(err.Error())
}

// requestArgs extracts the argument map from a tool call request.
func requestArgs(req mcp.CallToolRequest) map[string]any {
	if args, ok := req.Params.Arguments.(map[string]any); ok {
		return args
	}
	return nil
}

func stringArg(args map[string]any, key, fallback string) string {
	raw, ok := args[key]
	if !ok || raw == nil {
		return fallback
	}
	if value, ok := raw.(string); ok {
		return value
	}
	return fmt.Sprintf("%v", raw)
}

func boolArg(args map[string]any, key string) bool {
	raw, ok := args[key]
	if !ok {
		return false
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		s := strings.TrimSpace(strings.ToLower(v))
		return s == "true" || s == "1" || s == "yes" || s == "y" || s == "on"
	case float64:
		// MCP JSON numbers decode into float64
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	default:
		return false
	}
}

// positiveIntArg coerces a numeric or textual-numeric argument into a
// positive integer. MCP clients routinely send numbers as strings, so "5"
// is accepted; "five" is not. name is used for the validation message.
func positiveIntArg(args map[string]any, key string, fallback int, name string) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return fallback, nil
	}

	errV := func() error {
		guidance := fmt.Sprintf("The '%s' parameter must be a valid positive integer.\n"+
			"  • Valid values: 1, 5, 10, 20, etc.\n", name)
		if fallback > 0 {
			guidance += fmt.Sprintf("  • Default value is %d if not specified\n", fallback)
		}
		guidance += fmt.Sprintf("You provided: '%v'", raw)
		return mcperr.NewValidationError(
			fmt.Sprintf("Invalid %s: '%v'. %s must be a positive integer.", name, raw, name),
			mcperr.WithGuidance(guidance),
		)
	}

	var value int

	switch v := raw.(type) {
	case float64:
		value = int(v)
	case int:
		value = v
	case int64:
		value = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, errV()
		}
		value = parsed
	default:
		return 0, errV()
	}

	if value <= 0 {
		return 0, errV()
	}

	return value, nil
}
