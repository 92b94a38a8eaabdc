package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// filterHelp documents the value encoding shared by every list tool.
const filterHelp = `Comma separated values paired one-to-one with valueType. Encoding:
- "!x" not equal to x (also true when the field is absent)
- ">=x", "<=x", ">x", "<x" numeric comparison when both sides are numbers, lexical otherwise
- "*x*" case-insensitive substring
- anything else is exact equality
Example: valueType="type,status" value="postgres_database,!READY"`

// ListParams returns the filter and limit parameters shared by list tools.
func ListParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("valueType",
			mcp.Description(`Comma separated field paths to filter on, e.g. "status" or "databaseNodes.status". A path into an array matches when any element matches; "field.length" compares the array length.`),
		),
		mcp.WithString("value",
			mcp.Description(filterHelp),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of records to return (default and maximum are set by the server)"),
		),
	}
}

// GetParams returns the identifier parameters of a get tool. When byName is
// set the record may also be looked up by name.
func GetParams(entity string, byName bool) []mcp.ToolOption {
	opts := []mcp.ToolOption{
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	}
	if !byName {
		return append(opts, mcp.WithString("id",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("ID of the %s", entity)),
		))
	}
	return append(opts,
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("ID or name of the %s, see valueType", entity)),
		),
		mcp.WithString("valueType",
			mcp.Description(`How to interpret id: "id" (default) or "name"`),
			mcp.Enum("id", "name"),
		),
	)
}

// Destructive marks a tool that changes or removes NDB state.
func Destructive() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
	}
}

// Creating marks a tool that only adds NDB state.
func Creating() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
	}
}

// NewTool builds an mcp.Tool from option groups.
func NewTool(name, description string, groups ...[]mcp.ToolOption) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(description)}
	for _, g := range groups {
		opts = append(opts, g...)
	}
	return mcp.NewTool(name, opts...)
}
