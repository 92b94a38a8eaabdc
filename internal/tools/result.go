package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// encode renders a handler result as indented JSON and enforces the
// configured response size limit.
func (d *Dispatcher) encode(result any) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", &ToolError{
			Code:    mcp.INTERNAL_ERROR,
			Kind:    "Unknown",
			Stage:   StageOutput,
			Message: fmt.Sprintf("failed to encode result: %v", err),
			Err:     err,
		}
	}

	limit := d.sc.OutputProcessor().Config().MaxResponseBytes
	if limit > 0 && len(data) > limit {
		return "", &ToolError{
			Code:  mcp.INVALID_PARAMS,
			Kind:  KindResponseTooLarge,
			Stage: StageOutput,
			Message: fmt.Sprintf(
				"response of %d bytes exceeds the %d byte limit; narrow it with the valueType/value filters or a lower limit",
				len(data), limit),
		}
	}
	return string(data), nil
}
