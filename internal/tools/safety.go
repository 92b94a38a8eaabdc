package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/giantswarm/mcp-ndb/internal/server"
)

// CheckMutatingOperation returns a policy error when t mutates NDB state and
// the server is read-only. It returns nil otherwise.
func CheckMutatingOperation(sc *server.ServerContext, t Tool) *ToolError {
	if !t.Mutating || !sc.ReadOnly() {
		return nil
	}

	return &ToolError{
		Code:  mcp.INVALID_REQUEST,
		Kind:  KindReadOnly,
		Stage: StagePolicy,
		Message: fmt.Sprintf(
			"%s operations are not allowed in read-only mode (tool %s)",
			cases.Title(language.English).String(operationVerb(t.Name())),
			t.Name(),
		),
		Err: ErrReadOnly,
	}
}

// operationVerb extracts the verb from a tool name: ndb_delete_clone -> delete.
func operationVerb(name string) string {
	parts := strings.SplitN(name, "_", 3)
	if len(parts) >= 2 {
		return parts[1]
	}
	return name
}
