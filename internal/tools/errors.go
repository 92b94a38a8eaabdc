package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-ndb/internal/filter"
	"github.com/giantswarm/mcp-ndb/internal/ndb"
)

// Stage names the step of an invocation that failed.
type Stage string

const (
	StageDispatch   Stage = "dispatch"
	StageValidation Stage = "validation"
	StageFilter     Stage = "filter"
	StageRemote     Stage = "remote call"
	StagePolicy     Stage = "policy"
	StageOutput     Stage = "output"
)

// Error kinds that do not originate from the NDB API. Remote failures use the
// ndb.Kind of the underlying *ndb.APIError.
const (
	KindMethodNotFound    = "MethodNotFound"
	KindInvalidArguments  = "InvalidArguments"
	KindInvalidFilterPath = "InvalidFilterPath"
	KindReadOnly          = "ReadOnly"
	KindResponseTooLarge  = "ResponseTooLarge"
)

// ErrReadOnly is matched by policy errors refusing a mutating tool.
var ErrReadOnly = errors.New("server is read-only")

// ToolError is the only error type a Dispatcher returns.
type ToolError struct {
	// Code is a JSON-RPC error code such as mcp.METHOD_NOT_FOUND.
	Code    int
	Kind    string
	Stage   Stage
	Message string
	Err     error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// AsToolError extracts a *ToolError from err.
func AsToolError(err error) (*ToolError, bool) {
	var te *ToolError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// MethodNotFound reports an unknown or disabled tool.
func MethodNotFound(name string) *ToolError {
	return &ToolError{
		Code:    mcp.METHOD_NOT_FOUND,
		Kind:    KindMethodNotFound,
		Stage:   StageDispatch,
		Message: fmt.Sprintf("unknown tool %q", name),
	}
}

// InvalidArguments reports arguments that failed decoding or validation.
func InvalidArguments(err error) *ToolError {
	return &ToolError{
		Code:    mcp.INVALID_PARAMS,
		Kind:    KindInvalidArguments,
		Stage:   StageValidation,
		Message: err.Error(),
		Err:     err,
	}
}

// Missing reports a required argument that was not supplied.
func Missing(field string) *ToolError {
	return InvalidArguments(fmt.Errorf("%s is required", field))
}

// FilterError reports a filter that could not be built.
func FilterError(err error) *ToolError {
	kind := KindInvalidArguments
	if filter.IsInvalidPath(err) {
		kind = KindInvalidFilterPath
	}
	return &ToolError{
		Code:    mcp.INVALID_PARAMS,
		Kind:    kind,
		Stage:   StageFilter,
		Message: err.Error(),
		Err:     err,
	}
}

// RemoteError wraps a failed NDB exchange. The message keeps the classified
// kind, status code and body.
func RemoteError(err error) *ToolError {
	kind := ndb.KindOf(err)
	if kind == "" {
		kind = ndb.KindUnknown
		if errors.Is(err, context.DeadlineExceeded) {
			kind = ndb.KindTimeout
		}
		err = &ndb.APIError{Kind: kind, Message: err.Error(), Err: err}
	}
	return &ToolError{
		Code:    mcp.INTERNAL_ERROR,
		Kind:    string(kind),
		Stage:   StageRemote,
		Message: err.Error(),
		Err:     err,
	}
}

// Translate converts any handler error into a *ToolError. Errors that are
// already ToolErrors pass through.
func Translate(err error) *ToolError {
	if err == nil {
		return nil
	}
	if te, ok := AsToolError(err); ok {
		return te
	}
	var fe *filter.Error
	if errors.As(err, &fe) {
		return FilterError(err)
	}
	return RemoteError(err)
}
