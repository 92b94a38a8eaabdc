package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
)

// Validator is implemented by every typed argument struct.
type Validator interface {
	Validate() error
}

// EmptyArgs is used by tools that take no arguments.
type EmptyArgs struct{}

// Validate implements Validator.
func (EmptyArgs) Validate() error { return nil }

// Decode converts a loosely typed argument map into dst.
func Decode(args map[string]any, dst any) error {
	if len(args) == 0 {
		return nil
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode arguments: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return fmt.Errorf("argument %q must be of type %s", typeErr.Field, typeErr.Type)
		}
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// Bind adapts a typed handler to a Handler. Arguments are decoded into a new
// T and validated before fn runs.
func Bind[T any, P interface {
	*T
	Validator
}](fn func(ctx context.Context, sc *server.ServerContext, args P) (any, error)) Handler {
	return func(ctx context.Context, sc *server.ServerContext, raw map[string]any) (any, error) {
		args := P(new(T))
		if err := Decode(raw, args); err != nil {
			return nil, InvalidArguments(err)
		}
		if err := args.Validate(); err != nil {
			if _, ok := AsToolError(err); ok {
				return nil, err
			}
			return nil, InvalidArguments(err)
		}
		return fn(ctx, sc, args)
	}
}

// ListArgs are accepted by every list tool.
type ListArgs struct {
	// ValueType is a comma separated list of field paths.
	ValueType string `json:"valueType,omitempty"`
	// Value is a comma separated list of encoded values, paired with ValueType.
	Value string `json:"value,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// Validate implements Validator. Filter syntax is checked by List.
func (a *ListArgs) Validate() error {
	if a.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}

// GetArgs identify a single record by id.
type GetArgs struct {
	ID string `json:"id"`
}

// Validate implements Validator.
func (a *GetArgs) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return Missing("id")
	}
	return nil
}

// IdentifiedArgs identify a record by id or by name.
type IdentifiedArgs struct {
	ID        string `json:"id"`
	ValueType string `json:"valueType,omitempty"`
}

// Validate implements Validator and canonicalizes ValueType.
func (a *IdentifiedArgs) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return Missing("id")
	}
	if a.ValueType == "" {
		a.ValueType = "id"
		return nil
	}
	vt, err := OneOf("valueType", a.ValueType, "id", "name")
	if err != nil {
		return err
	}
	a.ValueType = vt
	return nil
}

// Path returns base/{id} or base/name/{name}.
func (a *IdentifiedArgs) Path(base string) string {
	if a.ValueType == "name" {
		return base + "/name/" + ndb.PathID(a.ID)
	}
	return base + "/" + ndb.PathID(a.ID)
}

// Payload builds a request body, keeping only fields that were supplied.
type Payload map[string]any

// Set stores v under key.
func (p Payload) Set(key string, v any) Payload {
	p[key] = v
	return p
}

// SetString stores s when it is not empty.
func (p Payload) SetString(key, s string) Payload {
	if s != "" {
		p[key] = s
	}
	return p
}

// SetBool stores *b when b is not nil.
func (p Payload) SetBool(key string, b *bool) Payload {
	if b != nil {
		p[key] = *b
	}
	return p
}

// SetInt stores *n when n is not nil.
func (p Payload) SetInt(key string, n *int) Payload {
	if n != nil {
		p[key] = *n
	}
	return p
}

// OneOf validates that value is one of allowed, ignoring case, and returns the
// canonical spelling.
func OneOf(field, value string, allowed ...string) (string, error) {
	for _, a := range allowed {
		if strings.EqualFold(a, value) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%s must be one of %s, got %q", field, strings.Join(allowed, ", "), value)
}
