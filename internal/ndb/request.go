package ndb

import (
	"net/http"
	"net/url"
	"strconv"
)

// Request describes one call to the NDB API. Endpoint is relative to the
// API base path, e.g. "/databases".
type Request struct {
	Method   string
	Endpoint string
	Query    url.Values
	Body     any
}

// NewRequest creates a request for method and endpoint.
func NewRequest(method, endpoint string) *Request {
	return &Request{Method: method, Endpoint: endpoint}
}

// Get creates a GET request.
func Get(endpoint string) *Request { return NewRequest(http.MethodGet, endpoint) }

// Post creates a POST request with a JSON body.
func Post(endpoint string, body any) *Request {
	return NewRequest(http.MethodPost, endpoint).WithBody(body)
}

// Patch creates a PATCH request with a JSON body.
func Patch(endpoint string, body any) *Request {
	return NewRequest(http.MethodPatch, endpoint).WithBody(body)
}

// Delete creates a DELETE request. body may be nil.
func Delete(endpoint string, body any) *Request {
	return NewRequest(http.MethodDelete, endpoint).WithBody(body)
}

// WithQuery adds a query parameter. Empty values are skipped.
func (r *Request) WithQuery(key, value string) *Request {
	if value == "" {
		return r
	}
	if r.Query == nil {
		r.Query = url.Values{}
	}
	r.Query.Set(key, value)
	return r
}

// WithBoolQuery adds a boolean query parameter when value is non-nil.
func (r *Request) WithBoolQuery(key string, value *bool) *Request {
	if value == nil {
		return r
	}
	return r.WithQuery(key, strconv.FormatBool(*value))
}

// WithIntQuery adds an integer query parameter when value is positive.
func (r *Request) WithIntQuery(key string, value int) *Request {
	if value <= 0 {
		return r
	}
	return r.WithQuery(key, strconv.Itoa(value))
}

// WithBody sets the JSON body.
func (r *Request) WithBody(body any) *Request {
	r.Body = body
	return r
}

// PathID escapes an identifier or name for use as a path segment.
func PathID(id string) string {
	return url.PathEscape(id)
}

// listKeys are the wrapper keys NDB uses on some list endpoints instead of a bare array.
var listKeys = []string{"operations", "entities", "data", "items"}

// Collection converts a decoded list response into records.
func Collection(v any) ([]map[string]any, error) {
	switch t := v.(type) {
	case []any:
		return toRecords(t)
	case map[string]any:
		for _, key := range listKeys {
			if inner, ok := t[key].([]any); ok {
				return toRecords(inner)
			}
		}
	case nil:
		return []map[string]any{}, nil
	}
	return nil, &APIError{Kind: KindUnknown, Message: "expected a list in the response"}
}

// Object converts a decoded single-entity response into a record.
func Object(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	return nil, &APIError{Kind: KindUnknown, Message: "expected an object in the response"}
}

func toRecords(items []any) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &APIError{Kind: KindUnknown, Message: "list response contains a non-object element"}
		}
		out = append(out, m)
	}
	return out, nil
}
