package instrumentation

import (
	"regexp"
	"strconv"
	"strings"
)

// Cardinality helpers for metric labels. NDB addresses every entity by UUID
// and some by name, so raw request paths must never be used as label values.

var (
	// UUID pattern (e.g., 550e8400-e29b-41d4-a716-446655440000)
	uuidPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

	// Session ID pattern for MCP streamable HTTP
	sessionIDPattern = regexp.MustCompile(`^/mcp/[a-zA-Z0-9_-]{8,64}$`)

	// Generic numeric ID pattern in paths
	numericIDPattern = regexp.MustCompile(`/\d+(/|$)`)

	// NDB lookups by name, e.g. /databases/name/orders-prod
	namePattern = regexp.MustCompile(`/name/[^/]+`)
)

// NormalizePath replaces dynamic segments of an inbound URL path with
// placeholders.
//
//	NormalizePath("/mcp/abc123xyz")   // "/mcp/:session"
//	NormalizePath("/sse/42")          // "/sse/:id"
func NormalizePath(path string) string {
	if sessionIDPattern.MatchString(path) {
		return "/mcp/:session"
	}

	path = uuidPattern.ReplaceAllString(path, ":uuid")
	return numericIDPattern.ReplaceAllString(path, "/:id$1")
}

// NormalizeEndpoint reduces an NDB API endpoint to a bounded label value.
// Query strings are dropped.
//
//	NormalizeEndpoint("/databases/9a7c1d7e-7a8e-4b0b-a2c5-0f7d43d1a7c9")  // "/databases/:uuid"
//	NormalizeEndpoint("/databases/name/orders-prod")                     // "/databases/name/:name"
//	NormalizeEndpoint("/tms/9a7c.../snapshots?x=1")                      // "/tms/:uuid/snapshots"
func NormalizeEndpoint(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	if endpoint == "" {
		return "/"
	}

	endpoint = uuidPattern.ReplaceAllString(endpoint, ":uuid")
	endpoint = namePattern.ReplaceAllString(endpoint, "/name/:name")
	return numericIDPattern.ReplaceAllString(endpoint, "/:id$1")
}

// StatusClass maps an HTTP status code onto "2xx", "4xx" and so on.
// Zero, used when no response was received, maps to "error".
func StatusClass(code int) string {
	if code <= 0 {
		return StatusError
	}
	if code < 100 || code > 599 {
		return StatusUnknown
	}
	return strconv.Itoa(code/100) + "xx"
}
