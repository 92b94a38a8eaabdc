package ndb

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Kind classifies a failed exchange with the NDB API.
type Kind string

const (
	KindUnauthorized Kind = "Unauthorized"
	KindExpired      Kind = "Expired"
	KindForbidden    Kind = "Forbidden"
	KindNotFound     Kind = "NotFound"
	KindNetwork      Kind = "Network"
	KindTimeout      Kind = "Timeout"
	KindUnknown      Kind = "Unknown"
)

// Sentinel errors for each Kind, matched with errors.Is against an *APIError.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrExpired      = errors.New("credential expired")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrNetwork      = errors.New("network failure")
	ErrTimeout      = errors.New("request timed out")
	ErrUnknown      = errors.New("unexpected response")
)

// Configuration errors returned by NewGateway.
var (
	ErrMissingBaseURL     = errors.New("NDB base URL is required")
	ErrMissingCredentials = errors.New("NDB credentials are required: set a token or a username and password")
	ErrInvalidBaseURL     = errors.New("NDB base URL is invalid")
)

var kindSentinels = map[Kind]error{
	KindUnauthorized: ErrUnauthorized,
	KindExpired:      ErrExpired,
	KindForbidden:    ErrForbidden,
	KindNotFound:     ErrNotFound,
	KindNetwork:      ErrNetwork,
	KindTimeout:      ErrTimeout,
	KindUnknown:      ErrUnknown,
}

// maxBodyInError bounds the response body kept on an APIError.
const maxBodyInError = 2048

// APIError is returned for every failed exchange. Transport errors are never
// returned unwrapped.
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Body       string

	Method   string
	Endpoint string

	// Err is the underlying transport error, if any.
	Err error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d", e.StatusCode)
		if e.Body != "" {
			fmt.Fprintf(&b, ", body: %s", e.Body)
		}
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap returns the underlying transport error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of the error's Kind.
func (e *APIError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// KindOf returns the Kind of err, or "" when err is not an *APIError.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// classifyStatus maps a non-2xx response onto an APIError.
func classifyStatus(statusCode int, body []byte) *APIError {
	e := &APIError{
		StatusCode: statusCode,
		Message:    responseMessage(statusCode, body),
		Body:       truncateBody(body),
	}

	switch statusCode {
	case http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case http.StatusGone:
		e.Kind = KindExpired
	case http.StatusForbidden:
		e.Kind = KindForbidden
	case http.StatusNotFound:
		e.Kind = KindNotFound
	default:
		e.Kind = KindUnknown
	}
	return e
}

// classifyTransport maps an error from http.Client.Do onto an APIError.
func classifyTransport(err error) *APIError {
	e := &APIError{Err: err}

	switch {
	case isTimeoutError(err):
		e.Kind = KindTimeout
		e.Message = "request exceeded the configured timeout"
	case errors.Is(err, context.Canceled):
		e.Kind = KindNetwork
		e.Message = "request cancelled"
	case isTLSError(err):
		e.Kind = KindNetwork
		e.Message = "TLS handshake failed: " + err.Error()
	default:
		e.Kind = KindNetwork
		e.Message = err.Error()
	}
	return e
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isTLSError(err error) bool {
	var (
		recordErr  tls.RecordHeaderError
		unknownCA  x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		invalidErr x509.CertificateInvalidError
		verifyErr  *tls.CertificateVerificationError
	)
	if errors.As(err, &recordErr) || errors.As(err, &unknownCA) || errors.As(err, &hostErr) ||
		errors.As(err, &invalidErr) || errors.As(err, &verifyErr) {
		return true
	}

	msg := err.Error()
	for _, pattern := range []string{"tls:", "x509:", "certificate signed by", "handshake failure"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// responseMessage extracts NDB's error message from a response body. NDB uses
// "message", "reason" or "errorMessage" depending on the endpoint.
func responseMessage(statusCode int, body []byte) string {
	var payload map[string]any
	if json.Unmarshal(body, &payload) == nil {
		for _, key := range []string{"message", "reason", "errorMessage", "error"} {
			if s, ok := payload[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

func truncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodyInError {
		cut := maxBodyInError
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "...(truncated)"
	}
	return s
}

// tokenExpired reports whether a response signals that the active token is
// no longer valid and the request may be re-issued once.
func tokenExpired(statusCode int, body []byte) bool {
	if statusCode != http.StatusUnauthorized {
		return false
	}
	lower := strings.ToLower(string(body))
	return strings.Contains(lower, "expired") || strings.Contains(lower, "invalid token") ||
		strings.Contains(lower, "invalid_token")
}
