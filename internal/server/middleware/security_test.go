package middleware

import (
	"crypto/tls"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name        string
		hstsEnabled bool
		hasTLS      bool
		wantHSTS    bool
	}{
		{name: "HSTS enabled with TLS", hstsEnabled: true, hasTLS: true, wantHSTS: true},
		{name: "HSTS enabled without TLS", hstsEnabled: true, hasTLS: false, wantHSTS: true},
		{name: "HSTS disabled with TLS", hstsEnabled: false, hasTLS: true, wantHSTS: true},
		{name: "HSTS disabled without TLS", hstsEnabled: false, hasTLS: false, wantHSTS: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := SecurityHeaders(SecurityHeadersConfig{EnableHSTS: tt.hstsEnabled})(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.hasTLS {
				req.TLS = &tls.ConnectionState{}
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
			assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'")

			if tt.wantHSTS {
				assert.Contains(t, rec.Header().Get("Strict-Transport-Security"), "max-age=31536000")
			} else {
				assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
			}
		})
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		requestOrigin  string
		wantOrigin     string
	}{
		{
			name:           "allowed origin",
			allowedOrigins: []string{"https://example.com"},
			requestOrigin:  "https://example.com",
			wantOrigin:     "https://example.com",
		},
		{
			name:           "disallowed origin",
			allowedOrigins: []string{"https://example.com"},
			requestOrigin:  "https://evil.com",
		},
		{
			name:           "no origin header",
			allowedOrigins: []string{"https://example.com"},
		},
		{
			name:          "no origins configured",
			requestOrigin: "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			if tt.requestOrigin != "" {
				req.Header.Set("Origin", tt.requestOrigin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowedOrigins)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodOptions, "/mcp", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()

	CORS([]string{"https://example.com"})(next).ServeHTTP(rec, req)

	assert.False(t, called, "preflight must not reach the MCP handler")
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestValidateAllowedOrigins(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "empty", input: "", want: nil},
		{name: "single origin", input: "https://example.com", want: []string{"https://example.com"}},
		{
			name:  "multiple with whitespace and port",
			input: " https://a.example.com , http://localhost:3000 ,",
			want:  []string{"https://a.example.com", "http://localhost:3000"},
		},
		{name: "trailing slash normalized", input: "https://example.com/", want: []string{"https://example.com"}},
		{name: "missing scheme", input: "example.com", wantErr: true},
		{name: "bad scheme", input: "ftp://example.com", wantErr: true},
		{name: "path not allowed", input: "https://example.com/app", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAllowedOrigins(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaxRequestSize(t *testing.T) {
	tests := []struct {
		name      string
		maxBytes  int64
		bodySize  int
		chunked   bool
		wantError bool
	}{
		{name: "within limit", maxBytes: 1024, bodySize: 100},
		{name: "exactly at limit", maxBytes: 1024, bodySize: 1024},
		{name: "exceeds limit", maxBytes: 1024, bodySize: 2048, wantError: true},
		{name: "chunked exceeds limit", maxBytes: 100, bodySize: 200, chunked: true, wantError: true},
		{name: "disabled with zero", maxBytes: 0, bodySize: 10000},
		{name: "disabled with negative", maxBytes: -1, bodySize: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var readErr error
			var read int
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				readErr = err
				read = len(body)
				if err != nil {
					w.WriteHeader(http.StatusRequestEntityTooLarge)
					return
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(strings.Repeat("a", tt.bodySize)))
			if tt.chunked {
				req.ContentLength = -1
			}
			rec := httptest.NewRecorder()
			MaxRequestSize(tt.maxBytes)(handler).ServeHTTP(rec, req)

			if tt.wantError {
				assert.Error(t, readErr)
				assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
				return
			}
			assert.NoError(t, readErr)
			assert.Equal(t, tt.bodySize, read)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}
