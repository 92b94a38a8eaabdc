package instrumentation

import "testing"

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/databases", "/databases"},
		{"/databases/9a7c1d7e-7a8e-4b0b-a2c5-0f7d43d1a7c9", "/databases/:uuid"},
		{"/databases/name/orders-prod", "/databases/name/:name"},
		{"/tms/9a7c1d7e-7a8e-4b0b-a2c5-0f7d43d1a7c9/snapshots?foo=bar", "/tms/:uuid/snapshots"},
		{"/operations/12345", "/operations/:id"},
		{"/app_types/postgres_database/provision/input-file", "/app_types/postgres_database/provision/input-file"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeEndpoint(tt.in); got != tt.want {
				t.Errorf("NormalizeEndpoint(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/mcp", "/mcp"},
		{"/mcp/abcdef123456", "/mcp/:session"},
		{"/sse/42", "/sse/:id"},
		{"/message/550e8400-e29b-41d4-a716-446655440000", "/message/:uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizePath(tt.in); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, StatusError},
		{200, "2xx"},
		{204, "2xx"},
		{401, "4xx"},
		{410, "4xx"},
		{503, "5xx"},
		{42, StatusUnknown},
		{700, StatusUnknown},
	}

	for _, tt := range tests {
		if got := StatusClass(tt.code); got != tt.want {
			t.Errorf("StatusClass(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
