package ndb

import (
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBuilders(t *testing.T) {
	detailed := true
	req := Get("/databases").
		WithBoolQuery("detailed", &detailed).
		WithBoolQuery("load-dbserver-cluster", nil).
		WithQuery("value-type", "").
		WithIntQuery("days", 7).
		WithIntQuery("limit", 0)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/databases", req.Endpoint)
	assert.Equal(t, "days=7&detailed=true", req.Query.Encode())
	assert.Nil(t, req.Body)

	assert.Equal(t, http.MethodPatch, Patch("/tms/1/pause", map[string]any{}).Method)
	assert.Equal(t, http.MethodDelete, Delete("/snapshots/1", nil).Method)
	assert.NotNil(t, Post("/databases/provision", map[string]any{"name": "x"}).Body)
}

func TestPathID(t *testing.T) {
	assert.Equal(t, "my%20db", PathID("my db"))
	assert.Equal(t, "a%2Fb", PathID("a/b"))
	assert.Equal(t, "plain-id", PathID("plain-id"))
}

func TestCollection(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int
		wantErr bool
	}{
		{name: "bare array", in: []any{map[string]any{"id": "1"}, map[string]any{"id": "2"}}, want: 2},
		{name: "operations wrapper", in: map[string]any{"operations": []any{map[string]any{"id": "1"}}}, want: 1},
		{name: "entities wrapper", in: map[string]any{"entities": []any{}}, want: 0},
		{name: "nil", in: nil, want: 0},
		{name: "object without list", in: map[string]any{"id": "1"}, wantErr: true},
		{name: "scalar elements", in: []any{"a"}, wantErr: true},
		{name: "string", in: "text", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Collection(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, KindUnknown, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
		})
	}
}

func TestObject(t *testing.T) {
	obj, err := Object(map[string]any{"id": "1"})
	require.NoError(t, err)
	assert.Equal(t, "1", obj["id"])

	_, err = Object([]any{})
	assert.Equal(t, KindUnknown, KindOf(err))
}

func TestTokenExpired(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   bool
	}{
		{401, `{"message":"Token Expired"}`, true},
		{401, `{"error":"invalid_token"}`, true},
		{401, `{"message":"Invalid token supplied"}`, true},
		{401, `{"message":"bad credentials"}`, false},
		{403, `{"message":"token expired"}`, false},
		{410, `gone`, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tokenExpired(tt.status, []byte(tt.body)), "%d %s", tt.status, tt.body)
	}
}

func TestTruncateBody(t *testing.T) {
	long := make([]byte, maxBodyInError+100)
	for i := range long {
		long[i] = 'a'
	}
	got := truncateBody(long)
	assert.Len(t, got, maxBodyInError+len("...(truncated)"))
	assert.Equal(t, "short", truncateBody([]byte("  short\n")))
}

func TestTruncateBody_KeepsRunesWhole(t *testing.T) {
	// The two-byte rune straddles the cut.
	body := strings.Repeat("a", maxBodyInError-1) + strings.Repeat("é", 10)

	got := truncateBody([]byte(body))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", maxBodyInError-1)+"...(truncated)", got)
}
