package ndb

import (
	"net/http"
	"strings"
)

// Credential authenticates outbound requests. It is chosen once at startup and
// never changes for the lifetime of the process.
type Credential interface {
	// Kind names the credential form for logs ("token" or "basic").
	Kind() string
	apply(r *http.Request)
}

// TokenCredential sends a pre-issued bearer token.
type TokenCredential struct {
	Token string
}

func (c TokenCredential) Kind() string { return "token" }

func (c TokenCredential) apply(r *http.Request) {
	r.Header.Set("Authorization", "Bearer "+c.Token)
}

// BasicCredential sends HTTP basic authentication.
type BasicCredential struct {
	Username string
	Password string
}

func (c BasicCredential) Kind() string { return "basic" }

func (c BasicCredential) apply(r *http.Request) {
	r.SetBasicAuth(c.Username, c.Password)
}

// NewCredential selects the credential form from configuration. A token takes
// precedence over a username and password; the other form is ignored.
func NewCredential(token, username, password string) (Credential, error) {
	if t := strings.TrimSpace(token); t != "" {
		return TokenCredential{Token: t}, nil
	}
	if username != "" && password != "" {
		return BasicCredential{Username: username, Password: password}, nil
	}
	return nil, ErrMissingCredentials
}
