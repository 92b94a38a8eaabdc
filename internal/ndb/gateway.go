package ndb

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/oauth2"

	"github.com/giantswarm/mcp-ndb/internal/instrumentation"
	"github.com/giantswarm/mcp-ndb/internal/logging"
)

const (
	// BasePath is the NDB REST API root under the server URL.
	BasePath = "/era/v0.9"

	DefaultTimeout              = 30 * time.Second
	DefaultSessionTokenLifetime = 30 * time.Minute

	maxResponseSize = 32 << 20
)

// Client performs calls against the NDB API.
type Client interface {
	// Do sends req and returns the decoded JSON response: a map for objects,
	// a slice for arrays. Failures are always *APIError.
	Do(ctx context.Context, req *Request) (any, error)
}

// Config configures a Gateway.
type Config struct {
	// BaseURL is the NDB server URL, e.g. "https://ndb.example.com".
	BaseURL string

	Credential Credential

	// Timeout bounds every HTTP call (default 30s).
	Timeout time.Duration

	// VerifySSL enables server certificate verification.
	VerifySSL bool

	// SessionTokens exchanges a basic credential for a short-lived session
	// token that is cached in memory. Ignored for token credentials.
	SessionTokens bool

	// SessionTokenLifetime is the lifetime requested for session tokens.
	SessionTokenLifetime time.Duration

	UserAgent string

	Logger  *slog.Logger
	Metrics *instrumentation.Metrics

	// HTTPClient overrides the client built from Timeout and VerifySSL.
	HTTPClient *http.Client
}

// Gateway is the Client implementation used in production.
type Gateway struct {
	baseURL    *url.URL
	credential Credential
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	metrics    *instrumentation.Metrics

	sessions *sessionCache
	lifetime time.Duration
}

// attemptState tracks the single permitted authentication retry.
type attemptState int

const (
	stateFirstAttempt attemptState = iota
	stateRetried
)

// NewGateway validates cfg and builds a Gateway.
func NewGateway(cfg Config) (*Gateway, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.Credential == nil {
		return nil, ErrMissingCredentials
	}

	base, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.SessionTokenLifetime <= 0 {
		cfg.SessionTokenLifetime = DefaultSessionTokenLifetime
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "mcp-ndb"
	}

	client := cfg.HTTPClient
	if client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if !cfg.VerifySSL {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // operator opt-out for self-signed NDB appliances
		}
		client = &http.Client{Transport: transport, Timeout: cfg.Timeout}
	}

	g := &Gateway{
		baseURL:    base,
		credential: cfg.Credential,
		httpClient: client,
		userAgent:  cfg.UserAgent,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		lifetime:   cfg.SessionTokenLifetime,
	}

	if basic, ok := cfg.Credential.(BasicCredential); ok && cfg.SessionTokens {
		g.sessions = &sessionCache{
			timeout: cfg.Timeout,
			fetch: func(ctx context.Context) (*oauth2.Token, error) {
				return g.acquireSessionToken(ctx, basic)
			},
		}
	}

	cfg.Logger.Debug("NDB gateway configured",
		logging.Host(base.String()),
		slog.String("credential", cfg.Credential.Kind()),
		slog.Bool("session_tokens", g.sessions != nil),
		slog.Bool("verify_ssl", cfg.VerifySSL),
		slog.Duration("timeout", cfg.Timeout))

	return g, nil
}

func normalizeBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q must be an http or https URL", ErrInvalidBaseURL, logging.SanitizeHost(raw))
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	if !strings.HasSuffix(u.Path, BasePath) {
		u.Path += BasePath
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// BaseURL returns the API root including BasePath.
func (g *Gateway) BaseURL() string {
	return g.baseURL.String()
}

// Do sends req. A 401 reporting an expired token is retried exactly once after
// the cached session token is dropped; a second one is returned as KindExpired.
func (g *Gateway) Do(ctx context.Context, req *Request) (any, error) {
	if req == nil || req.Method == "" || req.Endpoint == "" {
		return nil, &APIError{Kind: KindUnknown, Message: "incomplete request"}
	}

	state := stateFirstAttempt
	for {
		status, body, err := g.exchange(ctx, req, state)
		if err != nil {
			return nil, err
		}

		if status >= 200 && status < 300 {
			if state == stateRetried {
				g.metrics.RecordAuthRetry(ctx, instrumentation.RetryResultRecovered)
			}
			return decodeBody(body), nil
		}

		if !tokenExpired(status, body) {
			return nil, g.annotate(classifyStatus(status, body), req)
		}

		switch state {
		case stateFirstAttempt:
			g.logger.Info("NDB token expired, retrying request once",
				logging.Method(req.Method),
				logging.Endpoint(instrumentation.NormalizeEndpoint(req.Endpoint)))
			g.invalidate()
			state = stateRetried
		case stateRetried:
			g.metrics.RecordAuthRetry(ctx, instrumentation.RetryResultExpired)
			apiErr := classifyStatus(status, body)
			apiErr.Kind = KindExpired
			return nil, g.annotate(apiErr, req)
		}
	}
}

func (g *Gateway) invalidate() {
	if g.sessions != nil {
		g.sessions.Invalidate()
	}
}

func (g *Gateway) annotate(e *APIError, req *Request) *APIError {
	e.Method = req.Method
	e.Endpoint = req.Endpoint
	return e
}

// exchange performs one HTTP round trip. A returned error is always an *APIError.
func (g *Gateway) exchange(ctx context.Context, req *Request, state attemptState) (int, []byte, error) {
	endpoint := instrumentation.NormalizeEndpoint(req.Endpoint)
	requestID := uuid.NewString()

	ctx, span := instrumentation.StartAPISpan(ctx, req.Method, endpoint,
		attribute.String(instrumentation.SpanAttrRequestID, requestID),
		attribute.Int(instrumentation.SpanAttrAttempt, int(state)+1))
	defer span.End()

	start := time.Now()

	httpReq, err := g.newHTTPRequest(ctx, req, requestID)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return 0, nil, g.annotate(&APIError{Kind: KindUnknown, Message: err.Error(), Err: err}, req)
	}

	if err := g.authorize(ctx, httpReq); err != nil {
		instrumentation.SetSpanError(span, err)
		return 0, nil, err
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		apiErr := g.annotate(classifyTransport(err), req)
		g.metrics.RecordAPIRequest(ctx, req.Method, endpoint, 0, time.Since(start))
		instrumentation.SetSpanError(span, apiErr)
		g.logger.Warn("NDB request failed",
			logging.Method(req.Method),
			logging.Endpoint(endpoint),
			logging.RequestID(requestID),
			slog.String("kind", string(apiErr.Kind)),
			logging.SanitizedErr(err))
		return 0, nil, apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		apiErr := g.annotate(classifyTransport(err), req)
		apiErr.StatusCode = resp.StatusCode
		g.metrics.RecordAPIRequest(ctx, req.Method, endpoint, resp.StatusCode, time.Since(start))
		instrumentation.SetSpanError(span, apiErr)
		return 0, nil, apiErr
	}

	duration := time.Since(start)
	g.metrics.RecordAPIRequest(ctx, req.Method, endpoint, resp.StatusCode, duration)
	span.SetAttributes(attribute.Int(instrumentation.SpanAttrStatusCode, resp.StatusCode))
	if resp.StatusCode >= 400 {
		instrumentation.SetSpanError(span, fmt.Errorf("HTTP %d", resp.StatusCode))
	} else {
		instrumentation.SetSpanSuccess(span)
	}

	g.logger.Debug("NDB request completed",
		logging.Method(req.Method),
		logging.Endpoint(endpoint),
		logging.RequestID(requestID),
		logging.StatusCode(resp.StatusCode),
		slog.Duration(logging.KeyDuration, duration))

	return resp.StatusCode, body, nil
}

func (g *Gateway) newHTTPRequest(ctx context.Context, req *Request, requestID string) (*http.Request, error) {
	target := g.baseURL.String() + "/" + strings.TrimPrefix(req.Endpoint, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", g.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	return httpReq, nil
}

func (g *Gateway) authorize(ctx context.Context, httpReq *http.Request) error {
	if g.sessions == nil {
		g.credential.apply(httpReq)
		return nil
	}

	tok, err := g.sessions.Token(ctx)
	if err != nil {
		return err
	}
	tok.SetAuthHeader(httpReq)
	return nil
}

// acquireSessionToken exchanges the basic credential for a session token.
func (g *Gateway) acquireSessionToken(ctx context.Context, basic BasicCredential) (*oauth2.Token, error) {
	req := Get("/auth/token").WithQuery("expire", strconv.Itoa(int(g.lifetime.Minutes())))

	httpReq, err := g.newHTTPRequest(ctx, req, uuid.NewString())
	if err != nil {
		return nil, &APIError{Kind: KindUnknown, Message: err.Error(), Err: err}
	}
	basic.apply(httpReq)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		g.metrics.RecordTokenAcquisition(ctx, instrumentation.TokenResultFailed)
		return nil, g.annotate(classifyTransport(err), req)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		g.metrics.RecordTokenAcquisition(ctx, instrumentation.TokenResultFailed)
		return nil, g.annotate(classifyTransport(err), req)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.metrics.RecordTokenAcquisition(ctx, instrumentation.TokenResultFailed)
		return nil, g.annotate(classifyStatus(resp.StatusCode, body), req)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Token == "" {
		g.metrics.RecordTokenAcquisition(ctx, instrumentation.TokenResultFailed)
		return nil, g.annotate(&APIError{
			Kind:       KindUnknown,
			StatusCode: resp.StatusCode,
			Message:    "session token response did not contain a token",
			Body:       truncateBody(body),
		}, req)
	}

	g.metrics.RecordTokenAcquisition(ctx, instrumentation.TokenResultAcquired)
	g.logger.Debug("NDB session token acquired", slog.String("token", logging.SanitizeToken(payload.Token)))

	return &oauth2.Token{
		AccessToken: payload.Token,
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(g.lifetime),
	}, nil
}

// decodeBody decodes a 2xx body. Empty bodies become an empty object and
// non-JSON bodies are wrapped under "response".
func decodeBody(body []byte) any {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return map[string]any{"response": string(body)}
	}
	return v
}
