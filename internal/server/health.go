package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Health endpoint paths served on the HTTP transports.
const (
	LivenessPath       = "/healthz"
	ReadinessPath      = "/readyz"
	DetailedHealthPath = "/healthz/detailed"
)

const (
	checkOK       = "ok"
	checkNotReady = "not ready"
	checkStopping = "shutting down"
	checkDisabled = "disabled"
)

// HealthChecker serves liveness and readiness checks. NDB itself is never
// called: a slow appliance must not take the MCP server out of rotation.
type HealthChecker struct {
	ready     atomic.Bool
	sc        *ServerContext
	startTime time.Time
}

// NewHealthChecker creates a HealthChecker that starts out ready.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	h := &HealthChecker{sc: sc, startTime: time.Now()}
	h.ready.Store(true)
	return h
}

// SetReady flips readiness, typically to false once shutdown begins.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports the readiness flag.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

// HealthResponse is the body of the liveness and readiness endpoints.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Version string            `json:"version,omitempty"`
}

// DetailedHealthResponse is the body of the detailed health endpoint.
type DetailedHealthResponse struct {
	Status          string                      `json:"status"`
	Mode            string                      `json:"mode"`
	Version         string                      `json:"version,omitempty"`
	Uptime          string                      `json:"uptime"`
	NDB             *NDBStatus                  `json:"ndb,omitempty"`
	Instrumentation *InstrumentationHealthCheck `json:"instrumentation,omitempty"`
}

// NDBStatus describes the configured NDB endpoint.
type NDBStatus struct {
	Host     string `json:"host,omitempty"`
	ReadOnly bool   `json:"read_only"`
}

// InstrumentationHealthCheck reports whether telemetry is being exported.
type InstrumentationHealthCheck struct {
	Enabled bool `json:"enabled"`
}

// RegisterHealthEndpoints mounts the three health endpoints on mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle(LivenessPath, h.LivenessHandler())
	mux.Handle(ReadinessPath, h.ReadinessHandler())
	mux.Handle(DetailedHealthPath, h.DetailedHealthHandler())
}

// LivenessHandler answers 200 while the process is running.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, HealthResponse{Status: checkOK, Version: h.version()})
	})
}

// ReadinessHandler answers 503 once the server is marked not ready or its
// context has been shut down.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checks, ok := h.evaluate()
		resp := HealthResponse{Status: checkOK, Checks: checks}
		code := http.StatusOK
		if !ok {
			resp.Status = checkNotReady
			code = http.StatusServiceUnavailable
		}
		writeHealth(w, code, resp)
	})
}

// DetailedHealthHandler adds mode, uptime and the NDB endpoint to the
// readiness result.
func (h *HealthChecker) DetailedHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := DetailedHealthResponse{
			Status:  checkOK,
			Mode:    h.determineMode(),
			Version: h.version(),
			Uptime:  time.Since(h.startTime).Truncate(time.Second).String(),
		}
		if h.sc != nil {
			if cfg := h.sc.Config(); cfg != nil {
				resp.NDB = &NDBStatus{Host: cfg.NDBHost, ReadOnly: cfg.ReadOnly}
			}
			resp.Instrumentation = &InstrumentationHealthCheck{
				Enabled: h.sc.InstrumentationProvider().Enabled(),
			}
		}

		code := http.StatusOK
		switch {
		case !h.ready.Load():
			resp.Status, code = checkNotReady, http.StatusServiceUnavailable
		case h.stopping():
			resp.Status, code = checkStopping, http.StatusServiceUnavailable
		}
		writeHealth(w, code, resp)
	})
}

// evaluate runs the readiness checks. Instrumentation is informational and
// never fails readiness.
func (h *HealthChecker) evaluate() (map[string]string, bool) {
	checks := map[string]string{"ready": checkOK, "shutdown": checkOK}
	ok := true

	if !h.ready.Load() {
		checks["ready"] = checkNotReady
		ok = false
	}
	if h.stopping() {
		checks["shutdown"] = checkStopping
		ok = false
	}
	if h.sc != nil {
		if provider := h.sc.InstrumentationProvider(); provider != nil {
			checks["instrumentation"] = checkDisabled
			if provider.Enabled() {
				checks["instrumentation"] = checkOK
			}
		}
	}
	return checks, ok
}

func (h *HealthChecker) stopping() bool {
	return h.sc != nil && h.sc.IsShutdown()
}

func (h *HealthChecker) version() string {
	if h.sc == nil || h.sc.Config() == nil {
		return ""
	}
	return h.sc.Config().Version
}

// determineMode returns "read-only" or "read-write".
func (h *HealthChecker) determineMode() string {
	if h.sc == nil || h.sc.Config() == nil {
		return "unknown"
	}
	if h.sc.ReadOnly() {
		return "read-only"
	}
	return "read-write"
}

func writeHealth(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
