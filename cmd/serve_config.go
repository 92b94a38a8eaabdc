package cmd

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/giantswarm/mcp-ndb/internal/logging"
	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/server/middleware"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// envPrefix is prepended to every configuration key when read from the
// environment: --base-url becomes NDB_BASE_URL.
const envPrefix = "NDB"

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	NDB NDBConfig

	// Tool exposure
	ReadOnly     bool
	AllowedTools []string
	DeniedTools  []string

	Output output.Config

	LogLevel  string
	LogFormat string

	// HTTP transport hardening
	AllowedOrigins  []string
	EnableHSTS      bool
	MaxRequestBytes int64

	Metrics MetricsServeConfig
}

// NDBConfig holds the connection settings for the NDB API.
type NDBConfig struct {
	BaseURL       string
	Username      string
	Password      string
	Token         string
	Timeout       time.Duration
	VerifySSL     bool
	SessionTokens bool
}

// MetricsServeConfig controls the dedicated metrics listener.
type MetricsServeConfig struct {
	Enabled bool
	Addr    string
}

// Host returns the sanitized NDB host for logs and health output.
func (c NDBConfig) Host() string {
	return logging.SanitizeHost(c.BaseURL)
}

// Credential selects the credential form from the configured values.
func (c NDBConfig) Credential() (ndb.Credential, error) {
	return ndb.NewCredential(c.Token, c.Username, c.Password)
}

// ServerConfig converts the serve configuration into the server package's
// configuration.
func (c ServeConfig) ServerConfig(version string) *server.Config {
	cfg := server.NewDefaultConfig()
	cfg.Version = version
	cfg.NDBHost = c.NDB.Host()
	cfg.ReadOnly = c.ReadOnly
	cfg.AllowedTools = c.AllowedTools
	cfg.DeniedTools = c.DeniedTools
	cfg.LogLevel = c.LogLevel
	cfg.LogFormat = c.LogFormat
	return cfg
}

// Validate checks the configuration the server cannot start without.
func (c ServeConfig) Validate() error {
	switch c.Transport {
	case transportStdio, transportSSE, transportStreamableHTTP:
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", c.Transport)
	}
	if err := c.NDB.Validate(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Validate checks that a base URL and exactly one usable credential form are set.
func (c NDBConfig) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("NDB base URL is required (--base-url or %s_BASE_URL)", envPrefix)
	}
	if _, err := c.Credential(); err != nil {
		return fmt.Errorf("%w: set --token (%s_TOKEN) or --username and --password (%s_USERNAME, %s_PASSWORD)",
			err, envPrefix, envPrefix, envPrefix)
	}
	return nil
}

// newViper returns a viper instance bound to the command's flags and the
// NDB_ environment. Precedence is flag, environment, config file, default.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	}
	return v, nil
}

// loadNDBConfig reads the connection settings.
func loadNDBConfig(v *viper.Viper) (NDBConfig, error) {
	timeout, err := parseTimeout(v.GetString("timeout"))
	if err != nil {
		return NDBConfig{}, err
	}
	return NDBConfig{
		BaseURL:       v.GetString("base-url"),
		Username:      v.GetString("username"),
		Password:      v.GetString("password"),
		Token:         v.GetString("token"),
		Timeout:       timeout,
		VerifySSL:     v.GetBool("verify-ssl"),
		SessionTokens: v.GetBool("session-tokens"),
	}, nil
}

// loadServeConfig builds a ServeConfig from flags, environment and config file.
func loadServeConfig(cmd *cobra.Command) (ServeConfig, error) {
	v, err := newViper(cmd)
	if err != nil {
		return ServeConfig{}, err
	}

	ndbConfig, err := loadNDBConfig(v)
	if err != nil {
		return ServeConfig{}, err
	}

	origins, err := middleware.ValidateAllowedOrigins(v.GetString("allowed-origins"))
	if err != nil {
		return ServeConfig{}, err
	}

	return ServeConfig{
		Transport:       v.GetString("transport"),
		HTTPAddr:        v.GetString("http-addr"),
		SSEEndpoint:     v.GetString("sse-endpoint"),
		MessageEndpoint: v.GetString("message-endpoint"),
		HTTPEndpoint:    v.GetString("http-endpoint"),
		NDB:             ndbConfig,
		ReadOnly:        v.GetBool("read-only"),
		AllowedTools:    splitList(v.GetString("allowed-tools")),
		DeniedTools:     splitList(v.GetString("denied-tools")),
		Output: output.Config{
			MaxItems:         v.GetInt("max-items"),
			MaxResponseBytes: v.GetInt("max-response-bytes"),
			Project:          v.GetBool("project"),
			MaskSecrets:      v.GetBool("mask-secrets"),
		},
		LogLevel:        v.GetString("log-level"),
		LogFormat:       v.GetString("log-format"),
		AllowedOrigins:  origins,
		EnableHSTS:      v.GetBool("enable-hsts"),
		MaxRequestBytes: v.GetInt64("max-request-bytes"),
		Metrics: MetricsServeConfig{
			Enabled: v.GetBool("metrics"),
			Addr:    v.GetString("metrics-addr"),
		},
	}, nil
}

// maxTimeoutMillis is the largest millisecond count a time.Duration can hold.
const maxTimeoutMillis = math.MaxInt64 / int64(time.Millisecond)

// parseTimeout accepts milliseconds as a bare integer ("30000") or a Go
// duration ("30s").
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ndb.DefaultTimeout, nil
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if ms <= 0 {
			return 0, errors.New("timeout must be positive")
		}
		if ms > maxTimeoutMillis {
			return 0, fmt.Errorf("timeout %dms is too large", ms)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: use milliseconds or a duration such as 30s", raw)
	}
	if d <= 0 {
		return 0, errors.New("timeout must be positive")
	}
	return d, nil
}

// splitList splits a comma separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
