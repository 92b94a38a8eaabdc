package output

// Default limits for output processing.
// These are tuned for typical LLM context windows.
const (
	// DefaultMaxItems is the default maximum number of records returned per list call.
	DefaultMaxItems = 100

	// DefaultMaxResponseBytes is the default hard limit on response size (512KB).
	DefaultMaxResponseBytes = 512 * 1024

	// AbsoluteMaxItems is the absolute maximum items that can be requested.
	// This prevents DoS via unbounded result sets even when callers request higher limits.
	AbsoluteMaxItems = 1000

	// AbsoluteMaxResponseBytes is the absolute maximum response size (2MB).
	AbsoluteMaxResponseBytes = 2 * 1024 * 1024
)

// Config holds configuration for output processing.
type Config struct {
	// MaxItems limits the number of records returned per list call.
	// Default: 100, Absolute max: 1000
	MaxItems int `json:"maxItems" yaml:"maxItems" mapstructure:"maxItems"`

	// MaxResponseBytes is a hard limit on the serialized response size.
	// Default: 512KB, Absolute max: 2MB
	MaxResponseBytes int `json:"maxResponseBytes" yaml:"maxResponseBytes" mapstructure:"maxResponseBytes"`

	// Project trims list and get results to the per-entity field whitelist.
	// Default: true
	Project bool `json:"project" yaml:"project" mapstructure:"project"`

	// MaskSecrets replaces password, secret and token values with "***REDACTED***".
	// Default: true (security critical - should rarely be disabled)
	MaskSecrets bool `json:"maskSecrets" yaml:"maskSecrets" mapstructure:"maskSecrets"`
}

// DefaultConfig returns a Config with the default limits.
func DefaultConfig() *Config {
	return &Config{
		MaxItems:         DefaultMaxItems,
		MaxResponseBytes: DefaultMaxResponseBytes,
		Project:          true,
		MaskSecrets:      true,
	}
}

// Validate validates the configuration and applies absolute limits.
// It returns a validated copy with any out-of-range values capped.
func (c *Config) Validate() *Config {
	validated := *c

	if validated.MaxItems <= 0 {
		validated.MaxItems = DefaultMaxItems
	}
	if validated.MaxResponseBytes <= 0 {
		validated.MaxResponseBytes = DefaultMaxResponseBytes
	}

	// Apply absolute maximum bounds (security critical)
	if validated.MaxItems > AbsoluteMaxItems {
		validated.MaxItems = AbsoluteMaxItems
	}
	if validated.MaxResponseBytes > AbsoluteMaxResponseBytes {
		validated.MaxResponseBytes = AbsoluteMaxResponseBytes
	}

	return &validated
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// TruncationWarning contains information about response truncation.
type TruncationWarning struct {
	// Shown is the number of items returned
	Shown int `json:"shown"`

	// Total is the total number of items before truncation
	Total int `json:"total"`

	// Message is a human-readable warning message
	Message string `json:"message"`

	// SuggestFilters suggests filter options to reduce results
	SuggestFilters []string `json:"suggestFilters,omitempty"`
}

// ProcessingResult contains the result of output processing.
type ProcessingResult struct {
	// Items contains the processed items
	Items []map[string]interface{} `json:"items"`

	// Warnings contains any warnings generated during processing
	Warnings []TruncationWarning `json:"warnings,omitempty"`
}
