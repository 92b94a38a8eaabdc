package output

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.MaxItems != DefaultMaxItems {
		t.Errorf("MaxItems = %d, want %d", cfg.MaxItems, DefaultMaxItems)
	}
	if cfg.MaxResponseBytes != DefaultMaxResponseBytes {
		t.Errorf("MaxResponseBytes = %d, want %d", cfg.MaxResponseBytes, DefaultMaxResponseBytes)
	}
	if !cfg.Project {
		t.Error("Project should be true by default")
	}
	if !cfg.MaskSecrets {
		t.Error("MaskSecrets should be true by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    *Config
		wantMax   int
		wantBytes int
	}{
		{
			name:      "zero values use defaults",
			config:    &Config{},
			wantMax:   DefaultMaxItems,
			wantBytes: DefaultMaxResponseBytes,
		},
		{
			name:      "values under max are preserved",
			config:    &Config{MaxItems: 50, MaxResponseBytes: 1024},
			wantMax:   50,
			wantBytes: 1024,
		},
		{
			name:      "values over absolute max are capped",
			config:    &Config{MaxItems: 2000, MaxResponseBytes: 10 * 1024 * 1024},
			wantMax:   AbsoluteMaxItems,
			wantBytes: AbsoluteMaxResponseBytes,
		},
		{
			name:      "negative values use defaults",
			config:    &Config{MaxItems: -1, MaxResponseBytes: -1},
			wantMax:   DefaultMaxItems,
			wantBytes: DefaultMaxResponseBytes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validated := tt.config.Validate()

			if validated.MaxItems != tt.wantMax {
				t.Errorf("MaxItems = %d, want %d", validated.MaxItems, tt.wantMax)
			}
			if validated.MaxResponseBytes != tt.wantBytes {
				t.Errorf("MaxResponseBytes = %d, want %d", validated.MaxResponseBytes, tt.wantBytes)
			}
		})
	}
}

func TestConfigValidate_DoesNotMutate(t *testing.T) {
	cfg := &Config{MaxItems: 5000}
	_ = cfg.Validate()

	if cfg.MaxItems != 5000 {
		t.Errorf("Validate modified the receiver: MaxItems = %d", cfg.MaxItems)
	}
}

func TestConfigClone(t *testing.T) {
	original := &Config{MaxItems: 50, MaskSecrets: true}
	clone := original.Clone()

	clone.MaxItems = 999
	if original.MaxItems == 999 {
		t.Error("Modifying clone affected original MaxItems")
	}
	if !clone.MaskSecrets {
		t.Error("Clone lost MaskSecrets")
	}

	var nilCfg *Config
	if nilCfg.Clone() != nil {
		t.Error("Clone of nil should return nil")
	}
}
