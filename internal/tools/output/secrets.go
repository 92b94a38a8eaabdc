package output

import (
	"strings"
)

// RedactedValue is the placeholder used for masked secret data.
const RedactedValue = "***REDACTED***"

// sensitiveKeyPatterns are substrings of keys whose values are never returned.
// NDB echoes these in provisioning and registration results.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"privatekey",
	"private_key",
}

// IsSensitiveKey reports whether values under key must be masked.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// MaskSecrets returns a deep copy of obj with sensitive values redacted at any depth.
func MaskSecrets(obj map[string]interface{}) map[string]interface{} {
	if obj == nil {
		return nil
	}
	return maskValue(obj).(map[string]interface{})
}

// MaskSecretsInList masks secrets in a list of records.
func MaskSecretsInList(objects []map[string]interface{}) []map[string]interface{} {
	if len(objects) == 0 {
		return objects
	}

	result := make([]map[string]interface{}, len(objects))
	for i, obj := range objects {
		result[i] = MaskSecrets(obj)
	}
	return result
}

// MaskValue masks any decoded JSON value.
func MaskValue(v interface{}) interface{} {
	return maskValue(v)
}

func maskValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			// NDB action arguments are {"name": "...", "value": "..."} pairs.
			if k == "value" && isSensitivePair(t) {
				out[k] = RedactedValue
				continue
			}
			if IsSensitiveKey(k) && !isContainer(val) {
				out[k] = RedactedValue
				continue
			}
			out[k] = maskValue(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = maskValue(item)
		}
		return out
	default:
		return v
	}
}

func isSensitivePair(m map[string]interface{}) bool {
	name, ok := m["name"].(string)
	return ok && IsSensitiveKey(name)
}

func isContainer(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return true
	}
	return false
}
