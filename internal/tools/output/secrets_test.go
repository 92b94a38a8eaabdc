package output

import (
	"testing"
)

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"password", true},
		{"vmPassword", true},
		{"db_password", true},
		{"clientSecret", true},
		{"token", true},
		{"ssh_private_key", true},
		{"name", false},
		{"status", false},
		{"timeMachineId", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsSensitiveKey(tt.key); got != tt.want {
				t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestMaskSecrets(t *testing.T) {
	input := map[string]interface{}{
		"id":         "op-1",
		"vmPassword": "hunter2",
		"nodes": []interface{}{
			map[string]interface{}{"name": "n1", "password": "p"},
		},
		"actionArguments": []interface{}{
			map[string]interface{}{"name": "db_password", "value": "secret"},
			map[string]interface{}{"name": "database_size", "value": "200"},
		},
	}

	got := MaskSecrets(input)

	if got["id"] != "op-1" {
		t.Errorf("id = %v, want op-1", got["id"])
	}
	if got["vmPassword"] != RedactedValue {
		t.Errorf("vmPassword = %v, want redacted", got["vmPassword"])
	}

	node := got["nodes"].([]interface{})[0].(map[string]interface{})
	if node["password"] != RedactedValue {
		t.Errorf("nested password = %v, want redacted", node["password"])
	}
	if node["name"] != "n1" {
		t.Errorf("nested name = %v, want n1", node["name"])
	}

	args := got["actionArguments"].([]interface{})
	if v := args[0].(map[string]interface{})["value"]; v != RedactedValue {
		t.Errorf("db_password value = %v, want redacted", v)
	}
	if v := args[1].(map[string]interface{})["value"]; v != "200" {
		t.Errorf("database_size value = %v, want 200", v)
	}
}

func TestMaskSecrets_DeepCopy(t *testing.T) {
	input := map[string]interface{}{
		"nested": map[string]interface{}{"password": "p"},
	}

	_ = MaskSecrets(input)

	if input["nested"].(map[string]interface{})["password"] != "p" {
		t.Error("MaskSecrets modified its input")
	}
}

func TestMaskSecrets_Nil(t *testing.T) {
	if MaskSecrets(nil) != nil {
		t.Error("MaskSecrets(nil) should return nil")
	}
}

func TestMaskSecretsInList(t *testing.T) {
	items := []map[string]interface{}{
		{"name": "a", "token": "t"},
		{"name": "b"},
	}

	got := MaskSecretsInList(items)
	if got[0]["token"] != RedactedValue {
		t.Errorf("token = %v, want redacted", got[0]["token"])
	}
	if got[1]["name"] != "b" {
		t.Errorf("name = %v, want b", got[1]["name"])
	}

	if len(MaskSecretsInList(nil)) != 0 {
		t.Error("empty list should stay empty")
	}
}

func TestMaskValue_Scalars(t *testing.T) {
	if MaskValue("text") != "text" {
		t.Error("scalar values pass through")
	}
	list := MaskValue([]interface{}{map[string]interface{}{"secret": "s"}}).([]interface{})
	if list[0].(map[string]interface{})["secret"] != RedactedValue {
		t.Error("secrets inside a top-level array should be masked")
	}
}
