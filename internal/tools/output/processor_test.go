package output

import (
	"testing"
)

func TestNewProcessor(t *testing.T) {
	p := NewProcessor(nil, nil)
	if p == nil {
		t.Fatal("NewProcessor(nil, nil) returned nil")
	}
	if p.Config() == nil {
		t.Error("Processor config should not be nil")
	}
	if _, ok := p.Table().Rule(EntityDatabase); !ok {
		t.Error("nil table should fall back to DefaultTable")
	}

	p = NewProcessor(&Config{MaxItems: 5000}, nil)
	if p.Config().MaxItems != AbsoluteMaxItems {
		t.Errorf("MaxItems = %d, want capped %d", p.Config().MaxItems, AbsoluteMaxItems)
	}
}

func TestProcessor_ProcessList(t *testing.T) {
	p := NewProcessor(DefaultConfig(), nil)

	items := []map[string]interface{}{
		{"id": "db-1", "name": "orders", "status": "READY", "properties": []interface{}{}, "password": "x"},
		{"id": "db-2", "name": "users", "status": "FAILED", "internal": true},
	}

	result := p.ProcessList(EntityDatabase, items, 0)

	if len(result.Items) != 2 {
		t.Errorf("len = %d, want 2", len(result.Items))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	for _, item := range result.Items {
		for _, dropped := range []string{"properties", "password", "internal"} {
			if _, ok := item[dropped]; ok {
				t.Errorf("item %v kept %q outside the database rule", item["id"], dropped)
			}
		}
	}
	if result.Items[0]["name"] != "orders" {
		t.Errorf("order not preserved: %v", result.Items[0]["name"])
	}
}

func TestProcessor_ProcessList_UnknownEntity(t *testing.T) {
	p := NewProcessor(nil, nil)
	items := []map[string]interface{}{{"id": "1", "anything": "kept"}}

	result := p.ProcessList("widget", items, 0)

	if result.Items[0]["anything"] != "kept" {
		t.Error("fields of an unknown entity type should pass through")
	}
}

func TestProcessor_ProcessList_ProjectionDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Project = false
	p := NewProcessor(cfg, nil)

	result := p.ProcessList(EntityDatabase, []map[string]interface{}{{"id": "1", "properties": "x"}}, 0)
	if _, ok := result.Items[0]["properties"]; !ok {
		t.Error("projection disabled should keep every field")
	}
}

func TestProcessor_ProcessList_Empty(t *testing.T) {
	p := NewProcessor(nil, nil)
	result := p.ProcessList(EntityClone, nil, 0)

	if result.Items == nil {
		t.Error("Items should be an empty slice, not nil")
	}
	if len(result.Items) != 0 {
		t.Errorf("len = %d, want 0", len(result.Items))
	}
}

func TestProcessor_ProcessList_Truncation(t *testing.T) {
	p := NewProcessor(&Config{MaxItems: 10, Project: true}, nil)

	result := p.ProcessList(EntityOperation, databaseRecords(25), 0)
	if len(result.Items) != 10 {
		t.Errorf("len = %d, want 10", len(result.Items))
	}
	if len(result.Warnings) != 1 {
		t.Error("expected a truncation warning")
	}

	result = p.ProcessList(EntityOperation, databaseRecords(25), 4)
	if len(result.Items) != 4 {
		t.Errorf("request limit: len = %d, want 4", len(result.Items))
	}
}

func TestProcessor_ProcessSingle(t *testing.T) {
	p := NewProcessor(nil, nil)

	got := p.ProcessSingle(EntityUser, map[string]interface{}{
		"id":       "u-1",
		"username": "admin",
		"password": "secret",
		"roles":    []interface{}{"SUPER_ADMIN"},
	})

	if _, ok := got["password"]; ok {
		t.Error("password is outside the user rule and must be dropped")
	}
	if got["username"] != "admin" {
		t.Errorf("username = %v, want admin", got["username"])
	}
	if p.ProcessSingle(EntityUser, nil) != nil {
		t.Error("ProcessSingle(nil) should return nil")
	}
}

func TestProcessor_ProcessRaw(t *testing.T) {
	p := NewProcessor(nil, nil)
	raw := map[string]interface{}{"operationId": "op-1", "vmPassword": "pw"}

	got := p.ProcessRaw(raw).(map[string]interface{})
	if got["vmPassword"] != RedactedValue {
		t.Errorf("vmPassword = %v, want redacted", got["vmPassword"])
	}
	if got["operationId"] != "op-1" {
		t.Errorf("operationId = %v, want op-1", got["operationId"])
	}

	cfg := DefaultConfig()
	cfg.MaskSecrets = false
	unmasked := NewProcessor(cfg, nil).ProcessRaw(raw).(map[string]interface{})
	if unmasked["vmPassword"] != "pw" {
		t.Error("masking disabled should pass values through")
	}
}
