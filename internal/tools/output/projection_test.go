package output

import (
	"reflect"
	"testing"
)

func sampleDatabase() map[string]interface{} {
	return map[string]interface{}{
		"id":            "db-1",
		"name":          "orders",
		"type":          "postgres_database",
		"status":        "READY",
		"timeMachineId": "tm-1",
		"properties":    []interface{}{map[string]interface{}{"name": "listener_port", "value": "5432"}},
		"metadata":      map[string]interface{}{"deregisterInfo": nil},
		"databaseNodes": []interface{}{map[string]interface{}{"id": "node-1"}},
	}
}

func TestProject(t *testing.T) {
	rule := Rule{"id", "name", "status", "description"}
	got := Project(sampleDatabase(), rule)

	want := map[string]interface{}{
		"id":     "db-1",
		"name":   "orders",
		"status": "READY",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Project() = %v, want %v", got, want)
	}
	if _, ok := got["description"]; ok {
		t.Error("Project added a field that was absent from the record")
	}
}

func TestProject_Idempotent(t *testing.T) {
	table := DefaultTable()

	for entity := range defaultRules {
		t.Run(string(entity), func(t *testing.T) {
			rule, _ := table.Rule(entity)
			once := Project(sampleDatabase(), rule)
			twice := Project(once, rule)
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("projecting twice changed the record: %v vs %v", once, twice)
			}
		})
	}
}

func TestProject_NeverAddsFields(t *testing.T) {
	rule, ok := DefaultTable().Rule(EntityDatabase)
	if !ok {
		t.Fatal("no database rule")
	}

	record := map[string]interface{}{"id": "x", "unrelated": true}
	got := Project(record, rule)

	if len(got) != 1 || got["id"] != "x" {
		t.Errorf("Project() = %v, want only id", got)
	}
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	record := sampleDatabase()
	_ = Project(record, Rule{"id"})

	if _, ok := record["properties"]; !ok {
		t.Error("Project removed a field from its input")
	}
}

func TestProject_NilRuleAndRecord(t *testing.T) {
	if Project(nil, Rule{"id"}) != nil {
		t.Error("Project(nil) should return nil")
	}

	record := sampleDatabase()
	got := Project(record, nil)
	if len(got) != len(record) {
		t.Errorf("nil rule should keep all %d fields, got %d", len(record), len(got))
	}
}

func TestProjectAll_PreservesOrder(t *testing.T) {
	records := []map[string]interface{}{
		{"id": "1", "name": "a", "extra": 1},
		{"id": "2", "name": "b", "extra": 2},
		{"id": "3", "name": "c", "extra": 3},
	}

	got := ProjectAll(records, Rule{"id"})
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"1", "2", "3"} {
		if got[i]["id"] != want {
			t.Errorf("got[%d].id = %v, want %s", i, got[i]["id"], want)
		}
		if _, ok := got[i]["extra"]; ok {
			t.Errorf("got[%d] kept a field outside the rule", i)
		}
	}
}

func TestDefaultTable_CoversEveryEntity(t *testing.T) {
	table := DefaultTable()
	entities := []EntityType{
		EntityDatabase, EntityClone, EntitySnapshot, EntityTimeMachine, EntityDBServer,
		EntityCluster, EntityProfile, EntitySLA, EntityOperation, EntityAlert, EntityUser,
	}

	for _, entity := range entities {
		rule, ok := table.Rule(entity)
		if !ok {
			t.Errorf("no rule for %s", entity)
			continue
		}
		if len(rule) == 0 || rule[0] != "id" {
			t.Errorf("rule for %s should start with id, got %v", entity, rule)
		}
	}

	if _, ok := table.Rule("widget"); ok {
		t.Error("unknown entity type should have no rule")
	}
}

func TestNewTable_CopiesRules(t *testing.T) {
	rules := map[EntityType]Rule{EntityUser: {"id", "username"}}
	table := NewTable(rules)
	rules[EntityUser][1] = "password"

	rule, _ := table.Rule(EntityUser)
	if rule[1] != "username" {
		t.Errorf("table rule changed after construction: %v", rule)
	}
}
