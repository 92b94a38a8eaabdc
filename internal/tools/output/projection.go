package output

// EntityType names a kind of NDB record with its own projection rule.
type EntityType string

const (
	EntityDatabase    EntityType = "database"
	EntityClone       EntityType = "clone"
	EntitySnapshot    EntityType = "snapshot"
	EntityTimeMachine EntityType = "time_machine"
	EntityDBServer    EntityType = "dbserver"
	EntityCluster     EntityType = "cluster"
	EntityProfile     EntityType = "profile"
	EntitySLA         EntityType = "sla"
	EntityOperation   EntityType = "operation"
	EntityAlert       EntityType = "alert"
	EntityUser        EntityType = "user"
)

// Rule is the ordered list of top-level fields kept for one entity type.
type Rule []string

// Table maps entity types to their projection rules. It is read-only after construction.
type Table struct {
	rules map[EntityType]Rule
}

// NewTable builds a Table from rules. Each rule is copied.
func NewTable(rules map[EntityType]Rule) *Table {
	t := &Table{rules: make(map[EntityType]Rule, len(rules))}
	for entity, rule := range rules {
		t.rules[entity] = append(Rule(nil), rule...)
	}
	return t
}

// DefaultTable returns the projection rules for every NDB entity type.
func DefaultTable() *Table {
	return NewTable(defaultRules)
}

// Rule returns the rule for entity.
func (t *Table) Rule(entity EntityType) (Rule, bool) {
	if t == nil {
		return nil, false
	}
	rule, ok := t.rules[entity]
	return rule, ok
}

var defaultRules = map[EntityType]Rule{
	EntityDatabase: {
		"id", "name", "description", "type", "status", "dateCreated", "dateModified",
		"clustered", "timeMachineId", "databaseNodes", "tags",
	},
	EntityClone: {
		"id", "name", "description", "type", "status", "dateCreated", "parentTimeMachineId",
		"parentSnapshotId", "clustered", "databaseNodes",
	},
	EntitySnapshot: {
		"id", "name", "status", "type", "timeMachineId", "databaseNodeId",
		"snapshotTimeStamp", "dateCreated", "snapshotSize",
	},
	EntityTimeMachine: {
		"id", "name", "status", "type", "databaseId", "slaId", "dateCreated", "scope",
		"clustered", "accessLevel",
	},
	EntityDBServer: {
		"id", "name", "status", "type", "ipAddresses", "nxClusterId", "dbserverClusterId",
		"eraCreated", "dateCreated", "vmClusterName",
	},
	EntityCluster: {
		"id", "name", "description", "status", "ipAddresses", "cloudType", "hypervisorType",
		"version", "healthy",
	},
	EntityProfile: {
		"id", "name", "description", "type", "engineType", "status", "topology",
		"latestVersion", "dbVersion", "systemProfile",
	},
	EntitySLA: {
		"id", "name", "description", "continuousRetention", "dailyRetention",
		"weeklyRetention", "monthlyRetention", "quarterlyRetention", "yearlyRetention",
	},
	EntityOperation: {
		"id", "name", "type", "status", "percentageComplete", "entityId", "entityName",
		"entityType", "startTime", "endTime", "timeZone",
	},
	EntityAlert: {
		"id", "entityId", "entityType", "entityName", "severity", "message",
		"acknowledged", "resolved", "dateCreated",
	},
	EntityUser: {
		"id", "username", "email", "firstName", "lastName", "roles", "isExternalAuth",
	},
}

// Project returns a new record holding only the fields of e named by rule.
// Fields absent from e stay absent. A nil rule returns a shallow copy of e.
func Project(e map[string]interface{}, rule Rule) map[string]interface{} {
	if e == nil {
		return nil
	}
	if rule == nil {
		out := make(map[string]interface{}, len(e))
		for k, v := range e {
			out[k] = v
		}
		return out
	}

	out := make(map[string]interface{}, len(rule))
	for _, field := range rule {
		if v, ok := e[field]; ok {
			out[field] = v
		}
	}
	return out
}

// ProjectAll applies rule to every record, preserving order.
func ProjectAll(records []map[string]interface{}, rule Rule) []map[string]interface{} {
	out := make([]map[string]interface{}, len(records))
	for i, record := range records {
		out[i] = Project(record, rule)
	}
	return out
}
