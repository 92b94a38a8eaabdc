// Package provision checks database provisioning requests before they are sent to NDB.
//
// The [Advisor] fetches the engine's provisioning input schema, verifies that the
// structurally required identifiers (cluster, software/compute/network/parameter
// profiles, SLA) and the engine's required action arguments are present, and when
// something is missing it looks up candidate values so the caller can complete the
// request. It is a best-effort helper: a failed suggestion lookup is logged and
// omitted rather than failing the whole validation.
package provision
