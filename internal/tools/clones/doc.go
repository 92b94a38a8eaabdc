// Package clones provides tools for NDB database clones: listing and
// inspecting them, creating new clones from a time machine, refreshing a
// clone to a newer point in time, and deleting clones.
//
// A clone is created from a time machine at either a snapshot (snapshotId),
// a point in time (userPitrTimestamp) or the latest snapshot
// (latestSnapshot). Exactly one of the three must be given.
package clones
