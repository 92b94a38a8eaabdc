// Package snapshots provides tools for time machine snapshots.
package snapshots
