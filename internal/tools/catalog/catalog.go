// Package catalog assembles every NDB tool in registration order.
package catalog

import (
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/alerts"
	"github.com/giantswarm/mcp-ndb/internal/tools/clones"
	"github.com/giantswarm/mcp-ndb/internal/tools/clusters"
	"github.com/giantswarm/mcp-ndb/internal/tools/databases"
	"github.com/giantswarm/mcp-ndb/internal/tools/dbservers"
	"github.com/giantswarm/mcp-ndb/internal/tools/operations"
	"github.com/giantswarm/mcp-ndb/internal/tools/profiles"
	"github.com/giantswarm/mcp-ndb/internal/tools/slas"
	"github.com/giantswarm/mcp-ndb/internal/tools/snapshots"
	"github.com/giantswarm/mcp-ndb/internal/tools/timemachines"
	"github.com/giantswarm/mcp-ndb/internal/tools/users"
)

// All returns the full tool catalogue.
func All() []tools.Tool {
	groups := [][]tools.Tool{
		databases.Tools(),
		dbservers.Tools(),
		clones.Tools(),
		snapshots.Tools(),
		timemachines.Tools(),
		clusters.Tools(),
		profiles.Tools(),
		slas.Tools(),
		operations.Tools(),
		alerts.Tools(),
		users.Tools(),
	}

	var all []tools.Tool
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}
