package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/giantswarm/mcp-ndb/internal/logging"
	"github.com/giantswarm/mcp-ndb/internal/ndb"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools"
	"github.com/giantswarm/mcp-ndb/internal/tools/catalog"
)

// errNotConfigured is returned by the placeholder client used when listing
// tools without NDB credentials.
var errNotConfigured = errors.New("NDB connection is not configured")

// unconfiguredClient lets the tool catalogue be inspected offline.
type unconfiguredClient struct{}

func (unconfiguredClient) Do(context.Context, *ndb.Request) (any, error) {
	return nil, &ndb.APIError{Kind: ndb.KindNetwork, Message: errNotConfigured.Error()}
}

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the MCP tools this server exposes",
		Long: `Print the tool catalogue after applying --allowed-tools, --denied-tools
and --read-only. No connection to NDB is made.`,
		RunE: runTools,
	}
	addNDBFlags(cmd)
	return cmd
}

func runTools(cmd *cobra.Command, args []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(v.GetString("log-level"), v.GetString("log-format"))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sc, err := server.NewServerContext(ctx,
		server.WithNDBClient(unconfiguredClient{}),
		server.WithLogger(logger),
		server.WithReadOnly(v.GetBool("read-only")),
		server.WithToolFilter(splitList(v.GetString("allowed-tools")), splitList(v.GetString("denied-tools"))),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() { _ = sc.Shutdown() }()

	dispatcher, err := tools.NewDispatcher(sc, catalog.All()...)
	if err != nil {
		return err
	}
	enabled := dispatcher.Tools()
	logger.Debug("listing tools", logging.Operation("tools"), "enabled", len(enabled))
	renderTools(cmd.OutOrStdout(), sc, enabled)
	return nil
}

// renderTools prints one row per enabled tool.
func renderTools(w io.Writer, sc *server.ServerContext, enabled []tools.Tool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Tool", "Entity", "Access", "Description"})

	for _, tool := range enabled {
		access := text.FgGreen.Sprint("read")
		if tool.Mutating {
			access = text.FgYellow.Sprint("write")
			if tools.CheckMutatingOperation(sc, tool) != nil {
				access = text.FgRed.Sprint("refused")
			}
		}
		t.AppendRow(table.Row{tool.Name(), string(tool.Entity), access, summary(tool.Definition.Description)})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(enabled)})
	t.Render()
}

// summary returns the first sentence of a tool description.
func summary(desc string) string {
	if i := strings.Index(desc, ". "); i >= 0 {
		return desc[:i+1]
	}
	return desc
}
