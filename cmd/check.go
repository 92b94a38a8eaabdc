package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/mcp-ndb/internal/logging"
	"github.com/giantswarm/mcp-ndb/internal/ndb"
)

// checkEndpoints are the list endpoints queried by the check command.
var checkEndpoints = []string{
	"/clusters",
	"/databases",
	"/dbservers",
	"/tms",
	"/profiles",
	"/slas",
}

// checkResult is the outcome of probing one endpoint.
type checkResult struct {
	Endpoint string
	Records  int
	Duration time.Duration
	Err      error
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify connectivity and credentials against the NDB API",
		Long: `Call a set of read-only NDB list endpoints with the configured
credentials and print a summary table. Exits non-zero if any call fails.`,
		RunE: runCheck,
	}
	addNDBFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadNDBConfig(v)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(v.GetString("log-level"), v.GetString("log-format"))
	if err != nil {
		return err
	}
	gateway, err := newGateway(cfg, logger, nil)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results := checkAll(ctx, gateway, checkEndpoints)

	checkLogger := logging.WithOperation(logger, "check")
	for _, r := range results {
		if r.Err != nil {
			checkLogger.Debug("endpoint check failed", logging.Endpoint(r.Endpoint), logging.Err(r.Err))
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "NDB %s (%s credential)\n", cfg.Host(), mustCredentialKind(cfg))
	failed := renderCheck(cmd.OutOrStdout(), results)
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	return nil
}

// checkAll calls every endpoint concurrently. Failures are recorded in
// the results rather than cancelling the remaining calls.
func checkAll(ctx context.Context, client ndb.Client, endpoints []string) []checkResult {
	results := make([]checkResult, len(endpoints))

	var g errgroup.Group
	g.SetLimit(4)
	for i, endpoint := range endpoints {
		g.Go(func() error {
			start := time.Now()
			res := checkResult{Endpoint: endpoint}
			body, err := client.Do(ctx, ndb.Get(endpoint))
			if err == nil {
				var records []map[string]any
				records, err = ndb.Collection(body)
				res.Records = len(records)
			}
			res.Err = err
			res.Duration = time.Since(start)
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// renderCheck prints the results table and returns the number of failures.
func renderCheck(w io.Writer, results []checkResult) int {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Endpoint", "Status", "Records", "Duration"})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			t.AppendRow(table.Row{r.Endpoint, text.FgRed.Sprint("FAIL"), "-", r.Duration.Round(time.Millisecond)})
			t.AppendRow(table.Row{"", text.FgRed.Sprint(r.Err.Error()), "", ""})
			continue
		}
		t.AppendRow(table.Row{r.Endpoint, text.FgGreen.Sprint("OK"), r.Records, r.Duration.Round(time.Millisecond)})
	}
	t.Render()
	return failed
}
