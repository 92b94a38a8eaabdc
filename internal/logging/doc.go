// Package logging provides structured logging helpers for mcp-ndb.
//
// All components log through log/slog with a logger passed in explicitly from the
// command layer. This package only adds consistent attribute names and the
// sanitizers used before anything derived from configuration reaches a log line.
//
//	logger := logging.WithTool(logger, "ndb_list_databases")
//	logger.Info("remote call completed",
//	    logging.Method("GET"),
//	    logging.Endpoint("/databases"),
//	    logging.StatusCode(200))
//
// NDB passwords and tokens are never logged; use SanitizeToken and SanitizeUsername.
// Server URLs go through SanitizeHost so that IP addresses do not end up in log storage.
package logging
