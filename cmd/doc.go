// Package cmd provides the command-line interface for mcp-ndb.
//
// Subcommands:
//   - serve: starts the MCP server (default when no subcommand is given)
//   - check: queries a set of NDB list endpoints and prints a status table
//   - tools: prints the tool catalogue after allow, deny and read-only filtering
//   - version: displays the application version
//   - self-update: updates the binary to the latest GitHub release
//
// Command Structure:
//
//	mcp-ndb [flags]                 # Starts the MCP server (default)
//	mcp-ndb serve [flags]           # Explicitly starts the MCP server
//	mcp-ndb check [flags]           # Verifies connectivity and credentials
//	mcp-ndb tools [flags]           # Lists exposed tools
//	mcp-ndb version                 # Shows version information
//	mcp-ndb self-update             # Updates to latest release
//
// Configuration is read with viper in this order: command-line flag, NDB_
// prefixed environment variable, YAML file given by --config, flag default.
//
//	NDB_BASE_URL=https://ndb.example.com NDB_TOKEN=... mcp-ndb serve
//	mcp-ndb serve --transport streamable-http --http-addr :9000 --http-endpoint /mcp
//	mcp-ndb serve --config /etc/mcp-ndb.yaml --read-only
package cmd
