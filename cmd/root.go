package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// cfgFile is an optional YAML file read by every command that talks to NDB.
var cfgFile string

// rootCmd represents the base command for the mcp-ndb application.
var rootCmd = &cobra.Command{
	Use:   "mcp-ndb",
	Short: "MCP server for Nutanix Database Service",
	Long: `mcp-ndb is a Model Context Protocol (MCP) server that exposes the
Nutanix Database Service (NDB) API as tools: databases, clones, snapshots,
time machines, database servers, clusters, profiles, SLAs, operations, alerts
and users.

When run without subcommands, it starts the MCP server (equivalent to 'mcp-ndb serve').`,
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mcp-ndb version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file; keys match flag names (e.g. base-url)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newToolsCmd())
}
