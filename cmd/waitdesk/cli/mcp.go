package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	wmcp "github.com/waitdesk/waitdesk/internal/mcp"
	"github.com/waitdesk/waitdesk/internal/service"
)

func newMCPCmd() *cobra.Command {
	var (
		transport string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server for AI agents",
		Long: `Start a Model Context Protocol (MCP) server exposing read-only waitlist tools:
waitlist_stats, waitlist_query and waitlist_get.

In stdio mode the server speaks JSON-RPC over stdin/stdout, for clients that
launch it as a subprocess. In HTTP mode it listens on --port.`,
		Example: `  waitdesk mcp                              # stdio mode
  waitdesk mcp --transport http --port 3001  # Streamable HTTP mode`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(cmd, transport, port)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport mode: stdio or http")
	cmd.Flags().IntVar(&port, "port", 3001, "HTTP port (only used with --transport http)")

	return cmd
}

func runMCP(cmd *cobra.Command, transport string, port int) error {
	if transport != "stdio" && transport != "http" {
		return fmt.Errorf("unsupported transport %q; use 'stdio' or 'http'", transport)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Stdout carries the protocol in stdio mode; the logger writes to stderr.
	logger := cfg.NewLogger()
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	provider, st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	mcpSrv := wmcp.NewMCPServer(service.NewWaitlistService(st), loc, versionString(), logger)

	if transport == "stdio" {
		return mcpSrv.ServeStdio()
	}
	return mcpSrv.ServeHTTP(fmt.Sprintf(":%d", port))
}
