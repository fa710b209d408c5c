package cli

import (
	"errors"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/notebook-rag/internal/adapters/driving/mcp"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the notebook to AI assistants",
	Long:  `Commands for the Model Context Protocol (MCP) integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serves the notebook over the Model Context Protocol. Assistants can
search passages, gather ranked context for a question, add text or web pages,
list documents and remove them.

Without --port the server speaks JSON-RPC on stdio, which is what desktop
assistants expect:

  {
    "mcpServers": {
      "notebook": {
        "command": "/path/to/notebook",
        "args": ["mcp", "serve"]
      }
    }
  }

With --port it serves streamable HTTP instead, for the MCP Inspector or
remote clients:

  notebook mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "HTTP host to bind")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if notebookService == nil {
		return errors.New("notebook service not configured")
	}
	if mcpPort < 0 || mcpPort > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Notebook: notebookService,
		Ingest:   ingestService,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if mcpPort == 0 {
		return server.Run(ctx)
	}

	addr := net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
	// stdout stays clean for stdio mode, so status goes to stderr.
	cmd.PrintErrf("MCP server listening on http://%s\n", addr)
	return server.RunHTTP(ctx, addr)
}
