package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/tickertape/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts tickertape as an MCP Server.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP, with /health, /info, /tools and /metrics alongside.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		runServe(cmd, transport, port)
	},
}

// runServe serves until the transport ends. Empty transport or zero port keep the configured values.
func runServe(cmd *cobra.Command, transport string, port int) {
	app := mustApp(cmd)
	defer app.Close()

	if transport != "" {
		app.Config.Server.Transport = transport
	}
	if port != 0 {
		app.Config.Server.Port = port
	}
	logger := app.Logger
	srv := app.MCPServer()

	switch app.Config.Server.Transport {
	case "stdio":
		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		logger.Info("Starting tickertape MCP Server (Stdio)")
		if err := srv.ServeStdio(); err != nil {
			logger.Error("MCP Server execution failed", "error", err)
			os.Exit(1)
		}
	case "sse":
		if tui.IsTerminal(os.Stderr) {
			tui.PrintBanner(os.Stderr)
		}
		logger.Info("Starting tickertape MCP Server (SSE)", "port", app.Config.Server.Port)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.ServeSSE(ctx, app.Config.Server.Port); err != nil {
			logger.Error("MCP Server execution failed", "error", err)
			os.Exit(1)
		}
		logger.Info("MCP Server stopped gracefully")
	default:
		logger.Error("Unknown transport. Supported: stdio, sse", "transport", app.Config.Server.Transport)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("transport", "", "Transport protocol to use: 'stdio' or 'sse' (default from config: stdio)")
	serveCmd.Flags().Int("port", 0, "Port to listen on (only for SSE, default from config: 8080)")
}
