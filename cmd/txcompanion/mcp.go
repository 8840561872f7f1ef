package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/txcompanion/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpFlags struct {
	http bool
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the model library and wizard over MCP",
	Long: `Start an MCP server exposing the model library, the scripted wizard
and the SD card status to MCP clients. Serves on stdio by default; --http
listens on a random local port instead.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().BoolVar(&mcpFlags.http, "http", false, "Serve streamable HTTP on a local port instead of stdio")
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := openLibrary(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := mcpserver.New(store, cfg, newCard())
	if !mcpFlags.http {
		return srv.ServeStdio()
	}

	if _, err := srv.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "MCP server listening at %s\n", srv.URL())
	<-ctx.Done()
	return srv.Stop()
}
