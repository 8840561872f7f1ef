// Package mcpserver exposes the model library, the scripted wizard and the
// SD card status as MCP tools, over stdio or a local HTTP endpoint.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mark3labs/txcompanion/internal/config"
	"github.com/mark3labs/txcompanion/internal/library"
	"github.com/mark3labs/txcompanion/internal/logger"
	"github.com/mark3labs/txcompanion/internal/sdcard"
)

var log = logger.Named("mcp")

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps an MCP server with the txcompanion tools registered.
type Server struct {
	store     *library.Store
	cfg       *config.Config
	card      *sdcard.Card
	mcpServer *server.MCPServer

	mu        sync.Mutex
	stdServer *http.Server
	port      int
}

// New creates the server and registers its tools. Nothing is served until
// ServeStdio or Start is called.
func New(store *library.Store, cfg *config.Config, card *sdcard.Card) *Server {
	s := &Server{store: store, cfg: cfg, card: card}
	s.mcpServer = server.NewMCPServer(
		"txcompanion",
		Version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// ServeStdio serves MCP on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	log.Debug("serving MCP on stdio")
	return server.ServeStdio(s.mcpServer)
}

// Start serves MCP over HTTP on a random local port and returns the port.
func (s *Server) Start(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find available port: %w", err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(s.mcpServer, server.WithStateLess(true)))
	s.stdServer = &http.Server{Handler: mux}

	// the goroutine keeps its own reference so Stop can clear the field
	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("MCP server error: %v", err)
		}
	}()

	log.Info("MCP server listening on port %d", s.port)
	return s.port, nil
}

// Stop shuts the HTTP server down.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}
	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.stdServer = nil
	log.Debug("MCP server stopped")
	return nil
}

// URL returns the HTTP endpoint of a started server.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
