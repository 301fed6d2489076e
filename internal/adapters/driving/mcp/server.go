package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lexiverse-cli/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server exposes the document session to MCP clients. Tool calls drive the
// SessionController (analyze_document, reset_session) and the ChatEngine
// (ask_question); resources render their snapshots read-only. The server
// holds no state of its own, so a TUI or CLI sharing the same ports sees
// every change an assistant makes.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer registers the LexiVerse tools and resources over ports.
// Both the session controller and the chat engine are required.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "lexiverse",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio, the transport desktop assistants launch the
// binary with. It blocks until ctx is cancelled or the client disconnects.
// Tool calls run with the request context, so an upload in flight is
// abandoned when the client goes away.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp: serving over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr. Every client
// connection shares the same session, matching the single-session model of
// the CLI. It blocks until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Debug("mcp: serving over http on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
