package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rostlab/tmvis/internal/logger"
)

// DefaultVersion is reported when no build version is supplied.
const DefaultVersion = "dev"

const instructions = `tmvis reports transmembrane topology of UniProt proteins.
Call get_annotations with an accession (P02945) or entry name (BACR_HALSA) to
get every source's membrane spans, the aligned per-residue table and the
structure colouring. Unknown proteins answer found=false. Read tmvis://legend
for the meaning of the label codes.`

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version announced to clients.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// Server is the MCP server for tmvis.
type Server struct {
	ports   *Ports
	server  *mcp.Server
	version string
	tools   []string
}

// NewServer creates a new MCP server with the given ports.
// list_proteins is only offered when a protein service is wired.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{ports: ports, version: DefaultVersion}
	for _, opt := range opts {
		opt(s)
	}

	s.server = mcp.NewServer(
		&mcp.Implementation{Name: "tmvis", Version: s.version},
		&mcp.ServerOptions{Instructions: instructions},
	)

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Version returns the version announced to clients.
func (s *Server) Version() string {
	return s.version
}

// Tools returns the names of the registered tools in registration order.
func (s *Server) Tools() []string {
	return append([]string(nil), s.tools...)
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	s.logReady("stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler serves the streamable MCP endpoint and a /healthz status document.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/", mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil))
	return mux
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("MCP server on %s shutting down", addr)
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	s.logReady(addr)

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

type health struct {
	Status      string   `json:"status"`
	Version     string   `json:"version"`
	Tools       []string `json:"tools"`
	LocalBrowse bool     `json:"local_browse"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", jsonMIME)
	_ = json.NewEncoder(w).Encode(health{
		Status:      "ok",
		Version:     s.version,
		Tools:       s.Tools(),
		LocalBrowse: s.ports.Protein != nil,
	})
}

func (s *Server) logReady(transport string) {
	logger.Info("tmvis MCP server %s on %s: tools %s", s.version, transport, strings.Join(s.tools, ", "))
	if s.ports.Protein == nil {
		logger.Info("No protein store wired; list_proteins is not offered")
	}
}
