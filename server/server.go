package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/marketdev-mcp/catalog"
	"github.com/jonwraymond/marketdev-mcp/registry"
)

// Server serves the catalog search tools over MCP.
type Server struct {
	opts     Options
	registry *registry.Registry
	mcp      *mcp.Server
}

// New creates a Server with every catalog domain registered as a tool.
func New(opts Options) (*Server, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.applyDefaults()

	client, err := catalog.NewClient(opts.BaseURL, opts.HTTPClient)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}

	reg := registry.New(registry.WithLogger(opts.Logger))
	for _, d := range catalog.Domains() {
		h := catalog.NewHandler(d, client)
		if err := reg.Register(h.Definition(), h.Execute); err != nil {
			return nil, fmt.Errorf("registering %s: %w", d.ToolName, err)
		}
	}

	s := mcp.NewServer(&mcp.Implementation{
		Name:    opts.Name,
		Version: opts.Version,
	}, &mcp.ServerOptions{
		Logger: opts.Logger,
	})
	reg.Mount(s)

	return &Server{opts: opts, registry: reg, mcp: s}, nil
}

// Registry returns the registry holding the server's tools.
func (s *Server) Registry() *registry.Registry {
	return s.registry
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run serves a single session over t until the peer disconnects or ctx is
// done. Cancellation of ctx is a clean shutdown and returns nil.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	s.opts.Logger.Info("serving tools", "name", s.opts.Name, "version", s.opts.Version,
		"tools", s.registry.Names(), "baseURL", s.opts.BaseURL)

	err := s.mcp.Run(ctx, t)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
