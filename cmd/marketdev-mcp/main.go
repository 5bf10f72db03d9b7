// Command marketdev-mcp serves the market.dev catalog search tools to an MCP
// host over stdio.
//
// Usage:
//
//	marketdev-mcp [--base-url URL] [--log-level LEVEL]
//	marketdev-mcp tools list
//	marketdev-mcp tools describe search_experts
//	marketdev-mcp tools search "find developers"
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/marketdev-mcp/catalog"
	"github.com/jonwraymond/marketdev-mcp/server"
)

type config struct {
	baseURL  string
	logLevel string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config{}
	cmd := &cobra.Command{
		Use:   "marketdev-mcp",
		Short: "MCP server for searching market.dev experts and projects",
		Long: "Serves the search_experts and search_projects tools over MCP on stdin/stdout.\n" +
			"Diagnostics are written to stderr. The server exits when the host closes stdin.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.baseURL, "base-url", catalog.DefaultBaseURL, "catalog API base URL")
	flags.StringVar(&cfg.logLevel, "log-level", "info", "diagnostic log level (debug, info, warn, error)")

	cmd.AddCommand(newToolsCmd(cfg))
	return cmd
}

func serve(cmd *cobra.Command, cfg *config) error {
	srv, logger, err := cfg.server(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Error("server stopped", "error", err)
		return err
	}
	return nil
}

// server builds a Server from cfg whose diagnostics go to w.
func (cfg *config) server(w io.Writer) (*server.Server, *slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", cfg.logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))

	srv, err := server.New(server.Options{
		BaseURL: cfg.baseURL,
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return srv, logger, nil
}
