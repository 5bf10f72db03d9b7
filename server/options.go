package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jonwraymond/marketdev-mcp/catalog"
)

// Default configuration values.
const (
	DefaultName    = "Market.dev MCP"
	DefaultVersion = "0.1.0"
)

// ErrInvalidBaseURL is returned by New when Options.BaseURL is not an
// absolute http or https URL.
var ErrInvalidBaseURL = errors.New("server: invalid base URL")

// Options configures a Server.
type Options struct {
	// Name is the implementation name reported to the host.
	// Default: "Market.dev MCP"
	Name string

	// Version is the implementation version reported to the host.
	// Default: "0.1.0"
	Version string

	// BaseURL is the root of the catalog API.
	// Default: catalog.DefaultBaseURL
	BaseURL string

	// HTTPClient performs catalog requests.
	// Default: http.DefaultClient
	HTTPClient *http.Client

	// Logger receives server diagnostics. It must not write to stdout when
	// serving over stdio.
	// Default: a logger that discards everything
	Logger *slog.Logger
}

// validate checks the fields that are set.
func (o *Options) validate() error {
	if o.BaseURL == "" {
		return nil
	}
	u, err := url.Parse(o.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, o.BaseURL)
	}
	return nil
}

// applyDefaults sets default values for unset optional fields.
func (o *Options) applyDefaults() {
	if o.Name == "" {
		o.Name = DefaultName
	}
	if o.Version == "" {
		o.Version = DefaultVersion
	}
	if o.BaseURL == "" {
		o.BaseURL = catalog.DefaultBaseURL
	}
	if o.HTTPClient == nil {
		o.HTTPClient = http.DefaultClient
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}
