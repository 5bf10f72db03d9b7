package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonwraymond/marketdev-mcp/schema"
	"github.com/jonwraymond/marketdev-mcp/tool"
)

// Handler runs searches for a single domain.
// It holds no mutable state and is safe for concurrent use.
type Handler struct {
	domain Domain
	client *Client
}

// NewHandler creates a search handler for domain backed by client.
func NewHandler(domain Domain, client *Client) *Handler {
	return &Handler{domain: domain, client: client}
}

// Domain returns the domain the handler serves.
func (h *Handler) Domain() Domain {
	return h.domain
}

// Definition returns the tool declaration for the handler's domain.
func (h *Handler) Definition() tool.Definition {
	return h.domain.Definition()
}

// Execute validates args, queries the catalog, and returns its JSON payload.
//
// Invalid arguments fail before any request is made. Every failure is a
// *tool.UserError: a non-2xx status is reported with its code and reason;
// anything else unexpected is wrapped with the fault's message.
func (h *Handler) Execute(ctx context.Context, raw map[string]any) tool.Result {
	d := h.domain
	logger := tool.LoggerFrom(ctx)

	args, err := d.Schema.Validate(raw)
	if err != nil {
		return tool.Failure(&tool.UserError{
			Message: fmt.Sprintf("Invalid arguments for %s: %v", d.ToolName, err),
			Err:     err,
		})
	}

	query, _ := args.String(ParamQuery)
	logger.Info(d.Noun+" search started", startAttrs(d, args)...)

	payload, err := h.client.Search(ctx, d.Path(), BuildQuery(d.Schema, args))
	if err != nil {
		ue := h.userError(err)
		logger.Warn(d.Noun+" search failed", "domain", d.Name, "query", query, "error", ue.Message)
		return tool.Failure(ue)
	}

	logger.Info(d.Noun+" search completed", "domain", d.Name, "query", query, "resultsCount", resultsCount(payload))
	return tool.Success(payload)
}

func (h *Handler) userError(err error) *tool.UserError {
	var se *StatusError
	if errors.As(err, &se) {
		return &tool.UserError{
			Message: fmt.Sprintf("Failed to search %s: %s (%d)", h.domain.Name, se.Reason, se.Code),
			Err:     err,
		}
	}
	return tool.AsUserError(err, "Error searching "+h.domain.Name)
}

func startAttrs(d Domain, args schema.Args) []any {
	query, _ := args.String(ParamQuery)
	attrs := []any{"domain", d.Name, "query", query}
	for _, f := range d.Schema.Fields() {
		if f.Name == ParamQuery || !args.Has(f.Name) {
			continue
		}
		attrs = append(attrs, slog.Any(f.Name, args[f.Name]))
	}
	return attrs
}

// resultsCount is the payload length for arrays and "unknown" for any other
// shape.
func resultsCount(payload any) any {
	if list, ok := payload.([]any); ok {
		return len(list)
	}
	return "unknown"
}
