package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/marketdev-mcp/tool"
)

// Mount adds every registered tool to s.
//
// Each call is decoded, dispatched, and translated: a success becomes a single
// text content holding the JSON payload; a failure becomes a result with
// IsError set and the user-facing message as its text. Handler failures are
// never returned as protocol errors.
func (r *Registry) Mount(s *mcp.Server) {
	for _, name := range r.Names() {
		def, ok := r.Get(name)
		if !ok {
			continue
		}
		s.AddTool(&mcp.Tool{
			Name:        def.Name,
			Title:       def.Title,
			Description: def.Description,
			InputSchema: def.Schema.JSONSchema(),
			Annotations: readOnlyAnnotations(def.Title),
		}, r.callHandler(name))
	}
}

func (r *Registry) callHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw json.RawMessage
		var session *mcp.ServerSession
		if req != nil {
			session = req.Session
			if req.Params != nil {
				raw = req.Params.Arguments
			}
		}

		args, err := decodeArguments(raw)
		if err != nil {
			return errorResult(tool.NewUserError("Invalid arguments for %s: %v", name, err)), nil
		}

		ctx = tool.WithLogger(ctx, r.sessionLogger(session, name))
		return toCallToolResult(r.Dispatch(ctx, name, args)), nil
	}
}

// sessionLogger returns a logger that writes both to the registry's logger
// and, as notifications/message, to the calling MCP session.
func (r *Registry) sessionLogger(ss *mcp.ServerSession, name string) *slog.Logger {
	if ss == nil {
		return r.logger.With("tool", name)
	}
	client := mcp.NewLoggingHandler(ss, &mcp.LoggingHandlerOptions{LoggerName: r.namespace})
	return slog.New(teeHandler{client, r.logger.Handler()}).With("tool", name)
}

func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	args := make(map[string]any)
	if len(raw) == 0 {
		return args, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("arguments are not valid JSON: %w", err)
	}
	switch m := v.(type) {
	case nil:
		return args, nil
	case map[string]any:
		return m, nil
	default:
		return nil, errors.New("arguments must be a JSON object")
	}
}

func toCallToolResult(res tool.Result) *mcp.CallToolResult {
	if !res.OK() {
		return errorResult(res.UserError())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: res.Text}},
	}
}

func errorResult(err *tool.UserError) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Message}},
	}
}

// teeHandler fans records out to several slog handlers.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, rec.Level) {
			errs = append(errs, h.Handle(ctx, rec.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
