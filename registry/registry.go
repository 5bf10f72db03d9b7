package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/marketdev-mcp/tool"
)

// DefaultNamespace is the namespace tools are listed and indexed under.
const DefaultNamespace = "marketdev"

// Common errors for registry operations.
var (
	ErrToolExists        = errors.New("tool already registered")
	ErrToolNotFound      = errors.New("tool not found")
	ErrInvalidDefinition = errors.New("invalid tool definition")
)

type entry struct {
	def     tool.Definition
	handler tool.Handler
}

// Registry maps tool names to definitions and handlers.
//
// Contract:
// - Concurrency: safe for concurrent Register and Dispatch.
// - Dispatch never panics and never returns a result whose error is not a *tool.UserError.
type Registry struct {
	mu        sync.RWMutex
	namespace string
	logger    *slog.Logger
	tools     map[string]entry
	disc      *discovery
}

// Option configures a Registry.
type Option func(*Registry)

// WithNamespace sets the namespace used for tool IDs.
func WithNamespace(ns string) Option {
	return func(r *Registry) {
		if ns != "" {
			r.namespace = ns
		}
	}
}

// WithLogger sets the logger handlers receive when the dispatch context
// carries none.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		namespace: DefaultNamespace,
		logger:    slog.New(slog.DiscardHandler),
		tools:     make(map[string]entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.disc = newDiscovery()
	return r
}

// Namespace returns the namespace tools are registered under.
func (r *Registry) Namespace() string {
	return r.namespace
}

// Register adds a tool. Names must be unique; registering a duplicate name
// returns ErrToolExists.
func (r *Registry) Register(def tool.Definition, h tool.Handler) error {
	if def.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	if h == nil {
		return fmt.Errorf("%w: %s: handler is nil", ErrInvalidDefinition, def.Name)
	}
	if def.Schema == nil {
		return fmt.Errorf("%w: %s: schema is nil", ErrInvalidDefinition, def.Name)
	}
	if err := def.Schema.Check(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, def.Name, err)
	}
	if _, err := def.Schema.Resolve(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, def.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolExists, def.Name)
	}
	mt, err := r.modelTool(def)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, def.Name, err)
	}
	if err := r.disc.add(mt, def); err != nil {
		return fmt.Errorf("indexing %s: %w", def.Name, err)
	}
	r.tools[def.Name] = entry{def: def, handler: h}
	return nil
}

// MustRegister is like Register but panics on error. Intended for startup.
func (r *Registry) MustRegister(def tool.Definition, h tool.Handler) {
	if err := r.Register(def, h); err != nil {
		panic(err)
	}
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (tool.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tools[name]
	return e.def, ok
}

// Names returns tool names sorted for deterministic output.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.tools))
	for name := range r.tools {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// List returns the tool declarations sorted by name.
func (r *Registry) List() []model.Tool {
	names := r.Names()
	out := make([]model.Tool, 0, len(names))
	for _, name := range names {
		def, ok := r.Get(name)
		if !ok {
			continue
		}
		mt, err := r.modelTool(def)
		if err != nil {
			continue
		}
		out = append(out, mt)
	}
	return out
}

// Dispatch invokes the handler registered under name.
//
// The handler receives a context carrying a structured logger: the caller's,
// if ctx already has one, otherwise the registry's. An unknown name is a host
// protocol error and is reported as an internal fault.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (res tool.Result) {
	r.mu.RLock()
	e, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return tool.Failure(tool.AsUserError(fmt.Errorf("%w: %s", ErrToolNotFound, name), "Error dispatching tool"))
	}

	if !tool.HasLogger(ctx) {
		ctx = tool.WithLogger(ctx, r.logger.With("tool", name))
	}

	defer func() {
		if p := recover(); p != nil {
			res = tool.Failure(tool.AsUserError(fmt.Errorf("panic: %v", p), "Error running "+name))
		}
	}()

	res = e.handler(ctx, args)
	if !res.OK() {
		res.Err = tool.AsUserError(res.Err, "Error running "+name)
	}
	return res
}

// ToolID returns the namespaced ID of a tool name.
func (r *Registry) ToolID(name string) string {
	return r.namespace + ":" + name
}

func (r *Registry) modelTool(def tool.Definition) (model.Tool, error) {
	inputSchema, err := def.Schema.Map()
	if err != nil {
		return model.Tool{}, err
	}
	return model.Tool{
		Tool: mcp.Tool{
			Name:        def.Name,
			Title:       def.Title,
			Description: def.Description,
			InputSchema: inputSchema,
			Annotations: readOnlyAnnotations(def.Title),
		},
		Namespace: r.namespace,
		Tags:      model.NormalizeTags(def.Tags),
	}, nil
}

// readOnlyAnnotations marks a tool as a side-effect-free lookup against an
// open-world remote service.
func readOnlyAnnotations(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		Title:          title,
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(true),
	}
}

func boolPtr(b bool) *bool { return &b }
