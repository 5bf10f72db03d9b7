package registry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/jonwraymond/marketdev-mcp/schema"
	"github.com/jonwraymond/marketdev-mcp/tool"
)

func echoDefinition(name string) tool.Definition {
	return tool.Definition{
		Name:        name,
		Title:       "Echo",
		Description: "Echoes the message argument back",
		Schema: schema.New(
			schema.String("message", "Text to echo").Required().NonEmpty(),
		),
		Tags:    []string{"Echo", "test"},
		Summary: "Echo tool",
		Notes:   "Returns its input",
		Examples: []tool.Example{
			{Title: "Hello", Args: map[string]any{"message": "hello"}},
		},
	}
}

func echoHandler(_ context.Context, args map[string]any) tool.Result {
	return tool.Success(map[string]any{"message": args["message"]})
}

func TestRegistry_Register(t *testing.T) {
	reg := New()

	if err := reg.Register(echoDefinition("echo"), echoHandler); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	err := reg.Register(echoDefinition("echo"), echoHandler)
	if !errors.Is(err, ErrToolExists) {
		t.Errorf("Register() duplicate error = %v, want ErrToolExists", err)
	}
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	tests := []struct {
		name    string
		def     tool.Definition
		handler tool.Handler
	}{
		{name: "empty name", def: echoDefinition(""), handler: echoHandler},
		{name: "nil handler", def: echoDefinition("echo"), handler: nil},
		{name: "nil schema", def: tool.Definition{Name: "echo"}, handler: echoHandler},
		{
			name: "bad default",
			def: tool.Definition{
				Name:   "echo",
				Schema: schema.New(schema.Integer("n", "").Range(1, 2).Default(9)),
			},
			handler: echoHandler,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New()
			err := reg.Register(tt.def, tt.handler)
			if !errors.Is(err, ErrInvalidDefinition) {
				t.Errorf("Register() error = %v, want ErrInvalidDefinition", err)
			}
			if len(reg.Names()) != 0 {
				t.Errorf("Names() = %v, want empty", reg.Names())
			}
		})
	}
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	reg := New()
	reg.MustRegister(echoDefinition("echo"), echoHandler)

	defer func() {
		if recover() == nil {
			t.Error("MustRegister() should panic on duplicate")
		}
	}()
	reg.MustRegister(echoDefinition("echo"), echoHandler)
}

func TestRegistry_GetAndNames(t *testing.T) {
	reg := New()
	_ = reg.Register(echoDefinition("zeta"), echoHandler)
	_ = reg.Register(echoDefinition("alpha"), echoHandler)

	names := reg.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("Names() = %v, want [alpha zeta]", names)
	}

	def, ok := reg.Get("alpha")
	if !ok {
		t.Fatal("Get(alpha) returned false")
	}
	if def.Title != "Echo" {
		t.Errorf("Get().Title = %q, want %q", def.Title, "Echo")
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get() should return false for unknown tool")
	}
}

func TestRegistry_List(t *testing.T) {
	reg := New(WithNamespace("test"))
	_ = reg.Register(echoDefinition("echo"), echoHandler)

	tools := reg.List()
	if len(tools) != 1 {
		t.Fatalf("List() returned %d tools, want 1", len(tools))
	}
	got := tools[0]
	if got.Name != "echo" {
		t.Errorf("Name = %q, want %q", got.Name, "echo")
	}
	if got.Namespace != "test" {
		t.Errorf("Namespace = %q, want %q", got.Namespace, "test")
	}
	if got.Annotations == nil || !got.Annotations.ReadOnlyHint {
		t.Error("Annotations.ReadOnlyHint should be set")
	}
	is, ok := got.InputSchema.(map[string]any)
	if !ok {
		t.Fatalf("InputSchema = %T, want map", got.InputSchema)
	}
	if is["type"] != "object" {
		t.Errorf("InputSchema.type = %v, want object", is["type"])
	}
}

func TestRegistry_Dispatch(t *testing.T) {
	reg := New()
	_ = reg.Register(echoDefinition("echo"), echoHandler)

	res := reg.Dispatch(context.Background(), "echo", map[string]any{"message": "hi"})
	if !res.OK() {
		t.Fatalf("Dispatch() err = %v", res.Err)
	}
	if res.Text != `{"message":"hi"}` {
		t.Errorf("Text = %q, want %q", res.Text, `{"message":"hi"}`)
	}
}

func TestRegistry_DispatchUnknown(t *testing.T) {
	reg := New()

	res := reg.Dispatch(context.Background(), "missing", nil)
	if res.OK() {
		t.Fatal("Dispatch() of unknown tool succeeded")
	}
	if !errors.Is(res.Err, ErrToolNotFound) {
		t.Errorf("Err = %v, want ErrToolNotFound", res.Err)
	}
	if !errors.Is(res.Err, tool.ErrUserFacing) {
		t.Errorf("Err = %v, want user-facing", res.Err)
	}
}

func TestRegistry_DispatchNormalizesErrors(t *testing.T) {
	tests := []struct {
		name        string
		handler     tool.Handler
		wantMessage string
	}{
		{
			name: "user error unchanged",
			handler: func(context.Context, map[string]any) tool.Result {
				return tool.Failure(tool.NewUserError("bad request"))
			},
			wantMessage: "bad request",
		},
		{
			name: "plain error wrapped",
			handler: func(context.Context, map[string]any) tool.Result {
				return tool.Failure(errors.New("boom"))
			},
			wantMessage: "Error running echo: boom",
		},
		{
			name: "panic recovered",
			handler: func(context.Context, map[string]any) tool.Result {
				panic("kaboom")
			},
			wantMessage: "Error running echo: panic: kaboom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := New()
			_ = reg.Register(echoDefinition("echo"), tt.handler)

			res := reg.Dispatch(context.Background(), "echo", nil)
			if res.OK() {
				t.Fatal("Dispatch() succeeded")
			}
			var ue *tool.UserError
			if !errors.As(res.Err, &ue) {
				t.Fatalf("Err = %T, want *tool.UserError", res.Err)
			}
			if ue.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", ue.Message, tt.wantMessage)
			}
		})
	}
}

func TestRegistry_DispatchLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	reg := New(WithLogger(logger))

	_ = reg.Register(echoDefinition("echo"), func(ctx context.Context, _ map[string]any) tool.Result {
		tool.LoggerFrom(ctx).Info("handled")
		return tool.Success(nil)
	})

	reg.Dispatch(context.Background(), "echo", nil)
	if !strings.Contains(buf.String(), "msg=handled") || !strings.Contains(buf.String(), "tool=echo") {
		t.Errorf("log output = %q, want handled record tagged with tool", buf.String())
	}

	// A caller-supplied logger takes precedence.
	buf.Reset()
	var own bytes.Buffer
	ctx := tool.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&own, nil)))
	reg.Dispatch(ctx, "echo", nil)
	if buf.Len() != 0 {
		t.Errorf("registry logger used despite context logger: %q", buf.String())
	}
	if !strings.Contains(own.String(), "msg=handled") {
		t.Errorf("context logger output = %q", own.String())
	}
}

func TestRegistry_ConcurrentDispatch(t *testing.T) {
	reg := New()
	_ = reg.Register(echoDefinition("echo"), echoHandler)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := reg.Dispatch(context.Background(), "echo", map[string]any{"message": "x"})
			if !res.OK() {
				t.Errorf("Dispatch() err = %v", res.Err)
			}
		}()
	}
	wg.Wait()
}

func TestRegistry_Search(t *testing.T) {
	reg := New(WithNamespace("test"))
	_ = reg.Register(echoDefinition("echo"), echoHandler)

	results, err := reg.Search("echo", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Search() returned no results")
	}
	if results[0].ID != "test:echo" {
		t.Errorf("results[0].ID = %q, want %q", results[0].ID, "test:echo")
	}
}

func TestRegistry_Describe(t *testing.T) {
	reg := New()
	_ = reg.Register(echoDefinition("echo"), echoHandler)

	doc, err := reg.Describe("echo")
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if doc.Summary != "Echo tool" {
		t.Errorf("Summary = %q, want %q", doc.Summary, "Echo tool")
	}
	if doc.Tool == nil || doc.Tool.Name != "echo" {
		t.Errorf("doc.Tool = %v, want echo", doc.Tool)
	}

	if _, err := reg.Describe("missing"); !errors.Is(err, ErrToolNotFound) {
		t.Errorf("Describe(missing) error = %v, want ErrToolNotFound", err)
	}
}

func TestRegistry_ToolID(t *testing.T) {
	reg := New()
	if got := reg.ToolID("search_experts"); got != "marketdev:search_experts" {
		t.Errorf("ToolID() = %q", got)
	}
	if reg.Namespace() != DefaultNamespace {
		t.Errorf("Namespace() = %q, want %q", reg.Namespace(), DefaultNamespace)
	}
}
