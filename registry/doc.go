// Package registry holds the set of invocable tools and routes invocations
// to their handlers.
//
// # Registration
//
// Tools are registered once at startup. Names are unique; a duplicate name is
// rejected with ErrToolExists:
//
//	reg := registry.New(registry.WithLogger(logger))
//	if err := reg.Register(def, handler); err != nil {
//	    log.Fatal(err)
//	}
//
// # Dispatch
//
// Dispatch looks a tool up by name and runs its handler with a context that
// carries a structured logger. Whatever the handler does, the returned
// result's error is a *tool.UserError.
//
// # MCP
//
// Mount adds every registered tool to an MCP server. Calls arriving over the
// protocol are decoded, dispatched, and translated to CallToolResult values;
// handler log records are forwarded to the calling session as logging
// notifications.
//
// # Discovery
//
// Registered tools are also indexed (BM25) together with their documentation,
// so Search and Describe can answer questions about the declared surface
// without running anything.
package registry
