// Package server assembles the market.dev MCP server.
//
// New builds a registry, registers one catalog search tool per domain, and
// mounts the registry on an MCP server. Run serves it over any MCP
// transport:
//
//	srv, err := server.New(server.Options{Logger: logger})
//	if err != nil {
//		return err
//	}
//	return srv.Run(ctx, &mcp.StdioTransport{})
package server
