// Package catalog implements the search tools backed by the market.dev
// catalog API.
//
// Each [Domain] (experts, projects) declares its tool name, description and
// parameter schema. A [Handler] serves one domain:
//
//	client, _ := catalog.NewClient(catalog.DefaultBaseURL, nil)
//	h := catalog.NewHandler(catalog.Experts, client)
//	res := h.Execute(ctx, map[string]any{"query": "react", "location": "Remote"})
//
// An invocation is a straight line: validate, log, build the outbound query,
// GET <base>/<domain>/search, log, return. There is no caching, retrying or
// post-processing; the catalog's JSON is passed through as the result.
package catalog
