// Package schema provides declarative parameter schemas for tools.
//
// A [Schema] is an ordered list of [Field] declarations. The same value serves
// two purposes:
//
//   - Validate turns raw, JSON-decoded arguments into typed [Args], filling in
//     declared defaults for fields that are wholly absent.
//   - JSONSchema renders the declaration as a JSON Schema object for hosts
//     that list tools (MCP tools/list).
//
// # Example
//
//	s := schema.New(
//	    schema.String("query", "Search term").Required().NonEmpty(),
//	    schema.Integer("count", "Number of results").Range(1, 20).Default(10),
//	)
//
//	args, err := s.Validate(map[string]any{"query": "react"})
//	if err != nil {
//	    var verr *schema.ValidationError
//	    errors.As(err, &verr) // verr.Field, verr.Constraint
//	}
//	count, _ := args.Int("count") // 10
//
// Validation never partially succeeds: on error no [Args] are returned.
package schema
