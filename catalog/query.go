package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jonwraymond/marketdev-mcp/schema"
)

// Param is one outbound query parameter.
type Param struct {
	Key   string
	Value string
}

// Query is an ordered set of outbound query parameters.
type Query []Param

// Get returns the value of the first parameter named key.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Encode renders the query string in parameter order, form-escaping keys and
// values.
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// BuildQuery derives the outbound query from validated arguments.
//
// The search term is always first, as q. Every other declared field that is
// defined in args follows in declaration order. Filled-in defaults count as
// defined; absent optional fields are left out entirely.
func BuildQuery(s *schema.Schema, args schema.Args) Query {
	query, _ := args.String(ParamQuery)
	q := Query{{Key: "q", Value: query}}
	for _, f := range s.Fields() {
		if f.Name == ParamQuery || !args.Has(f.Name) {
			continue
		}
		q = append(q, Param{Key: f.Name, Value: formatValue(args[f.Name])})
	}
	return q
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	}
	return fmt.Sprint(v)
}
