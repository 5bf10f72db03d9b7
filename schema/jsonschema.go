package schema

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// JSONSchema renders the declaration as a JSON Schema object.
func (s *Schema) JSONSchema() *jsonschema.Schema {
	out := &jsonschema.Schema{
		Type:          "object",
		Properties:    make(map[string]*jsonschema.Schema, len(s.fields)),
		PropertyOrder: make([]string, 0, len(s.fields)),
	}
	for _, f := range s.fields {
		out.Properties[f.Name] = f.jsonSchema()
		out.PropertyOrder = append(out.PropertyOrder, f.Name)
		if f.IsRequired {
			out.Required = append(out.Required, f.Name)
		}
	}
	return out
}

// Resolve renders and resolves the JSON Schema, validating declared defaults.
func (s *Schema) Resolve() (*jsonschema.Resolved, error) {
	resolved, err := s.JSONSchema().Resolve(&jsonschema.ResolveOptions{ValidateDefaults: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return resolved, nil
}

// Map renders the JSON Schema as a generic map, the shape most tool
// catalogs store.
func (s *Schema) Map() (map[string]any, error) {
	data, err := json.Marshal(s.JSONSchema())
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (f Field) jsonSchema() *jsonschema.Schema {
	js := &jsonschema.Schema{
		Type:        string(f.Kind),
		Description: f.Description,
	}
	if f.Kind == KindString && f.MinLength > 0 {
		js.MinLength = jsonschema.Ptr(f.MinLength)
	}
	if f.Min != nil {
		js.Minimum = jsonschema.Ptr(float64(*f.Min))
	}
	if f.Max != nil {
		js.Maximum = jsonschema.Ptr(float64(*f.Max))
	}
	if f.DefaultValue != nil {
		if raw, err := json.Marshal(f.DefaultValue); err == nil {
			js.Default = raw
		}
	}
	return js
}
