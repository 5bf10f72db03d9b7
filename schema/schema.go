package schema

import (
	"errors"
	"fmt"
)

// ErrInvalidSchema is returned by Check for malformed declarations.
var ErrInvalidSchema = errors.New("invalid schema")

// Kind is the semantic type of a field.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
)

// Field declares a single named parameter.
//
// Fields are built with [String] or [Integer] and refined with the chainable
// methods below; each method returns a modified copy.
type Field struct {
	Name        string
	Kind        Kind
	Description string

	// IsRequired rejects arguments that omit the field.
	IsRequired bool

	// MinLength is the minimum string length. Zero means no limit.
	MinLength int

	// Min and Max bound integer values when non-nil.
	Min *int
	Max *int

	// DefaultValue is used when the field is absent. Nil means no default.
	DefaultValue any
}

// String declares a string field.
func String(name, description string) Field {
	return Field{Name: name, Kind: KindString, Description: description}
}

// Integer declares an integer field.
func Integer(name, description string) Field {
	return Field{Name: name, Kind: KindInteger, Description: description}
}

// Required marks the field as required.
func (f Field) Required() Field {
	f.IsRequired = true
	return f
}

// NonEmpty requires a string field to have at least one character.
func (f Field) NonEmpty() Field {
	f.MinLength = 1
	return f
}

// Range bounds an integer field to [lo, hi].
func (f Field) Range(lo, hi int) Field {
	f.Min = &lo
	f.Max = &hi
	return f
}

// Default sets the value used when the field is absent.
func (f Field) Default(v any) Field {
	f.DefaultValue = v
	return f
}

// Schema is an ordered set of field declarations.
// A Schema is immutable after construction and safe for concurrent use.
type Schema struct {
	fields []Field
	byName map[string]int
}

// New creates a schema from fields in declaration order.
func New(fields ...Field) *Schema {
	s := &Schema{
		fields: make([]Field, len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	copy(s.fields, fields)
	for i, f := range s.fields {
		if _, dup := s.byName[f.Name]; !dup {
			s.byName[f.Name] = i
		}
	}
	return s
}

// Fields returns the declared fields in order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the declaration for name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Check reports malformed declarations: empty or duplicate names, unknown
// kinds, inverted ranges, and defaults that would not pass validation.
func (s *Schema) Check() error {
	seen := make(map[string]bool, len(s.fields))
	for _, f := range s.fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field name is required", ErrInvalidSchema)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, f.Name)
		}
		seen[f.Name] = true

		switch f.Kind {
		case KindString, KindInteger:
		default:
			return fmt.Errorf("%w: field %q has unknown kind %q", ErrInvalidSchema, f.Name, f.Kind)
		}
		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			return fmt.Errorf("%w: field %q has min %d > max %d", ErrInvalidSchema, f.Name, *f.Min, *f.Max)
		}
		if f.DefaultValue != nil {
			if _, err := f.coerce(f.DefaultValue); err != nil {
				return fmt.Errorf("%w: default for %q: %v", ErrInvalidSchema, f.Name, err)
			}
		}
	}
	return nil
}
