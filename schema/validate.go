package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArguments is matched by every *ValidationError.
var ErrInvalidArguments = errors.New("invalid arguments")

// ValidationError describes the first constraint an argument set violated.
type ValidationError struct {
	// Field is the offending parameter name.
	Field string

	// Constraint is a human-readable description of the violated rule.
	Constraint string
}

// Error returns "<field>: <constraint>".
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Constraint)
}

// Is reports whether target is ErrInvalidArguments.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArguments
}

// Args is a validated argument set. Values are string or int according to
// the field kind.
type Args map[string]any

// Has reports whether name is defined, either supplied or defaulted.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the string value for name.
func (a Args) String(name string) (string, bool) {
	v, ok := a[name].(string)
	return v, ok
}

// Int returns the integer value for name.
func (a Args) Int(name string) (int, bool) {
	v, ok := a[name].(int)
	return v, ok
}

// Validate checks raw arguments against the schema.
//
// Fields that are missing or explicitly null are absent: they take the
// declared default if there is one, fail if required, and are otherwise left
// out of the result. Undeclared fields are dropped.
func (s *Schema) Validate(raw map[string]any) (Args, error) {
	args := make(Args, len(s.fields))
	for _, f := range s.fields {
		v, present := raw[f.Name]
		if !present || v == nil {
			switch {
			case f.DefaultValue != nil:
				dv, err := f.coerce(f.DefaultValue)
				if err != nil {
					return nil, err
				}
				args[f.Name] = dv
			case f.IsRequired:
				return nil, &ValidationError{Field: f.Name, Constraint: "is required"}
			}
			continue
		}

		cv, err := f.coerce(v)
		if err != nil {
			return nil, err
		}
		args[f.Name] = cv
	}
	return args, nil
}

// coerce converts v to the field's Go type and applies its constraints.
func (f Field) coerce(v any) (any, error) {
	switch f.Kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, &ValidationError{Field: f.Name, Constraint: fmt.Sprintf("must be a string, got %s", describe(v))}
		}
		if len([]rune(s)) < f.MinLength {
			if f.MinLength == 1 {
				return nil, &ValidationError{Field: f.Name, Constraint: "must not be empty"}
			}
			return nil, &ValidationError{Field: f.Name, Constraint: fmt.Sprintf("must be at least %d characters", f.MinLength)}
		}
		return s, nil

	case KindInteger:
		n, ok := toInt(v)
		if !ok {
			return nil, &ValidationError{Field: f.Name, Constraint: fmt.Sprintf("must be an integer, got %s", describe(v))}
		}
		if (f.Min != nil && n < *f.Min) || (f.Max != nil && n > *f.Max) {
			return nil, &ValidationError{Field: f.Name, Constraint: f.rangeText(n)}
		}
		return n, nil
	}
	return nil, &ValidationError{Field: f.Name, Constraint: fmt.Sprintf("has unsupported kind %q", f.Kind)}
}

func (f Field) rangeText(n int) string {
	switch {
	case f.Min != nil && f.Max != nil:
		return fmt.Sprintf("must be between %d and %d, got %d", *f.Min, *f.Max, n)
	case f.Min != nil:
		return fmt.Sprintf("must be at least %d, got %d", *f.Min, n)
	default:
		return fmt.Sprintf("must be at most %d, got %d", *f.Max, n)
	}
}

// toInt accepts integral JSON numbers in any of the shapes decoders produce.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return toInt(i)
		}
		if fl, err := n.Float64(); err == nil {
			return toInt(fl)
		}
	}
	return 0, false
}

func describe(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int32, int64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
