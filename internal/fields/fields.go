// Package fields validates item data against a collection's declared fields.
// Each field carries a type tag; the tag selects a FieldType from a Registry,
// and the FieldType decides whether an untrusted JSON value is acceptable.
package fields

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Field is one declared field of a collection.
type Field struct {
	Name     string   `json:"name"`
	TypeName string   `json:"typeName"`
	Options  []string `json:"options,omitempty"`
}

// Collection is the schema of a collection: its name and its fields.
type Collection struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// FieldType validates values of one field type.
type FieldType interface {
	// Validate checks raw, the JSON value submitted for f.
	Validate(f Field, raw json.RawMessage) error
}

// FieldTypeFunc adapts a function to FieldType.
type FieldTypeFunc func(f Field, raw json.RawMessage) error

func (fn FieldTypeFunc) Validate(f Field, raw json.RawMessage) error { return fn(f, raw) }

// FieldError reports an invalid value for a named field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// Registry maps type tags to field types.
type Registry struct {
	types map[string]FieldType
}

// NewRegistry returns a registry holding the built-in field types.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]FieldType)}
	for name, ft := range builtins {
		r.types[name] = ft
	}
	return r
}

// Register adds or replaces a field type.
func (r *Registry) Register(typeName string, ft FieldType) {
	r.types[typeName] = ft
}

// TypeNames returns the registered type tags in sorted order.
func (r *Registry) TypeNames() []string {
	names := make([]string, 0, len(r.types))
	for n := range r.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CheckSchema verifies that every field is named, unique and of a known type.
func (r *Registry) CheckSchema(c Collection) error {
	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if f.Name == "" {
			return &FieldError{Field: f.Name, Reason: "name is required"}
		}
		if seen[f.Name] {
			return &FieldError{Field: f.Name, Reason: "declared more than once"}
		}
		seen[f.Name] = true
		if _, ok := r.types[f.TypeName]; !ok {
			return &FieldError{Field: f.Name, Reason: fmt.Sprintf("unknown field type %q", f.TypeName)}
		}
		if f.TypeName == TypeSelect && len(f.Options) == 0 {
			return &FieldError{Field: f.Name, Reason: "select field needs options"}
		}
	}
	return nil
}

// Validate checks data, which must be a JSON object keyed by field name.
// Declared fields may be omitted or null; undeclared keys are rejected.
func (r *Registry) Validate(c Collection, data json.RawMessage) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("data must be a JSON object: %w", err)
	}

	declared := make(map[string]Field, len(c.Fields))
	for _, f := range c.Fields {
		declared[f.Name] = f
	}

	names := make([]string, 0, len(values))
	for n := range values {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		f, ok := declared[name]
		if !ok {
			return &FieldError{Field: name, Reason: "not declared by the collection"}
		}
		raw := values[name]
		if string(raw) == "null" {
			continue
		}
		ft, ok := r.types[f.TypeName]
		if !ok {
			return &FieldError{Field: name, Reason: fmt.Sprintf("unknown field type %q", f.TypeName)}
		}
		if err := ft.Validate(f, raw); err != nil {
			return &FieldError{Field: name, Reason: err.Error()}
		}
	}
	return nil
}
