// Package schema builds forms from declarative definitions: hand
// written JSON or YAML documents, or request bodies lifted from
// OpenAPI operations.
package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/rules"
)

// Field types accepted in definitions. An empty type means string.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeVoid    = "void"
)

// Definition describes a form: its identity, interaction pattern,
// seed data, and field tree.
type Definition struct {
	Name          string         `json:"name" yaml:"name"`
	Title         string         `json:"title,omitempty" yaml:"title,omitempty"`
	Pattern       string         `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Values        map[string]any `json:"values,omitempty" yaml:"values,omitempty"`
	InitialValues map[string]any `json:"initialValues,omitempty" yaml:"initialValues,omitempty"`
	Fields        []FieldDef     `json:"fields" yaml:"fields"`
}

// FieldDef describes one field. Object and void fields nest children
// under Fields; array fields describe their element shape under Items.
// Constraint fields translate to validation rules when the definition
// is scaffolded.
type FieldDef struct {
	Name         string     `json:"name" yaml:"name"`
	Type         string     `json:"type,omitempty" yaml:"type,omitempty"`
	Title        string     `json:"title,omitempty" yaml:"title,omitempty"`
	Required     bool       `json:"required,omitempty" yaml:"required,omitempty"`
	InitialValue any        `json:"initialValue,omitempty" yaml:"initialValue,omitempty"`
	Minimum      *float64   `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum      *float64   `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	MinLength    *int       `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength    *int       `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern      string     `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Enum         []any      `json:"enum,omitempty" yaml:"enum,omitempty"`
	Format       string     `json:"format,omitempty" yaml:"format,omitempty"`
	Fields       []FieldDef `json:"fields,omitempty" yaml:"fields,omitempty"`
	Items        *FieldDef  `json:"items,omitempty" yaml:"items,omitempty"`
}

var knownTypes = map[string]bool{
	"":          true,
	TypeString:  true,
	TypeNumber:  true,
	TypeInteger: true,
	TypeBoolean: true,
	TypeArray:   true,
	TypeObject:  true,
	TypeVoid:    true,
}

// Validate checks the definition for structural problems: missing or
// duplicate field names, unknown types, unknown formats, and children
// attached to field types that cannot hold them.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("schema: definition has no name")
	}
	if d.Pattern != "" && !form.Pattern(d.Pattern).Valid() {
		return fmt.Errorf("schema: %s: unknown pattern %q", d.Name, d.Pattern)
	}
	return validateFields(d.Name, d.Fields)
}

func validateFields(scope string, defs []FieldDef) error {
	seen := make(map[string]bool, len(defs))
	for _, fd := range defs {
		name := strings.TrimSpace(fd.Name)
		if name == "" {
			return fmt.Errorf("schema: %s: field has no name", scope)
		}
		if seen[name] {
			return fmt.Errorf("schema: %s: duplicate field %q", scope, name)
		}
		seen[name] = true

		child := scope + "." + name
		if !knownTypes[fd.Type] {
			return fmt.Errorf("schema: %s: unknown type %q", child, fd.Type)
		}
		if fd.Format != "" && !knownFormat(fd.Format) {
			return fmt.Errorf("schema: %s: unknown format %q (known: %s)",
				child, fd.Format, strings.Join(rules.Formats(), ", "))
		}
		if len(fd.Fields) > 0 && fd.Type != TypeObject && fd.Type != TypeVoid {
			return fmt.Errorf("schema: %s: only object and void fields nest children", child)
		}
		if fd.Items != nil && fd.Type != TypeArray {
			return fmt.Errorf("schema: %s: items requires an array field", child)
		}
		if err := validateFields(child, fd.Fields); err != nil {
			return err
		}
	}
	return nil
}

func knownFormat(name string) bool {
	for _, known := range rules.Formats() {
		if known == name {
			return true
		}
	}
	return false
}

// Rules converts the field's constraints into validation rules. Broken
// regular expressions are deferred: they surface when the rule first
// runs.
func (fd FieldDef) Rules() []rules.Rule {
	var out []rules.Rule
	if fd.Minimum != nil {
		out = append(out, rules.Min(*fd.Minimum))
	}
	if fd.Maximum != nil {
		out = append(out, rules.Max(*fd.Maximum))
	}
	if fd.MinLength != nil {
		out = append(out, rules.MinLength(*fd.MinLength))
	}
	if fd.MaxLength != nil {
		out = append(out, rules.MaxLength(*fd.MaxLength))
	}
	if fd.Pattern != "" {
		out = append(out, rules.Pattern(fd.Pattern))
	}
	if len(fd.Enum) > 0 {
		out = append(out, rules.Enum(fd.Enum))
	}
	if fd.Format != "" {
		out = append(out, rules.Format(fd.Format))
	}
	return out
}
