package schema

import (
	"fmt"

	"github.com/goliatone/go-formstate/pkg/fieldpath"
	"github.com/goliatone/go-formstate/pkg/form"
)

// Scaffold builds a live form from a definition. The definition
// supplies seed data, the interaction pattern, and the field tree;
// props carries everything else (logger, effects, devtools) and wins
// over the definition where both set something. Array items describe
// the element shape for round-tripping only: scaffolding registers the
// array field itself.
func Scaffold(def Definition, props form.Props) (*form.Form, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if props.Values == nil {
		props.Values = def.Values
	}
	if props.InitialValues == nil {
		props.InitialValues = def.InitialValues
	}
	if !props.Pattern.Valid() && def.Pattern != "" {
		props.Pattern = form.Pattern(def.Pattern)
	}

	f := form.New(props)
	if err := createFields(f, fieldpath.Path{}, def.Fields); err != nil {
		return nil, err
	}
	return f, nil
}

func createFields(f *form.Form, base fieldpath.Path, defs []FieldDef) error {
	for _, fd := range defs {
		props := form.FieldProps{
			Name:         fd.Name,
			BasePath:     base,
			Title:        fd.Title,
			InitialValue: fd.InitialValue,
			Required:     fd.Required,
			Rules:        fd.Rules(),
		}
		address := base.Concat(fieldpath.Parse(fd.Name))
		switch fd.Type {
		case TypeVoid:
			if f.CreateVoidField(props) == nil {
				return scaffoldConflict(address)
			}
			if err := createFields(f, address, fd.Fields); err != nil {
				return err
			}
		case TypeObject:
			if f.CreateObjectField(props) == nil {
				return scaffoldConflict(address)
			}
			if err := createFields(f, address, fd.Fields); err != nil {
				return err
			}
		case TypeArray:
			if f.CreateArrayField(props) == nil {
				return scaffoldConflict(address)
			}
		default:
			if f.CreateField(props) == nil {
				return scaffoldConflict(address)
			}
		}
	}
	return nil
}

func scaffoldConflict(address fieldpath.Path) error {
	return fmt.Errorf("schema: scaffold: field %s conflicts with an existing registration", address)
}
