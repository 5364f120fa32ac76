package schema

import (
	"context"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// FromOpenAPI derives a form definition from the JSON request body of
// the operation identified by operationID in an OpenAPI document. The
// document may be JSON or YAML. Properties become fields sorted by
// name; object properties nest, arrays keep their element shape under
// Items, and constraints carry over where the rules engine has an
// equivalent.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (Definition, error) {
	if len(data) == 0 {
		return Definition{}, fmt.Errorf("schema: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return Definition{}, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return Definition{}, fmt.Errorf("schema: validate openapi document: %w", err)
	}

	op := findOperation(doc, operationID)
	if op == nil {
		return Definition{}, fmt.Errorf("schema: operation %q not found", operationID)
	}
	body := requestSchema(op)
	if body == nil || body.Value == nil {
		return Definition{}, fmt.Errorf("schema: operation %q has no usable request body", operationID)
	}

	def := Definition{
		Name:   operationID,
		Title:  op.Summary,
		Fields: fieldsFromSchema(body.Value),
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete,
			item.Patch, item.Head, item.Options, item.Trace,
		} {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.SchemaRef {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	if mt, ok := content["application/json"]; ok {
		return mt.Schema
	}
	for _, mt := range content {
		return mt.Schema
	}
	return nil
}

func fieldsFromSchema(src *openapi3.Schema) []FieldDef {
	if len(src.Properties) == 0 {
		return nil
	}
	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]FieldDef, 0, len(names))
	for _, name := range names {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fd := fieldFromSchema(name, ref.Value)
		fd.Required = required[name]
		out = append(out, fd)
	}
	return out
}

func fieldFromSchema(name string, src *openapi3.Schema) FieldDef {
	fd := FieldDef{
		Name:         name,
		Type:         mapSchemaType(src.Type),
		Title:        src.Title,
		InitialValue: src.Default,
		Pattern:      src.Pattern,
		Format:       mapFormat(src.Format),
	}
	// Untyped schemas still imply a shape through their members.
	if fd.Type == "" && len(src.Properties) > 0 {
		fd.Type = TypeObject
	}
	if fd.Type == "" && src.Items != nil {
		fd.Type = TypeArray
	}

	if len(src.Enum) > 0 {
		fd.Enum = append([]any(nil), src.Enum...)
	}
	if src.Min != nil {
		value := *src.Min
		fd.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		fd.Maximum = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		fd.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		fd.MaxLength = &value
	}

	switch fd.Type {
	case TypeObject:
		fd.Fields = fieldsFromSchema(src)
	case TypeArray:
		if src.Items != nil && src.Items.Value != nil {
			item := fieldFromSchema("items", src.Items.Value)
			fd.Items = &item
		}
	}
	return fd
}

func mapSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		switch t {
		case TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeArray, TypeObject:
			return t
		}
	}
	return ""
}

// mapFormat keeps only formats the rules engine understands; anything
// else (date-time, binary, ...) is dropped rather than failing later.
func mapFormat(format string) string {
	if knownFormat(format) {
		return format
	}
	return ""
}
