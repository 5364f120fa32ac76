// Package formstate is a reactive state engine for hierarchical form
// data: merged value stores, a lazily populated field registry,
// rule-based validation with aggregated feedback, and a lifecycle
// event bus. The root package re-exports the everyday surface; the
// packages under pkg/ carry the full API.
package formstate

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/schema"
)

// Core form types, aliased for convenience.
type (
	Form            = form.Form
	Props           = form.Props
	Effects         = form.Effects
	Field           = form.Field
	ArrayField      = form.ArrayField
	ObjectField     = form.ObjectField
	VoidField       = form.VoidField
	Handle          = form.Handle
	FieldProps      = form.FieldProps
	ResetOptions    = form.ResetOptions
	Feedback        = form.Feedback
	FeedbackSearch  = form.FeedbackSearch
	Pattern         = form.Pattern
	Graph           = form.Graph
	GraphNode       = form.GraphNode
	ValidationError = form.ValidationError
)

// Declarative definitions.
type (
	Definition = schema.Definition
	FieldDef   = schema.FieldDef
)

// Interaction patterns.
const (
	PatternEditable   = form.PatternEditable
	PatternReadOnly   = form.PatternReadOnly
	PatternDisabled   = form.PatternDisabled
	PatternReadPretty = form.PatternReadPretty
)

// New constructs a form from props. See form.New.
func New(props Props) *Form {
	return form.New(props)
}

// Scaffold builds a live form from a definition. See schema.Scaffold.
func Scaffold(def Definition, props Props) (*Form, error) {
	return schema.Scaffold(def, props)
}

// ScaffoldFile parses a JSON or YAML definition file and builds a form
// from it. It is the simplest entry point for callers with a
// definition on disk.
func ScaffoldFile(path string, props Props) (*Form, error) {
	def, err := schema.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return schema.Scaffold(def, props)
}

// ScaffoldOpenAPI derives a definition from the request body of an
// OpenAPI operation and builds a form from it.
func ScaffoldOpenAPI(ctx context.Context, document []byte, operationID string, props Props) (*Form, error) {
	def, err := schema.FromOpenAPI(ctx, document, operationID)
	if err != nil {
		return nil, err
	}
	return schema.Scaffold(def, props)
}
