package form

import (
	"fmt"
	"sort"
	"strings"
)

// GraphNode is one entry in a form graph: the form itself under the
// empty key, or a field keyed by address. Value data for the whole
// tree travels on the root node; field nodes describe structure and
// feedbacks.
type GraphNode struct {
	Kind         FieldKind  `json:"kind"`
	Path         string     `json:"path,omitempty"`
	Title        string     `json:"title,omitempty"`
	Value        any        `json:"value,omitempty"`
	InitialValue any        `json:"initialValue,omitempty"`
	Feedbacks    []Feedback `json:"feedbacks,omitempty"`
}

// Graph is a plain, serialisable snapshot of a form's shape and state.
type Graph map[string]GraphNode

// GetGraph captures the form as a Graph: raw value and initial-value
// stores on the root node, one node per registered field with its
// feedbacks.
func (f *Form) GetGraph() Graph {
	g := Graph{
		"": {
			Kind:         KindForm,
			Value:        f.values.Snapshot(),
			InitialValue: f.initialValues.Snapshot(),
		},
	}
	for _, h := range f.Query("*").Handles() {
		g[h.Address().String()] = GraphNode{
			Kind:      h.Kind(),
			Path:      h.Path().String(),
			Title:     h.Title(),
			Feedbacks: h.Feedbacks(FeedbackSearch{}),
		}
	}
	return g
}

// SetGraph imports a Graph into the form: root-node data merges into
// the stores, fields are recreated through the registry (parents
// before children, so void ancestry resolves), and saved feedbacks are
// reattached. Importing over existing registrations keeps them when
// the kinds agree and fails when they conflict.
func (f *Form) SetGraph(g Graph) error {
	if len(g) == 0 {
		return nil
	}
	if root, ok := g[""]; ok {
		if root.Kind != "" && root.Kind != KindForm {
			return fmt.Errorf("form: set graph: root node has kind %q", root.Kind)
		}
		if initial, ok := root.InitialValue.(map[string]any); ok && len(initial) > 0 {
			f.initialValues.Merge(initial)
		}
		if values, ok := root.Value.(map[string]any); ok && len(values) > 0 {
			f.values.Merge(values)
		}
	}

	addresses := make([]string, 0, len(g))
	for addr := range g {
		if addr != "" {
			addresses = append(addresses, addr)
		}
	}
	sort.Slice(addresses, func(i, j int) bool {
		di, dj := strings.Count(addresses[i], "."), strings.Count(addresses[j], ".")
		if di != dj {
			return di < dj
		}
		return addresses[i] < addresses[j]
	})

	for _, addr := range addresses {
		node := g[addr]
		props := FieldProps{
			Name:         addr,
			Title:        node.Title,
			Value:        node.Value,
			InitialValue: node.InitialValue,
		}
		var h Handle
		switch node.Kind {
		case KindField, "":
			fld := f.CreateField(props)
			if fld == nil {
				return graphConflict(addr)
			}
			h = fld
		case KindArrayField:
			fld := f.CreateArrayField(props)
			if fld == nil {
				return graphConflict(addr)
			}
			h = fld
		case KindObjectField:
			fld := f.CreateObjectField(props)
			if fld == nil {
				return graphConflict(addr)
			}
			h = fld
		case KindVoidField:
			fld := f.CreateVoidField(props)
			if fld == nil {
				return graphConflict(addr)
			}
			h = fld
		default:
			return fmt.Errorf("form: set graph: unknown field kind %q at %s", node.Kind, addr)
		}
		for _, fb := range node.Feedbacks {
			h.SetFeedback(fb)
		}
	}
	return nil
}

func graphConflict(address string) error {
	return fmt.Errorf("form: set graph: field %s conflicts with an existing registration", address)
}
