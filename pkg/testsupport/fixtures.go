// Package testsupport carries small helpers shared by tests across the
// module: fixture files, definition parsing, and golden comparisons.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/schema"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// WriteFixture writes data to dir/name and returns the full path.
func WriteFixture(t *testing.T, dir, name, data string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// MustParseDefinition parses a JSON or YAML definition document,
// failing the test on error.
func MustParseDefinition(t *testing.T, doc string) schema.Definition {
	t.Helper()

	def, err := schema.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse definition: %v", err)
	}
	return def
}

// MustScaffold builds a live form from a definition, failing the test
// on error.
func MustScaffold(t *testing.T, def schema.Definition) *form.Form {
	t.Helper()

	f, err := schema.Scaffold(def, form.Props{})
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	return f
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set.
// Returns true if the golden was written; tests should exit early.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
