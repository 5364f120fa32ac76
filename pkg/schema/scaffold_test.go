package schema_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

const signupDocument = `
name: signup
pattern: editable
initialValues:
  role: viewer
fields:
  - name: username
    required: true
    minLength: 3
  - name: role
    enum: [admin, viewer]
  - name: tags
    type: array
  - name: profile
    type: object
    fields:
      - name: bio
        type: string
  - name: layout
    type: void
    fields:
      - name: note
        type: string
`

func signupDefinition(t *testing.T) schema.Definition {
	t.Helper()
	return testsupport.MustParseDefinition(t, signupDocument)
}

func TestScaffoldBuildsForm(t *testing.T) {
	f, err := schema.Scaffold(signupDefinition(t), form.Props{})
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}

	wantAddresses := []string{
		"username", "role", "tags", "profile", "profile.bio", "layout", "layout.note",
	}
	if diff := cmp.Diff(wantAddresses, f.Query("*").Addresses()); diff != "" {
		t.Fatalf("registered fields (-want +got):\n%s", diff)
	}

	tags, _ := f.Lookup("tags")
	if tags.Kind() != form.KindArrayField {
		t.Fatalf("tags kind = %q, want array", tags.Kind())
	}
	layout, _ := f.Lookup("layout")
	if layout.Kind() != form.KindVoidField {
		t.Fatalf("layout kind = %q, want void", layout.Kind())
	}

	// Children of void fields write outside the void segment.
	note, ok := f.Lookup("note")
	if !ok || note.Path().String() != "note" {
		t.Fatal("note should be addressable by its data path")
	}

	// Seed data flows in: role resolves through initial values and
	// satisfies its enum rule.
	if got := f.GetValuesIn("role"); got != "viewer" {
		t.Fatalf("role = %v, want viewer from initial values", got)
	}
}

func TestScaffoldValidation(t *testing.T) {
	f, err := schema.Scaffold(signupDefinition(t), form.Props{})
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}

	// Empty form: username is required.
	if err := f.Validate(context.Background()); err == nil {
		t.Fatal("empty form should fail validation")
	}
	errs := f.Errors()
	if len(errs) != 1 || errs[0].Path != "username" {
		t.Fatalf("errors = %+v, want the username violation", errs)
	}

	f.SetValuesIn("username", "ada")
	if err := f.Validate(context.Background()); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestScaffoldAppliesPatternAndPropsWin(t *testing.T) {
	def := signupDefinition(t)
	def.Pattern = "disabled"

	f, err := schema.Scaffold(def, form.Props{})
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if !f.Disabled() {
		t.Fatalf("pattern = %q, want disabled from the definition", f.Pattern())
	}

	f, err = schema.Scaffold(def, form.Props{Pattern: form.PatternReadPretty})
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if !f.ReadPretty() {
		t.Fatalf("pattern = %q, props should win over the definition", f.Pattern())
	}
}

func TestScaffoldKindConflict(t *testing.T) {
	def := schema.Definition{
		Name: "broken",
		Fields: []schema.FieldDef{
			{Name: "a", Type: schema.TypeVoid, Fields: []schema.FieldDef{
				{Name: "b", Type: schema.TypeString},
			}},
			{Name: "a.b", Type: schema.TypeArray},
		},
	}

	_, err := schema.Scaffold(def, form.Props{})
	if err == nil || !strings.Contains(err.Error(), "conflicts") {
		t.Fatalf("error = %v, want a registration conflict", err)
	}
}

func TestScaffoldRejectsInvalidDefinitions(t *testing.T) {
	_, err := schema.Scaffold(schema.Definition{}, form.Props{})
	if err == nil {
		t.Fatal("a definition without a name should be rejected")
	}
}

func TestScaffoldRoundTripFromOpenAPI(t *testing.T) {
	ctx := testsupport.Context()
	def, err := schema.FromOpenAPI(ctx, []byte(accountsDocument), "createUser")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}

	f := testsupport.MustScaffold(t, def)

	if err := f.Validate(ctx); err == nil {
		t.Fatal("missing required fields should fail validation")
	}

	f.SetValuesIn("name", "Ada Lovelace")
	f.SetValuesIn("email", "ada@example.com")
	f.SetValuesIn("address.city", "London")
	if err := f.Validate(ctx); err != nil {
		t.Fatalf("validate: %v", err)
	}

	f.SetValuesIn("email", "not-an-email")
	if err := f.Validate(ctx); err == nil {
		t.Fatal("a malformed email should fail validation")
	}
}
