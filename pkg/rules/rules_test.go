package rules_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formstate/pkg/rules"
)

func mustPass(t *testing.T, r rules.Rule, value any) {
	t.Helper()
	msgs, err := r.Validate(context.Background(), value)
	if err != nil {
		t.Fatalf("rule returned error for %v: %v", value, err)
	}
	if len(msgs) != 0 {
		t.Fatalf("rule rejected %v: %v", value, msgs)
	}
}

func mustReject(t *testing.T, r rules.Rule, value any) []string {
	t.Helper()
	msgs, err := r.Validate(context.Background(), value)
	if err != nil {
		t.Fatalf("rule returned error for %v: %v", value, err)
	}
	if len(msgs) == 0 {
		t.Fatalf("rule accepted %v, want violation", value)
	}
	return msgs
}

func TestRequired(t *testing.T) {
	r := rules.Required()

	mustReject(t, r, nil)
	mustReject(t, r, "")
	mustReject(t, r, []any{})
	mustReject(t, r, map[string]any{})
	mustPass(t, r, "value")
	mustPass(t, r, 0)
	mustPass(t, r, false)
}

func TestMin(t *testing.T) {
	r := rules.Min(3)

	mustReject(t, r, 2)
	mustPass(t, r, 3)
	mustPass(t, r, 4.5)
	mustPass(t, r, nil)
	mustPass(t, r, "not a number")
}

func TestMax(t *testing.T) {
	r := rules.Max(10)

	mustReject(t, r, 11)
	mustPass(t, r, 10)
	mustPass(t, r, nil)
}

func TestMinLength(t *testing.T) {
	r := rules.MinLength(3)

	mustReject(t, r, "ab")
	mustPass(t, r, "abc")
	mustPass(t, r, "héllo")
	mustReject(t, r, []any{1})
	mustPass(t, r, nil)
}

func TestMaxLength(t *testing.T) {
	r := rules.MaxLength(3)

	mustReject(t, r, "abcd")
	mustPass(t, r, "abc")
	mustReject(t, r, []any{1, 2, 3, 4})
	mustPass(t, r, nil)
}

func TestPattern(t *testing.T) {
	r := rules.Pattern(`^[a-z]+$`)

	mustReject(t, r, "Nope123")
	mustPass(t, r, "lower")
	mustPass(t, r, nil)
	mustPass(t, r, 42)
}

func TestPatternCompileErrorSurfaces(t *testing.T) {
	r := rules.Pattern(`([`)

	_, err := r.Validate(context.Background(), "anything")
	if err == nil {
		t.Fatal("malformed pattern should return an error")
	}
	if !strings.Contains(err.Error(), "rules: pattern") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnum(t *testing.T) {
	r := rules.Enum([]any{"red", "green", "blue"})

	mustPass(t, r, "green")
	msgs := mustReject(t, r, "magenta")
	if !strings.Contains(msgs[0], "red, green, blue") {
		t.Fatalf("enum message should list allowed values: %q", msgs[0])
	}
	mustPass(t, r, nil)
}

func TestFormat(t *testing.T) {
	email := rules.Format("email")

	mustPass(t, email, "ada@example.com")
	mustReject(t, email, "not-an-email")
	mustPass(t, email, "")
	mustPass(t, email, 42)

	uuid := rules.Format("uuid")
	mustPass(t, uuid, "9a0e3eae-0848-4dd5-a8d6-7b0fd034bbf1")
	mustReject(t, uuid, "nope")
}

func TestFormatUnknownNameErrors(t *testing.T) {
	r := rules.Format("carrier-pigeon")

	_, err := r.Validate(context.Background(), "anything")
	if err == nil {
		t.Fatal("unknown format should return an error")
	}
}

func TestWithMessageInterpolates(t *testing.T) {
	r := rules.Min(18, rules.WithMessage("{{ value }} is below the minimum of {{ min }}"))

	msgs := mustReject(t, r, 7)
	if msgs[0] != "7 is below the minimum of 18" {
		t.Fatalf("message = %q", msgs[0])
	}
}

func TestDefaultMessageInterpolates(t *testing.T) {
	msgs := mustReject(t, rules.Min(3), 1)
	if msgs[0] != "The field value must be at least 3" {
		t.Fatalf("message = %q", msgs[0])
	}

	msgs = mustReject(t, rules.MaxLength(2), "abcdef")
	if msgs[0] != "The field value length cannot exceed 2" {
		t.Fatalf("message = %q", msgs[0])
	}
}

func TestFuncAdapter(t *testing.T) {
	r := rules.Func(func(_ context.Context, value any) ([]string, error) {
		if value == "forbidden" {
			return []string{"custom violation"}, nil
		}
		return nil, nil
	})

	mustPass(t, r, "ok")
	msgs := mustReject(t, r, "forbidden")
	if msgs[0] != "custom violation" {
		t.Fatalf("message = %q", msgs[0])
	}
}
