package fieldpath_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/fieldpath"
)

func TestParseNormalisesBracketSyntax(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{}},
		{name: "single key", raw: "user", want: []string{"user"}},
		{name: "dotted", raw: "user.address.city", want: []string{"user", "address", "city"}},
		{name: "bracket index", raw: "tags[0]", want: []string{"tags", "0"}},
		{name: "bracket then key", raw: "tags[0].label", want: []string{"tags", "0", "label"}},
		{name: "chained brackets", raw: "grid[1][2]", want: []string{"grid", "1", "2"}},
		{name: "dotted index", raw: "tags.0.label", want: []string{"tags", "0", "label"}},
		{name: "wildcard", raw: "user.*.street", want: []string{"user", "*", "street"}},
		{name: "double dots collapse", raw: "a..b", want: []string{"a", "b"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := fieldpath.Parse(tc.raw).Segments()
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Parse(%q) segments mismatch (-want +got):\n%s", tc.raw, diff)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	cases := map[string]string{
		"user.address.city": "user.address.city",
		"tags[0].label":     "tags.0.label",
		"grid[1][2]":        "grid.1.2",
		"":                  "",
	}
	for raw, want := range cases {
		if got := fieldpath.Parse(raw).String(); got != want {
			t.Fatalf("Parse(%q).String() = %q, want %q", raw, got, want)
		}
	}
}

func TestMatch(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		target  string
		want    bool
	}{
		{name: "exact", pattern: "user.name", target: "user.name", want: true},
		{name: "exact mismatch", pattern: "user.name", target: "user.email", want: false},
		{name: "wildcard segment", pattern: "user.*", target: "user.name", want: true},
		{name: "wildcard middle", pattern: "rows.*.qty", target: "rows.2.qty", want: true},
		{name: "wildcard wrong depth", pattern: "user.*", target: "user.name.first", want: false},
		{name: "lone star matches all", pattern: "*", target: "a.b.c", want: true},
		{name: "lone star needs a target", pattern: "*", target: "", want: false},
		{name: "length mismatch", pattern: "a.b", target: "a", want: false},
		{name: "index segments", pattern: "tags[0]", target: "tags.0", want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := fieldpath.Parse(tc.pattern)
			if got := p.Match(fieldpath.Parse(tc.target)); got != tc.want {
				t.Fatalf("Parse(%q).Match(%q) = %v, want %v", tc.pattern, tc.target, got, tc.want)
			}
		})
	}
}

func TestAppendAndConcatDoNotMutate(t *testing.T) {
	base := fieldpath.Parse("user")
	child := base.Append("address", "city")

	if got := base.String(); got != "user" {
		t.Fatalf("base mutated by Append: %q", got)
	}
	if got := child.String(); got != "user.address.city" {
		t.Fatalf("Append result = %q, want %q", got, "user.address.city")
	}

	joined := base.Concat(fieldpath.Parse("tags[1]"))
	if got := joined.String(); got != "user.tags.1" {
		t.Fatalf("Concat result = %q, want %q", got, "user.tags.1")
	}
}

func TestParentLastAndIndex(t *testing.T) {
	p := fieldpath.Parse("user.address.city")
	if got := p.Parent().String(); got != "user.address" {
		t.Fatalf("Parent = %q, want %q", got, "user.address")
	}
	if got := p.Last(); got != "city" {
		t.Fatalf("Last = %q, want %q", got, "city")
	}
	if got := p.Index(1); got != "address" {
		t.Fatalf("Index(1) = %q, want %q", got, "address")
	}
	if got := p.Index(3); got != "" {
		t.Fatalf("Index out of range = %q, want empty", got)
	}
	if got := fieldpath.Parse("").Parent().String(); got != "" {
		t.Fatalf("Parent of empty = %q, want empty", got)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{a: "user", b: "user.name", want: true},
		{a: "user.name", b: "user", want: true},
		{a: "user.name", b: "user.email", want: false},
		{a: "user.*", b: "user.name.first", want: true},
		{a: "*", b: "anything.at.all", want: true},
		{a: "orders", b: "user.name", want: false},
	}
	for _, tc := range cases {
		got := fieldpath.Parse(tc.a).Overlaps(fieldpath.Parse(tc.b))
		if got != tc.want {
			t.Fatalf("Overlaps(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestIsPattern(t *testing.T) {
	if fieldpath.Parse("user.name").IsPattern() {
		t.Fatal("plain path reported as pattern")
	}
	if !fieldpath.Parse("user.*").IsPattern() {
		t.Fatal("wildcard path not reported as pattern")
	}
}
