package rules

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/go-playground/validator/v10"
)

const msgFormat = "The field value is not a valid {{ format }}"

// formatTags maps the format names accepted by Format to go-playground
// validator tags.
var formatTags = map[string]string{
	"email":    "email",
	"url":      "url",
	"uuid":     "uuid",
	"ipv4":     "ipv4",
	"ipv6":     "ipv6",
	"hostname": "hostname",
}

var (
	formatOnce      sync.Once
	formatValidator *validator.Validate
)

func sharedValidator() *validator.Validate {
	formatOnce.Do(func() {
		formatValidator = validator.New()
	})
	return formatValidator
}

// Format rejects strings that fail a named well-known format check:
// email, url, uuid, ipv4, ipv6, or hostname. Non-string and empty
// values are ignored; an unknown format name surfaces as a rule error.
func Format(name string, opts ...Option) Rule {
	cfg := newConfig(msgFormat, opts)
	tag, known := formatTags[name]
	return Func(func(_ context.Context, value any) ([]string, error) {
		if !known {
			return nil, fmt.Errorf("rules: unknown format %q", name)
		}
		str, ok := value.(string)
		if !ok || str == "" {
			return nil, nil
		}
		err := sharedValidator().Var(str, tag)
		if err == nil {
			return nil, nil
		}
		var violations validator.ValidationErrors
		if errors.As(err, &violations) {
			return []string{render(cfg.message, pongo2.Context{"value": value, "format": name})}, nil
		}
		return nil, fmt.Errorf("rules: format %q: %w", name, err)
	})
}

// Formats lists the format names Format accepts, sorted, for callers
// that validate configuration up front.
func Formats() []string {
	out := make([]string, 0, len(formatTags))
	for name := range formatTags {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
