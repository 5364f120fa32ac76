// Package rules provides the value-level validation rules fields run
// during form validation. A rule reports violations as rendered
// messages; a non-nil error means the rule itself could not run and is
// treated as an engine defect by callers.
//
// Every rule except Required passes empty values through untouched, so
// optional fields stay quiet until they hold data.
package rules

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formstate/pkg/fieldpath"
)

// Rule validates a single value. Violations come back as messages;
// err is reserved for failures of the rule itself.
type Rule interface {
	Validate(ctx context.Context, value any) ([]string, error)
}

// Func adapts a plain function to the Rule interface.
type Func func(ctx context.Context, value any) ([]string, error)

// Validate implements Rule.
func (f Func) Validate(ctx context.Context, value any) ([]string, error) {
	return f(ctx, value)
}

// Option customises a built-in rule.
type Option func(*config)

type config struct {
	message string
}

// WithMessage overrides the rule's violation message. The template may
// reference the rule's parameters and the offending value, e.g.
// "{{ value }} is below the minimum of {{ min }}".
func WithMessage(template string) Option {
	return func(c *config) {
		if template != "" {
			c.message = template
		}
	}
}

func newConfig(defaultMessage string, opts []Option) config {
	cfg := config{message: defaultMessage}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

const (
	msgRequired  = "The field value is required"
	msgMin       = "The field value must be at least {{ min }}"
	msgMax       = "The field value cannot be greater than {{ max }}"
	msgMinLength = "The field value length must be at least {{ minLength }}"
	msgMaxLength = "The field value length cannot exceed {{ maxLength }}"
	msgPattern   = "The field value does not match the pattern {{ pattern }}"
	msgEnum      = "The field value must be one of {{ allowed }}"
)

// Required rejects empty values: nil, empty strings, and zero-length
// containers.
func Required(opts ...Option) Rule {
	cfg := newConfig(msgRequired, opts)
	return Func(func(_ context.Context, value any) ([]string, error) {
		if fieldpath.IsEmpty(value) {
			return []string{render(cfg.message, pongo2.Context{"value": value})}, nil
		}
		return nil, nil
	})
}

// Min rejects numeric values below min. Non-numeric values are ignored.
func Min(min float64, opts ...Option) Rule {
	cfg := newConfig(msgMin, opts)
	return Func(func(_ context.Context, value any) ([]string, error) {
		if fieldpath.IsEmpty(value) {
			return nil, nil
		}
		n, ok := toFloat(value)
		if !ok || n >= min {
			return nil, nil
		}
		return []string{render(cfg.message, pongo2.Context{"value": value, "min": trimFloat(min)})}, nil
	})
}

// Max rejects numeric values above max. Non-numeric values are ignored.
func Max(max float64, opts ...Option) Rule {
	cfg := newConfig(msgMax, opts)
	return Func(func(_ context.Context, value any) ([]string, error) {
		if fieldpath.IsEmpty(value) {
			return nil, nil
		}
		n, ok := toFloat(value)
		if !ok || n <= max {
			return nil, nil
		}
		return []string{render(cfg.message, pongo2.Context{"value": value, "max": trimFloat(max)})}, nil
	})
}

// MinLength rejects strings, slices, and maps shorter than n. String
// length counts runes.
func MinLength(n int, opts ...Option) Rule {
	cfg := newConfig(msgMinLength, opts)
	return Func(func(_ context.Context, value any) ([]string, error) {
		if fieldpath.IsEmpty(value) {
			return nil, nil
		}
		length, ok := toLength(value)
		if !ok || length >= n {
			return nil, nil
		}
		return []string{render(cfg.message, pongo2.Context{"value": value, "minLength": n})}, nil
	})
}

// MaxLength rejects strings, slices, and maps longer than n. String
// length counts runes.
func MaxLength(n int, opts ...Option) Rule {
	cfg := newConfig(msgMaxLength, opts)
	return Func(func(_ context.Context, value any) ([]string, error) {
		length, ok := toLength(value)
		if !ok || length <= n {
			return nil, nil
		}
		return []string{render(cfg.message, pongo2.Context{"value": value, "maxLength": n})}, nil
	})
}

// Pattern rejects strings that do not match the regular expression.
// Non-string values are ignored. A malformed expression surfaces as a
// rule error at validation time.
func Pattern(expr string, opts ...Option) Rule {
	cfg := newConfig(msgPattern, opts)
	re, compileErr := regexp.Compile(expr)
	return Func(func(_ context.Context, value any) ([]string, error) {
		if compileErr != nil {
			return nil, fmt.Errorf("rules: pattern %q: %w", expr, compileErr)
		}
		if fieldpath.IsEmpty(value) {
			return nil, nil
		}
		str, ok := value.(string)
		if !ok || re.MatchString(str) {
			return nil, nil
		}
		return []string{render(cfg.message, pongo2.Context{"value": value, "pattern": expr})}, nil
	})
}

// Enum rejects values outside the allowed set.
func Enum(allowed []any, opts ...Option) Rule {
	cfg := newConfig(msgEnum, opts)
	rendered := renderAllowed(allowed)
	return Func(func(_ context.Context, value any) ([]string, error) {
		if fieldpath.IsEmpty(value) {
			return nil, nil
		}
		for _, candidate := range allowed {
			if reflect.DeepEqual(candidate, value) {
				return nil, nil
			}
		}
		return []string{render(cfg.message, pongo2.Context{"value": value, "allowed": rendered})}, nil
	})
}

func renderAllowed(allowed []any) string {
	parts := make([]string, 0, len(allowed))
	for _, v := range allowed {
		parts = append(parts, fmt.Sprintf("%v", v))
	}
	return strings.Join(parts, ", ")
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func toLength(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		return utf8.RuneCountInString(v), true
	case []any:
		return len(v), true
	case map[string]any:
		return len(v), true
	}
	return 0, false
}

func trimFloat(f float64) any {
	if f == float64(int64(f)) {
		return int64(f)
	}
	return f
}
