// Command formstate-cli scaffolds a form from a definition or an
// OpenAPI operation, applies a values document, and validates it.
// Violations print to stderr, one per line, and flip the exit code.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/schema"
)

type config struct {
	definition string
	openapi    string
	operation  string
	values     string
	pattern    string
	graph      bool

	out    io.Writer
	errOut io.Writer
}

func main() {
	cfg := config{out: os.Stdout, errOut: os.Stderr}
	flag.StringVar(&cfg.definition, "definition", "", "form definition file (JSON or YAML)")
	flag.StringVar(&cfg.openapi, "openapi", "", "OpenAPI document to derive the form from")
	flag.StringVar(&cfg.operation, "operation", "", "operation ID inside the OpenAPI document")
	flag.StringVar(&cfg.values, "values", "", "JSON file with values to validate")
	flag.StringVar(&cfg.pattern, "pattern", "", "interaction pattern override (editable, readOnly, disabled, readPretty)")
	flag.BoolVar(&cfg.graph, "graph", false, "print the form graph as JSON after validating")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s -definition FILE [-values FILE]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "       %s -openapi FILE -operation ID [-values FILE]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	valid, err := run(context.Background(), cfg)
	if err != nil {
		log.Fatalf("formstate: %v", err)
	}
	if !valid {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) (bool, error) {
	def, err := loadDefinition(ctx, cfg)
	if err != nil {
		return false, err
	}

	props := form.Props{}
	if cfg.pattern != "" {
		p := form.Pattern(cfg.pattern)
		if !p.Valid() {
			return false, fmt.Errorf("unknown pattern %q", cfg.pattern)
		}
		props.Pattern = p
	}

	f, err := schema.Scaffold(def, props)
	if err != nil {
		return false, err
	}

	if cfg.values != "" {
		values, err := loadValues(cfg.values)
		if err != nil {
			return false, err
		}
		f.SetValues(values)
	}

	var verr *form.ValidationError
	switch err := f.Validate(ctx); {
	case err == nil:
		fmt.Fprintf(cfg.out, "%s: valid\n", def.Name)
	case errors.As(err, &verr):
		for _, fb := range verr.Feedbacks {
			for _, msg := range fb.Messages {
				fmt.Fprintf(cfg.errOut, "%s: %s\n", fb.Path, msg)
			}
		}
	default:
		return false, err
	}

	if cfg.graph {
		payload, err := json.MarshalIndent(f.GetGraph(), "", "  ")
		if err != nil {
			return false, fmt.Errorf("marshal graph: %w", err)
		}
		fmt.Fprintln(cfg.out, string(payload))
	}

	return verr == nil, nil
}

func loadDefinition(ctx context.Context, cfg config) (schema.Definition, error) {
	switch {
	case cfg.definition != "" && cfg.openapi != "":
		return schema.Definition{}, errors.New("choose either -definition or -openapi, not both")
	case cfg.definition != "":
		return schema.ParseFile(cfg.definition)
	case cfg.openapi != "":
		if cfg.operation == "" {
			return schema.Definition{}, errors.New("-openapi requires -operation")
		}
		data, err := os.ReadFile(cfg.openapi)
		if err != nil {
			return schema.Definition{}, fmt.Errorf("read %s: %w", cfg.openapi, err)
		}
		return schema.FromOpenAPI(ctx, data, cfg.operation)
	default:
		return schema.Definition{}, errors.New("a -definition or -openapi document is required")
	}
}

func loadValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return values, nil
}
