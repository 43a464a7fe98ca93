// Package commands provides CLI command handlers for jsonvalidator.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/calculisto/json-validator/internal/cliutil"
	"github.com/calculisto/json-validator/jsonvalue"
	"github.com/calculisto/json-validator/loader"
	"github.com/calculisto/json-validator/validator"
	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrInvalid is returned by a command when it ran to completion but at
// least one document failed validation. main maps it to exit status 1
// without printing it.
var ErrInvalid = errors.New("validation failed")

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data in the specified format (json or yaml) to w.
func OutputStructured(w io.Writer, data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writef(w, "%s\n", out)
	return nil
}

// newLogger returns a stderr logger at debug level when verbose is set and
// warn level otherwise.
func newLogger(verbose bool) validator.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	return validator.NewSlogAdapter(slog.New(handler))
}

// schemaFlags are the flags shared by the commands that build a validator.
type schemaFlags struct {
	SchemaDir      string
	BaseURI        string
	MaxDepth       int
	MetaValidation bool
	Verbose        bool
}

// newValidator creates a validator with the schema directory preloaded.
func (f *schemaFlags) newValidator() (*validator.Validator, *loader.Loader, error) {
	logger := newLogger(f.Verbose)
	v, err := validator.New(
		validator.WithLogger(logger),
		validator.WithMaxDepth(f.MaxDepth),
		validator.WithMetaValidation(f.MetaValidation),
	)
	if err != nil {
		return nil, nil, err
	}

	opts := []loader.Option{loader.WithLogger(logger)}
	if f.BaseURI != "" {
		opts = append(opts, loader.WithBaseURI(f.BaseURI))
	}
	l, err := loader.New(v, opts...)
	if err != nil {
		return nil, nil, err
	}
	if f.SchemaDir != "" {
		n, err := l.LoadDir(f.SchemaDir)
		if err != nil {
			return nil, nil, fmt.Errorf("loading schema directory %s: %w", f.SchemaDir, err)
		}
		logger.Info("schema directory loaded", "dir", f.SchemaDir, "documents", n)
	}
	return v, l, nil
}

// sourceURI is the URI a schema read from path is registered under: the
// file:// URI for files, none for stdin.
func sourceURI(path string) (string, error) {
	if path == cliutil.StdinPath {
		return "", nil
	}
	return loader.FileURI(path)
}

// addSchemaSource adds the schema at path, or stdin for "-".
func addSchemaSource(l *loader.Loader, path string) error {
	if path != cliutil.StdinPath {
		return l.LoadFile(path, "")
	}
	data, err := cliutil.ReadSource(path, stdin, loader.DefaultMaxFileSize)
	if err != nil {
		return err
	}
	return l.LoadBytes(data, "")
}

// readDocument reads and parses the document at path, or stdin for "-".
func readDocument(path string) (jsonvalue.Value, error) {
	data, err := cliutil.ReadSource(path, stdin, loader.DefaultMaxFileSize)
	if err != nil {
		return jsonvalue.Value{}, err
	}
	doc, err := jsonvalue.Parse(data)
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("%s: %w", cliutil.DisplayPath(path), err)
	}
	return doc, nil
}

// checkStdinOnce rejects argument lists naming stdin more than once.
func checkStdinOnce(paths []string) error {
	seen := false
	for _, p := range paths {
		if p != cliutil.StdinPath {
			continue
		}
		if seen {
			return errors.New("'-' (stdin) may be given only once")
		}
		seen = true
	}
	return nil
}

// report is the outcome for one validated document.
type report struct {
	Path   string              `json:"path"            yaml:"path"`
	Valid  bool                `json:"valid"           yaml:"valid"`
	Count  int                 `json:"errorCount"      yaml:"errorCount"`
	Errors validator.ErrorTree `json:"errors"          yaml:"errors"`
	Error  string              `json:"error,omitempty" yaml:"error,omitempty"`
}

func newReport(path string, res *validator.Result) report {
	return report{
		Path:   cliutil.DisplayPath(path),
		Valid:  res.Valid,
		Count:  len(res.Errors.Leaves()),
		Errors: res.Errors,
	}
}

// writeReports prints reports in the requested format and returns
// ErrInvalid when any of them failed.
func writeReports(reports []report, format string, quiet bool) error {
	failed := 0
	for _, r := range reports {
		if !r.Valid {
			failed++
		}
	}

	switch {
	case format == FormatJSON || format == FormatYAML:
		if err := OutputStructured(stdout, reports, format); err != nil {
			return err
		}
	case !quiet:
		for _, r := range reports {
			writeTextReport(r)
		}
		if failed > 0 {
			cliutil.Writef(stderr, "✗ %d of %d document(s) failed validation\n", failed, len(reports))
		} else {
			cliutil.Writef(stderr, "✓ %d document(s) valid\n", len(reports))
		}
	}

	if failed > 0 {
		return ErrInvalid
	}
	return nil
}

func writeTextReport(r report) {
	switch {
	case r.Error != "":
		cliutil.Writef(stdout, "%s: invalid\n  %s\n", r.Path, r.Error)
	case r.Valid:
		cliutil.Writef(stdout, "%s: valid\n", r.Path)
	default:
		cliutil.Writef(stdout, "%s: invalid (%d error(s))\n", r.Path, r.Count)
		cliutil.Writef(stdout, "%s", indent(r.Errors.String(), "  "))
	}
}

// indent prefixes every line of text with prefix.
func indent(text, prefix string) string {
	if text == "" {
		return ""
	}
	return prefix + strings.ReplaceAll(strings.TrimSuffix(text, "\n"), "\n", "\n"+prefix) + "\n"
}
