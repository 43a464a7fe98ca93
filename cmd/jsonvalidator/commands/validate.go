package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/calculisto/json-validator/internal/cliutil"
	"github.com/calculisto/json-validator/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	schemaFlags
	SchemaURI string
	Quiet     bool
	Format    string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.SchemaDir, "schema-dir", "", "directory of schemas to preload so $ref can point into it")
	fs.StringVar(&flags.BaseURI, "base-uri", "", "URI the schema directory is registered under (default: its file:// URI)")
	fs.StringVar(&flags.SchemaURI, "schema-uri", "", "validate against this preloaded schema URI instead of a schema argument")
	fs.IntVar(&flags.MaxDepth, "max-depth", validator.DefaultMaxDepth, "evaluation depth bound for recursive schemas (0 disables)")
	fs.BoolVar(&flags.MetaValidation, "meta", false, "check every schema against the draft-07 meta-schema before use")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only set the exit status, no text output")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only set the exit status, no text output")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log schema loading and analysis to stderr")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: jsonvalidator validate [flags] <schema> <instance>...\n")
		cliutil.Writef(fs.Output(), "       jsonvalidator validate [flags] --schema-uri <uri> <instance>...\n\n")
		cliutil.Writef(fs.Output(), "Validate JSON or YAML instances against a JSON Schema draft-07 schema.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nOutput Formats:\n")
		cliutil.Writef(fs.Output(), "  text (default)  One line per instance, followed by its violations\n")
		cliutil.Writef(fs.Output(), "  json            JSON report for programmatic processing\n")
		cliutil.Writef(fs.Output(), "  yaml            YAML report for programmatic processing\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  jsonvalidator validate order.schema.json order.json\n")
		cliutil.Writef(fs.Output(), "  jsonvalidator validate --schema-dir schemas order.schema.json a.json b.yaml\n")
		cliutil.Writef(fs.Output(), "  jsonvalidator validate --schema-dir schemas --base-uri https://example.com/ \\\n")
		cliutil.Writef(fs.Output(), "      --schema-uri https://example.com/order.json#/definitions/line order-line.json\n")
		cliutil.Writef(fs.Output(), "  cat order.json | jsonvalidator validate -q order.schema.json -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Every instance is valid\n")
		cliutil.Writef(fs.Output(), "  1    At least one instance is invalid\n")
		cliutil.Writef(fs.Output(), "  2    A schema or instance could not be read, parsed or resolved\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	// Validate format flag early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	paths := fs.Args()
	schemaPath := ""
	if flags.SchemaURI == "" {
		if len(paths) < 2 {
			fs.Usage()
			return fmt.Errorf("validate command requires a schema and at least one instance")
		}
		schemaPath, paths = paths[0], paths[1:]
	} else if len(paths) < 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires at least one instance")
	}
	if err := checkStdinOnce(fs.Args()); err != nil {
		return err
	}

	v, l, err := flags.newValidator()
	if err != nil {
		return err
	}
	if schemaPath != "" {
		if err := addSchemaSource(l, schemaPath); err != nil {
			return err
		}
	}

	reports := make([]report, 0, len(paths))
	for _, path := range paths {
		instance, err := readDocument(path)
		if err != nil {
			return err
		}
		var res *validator.Result
		if flags.SchemaURI != "" {
			if res, err = v.ValidateURI(instance, flags.SchemaURI); err != nil {
				return err
			}
		} else {
			res = v.Validate(instance)
		}
		reports = append(reports, newReport(path, res))
	}

	return writeReports(reports, flags.Format, flags.Quiet)
}
