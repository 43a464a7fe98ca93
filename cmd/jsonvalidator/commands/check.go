package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/calculisto/json-validator/internal/cliutil"
	"github.com/calculisto/json-validator/validator"
)

// CheckFlags contains flags for the check command
type CheckFlags struct {
	schemaFlags
	Quiet  bool
	Format string
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
func SetupCheckFlags() (*flag.FlagSet, *CheckFlags) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	flags := &CheckFlags{}

	fs.StringVar(&flags.SchemaDir, "schema-dir", "", "directory of schemas to preload so $ref can point into it")
	fs.StringVar(&flags.BaseURI, "base-uri", "", "URI the schema directory is registered under (default: its file:// URI)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only set the exit status, no text output")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only set the exit status, no text output")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log schema loading and analysis to stderr")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: jsonvalidator check [flags] <schema>...\n\n")
		cliutil.Writef(fs.Output(), "Check schema documents against the JSON Schema draft-07 meta-schema, then\n")
		cliutil.Writef(fs.Output(), "verify that every $ref resolves and every pattern compiles.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  jsonvalidator check order.schema.json\n")
		cliutil.Writef(fs.Output(), "  jsonvalidator check --schema-dir schemas --format json schemas/*.json\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Every schema is valid\n")
		cliutil.Writef(fs.Output(), "  1    At least one schema is invalid\n")
		cliutil.Writef(fs.Output(), "  2    A schema could not be read or parsed\n")
	}

	return fs, flags
}

// HandleCheck executes the check command
func HandleCheck(args []string) error {
	fs, flags := SetupCheckFlags()
	flags.MaxDepth = validator.DefaultMaxDepth

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("check command requires at least one schema")
	}
	if err := checkStdinOnce(fs.Args()); err != nil {
		return err
	}

	reports := make([]report, 0, fs.NArg())
	for _, path := range fs.Args() {
		doc, err := readDocument(path)
		if err != nil {
			return err
		}

		// Each schema gets its own validator so one document's $id cannot
		// satisfy another's reference.
		v, _, err := flags.newValidator()
		if err != nil {
			return err
		}
		r := newReport(path, v.ValidateSchema(doc))
		if r.Valid {
			uri, err := sourceURI(path)
			if err != nil {
				return err
			}
			if err := v.AddSchema(doc, uri); err != nil {
				r.Valid = false
				r.Count = 1
				r.Error = err.Error()
			}
		}
		reports = append(reports, r)
	}

	return writeReports(reports, flags.Format, flags.Quiet)
}
