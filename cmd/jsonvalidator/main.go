package main

import (
	"errors"
	"fmt"
	"os"

	jsonvalidator "github.com/calculisto/json-validator"
	"github.com/calculisto/json-validator/cmd/jsonvalidator/commands"
	"github.com/calculisto/json-validator/internal/stringutil"
	"github.com/joho/godotenv"
)

// commandNames lists the commands suggestCommand may propose.
var commandNames = []string{"validate", "check", "mcp", "version", "help"}

func main() {
	// A missing .env file is the normal case.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Print(jsonvalidator.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "validate":
		exitOn(commands.HandleValidate(os.Args[2:]))
	case "check":
		exitOn(commands.HandleCheck(os.Args[2:]))
	case "mcp":
		exitOn(commands.HandleMCP(os.Args[2:]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(2)
	}
}

// exitOn terminates the process according to a command's error: status 1
// when a document was invalid, 2 for any other failure.
func exitOn(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, commands.ErrInvalid) {
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(2)
}

// suggestCommand returns the command closest to input within two edits, or
// "" when none is.
func suggestCommand(input string) string {
	return stringutil.Closest(input, commandNames, 2)
}

func printUsage() {
	fmt.Println(`jsonvalidator - JSON Schema draft-07 validator

Usage:
  jsonvalidator <command> [options]

Commands:
  validate    Validate JSON or YAML instances against a schema
  check       Check schemas against the draft-07 meta-schema
  mcp         Serve validation tools over the Model Context Protocol (stdio)
  version     Show version information
  help        Show this help message

Examples:
  jsonvalidator validate order.schema.json order.json
  jsonvalidator validate --schema-dir schemas --format json order.schema.json a.json b.yaml
  jsonvalidator check schemas/order.schema.json
  cat order.json | jsonvalidator validate -q order.schema.json -

Environment:
  A .env file in the working directory is loaded before any command runs.
  The mcp command reads its configuration from JSONVALIDATOR_* variables.

Run 'jsonvalidator <command> --help' for more information on a command.`)
}
