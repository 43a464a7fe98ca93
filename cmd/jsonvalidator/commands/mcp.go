package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/calculisto/json-validator/internal/cliutil"
	"github.com/calculisto/json-validator/internal/mcpserver"
)

// HandleMCP runs the MCP server over stdio until the client disconnects or
// the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: jsonvalidator mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the validate and check_schema tools over the Model Context Protocol (stdio).\n")
		cliutil.Writef(fs.Output(), "Configure it with JSONVALIDATOR_* environment variables, or a .env file in the\n")
		cliutil.Writef(fs.Output(), "working directory.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
