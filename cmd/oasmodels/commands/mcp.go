package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasmodels/internal/mcpserver"
)

// HandleMCP executes the mcp command, serving MCP over stdio until the
// client disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasmodels mcp\n\n")
		Writef(fs.Output(), "Start an MCP (Model Context Protocol) server over stdio.\n\n")
		Writef(fs.Output(), "Tools:\n")
		Writef(fs.Output(), "  read_models  Read deduplicated models from a manifest\n")
		Writef(fs.Output(), "  find_model   Find canonical models by name, type, or group\n")
		Writef(fs.Output(), "\nDefaults are configurable via OASMODELS_* environment variables.\n")
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
