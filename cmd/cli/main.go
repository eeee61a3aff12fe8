// Command dms-mcp runs the AWS DMS MCP server.
//
// The server exposes the DMS control plane as MCP tools over stdio (for IDE
// and agent integrations) or streamable HTTP (for remote deployments).
package main

import (
	"fmt"
	"os"

	"github.com/dmsmcp/dmsmcp/pkg/defaults"
	"github.com/dmsmcp/dmsmcp/pkg/ui"
)

func main() {
	if len(os.Args) < 2 {
		// No subcommand: serve over stdio, the common MCP launch shape
		// ("command": "dms-mcp" in an mcp.json).
		runServe(nil)
		return
	}

	switch os.Args[1] {
	case "serve", "mcp":
		runServe(os.Args[2:])
	case "version", "--version", "-v":
		ui.PrintVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		if os.Args[1][0] == '-' {
			// Bare flags go to serve so "dms-mcp --http :8080" works.
			runServe(os.Args[1:])
			return
		}
		ui.PrintError(fmt.Sprintf("unknown command %q", os.Args[1]))
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(defaults.ExitUserError)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: dms-mcp [command] [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve      Start the MCP server (default)\n")
	fmt.Fprintf(os.Stderr, "  version    Print version information\n")
	fmt.Fprintf(os.Stderr, "  help       Show this help\n\n")
	fmt.Fprintf(os.Stderr, "Run 'dms-mcp serve --help' for server flags.\n")
}
