package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasmodels"
	"github.com/erraggy/oasmodels/cmd/oasmodels/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasmodels %s\n", oasmodels.Version())
		fmt.Println(oasmodels.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "read":
		if err := commands.HandleRead(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`oasmodels - Deduplicated data models for API manifests

Usage:
  oasmodels <command> [options]

Commands:
  read        Read the canonical models of a manifest
  mcp         Start an MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasmodels read api.yaml
  oasmodels read --format json -o models.json api.yaml
  oasmodels mcp

Run 'oasmodels <command> --help' for more information on a command.
`)
}

var knownCommands = []string{"read", "mcp", "version", "help"}

// suggestCommand returns the known command closest to input, or "" when none
// is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
