// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasmodels capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/erraggy/oasmodels"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasmodels MCP server: reads the data models of an API manifest, deduplicated across resource groups and consistently named.

Configuration: All defaults are configurable via OASMODELS_* environment variables set in your MCP client config.

Key settings:
- OASMODELS_CACHE_FILE_TTL (default: 15m) - cache TTL for manifest files
- OASMODELS_CACHE_ENABLED (default: true) - disable manifest caching entirely
- OASMODELS_LIST_LIMIT (default: 100) - default result limit
- OASMODELS_LIST_DETAIL_LIMIT (default: 25) - default limit in detail mode
- OASMODELS_GENERIC_NAMING - default generic naming strategy (guillemets, angle, of, underscore, flattened)
- OASMODELS_CASING - default name casing (declared, pascal, camel, snake, kebab)
- OASMODELS_PARALLEL_NAMING (default: false) - finalize names per group concurrently

Caching: Loaded manifests are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		manifestCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasmodels", Version: oasmodels.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_models",
		Description: "Read the data models of an API manifest. Models reachable from several operations or resource groups are emitted once, in the group that first discovered them, and every reference points at that canonical model. Returns models with their properties, grouped by resource group. Use group to restrict output, offset/limit to paginate, and output to write the full result to a file. Naming defaults are configurable via OASMODELS_GENERIC_NAMING and OASMODELS_CASING env vars.",
	}, handleReadModels)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_model",
		Description: "Find canonical models by display name (supports * glob), type signature substring, or resource group. Returns summaries (id, name, group, type, property count) by default or full models with detail=true. Use group_by=group to get per-group counts instead of individual models.",
	}, handleFindModel)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// detailLimit returns a lower default limit for detail mode output.
func detailLimit(limit int) int {
	if limit <= 0 {
		return cfg.ListDetailLimit
	}
	return limit
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is a valid value and is not combined with detail.
func validateGroupBy(groupBy string, detail bool, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	if detail {
		return fmt.Errorf("cannot use both group_by and detail")
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchGlobName reports whether name matches pattern, case-insensitively.
// An empty pattern matches everything; a pattern without glob characters
// must match exactly.
func matchGlobName(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	name, pattern = strings.ToLower(name), strings.ToLower(pattern)
	if !strings.ContainsAny(pattern, "*?[") {
		return name == pattern
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}

// formatCount renders "1 model" or "3 models".
func formatCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
