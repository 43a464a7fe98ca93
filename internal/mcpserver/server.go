// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes JSON Schema validation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	jsonvalidator "github.com/calculisto/json-validator"
	"github.com/calculisto/json-validator/validator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `jsonvalidator MCP server: validates JSON and YAML documents against JSON Schema draft-07 and checks schemas against the draft-07 meta-schema.

Configuration: All defaults are configurable via JSONVALIDATOR_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- JSONVALIDATOR_SCHEMA_DIR: directory of schemas preloaded into every validation, so $ref can point into it
- JSONVALIDATOR_BASE_URI: URI the schema directory is registered under (default: its file:// URI)
- JSONVALIDATOR_MAX_DEPTH (default: 512): evaluation depth bound for recursive schemas
- JSONVALIDATOR_META_VALIDATION (default: false): check every schema against draft-07 before use
- JSONVALIDATOR_MAX_ERRORS (default: 100): default number of errors returned per call
- JSONVALIDATOR_CACHE_ENABLED (default: true): disable validator caching entirely
- JSONVALIDATOR_LOG_LEVEL (default: warn): stderr log level

Caching: Analyzed schemas are cached per session. File entries use path+mtime as key (auto-invalidated on change), content entries a content hash. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	// The environment may have changed since package load (.env files).
	cfg = loadConfig()
	validatorCache.resize(cfg.CacheMaxSize)
	if cfg.CacheEnabled {
		validatorCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "jsonvalidator", Version: jsonvalidator.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a JSON or YAML instance against a JSON Schema draft-07 schema. Provide the schema inline or as a file, or give only schema_uri to validate against a preloaded schema (JSONVALIDATOR_SCHEMA_DIR); schema_uri may carry a fragment such as #/definitions/item. Returns the innermost failing keywords with their schema and instance locations. Use offset/limit to paginate through errors.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_schema",
		Description: "Check a schema document against the JSON Schema draft-07 meta-schema, then verify that every $ref resolves and every pattern compiles. Returns meta-schema violations in the same shape as validate; unresolvable references are reported as an error result.",
	}, handleCheckSchema)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ErrorLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ErrorLimit
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

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// validationIssue is one flattened violation.
type validationIssue struct {
	SchemaLocation   string `json:"schema_location"`
	InstanceLocation string `json:"instance_location"`
	Message          string `json:"message"`
}

// validationOutput is the output shared by every tool that reports a
// validation result.
type validationOutput struct {
	Valid      bool              `json:"valid"`
	ErrorCount int               `json:"error_count"`
	Returned   int               `json:"returned"`
	Errors     []validationIssue `json:"errors,omitempty"`
}

// newValidationOutput flattens res to its leaf violations and returns the
// requested page of them.
func newValidationOutput(res *validator.Result, offset, limit int) validationOutput {
	leaves := res.Errors.Leaves()
	issues := makeSlice[validationIssue](len(leaves))
	for _, n := range leaves {
		issues = append(issues, validationIssue{
			SchemaLocation:   n.SchemaLocation,
			InstanceLocation: n.InstanceLocation,
			Message:          n.Message,
		})
	}
	page := paginate(issues, offset, limit)
	return validationOutput{
		Valid:      res.Valid,
		ErrorCount: len(issues),
		Returned:   len(page),
		Errors:     page,
	}
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:(?:file://)?/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

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
