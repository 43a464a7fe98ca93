package mcpserver

import (
	"context"
	"sync"

	"github.com/calculisto/json-validator/validator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type checkSchemaInput struct {
	Schema    documentInput `json:"schema"               jsonschema:"The schema document to check"`
	SchemaURI string        `json:"schema_uri,omitempty" jsonschema:"URI the schema is registered under, so relative $refs resolve against it"`
	Offset    int           `json:"offset,omitempty"     jsonschema:"Skip the first N errors (for pagination)"`
	Limit     int           `json:"limit,omitempty"      jsonschema:"Maximum number of errors to return (default 100)"`
}

// metaValidator holds only the draft-07 meta-schema.
var metaValidator = sync.OnceValues(func() (*validator.Validator, error) {
	return validator.New()
})

func handleCheckSchema(_ context.Context, _ *mcp.CallToolRequest, input checkSchemaInput) (*mcp.CallToolResult, validationOutput, error) {
	doc, err := input.Schema.parse()
	if err != nil {
		return errResult(err), validationOutput{}, nil
	}

	meta, err := metaValidator()
	if err != nil {
		return errResult(err), validationOutput{}, nil
	}
	res := meta.ValidateSchema(doc)
	if !res.Valid {
		return nil, newValidationOutput(res, input.Offset, input.Limit), nil
	}

	// A conforming document can still hold a dangling $ref or a pattern
	// that does not compile; analysis catches both.
	if _, err := schemaValidator(input.Schema, input.SchemaURI); err != nil {
		return errResult(err), validationOutput{}, nil
	}
	return nil, newValidationOutput(res, input.Offset, input.Limit), nil
}
