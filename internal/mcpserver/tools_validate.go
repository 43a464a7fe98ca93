package mcpserver

import (
	"context"
	"errors"

	"github.com/calculisto/json-validator/validator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateInput struct {
	Schema    documentInput `json:"schema,omitempty"     jsonschema:"The schema to validate against. May be omitted when schema_uri names a preloaded schema."`
	Instance  documentInput `json:"instance"             jsonschema:"The document to validate"`
	SchemaURI string        `json:"schema_uri,omitempty" jsonschema:"URI the schema is registered under, so relative $refs resolve against it. Without schema, the preloaded schema to validate against."`
	Offset    int           `json:"offset,omitempty"     jsonschema:"Skip the first N errors (for pagination)"`
	Limit     int           `json:"limit,omitempty"      jsonschema:"Maximum number of errors to return (default 100)"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validationOutput, error) {
	if input.Schema.empty() && input.SchemaURI == "" {
		return errResult(errors.New("either schema or schema_uri must be provided")), validationOutput{}, nil
	}

	instance, err := input.Instance.parse()
	if err != nil {
		return errResult(err), validationOutput{}, nil
	}

	v, err := schemaValidator(input.Schema, input.SchemaURI)
	if err != nil {
		return errResult(err), validationOutput{}, nil
	}

	var res *validator.Result
	if input.Schema.empty() {
		res, err = v.ValidateURI(instance, input.SchemaURI)
		if err != nil {
			return errResult(err), validationOutput{}, nil
		}
	} else {
		res = v.Validate(instance)
	}

	return nil, newValidationOutput(res, input.Offset, input.Limit), nil
}
