package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSchemaTool(t *testing.T) {
	tests := []struct {
		name      string
		schema    string
		valid     bool
		wantIssue string
	}{
		{name: "valid object", schema: orderSchema, valid: true},
		{name: "boolean schema", schema: `true`, valid: true},
		{name: "bad type name", schema: `{"type": "text"}`, wantIssue: "#/properties/type/anyOf/0/$ref/enum"},
		{name: "negative length", schema: `{"minLength": -1}`, wantIssue: "#/properties/minLength/$ref/allOf/0/$ref/minimum"},
		{name: "required not unique", schema: `{"required": ["a", "a"]}`, wantIssue: "#/properties/required/$ref/uniqueItems"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, output, err := handleCheckSchema(context.Background(), &mcp.CallToolRequest{}, checkSchemaInput{
				Schema: documentInput{Content: tt.schema},
			})
			require.NoError(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.valid, output.Valid)
			if tt.valid {
				assert.Zero(t, output.ErrorCount)
				return
			}
			require.NotEmpty(t, output.Errors)
			var locations []string
			for _, e := range output.Errors {
				locations = append(locations, e.SchemaLocation)
			}
			assert.Contains(t, locations, tt.wantIssue)
		})
	}
}

func TestCheckSchemaTool_AnalysisErrors(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   string
	}{
		{name: "dangling ref", schema: `{"$ref": "#/definitions/missing"}`, want: "missing"},
		{name: "bad pattern", schema: `{"pattern": "(a"}`, want: "pattern"},
		{name: "not a document", schema: `{"a": `, want: "parse error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleCheckSchema(context.Background(), &mcp.CallToolRequest{}, checkSchemaInput{
				Schema: documentInput{Content: tt.schema},
			})
			require.NoError(t, err)
			assert.Contains(t, errorText(t, result), tt.want)
		})
	}
}
