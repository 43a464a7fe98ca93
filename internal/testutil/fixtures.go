// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/calculisto/json-validator/internal/fileutil"
	"github.com/calculisto/json-validator/jsonvalue"
	"github.com/calculisto/json-validator/validator"
)

// OrderSchema is a small draft-07 schema exercising properties, required,
// numeric bounds and a local $ref.
const OrderSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["id", "lines"],
	"properties": {
		"id": {"type": "integer", "minimum": 1},
		"lines": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/line"}}
	},
	"definitions": {
		"line": {
			"type": "object",
			"required": ["sku"],
			"properties": {"sku": {"type": "string"}, "qty": {"type": "integer", "minimum": 1}}
		}
	}
}`

// WriteFile writes content to name below dir, creating parent directories,
// and returns the file's path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), fileutil.DirReadableByAll); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), fileutil.OwnerReadWrite); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteFile(t, t.TempDir(), "test.yaml", string(data))
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return WriteFile(t, t.TempDir(), "test.json", string(data))
}

// NewValidator creates a validator with schemaText added as its default
// target under uri.
func NewValidator(t *testing.T, schemaText, uri string, opts ...validator.Option) *validator.Validator {
	t.Helper()

	v, err := validator.New(opts...)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}
	schema, err := jsonvalue.ParseString(schemaText)
	if err != nil {
		t.Fatalf("Failed to parse schema: %v", err)
	}
	if err := v.AddSchema(schema, uri); err != nil {
		t.Fatalf("Failed to add schema: %v", err)
	}
	return v
}
