package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calculisto/json-validator/internal/fileutil"
	"github.com/calculisto/json-validator/jsonvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := WriteFile(t, dir, "nested/deeper/doc.json", `{"a": 1}`)

	assert.Equal(t, filepath.Join(dir, "nested", "deeper", "doc.json"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fileutil.OwnerReadWrite, info.Mode().Perm())
}

func TestWriteTempDocuments(t *testing.T) {
	doc := map[string]any{"type": "string", "maxLength": 3}

	for name, path := range map[string]string{
		"json": WriteTempJSON(t, doc),
		"yaml": WriteTempYAML(t, doc),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			got, err := jsonvalue.Parse(data)
			require.NoError(t, err)
			assert.True(t, jsonvalue.Equal(jsonvalue.MustParse(`{"type": "string", "maxLength": 3}`), got))
		})
	}
}

func TestNewValidator(t *testing.T) {
	v := NewValidator(t, OrderSchema, "http://example.com/order.json")

	assert.True(t, v.Validate(jsonvalue.MustParse(`{"id": 1, "lines": [{"sku": "A", "qty": 2}]}`)).Valid)

	res := v.Validate(jsonvalue.MustParse(`{"id": 1, "lines": [{"qty": 0}]}`))
	assert.False(t, res.Valid)
	assert.Equal(t, 2, len(res.Errors.Leaves()))
}
