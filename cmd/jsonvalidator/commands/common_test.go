package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calculisto/json-validator/internal/testutil"
	"github.com/calculisto/json-validator/jsonvalue"
	"github.com/calculisto/json-validator/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStreams swaps the package streams for buffers for the duration of
// the test, feeding input to stdin.
func captureStreams(t *testing.T, input string) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	origIn, origOut, origErr := stdin, stdout, stderr
	stdin, stdout, stderr = strings.NewReader(input), out, errOut
	t.Cleanup(func() {
		stdin, stdout, stderr = origIn, origOut, origErr
	})
	return out, errOut
}

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range []string{FormatText, FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateOutputFormat(f))
	}
	err := ValidateOutputFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format 'xml'")
}

func TestOutputStructured(t *testing.T) {
	data := map[string]any{"valid": true, "errorCount": 0}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatJSON))
		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, true, got["valid"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputStructured(&buf, data, FormatYAML))
		assert.Contains(t, buf.String(), "valid: true")
	})

	t.Run("text rejected", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, OutputStructured(&buf, data, FormatText))
		assert.Empty(t, buf.String())
	})
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", ""},
		{"single line", "a\n", "  a\n"},
		{"no trailing newline", "a", "  a\n"},
		{"multiple lines", "a\n  b\n", "  a\n    b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, indent(tt.text, "  "))
		})
	}
}

func TestCheckStdinOnce(t *testing.T) {
	assert.NoError(t, checkStdinOnce(nil))
	assert.NoError(t, checkStdinOnce([]string{"a.json", "-", "b.json"}))
	assert.Error(t, checkStdinOnce([]string{"-", "a.json", "-"}))
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()

	t.Run("file", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "doc.yaml", "name: widget\ncount: 3\n")
		doc, err := readDocument(path)
		require.NoError(t, err)
		assert.Equal(t, jsonvalue.MustParse(`{"name": "widget", "count": 3}`).String(), doc.String())
	})

	t.Run("stdin", func(t *testing.T) {
		captureStreams(t, `[1, 2]`)
		doc, err := readDocument("-")
		require.NoError(t, err)
		assert.Equal(t, jsonvalue.MustParse(`[1, 2]`).String(), doc.String())
	})

	t.Run("parse error names the source", func(t *testing.T) {
		captureStreams(t, `{"open": `)
		_, err := readDocument("-")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "<stdin>")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readDocument(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})
}

func TestWriteReports(t *testing.T) {
	v, err := validator.New()
	require.NoError(t, err)
	require.NoError(t, v.AddSchema(jsonvalue.MustParse(`{"type": "object", "required": ["id"]}`), ""))

	valid := newReport("good.json", v.Validate(jsonvalue.MustParse(`{"id": 1}`)))
	invalid := newReport("bad.json", v.Validate(jsonvalue.MustParse(`{}`)))

	t.Run("all valid", func(t *testing.T) {
		out, errOut := captureStreams(t, "")
		require.NoError(t, writeReports([]report{valid}, FormatText, false))
		assert.Equal(t, "good.json: valid\n", out.String())
		assert.Contains(t, errOut.String(), "1 document(s) valid")
	})

	t.Run("text failure", func(t *testing.T) {
		out, errOut := captureStreams(t, "")
		err := writeReports([]report{valid, invalid}, FormatText, false)
		require.ErrorIs(t, err, ErrInvalid)
		assert.Contains(t, out.String(), "bad.json: invalid (1 error(s))\n")
		assert.Contains(t, out.String(), `  (root): Missing required property "id" [#/required/0]`)
		assert.Contains(t, errOut.String(), "1 of 2 document(s) failed validation")
	})

	t.Run("quiet", func(t *testing.T) {
		out, errOut := captureStreams(t, "")
		err := writeReports([]report{invalid}, FormatText, true)
		require.ErrorIs(t, err, ErrInvalid)
		assert.Empty(t, out.String())
		assert.Empty(t, errOut.String())
	})

	t.Run("json", func(t *testing.T) {
		out, _ := captureStreams(t, "")
		err := writeReports([]report{valid, invalid}, FormatJSON, false)
		require.ErrorIs(t, err, ErrInvalid)

		var got []map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "good.json", got[0]["path"])
		assert.Equal(t, true, got[0]["valid"])
		assert.Nil(t, got[0]["errors"])
		assert.Equal(t, false, got[1]["valid"])
		assert.Equal(t, float64(1), got[1]["errorCount"])
	})

	t.Run("analysis error", func(t *testing.T) {
		out, _ := captureStreams(t, "")
		r := report{Path: "x.json", Count: 1, Error: "reference did not resolve"}
		require.ErrorIs(t, writeReports([]report{r}, FormatText, false), ErrInvalid)
		assert.Equal(t, "x.json: invalid\n  reference did not resolve\n", out.String())
	})
}
