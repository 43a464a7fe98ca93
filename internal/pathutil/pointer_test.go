package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeToken(t *testing.T) {
	tests := []struct {
		raw     string
		escaped string
	}{
		{"plain", "plain"},
		{"a/b", "a~1b"},
		{"m~n", "m~0n"},
		{"~1", "~01"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.escaped, EscapeToken(tt.raw))
			assert.Equal(t, tt.raw, UnescapeToken(tt.escaped))
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		pointer string
		want    []string
		wantErr bool
	}{
		{"whole document", "", nil, false},
		{"root key empty", "/", []string{""}, false},
		{"nested", "/definitions/a", []string{"definitions", "a"}, false},
		{"escaped", "/a~1b/m~0n", []string{"a/b", "m~n"}, false},
		{"index", "/items/0", []string{"items", "0"}, false},
		{"missing slash", "definitions", nil, true},
		{"dangling tilde", "/a~", nil, true},
		{"bad escape", "/a~2", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.pointer)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPointer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		token string
		want  int
		ok    bool
	}{
		{"0", 0, true},
		{"12", 12, true},
		{"01", 0, false},
		{"-1", 0, false},
		{"1a", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseIndex(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAppend(t *testing.T) {
	assert.Equal(t, "/properties/a~1b", Append("/properties", "a/b"))
	assert.Equal(t, "#/allOf/2", AppendIndex("#/allOf", 2))
	assert.Equal(t, "/", Append("", ""))
}
