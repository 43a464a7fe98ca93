package uriutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{"fragment only keeps path", "http://example.com/root.json", "#/definitions/a", "http://example.com/root.json#/definitions/a"},
		{"fragment replaces fragment", "http://example.com/root.json#/x", "#/y", "http://example.com/root.json#/y"},
		{"relative merges", "http://example.com/schemas/root.json", "item.json", "http://example.com/schemas/item.json"},
		{"relative parent", "http://example.com/schemas/root.json", "../other.json#/a", "http://example.com/other.json#/a"},
		{"absolute replaces", "http://example.com/root.json", "http://other.org/s.json", "http://other.org/s.json"},
		{"plain name fragment", "http://example.com/root.json", "#foo", "http://example.com/root.json#foo"},
		{"empty base", "", "http://example.com/a.json", "http://example.com/a.json"},
		{"urn base with fragment", "urn:example:root", "#/definitions/a", "urn:example:root#/definitions/a"},
		{"empty fragment dropped", "http://example.com/a.json", "http://example.com/b.json#", "http://example.com/b.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.base, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveInvalid(t *testing.T) {
	_, err := Resolve("http://example.com/", "%zz")
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	base, fragment, err := Split("http://example.com/s.json#/definitions/a%25b")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/s.json", base)
	assert.Equal(t, "/definitions/a%b", fragment)

	base, fragment, err = Split("http://example.com/s.json")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/s.json", base)
	assert.Empty(t, fragment)
}

func TestDecodePercent(t *testing.T) {
	got, err := DecodePercent("foo%22bar")
	require.NoError(t, err)
	assert.Equal(t, `foo"bar`, got)
}

func TestIsAbsolute(t *testing.T) {
	assert.True(t, IsAbsolute("http://example.com/s.json"))
	assert.True(t, IsAbsolute("urn:uuid:deadbeef-1234-ffff-ffff-4321feebdaed"))
	assert.False(t, IsAbsolute("s.json"))
	assert.False(t, IsAbsolute("#/definitions/a"))
	assert.False(t, IsAbsolute(""))
}
