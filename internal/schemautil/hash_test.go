package schemautil

import (
	"testing"

	"github.com/calculisto/json-validator/jsonvalue"
	"github.com/stretchr/testify/assert"
)

func TestHasherEquivalentValues(t *testing.T) {
	h := NewHasher()

	tests := []struct {
		name string
		a, b string
	}{
		{"integer and float", `1`, `1.0`},
		{"member order", `{"a":1,"b":[true,null]}`, `{"b":[true,null],"a":1}`},
		{"nested order", `{"x":{"p":"q","r":"s"}}`, `{"x":{"r":"s","p":"q"}}`},
		{"large unsigned", `18446744073709551615`, `18446744073709551615`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := jsonvalue.MustParse(tt.a), jsonvalue.MustParse(tt.b)
			assert.True(t, jsonvalue.Equal(a, b))
			assert.Equal(t, h.Hash(a), h.Hash(b))
		})
	}
}

func TestHasherDistinctValues(t *testing.T) {
	h := NewHasher()

	pairs := [][2]string{
		{`"1"`, `1`},
		{`[1,2]`, `[2,1]`},
		{`{"a":1}`, `{"a":2}`},
		{`["ab"]`, `["a","b"]`},
		{`null`, `false`},
		{`1.5`, `1`},
		{`{}`, `[]`},
	}

	for _, p := range pairs {
		a, b := jsonvalue.MustParse(p[0]), jsonvalue.MustParse(p[1])
		assert.NotEqual(t, h.Hash(a), h.Hash(b), "%s vs %s", p[0], p[1])
	}
}

func TestIndexInsert(t *testing.T) {
	x := NewIndex[int]()
	next := 0
	alloc := func() int {
		next++
		return next
	}

	ref, inserted := x.Insert(jsonvalue.MustParse(`{"type":"string"}`), alloc)
	assert.True(t, inserted)
	assert.Equal(t, 1, ref)

	ref, inserted = x.Insert(jsonvalue.MustParse(`{ "type" : "string" }`), alloc)
	assert.False(t, inserted)
	assert.Equal(t, 1, ref)

	ref, inserted = x.Insert(jsonvalue.MustParse(`{"type":"number"}`), alloc)
	assert.True(t, inserted)
	assert.Equal(t, 2, ref)
	assert.Equal(t, 2, x.Len())

	got, ok := x.Lookup(jsonvalue.MustParse(`{"type":"number"}`))
	assert.True(t, ok)
	assert.Equal(t, 2, got)

	_, ok = x.Lookup(jsonvalue.MustParse(`{"type":"null"}`))
	assert.False(t, ok)
}
