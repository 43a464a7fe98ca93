// Package schemautil provides structural hashing and content
// deduplication for schema documents.
package schemautil

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
	"slices"

	"github.com/calculisto/json-validator/jsonvalue"
)

// Hasher computes structural hashes for values.
// Values that are jsonvalue.Equal always hash identically: numbers hash by
// mathematical value and object members hash in sorted key order.
// Hash collisions are possible; use jsonvalue.Equal to verify equivalence.
type Hasher struct {
	buf [8]byte
}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash computes the structural hash of v.
func (h *Hasher) Hash(v jsonvalue.Value) uint64 {
	hasher := fnv.New64a()
	h.hashValue(hasher, v)
	return hasher.Sum64()
}

func (h *Hasher) hashValue(hasher hash.Hash64, v jsonvalue.Value) {
	switch v.Kind() {
	case jsonvalue.KindNull:
		h.writeString(hasher, "n")
	case jsonvalue.KindBool:
		if v.AsBool() {
			h.writeString(hasher, "t")
		} else {
			h.writeString(hasher, "f")
		}
	case jsonvalue.KindInt, jsonvalue.KindUint, jsonvalue.KindFloat:
		h.hashNumber(hasher, v)
	case jsonvalue.KindString:
		h.writeString(hasher, "s")
		h.writeUint(hasher, uint64(len(v.AsString())))
		h.writeString(hasher, v.AsString())
	case jsonvalue.KindArray:
		h.writeString(hasher, "[")
		h.writeUint(hasher, uint64(v.Len()))
		for _, item := range v.Items() {
			h.hashValue(hasher, item)
		}
	case jsonvalue.KindObject:
		h.writeString(hasher, "{")
		h.writeUint(hasher, uint64(v.Len()))
		keys := v.Keys()
		slices.Sort(keys)
		for _, k := range keys {
			h.writeUint(hasher, uint64(len(k)))
			h.writeString(hasher, k)
			member, _ := v.Lookup(k)
			h.hashValue(hasher, member)
		}
	}
}

// hashNumber writes whole numbers in int64 range as integers and everything
// else by float bits, so 1 and 1.0 hash the same.
func (h *Hasher) hashNumber(hasher hash.Hash64, v jsonvalue.Value) {
	if i, ok := v.Int64(); ok {
		h.writeString(hasher, "i")
		h.writeUint(hasher, uint64(i))
		return
	}
	h.writeString(hasher, "d")
	h.writeUint(hasher, math.Float64bits(v.Float64()))
}

func (h *Hasher) writeString(hasher hash.Hash64, s string) {
	_, _ = hasher.Write([]byte(s))
}

func (h *Hasher) writeUint(hasher hash.Hash64, u uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], u)
	_, _ = hasher.Write(h.buf[:])
}
