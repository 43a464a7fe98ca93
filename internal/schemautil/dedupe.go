package schemautil

import "github.com/calculisto/json-validator/jsonvalue"

// Index finds previously seen documents by content. Entries are grouped by
// structural hash and confirmed with jsonvalue.Equal, so hash collisions
// never merge distinct documents.
type Index[T any] struct {
	hasher  *Hasher
	buckets map[uint64][]indexEntry[T]
	size    int
}

type indexEntry[T any] struct {
	doc jsonvalue.Value
	ref T
}

// NewIndex creates an empty Index.
func NewIndex[T any]() *Index[T] {
	return &Index[T]{
		hasher:  NewHasher(),
		buckets: make(map[uint64][]indexEntry[T]),
	}
}

// Lookup returns the reference recorded for a document equal to doc.
func (x *Index[T]) Lookup(doc jsonvalue.Value) (T, bool) {
	for _, e := range x.buckets[x.hasher.Hash(doc)] {
		if jsonvalue.Equal(e.doc, doc) {
			return e.ref, true
		}
	}
	var zero T
	return zero, false
}

// Insert returns the reference recorded for a document equal to doc with
// inserted set to false. Otherwise it calls alloc, records the result for
// doc and returns it with inserted set to true.
func (x *Index[T]) Insert(doc jsonvalue.Value, alloc func() T) (ref T, inserted bool) {
	h := x.hasher.Hash(doc)
	for _, e := range x.buckets[h] {
		if jsonvalue.Equal(e.doc, doc) {
			return e.ref, false
		}
	}
	ref = alloc()
	x.buckets[h] = append(x.buckets[h], indexEntry[T]{doc: doc, ref: ref})
	x.size++
	return ref, true
}

// Len returns the number of distinct documents recorded.
func (x *Index[T]) Len() int {
	return x.size
}
