package validator

import (
	"github.com/calculisto/json-validator/internal/pathutil"
	"github.com/calculisto/json-validator/internal/schemautil"
	"github.com/calculisto/json-validator/jsonvalue"
)

// nodeID is a stable handle on a value node held in the store's arena.
// Handles stay valid for the lifetime of the store; growth of the arena
// never invalidates them.
type nodeID int32

// noNode is the zero handle returned by failed lookups.
const noNode nodeID = -1

// node is one value of a stored document together with the handles of its
// children: array items in order, or object members in document order.
type node struct {
	value    jsonvalue.Value
	children []nodeID
	doc      int32
	pointer  string
}

// document describes one distinct stored document.
type document struct {
	root nodeID
	uri  string
}

// store is the content-deduplicated arena of every schema document added to
// a Validator, plus the URI registry mapping absolute URIs to nodes.
type store struct {
	nodes  []node
	docs   []document
	index  *schemautil.Index[nodeID]
	uris   map[string]nodeID
	logger Logger

	// deepest is the greatest pointer depth of any stored node. It sizes the
	// pointer builder for the next insert.
	deepest int
}

func newStore(logger Logger) *store {
	return &store{
		index:  schemautil.NewIndex[nodeID](),
		uris:   make(map[string]nodeID),
		logger: logger,
	}
}

// insert adds doc to the arena unless an equal document is already stored.
// It returns the root handle of the stored document and whether doc was new.
func (s *store) insert(doc jsonvalue.Value, uri string) (nodeID, bool) {
	return s.index.Insert(doc, func() nodeID {
		b := pathutil.Get(s.deepest)
		defer pathutil.Put(b)
		docIndex := int32(len(s.docs))
		root := s.add(doc, docIndex, b)
		s.docs = append(s.docs, document{root: root, uri: uri})
		return root
	})
}

func (s *store) add(v jsonvalue.Value, doc int32, b *pathutil.PointerBuilder) nodeID {
	id := nodeID(len(s.nodes))
	s.nodes = append(s.nodes, node{value: v, doc: doc, pointer: b.String()})
	if d := b.Depth(); d > s.deepest {
		s.deepest = d
	}

	var children []nodeID
	switch v.Kind() {
	case jsonvalue.KindArray:
		children = make([]nodeID, v.Len())
		for i, item := range v.Items() {
			b.PushIndex(i)
			children[i] = s.add(item, doc, b)
			b.Pop()
		}
	case jsonvalue.KindObject:
		children = make([]nodeID, v.Len())
		for i, m := range v.Members() {
			b.Push(m.Key)
			children[i] = s.add(m.Value, doc, b)
			b.Pop()
		}
	}
	// Index again: the recursive calls may have grown the arena.
	s.nodes[id].children = children
	return id
}

// register records uri → id. The last registration for a URI wins.
func (s *store) register(id nodeID, uri string) {
	if prev, ok := s.uris[uri]; ok && prev != id {
		s.logger.Debug("uri re-registered", "uri", uri, "previous", s.location(prev), "current", s.location(id))
	}
	s.uris[uri] = id
}

// lookup returns the node registered under uri.
func (s *store) lookup(uri string) (nodeID, bool) {
	id, ok := s.uris[uri]
	return id, ok
}

func (s *store) value(id nodeID) jsonvalue.Value {
	return s.nodes[id].value
}

// member returns the handle of the value stored under key in an object node.
func (s *store) member(id nodeID, key string) (nodeID, bool) {
	n := &s.nodes[id]
	i := n.value.MemberIndex(key)
	if i < 0 {
		return noNode, false
	}
	return n.children[i], true
}

// item returns the handle of the i-th item of an array node.
func (s *store) item(id nodeID, i int) (nodeID, bool) {
	n := &s.nodes[id]
	if n.value.Kind() != jsonvalue.KindArray || i < 0 || i >= len(n.children) {
		return noNode, false
	}
	return n.children[i], true
}

// children returns the child handles of a container node. The slice must
// not be modified.
func (s *store) children(id nodeID) []nodeID {
	return s.nodes[id].children
}

// location describes a node for diagnostics as its document URI followed
// by its JSON Pointer.
func (s *store) location(id nodeID) string {
	n := &s.nodes[id]
	return s.docs[n.doc].uri + "#" + n.pointer
}

// pointer returns the JSON Pointer of a node within its document.
func (s *store) pointer(id nodeID) string {
	return s.nodes[id].pointer
}

// documentOf returns the document owning a node.
func (s *store) documentOf(id nodeID) document {
	return s.docs[s.nodes[id].doc]
}
