// Package pathutil provides JSON Pointer (RFC 6901) utilities for schema and
// instance traversal.
//
// Token helpers convert between raw keys and pointer tokens:
//
//	pathutil.EscapeToken("a/b")    // "a~1b"
//	pathutil.UnescapeToken("a~1b") // "a/b"
//
// [Split] parses a pointer into decoded tokens, rejecting malformed input,
// and [Append]/[AppendIndex] extend an existing pointer by one token.
//
// # PointerBuilder Usage
//
// [PointerBuilder] uses push/pop semantics to build pointers incrementally
// without allocating intermediate strings. Use [Get] to obtain a pooled
// builder sized for the expected depth, and [Put] to return it:
//
//	ptr := pathutil.Get(depthHint)
//	defer pathutil.Put(ptr)
//
//	ptr.Push("properties")
//	ptr.Push(propName)
//	// ... recurse ...
//	ptr.Pop()
//	ptr.Pop()
//
//	// Only call String() when needed (e.g., reporting an error)
//	if bad {
//	    return fmt.Errorf("bad schema at %s", ptr.String())
//	}
package pathutil
