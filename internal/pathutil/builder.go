package pathutil

import (
	"strconv"
	"strings"
)

// PointerBuilder provides efficient incremental JSON Pointer construction.
// Segments are stored raw and escaped only when String() materializes the
// pointer.
type PointerBuilder struct {
	segments []string
}

// Push adds a raw key segment.
func (p *PointerBuilder) Push(segment string) {
	p.segments = append(p.segments, segment)
}

// PushIndex adds an array index segment.
func (p *PointerBuilder) PushIndex(i int) {
	p.segments = append(p.segments, strconv.Itoa(i))
}

// Pop removes the last segment.
func (p *PointerBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	p.segments = p.segments[:len(p.segments)-1]
}

// Depth returns the number of segments.
func (p *PointerBuilder) Depth() int {
	return len(p.segments)
}

// Reset clears the builder for reuse.
func (p *PointerBuilder) Reset() {
	p.segments = p.segments[:0]
}

// String materializes the pointer. The empty builder yields "".
func (p *PointerBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(EscapeToken(seg))
	}
	return b.String()
}
