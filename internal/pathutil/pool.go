package pathutil

import "sync"

// Builders are pooled in capacity classes. A builder that grew while walking
// a deep document goes back to a deep class, so shallow documents keep
// getting small builders and deep ones stop regrowing.
var classCaps = [...]int{8, 32, 128}

// maxPooledCap is the largest capacity kept. Anything beyond it came from a
// pathological document and is left to the collector.
const maxPooledCap = 512

var builderPools [len(classCaps)]sync.Pool

// getClass returns the smallest class whose capacity holds depth segments,
// or -1 when depth exceeds every class.
func getClass(depth int) int {
	for i, c := range classCaps {
		if depth <= c {
			return i
		}
	}
	return -1
}

// putClass returns the largest class whose capacity a builder of capacity c
// satisfies, or -1 when it should not be pooled.
func putClass(c int) int {
	if c > maxPooledCap {
		return -1
	}
	for i := len(classCaps) - 1; i >= 0; i-- {
		if c >= classCaps[i] {
			return i
		}
	}
	return -1
}

// Get returns a reset builder with room for at least depth segments.
// Callers that know the depth of what they are about to walk pass it; 0
// means unknown.
func Get(depth int) *PointerBuilder {
	i := getClass(depth)
	if i < 0 {
		return &PointerBuilder{segments: make([]string, 0, depth)}
	}
	if p, ok := builderPools[i].Get().(*PointerBuilder); ok {
		p.Reset()
		return p
	}
	return &PointerBuilder{segments: make([]string, 0, classCaps[i])}
}

// Put returns a builder to the class its capacity serves.
func Put(p *PointerBuilder) {
	if p == nil {
		return
	}
	i := putClass(cap(p.segments))
	if i < 0 {
		return
	}
	p.Reset()
	builderPools[i].Put(p)
}
