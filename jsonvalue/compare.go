package jsonvalue

import (
	"cmp"
	"math"
	"math/big"
	"slices"
)

// Equal reports whether a and b are structurally equal.
//
// Numbers compare by mathematical value regardless of kind, so 1 equals 1.0.
// Object member order is not significant.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// rank orders kinds for Compare; all numeric kinds share a rank.
func rank(k Kind) int {
	switch k {
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindInt, KindUint, KindFloat:
		return 2
	case KindString:
		return 3
	case KindArray:
		return 4
	default:
		return 5
	}
}

// Compare defines a total order over values consistent with Equal.
// Kinds order as null < boolean < number < string < array < object.
// Arrays compare lexicographically; objects compare as their members
// sorted by key.
func Compare(a, b Value) int {
	if ra, rb := rank(a.kind), rank(b.kind); ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch a.kind {
	case KindNull:
		return 0
	case KindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case KindInt, KindUint, KindFloat:
		return CompareNumbers(a, b)
	case KindString:
		return cmp.Compare(a.s, b.s)
	case KindArray:
		n := min(len(a.items), len(b.items))
		for i := 0; i < n; i++ {
			if c := Compare(a.items[i], b.items[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(a.items), len(b.items))
	default:
		return compareObjects(a, b)
	}
}

func compareObjects(a, b Value) int {
	ka, kb := sortedKeys(a), sortedKeys(b)
	n := min(len(ka), len(kb))
	for i := 0; i < n; i++ {
		if c := cmp.Compare(ka[i], kb[i]); c != 0 {
			return c
		}
		va, _ := a.Lookup(ka[i])
		vb, _ := b.Lookup(kb[i])
		if c := Compare(va, vb); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ka), len(kb))
}

func sortedKeys(v Value) []string {
	keys := v.Keys()
	slices.Sort(keys)
	return keys
}

// CompareNumbers compares two numeric values by mathematical value.
// Integer kinds compare exactly; mixed integer/float comparisons use
// arbitrary precision so large integers are not rounded.
// Non-numeric operands compare as zero.
func CompareNumbers(a, b Value) int {
	switch {
	case a.kind == KindInt && b.kind == KindInt:
		return cmp.Compare(a.i, b.i)
	case a.kind == KindUint && b.kind == KindUint:
		return cmp.Compare(a.u, b.u)
	case a.kind == KindInt && b.kind == KindUint:
		// KindUint values always exceed MaxInt64.
		return -1
	case a.kind == KindUint && b.kind == KindInt:
		return 1
	case a.kind == KindFloat && b.kind == KindFloat:
		return cmp.Compare(a.f, b.f)
	}
	return bigFloat(a).Cmp(bigFloat(b))
}

func bigFloat(v Value) *big.Float {
	f := new(big.Float)
	switch v.kind {
	case KindInt:
		f.SetInt64(v.i)
	case KindUint:
		f.SetUint64(v.u)
	case KindFloat:
		if math.IsNaN(v.f) {
			return f
		}
		f.SetFloat64(v.f)
	}
	return f
}
