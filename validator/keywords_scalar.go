package validator

import (
	"fmt"
	"math"
	"time"

	"github.com/calculisto/json-validator/jsonvalue"
	"github.com/dlclark/regexp2"
)

// numberKeywords evaluates multipleOf and the four boundary keywords. Each
// boundary keyword is independent; exclusivity is not a flag.
func (e *evaluation) numberKeywords(r *reporter, instance jsonvalue.Value, schema nodeID) {
	if _, v, ok := e.keyword(schema, "multipleOf"); ok && v.IsNumber() && v.Float64() > 0 {
		if !isMultipleOf(instance, v) {
			r.report("/multipleOf", fmt.Sprintf("Value %s is not a multiple of %s", instance, v), nil)
		}
	}
	if _, v, ok := e.keyword(schema, "maximum"); ok && v.IsNumber() {
		if jsonvalue.CompareNumbers(instance, v) > 0 {
			r.report("/maximum", fmt.Sprintf("Maximum value exceeded: %s > %s", instance, v), nil)
		}
	}
	if _, v, ok := e.keyword(schema, "exclusiveMaximum"); ok && v.IsNumber() {
		if jsonvalue.CompareNumbers(instance, v) >= 0 {
			r.report("/exclusiveMaximum", fmt.Sprintf("Exclusive maximum value exceeded: %s >= %s", instance, v), nil)
		}
	}
	if _, v, ok := e.keyword(schema, "minimum"); ok && v.IsNumber() {
		if jsonvalue.CompareNumbers(instance, v) < 0 {
			r.report("/minimum", fmt.Sprintf("Minimum value not reached: %s < %s", instance, v), nil)
		}
	}
	if _, v, ok := e.keyword(schema, "exclusiveMinimum"); ok && v.IsNumber() {
		if jsonvalue.CompareNumbers(instance, v) <= 0 {
			r.report("/exclusiveMinimum", fmt.Sprintf("Exclusive minimum value not reached: %s <= %s", instance, v), nil)
		}
	}
}

// isMultipleOf tests divisibility with the IEEE remainder, so decimal
// divisors such as 0.1 are subject to binary rounding. Integer pairs are
// divided exactly.
func isMultipleOf(instance, divisor jsonvalue.Value) bool {
	if a, ok := instance.Int64(); ok {
		if b, ok := divisor.Int64(); ok && b > 0 {
			return a%b == 0
		}
	}
	return math.Remainder(instance.Float64(), divisor.Float64()) == 0
}

// stringKeywords evaluates maxLength, minLength and pattern. Lengths count
// Unicode code points. format, contentEncoding and contentMediaType are
// annotations only.
func (e *evaluation) stringKeywords(r *reporter, instance jsonvalue.Value, schema nodeID) {
	length := uint64(instance.RuneCount())
	if _, v, ok := e.keyword(schema, "maxLength"); ok {
		if n, ok := v.Count(); ok && length > n {
			r.report("/maxLength", fmt.Sprintf("String too long: %d > %d", length, n), nil)
		}
	}
	if _, v, ok := e.keyword(schema, "minLength"); ok {
		if n, ok := v.Count(); ok && length < n {
			r.report("/minLength", fmt.Sprintf("String too short: %d < %d", length, n), nil)
		}
	}
	if _, v, ok := e.keyword(schema, "pattern"); ok && v.IsString() {
		if re := e.v.pattern(v.AsString()); re != nil && !matches(re, instance.AsString()) {
			r.report("/pattern", fmt.Sprintf("String does not match pattern %s", v), nil)
		}
	}
}

// pattern returns the compiled form of a pattern analyzed earlier. Patterns
// of nodes that were never analyzed are compiled on the spot and not cached,
// keeping validation free of writes.
func (v *Validator) pattern(text string) *regexp2.Regexp {
	if re, ok := v.patterns[text]; ok {
		return re
	}
	re, err := compilePattern(text)
	if err != nil {
		return nil
	}
	return re
}

// patternTimeout bounds a single match. regexp2 backtracks.
const patternTimeout = time.Second

// compilePattern compiles an ECMA-262 regular expression.
func compilePattern(text string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(text, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = patternTimeout
	return re, nil
}

// matches reports whether re finds a match anywhere in s. A match that
// times out counts as no match.
func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}
