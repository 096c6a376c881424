package veritas

import (
	"math"
	"reflect"
)

// numericValue converts any Go numeric value to float64. Named numeric types
// (e.g. a type MyInt int binding) are handled through the reflect fallback.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// almostEqual compares floats with combined absolute and relative tolerance:
// |a-b| <= atol + rtol*|b|. NaN never equals anything; infinities must match
// exactly.
func almostEqual(a, b, atol, rtol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}

// equalValues compares an observed value to an expected one. Numeric pairs
// are compared with tolerance to avoid floating-point false kills; anything
// else is structural equality.
func equalValues(actual, expected any, atol, rtol float64) bool {
	an, aok := numericValue(actual)
	en, eok := numericValue(expected)
	if aok && eok {
		return almostEqual(an, en, atol, rtol)
	}
	return reflect.DeepEqual(actual, expected)
}

// relationHolds checks metric (dir) threshold. The == relation uses the same
// tolerance as analytic equality so equality claims over metrics are not
// killed by float noise.
func relationHolds(metric, threshold float64, dir Direction, atol, rtol float64) bool {
	switch dir {
	case DirGT:
		return metric > threshold
	case DirGTE:
		return metric >= threshold
	case DirLT:
		return metric < threshold
	case DirLTE:
		return metric <= threshold
	case DirEQ:
		return almostEqual(metric, threshold, atol, rtol)
	}
	return false
}
