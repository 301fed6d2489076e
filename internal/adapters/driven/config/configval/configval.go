// Package configval converts loosely typed configuration values.
// TOML decoding yields int64 and float64 while values set at runtime are
// usually int, so every config store shares these conversions.
package configval

import "strconv"

// String returns v as a string, or "" if it is not one.
func String(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Int returns v as an int. Floats are truncated; numeric strings are parsed.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// Float returns v as a float64. Integers are widened; numeric strings are parsed.
func Float(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Bool returns v as a bool, or false if it is not one.
func Bool(v any) bool {
	b, _ := v.(bool)
	return b
}
