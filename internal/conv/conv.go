// Package conv provides checked integer conversions.
//
// The conversions panic on overflow: a program too large for 32-bit
// instruction indices or offsets is a programming error, not a runtime
// condition, and the compiler rejects such programs before reaching here.
package conv

import "math"

// IntToUint32 converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToInt32 converts an int to int32.
// Panics if n is outside [math.MinInt32, math.MaxInt32].
func IntToInt32(n int) int32 {
	if n < math.MinInt32 || n > math.MaxInt32 {
		panic("integer overflow: int value out of int32 range")
	}
	return int32(n)
}
