package format

// Round returns n rounded up to the next multiple of granularity, which must
// be a power of two.
//
// Example:
//
//	Round(1, 16)  = 16
//	Round(16, 16) = 16
//	Round(17, 16) = 32
//	Round(0, 16)  = 0
func Round(n, granularity int) int {
	mask := granularity - 1
	return (n + mask) &^ mask
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
