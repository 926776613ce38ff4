package board

import "math/bits"

// trailingZeros and popcount wrap math/bits so the rest of the package
// never hand-rolls bit tricks — the teacher's engine/misc.go logN/popcnt
// De Bruijn tables are replaced by the compiler-intrinsic stdlib
// equivalents.
func trailingZeros(x uint64) int { return bits.TrailingZeros64(x) }
func popcount(x uint64) int      { return bits.OnesCount64(x) }
