package compress

import "math/bits"

// eliasGammaBits returns the number of bits needed to interlaced-Elias-Gamma
// encode v, which must be >= 1. This is 2*floor(log2(v))+1, computed as a
// single leading-zero-count per the hot-path guidance: no loop, no
// allocation, branch-free.
func eliasGammaBits(v uint32) uint32 {
	return 2*(32-uint32(bits.LeadingZeros32(v))-1) + 1
}
