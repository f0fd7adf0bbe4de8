package bloomfilter

import (
	"fmt"
	"math"
)

// Params holds the structural parameters derived from a target rate.
type Params struct {
	K           int     // hash rounds
	M           int     // bit-array size
	BitsPerElem float64 // expected bits per element
}

// Derive computes k = ceil(-log2(p)), bitsPerElem = k/ln2 and
// m = ceil(bitsPerElem*n).
func Derive(p float64, n int) (Params, error) {
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return Params{}, fmt.Errorf("%w: false positive probability %v not in (0, 1)", ErrInvalidParameter, p)
	}
	if n <= 0 {
		return Params{}, fmt.Errorf("%w: expected number of elements %d must be positive", ErrInvalidParameter, n)
	}
	k := math.Ceil(-math.Log2(p))
	bpe := k / math.Ln2
	m := math.Ceil(bpe * float64(n))
	if m >= math.MaxInt {
		return Params{}, fmt.Errorf("%w: bit array of %g bits overflows", ErrInvalidParameter, m)
	}
	return Params{
		K:           int(k),
		M:           int(m),
		BitsPerElem: bpe,
	}, nil
}
