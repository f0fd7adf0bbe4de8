package bloomfilter

import (
	"fmt"
	"math"
)

// FalsePositiveProbability returns (1 - e^(-k*x/m))^k, the false-positive
// probability after x insertions.
func (f *Filter[E]) FalsePositiveProbability(x float64) float64 {
	k := float64(f.k)
	return math.Pow(1-math.Exp(-k*x/float64(f.size)), k)
}

// ExpectedFalsePositiveProbability is the rate at the expected element count.
func (f *Filter[E]) ExpectedFalsePositiveProbability() float64 {
	return f.FalsePositiveProbability(float64(f.expected))
}

// CurrentFalsePositiveProbability is the rate at the current count.
// An empty filter reports 0 rather than an error: no element can test
// positive before the first Add, so the formula is exact there.
func (f *Filter[E]) CurrentFalsePositiveProbability() float64 {
	return f.FalsePositiveProbability(float64(f.count))
}

func (f *Filter[E]) ExpectedBitsPerElement() float64 {
	return f.bitsPerElem
}

// CurrentBitsPerElement returns m / Count(), or ErrUndefined if nothing
// has been added.
func (f *Filter[E]) CurrentBitsPerElement() (float64, error) {
	if f.count == 0 {
		return 0, fmt.Errorf("%w: no elements added", ErrUndefined)
	}
	return float64(f.size) / float64(f.count), nil
}
