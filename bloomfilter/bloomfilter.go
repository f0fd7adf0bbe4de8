// Package bloomfilter implements a Bloom filter sized from a target
// false-positive probability and an expected number of elements.
package bloomfilter

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Filter never reports a false negative: an added element is contained
// until Clear. It is not safe for concurrent use, see Locked.
type Filter[E any] struct {
	bits        *bitset.BitSet
	size        int // m
	k           int
	bitsPerElem float64
	expected    int
	count       int // includes duplicate insertions
	hash        Hash
	encode      Encoder[E]
}

// Options customizes a Filter. The zero value hashes with MurmurHash2 and
// encodes elements with Text.
type Options[E any] struct {
	Hash   Hash
	Encode Encoder[E]
}

// New returns an empty filter for expectedNumElems elements at the given
// false-positive probability. opts may be nil.
func New[E any](falsePositiveProbability float64, expectedNumElems int, opts *Options[E]) (*Filter[E], error) {
	p, err := Derive(falsePositiveProbability, expectedNumElems)
	if err != nil {
		return nil, err
	}
	bits := bitset.New(uint(p.M))
	if bits.Len() != uint(p.M) {
		return nil, fmt.Errorf("%w: cannot allocate %d bits", ErrInvalidParameter, p.M)
	}
	f := &Filter[E]{
		bits:        bits,
		size:        p.M,
		k:           p.K,
		bitsPerElem: p.BitsPerElem,
		expected:    expectedNumElems,
		hash:        defaultHash,
		encode:      Text[E],
	}
	if opts != nil {
		if opts.Hash != nil {
			f.hash = opts.Hash
		}
		if opts.Encode != nil {
			f.encode = opts.Encode
		}
	}
	return f, nil
}

// Add inserts e. The counter grows even if e was already present.
func (f *Filter[E]) Add(e E) error {
	data, err := f.encode(e)
	if err != nil {
		return err
	}
	f.AddBytes(data)
	return nil
}

// AddBytes inserts an already encoded element.
func (f *Filter[E]) AddBytes(data []byte) {
	h1, h2 := baseHashes(f.hash, data)
	for i := 0; i < f.k; i++ {
		f.bits.Set(uint(position(h1, h2, i, f.size)))
	}
	f.count++
}

// Contains reports whether e might have been added.
func (f *Filter[E]) Contains(e E) (bool, error) {
	data, err := f.encode(e)
	if err != nil {
		return false, err
	}
	return f.ContainsBytes(data), nil
}

// ContainsBytes is Contains for an already encoded element.
func (f *Filter[E]) ContainsBytes(data []byte) bool {
	h1, h2 := baseHashes(f.hash, data)
	for i := 0; i < f.k; i++ {
		if !f.bits.Test(uint(position(h1, h2, i, f.size))) {
			return false
		}
	}
	return true
}

// Positions returns the k bit indices data maps to, each in [0, Size()).
func (f *Filter[E]) Positions(data []byte) []int {
	h1, h2 := baseHashes(f.hash, data)
	out := make([]int, f.k)
	for i := range out {
		out[i] = position(h1, h2, i, f.size)
	}
	return out
}

// Clear resets all bits and the insertion counter.
func (f *Filter[E]) Clear() {
	f.bits.ClearAll()
	f.count = 0
}

// Size returns m, the number of bits.
func (f *Filter[E]) Size() int {
	return f.size
}

// Count returns the number of Add calls since creation or the last Clear.
func (f *Filter[E]) Count() int {
	return f.count
}

// HashRounds returns k.
func (f *Filter[E]) HashRounds() int {
	return f.k
}

// ExpectedCount returns the element count the filter was sized for.
func (f *Filter[E]) ExpectedCount() int {
	return f.expected
}

// FillRatio returns the fraction of bits set, in [0, 1].
func (f *Filter[E]) FillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.size)
}
