package bloomfilter

import (
	"github.com/EndlessParadox1/epbloom/murmur2"
	"github.com/spaolacci/murmur3"
)

// Hash maps data to a 32-bit value under the given seed.
type Hash func(data []byte, seed uint32) uint32

// Murmur2 is the default base hash.
func Murmur2(data []byte, seed uint32) uint32 {
	return murmur2.Sum32WithSeed(data, seed)
}

// Murmur3 is an alternative base hash for Options.Hash.
func Murmur3(data []byte, seed uint32) uint32 {
	return murmur3.Sum32WithSeed(data, seed)
}

var defaultHash Hash = Murmur2

// baseHashes returns the two seeds of the double hashing scheme,
// the second one seeded by the first.
func baseHashes(hash Hash, data []byte) (h1, h2 uint32) {
	h1 = hash(data, 0)
	h2 = hash(data, h1)
	return
}

// position returns |h1 + i*h2| mod m with the sum read as a signed 32-bit
// value. It is widened first so that the minimum int32 stays in range.
func position(h1, h2 uint32, i, m int) int {
	x := int64(int32(h1 + uint32(i)*h2))
	if x < 0 {
		x = -x
	}
	return int(x % int64(m))
}
