// Package murmur2 implements the 32-bit MurmurHash2 mixing hash.
package murmur2

const (
	m = 0x5bd1e995
	r = 24
)

// Sum32 returns the hash of data with a zero seed.
func Sum32(data []byte) uint32 {
	return Sum32WithSeed(data, 0)
}

// Sum32WithSeed consumes data four bytes at a time (little-endian), folds the
// trailing 1-3 bytes and finishes with an avalanche mix.
func Sum32WithSeed(data []byte, seed uint32) uint32 {
	h := seed ^ uint32(len(data))
	for len(data) >= 4 {
		k := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
		k *= m
		k ^= k >> r
		k *= m
		h *= m
		h ^= k
		data = data[4:]
	}
	if len(data) > 0 {
		for i := len(data) - 1; i >= 0; i-- {
			h ^= uint32(data[i]) << (8 * i)
		}
		h *= m
	}
	h ^= h >> 13
	h *= m
	h ^= h >> 15
	return h
}
