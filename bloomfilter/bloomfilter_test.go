package bloomfilter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashedKey gives well spread, reproducible test elements.
func hashedKey(prefix string, i int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s-%d", prefix, i)))
	return hex.EncodeToString(sum[:8])
}

func TestContains(t *testing.T) {
	bf, err := New[int](0.001, 100, nil)
	require.NoError(t, err)
	for i := range 100 {
		if i%2 == 0 {
			require.NoError(t, bf.Add(i))
		}
	}
	for i := range 100 {
		ok, err := bf.Contains(i)
		require.NoError(t, err)
		if ok && i%2 != 0 {
			t.Errorf("should return %v for odd numbers, but get %v", !ok, ok)
		} else if !ok && i%2 == 0 {
			t.Errorf("should return %v for even numbers, but get %v", !ok, ok)
		}
	}
}

func TestNoFalseNegatives(t *testing.T) {
	bf, err := New[string](0.01, 1000, nil)
	require.NoError(t, err)
	// well past the expected count
	for i := range 5000 {
		require.NoError(t, bf.Add(hashedKey("in", i)))
	}
	for i := range 5000 {
		ok, err := bf.Contains(hashedKey("in", i))
		require.NoError(t, err)
		assert.Truef(t, ok, "element %d missing", i)
	}
	assert.Equal(t, 5000, bf.Count())
}

func TestNewInvalidParameter(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		n    int
	}{
		{"zero probability", 0, 1000},
		{"probability one", 1, 1000},
		{"negative probability", -0.1, 1000},
		{"probability above one", 1.5, 1000},
		{"NaN probability", math.NaN(), 1000},
		{"zero count", 0.01, 0},
		{"negative count", 0.01, -5},
		{"overflowing size", 1e-300, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bf, err := New[string](tt.p, tt.n, nil)
			require.ErrorIs(t, err, ErrInvalidParameter)
			assert.Nil(t, bf)
		})
	}
}

func TestDeterminism(t *testing.T) {
	build := func() *Filter[string] {
		bf, err := New[string](0.02, 500, nil)
		require.NoError(t, err)
		for i := range 300 {
			bf.AddBytes([]byte(strconv.Itoa(i)))
		}
		return bf
	}
	a, b := build(), build()
	assert.Equal(t, a.Size(), b.Size())
	assert.Equal(t, a.HashRounds(), b.HashRounds())
	assert.True(t, a.bits.Equal(b.bits))
}

func TestClear(t *testing.T) {
	bf, err := New[string](0.01, 100, nil)
	require.NoError(t, err)
	for i := range 50 {
		require.NoError(t, bf.Add(hashedKey("in", i)))
	}
	require.NotZero(t, bf.FillRatio())

	bf.Clear()
	assert.Zero(t, bf.Count())
	assert.Zero(t, bf.FillRatio())
	assert.Equal(t, uint(bf.Size()), bf.bits.Len())
	ok, err := bf.Contains(hashedKey("in", 0))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, bf.Add(hashedKey("in", 0)))
	ok, err = bf.Contains(hashedKey("in", 0))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, bf.Count())
}

func TestDuplicateAdd(t *testing.T) {
	bf, err := New[string](0.01, 100, nil)
	require.NoError(t, err)
	require.NoError(t, bf.Add("dup"))
	snapshot := bf.bits.Clone()

	require.NoError(t, bf.Add("dup"))
	assert.Equal(t, 2, bf.Count())
	assert.True(t, snapshot.Equal(bf.bits))
	ok, err := bf.Contains("dup")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFalsePositiveRate(t *testing.T) {
	tests := []struct {
		p      float64
		n      int
		probes int
	}{
		{0.01, 1000, 20000},
		{0.01, 10000, 100000},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("p=%v,n=%d", tt.p, tt.n), func(t *testing.T) {
			bf, err := New[string](tt.p, tt.n, nil)
			require.NoError(t, err)
			for i := range tt.n {
				require.NoError(t, bf.Add(hashedKey("in", i)))
			}
			hits := 0
			for i := range tt.probes {
				if ok, _ := bf.Contains(hashedKey("out", i)); ok {
					hits++
				}
			}
			want := bf.ExpectedFalsePositiveProbability()
			assert.Equal(t, want, bf.CurrentFalsePositiveProbability())
			sigma := math.Sqrt(want * (1 - want) / float64(tt.probes))
			assert.InDelta(t, want, float64(hits)/float64(tt.probes), 3*sigma)
		})
	}
}

func TestPosition(t *testing.T) {
	const m = 10099
	tests := []struct {
		h1, h2 uint32
		i      int
		want   int
	}{
		{0, 0, 0, 0},
		{5, 3, 2, 11},
		{0x80000000, 0, 0, int(uint64(1<<31) % m)},
		{0, 0x40000000, 2, int(uint64(1<<31) % m)},
		{0xffffffff, 0, 3, 1},
		{0x7fffffff, 1, 1, int(uint64(1<<31) % m)},
	}
	for _, tt := range tests {
		got := position(tt.h1, tt.h2, tt.i, m)
		assert.Equalf(t, tt.want, got, "position(%#x, %#x, %d)", tt.h1, tt.h2, tt.i)
	}
}

func TestPositionsInRange(t *testing.T) {
	extremes := []uint32{0, 1, 0x7fffffff, 0x80000000, 0x80000001, 0xffffffff}
	for _, h1 := range extremes {
		for _, h2 := range extremes {
			hash := func(_ []byte, seed uint32) uint32 {
				if seed == 0 {
					return h1
				}
				return h2
			}
			for _, n := range []int{1, 7, 1000} {
				bf, err := New[string](0.0001, n, &Options[string]{Hash: hash})
				require.NoError(t, err)
				for _, pos := range bf.Positions([]byte("x")) {
					require.GreaterOrEqual(t, pos, 0)
					require.Less(t, pos, bf.Size())
				}
				bf.AddBytes([]byte("x"))
				assert.True(t, bf.ContainsBytes([]byte("x")))
			}
		}
	}

	bf, err := New[string](0.001, 50, nil)
	require.NoError(t, err)
	for i := range 10000 {
		pos := bf.Positions([]byte(hashedKey("probe", i)))
		require.Len(t, pos, bf.HashRounds())
		for _, p := range pos {
			require.True(t, p >= 0 && p < bf.Size())
		}
	}
}

func TestInvalidElement(t *testing.T) {
	bf, err := New[*string](0.01, 10, nil)
	require.NoError(t, err)
	require.ErrorIs(t, bf.Add(nil), ErrInvalidElement)
	_, err = bf.Contains(nil)
	require.ErrorIs(t, err, ErrInvalidElement)
	assert.Zero(t, bf.Count())
	assert.Zero(t, bf.FillRatio())

	anyf, err := New[any](0.01, 10, nil)
	require.NoError(t, err)
	require.ErrorIs(t, anyf.Add(struct{}{}), ErrInvalidElement)
	require.NoError(t, anyf.Add("7"))
	// "7" and 7 share a text form
	ok, err := anyf.Contains(7)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCustomOptions(t *testing.T) {
	encode := func(v [2]int) ([]byte, error) {
		return []byte(fmt.Sprintf("%d:%d", v[0], v[1])), nil
	}
	bf, err := New[[2]int](0.01, 200, &Options[[2]int]{Hash: Murmur3, Encode: encode})
	require.NoError(t, err)
	for i := range 200 {
		require.NoError(t, bf.Add([2]int{i, -i}))
	}
	for i := range 200 {
		ok, err := bf.Contains([2]int{i, -i})
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestFillRatio(t *testing.T) {
	bf, err := New[string](0.01, 100, nil)
	require.NoError(t, err)
	assert.Zero(t, bf.FillRatio())
	bf.AddBytes([]byte("a"))
	r := bf.FillRatio()
	assert.Greater(t, r, 0.0)
	assert.LessOrEqual(t, r, float64(bf.HashRounds())/float64(bf.Size()))
}

func BenchmarkAdd(b *testing.B) {
	bf, _ := New[string](0.01, 100000, nil)
	keys := make([][]byte, 1024)
	for i := range keys {
		keys[i] = []byte(hashedKey("bench", i))
	}
	b.ResetTimer()
	for i := range b.N {
		bf.AddBytes(keys[i&1023])
	}
}

func BenchmarkContains(b *testing.B) {
	bf, _ := New[string](0.01, 100000, nil)
	keys := make([][]byte, 1024)
	for i := range keys {
		keys[i] = []byte(hashedKey("bench", i))
		if i%2 == 0 {
			bf.AddBytes(keys[i])
		}
	}
	b.ResetTimer()
	for i := range b.N {
		bf.ContainsBytes(keys[i&1023])
	}
}

func TestMurmur2IsDefault(t *testing.T) {
	def, err := New[string](0.01, 100, nil)
	require.NoError(t, err)
	explicit, err := New[string](0.01, 100, &Options[string]{Hash: Murmur2})
	require.NoError(t, err)
	for i := range 100 {
		key := []byte(hashedKey("k", i))
		assert.Equal(t, def.Positions(key), explicit.Positions(key))
	}
}
