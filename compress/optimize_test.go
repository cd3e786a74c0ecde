package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOffsetCeiling(t *testing.T) {
	cases := []struct {
		index, limit, want int
	}{
		{0, MaxOffsetZX0, InitialOffset},
		{5, MaxOffsetZX0, 5},
		{MaxOffsetZX0 + 100, MaxOffsetZX0, MaxOffsetZX0},
	}
	for _, c := range cases {
		if got := offsetCeiling(c.index, c.limit); got != c.want {
			t.Errorf("offsetCeiling(%d, %d) = %d, want %d", c.index, c.limit, got, c.want)
		}
	}
}

func TestOptimizeSingleByteInput(t *testing.T) {
	input := []byte{0x42}
	arena, terminal := Optimize(input, 0, MaxOffsetZX0, nil)

	require.NotEqual(t, uint32(0), terminal, "terminal handle must not be null for non-empty input")

	chain := BuildChain(arena, terminal)
	require.Len(t, chain, 2, "root + one literal block")
	require.Equal(t, uint32(0), chain[1].Offset, "single-byte input must encode as a literal")
	require.Equal(t, int32(0), chain[1].Index)
}

func TestOptimizeSkipLastByte(t *testing.T) {
	input := []byte{1, 2, 3, 4}
	skip := len(input) - 1

	arena, terminal := Optimize(input, skip, MaxOffsetZX0, nil)
	chain := BuildChain(arena, terminal)

	require.Len(t, chain, 2)
	require.Equal(t, int32(skip), chain[1].Index)
}

func TestOptimizeIsDeterministic(t *testing.T) {
	input := []byte("abcabcabcabcabcabc")

	arena1, terminal1 := Optimize(input, 0, MaxOffsetZX0, nil)
	arena2, terminal2 := Optimize(input, 0, MaxOffsetZX0, nil)

	chain1 := BuildChain(arena1, terminal1)
	chain2 := BuildChain(arena2, terminal2)

	require.Equal(t, chain1, chain2, "two independent optimizer runs over the same input must agree")
}

func TestOptimizeProgressCallbackInvoked(t *testing.T) {
	input := make([]byte, 1024)
	for i := range input {
		input[i] = byte(i)
	}

	called := false
	var last float64
	Optimize(input, 0, MaxOffsetZX0, func(p float64) {
		called = true
		last = p
	})

	require.True(t, called, "progress callback should fire at least once for a 1024-byte input")
	require.GreaterOrEqual(t, last, 0.0)
}

func TestOptimizeHighlyRepetitiveInputDoesNotOverflowBits(t *testing.T) {
	input := make([]byte, 65536)
	arena, terminal := Optimize(input, 0, MaxOffsetZX0, nil)

	// The optimal parse of 64KiB of zeroes is one literal byte (1 + 1 + 8 =
	// 10 bits) followed by one repeat-offset match of 65535 bytes at the
	// initial offset (1 + eliasGammaBits(65535) = 32 bits): 42 bits in all.
	// A wrapped-around Bits value would not land on that figure.
	require.Equal(t, uint32(42), arena.Get(terminal).Bits)
	require.Less(t, arena.Get(terminal).Bits, uint32(1<<20))
}
