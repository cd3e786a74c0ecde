package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEliasGammaBits(t *testing.T) {
	cases := []struct {
		v    uint32
		bits uint32
	}{
		{1, 1},
		{2, 3},
		{3, 3},
		{4, 5},
		{7, 5},
		{8, 7},
		{255, 15},
		{256, 17},
	}

	for _, c := range cases {
		assert.Equalf(t, c.bits, eliasGammaBits(c.v), "eliasGammaBits(%d)", c.v)
	}
}

// writeAndCountBits drives WriteInterlacedEliasGamma through a BitWriter and
// returns how many bits it actually wrote, independent of byte packing.
func writeAndCountBits(t *testing.T, v uint32, backwards, invert bool) int {
	t.Helper()
	w := NewBitWriter(8, 0)
	w.backtrack = false // isolate from the encoder's first-token special case
	before := w.outputIndex*8 - int(trailingUnusedBits(w))
	w.WriteInterlacedEliasGamma(v, backwards, invert)
	after := w.outputIndex*8 - int(trailingUnusedBits(w))
	return after - before
}

// trailingUnusedBits reports how many low bits of the current carrier byte
// remain unwritten, derived from bitMask (0 means "no open carrier byte").
func trailingUnusedBits(w *BitWriter) byte {
	if w.bitMask == 0 {
		return 0
	}
	n := byte(0)
	for m := w.bitMask; m != 0; m >>= 1 {
		n++
	}
	return n
}

func TestWriteInterlacedEliasGammaBitCountMatchesFormula(t *testing.T) {
	for v := uint32(1); v < 512; v++ {
		got := writeAndCountBits(t, v, false, false)
		require.Equalf(t, int(eliasGammaBits(v)), got, "bit count for v=%d", v)
	}
}

func TestBitWriterBacktrackFoldsIntoPriorByte(t *testing.T) {
	w := NewBitWriter(4, 0)
	w.backtrack = false // isolate the backtrack mechanism from the initial-state special case

	w.WriteByte(0xFE) // low bit already 0, matching the offset-LSB invariant
	w.Backtrack()
	w.WriteBit(1)

	assert.Equal(t, byte(0xFF), w.Output()[0], "backtracked bit should fold into the previously written byte")
	assert.Equal(t, 1, w.outputIndex, "backtrack must not advance the output cursor")
}

func TestBitWriterDeltaOnlyTracksPositiveDiff(t *testing.T) {
	w := NewBitWriter(4, -3)
	if w.Delta() != 0 {
		t.Fatalf("delta should start at 0 even though diff starts negative, got %d", w.Delta())
	}

	w.Advance(2) // diff: -3 + 2 = -1, still negative
	assert.Equal(t, uint64(0), w.Delta())

	w.Advance(5) // diff: -1 + 5 = 4
	assert.Equal(t, uint64(4), w.Delta())

	w.Advance(1) // diff: 5, new peak
	assert.Equal(t, uint64(5), w.Delta())
}
