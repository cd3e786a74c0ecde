// Package zx0ref implements a from-scratch ZX0 bitstream decoder. It exists
// solely so this repository's own test suite can check the round-trip law
// in spec.md §8 without shelling out to the original C reference: it knows
// nothing about compression and is never reachable from the public zx0
// package. Decompression remains outside this module's public API.
package zx0ref

import "github.com/zx0-go/zx0/compress"

type bitReader struct {
	data []byte
	pos  int

	carrier byte
	bitMask byte

	backtrack     bool
	backtrackByte byte

	backwards bool
}

func newBitReader(data []byte, backwards bool) *bitReader {
	return &bitReader{data: data, backwards: backwards}
}

func (r *bitReader) readByte() byte {
	v := r.data[r.pos]
	r.pos++
	return v
}

// armBacktrack mirrors compress.BitWriter.Backtrack: the next bit read
// comes from the low bit of lastRaw (the byte the encoder just folded a
// bit into) instead of the current carrier byte.
func (r *bitReader) armBacktrack(lastRaw byte) {
	r.backtrack = true
	r.backtrackByte = lastRaw
}

func (r *bitReader) readBit() int {
	if r.backtrack {
		r.backtrack = false
		return int(r.backtrackByte & 1)
	}

	if r.bitMask == 0 {
		r.carrier = r.readByte()
		r.bitMask = 128
	}

	bit := 0
	if r.carrier&r.bitMask != 0 {
		bit = 1
	}
	r.bitMask >>= 1
	return bit
}

// readEliasGamma is the exact inverse of compress.BitWriter.WriteInterlacedEliasGamma.
func (r *bitReader) readEliasGamma(invert bool) int {
	value := 1
	for {
		bit := r.readBit()
		isContinue := bit == 0
		if r.backwards {
			isContinue = bit == 1
		}
		if !isContinue {
			break
		}

		d := r.readBit()
		if invert {
			d = 1 - d
		}
		value = value*2 + d
	}
	return value
}

// Decompress decodes a ZX0 bitstream produced with the given mode flags
// back into its original bytes. It has no notion of "skip": the output
// holds only the bytes after any prefix supplied via Compressor.Skip, and
// that prefix is not available while decoding, so a stream with a match
// reaching back into the prefix is not decoded (copying from before the
// start of the output panics with an index out of range).
func Decompress(compressed []byte, backwardsMode, classicMode bool) []byte {
	invert := !classicMode && !backwardsMode

	r := newBitReader(compressed, backwardsMode)
	var out []byte

	copyLiteralBytes := func(n int) {
		for i := 0; i < n; i++ {
			out = append(out, r.readByte())
		}
	}

	copyMatch := func(offset, length int) {
		for i := 0; i < length; i++ {
			out = append(out, out[len(out)-offset])
		}
	}

	decodeOffset := func(msb int, lsb byte) int {
		var mod int
		if backwardsMode {
			mod = int(lsb) >> 1
		} else {
			mod = 127 - int(lsb)>>1
		}
		return (msb-1)*128 + mod + 1
	}

	// The very first token is always a literal run: the encoder's initial
	// backtrack=true state swallows what would otherwise be its indicator
	// bit (see compress.BitWriter), so the decoder never reads one either.
	copyLiteralBytes(r.readEliasGamma(false))

	lastOffset := compress.InitialOffset
	needMatch := true // true: next bit picks {new offset, repeat offset}. false: next bit picks {new offset, literal}.

	for {
		bit := r.readBit()
		if bit == 1 {
			msb := r.readEliasGamma(invert)
			if msb == compress.EndMarker {
				break
			}

			lsb := r.readByte()
			offset := decodeOffset(msb, lsb)
			lastOffset = offset

			r.armBacktrack(lsb)
			length := r.readEliasGamma(false) + 1
			copyMatch(offset, length)
			needMatch = false
			continue
		}

		if needMatch {
			length := r.readEliasGamma(false)
			copyMatch(lastOffset, length)
			needMatch = false
		} else {
			length := r.readEliasGamma(false)
			copyLiteralBytes(length)
			needMatch = true
		}
	}

	return out
}
