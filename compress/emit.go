package compress

// EndMarker is the offset-MSB value that terminates the bitstream: it is
// written after a 1 bit, where a new-offset match writes its offset MSB,
// and an interlaced Elias-Gamma code for 256 can never be a real offset MSB
// because (MaxOffsetZX0-1)/128+1 is at most 255.
const EndMarker = 256

// EmitResult is the output of Emit: the encoded bitstream plus the peak
// (bytes consumed - bytes produced) observed while producing it.
type EmitResult struct {
	Output []byte
	Delta  uint64
}

// Emit walks chain (as produced by BuildChain) pairwise and serializes it
// into the ZX0 bitstream: literal runs, repeat-offset matches, and
// new-offset matches, followed by the end marker. input/skip must be the
// same values passed to Optimize that produced chain.
func Emit(chain []ChainNode, input []byte, skip int, backwardsMode, classicMode bool) EmitResult {
	invertMode := !classicMode && !backwardsMode

	terminalBits := chain[len(chain)-1].Bits
	outputSize := int((terminalBits + 25) / 8)

	w := NewBitWriter(outputSize, int64(outputSize)-int64(len(input))+int64(skip))

	lastOffset := uint32(InitialOffset)
	inputIndex := skip

	for i := 1; i < len(chain); i++ {
		prev, cur := chain[i-1], chain[i]
		length := int(cur.Index - prev.Index)

		switch {
		case cur.Offset == 0:
			// Literal run.
			w.WriteBit(0)
			w.WriteInterlacedEliasGamma(uint32(length), backwardsMode, false)

			for j := 0; j < length; j++ {
				w.WriteByte(input[inputIndex])
				inputIndex++
				w.Advance(1)
			}

		case cur.Offset == lastOffset:
			// Repeat-offset match.
			w.WriteBit(0)
			w.WriteInterlacedEliasGamma(uint32(length), backwardsMode, false)

			inputIndex += length
			w.Advance(length)

		default:
			// New-offset match.
			w.WriteBit(1)
			w.WriteInterlacedEliasGamma(uint32((cur.Offset-1)/128+1), backwardsMode, invertMode)

			var lsb byte
			if backwardsMode {
				lsb = byte(((cur.Offset - 1) % 128) << 1)
			} else {
				lsb = byte((127 - (cur.Offset-1)%128) << 1)
			}
			w.WriteByte(lsb)

			// The LSB byte's low bit is always zero by construction above,
			// so the next Elias-Gamma code's first continuation bit can be
			// folded into it instead of opening a new carrier byte.
			w.Backtrack()
			w.WriteInterlacedEliasGamma(uint32(length-1), backwardsMode, false)

			inputIndex += length
			w.Advance(length)

			lastOffset = cur.Offset
		}
	}

	w.WriteBit(1)
	w.WriteInterlacedEliasGamma(EndMarker, backwardsMode, invertMode)

	return EmitResult{Output: w.Output(), Delta: w.Delta()}
}
