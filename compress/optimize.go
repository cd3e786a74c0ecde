package compress

// ProgressCallback is invoked with a rough, non-monotone progress estimate
// in [0, 1] during the optimizer's main loop. It is called synchronously
// and must not re-enter the compressor that invoked it.
type ProgressCallback func(progress float64)

// offsetCeiling clamps index into [InitialOffset, offsetLimit], which is
// the usable upper bound on match offsets once index bytes of input have
// been seen.
func offsetCeiling(index, offsetLimit int) int {
	switch {
	case index > offsetLimit:
		return offsetLimit
	case index < InitialOffset:
		return InitialOffset
	default:
		return index
	}
}

// Optimize runs the dynamic-programming search over every byte position and
// every allowed match offset, producing the arena that owns the resulting
// parse graph and a terminal handle: the optimal parse ending at the final
// input byte. skip bytes at the front of input are treated as an
// already-known prefix and are never themselves the start of a literal or
// match run.
func Optimize(input []byte, skip, offsetLimit int, progress ProgressCallback) (*Arena, uint32) {
	arena := NewArena()

	maxOffset := offsetCeiling(len(input)-1, offsetLimit)

	lastLiteral := make([]uint32, maxOffset+1)
	lastMatch := make([]uint32, maxOffset+1)
	matchLength := make([]int, maxOffset+1)
	optimal := make([]uint32, len(input))
	bestLength := make([]int, len(input))

	if len(input) > 2 {
		bestLength[2] = 2
	}

	arena.AssignNew(&lastMatch[InitialOffset], 0, int32(skip-1), InitialOffset, nullHandle)

	span := len(input) - skip

	for index := skip; index < len(input); index++ {
		if progress != nil && index%128 == 0 {
			progress(float64(index-skip) / float64(span))
		}

		bestLengthSize := 2
		maxOffsetAtIndex := offsetCeiling(index, offsetLimit)

		for offset := 1; offset <= maxOffsetAtIndex; offset++ {
			if index >= offset && index != skip && input[index] == input[index-offset] {
				if lastLiteral[offset] != nullHandle {
					pred := arena.Get(lastLiteral[offset])
					length := uint32(index) - uint32(pred.Index)
					bits := pred.Bits + 1 + eliasGammaBits(length)

					arena.AssignNew(&lastMatch[offset], bits, int32(index), uint32(offset), lastLiteral[offset])

					if optimal[index] == nullHandle || arena.Get(optimal[index]).Bits > bits {
						arena.Assign(&optimal[index], lastMatch[offset])
					}
				}

				matchLength[offset]++
				if matchLength[offset] > 1 {
					if bestLengthSize < matchLength[offset] {
						bits := arena.Get(optimal[index-bestLength[bestLengthSize]]).Bits + eliasGammaBits(uint32(bestLength[bestLengthSize]-1))

						for {
							bestLengthSize++
							bits2 := arena.Get(optimal[index-bestLengthSize]).Bits + eliasGammaBits(uint32(bestLengthSize-1))

							if bits2 <= bits {
								bestLength[bestLengthSize] = bestLengthSize
								bits = bits2
							} else {
								bestLength[bestLengthSize] = bestLength[bestLengthSize-1]
							}

							if bestLengthSize >= matchLength[offset] {
								break
							}
						}
					}

					length := bestLength[matchLength[offset]]
					bits := arena.Get(optimal[index-length]).Bits + 8 +
						eliasGammaBits(uint32((offset-1)/128+1)) +
						eliasGammaBits(uint32(length-1))

					cur := lastMatch[offset]
					if cur == nullHandle || arena.Get(cur).Index != int32(index) || arena.Get(cur).Bits > bits {
						arena.AssignNew(&lastMatch[offset], bits, int32(index), uint32(offset), optimal[index-length])

						if optimal[index] == nullHandle || arena.Get(optimal[index]).Bits > bits {
							arena.Assign(&optimal[index], lastMatch[offset])
						}
					}
				}
			} else {
				matchLength[offset] = 0

				if lastMatch[offset] != nullHandle {
					pred := arena.Get(lastMatch[offset])
					length := uint32(index) - uint32(pred.Index)
					bits := pred.Bits + 1 + eliasGammaBits(length) + length*8

					arena.AssignNew(&lastLiteral[offset], bits, int32(index), 0, lastMatch[offset])

					if optimal[index] == nullHandle || arena.Get(optimal[index]).Bits > bits {
						arena.Assign(&optimal[index], lastLiteral[offset])
					}
				}
			}
		}
	}

	return arena, optimal[len(input)-1]
}
