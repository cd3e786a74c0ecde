package compress

// MaxOffsetZX0 is the match-offset ceiling used in normal mode.
const MaxOffsetZX0 = 32640

// MaxOffsetZX7 is the match-offset ceiling used in quick mode, trading
// compression ratio for a smaller search space.
const MaxOffsetZX7 = 2176

// Run drives the full core pipeline: Optimize produces the arena and
// terminal handle of the bit-optimal parse, BuildChain linearizes it, and
// Emit serializes it into the ZX0 bitstream. This is the single entry
// point the root package's Compressor calls into, mirroring the way the
// teacher's root package delegates block compression to this package.
func Run(input []byte, skip, offsetLimit int, backwardsMode, classicMode bool, progress ProgressCallback) EmitResult {
	arena, terminal := Optimize(input, skip, offsetLimit, progress)
	chain := BuildChain(arena, terminal)
	return Emit(chain, input, skip, backwardsMode, classicMode)
}
