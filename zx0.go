// Package zx0 implements an optimal-parse ZX0 compressor: a dynamic-
// programming search over every (literal, match) tokenization of the
// input, encoded into the ZX0 bitstream with interlaced Elias-Gamma
// coding. It reproduces the reference implementation's output byte for
// byte, including the classic (v1) and backwards bitstream variants.
//
// Decompression, streaming input, and multi-input batching are out of
// scope; see the compress subpackage for the core pipeline this package
// wraps.
package zx0

import (
	"fmt"

	"github.com/zx0-go/zx0/compress"
)

// Version of this module.
const (
	Version      = "1.0.0"
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0
)

// InitialOffset, MaxOffsetZX0 and MaxOffsetZX7 are the constants from §6 of
// the format specification.
const (
	InitialOffset = compress.InitialOffset
	MaxOffsetZX0  = compress.MaxOffsetZX0
	MaxOffsetZX7  = compress.MaxOffsetZX7
)

// CompressionResult holds the compressed bitstream plus the peak gap
// between bytes-consumed and bytes-produced observed while producing it.
type CompressionResult struct {
	// Output is the compressed ZX0 bitstream.
	Output []byte
	// Delta is the minimum safe gap, in bytes, required between the end of
	// the compressed data and the end of the decompressed data (or, in
	// backwards mode, between their starts) for in-place decompression.
	Delta uint64
}

// Compressor configures and runs ZX0 compression. The zero value is ready
// to use with all defaults (no skip, full offset range, forward mode,
// current-format output). A Compressor holds only configuration, never
// per-call state, so it may be reused or shared across goroutines; each
// Compress call is fully independent per §5.
type Compressor struct {
	skip             int
	quickMode        bool
	backwardsMode    bool
	classicMode      bool
	progressCallback func(float64)
}

// NewCompressor returns a Compressor configured with every default
// disabled, matching the reference implementation's defaults.
func NewCompressor() *Compressor {
	return &Compressor{}
}

// Skip sets the number of leading input bytes to treat as an already-known
// dictionary prefix rather than data to be compressed.
func (c *Compressor) Skip(n int) *Compressor {
	c.skip = n
	return c
}

// QuickMode enables the reduced (2176 vs. 32640) offset search window,
// trading compression ratio for speed.
func (c *Compressor) QuickMode(enabled bool) *Compressor {
	c.quickMode = enabled
	return c
}

// BackwardsMode selects the back-to-front bitstream variant used for
// in-place decompression where the compressed and uncompressed regions
// overlap at their starts rather than their ends. The caller is
// responsible for reversing the input before calling Compress and the
// output afterwards; see internal/reverse for the helper the example CLI
// uses.
func (c *Compressor) BackwardsMode(enabled bool) *Compressor {
	c.backwardsMode = enabled
	return c
}

// ClassicMode selects the legacy v1 bit-format variant, which disables
// invert mode.
func (c *Compressor) ClassicMode(enabled bool) *Compressor {
	c.classicMode = enabled
	return c
}

// ProgressCallback registers a callback invoked repeatedly during
// compression with a rough, non-monotone progress estimate in [0, 1]. The
// callback runs synchronously on the calling goroutine and must not call
// back into this Compressor.
func (c *Compressor) ProgressCallback(fn func(progress float64)) *Compressor {
	c.progressCallback = fn
	return c
}

// Compress runs the optimal-parse pipeline over input and returns the
// compressed bitstream and its delta. It returns an error only when input
// or skip violate the preconditions in §7; every input that satisfies them
// produces a valid result.
func (c *Compressor) Compress(input []byte) (CompressionResult, error) {
	if len(input) == 0 {
		return CompressionResult{}, newCompressError(ErrEmptyInput, "zx0: Compress called with empty input")
	}
	if c.skip < 0 || c.skip >= len(input) {
		return CompressionResult{}, newCompressError(ErrSkipOutOfRange, fmt.Sprintf("zx0: skip %d out of range for input of length %d", c.skip, len(input)))
	}

	offsetLimit := MaxOffsetZX0
	if c.quickMode {
		offsetLimit = MaxOffsetZX7
	}

	var progress compress.ProgressCallback
	if c.progressCallback != nil {
		progress = compress.ProgressCallback(c.progressCallback)
	}

	result := compress.Run(input, c.skip, offsetLimit, c.backwardsMode, c.classicMode, progress)

	return CompressionResult{Output: result.Output, Delta: result.Delta}, nil
}

// Compress is a shortcut for NewCompressor().Compress(input), returning
// just the compressed bytes.
func Compress(input []byte) ([]byte, error) {
	result, err := NewCompressor().Compress(input)
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}
