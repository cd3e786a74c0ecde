// Package bench holds benchmarks comparing the compressor's mode matrix
// across representative data shapes, in the style of the teacher's
// version-comparison benchmarks.
package bench

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/zx0-go/zx0"
)

// BenchmarkModes compares default, quick, backwards and classic mode
// against the same data shapes.
func BenchmarkModes(b *testing.B) {
	textData := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200)

	repetitiveData := bytes.Repeat([]byte("ABCDEFGHIJ"), 2000)

	rng := rand.New(rand.NewSource(1))
	randomData := make([]byte, 20000)
	rng.Read(randomData)

	tests := []struct {
		name string
		data []byte
	}{
		{"Text", textData},
		{"Repetitive", repetitiveData},
		{"Random", randomData},
	}

	for _, tt := range tests {
		b.Run("Default_"+tt.name, func(b *testing.B) {
			benchmarkCompressor(b, tt.data, zx0.NewCompressor())
		})
		b.Run("Quick_"+tt.name, func(b *testing.B) {
			benchmarkCompressor(b, tt.data, zx0.NewCompressor().QuickMode(true))
		})
		b.Run("Backwards_"+tt.name, func(b *testing.B) {
			benchmarkCompressor(b, tt.data, zx0.NewCompressor().BackwardsMode(true))
		})
		b.Run("Classic_"+tt.name, func(b *testing.B) {
			benchmarkCompressor(b, tt.data, zx0.NewCompressor().ClassicMode(true))
		})
	}
}

func benchmarkCompressor(b *testing.B, data []byte, c *zx0.Compressor) {
	b.ResetTimer()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		result, err := c.Compress(data)
		if err != nil {
			b.Fatal(err)
		}

		b.StopTimer()
		ratio := float64(len(result.Output)) / float64(len(data))
		b.ReportMetric(ratio, "ratio")
		b.StartTimer()
	}
}

// BenchmarkSkipOverhead compresses the same input with a growing dictionary
// prefix: no skip, a quarter of the input, and half of the input.
func BenchmarkSkipOverhead(b *testing.B) {
	data := bytes.Repeat([]byte("ABCDEFGHIJ"), 4000)

	skips := []int{0, len(data) / 4, len(data) / 2}
	for _, skip := range skips {
		b.Run("", func(b *testing.B) {
			benchmarkCompressor(b, data, zx0.NewCompressor().Skip(skip))
		})
	}
}
