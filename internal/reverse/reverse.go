// Package reverse implements the byte-reversal helper that backwards-mode
// ZX0 compression needs around the core: the core only changes which bit
// values mean "continue" and how the offset LSB byte is packed (see
// compress.Emit); reversing the input before compression and the output
// afterwards is the caller's responsibility per the format specification.
package reverse

// Bytes returns a newly allocated copy of b with byte order reversed.
func Bytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// InPlace reverses b in place and returns it for chaining convenience.
func InPlace(b []byte) []byte {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}
