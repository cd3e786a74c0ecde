// Command zx0c is a thin example CLI around the zx0 compressor. It is an
// external collaborator, not part of the core's semantics: flag parsing,
// file I/O, and atomic output writes all live here so the core package
// never has to know about any of them.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
	"github.com/spf13/pflag"

	"github.com/zx0-go/zx0"
	"github.com/zx0-go/zx0/internal/reverse"
	"github.com/zx0-go/zx0/parallel"
)

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}

var (
	skip      = pflag.IntP("skip", "s", 0, "number of leading bytes to treat as an already-known prefix")
	quick     = pflag.BoolP("quick", "q", false, "use the reduced offset window (faster, worse ratio)")
	backwards = pflag.BoolP("backwards", "b", false, "emit the backwards bitstream variant for in-place decompression")
	classic   = pflag.BoolP("classic", "c", false, "emit the legacy v1 bit format")
	force     = pflag.BoolP("force", "f", false, "overwrite existing output files")
	progress  = pflag.BoolP("progress", "p", false, "print a progress indicator to stderr")
	workers   = pflag.IntP("workers", "j", parallel.DefaultNumWorkers, "number of files to compress concurrently (0 = GOMAXPROCS)")
)

func main() {
	pflag.Parse()

	inputs := pflag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: zx0c [flags] file...")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(inputs); err != nil {
		fmt.Fprintln(os.Stderr, "zx0c:", err)
		os.Exit(1)
	}
}

func run(paths []string) error {
	data := make([][]byte, len(paths))
	for i, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		if *backwards {
			raw = reverse.Bytes(raw)
		}
		data[i] = raw
	}

	opts := zx0.NewCompressor().
		Skip(*skip).
		QuickMode(*quick).
		BackwardsMode(*backwards).
		ClassicMode(*classic)

	if *progress {
		opts = opts.ProgressCallback(func(p float64) {
			fmt.Fprintf(os.Stderr, "\r%.0f%%", p*100)
		})
	}

	d := parallel.NewDispatcher(*workers)
	if err := d.Start(); err != nil {
		return err
	}
	defer d.Stop()

	results, err := d.CompressFiles(data, opts)
	if *progress {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(os.Stderr, "zx0c: %s: %v\n", paths[r.Index], r.Err)
			}
		}
		return fmt.Errorf("compression failed for one or more files")
	}

	for i, r := range results {
		out := r.Output
		if *backwards {
			out = reverse.Bytes(out)
		}

		dest := paths[i] + ".zx0"
		if !*force {
			if _, err := os.Stat(dest); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", dest)
			}
		}

		if err := atomic.WriteFile(dest, bytesReader(out)); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}

		fmt.Printf("%s: %d -> %d bytes (delta %d)\n", paths[i], r.OriginalSize, len(r.Output), r.Delta)
	}

	return nil
}
