// Package parallel fans independent whole-file ZX0 compressions out across
// worker goroutines. Each job is a complete file: unlike the block/stream
// formats this pattern originally served, the ZX0 bitstream has no
// chunk-boundary concept, so there is nothing to split within a single
// input. What parallelizes is the batch, not the file.
package parallel

import (
	"errors"
	"runtime"
	"sync"

	"github.com/zx0-go/zx0"
)

// DefaultNumWorkers is the default number of worker goroutines: 0 means use
// runtime.GOMAXPROCS(0).
const DefaultNumWorkers = 0

// Dispatcher manages parallel compression of independent files.
type Dispatcher struct {
	numWorkers int

	jobChan    chan compressionJob
	resultChan chan compressionResult

	wg sync.WaitGroup

	running   bool
	runningMu sync.Mutex

	totalJobs   int
	totalBytes  int64
	runningJobs int
}

// compressionJob is one file awaiting compression.
type compressionJob struct {
	id       int
	input    []byte
	options  *zx0.Compressor
	resultCh chan<- compressionResult
}

// compressionResult is the outcome of compressing one file.
type compressionResult struct {
	id        int
	output    zx0.CompressionResult
	err       error
	inputSize int
}

// NewDispatcher creates a new parallel compression dispatcher with the
// given number of worker goroutines. numWorkers <= 0 uses
// runtime.GOMAXPROCS(0).
func NewDispatcher(numWorkers int) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	return &Dispatcher{
		numWorkers: numWorkers,
		jobChan:    make(chan compressionJob, numWorkers*2),
		resultChan: make(chan compressionResult, numWorkers*2),
	}
}

// Start launches worker goroutines.
func (d *Dispatcher) Start() error {
	d.runningMu.Lock()
	defer d.runningMu.Unlock()

	if d.running {
		return errors.New("dispatcher already running")
	}

	d.totalJobs = 0
	d.totalBytes = 0
	d.runningJobs = 0

	// Stop closes both channels, so every start needs fresh ones.
	d.jobChan = make(chan compressionJob, d.numWorkers*2)
	d.resultChan = make(chan compressionResult, d.numWorkers*2)

	d.wg.Add(d.numWorkers)
	for i := 0; i < d.numWorkers; i++ {
		go d.worker()
	}

	d.running = true
	return nil
}

// Stop shuts down worker goroutines and waits for them to drain.
func (d *Dispatcher) Stop() {
	d.runningMu.Lock()
	defer d.runningMu.Unlock()

	if !d.running {
		return
	}

	close(d.jobChan)
	d.wg.Wait()
	close(d.resultChan)

	d.running = false
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for job := range d.jobChan {
		job.resultCh <- d.compressFile(job)
	}
}

func (d *Dispatcher) compressFile(job compressionJob) compressionResult {
	opts := job.options
	if opts == nil {
		opts = zx0.NewCompressor()
	}

	result, err := opts.Compress(job.input)
	return compressionResult{
		id:        job.id,
		output:    result,
		err:       err,
		inputSize: len(job.input),
	}
}

// CompressFiles compresses every input independently in parallel, returning
// one FileResult per input in the same order they were given. options may
// be nil, in which case zx0.NewCompressor() defaults are used for every
// file; callers needing per-file configuration should build their own
// *zx0.Compressor and call it directly instead.
func (d *Dispatcher) CompressFiles(inputs [][]byte, options *zx0.Compressor) ([]FileResult, error) {
	d.runningMu.Lock()
	if !d.running {
		if err := d.Start(); err != nil {
			d.runningMu.Unlock()
			return nil, err
		}
	}
	d.runningMu.Unlock()

	n := len(inputs)
	resultCh := make(chan compressionResult, n)

	for i, input := range inputs {
		d.jobChan <- compressionJob{
			id:       i,
			input:    input,
			options:  options,
			resultCh: resultCh,
		}

		d.runningMu.Lock()
		d.totalJobs++
		d.totalBytes += int64(len(input))
		d.runningJobs++
		d.runningMu.Unlock()
	}

	results := make([]FileResult, n)
	var firstErr error
	for i := 0; i < n; i++ {
		r := <-resultCh

		d.runningMu.Lock()
		d.runningJobs--
		d.runningMu.Unlock()

		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
		results[r.id] = FileResult{
			Index:        r.id,
			Output:       r.output.Output,
			Delta:        r.output.Delta,
			OriginalSize: r.inputSize,
			Err:          r.err,
		}
	}

	if firstErr != nil {
		return results, firstErr
	}
	return results, nil
}

// NumWorkers returns the number of worker goroutines.
func (d *Dispatcher) NumWorkers() int {
	return d.numWorkers
}

// SetNumWorkers changes the number of worker goroutines. It is a no-op
// while the dispatcher is running.
func (d *Dispatcher) SetNumWorkers(n int) {
	d.runningMu.Lock()
	defer d.runningMu.Unlock()

	if d.running {
		return
	}

	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}

	d.numWorkers = n
}
