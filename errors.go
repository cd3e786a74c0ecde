package zx0

import "github.com/pkg/errors"

// Sentinel errors for precondition violations. The core has no recoverable
// error states (spec §7): every input that satisfies these preconditions
// produces a valid result, so these are the only errors this package ever
// returns, all detected before the compressor does any work.
var (
	ErrEmptyInput         = errors.New("zx0: input must not be empty")
	ErrSkipOutOfRange     = errors.New("zx0: skip must satisfy 0 <= skip < len(input)")
	ErrInvalidOffsetLimit = errors.New("zx0: offset limit must be positive")
)

// CompressError wraps one of the sentinels above with the specific values
// that violated a precondition, while still satisfying errors.Is against
// the sentinel via Unwrap.
type CompressError struct {
	cause error
	msg   string
}

func (e *CompressError) Error() string { return e.msg }
func (e *CompressError) Unwrap() error { return e.cause }

func newCompressError(cause error, msg string) error {
	return errors.WithStack(&CompressError{cause: cause, msg: msg})
}
