package bdgr

import "errors"

var (
	// ErrDimensionMismatch means the decoded stream header disagrees with
	// the dimensions the caller expects.
	ErrDimensionMismatch = errors.New("bdgr: header dimensions do not match expected dimensions")

	// ErrBufferTooSmall means the encoder ran out of destination space; the
	// caller should size the buffer with Bound.
	ErrBufferTooSmall = errors.New("bdgr: destination buffer too small")

	// ErrMisaligned means a stream buffer length is not a multiple of the
	// 8-byte word size.
	ErrMisaligned = errors.New("bdgr: buffer length not a multiple of 8")

	// ErrSampleOutOfRange means a residual symbol left [0, 255]; it
	// indicates a codec bug, not bad input.
	ErrSampleOutOfRange = errors.New("bdgr: residual symbol out of range")
)
