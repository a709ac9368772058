// Package bdgr implements a lossless (and optionally near-lossless)
// compressor for single-channel 8-bit raster planes.
//
// Each sample is predicted from already-coded neighbors, the prediction
// error is folded modulo 256 into an unsigned symbol, and the symbol is
// entropy coded with an adaptive Golomb-Rice code whose parameter is
// re-estimated from the previous symbol on both sides, so no parameter
// information travels in the stream. The bitstream starts with a 32-bit
// header carrying width and height and is always a whole number of 8-byte
// words; there is no signature, checksum or trailing marker.
package bdgr

import (
	"github.com/mewkiz/pkg/dbg"
	"github.com/mewkiz/pkg/errutil"

	"github.com/mseriukov/bdgr/internal/bits"
)

func init() {
	dbg.Debug = false
}

// MaxDim is the largest width or height a frame may have; the header stores
// each dimension in 16 bits.
const MaxDim = 0xFFFF

// Bound returns a destination size sufficient for any frame of the given
// dimensions: four bytes per sample, rounded up to a whole word.
func Bound(width, height int) int {
	n := 4 * width * height
	if rem := n % bits.WordBytes; rem != 0 {
		n += bits.WordBytes - rem
	}
	return n
}

// Header peeks the frame dimensions from the first word of an encoded
// stream without consuming it.
func Header(data []byte) (width, height int, err error) {
	if len(data) < bits.WordBytes {
		return 0, 0, errutil.Newf("short stream; need %d header bytes, got %d", bits.WordBytes, len(data))
	}
	br := bits.NewReader(data)
	w, err := br.ReadBits(16)
	if err != nil {
		return 0, 0, err
	}
	h, err := br.ReadBits(16)
	if err != nil {
		return 0, 0, err
	}
	return int(w), int(h), nil
}

// checkDims validates the frame dimension contract shared by Encode and
// Decode.
func checkDims(width, height int) error {
	if width < 1 || width > MaxDim || height < 1 || height > MaxDim {
		return errutil.Newf("frame dimensions %dx%d outside [1, %d]", width, height, MaxDim)
	}
	return nil
}
