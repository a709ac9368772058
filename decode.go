package bdgr

import (
	"github.com/mewkiz/pkg/dbg"
	"github.com/mewkiz/pkg/errutil"

	"github.com/mseriukov/bdgr/internal/bits"
	"github.com/mseriukov/bdgr/internal/predict"
	"github.com/mseriukov/bdgr/internal/rice"
)

// Decode decompresses a stream produced by Encode into the width x height
// plane dst and returns the number of samples written, which is
// width*height on success. The caller passes the dimensions it expects; a
// disagreeing stream header is reported as ErrDimensionMismatch.
func Decode(dst, src []byte, width, height int) (int, error) {
	return DecodeWith(dst, src, width, height, Options{})
}

// DecodeWith decompresses a stream produced by EncodeWith using the same
// options. The options are not recorded in the stream and must match the
// encoder's.
func DecodeWith(dst, src []byte, width, height int, opts Options) (int, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}
	if err := checkDims(width, height); err != nil {
		return 0, err
	}
	if len(src)%bits.WordBytes != 0 {
		return 0, ErrMisaligned
	}
	n := width * height
	if len(dst) < n {
		return 0, errutil.Newf("destination plane too short; need %d samples, got %d", n, len(dst))
	}

	br := bits.NewReader(src)
	w, err := br.ReadBits(16)
	if err != nil {
		return 0, err
	}
	h, err := br.ReadBits(16)
	if err != nil {
		return 0, err
	}
	dbg.Println("decoding frame:", w, "x", h)
	if int(w) != width || int(h) != height {
		return 0, ErrDimensionMismatch
	}
	n = width * height
	if len(dst) < n {
		return 0, errutil.Newf("destination plane too short; need %d samples, got %d", n, len(dst))
	}

	switch opts.Predictor {
	case PredLeft:
		err = decodeLeft(br, dst, n)
	case PredMED:
		err = decodeMED(br, dst, width, height, opts)
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

// decodeLeft mirrors encodeLeft: the prediction is the previous decoded
// sample and the Rice parameter follows the decoded symbols through the
// shared table, so both sides stay in lockstep without side information.
func decodeLeft(br *bits.Reader, dst []byte, n int) error {
	pred := uint8(0)
	k := uint(rice.InitK)
	for i := 0; i < n; i++ {
		r, err := rice.Read(br, k)
		if err != nil {
			return err
		}
		v := bits.Unfold(r, pred)
		dst[i] = v
		k = rice.NextK(r)
		pred = v
	}
	return nil
}

// decodeMED mirrors encodeMED over the reconstructed plane in dst.
func decodeMED(br *bits.Reader, dst []byte, width, height int, opts Options) error {
	near := opts.Near
	scale := 2*near + 1

	k := uint(rice.InitK)
	for y := 0; y < height; y++ {
		for x := 0; x < width; {
			idx := y*width + x
			a, b, c, d := predict.Neighbors(dst, width, x, y)

			if opts.RunMode && x > 0 && predict.Flat(a, b, c, d, near) {
				run, err := rice.ReadRunLength(br)
				if err != nil {
					return err
				}
				if x+run > width {
					return errutil.Newf("run of %d samples passes the end of line %d", run, y)
				}
				for i := 0; i < run; i++ {
					dst[idx+i] = a
				}
				k = uint(rice.InitK)
				x += run
				if x == width {
					break
				}
				idx = y*width + x
				a, b, c, _ = predict.Neighbors(dst, width, x, y)
			}

			r, err := rice.Read(br, k)
			if err != nil {
				return err
			}
			delta := bits.UnfoldDelta(r)
			if near > 0 {
				delta *= scale
			}
			p := predict.Med(a, b, c)
			dst[idx] = p + uint8(delta)
			k = rice.NextK(r)
			x++
		}
	}
	return nil
}
