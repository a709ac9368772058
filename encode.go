package bdgr

import (
	"github.com/mewkiz/pkg/dbg"
	"github.com/mewkiz/pkg/errutil"

	"github.com/mseriukov/bdgr/internal/bits"
	"github.com/mseriukov/bdgr/internal/predict"
	"github.com/mseriukov/bdgr/internal/rice"
)

// Encode compresses a width x height row-major plane from src into dst and
// returns the number of bytes written, always a multiple of 8. It uses the
// shipped minimal variant; see EncodeWith for the extended ones.
//
// dst is caller-owned, must not overlap src, and must have a length that is
// a multiple of 8; Bound returns a size that always suffices.
func Encode(dst, src []byte, width, height int) (int, error) {
	return EncodeWith(dst, src, width, height, Options{})
}

// EncodeWith compresses a plane with the given codec options.
func EncodeWith(dst, src []byte, width, height int, opts Options) (int, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}
	if err := checkDims(width, height); err != nil {
		return 0, err
	}
	if len(dst)%bits.WordBytes != 0 {
		return 0, ErrMisaligned
	}
	n := width * height
	if len(src) < n {
		return 0, errutil.Newf("source plane too short; need %d samples, got %d", n, len(src))
	}

	bw := bits.NewWriter(dst)
	if err := bw.WriteBits(uint64(width), 16); err != nil {
		return 0, mapWriteErr(err)
	}
	if err := bw.WriteBits(uint64(height), 16); err != nil {
		return 0, mapWriteErr(err)
	}

	var err error
	switch opts.Predictor {
	case PredLeft:
		err = encodeLeft(bw, src, n)
	case PredMED:
		err = encodeMED(bw, src, width, height, opts)
	}
	if err != nil {
		return 0, mapWriteErr(err)
	}

	written, err := bw.Flush()
	if err != nil {
		return 0, mapWriteErr(err)
	}
	dbg.Println("encoded frame:", width, "x", height, "->", written, "bytes")
	return written, nil
}

// mapWriteErr surfaces the bit writer's capacity error as the package
// sentinel.
func mapWriteErr(err error) error {
	if err == bits.ErrBufferTooSmall {
		return ErrBufferTooSmall
	}
	return err
}

// encodeLeft codes every sample against the previous reconstructed sample,
// carried across line ends and seeded with 0 at the start of the frame.
func encodeLeft(bw *bits.Writer, src []byte, n int) error {
	pred := uint8(0)
	k := uint(rice.InitK)
	for _, v := range src[:n] {
		r := bits.Fold(v, pred)
		if err := rice.Write(bw, r, k); err != nil {
			return err
		}
		k = rice.NextK(r)
		pred = v
	}
	return nil
}

// encodeMED codes the plane with the median edge detector, optionally
// entering run mode on flat neighborhoods and quantizing residuals when a
// near tolerance is set.
func encodeMED(bw *bits.Writer, src []byte, width, height int, opts Options) error {
	near := opts.Near
	scale := 2*near + 1
	// When quantizing, later predictions must see the reconstructed
	// samples, not the originals; the lossless path reads src directly.
	recon := src
	if near > 0 {
		recon = make([]byte, width*height)
		copy(recon, src[:width*height])
	}

	k := uint(rice.InitK)
	for y := 0; y < height; y++ {
		for x := 0; x < width; {
			idx := y*width + x
			a, b, c, d := predict.Neighbors(recon, width, x, y)

			if opts.RunMode && x > 0 && predict.Flat(a, b, c, d, near) {
				run := 0
				for x+run < width && run < rice.MaxRun && absDiff(src[idx+run], a) <= near {
					if near > 0 {
						recon[idx+run] = a
					}
					run++
				}
				if err := rice.WriteRunLength(bw, run); err != nil {
					return err
				}
				k = uint(rice.InitK)
				x += run
				if x == width {
					break
				}
				// Code the sample that broke the run with the normal path.
				idx = y*width + x
				a, b, c, _ = predict.Neighbors(recon, width, x, y)
			}

			p := predict.Med(a, b, c)
			delta := bits.Residual(src[idx], p)
			if near > 0 {
				q := quantize(delta, near)
				if q < -128 || q > 127 {
					return ErrSampleOutOfRange
				}
				recon[idx] = p + uint8(q*scale)
				delta = q
			}
			r := bits.FoldDelta(delta)
			if err := rice.Write(bw, r, k); err != nil {
				return err
			}
			k = rice.NextK(r)
			x++
		}
	}
	return nil
}

// quantize maps a residual to its near-lossless bucket index.
func quantize(d, near int) int {
	if d < 0 {
		return -((-d + near) / (2*near + 1))
	}
	return (d + near) / (2*near + 1)
}

func absDiff(x, y uint8) int {
	if x > y {
		return int(x - y)
	}
	return int(y - x)
}
