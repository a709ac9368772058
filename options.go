package bdgr

import "github.com/mewkiz/pkg/errutil"

// Predictor selects how each sample is predicted from its already-coded
// neighbors.
type Predictor int

const (
	// PredLeft predicts every sample from the previous reconstructed
	// sample, carried across line ends. This is the shipped format.
	PredLeft Predictor = iota
	// PredMED predicts from the left, upper and upper-left neighbors with
	// the LOCO-I median edge detector.
	PredMED
)

// Options selects the codec variant. The zero value is the shipped minimal
// variant: left prediction, lossless, no run mode.
//
// Options are not recorded in the bitstream; the stream header carries only
// the frame dimensions, so a decoder must be invoked with the options the
// encoder used. A mismatch is not detected as such: it produces garbage
// samples, or an error only where the misread stream runs out or holds a
// run that passes the end of a line.
type Options struct {
	// Predictor is the prediction mode.
	Predictor Predictor
	// Near is the near-lossless tolerance: every reconstructed sample is
	// within Near of the original (modulo the 256-wide sample circle).
	// 0 is lossless and bit-exact. Requires PredMED.
	Near int
	// RunMode enables the run-length shortcut on flat gradient
	// neighborhoods. Requires PredMED.
	RunMode bool
}

// maxNear keeps the quantized residual inside the foldable [-128, 127]
// range.
const maxNear = 127

func (opts Options) validate() error {
	switch opts.Predictor {
	case PredLeft, PredMED:
	default:
		return errutil.Newf("unknown predictor %d", opts.Predictor)
	}
	if opts.Near < 0 || opts.Near > maxNear {
		return errutil.Newf("near tolerance %d outside [0, %d]", opts.Near, maxNear)
	}
	if opts.Predictor == PredLeft && (opts.Near != 0 || opts.RunMode) {
		return errutil.Newf("near-lossless and run mode require the MED predictor")
	}
	return nil
}
