package rice

import (
	"github.com/mewkiz/pkg/errutil"

	"github.com/mseriukov/bdgr/internal/bits"
)

// MaxRun is the largest run length a single run symbol can carry; longer
// runs are split by the frame driver.
const MaxRun = 255

// Run lengths are grouped by a zero-count prefix terminated by a one, with
// a fixed number of LSB-first value bits per group:
//
//	prefix  value bits  counts   total bits
//	1       1           0..1     2
//	01      2           2..5     4
//	001     4           6..21    7
//	0001    8           22..255  12
var runGroups = []struct {
	valueBits uint
	base      int
}{
	{1, 0},
	{2, 2},
	{4, 6},
	{8, 22},
}

// WriteRunLength encodes a run length in [0, MaxRun].
func WriteRunLength(bw *bits.Writer, n int) error {
	for g, grp := range runGroups {
		max := grp.base + 1<<grp.valueBits - 1
		if n > max {
			continue
		}
		if err := bw.WriteBits(1<<uint(g), uint(g)+1); err != nil {
			return err
		}
		return bw.WriteBits(uint64(n-grp.base), grp.valueBits)
	}
	panic("rice: run length out of range")
}

// ReadRunLength decodes a run length written by WriteRunLength.
func ReadRunLength(br *bits.Reader) (int, error) {
	g, err := br.ReadUnary()
	if err != nil {
		return 0, err
	}
	if int(g) >= len(runGroups) {
		return 0, errutil.Newf("invalid run length prefix; %d zero bits", g)
	}
	grp := runGroups[g]
	v, err := br.ReadBits(grp.valueBits)
	if err != nil {
		return 0, err
	}
	return grp.base + int(v), nil
}
