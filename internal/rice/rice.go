// Package rice implements the adaptive Golomb-Rice symbol coder of the
// bitstream: unary-prefixed Rice codes with a raw-byte escape for long
// tails, and the table-driven parameter adaptation shared by encoder and
// decoder.
package rice

import (
	"github.com/mseriukov/bdgr/internal/bits"
)

const (
	// Cutoff caps the unary prefix; a quotient reaching it switches the
	// symbol to the raw 8-bit escape, bounding the worst case at
	// Cutoff+1+8 bits.
	Cutoff = 11
	// InitK seeds the Rice parameter at the start of a frame. Every later
	// value of k comes from NextK on the previous symbol, except that the
	// frame driver reseeds k with InitK after each run-mode run.
	InitK = 7
)

// kTab maps the previous symbol to the next Rice parameter: the smallest n
// with 1<<n >= r, reduced by one when it exceeds 1 (so r=4 gives 1 and r=8
// gives 2).
var kTab [256]uint8

func init() {
	for r := range kTab {
		n := uint8(0)
		for 1<<n < r {
			n++
		}
		if n > 1 {
			n--
		}
		kTab[r] = n
	}
}

// NextK returns the Rice parameter to use for the symbol following r.
func NextK(r uint8) uint {
	return uint(kTab[r])
}

// Write encodes one symbol r with parameter k. k must be in [0, 8].
//
// The quotient r>>k is sent as that many zero bits terminated by a one,
// followed by the k remainder bits LSB-first. A quotient of Cutoff or more
// is sent as Cutoff zeros, the terminating one, and the whole symbol as 8
// raw bits.
func Write(bw *bits.Writer, r uint8, k uint) error {
	q := uint(r) >> k
	if q < Cutoff {
		// q zeros then a one: a single LSB-first field with bit q set.
		if err := bw.WriteBits(1<<q, q+1); err != nil {
			return err
		}
		return bw.WriteBits(uint64(r)&(1<<k-1), k)
	}
	if err := bw.WriteBits(1<<Cutoff, Cutoff+1); err != nil {
		return err
	}
	return bw.WriteBits(uint64(r), 8)
}

// Read decodes one symbol with parameter k. It mirrors Write exactly; the
// caller keeps k in lockstep with the encoder through NextK.
func Read(br *bits.Reader, k uint) (uint8, error) {
	q, err := br.ReadUnary()
	if err != nil {
		return 0, err
	}
	if q >= Cutoff {
		raw, err := br.ReadBits(8)
		if err != nil {
			return 0, err
		}
		return uint8(raw), nil
	}
	m, err := br.ReadBits(k)
	if err != nil {
		return 0, err
	}
	return uint8(q<<k | uint(m)), nil
}
