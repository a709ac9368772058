package bits_test

import (
	"testing"

	"github.com/icza/mighty"

	"github.com/mseriukov/bdgr/internal/bits"
)

func TestFirstBitPlacement(t *testing.T) {
	eq := mighty.Eq(t)

	buf := make([]byte, 16)
	bw := bits.NewWriter(buf)
	if err := bw.WriteBit(1); err != nil {
		t.Fatalf("error writing bit: %v", err)
	}
	n, err := bw.Flush()
	eq(8, n, err)
	// The first bit written sits at bit 0 of the first little-endian word.
	eq(byte(0x01), buf[0])
	for i := 1; i < 8; i++ {
		eq(byte(0x00), buf[i])
	}
}

func TestWriteBitsGolden(t *testing.T) {
	eq := mighty.Eq(t)

	buf := make([]byte, 8)
	bw := bits.NewWriter(buf)
	if err := bw.WriteBits(0xA5, 8); err != nil {
		t.Fatalf("error writing bits: %v", err)
	}
	if err := bw.WriteBits(0x3, 2); err != nil {
		t.Fatalf("error writing bits: %v", err)
	}
	n, err := bw.Flush()
	eq(8, n, err)
	eq(byte(0xA5), buf[0])
	eq(byte(0x03), buf[1])
}

func TestWriteReadDuality(t *testing.T) {
	golden := []struct {
		v uint64
		n uint
	}{
		{v: 1, n: 16},
		{v: 1, n: 16},
		{v: 0x7FFF, n: 16},
		{v: 0, n: 1},
		{v: 1, n: 1},
		{v: 0x155, n: 9},
		{v: 0xDEADBEE, n: 28},
		{v: 0xFFFFFFFF, n: 32},
		{v: 0, n: 31},
		{v: 0x2A, n: 6},
		{v: 1, n: 32},
		{v: 0x12345, n: 17},
	}
	buf := make([]byte, 64)
	bw := bits.NewWriter(buf)
	for _, g := range golden {
		if err := bw.WriteBits(g.v, g.n); err != nil {
			t.Fatalf("error writing %d bits: %v", g.n, err)
		}
	}
	written, err := bw.Flush()
	if err != nil {
		t.Fatalf("error flushing: %v", err)
	}
	if written%8 != 0 {
		t.Fatalf("flushed length %d is not a multiple of 8", written)
	}

	br := bits.NewReader(buf[:written])
	for _, g := range golden {
		got, err := br.ReadBits(g.n)
		if err != nil {
			t.Fatalf("error reading %d bits: %v", g.n, err)
		}
		if got != g.v {
			t.Fatalf("read back mismatch for %d bit field; expected %#x, got %#x", g.n, g.v, got)
		}
	}
}

func TestFlushAlignment(t *testing.T) {
	eq := mighty.Eq(t)

	for nbits := 1; nbits <= 200; nbits++ {
		buf := make([]byte, 40)
		bw := bits.NewWriter(buf)
		for i := 0; i < nbits; i++ {
			if err := bw.WriteBit(uint64(i & 1)); err != nil {
				t.Fatalf("error writing bit %d: %v", i, err)
			}
		}
		n, err := bw.Flush()
		if err != nil {
			t.Fatalf("error flushing %d bits: %v", nbits, err)
		}
		want := (nbits + 63) / 64 * 8
		eq(want, n)
	}
}

func TestWriterCap(t *testing.T) {
	buf := make([]byte, 8)
	bw := bits.NewWriter(buf)
	for i := 0; i < 64; i++ {
		if err := bw.WriteBit(1); err != nil {
			t.Fatalf("error writing within capacity: %v", err)
		}
	}
	err := bw.WriteBit(1)
	if err != nil {
		t.Fatalf("buffered bit should not overflow yet: %v", err)
	}
	if _, err := bw.Flush(); err != bits.ErrBufferTooSmall {
		t.Fatalf("expected ErrBufferTooSmall, got %v", err)
	}
}
