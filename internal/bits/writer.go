// Package bits provides bit access operations and the residual fold used by
// the codec. The bitstream is packed into whole little-endian 64-bit words,
// LSB-first: the first bit written occupies bit 0 of the first word, the 65th
// bit occupies bit 0 of the second word.
package bits

import (
	"encoding/binary"
	"errors"
)

// ErrBufferTooSmall is returned when a write would pass the end of the
// caller-provided destination buffer.
var ErrBufferTooSmall = errors.New("bits: destination buffer too small")

// WordBytes is the granularity of the bitstream; the writer only ever emits
// whole 8-byte words, so flushed streams are always a multiple of WordBytes.
const WordBytes = 8

// A Writer packs bits into a caller-provided byte slice. A 64-bit register
// accumulates bits at the MSB end, shifting earlier bits toward the LSB, so
// that after 64 pushes the first-written bit sits at bit 0; full registers
// are stored as little-endian words.
type Writer struct {
	// Destination buffer; its length is the hard write cap.
	buf []byte
	// Byte offset of the next word store in buf.
	off int
	// Accumulation register; the cnt valid bits occupy its top cnt bits.
	reg uint64
	// Number of valid bits in reg, between 0 and 63.
	cnt uint
}

// NewWriter returns a Writer that packs bits into buf. The caller keeps
// ownership of buf; flushed output never exceeds len(buf) bytes.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

// emit stores one full word and advances the write offset.
func (bw *Writer) emit(w uint64) error {
	if bw.off+WordBytes > len(bw.buf) {
		return ErrBufferTooSmall
	}
	binary.LittleEndian.PutUint64(bw.buf[bw.off:], w)
	bw.off += WordBytes
	return nil
}

// WriteBit pushes a single bit. v must be 0 or 1.
func (bw *Writer) WriteBit(v uint64) error {
	bw.reg = bw.reg>>1 | v<<63
	bw.cnt++
	if bw.cnt == 64 {
		if err := bw.emit(bw.reg); err != nil {
			return err
		}
		bw.reg, bw.cnt = 0, 0
	}
	return nil
}

// WriteBits pushes the n low bits of v, LSB first. n must be at most 32 and
// the bits of v above n must be clear.
func (bw *Writer) WriteBits(v uint64, n uint) error {
	for n > 0 {
		take := 64 - bw.cnt
		if take > n {
			take = n
		}
		// Shift the register down and splice the low take bits of v into
		// the vacated top; v<<(64-take) discards everything above them.
		bw.reg = bw.reg>>take | v<<(64-take)
		v >>= take
		bw.cnt += take
		n -= take
		if bw.cnt == 64 {
			if err := bw.emit(bw.reg); err != nil {
				return err
			}
			bw.reg, bw.cnt = 0, 0
		}
	}
	return nil
}

// Flush finalizes the stream. A partial register is right-shifted so its
// valid bits occupy the low cnt positions and stored as one whole word. The
// returned byte count is always a multiple of WordBytes.
func (bw *Writer) Flush() (int, error) {
	if bw.cnt > 0 {
		if err := bw.emit(bw.reg >> (64 - bw.cnt)); err != nil {
			return 0, err
		}
		bw.reg, bw.cnt = 0, 0
	}
	return bw.off, nil
}
