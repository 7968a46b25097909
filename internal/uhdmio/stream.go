// Binary stream codec shared by the serializer (internal/wire) for the
// on-disk format of §6.1. Grounded on the teacher's hand-rolled
// internal/dartfmt.Stream variable-length reader, generalized to a
// symmetric Reader/Writer pair since §4.2 requires both save and restore.
package uhdmio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrStreamEOF     = errors.New("uhdmio: unexpected end of data")
	ErrStreamOverrun = errors.New("uhdmio: varint too large")
)

// NullRef is the sentinel kind-tag written for a nil reference field, per
// §4.2.2 ("null = sentinel"). Real kind tags are assigned starting at 1 by
// the ir package.
const NullRef uint16 = 0

// Writer accumulates a record in the §4.2.2 on-disk format.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) WriteByte(b byte) { w.buf = append(w.buf, b) }

func (w *Writer) WriteBool(b bool) {
	if b {
		w.WriteByte(1)
	} else {
		w.WriteByte(0)
	}
}

func (w *Writer) WriteBytesRaw(b []byte) { w.buf = append(w.buf, b...) }

func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteUvarint writes v as a LEB128 unsigned variable-length integer.
func (w *Writer) WriteUvarint(v uint64) {
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}

// WriteVarint zigzag-encodes v then writes it as an unsigned varint, so
// small negative numbers (common for INT:/DEC: constants) stay compact.
func (w *Writer) WriteVarint(v int64) {
	w.WriteUvarint(uint64((v << 1) ^ (v >> 63)))
}

// WriteString writes a length-prefixed UTF-8 string (used directly by the
// symbol table of §4.2.2, and implicitly whenever a SymbolId is resolved
// before writing).
func (w *Writer) WriteString(s string) {
	w.WriteUvarint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *Writer) WriteBytes(b []byte) {
	w.WriteUvarint(uint64(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteRef writes a `(kind-tag, index-within-kind)` pair; pass (NullRef, 0)
// for a nil reference.
func (w *Writer) WriteRef(kindTag uint16, index uint32) {
	w.WriteU16(kindTag)
	w.WriteUvarint(uint64(index))
}

// Reader walks a byte slice produced by Writer.
type Reader struct {
	data []byte
	pos  int
}

func NewReader(data []byte) *Reader { return &Reader{data: data} }

func (r *Reader) Position() int  { return r.pos }
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, ErrStreamEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	return b != 0, err
}

func (r *Reader) ReadBytesRaw(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, ErrStreamEOF
	}
	out := make([]byte, n)
	copy(out, r.data[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytesRaw(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadBytesRaw(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadUvarint reads a LEB128 unsigned variable-length integer.
func (r *Reader) ReadUvarint() (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if shift >= 64 {
			return 0, ErrStreamOverrun
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

func (r *Reader) ReadVarint() (int64, error) {
	u, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	return int64(u>>1) ^ -int64(u&1), nil
}

func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytesRaw(int(n))
	if err != nil {
		return "", fmt.Errorf("uhdmio: string of length %d: %w", n, err)
	}
	return string(b), nil
}

func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	return r.ReadBytesRaw(int(n))
}

// ReadRef reads a `(kind-tag, index-within-kind)` pair. A NullRef kind-tag
// means the field held nil.
func (r *Reader) ReadRef() (kindTag uint16, index uint32, err error) {
	kindTag, err = r.ReadU16()
	if err != nil {
		return 0, 0, err
	}
	idx, err := r.ReadUvarint()
	if err != nil {
		return 0, 0, err
	}
	return kindTag, uint32(idx), nil
}
