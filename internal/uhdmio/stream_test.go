package uhdmio

import (
	"testing"
)

func TestUvarintRoundTrip(t *testing.T) {
	tests := []uint64{0, 1, 127, 128, 300, 16383, 16384, 1 << 40}
	for _, v := range tests {
		w := NewWriter()
		w.WriteUvarint(v)
		r := NewReader(w.Bytes())
		got, err := r.ReadUvarint()
		if err != nil {
			t.Errorf("ReadUvarint(%d): %v", v, err)
			continue
		}
		if got != v {
			t.Errorf("ReadUvarint roundtrip = %d, want %d", got, v)
		}
	}
}

func TestVarintRoundTrip(t *testing.T) {
	tests := []int64{0, -1, 1, -64, 64, -1000000, 1000000}
	for _, v := range tests {
		w := NewWriter()
		w.WriteVarint(v)
		r := NewReader(w.Bytes())
		got, err := r.ReadVarint()
		if err != nil {
			t.Errorf("ReadVarint(%d): %v", v, err)
			continue
		}
		if got != v {
			t.Errorf("ReadVarint roundtrip = %d, want %d", got, v)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteString("hello")
	w.WriteString("")
	w.WriteString("world")
	r := NewReader(w.Bytes())
	for _, want := range []string{"hello", "", "world"} {
		got, err := r.ReadString()
		if err != nil {
			t.Fatalf("ReadString: %v", err)
		}
		if got != want {
			t.Errorf("ReadString = %q, want %q", got, want)
		}
	}
}

func TestRefRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteRef(NullRef, 0)
	w.WriteRef(7, 42)
	r := NewReader(w.Bytes())

	kind, idx, err := r.ReadRef()
	if err != nil {
		t.Fatalf("ReadRef: %v", err)
	}
	if kind != NullRef || idx != 0 {
		t.Errorf("ReadRef = (%d, %d), want (%d, 0)", kind, idx, NullRef)
	}

	kind, idx, err = r.ReadRef()
	if err != nil {
		t.Fatalf("ReadRef: %v", err)
	}
	if kind != 7 || idx != 42 {
		t.Errorf("ReadRef = (%d, %d), want (7, 42)", kind, idx)
	}
}

func TestReaderEOF(t *testing.T) {
	r := NewReader(nil)
	if _, err := r.ReadByte(); err != ErrStreamEOF {
		t.Errorf("ReadByte on empty = %v, want ErrStreamEOF", err)
	}
	if _, err := r.ReadUvarint(); err != ErrStreamEOF {
		t.Errorf("ReadUvarint on empty = %v, want ErrStreamEOF", err)
	}
}

func TestFixedWidthRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU32(0xdeadbeef)
	w.WriteU16(0xcafe)
	w.WriteBool(true)
	w.WriteBool(false)

	r := NewReader(w.Bytes())
	u32, err := r.ReadU32()
	if err != nil || u32 != 0xdeadbeef {
		t.Errorf("ReadU32 = %x, %v", u32, err)
	}
	u16, err := r.ReadU16()
	if err != nil || u16 != 0xcafe {
		t.Errorf("ReadU16 = %x, %v", u16, err)
	}
	b1, _ := r.ReadBool()
	b2, _ := r.ReadBool()
	if !b1 || b2 {
		t.Errorf("ReadBool = %v, %v, want true, false", b1, b2)
	}
}
