package classfile

import (
	"bytes"
	"testing"
)

func TestBufferReaderBigEndian(t *testing.T) {
	r := NewBufferReader([]byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00, 0x2D})
	magic, err := r.ReadU4()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if magic != 0xCAFEBABE {
		t.Errorf("got 0x%X, want 0xCAFEBABE", magic)
	}
	major, err := r.ReadU2()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if major != 45 {
		t.Errorf("got %d, want 45", major)
	}
}

func TestBufferReaderUnexpectedEnd(t *testing.T) {
	r := NewBufferReader([]byte{0x01})
	if _, err := r.ReadU2(); err == nil {
		t.Error("expected an error reading 2 bytes from a 1-byte buffer")
	}
}

func TestBufferReaderSeek(t *testing.T) {
	r := NewBufferReader([]byte{1, 2, 3, 4, 5})
	if _, err := r.Seek(3, SeekSet); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := r.ReadU1()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 4 {
		t.Errorf("got %d, want 4", v)
	}
	if _, err := r.Seek(-2, SeekCur); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Tell() != 2 {
		t.Errorf("Tell() = %d, want 2", r.Tell())
	}
}

func TestFileReaderMatchesBufferReader(t *testing.T) {
	data := []byte{0xCA, 0xFE, 0xBA, 0xBE}
	fr := NewFileReader(bytes.NewReader(data))
	br := NewBufferReader(data)
	fv, err := fr.ReadU4()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bv, err := br.ReadU4()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fv != bv {
		t.Errorf("FileReader and BufferReader disagree: %d vs %d", fv, bv)
	}
}
