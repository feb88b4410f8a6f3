package classfile

import "testing"

func TestDecodeModifiedUTF8ASCII(t *testing.T) {
	s, diags := decodeModifiedUTF8([]byte("hello"), 0)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if s != "hello" {
		t.Errorf("got %q, want hello", s)
	}
}

func TestDecodeModifiedUTF8TwoByteSequence(t *testing.T) {
	// U+00E9 (e acute) encoded as the two-byte form 0xC3 0xA9.
	s, diags := decodeModifiedUTF8([]byte{0xC3, 0xA9}, 0)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if s != "é" {
		t.Errorf("got %q, want \\u00e9", s)
	}
}

func TestDecodeModifiedUTF8RejectsNullByte(t *testing.T) {
	_, diags := decodeModifiedUTF8([]byte{0x00}, 10)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", diags)
	}
	if diags[0].Offset != 10+3 {
		t.Errorf("got offset %d, want %d", diags[0].Offset, 10+3)
	}
}

func TestDecodeModifiedUTF8RejectsFourBytePrefix(t *testing.T) {
	_, diags := decodeModifiedUTF8([]byte{0xF0, 0x80, 0x80, 0x80}, 0)
	if len(diags) == 0 {
		t.Error("expected a diagnostic for a 0xF0+ lead byte, which Modified UTF-8 does not allow")
	}
}

func TestDecodeModifiedUTF8ResumesAfterError(t *testing.T) {
	// An invalid lead byte followed by a valid ASCII byte: both the
	// diagnostic and the recovered character should appear.
	s, diags := decodeModifiedUTF8([]byte{0x80, 'A'}, 0)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", diags)
	}
	if s != "A" {
		t.Errorf("got %q, want A (decoding should resume after the bad byte)", s)
	}
}

func TestDecodeModifiedUTF8InvalidContinuationByte(t *testing.T) {
	// spec.md §8 scenario 5: a two-byte lead followed by an invalid
	// continuation byte reports the continuation byte's own file offset.
	_, diags := decodeModifiedUTF8([]byte{0xC0, 0x41}, 0)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", diags)
	}
	if diags[0].Offset != 4 {
		t.Errorf("got offset %d, want 4 (entry-start + 4)", diags[0].Offset)
	}
	if diags[0].Message != "invalid byte 0x41" {
		t.Errorf("got message %q, want %q", diags[0].Message, "invalid byte 0x41")
	}
}

func TestDecodeModifiedUTF8TruncatedMultiByte(t *testing.T) {
	_, diags := decodeModifiedUTF8([]byte{0xC3}, 0) // lead byte with no continuation
	if len(diags) == 0 {
		t.Error("expected a diagnostic for a truncated multi-byte sequence")
	}
}
