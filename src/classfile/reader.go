/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"io"
)

// Whence selects the seek origin. Only SeekSet and SeekCur are supported —
// end-relative seeking is rejected, matching a buffered reader that
// raises NotImplemented on SEEK_END.
type Whence int

const (
	SeekSet Whence = iota
	SeekCur
)

// Reader is a positioned, big-endian reader over a byte source. It is
// consumed in two places: the top-level stream and the nested decode of an
// attribute's raw payload. Both implementations below present identical
// semantics and never share state with each other.
type Reader interface {
	ReadU1() (uint8, error)
	ReadU2() (uint16, error)
	ReadU4() (uint32, error)
	ReadBytes(n int) ([]byte, error)
	Seek(offset int64, whence Whence) (int64, error)
	Tell() int64
	TellPrev() int64
}

// BufferReader reads from an in-memory byte slice. Used for the top-level
// class file stream and for nested decoding inside attribute payloads
// (e.g. the Code attribute's own sub-reader).
type BufferReader struct {
	buf  []byte
	pos  int64
	prev int64
}

// NewBufferReader wraps buf for positioned reading starting at offset 0.
func NewBufferReader(buf []byte) *BufferReader {
	return &BufferReader{buf: buf}
}

func (r *BufferReader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+int64(n) > int64(len(r.buf)) {
		return nil, &ErrUnexpectedEnd{Offset: r.pos, Want: n}
	}
	r.prev = r.pos
	out := r.buf[r.pos : r.pos+int64(n)]
	r.pos += int64(n)
	return out, nil
}

func (r *BufferReader) ReadU1() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *BufferReader) ReadU2() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

func (r *BufferReader) ReadU4() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

func (r *BufferReader) Seek(offset int64, whence Whence) (int64, error) {
	r.prev = r.pos
	switch whence {
	case SeekSet:
		r.pos = offset
	case SeekCur:
		r.pos += offset
	default:
		return 0, classFormatError(r.pos, "unsupported seek whence %d", whence)
	}
	return r.pos, nil
}

func (r *BufferReader) Tell() int64     { return r.pos }
func (r *BufferReader) TellPrev() int64 { return r.prev }

// FileReader reads from an io.ReaderAt, positioned independently of any
// shared file cursor. Used when the caller hands the class file a
// random-access file handle instead of bytes already in memory.
type FileReader struct {
	src  io.ReaderAt
	pos  int64
	prev int64
}

// NewFileReader wraps src for positioned reading starting at offset 0.
func NewFileReader(src io.ReaderAt) *FileReader {
	return &FileReader{src: src}
}

func (r *FileReader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, &ErrUnexpectedEnd{Offset: r.pos, Want: n}
	}
	buf := make([]byte, n)
	read, err := r.src.ReadAt(buf, r.pos)
	r.prev = r.pos
	if err != nil && !(err == io.EOF && read == n) {
		return nil, &ErrUnexpectedEnd{Offset: r.pos, Want: n}
	}
	r.pos += int64(n)
	return buf, nil
}

func (r *FileReader) ReadU1() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *FileReader) ReadU2() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

func (r *FileReader) ReadU4() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

func (r *FileReader) Seek(offset int64, whence Whence) (int64, error) {
	r.prev = r.pos
	switch whence {
	case SeekSet:
		r.pos = offset
	case SeekCur:
		r.pos += offset
	default:
		return 0, classFormatError(r.pos, "unsupported seek whence %d", whence)
	}
	return r.pos, nil
}

func (r *FileReader) Tell() int64     { return r.pos }
func (r *FileReader) TellPrev() int64 { return r.prev }
