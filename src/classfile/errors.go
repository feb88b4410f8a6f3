/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package classfile decodes and structurally validates Java class files:
// a positioned byte reader, the descriptor grammar, the access-flag rule
// sets, the two-phase constant pool, attribute decoding, member decoding
// and the top-level class assembler.
package classfile

import "fmt"

// Diagnostic is a single positional error accumulated during parsing or
// resolution. Diagnostics never abort the pass that produced them; the
// class file value always materializes and callers inspect Errors() to
// tell a clean parse from a dirty one.
type Diagnostic struct {
	Message string
	Offset  int64
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %d", d.Message, d.Offset)
}

// diagBag accumulates Diagnostics the way a base entry's error list
// does: append-only during construction and resolution.
type diagBag struct {
	diags []Diagnostic
}

func (b *diagBag) add(message string, offset int64) {
	b.diags = append(b.diags, Diagnostic{Message: message, Offset: offset})
}

func (b *diagBag) absorb(other []Diagnostic) {
	b.diags = append(b.diags, other...)
}

func (b *diagBag) ok() bool {
	return len(b.diags) == 0
}

// Errors returns the accumulated diagnostics in the order they were added.
func (b *diagBag) Errors() []Diagnostic {
	return b.diags
}

// ClassFormatError reports a structural failure severe enough that the
// decoder cannot safely continue reading the affected container (an
// unknown constant-pool tag, or an unsupported seek origin): a flat
// message plus the offset at which decoding gave up. A read past the end
// of input is reported as ErrUnexpectedEnd instead.
type ClassFormatError struct {
	Message string
	Offset  int64
}

func (e *ClassFormatError) Error() string {
	return fmt.Sprintf("class format error: %s (at offset %d)", e.Message, e.Offset)
}

func classFormatError(offset int64, format string, args ...interface{}) error {
	return &ClassFormatError{Message: fmt.Sprintf(format, args...), Offset: offset}
}

// ErrUnexpectedEnd is returned by the reader when a read would cross the
// end of its source.
type ErrUnexpectedEnd struct {
	Offset int64
	Want   int
}

func (e *ErrUnexpectedEnd) Error() string {
	return fmt.Sprintf("unexpected end of input: wanted %d bytes at offset %d", e.Want, e.Offset)
}
