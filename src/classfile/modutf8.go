/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "fmt"

// decodeModifiedUTF8 decodes the Modified-UTF-8 byte sequence used by
// CONSTANT_Utf8 entries (spec.md §4.4). entryPos is the file offset of the
// entry's own tag byte; a diagnostic for the byte at 0-based position idx
// within the string body is reported at entryPos + 3 + idx (3 accounts for
// the tag byte and the 2-byte length prefix already consumed before the
// string body starts), so the offset always names the offending byte's own
// file position — see spec.md §8 scenario 5 (a lead byte 0xC0 followed by
// an invalid continuation byte 0x41 reports at entry-start + 4, the actual
// position of the 0x41 byte).
//
// A single malformed entry yields every error it contains in one pass: the
// decoder resumes from the byte after each bad sequence rather than
// aborting.
func decodeModifiedUTF8(b []byte, entryPos int64) (string, []Diagnostic) {
	var out []rune
	var diags []Diagnostic
	i := 0
	errAt := func(c byte, idx int) {
		diags = append(diags, Diagnostic{
			Message: fmt.Sprintf("invalid byte 0x%x", c),
			Offset:  entryPos + 3 + int64(idx),
		})
	}
	for i < len(b) {
		idx := i
		c := b[i]
		i++
		switch {
		case c == 0x00:
			errAt(c, idx)
		case c < 0x80:
			out = append(out, rune(c))
		case c < 0xC0:
			errAt(c, idx)
		case c < 0xE0:
			if i >= len(b) {
				errAt(c, idx)
				continue
			}
			idx2 := i
			c2 := b[i]
			i++
			if c2 < 0x80 || c2 >= 0xC0 {
				errAt(c2, idx2)
				continue
			}
			out = append(out, rune(uint32(c&0x1F)<<6|uint32(c2&0x3F)))
		case c < 0xF0:
			if i+1 >= len(b) {
				errAt(c, idx)
				continue
			}
			idx2 := i
			c2 := b[i]
			i++
			if c2 < 0x80 || c2 >= 0xC0 {
				errAt(c2, idx2)
				continue
			}
			idx3 := i
			c3 := b[i]
			i++
			if c3 < 0x80 || c3 >= 0xC0 {
				errAt(c3, idx3)
				continue
			}
			out = append(out, rune(uint32(c&0x0F)<<12|uint32(c2&0x3F)<<6|uint32(c3&0x3F)))
		default:
			errAt(c, idx)
		}
	}
	return string(out), diags
}
