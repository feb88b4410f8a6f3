/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "fmt"

// ExceptionTableEntry is one row of a Code attribute's exception table.
type ExceptionTableEntry struct {
	Pos       int64
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// CodeAttribute is the decoded payload of a method's "Code" attribute
// (spec.md §4.5), read from the attribute's own raw bytes through a
// nested Reader exactly as original_source/attributes.py's CodeAttribute
// wraps attribute.info in its own BufferFile.
type CodeAttribute struct {
	diagBag
	MaxStack       uint16
	MaxLocals      uint16
	CodeLength     uint32
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     AttributeList
}

// decodeCodeAttribute parses the Code attribute's raw bytes structurally.
// Semantic checks (cross-references into the constant pool, the
// exception-table invariants) run in Resolve.
func decodeCodeAttribute(info []byte) (*CodeAttribute, error) {
	r := NewBufferReader(info)
	maxStack, err := r.ReadU2()
	if err != nil {
		return nil, err
	}
	maxLocals, err := r.ReadU2()
	if err != nil {
		return nil, err
	}
	codeLength, err := r.ReadU4()
	if err != nil {
		return nil, err
	}
	code, err := r.ReadBytes(int(codeLength))
	if err != nil {
		return nil, err
	}
	rawCode := make([]byte, len(code))
	copy(rawCode, code)

	excCount, err := r.ReadU2()
	if err != nil {
		return nil, err
	}
	excTable := make([]ExceptionTableEntry, excCount)
	for i := range excTable {
		pos := r.Tell()
		startPC, err := r.ReadU2()
		if err != nil {
			return nil, err
		}
		endPC, err := r.ReadU2()
		if err != nil {
			return nil, err
		}
		handlerPC, err := r.ReadU2()
		if err != nil {
			return nil, err
		}
		catchType, err := r.ReadU2()
		if err != nil {
			return nil, err
		}
		excTable[i] = ExceptionTableEntry{Pos: pos, StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchType: catchType}
	}

	attrs, err := ReadAttributeList(r)
	if err != nil {
		return nil, err
	}

	return &CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		CodeLength:     codeLength,
		Code:           rawCode,
		ExceptionTable: excTable,
		Attributes:     attrs,
	}, nil
}

// Resolve checks the Code attribute's invariants (spec.md §4.5): code_length
// falls in [1,65535], each exception table row has start_pc < end_pc <=
// code_length, handler_pc < code_length, and catch_type is either zero
// (catch-all) or a valid class entry index. Nested attributes are resolved
// against the same constant pool.
func (c *CodeAttribute) Resolve(cp *ConstantPool) {
	if c.CodeLength < 1 || c.CodeLength > 65535 {
		c.add(fmt.Sprintf("code_length %d out of range [1,65535]", c.CodeLength), 0)
	}
	for _, e := range c.ExceptionTable {
		if !(e.StartPC < e.EndPC) {
			c.add(fmt.Sprintf("exception table entry start_pc %d not less than end_pc %d", e.StartPC, e.EndPC), e.Pos)
		}
		if !(uint32(e.EndPC) <= c.CodeLength) {
			c.add(fmt.Sprintf("exception table entry end_pc %d exceeds code_length %d", e.EndPC, c.CodeLength), e.Pos)
		}
		if !(uint32(e.HandlerPC) < c.CodeLength) {
			c.add(fmt.Sprintf("exception table entry handler_pc %d not less than code_length %d", e.HandlerPC, c.CodeLength), e.Pos)
		}
		if e.CatchType != 0 {
			if _, err := cp.classAt(int(e.CatchType)); err != nil {
				c.add(err.Error(), e.Pos)
			}
		}
	}
	c.Attributes.Resolve(cp)
	c.absorb(c.Attributes.Errors())
}
