package classfile

import "testing"

func TestDecodeCodeAttributeStructure(t *testing.T) {
	b := &classBuilder{}
	b.u2(10) // max_stack
	b.u2(2)  // max_locals
	b.u4(3)  // code_length
	b.bytes([]byte{0x2A, 0xB1, 0x00}) // arbitrary bytecode
	b.u2(0)  // exception_table_length
	b.u2(0)  // attributes_count

	code, err := decodeCodeAttribute(b.buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code.MaxStack != 10 || code.MaxLocals != 2 || code.CodeLength != 3 {
		t.Errorf("got max_stack=%d max_locals=%d code_length=%d", code.MaxStack, code.MaxLocals, code.CodeLength)
	}
	if len(code.Code) != 3 {
		t.Errorf("got %d code bytes, want 3", len(code.Code))
	}
}

func TestCodeAttributeRejectsBadExceptionTableEntry(t *testing.T) {
	b := &classBuilder{}
	b.u2(1).u2(1).u4(5)
	b.bytes([]byte{0, 0, 0, 0, 0})
	b.u2(1) // one exception table entry
	b.u2(10).u2(5).u2(2).u2(0) // start_pc (10) > end_pc (5): invalid
	b.u2(0)

	code, err := decodeCodeAttribute(b.buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	emptyCP, _ := ReadConstantPool(NewBufferReader([]byte{0x00, 0x01}))
	code.Resolve(emptyCP)
	if len(code.Errors()) == 0 {
		t.Error("expected a diagnostic for start_pc >= end_pc")
	}
}

func TestCodeAttributeRejectsEndPCPastCodeLength(t *testing.T) {
	b := &classBuilder{}
	b.u2(1).u2(1).u4(5)
	b.bytes([]byte{0, 0, 0, 0, 0})
	b.u2(1)
	b.u2(0).u2(9).u2(1).u2(0) // end_pc (9) exceeds code_length (5)
	b.u2(0)

	code, err := decodeCodeAttribute(b.buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	emptyCP, _ := ReadConstantPool(NewBufferReader([]byte{0x00, 0x01}))
	code.Resolve(emptyCP)
	if len(code.Errors()) == 0 {
		t.Error("expected a diagnostic for end_pc exceeding code_length")
	}
}

func TestCodeAttributeCatchTypeZeroIsCatchAll(t *testing.T) {
	b := &classBuilder{}
	b.u2(1).u2(1).u4(5)
	b.bytes([]byte{0, 0, 0, 0, 0})
	b.u2(1)
	b.u2(0).u2(5).u2(0).u2(0) // catch_type = 0: catch-all, always legal
	b.u2(0)

	code, err := decodeCodeAttribute(b.buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	emptyCP, _ := ReadConstantPool(NewBufferReader([]byte{0x00, 0x01}))
	code.Resolve(emptyCP)
	if len(code.Errors()) != 0 {
		t.Errorf("unexpected diagnostics for a catch-all handler: %v", code.Errors())
	}
}
