package classfile

// classBuilder assembles raw class file bytes by hand for tests, building
// up the byte slices directly instead of going through a real .class file.
type classBuilder struct {
	buf []byte
}

func (b *classBuilder) u1(v byte) *classBuilder {
	b.buf = append(b.buf, v)
	return b
}

func (b *classBuilder) u2(v uint16) *classBuilder {
	b.buf = append(b.buf, byte(v>>8), byte(v))
	return b
}

func (b *classBuilder) u4(v uint32) *classBuilder {
	b.buf = append(b.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	return b
}

func (b *classBuilder) bytes(v []byte) *classBuilder {
	b.buf = append(b.buf, v...)
	return b
}

func (b *classBuilder) utf8Entry(s string) *classBuilder {
	b.u1(TagUtf8).u2(uint16(len(s))).bytes([]byte(s))
	return b
}

func (b *classBuilder) classEntry(nameIndex uint16) *classBuilder {
	b.u1(TagClass).u2(nameIndex)
	return b
}

// minimalClassBuilder returns a builder preloaded with magic, version,
// and a constant pool containing just enough to name a class with no
// superclass, no interfaces, fields, methods or attributes:
//
//	#1 = Utf8 "Main"
//	#2 = Class #1
func minimalClassBuilder() *classBuilder {
	b := &classBuilder{}
	b.u4(magicValue).u2(0).u2(52) // minor 0, major 52
	b.u2(3)                       // constant_pool_count = 3 (entries 1 and 2)
	b.utf8Entry("Main")
	b.classEntry(1)
	b.u2(AccSuper)           // access_flags
	b.u2(2)                  // this_class -> #2
	b.u2(0)                  // super_class = 0 (Object)
	b.u2(0)                  // interfaces_count
	b.u2(0)                  // fields_count
	b.u2(0)                  // methods_count
	b.u2(0)                  // attributes_count
	return b
}
