/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"fmt"
	"math"
)

// Constant pool tags (spec.md §3).
const (
	TagUtf8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldRef           = 9
	TagMethodRef          = 10
	TagInterfaceMethodRef = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagInvokeDynamic      = 18
)

// entry is the tagged-variant payload for one constant pool slot. Only the
// fields relevant to Tag are populated; this mirrors a typed-array split
// (an index into per-kind arrays) but keeps one Go struct per slot for
// simplicity, since this module has no runtime-hot-path layout to serve.
type entry struct {
	Tag      int
	Pos      int64 // offset of the tag byte, for positional diagnostics
	Reserved bool  // the placeholder slot following a Long or Double

	// numeric payloads
	IntVal    int32
	FloatVal  float32
	LongVal   int64
	DoubleVal float64

	// index payloads (0 when not applicable)
	NameIndex       uint16 // Class, NameAndType
	DescriptorIndex uint16 // NameAndType, MethodType
	ClassIndex      uint16 // refs
	NameAndTypeIdx  uint16 // refs, InvokeDynamic
	StringIndex     uint16 // String
	ReferenceKind   uint16 // MethodHandle
	ReferenceIndex  uint16 // MethodHandle
	BootstrapIndex  uint16 // InvokeDynamic

	// resolved values, populated in the resolve phase
	utf8Value    string
	className    string
	unqualClass  string
}

// ConstantPool is the one-indexed, tagged-entry array described in
// spec.md §4.4: a structural read phase followed by a semantic resolve
// phase in a fixed kind order.
type ConstantPool struct {
	diagBag
	count   uint16
	entries []entry // entries[0] unused; 1-based access via At
}

// ReadConstantPool performs the structural read phase: consume the count,
// then walk indices 1..N-1 reading one tag-dispatched entry per index,
// advancing by two slots after a Long or Double. An unknown tag aborts
// further constant-pool decoding (spec.md §4.4) since the reader's
// position can no longer be trusted to delimit entries.
func ReadConstantPool(r Reader) (*ConstantPool, error) {
	count, err := r.ReadU2()
	if err != nil {
		return nil, err
	}
	cp := &ConstantPool{count: count, entries: make([]entry, count)}

	index := 1
	for index < int(count) {
		tagPos := r.Tell()
		tag, err := r.ReadU1()
		if err != nil {
			return nil, err
		}
		e, readErr := readEntry(r, int(tag))
		if readErr != nil {
			if _, eof := readErr.(*ErrUnexpectedEnd); eof {
				return nil, readErr
			}
			return cp, classFormatError(tagPos, "invalid constant pool tag %d", tag)
		}
		e.Pos = tagPos
		cp.entries[index] = e
		if tag == TagLong || tag == TagDouble {
			if index+1 < int(count) {
				cp.entries[index+1] = entry{Reserved: true}
			}
			index += 2
		} else {
			index++
		}
	}
	return cp, nil
}

func readEntry(r Reader, tag int) (entry, error) {
	switch tag {
	case TagUtf8:
		length, err := r.ReadU2()
		if err != nil {
			return entry{}, err
		}
		b, err := r.ReadBytes(int(length))
		if err != nil {
			return entry{}, err
		}
		// utf8Value carries the raw bytes as a string until Resolve decodes
		// them; ReadBytes may return a slice that aliases the source
		// buffer, so copy it before it outlives the read.
		raw := make([]byte, len(b))
		copy(raw, b)
		return entry{Tag: TagUtf8, utf8Value: string(raw)}, nil
	case TagInteger:
		v, err := r.ReadU4()
		return entry{Tag: TagInteger, IntVal: int32(v)}, err
	case TagFloat:
		v, err := r.ReadU4()
		return entry{Tag: TagFloat, FloatVal: math.Float32frombits(v)}, err
	case TagLong:
		v, err := r.ReadU4()
		if err != nil {
			return entry{}, err
		}
		v2, err := r.ReadU4()
		if err != nil {
			return entry{}, err
		}
		return entry{Tag: TagLong, LongVal: int64(v)<<32 | int64(v2)}, nil
	case TagDouble:
		v, err := r.ReadU4()
		if err != nil {
			return entry{}, err
		}
		v2, err := r.ReadU4()
		if err != nil {
			return entry{}, err
		}
		return entry{Tag: TagDouble, DoubleVal: math.Float64frombits(uint64(v)<<32 | uint64(v2))}, nil
	case TagClass:
		idx, err := r.ReadU2()
		return entry{Tag: TagClass, NameIndex: idx}, err
	case TagString:
		idx, err := r.ReadU2()
		return entry{Tag: TagString, StringIndex: idx}, err
	case TagFieldRef, TagMethodRef, TagInterfaceMethodRef:
		ci, err := r.ReadU2()
		if err != nil {
			return entry{}, err
		}
		nt, err := r.ReadU2()
		return entry{Tag: tag, ClassIndex: ci, NameAndTypeIdx: nt}, err
	case TagNameAndType:
		ni, err := r.ReadU2()
		if err != nil {
			return entry{}, err
		}
		di, err := r.ReadU2()
		return entry{Tag: TagNameAndType, NameIndex: ni, DescriptorIndex: di}, err
	case TagMethodHandle:
		rk, err := r.ReadU2()
		if err != nil {
			return entry{}, err
		}
		ri, err := r.ReadU2()
		return entry{Tag: TagMethodHandle, ReferenceKind: rk, ReferenceIndex: ri}, err
	case TagMethodType:
		di, err := r.ReadU2()
		return entry{Tag: TagMethodType, DescriptorIndex: di}, err
	case TagInvokeDynamic:
		bi, err := r.ReadU2()
		if err != nil {
			return entry{}, err
		}
		nt, err := r.ReadU2()
		return entry{Tag: TagInvokeDynamic, BootstrapIndex: bi, NameAndTypeIdx: nt}, err
	default:
		return entry{}, fmt.Errorf("unknown tag %d", tag)
	}
}

// Resolve performs the semantic resolve phase (spec.md §4.4): numerics →
// UTF-8 → class → method-type → name-and-type → refs → strings →
// invoke-dynamic → method-handle, each validating its own cross-references
// and appending positional diagnostics rather than aborting.
func (cp *ConstantPool) Resolve() {
	// Numerics (Integer/Float/Long/Double) carry no cross-references and
	// need no resolve step; the fixed order still starts conceptually with
	// them per spec.md §4.4.
	for i := 1; i < len(cp.entries); i++ {
		if cp.entries[i].Tag == TagUtf8 {
			cp.resolveUTF8(i)
		}
	}
	for i := 1; i < len(cp.entries); i++ {
		if cp.entries[i].Tag == TagClass {
			cp.resolveClass(i)
		}
	}
	for i := 1; i < len(cp.entries); i++ {
		if cp.entries[i].Tag == TagMethodType {
			cp.resolveMethodType(i)
		}
	}
	for i := 1; i < len(cp.entries); i++ {
		if cp.entries[i].Tag == TagNameAndType {
			cp.resolveNameAndType(i)
		}
	}
	for i := 1; i < len(cp.entries); i++ {
		switch cp.entries[i].Tag {
		case TagFieldRef, TagMethodRef, TagInterfaceMethodRef:
			cp.resolveRef(i)
		}
	}
	for i := 1; i < len(cp.entries); i++ {
		if cp.entries[i].Tag == TagString {
			cp.resolveString(i)
		}
	}
	for i := 1; i < len(cp.entries); i++ {
		if cp.entries[i].Tag == TagInvokeDynamic {
			cp.resolveInvokeDynamic(i)
		}
	}
	for i := 1; i < len(cp.entries); i++ {
		if cp.entries[i].Tag == TagMethodHandle {
			cp.resolveMethodHandle(i)
		}
	}
}

func (cp *ConstantPool) resolveUTF8(i int) {
	e := &cp.entries[i]
	value, diags := decodeModifiedUTF8([]byte(e.utf8Value), e.Pos)
	e.utf8Value = value
	cp.absorb(diags)
}

func (cp *ConstantPool) resolveClass(i int) {
	e := &cp.entries[i]
	name, err := cp.Utf8(int(e.NameIndex))
	if err != nil {
		cp.add(err.Error(), e.Pos)
		return
	}
	if !CheckBinaryName(name) {
		cp.add(fmt.Sprintf("invalid class binary name %s", name), e.Pos)
	}
	e.className = NameFromBinaryName(name)
	e.unqualClass = Unqualify(e.className)
}

func (cp *ConstantPool) resolveMethodType(i int) {
	e := &cp.entries[i]
	if _, err := cp.Utf8(int(e.DescriptorIndex)); err != nil {
		cp.add(err.Error(), e.Pos)
	}
}

func (cp *ConstantPool) resolveNameAndType(i int) {
	e := &cp.entries[i]
	if _, err := cp.Utf8(int(e.NameIndex)); err != nil {
		cp.add(err.Error(), e.Pos)
	}
	if _, err := cp.Utf8(int(e.DescriptorIndex)); err != nil {
		cp.add(err.Error(), e.Pos)
	}
}

func (cp *ConstantPool) resolveRef(i int) {
	e := &cp.entries[i]
	if _, err := cp.classAt(int(e.ClassIndex)); err != nil {
		cp.add(err.Error(), e.Pos)
	}
	if _, err := cp.nameAndTypeAt(int(e.NameAndTypeIdx)); err != nil {
		cp.add(err.Error(), e.Pos)
	}
}

func (cp *ConstantPool) resolveString(i int) {
	e := &cp.entries[i]
	if _, err := cp.Utf8(int(e.StringIndex)); err != nil {
		cp.add(err.Error(), e.Pos)
	}
}

func (cp *ConstantPool) resolveInvokeDynamic(i int) {
	e := &cp.entries[i]
	if _, err := cp.nameAndTypeAt(int(e.NameAndTypeIdx)); err != nil {
		cp.add(err.Error(), e.Pos)
	}
}

func (cp *ConstantPool) resolveMethodHandle(i int) {
	e := &cp.entries[i]
	if err := cp.checkIndexInRange(int(e.ReferenceIndex)); err != nil {
		cp.add(err.Error(), e.Pos)
	}
}

func (cp *ConstantPool) checkIndexInRange(index int) error {
	if index < 1 || index >= len(cp.entries) {
		return fmt.Errorf("index %d out of range", index)
	}
	return nil
}

func (cp *ConstantPool) classAt(index int) (entry, error) {
	e, err := cp.At(index)
	if err != nil {
		return entry{}, err
	}
	if e.Tag != TagClass {
		return entry{}, fmt.Errorf("index %d does not refer to a class entry", index)
	}
	return e, nil
}

func (cp *ConstantPool) nameAndTypeAt(index int) (entry, error) {
	e, err := cp.At(index)
	if err != nil {
		return entry{}, err
	}
	if e.Tag != TagNameAndType {
		return entry{}, fmt.Errorf("index %d does not refer to a name-and-type entry", index)
	}
	return e, nil
}

// Count returns N-1, the number of slots after the unused index 0,
// including the reserved placeholder slots that follow Long and Double
// entries.
func (cp *ConstantPool) Count() int { return len(cp.entries) - 1 }

// At returns the entry at a one-based index, failing for index < 1,
// index >= N, or an index pointing at a reserved Long/Double placeholder
// slot (spec.md §4.4).
func (cp *ConstantPool) At(index int) (entry, error) {
	if index < 1 || index >= len(cp.entries) {
		return entry{}, fmt.Errorf("constant pool index %d out of range [1,%d)", index, len(cp.entries))
	}
	e := cp.entries[index]
	if e.Reserved {
		return entry{}, fmt.Errorf("constant pool index %d refers to a reserved slot", index)
	}
	return e, nil
}

// Utf8 returns the decoded string of the UTF-8 entry at index, or a
// ValueError-equivalent if the entry is of the wrong kind.
func (cp *ConstantPool) Utf8(index int) (string, error) {
	e, err := cp.At(index)
	if err != nil {
		return "", err
	}
	if e.Tag != TagUtf8 {
		return "", fmt.Errorf("index %d does not refer to a utf8 entry", index)
	}
	return e.utf8Value, nil
}

// ClassName returns the dotted name of the class entry at index, or a
// ValueError-equivalent if the entry is of the wrong kind.
func (cp *ConstantPool) ClassName(index int) (string, error) {
	e, err := cp.At(index)
	if err != nil {
		return "", err
	}
	if e.Tag != TagClass {
		return "", fmt.Errorf("index %d does not refer to a class entry", index)
	}
	return e.className, nil
}

// ClassUnqualifiedName returns the unqualified portion of the class entry's
// name at index.
func (cp *ConstantPool) ClassUnqualifiedName(index int) (string, error) {
	e, err := cp.At(index)
	if err != nil {
		return "", err
	}
	if e.Tag != TagClass {
		return "", fmt.Errorf("index %d does not refer to a class entry", index)
	}
	return e.unqualClass, nil
}
