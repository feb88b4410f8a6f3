/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "fmt"

// FieldInfo is one entry of a class's field table (spec.md §4.6).
type FieldInfo struct {
	diagBag
	Pos             int64
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      AttributeList

	name       string
	descriptor string
}

// ReadFieldInfo reads one field_info structure.
func ReadFieldInfo(r Reader) (FieldInfo, error) {
	pos := r.Tell()
	flags, err := readAccessFlags(r)
	if err != nil {
		return FieldInfo{}, err
	}
	nameIdx, err := r.ReadU2()
	if err != nil {
		return FieldInfo{}, err
	}
	descIdx, err := r.ReadU2()
	if err != nil {
		return FieldInfo{}, err
	}
	attrs, err := ReadAttributeList(r)
	if err != nil {
		return FieldInfo{}, err
	}
	return FieldInfo{Pos: pos, AccessFlags: flags, NameIndex: nameIdx, DescriptorIndex: descIdx, Attributes: attrs}, nil
}

// Resolve validates the field's access flags against the field rule set,
// resolves its name and descriptor, and checks both against their
// respective grammars. Offsets follow original_source/fields.py: pos+2
// for the name index, pos+4 for the descriptor index.
func (f *FieldInfo) Resolve(cp *ConstantPool, enclosingIsInterface bool) {
	if err := f.AccessFlags.ValidateField(enclosingIsInterface); err != nil {
		f.add(err.Error(), f.Pos)
	}
	name, err := cp.Utf8(int(f.NameIndex))
	if err != nil {
		f.add(err.Error(), f.Pos+2)
	} else if !CheckUnqualifiedName(name) {
		f.add(fmt.Sprintf("invalid field's unqualified name %s", name), f.Pos+2)
	} else {
		f.name = name
	}
	descriptor, err := cp.Utf8(int(f.DescriptorIndex))
	if err != nil {
		f.add(err.Error(), f.Pos+4)
	} else if !CheckFieldDescriptor(descriptor) {
		f.add(fmt.Sprintf("invalid field descriptor %s", descriptor), f.Pos+4)
	} else {
		f.descriptor = descriptor
	}
	f.Attributes.Resolve(cp)
	f.absorb(f.Attributes.Errors())
}

func (f *FieldInfo) Name() string       { return f.name }
func (f *FieldInfo) Descriptor() string { return f.descriptor }

// MethodInfo is one entry of a class's method table (spec.md §4.6).
type MethodInfo struct {
	diagBag
	Pos             int64
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      AttributeList

	name       string
	descriptor string
	signature  string
	code       *CodeAttribute
}

// ReadMethodInfo reads one method_info structure.
func ReadMethodInfo(r Reader) (MethodInfo, error) {
	pos := r.Tell()
	flags, err := readAccessFlags(r)
	if err != nil {
		return MethodInfo{}, err
	}
	nameIdx, err := r.ReadU2()
	if err != nil {
		return MethodInfo{}, err
	}
	descIdx, err := r.ReadU2()
	if err != nil {
		return MethodInfo{}, err
	}
	attrs, err := ReadAttributeList(r)
	if err != nil {
		return MethodInfo{}, err
	}
	return MethodInfo{Pos: pos, AccessFlags: flags, NameIndex: nameIdx, DescriptorIndex: descIdx, Attributes: attrs}, nil
}

// IsInstanceInitialization reports whether this is a "<init>" method.
func (m *MethodInfo) IsInstanceInitialization() bool { return m.name == "<init>" }

// IsClassInitialization reports whether this is a "<clinit>" method. The
// name "<cinit>" that appears in some reference decoders is a misspelling;
// the only class initializer name recognized by the class file format is
// "<clinit>".
func (m *MethodInfo) IsClassInitialization() bool { return m.name == "<clinit>" }

// IsInitialization reports whether this method is either flavor of
// initializer.
func (m *MethodInfo) IsInitialization() bool {
	return m.IsInstanceInitialization() || m.IsClassInitialization()
}

// Resolve resolves the method's name, validates its access flags against
// the method rule set (which depends on whether the method is an
// initializer, so name resolution runs first), resolves its descriptor,
// and — if a Code attribute is present — decodes and validates it against
// the invariants in spec.md §4.5. Offsets mirror original_source/methods.py.
func (m *MethodInfo) Resolve(cp *ConstantPool, enclosingIsInterface bool) {
	name, err := cp.Utf8(int(m.NameIndex))
	if err != nil {
		m.add(err.Error(), m.Pos+2)
	} else {
		m.name = name
	}
	if err := m.AccessFlags.ValidateMethod(enclosingIsInterface, m.IsInitialization()); err != nil {
		m.add(err.Error(), m.Pos)
	}
	descriptor, err := cp.Utf8(int(m.DescriptorIndex))
	if err != nil {
		m.add(err.Error(), m.Pos+4)
	} else if !CheckMethodDescriptor(descriptor) {
		m.add(fmt.Sprintf("invalid method descriptor %s", descriptor), m.Pos+4)
	} else {
		m.descriptor = descriptor
	}
	m.Attributes.Resolve(cp)
	m.absorb(m.Attributes.Errors())

	code, err := m.Attributes.Code(cp)
	if err != nil {
		m.add(err.Error(), m.Pos)
	} else if code != nil {
		m.code = code
		m.absorb(code.Errors())
	}
}

func (m *MethodInfo) Name() string       { return m.name }
func (m *MethodInfo) Descriptor() string { return m.descriptor }

// Code returns the method's decoded Code attribute, or nil if it has none.
func (m *MethodInfo) Code() *CodeAttribute { return m.code }

// Signature renders the method's declaration as Java source would show it:
// flags, return type, name (or the enclosing class's unqualified name for
// an initializer), and parameter list. A "<clinit>" that was not declared
// static still gets a synthesized "static" token, matching the implicit
// staticness the class file format gives static initializers.
func (m *MethodInfo) Signature(enclosingUnqualifiedName string) string {
	if m.signature != "" {
		return m.signature
	}
	params, ret, err := ParseMethodDescriptor(m.descriptor)
	if err != nil {
		return ""
	}
	sig := m.AccessFlags.Signature(ContextMethod)
	if sig != "" {
		sig += " "
	}
	if m.IsClassInitialization() && !m.AccessFlags.IsStatic() {
		sig += "static "
	}
	sig += ret + " "
	if m.IsInitialization() && enclosingUnqualifiedName != "" {
		sig += enclosingUnqualifiedName
	} else {
		sig += m.name
	}
	sig += params
	m.signature = sig
	return sig
}
