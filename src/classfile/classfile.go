/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"fmt"

	"github.com/gonmator/javadec/src/globals"
	"github.com/gonmator/javadec/src/trace"
)

const magicValue = 0xCAFEBABE

// ClassFile is the fully decoded and resolved representation of a class
// file, assembled from the pieces in this package in the fixed order
// spec.md §4.7 lays out: magic, versions, constant pool, this/super class,
// interfaces, fields, methods, attributes. A bad magic number or an
// out-of-range major version is recorded as a diagnostic rather than
// aborting decode, exactly as original_source/javadec.py's ClassFile does
// not raise on either condition.
type ClassFile struct {
	diagBag
	Magic        uint32
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool *ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []InterfaceRef
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   AttributeList

	name            string
	unqualifiedName string
	superName       string
	signature       string
}

// InterfaceRef is one entry of the interfaces table: the raw constant
// pool index read from the stream. original_source/interfaces.py has a
// bug where it stores the unbound read_u2 method instead of calling it;
// this type always holds the value actually read.
type InterfaceRef struct {
	Pos   int64
	Index uint16
	name  string
}

// Decode reads and resolves a complete class file from r.
func Decode(r Reader) (*ClassFile, error) {
	cf := &ClassFile{}

	magic, err := r.ReadU4()
	if err != nil {
		return nil, err
	}
	cf.Magic = magic
	if magic != magicValue {
		cf.add(fmt.Sprintf("invalid magic value 0x%08X", magic), r.TellPrev())
	}

	minor, err := r.ReadU2()
	if err != nil {
		return nil, err
	}
	major, err := r.ReadU2()
	if err != nil {
		return nil, err
	}
	cf.MinorVersion, cf.MajorVersion = minor, major
	if major < 45 {
		cf.add(fmt.Sprintf("invalid version %d.%d", major, minor), r.TellPrev())
	}

	cp, err := ReadConstantPool(r)
	if err != nil {
		trace.Error("Decode: constant pool: " + err.Error())
		return nil, err
	}
	cf.ConstantPool = cp

	flags, err := readAccessFlags(r)
	if err != nil {
		return nil, err
	}
	cf.AccessFlags = flags

	thisClass, err := r.ReadU2()
	if err != nil {
		return nil, err
	}
	superClass, err := r.ReadU2()
	if err != nil {
		return nil, err
	}
	cf.ThisClass, cf.SuperClass = thisClass, superClass

	ifaces, err := readInterfaces(r)
	if err != nil {
		return nil, err
	}
	cf.Interfaces = ifaces

	fieldCount, err := r.ReadU2()
	if err != nil {
		return nil, err
	}
	cf.Fields = make([]FieldInfo, fieldCount)
	for i := range cf.Fields {
		f, err := ReadFieldInfo(r)
		if err != nil {
			return nil, err
		}
		cf.Fields[i] = f
	}

	methodCount, err := r.ReadU2()
	if err != nil {
		return nil, err
	}
	cf.Methods = make([]MethodInfo, methodCount)
	for i := range cf.Methods {
		m, err := ReadMethodInfo(r)
		if err != nil {
			return nil, err
		}
		cf.Methods[i] = m
	}

	attrs, err := ReadAttributeList(r)
	if err != nil {
		return nil, err
	}
	cf.Attributes = attrs

	cf.resolve()
	if globals.TraceClassEnabled() {
		trace.Trace(fmt.Sprintf("Decode: parsed %s, %d diagnostic(s)", cf.name, len(cf.Errors())))
	}
	return cf, nil
}

func readInterfaces(r Reader) ([]InterfaceRef, error) {
	pos := r.Tell()
	count, err := r.ReadU2()
	if err != nil {
		return nil, err
	}
	out := make([]InterfaceRef, count)
	for i := range out {
		idx, err := r.ReadU2()
		if err != nil {
			return nil, err
		}
		out[i] = InterfaceRef{Pos: pos, Index: idx}
	}
	return out, nil
}

func (cf *ClassFile) resolve() {
	cf.ConstantPool.Resolve()
	cf.absorb(cf.ConstantPool.Errors())

	if err := cf.AccessFlags.ValidateClass(); err != nil {
		cf.add(err.Error(), cf.AccessFlags.Offset)
	}

	name, err := cf.ConstantPool.ClassName(int(cf.ThisClass))
	if err != nil {
		cf.add(err.Error(), cf.AccessFlags.Offset+2)
	} else {
		cf.name = name
		unqual, err := cf.ConstantPool.ClassUnqualifiedName(int(cf.ThisClass))
		if err != nil {
			cf.add(err.Error(), cf.AccessFlags.Offset+2)
		}
		cf.unqualifiedName = unqual
	}

	if cf.SuperClass > 0 {
		superName, err := cf.ConstantPool.ClassName(int(cf.SuperClass))
		if err != nil {
			cf.add(err.Error(), cf.AccessFlags.Offset+4)
		} else {
			cf.superName = superName
		}
	}

	for i := range cf.Interfaces {
		iface := &cf.Interfaces[i]
		name, err := cf.ConstantPool.ClassName(int(iface.Index))
		if err != nil {
			cf.add(err.Error(), iface.Pos+2*int64(i+1))
			continue
		}
		iface.name = name
	}

	for i := range cf.Fields {
		cf.Fields[i].Resolve(cf.ConstantPool, cf.AccessFlags.IsInterface())
		cf.absorb(cf.Fields[i].Errors())
	}
	for i := range cf.Methods {
		cf.Methods[i].Resolve(cf.ConstantPool, cf.AccessFlags.IsInterface())
		cf.absorb(cf.Methods[i].Errors())
	}

	cf.Attributes.Resolve(cf.ConstantPool)
	cf.absorb(cf.Attributes.Errors())
}

// Name returns the class's dotted binary name, e.g. "java.lang.Object".
func (cf *ClassFile) Name() string { return cf.name }

// UnqualifiedName returns the class's name with any package prefix
// stripped.
func (cf *ClassFile) UnqualifiedName() string { return cf.unqualifiedName }

// SuperName returns the superclass's dotted binary name, or "" for
// java.lang.Object (super_class == 0).
func (cf *ClassFile) SuperName() string { return cf.superName }

func (cf *ClassFile) IsInterface() bool  { return cf.AccessFlags.IsInterface() }
func (cf *ClassFile) IsEnum() bool       { return cf.AccessFlags.IsEnum() }
func (cf *ClassFile) IsAnnotation() bool { return cf.AccessFlags.IsAnnotation() }

// InterfaceNames returns the resolved names of the interfaces this class
// implements, skipping any whose index did not resolve.
func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, 0, len(cf.Interfaces))
	for _, iface := range cf.Interfaces {
		if iface.name != "" {
			names = append(names, iface.name)
		}
	}
	return names
}

// Signature renders the class declaration the way Java source would show
// it: flags, class/interface, name, extends clause, implements clause,
// and one indented line per declared method.
func (cf *ClassFile) Signature() string {
	if cf.signature != "" {
		return cf.signature
	}
	sig := cf.AccessFlags.Signature(ContextClass)
	if cf.IsInterface() {
		sig += " interface "
	} else {
		sig += " class "
	}
	sig += cf.unqualifiedName
	if cf.superName != "" {
		sig += " extends " + cf.superName
	}
	if len(cf.Interfaces) > 0 {
		names := cf.InterfaceNames()
		joined := ""
		for i, n := range names {
			if i > 0 {
				joined += ", "
			}
			joined += n
		}
		sig += " implements " + joined
	}
	sig += " {\n"
	for i := range cf.Methods {
		sig += "\t" + cf.Methods[i].Signature(cf.unqualifiedName) + ";\n"
	}
	sig += "}"
	cf.signature = sig
	return sig
}
