/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

// CPValueKind tags the payload a CPValue carries, the same discriminated-
// union-by-struct-field approach a runtime constant-pool accessor uses for
// its own lookup helper, adapted here to this package's own entry
// representation.
type CPValueKind int

const (
	CPValueError CPValueKind = iota
	CPValueInt64
	CPValueFloat64
	CPValueString
)

// CPValue is a type-erased view of one constant pool entry, returned by
// FetchCPEntry for callers (the CLI's diagnostic dump, a future
// disassembler) that want to read any entry kind without a type switch
// at every call site.
type CPValue struct {
	Tag    int
	Kind   CPValueKind
	Int    int64
	Float  float64
	String string
}

// FetchCPEntry looks up index in cp and returns its value tagged by kind,
// mirroring that accessor: numeric entries surface their
// value directly, entries that name something (Class, String, Utf8)
// surface the resolved string, and anything else is reported as an error
// rather than exposing raw indices the caller would need its own
// switch to interpret.
func FetchCPEntry(cp *ConstantPool, index int) CPValue {
	e, err := cp.At(index)
	if err != nil {
		return CPValue{Kind: CPValueError}
	}
	switch e.Tag {
	case TagInteger:
		return CPValue{Tag: e.Tag, Kind: CPValueInt64, Int: int64(e.IntVal)}
	case TagLong:
		return CPValue{Tag: e.Tag, Kind: CPValueInt64, Int: e.LongVal}
	case TagFloat:
		return CPValue{Tag: e.Tag, Kind: CPValueFloat64, Float: float64(e.FloatVal)}
	case TagDouble:
		return CPValue{Tag: e.Tag, Kind: CPValueFloat64, Float: e.DoubleVal}
	case TagUtf8:
		return CPValue{Tag: e.Tag, Kind: CPValueString, String: e.utf8Value}
	case TagClass:
		return CPValue{Tag: e.Tag, Kind: CPValueString, String: e.className}
	case TagString:
		s, err := cp.Utf8(int(e.StringIndex))
		if err != nil {
			return CPValue{Kind: CPValueError}
		}
		return CPValue{Tag: e.Tag, Kind: CPValueString, String: s}
	default:
		return CPValue{Tag: e.Tag, Kind: CPValueError}
	}
}

// MethodRefName resolves a MethodRef or InterfaceMethodRef entry to its
// owning class name, method name and descriptor, adapted from a
// method-reference resolver's chain of manual index hops.
func MethodRefName(cp *ConstantPool, index int) (class, name, descriptor string, err error) {
	e, lookupErr := cp.At(index)
	if lookupErr != nil {
		return "", "", "", lookupErr
	}
	if e.Tag != TagMethodRef && e.Tag != TagInterfaceMethodRef {
		return "", "", "", &InvalidDescriptorError{Descriptor: "not a method reference"}
	}
	class, err = cp.ClassName(int(e.ClassIndex))
	if err != nil {
		return "", "", "", err
	}
	nt, err := cp.At(int(e.NameAndTypeIdx))
	if err != nil {
		return "", "", "", err
	}
	name, err = cp.Utf8(int(nt.NameIndex))
	if err != nil {
		return "", "", "", err
	}
	descriptor, err = cp.Utf8(int(nt.DescriptorIndex))
	if err != nil {
		return "", "", "", err
	}
	return class, name, descriptor, nil
}
