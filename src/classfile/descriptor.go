/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "strings"

// baseTypeNames maps a field-descriptor base-type character to its
// human-readable name, ported from original_source/signatures.py's
// _BASE_TYPE table.
var baseTypeNames = map[byte]string{
	'B': "byte", 'C': "char", 'D': "double", 'F': "float",
	'I': "int", 'J': "long", 'S': "short", 'Z': "boolean",
}

func isIdentifierStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentifierPart(c byte) bool {
	return isIdentifierStart(c) || (c >= '0' && c <= '9')
}

// scanIdentifier consumes one unqualified-name segment starting at s[i] and
// returns the index just past it, or -1 if s[i] does not begin one.
func scanIdentifier(s string, i int) int {
	if i >= len(s) || !isIdentifierStart(s[i]) {
		return -1
	}
	j := i + 1
	for j < len(s) && isIdentifierPart(s[j]) {
		j++
	}
	return j
}

// CheckBinaryName reports whether name is a well-formed binary class name:
// one or more identifier segments separated by '/'.
func CheckBinaryName(name string) bool {
	if name == "" {
		return false
	}
	i := 0
	for {
		j := scanIdentifier(name, i)
		if j == -1 {
			return false
		}
		if j == len(name) {
			return true
		}
		if name[j] != '/' {
			return false
		}
		i = j + 1
	}
}

// CheckUnqualifiedName reports whether name is a single identifier segment
// with no dots or slashes.
func CheckUnqualifiedName(name string) bool {
	j := scanIdentifier(name, 0)
	return j == len(name) && j != 0
}

// scanFieldDescriptor consumes one field descriptor starting at s[i] and
// returns the index just past it, or -1 if none matches there.
func scanFieldDescriptor(s string, i int) int {
	if i >= len(s) {
		return -1
	}
	switch s[i] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return i + 1
	case 'L':
		end := strings.IndexByte(s[i+1:], ';')
		if end == -1 {
			return -1
		}
		name := s[i+1 : i+1+end]
		if !CheckBinaryName(name) {
			return -1
		}
		return i + 1 + end + 1
	case '[':
		return scanFieldDescriptor(s, i+1)
	default:
		return -1
	}
}

// CheckFieldDescriptor reports whether descriptor matches the field
// descriptor grammar exactly (no trailing bytes).
func CheckFieldDescriptor(descriptor string) bool {
	end := scanFieldDescriptor(descriptor, 0)
	return end != -1 && end == len(descriptor)
}

// scanReturnDescriptor is like scanFieldDescriptor but additionally allows
// the single character 'V' (void).
func scanReturnDescriptor(s string, i int) int {
	if i < len(s) && s[i] == 'V' {
		return i + 1
	}
	return scanFieldDescriptor(s, i)
}

// CheckMethodDescriptor reports whether descriptor matches
// "(" {field-descriptor} ")" return-descriptor exactly.
func CheckMethodDescriptor(descriptor string) bool {
	if len(descriptor) == 0 || descriptor[0] != '(' {
		return false
	}
	i := 1
	for i < len(descriptor) && descriptor[i] != ')' {
		next := scanFieldDescriptor(descriptor, i)
		if next == -1 {
			return false
		}
		i = next
	}
	if i >= len(descriptor) || descriptor[i] != ')' {
		return false
	}
	i++
	end := scanReturnDescriptor(descriptor, i)
	return end != -1 && end == len(descriptor)
}

// NameFromBinaryName converts a binary class name to its dotted form,
// e.g. "java/lang/Object" -> "java.lang.Object".
func NameFromBinaryName(binaryName string) string {
	return strings.ReplaceAll(binaryName, "/", ".")
}

// Unqualify returns the substring of a dotted name after its last '.', or
// the name unchanged if it contains none. Idempotent: Unqualify(Unqualify(s))
// == Unqualify(s).
func Unqualify(name string) string {
	if idx := strings.LastIndexByte(name, '.'); idx != -1 {
		return name[idx+1:]
	}
	return name
}

// ParseFieldType renders a field descriptor as a Java-source type name,
// e.g. "[[I" -> "int[][]", "Ljava/lang/String;" -> "java.lang.String".
func ParseFieldType(descriptor string) (string, error) {
	if descriptor == "" {
		return "", &InvalidDescriptorError{Descriptor: descriptor}
	}
	switch descriptor[0] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		if len(descriptor) != 1 {
			return "", &InvalidDescriptorError{Descriptor: descriptor}
		}
		return baseTypeNames[descriptor[0]], nil
	case 'L':
		if descriptor[len(descriptor)-1] != ';' {
			return "", &InvalidDescriptorError{Descriptor: descriptor}
		}
		name := descriptor[1 : len(descriptor)-1]
		if !CheckBinaryName(name) {
			return "", &InvalidDescriptorError{Descriptor: descriptor}
		}
		return NameFromBinaryName(name), nil
	case '[':
		elem, err := ParseFieldType(descriptor[1:])
		if err != nil {
			return "", &InvalidDescriptorError{Descriptor: descriptor}
		}
		return elem + "[]", nil
	default:
		return "", &InvalidDescriptorError{Descriptor: descriptor}
	}
}

// ParseMethodDescriptor renders a method descriptor as a parenthesized,
// comma-separated parameter list and a return type, e.g.
// "(II)V" -> "(int, int)", "void".
func ParseMethodDescriptor(descriptor string) (params string, ret string, err error) {
	if !CheckMethodDescriptor(descriptor) {
		return "", "", &InvalidDescriptorError{Descriptor: descriptor}
	}
	closeParen := strings.IndexByte(descriptor, ')')
	paramsPart := descriptor[1:closeParen]
	retPart := descriptor[closeParen+1:]

	var rendered []string
	i := 0
	for i < len(paramsPart) {
		end := scanFieldDescriptor(paramsPart, i)
		t, perr := ParseFieldType(paramsPart[i:end])
		if perr != nil {
			return "", "", &InvalidDescriptorError{Descriptor: descriptor}
		}
		rendered = append(rendered, t)
		i = end
	}
	params = "(" + strings.Join(rendered, ", ") + ")"

	if retPart == "V" {
		ret = "void"
	} else {
		ret, err = ParseFieldType(retPart)
		if err != nil {
			return "", "", &InvalidDescriptorError{Descriptor: descriptor}
		}
	}
	return params, ret, nil
}

// InvalidDescriptorError reports a descriptor that does not match its
// grammar exactly.
type InvalidDescriptorError struct {
	Descriptor string
}

func (e *InvalidDescriptorError) Error() string {
	return "invalid descriptor: " + e.Descriptor
}
