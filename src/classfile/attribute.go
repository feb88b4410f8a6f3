/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "fmt"

// Attribute is the generic envelope every attribute begins with: a name
// index into the constant pool, a declared length, and that many raw
// bytes. Only the Code attribute has a decoder: AttributeList.Code decodes
// it from Info on request; every other attribute stays raw bytes. This
// mirrors original_source/attributes.py's AttributeInfo/Attribute split.
type Attribute struct {
	diagBag
	Pos             int64
	NameIndex       uint16
	Length          uint32
	Info            []byte
	name            string
}

// ReadAttribute reads one attribute envelope: name index, length, then
// exactly Length raw bytes.
func ReadAttribute(r Reader) (Attribute, error) {
	pos := r.Tell()
	nameIdx, err := r.ReadU2()
	if err != nil {
		return Attribute{}, err
	}
	length, err := r.ReadU4()
	if err != nil {
		return Attribute{}, err
	}
	info, err := r.ReadBytes(int(length))
	if err != nil {
		return Attribute{}, err
	}
	raw := make([]byte, len(info))
	copy(raw, info)
	return Attribute{Pos: pos, NameIndex: nameIdx, Length: length, Info: raw}, nil
}

// Resolve looks up the attribute's name in the constant pool.
func (a *Attribute) Resolve(cp *ConstantPool) {
	name, err := cp.Utf8(int(a.NameIndex))
	if err != nil {
		a.add(err.Error(), a.Pos)
		return
	}
	a.name = name
}

// Name returns the resolved attribute name, or "" before Resolve runs or
// when resolution failed.
func (a *Attribute) Name() string { return a.name }

// AttributeList is a fixed-length run of attributes, keyed by name for
// lookup. When the same name occurs more than once the last one wins,
// matching original_source/attributes.py's AttributesInfo, which
// overwrites _attributes_map[name] on every match.
type AttributeList struct {
	diagBag
	Entries []Attribute
	byName  map[string]*Attribute
}

// ReadAttributeList reads a u2 count followed by that many attribute
// envelopes.
func ReadAttributeList(r Reader) (AttributeList, error) {
	count, err := r.ReadU2()
	if err != nil {
		return AttributeList{}, err
	}
	list := AttributeList{Entries: make([]Attribute, count)}
	for i := range list.Entries {
		a, err := ReadAttribute(r)
		if err != nil {
			return list, err
		}
		list.Entries[i] = a
	}
	return list, nil
}

// Resolve resolves every attribute's name and builds the by-name index,
// absorbing each child's diagnostics.
func (l *AttributeList) Resolve(cp *ConstantPool) {
	l.byName = make(map[string]*Attribute, len(l.Entries))
	for i := range l.Entries {
		a := &l.Entries[i]
		a.Resolve(cp)
		l.absorb(a.Errors())
		if a.name != "" {
			l.byName[a.name] = a
		}
	}
}

// Get returns the (last, per duplicate-name rule) attribute with the
// given name.
func (l *AttributeList) Get(name string) (*Attribute, bool) {
	a, ok := l.byName[name]
	return a, ok
}

// Code decodes and returns the Code attribute, if present.
func (l *AttributeList) Code(cp *ConstantPool) (*CodeAttribute, error) {
	a, ok := l.Get("Code")
	if !ok {
		return nil, nil
	}
	code, err := decodeCodeAttribute(a.Info)
	if err != nil {
		return nil, err
	}
	code.Resolve(cp)
	return code, nil
}

func (a Attribute) String() string {
	return fmt.Sprintf("%s (%d bytes)", a.name, len(a.Info))
}
