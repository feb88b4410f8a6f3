/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "sort"

// Access flag bit assignments shared across the three contexts. Some bits
// carry different names depending on context (0x0020, 0x0040, 0x0080); the
// rule set in force at the call site decides which name applies.
const (
	AccPublic       uint16 = 0x0001
	AccPrivate      uint16 = 0x0002
	AccProtected    uint16 = 0x0004
	AccStatic       uint16 = 0x0008
	AccFinal        uint16 = 0x0010
	AccSuper        uint16 = 0x0020 // class context
	AccSynchronized uint16 = 0x0020 // method context
	AccBridge       uint16 = 0x0040 // method context
	AccVolatile     uint16 = 0x0040 // field context
	AccTransient    uint16 = 0x0080 // field context
	AccVarargs      uint16 = 0x0080 // method context
	AccNative       uint16 = 0x0100
	AccInterface    uint16 = 0x0200
	AccAbstract     uint16 = 0x0400
	AccStrict       uint16 = 0x0800
	AccSynthetic    uint16 = 0x1000
	AccAnnotation   uint16 = 0x2000
	AccEnum         uint16 = 0x4000
)

// RuleContext selects which of the three rule sets (and which bit-naming
// convention) applies to a flag word.
type RuleContext int

const (
	ContextClass RuleContext = iota
	ContextField
	ContextMethod
)

// bitName is ordered ascending by bit value (stable order for signature
// rendering), with the context-specific name for the dual-purpose bits.
func bitName(ctx RuleContext, bit uint16) string {
	switch bit {
	case AccPublic:
		return "public"
	case AccPrivate:
		return "private"
	case AccProtected:
		return "protected"
	case AccStatic:
		return "static"
	case AccFinal:
		return "final"
	case AccSuper: // == AccSynchronized == 0x0020
		if ctx == ContextMethod {
			return "synchronized"
		}
		return "super"
	case AccBridge: // == AccVolatile == 0x0040
		if ctx == ContextField {
			return "volatile"
		}
		return "bridge"
	case AccTransient: // == AccVarargs == 0x0080
		if ctx == ContextMethod {
			return "varargs"
		}
		return "transient"
	case AccNative:
		return "native"
	case AccInterface:
		return "interface"
	case AccAbstract:
		return "abstract"
	case AccStrict:
		return "strict"
	case AccSynthetic:
		return "synthetic"
	case AccAnnotation:
		return "annotation"
	case AccEnum:
		return "enum"
	default:
		return ""
	}
}

// flagMaskFor lists the bits a given context's signature rendering
// considers. Ported from the literal _calc_signature masks in
// original_source/access_flags.py (0x4411, 0x50df, 0x1d3f) rather than
// each class's full _FLAG_MAP: the class mask deliberately omits super,
// synthetic, annotation and interface from the rendered text, and the
// method mask omits bridge and varargs, even though those bits are
// recognized flags for validation purposes.
func flagMaskFor(ctx RuleContext) []uint16 {
	switch ctx {
	case ContextClass:
		return []uint16{AccPublic, AccFinal, AccAbstract, AccEnum}
	case ContextField:
		return []uint16{AccPublic, AccPrivate, AccProtected, AccStatic, AccFinal, AccVolatile, AccTransient, AccSynthetic, AccEnum}
	case ContextMethod:
		return []uint16{AccPublic, AccPrivate, AccProtected, AccStatic, AccFinal, AccSynchronized, AccNative, AccAbstract, AccStrict, AccSynthetic}
	}
	return nil
}

// InvalidFlagsError reports a rule-set violation for a 16-bit access flag
// word: the offending bit names, the flag word itself, and a byte offset.
type InvalidFlagsError struct {
	Message string
	Flags   uint16
	Offset  int64
}

func (e *InvalidFlagsError) Error() string {
	return e.Message
}

// AccessFlags decodes and, on demand, validates a 16-bit flag word against
// one of the three rule sets. It is a thin data-driven checker: each rule
// set is expressed as assertions over the bits (exclusive groups,
// implications, forbidden-in-context, mandatory-in-context), walked by a
// single Validate method per context — per spec.md §9's "rule-set
// application as data" note.
type AccessFlags struct {
	Flags  uint16
	Offset int64
}

func readAccessFlags(r Reader) (AccessFlags, error) {
	offset := r.Tell()
	v, err := r.ReadU2()
	if err != nil {
		return AccessFlags{}, err
	}
	return AccessFlags{Flags: v, Offset: offset}, nil
}

func (a AccessFlags) has(bit uint16) bool { return a.Flags&bit != 0 }

func (a AccessFlags) checkExclusive(ctx RuleContext, bits ...uint16) error {
	for i, bi := range bits {
		for _, bj := range bits[i+1:] {
			if a.has(bi) && a.has(bj) {
				return &InvalidFlagsError{
					Message: bitName(ctx, bi) + " and " + bitName(ctx, bj) + " simultaneous flags is invalid",
					Flags:   a.Flags, Offset: a.Offset,
				}
			}
		}
	}
	return nil
}

func (a AccessFlags) checkImplied(ctx RuleContext, implying uint16, implied ...uint16) error {
	if !a.has(implying) {
		return nil
	}
	for _, bit := range implied {
		if !a.has(bit) {
			return &InvalidFlagsError{
				Message: bitName(ctx, implying) + " flag present but not " + bitName(ctx, bit) + " flag",
				Flags:   a.Flags, Offset: a.Offset,
			}
		}
	}
	return nil
}

func (a AccessFlags) checkImpliedNot(ctx RuleContext, implying uint16, impliedNot ...uint16) error {
	if !a.has(implying) {
		return nil
	}
	for _, bit := range impliedNot {
		if a.has(bit) {
			return &InvalidFlagsError{
				Message: bitName(ctx, implying) + " flag not compatible with " + bitName(ctx, bit) + " flag",
				Flags:   a.Flags, Offset: a.Offset,
			}
		}
	}
	return nil
}

func (a AccessFlags) checkMandatory(ctx RuleContext, bits ...uint16) error {
	for _, bit := range bits {
		if !a.has(bit) {
			return &InvalidFlagsError{
				Message: bitName(ctx, bit) + " flag is mandatory",
				Flags:   a.Flags, Offset: a.Offset,
			}
		}
	}
	return nil
}

func (a AccessFlags) checkForbidden(ctx RuleContext, bits ...uint16) error {
	for _, bit := range bits {
		if a.has(bit) {
			return &InvalidFlagsError{
				Message: bitName(ctx, bit) + " flag is not allowed",
				Flags:   a.Flags, Offset: a.Offset,
			}
		}
	}
	return nil
}

// ValidateClass applies the class rule set (spec.md §4.3):
// INTERFACE implies ABSTRACT and forbids FINAL/SUPER/ENUM; ANNOTATION
// implies INTERFACE; FINAL and ABSTRACT are mutually exclusive.
func (a AccessFlags) ValidateClass() error {
	if err := a.checkImplied(ContextClass, AccInterface, AccAbstract); err != nil {
		return err
	}
	if err := a.checkImpliedNot(ContextClass, AccInterface, AccFinal, AccSuper, AccEnum); err != nil {
		return err
	}
	if err := a.checkImplied(ContextClass, AccAnnotation, AccInterface); err != nil {
		return err
	}
	return a.checkExclusive(ContextClass, AccFinal, AccAbstract)
}

// ValidateField applies the field rule set (spec.md §4.3).
func (a AccessFlags) ValidateField(enclosingIsInterface bool) error {
	if err := a.checkExclusive(ContextField, AccPublic, AccPrivate, AccProtected); err != nil {
		return err
	}
	if err := a.checkExclusive(ContextField, AccFinal, AccVolatile); err != nil {
		return err
	}
	if enclosingIsInterface {
		if err := a.checkMandatory(ContextField, AccPublic, AccStatic, AccFinal); err != nil {
			return err
		}
		if err := a.checkForbidden(ContextField, AccPrivate, AccProtected, AccVolatile, AccEnum); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMethod applies the method rule set (spec.md §4.3).
func (a AccessFlags) ValidateMethod(enclosingIsInterface, isInitialization bool) error {
	if err := a.checkExclusive(ContextMethod, AccPublic, AccPrivate, AccProtected); err != nil {
		return err
	}
	if enclosingIsInterface {
		if err := a.checkForbidden(ContextMethod, AccProtected, AccFinal, AccSynchronized, AccNative); err != nil {
			return err
		}
	}
	if err := a.checkImpliedNot(ContextMethod, AccAbstract,
		AccPrivate, AccStatic, AccFinal, AccSynchronized, AccNative, AccStrict); err != nil {
		return err
	}
	if isInitialization {
		if err := a.checkForbidden(ContextMethod, AccFinal, AccSynchronized, AccBridge, AccNative, AccAbstract); err != nil {
			return err
		}
	}
	return nil
}

// Signature renders the space-separated lowercase names of the set bits
// relevant to ctx, in ascending bit-value order. For ContextClass, the
// trailing "interface" or "class" token is appended by the caller,
// ClassFile.Signature (the interface bit itself is excluded from the
// rendered word list, matching the narrower 0x4411 mask a class's
// signature rendering uses).
func (a AccessFlags) Signature(ctx RuleContext) string {
	mask := flagMaskFor(ctx)
	sort.Slice(mask, func(i, j int) bool { return mask[i] < mask[j] })
	var words []string
	for _, bit := range mask {
		if a.has(bit) {
			words = append(words, bitName(ctx, bit))
		}
	}
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

func (a AccessFlags) IsInterface() bool  { return a.has(AccInterface) }
func (a AccessFlags) IsAbstract() bool   { return a.has(AccAbstract) }
func (a AccessFlags) IsEnum() bool       { return a.has(AccEnum) }
func (a AccessFlags) IsStatic() bool     { return a.has(AccStatic) }
func (a AccessFlags) IsAnnotation() bool { return a.has(AccAnnotation) }
