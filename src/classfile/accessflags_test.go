package classfile

import "testing"

func TestValidateClassInterfaceImpliesAbstract(t *testing.T) {
	flags := AccessFlags{Flags: AccInterface}
	if err := flags.ValidateClass(); err == nil {
		t.Error("expected error: interface without abstract flag")
	}
	flags = AccessFlags{Flags: AccInterface | AccAbstract}
	if err := flags.ValidateClass(); err != nil {
		t.Errorf("unexpected error for interface+abstract: %v", err)
	}
}

func TestValidateClassInterfaceForbidsFinal(t *testing.T) {
	flags := AccessFlags{Flags: AccInterface | AccAbstract | AccFinal}
	if err := flags.ValidateClass(); err == nil {
		t.Error("expected error: interface with final flag")
	}
}

func TestValidateClassFinalAbstractExclusive(t *testing.T) {
	flags := AccessFlags{Flags: AccFinal | AccAbstract}
	if err := flags.ValidateClass(); err == nil {
		t.Error("expected error: final and abstract are mutually exclusive")
	}
}

func TestValidateFieldInterfaceMandatoryFlags(t *testing.T) {
	flags := AccessFlags{Flags: AccPublic}
	if err := flags.ValidateField(true); err == nil {
		t.Error("expected error: interface field missing static/final")
	}
	flags = AccessFlags{Flags: AccPublic | AccStatic | AccFinal}
	if err := flags.ValidateField(true); err != nil {
		t.Errorf("unexpected error for valid interface field: %v", err)
	}
}

func TestValidateFieldPrivateForbiddenInInterface(t *testing.T) {
	flags := AccessFlags{Flags: AccPrivate | AccStatic | AccFinal}
	if err := flags.ValidateField(true); err == nil {
		t.Error("expected error: private field not allowed in interface")
	}
}

func TestValidateMethodAbstractExcludesPrivate(t *testing.T) {
	flags := AccessFlags{Flags: AccAbstract | AccPrivate}
	if err := flags.ValidateMethod(false, false); err == nil {
		t.Error("expected error: abstract method cannot be private")
	}
}

func TestValidateMethodInitializationForbidsAbstract(t *testing.T) {
	flags := AccessFlags{Flags: AccAbstract}
	if err := flags.ValidateMethod(false, true); err == nil {
		t.Error("expected error: an initializer cannot be abstract")
	}
}

func TestClassSignatureRendering(t *testing.T) {
	flags := AccessFlags{Flags: AccPublic | AccFinal}
	sig := flags.Signature(ContextClass)
	if sig != "public final" {
		t.Errorf("got signature %q, want %q", sig, "public final")
	}
}

func TestMethodSignatureOmitsBridgeAndVarargs(t *testing.T) {
	flags := AccessFlags{Flags: AccPublic | AccBridge | AccVarargs}
	sig := flags.Signature(ContextMethod)
	if sig != "public" {
		t.Errorf("got signature %q, want %q (bridge/varargs excluded from rendering)", sig, "public")
	}
}
