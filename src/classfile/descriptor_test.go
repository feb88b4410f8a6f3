package classfile

import "testing"

func TestCheckFieldDescriptor(t *testing.T) {
	valid := []string{"I", "[I", "[[I", "Ljava/lang/String;", "[Ljava/lang/String;", "Z", "B"}
	for _, d := range valid {
		if !CheckFieldDescriptor(d) {
			t.Errorf("expected %q to be a valid field descriptor", d)
		}
	}
	invalid := []string{"", "Q", "L;", "Ljava/lang/String", "[", "IV", "V"}
	for _, d := range invalid {
		if CheckFieldDescriptor(d) {
			t.Errorf("expected %q to be rejected as a field descriptor", d)
		}
	}
}

func TestCheckMethodDescriptor(t *testing.T) {
	valid := []string{"()V", "(I)V", "(II)I", "(Ljava/lang/String;I)[Z", "()I"}
	for _, d := range valid {
		if !CheckMethodDescriptor(d) {
			t.Errorf("expected %q to be a valid method descriptor", d)
		}
	}
	invalid := []string{"", "(I)", "I)V", "(I)Q", "(V)V"}
	for _, d := range invalid {
		if CheckMethodDescriptor(d) {
			t.Errorf("expected %q to be rejected as a method descriptor", d)
		}
	}
}

func TestParseFieldTypeRoundTrip(t *testing.T) {
	cases := map[string]string{
		"I":                    "int",
		"[I":                   "int[]",
		"[[I":                  "int[][]",
		"Ljava/lang/String;":   "java.lang.String",
		"[Ljava/lang/String;":  "java.lang.String[]",
		"Z":                    "boolean",
	}
	for descriptor, want := range cases {
		got, err := ParseFieldType(descriptor)
		if err != nil {
			t.Fatalf("ParseFieldType(%q) returned error: %v", descriptor, err)
		}
		if got != want {
			t.Errorf("ParseFieldType(%q) = %q, want %q", descriptor, got, want)
		}
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	params, ret, err := ParseMethodDescriptor("(II)V")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params != "(int, int)" || ret != "void" {
		t.Errorf("got params=%q ret=%q", params, ret)
	}
	params, ret, err = ParseMethodDescriptor("()Ljava/lang/Object;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params != "()" || ret != "java.lang.Object" {
		t.Errorf("got params=%q ret=%q", params, ret)
	}
}

func TestUnqualifyIdempotent(t *testing.T) {
	cases := []string{"java.lang.Object", "Foo", ""}
	for _, name := range cases {
		once := Unqualify(name)
		twice := Unqualify(once)
		if once != twice {
			t.Errorf("Unqualify not idempotent for %q: once=%q twice=%q", name, once, twice)
		}
	}
	if Unqualify("java.lang.Object") != "Object" {
		t.Errorf("Unqualify(%q) = %q, want Object", "java.lang.Object", Unqualify("java.lang.Object"))
	}
}

func TestCheckBinaryAndUnqualifiedNames(t *testing.T) {
	if !CheckBinaryName("java/lang/Object") {
		t.Error("expected java/lang/Object to be a valid binary name")
	}
	if CheckBinaryName("java//Object") {
		t.Error("expected java//Object to be rejected")
	}
	if !CheckUnqualifiedName("Object") {
		t.Error("expected Object to be a valid unqualified name")
	}
	if CheckUnqualifiedName("java/lang/Object") {
		t.Error("expected a qualified name to be rejected as unqualified")
	}
	if CheckUnqualifiedName("1Object") {
		t.Error("expected a name starting with a digit to be rejected")
	}
}
