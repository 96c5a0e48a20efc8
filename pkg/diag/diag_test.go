package diag

import "testing"

func TestCompound_HasErrors(t *testing.T) {
	var c Compound
	if c.HasErrors() {
		t.Error("empty Compound.HasErrors() = true, want false")
	}

	c.Add(Warning(KindUnstableFileFormat, Provenance{}, "just a warning"))
	if c.HasErrors() {
		t.Error("warning-only Compound.HasErrors() = true, want false")
	}

	c.Add(New(KindSchemaViolation, Provenance{}, "an error"))
	if !c.HasErrors() {
		t.Error("Compound.HasErrors() = false, want true after adding an error")
	}
}

func TestCompound_AsError(t *testing.T) {
	var c Compound
	if c.AsError() != nil {
		t.Error("AsError() on empty Compound should be nil")
	}

	c.Add(Warning(KindUnstableFileFormat, Provenance{}, "warning only"))
	if c.AsError() != nil {
		t.Error("AsError() on warning-only Compound should be nil")
	}

	c.Add(New(KindUnresolvedRef, Provenance{}, "boom"))
	if c.AsError() == nil {
		t.Error("AsError() should be non-nil once an error diagnostic is present")
	}
}

func TestCompound_ErrorsAndWarningsPartition(t *testing.T) {
	var c Compound
	c.Add(New(KindUnresolvedRef, Provenance{}, "err1"))
	c.Add(Warning(KindUnstableFileFormat, Provenance{}, "warn1"))
	c.Add(New(KindDuplicateGroupID, Provenance{}, "err2"))

	if len(c.Errors()) != 2 {
		t.Errorf("len(Errors()) = %d, want 2", len(c.Errors()))
	}
	if len(c.Warnings()) != 1 {
		t.Errorf("len(Warnings()) = %d, want 1", len(c.Warnings()))
	}
}

func TestCompound_Merge(t *testing.T) {
	var a, b Compound
	a.Add(New(KindUnresolvedRef, Provenance{}, "from a"))
	b.Add(New(KindDuplicateGroupID, Provenance{}, "from b"))

	a.Merge(&b)
	if len(a.Diagnostics) != 2 {
		t.Fatalf("len(a.Diagnostics) = %d, want 2", len(a.Diagnostics))
	}

	// Merge(nil) must be a no-op, not a panic.
	a.Merge(nil)
	if len(a.Diagnostics) != 2 {
		t.Errorf("Merge(nil) changed diagnostics: len = %d, want 2", len(a.Diagnostics))
	}
}

func TestCompound_SortStable_OrdersByPathThenLine(t *testing.T) {
	var c Compound
	c.Add(New(KindSchemaViolation, Provenance{Path: "b.yaml", Line: 1}, "b1"))
	c.Add(New(KindSchemaViolation, Provenance{Path: "a.yaml", Line: 5}, "a5"))
	c.Add(New(KindSchemaViolation, Provenance{Path: "a.yaml", Line: 2}, "a2"))

	c.SortStable()

	want := []string{"a2", "a5", "b1"}
	for i, w := range want {
		if c.Diagnostics[i].Message != w {
			t.Errorf("Diagnostics[%d].Message = %q, want %q", i, c.Diagnostics[i].Message, w)
		}
	}
}

func TestDiagnostic_String_IncludesProvenance(t *testing.T) {
	d := New(KindSchemaViolation, Provenance{Path: "foo.yaml", Line: 3, GroupID: "g1", AttrID: "a1"}, "bad thing")
	got := d.String()
	if got == "" {
		t.Fatal("String() returned empty")
	}
	for _, want := range []string{"foo.yaml:3", "group=g1", "attribute=a1", "bad thing"} {
		if !contains(got, want) {
			t.Errorf("String() = %q, want it to contain %q", got, want)
		}
	}
}

func contains(haystack, needle string) bool {
	return len(haystack) >= len(needle) && indexOf(haystack, needle) >= 0
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
