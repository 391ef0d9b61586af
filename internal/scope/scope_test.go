package scope

import "testing"

func TestDeclareRejectsShadowAtSameLevel(t *testing.T) {
	s := New()
	if !s.DeclareVariable("x", 1, nil, false, false, false) {
		t.Fatal("first declare of x should succeed")
	}
	if s.DeclareVariable("x", 2, nil, false, false, false) {
		t.Fatal("redeclaring x at the same level should fail")
	}
}

func TestChildScopeMayShadowParent(t *testing.T) {
	parent := New()
	parent.DeclareVariable("x", 1, nil, false, false, false)
	child := parent.Child()
	if !child.DeclareVariable("x", 2, nil, false, false, false) {
		t.Fatal("a child scope should be allowed to shadow a parent binding")
	}
	v, _, _, ok := child.Lookup("x")
	if !ok || v != 2 {
		t.Fatalf("Lookup(x) = %v, %v, want 2, true", v, ok)
	}
	pv, _, _, ok := parent.Lookup("x")
	if !ok || pv != 1 {
		t.Fatalf("parent Lookup(x) = %v, %v, want 1, true (shadow must not mutate parent)", pv, ok)
	}
}

func TestSetWalksToOwningAncestor(t *testing.T) {
	parent := New()
	parent.DeclareVariable("x", 1, nil, false, false, false)
	child := parent.Child()
	if readOnly, ok := child.Set("x", 99); readOnly || !ok {
		t.Fatalf("Set(x) = readOnly=%v ok=%v, want false, true", readOnly, ok)
	}
	v, _, _, _ := parent.Lookup("x")
	if v != 99 {
		t.Fatalf("parent value after child Set = %v, want 99", v)
	}
}

func TestSetRejectsReadOnly(t *testing.T) {
	s := New()
	s.DeclareVariable("x", 1, nil, false, true, false)
	readOnly, ok := s.Set("x", 2)
	if !readOnly || !ok {
		t.Fatalf("Set on read-only binding = readOnly=%v ok=%v, want true, true", readOnly, ok)
	}
	v, _, _, _ := s.Lookup("x")
	if v != 1 {
		t.Fatalf("read-only value changed to %v, want unchanged 1", v)
	}
}

func TestSetUnknownNameFails(t *testing.T) {
	s := New()
	if _, ok := s.Set("nope", 1); ok {
		t.Fatal("Set on an unbound name should fail")
	}
}

func TestExportedNamesFiltersAndPreservesOrder(t *testing.T) {
	s := New()
	s.DeclareVariable("a", 1, nil, true, false, false)
	s.DeclareVariable("b", 2, nil, false, false, false)
	s.DeclareVariable("c", 3, nil, true, false, false)
	got := s.ExportedNames()
	want := []string{"a", "c"}
	if len(got) != len(want) {
		t.Fatalf("ExportedNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ExportedNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLookupTypeWalksAncestors(t *testing.T) {
	parent := New()
	parent.DeclareType("MyType", nil, false)
	child := parent.Child()
	if _, ok := child.LookupType("MyType"); !ok {
		t.Fatal("LookupType should walk to the parent scope")
	}
}
