package model

import "testing"

func TestScopeRef_GlobalAndStored(t *testing.T) {
	t.Parallel()

	if !Global.IsGlobal() || Global.ID() != nil || Global.Label() != "Global" {
		t.Fatalf("unexpected global ref: %#v", Global)
	}

	s := &Scope{ID: "s-1", DirPath: "/a/b"}
	ref := ScopeOf(s)
	if ref.IsGlobal() {
		t.Fatalf("expected stored scope ref")
	}
	if id := ref.ID(); id == nil || *id != "s-1" {
		t.Fatalf("unexpected id: %v", id)
	}
	if ref.Label() != "/a/b" {
		t.Fatalf("unexpected label %q", ref.Label())
	}
}

func TestScopeRef_Same(t *testing.T) {
	t.Parallel()

	a := ScopeOf(&Scope{ID: "s-1"})
	b := ScopeOf(&Scope{ID: "s-1", DirPath: "/other"})
	c := ScopeOf(&Scope{ID: "s-2"})

	if !a.Same(b) {
		t.Fatalf("expected same scope by id")
	}
	if a.Same(c) || a.Same(Global) || Global.Same(a) {
		t.Fatalf("expected different scopes")
	}
	if !Global.Same(ScopeRef{}) {
		t.Fatalf("expected global refs to be the same")
	}
}

func TestStrPtr(t *testing.T) {
	t.Parallel()

	if StrPtr("   ") != nil {
		t.Fatalf("expected nil for blank")
	}
	if got := Deref(StrPtr(" x ")); got != "x" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if Deref(nil) != "" {
		t.Fatalf("expected empty deref")
	}
}
