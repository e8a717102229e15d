package verpart

import (
	"errors"
	"testing"

	"github.com/indaco/vbump/internal/apperrors"
	"github.com/indaco/vbump/internal/partfn"
)

func numericPart(t *testing.T, raw string) PartValue {
	t.Helper()
	fn, err := partfn.NewNumeric("", false)
	if err != nil {
		t.Fatalf("NewNumeric: %v", err)
	}
	return NewPartValue(raw, fn)
}

func TestBumpResetsLaterParts(t *testing.T) {
	v := NewVersion(map[string]PartValue{
		"major": numericPart(t, "1"),
		"minor": numericPart(t, "2"),
		"patch": numericPart(t, "3"),
	}, "1.2.3")

	next, err := v.Bump("minor", []string{"major", "minor", "patch"})
	if err != nil {
		t.Fatalf("Bump: %v", err)
	}

	if pv, _ := next.Get("major"); pv.Value() != "1" {
		t.Fatalf("major = %q, want unchanged 1", pv.Value())
	}
	if pv, _ := next.Get("minor"); pv.Value() != "3" {
		t.Fatalf("minor = %q, want bumped 3", pv.Value())
	}
	if pv, _ := next.Get("patch"); pv.Value() != "0" {
		t.Fatalf("patch = %q, want reset 0", pv.Value())
	}
}

func TestBumpIndependentPartIsPreserved(t *testing.T) {
	fn, err := partfn.NewNumeric("", true)
	if err != nil {
		t.Fatalf("NewNumeric: %v", err)
	}
	v := NewVersion(map[string]PartValue{
		"major": numericPart(t, "2"),
		"minor": numericPart(t, "1"),
		"patch": numericPart(t, "6"),
		"build": NewPartValue("5123", fn),
	}, "2.1.6-5123")

	next, err := v.Bump("major", []string{"major", "minor", "patch", "build"})
	if err != nil {
		t.Fatalf("Bump: %v", err)
	}
	if pv, _ := next.Get("build"); pv.Value() != "5123" {
		t.Fatalf("build = %q, want preserved 5123", pv.Value())
	}
	if pv, _ := next.Get("major"); pv.Value() != "3" {
		t.Fatalf("major = %q, want 3", pv.Value())
	}
}

func TestBumpUnknownPartFails(t *testing.T) {
	v := NewVersion(map[string]PartValue{"major": numericPart(t, "1")}, "1")
	_, err := v.Bump("minor", []string{"major"})
	if err == nil {
		t.Fatalf("expected unknown-part error")
	}
	if !errors.Is(err, apperrors.ErrUnknownPart) {
		t.Fatalf("expected ErrUnknownPart, got %v", err)
	}
}
