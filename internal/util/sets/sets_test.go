package sets

import (
	"reflect"
	"testing"
)

func TestSetBasics(t *testing.T) {
	s := New("go", "markdown")
	if !s.Has("go") || !s.Has("markdown") {
		t.Fatalf("missing seeded members")
	}
	s.Add("yaml")
	if !s.Has("yaml") {
		t.Fatalf("Add did not insert")
	}
	s.Delete("go")
	if s.Has("go") {
		t.Fatalf("Delete did not remove")
	}

	clone := s.Clone()
	clone.Add("extra")
	if s.Has("extra") {
		t.Fatalf("Clone must not share storage")
	}
}

func TestSorted(t *testing.T) {
	s := New("resilience", "fhir", "pdf")
	got := Sorted(s)
	want := []string{"fhir", "pdf", "resilience"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sorted() = %v, want %v", got, want)
	}
}
