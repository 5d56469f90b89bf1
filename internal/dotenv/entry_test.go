package dotenv

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDocumentLookup(t *testing.T) {
	doc := Document{{"A", "1"}, {"B", "2"}, {"A", "3"}}

	if v, ok := doc.Lookup("A"); !ok || v != "3" {
		t.Errorf("Lookup(A) = %q, %v, want \"3\", true", v, ok)
	}
	if v, ok := doc.Lookup("B"); !ok || v != "2" {
		t.Errorf("Lookup(B) = %q, %v, want \"2\", true", v, ok)
	}
	if _, ok := doc.Lookup("C"); ok {
		t.Error("Lookup(C) found a value")
	}
}

func TestDocumentMapAndNames(t *testing.T) {
	doc := Document{{"A", "1"}, {"B", "2"}, {"A", "3"}}

	if diff := cmp.Diff(map[string]string{"A": "3", "B": "2"}, doc.Map()); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "B", "A"}, doc.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentStringParsesBack(t *testing.T) {
	doc := Document{
		{"A", "plain"},
		{"B", "with space"},
		{"C", "multi\nline"},
		{"D", `back\slash "quoted"`},
		{"A", ""},
	}

	text := doc.String()
	want := "A=\"plain\"\nB=\"with space\"\nC=\"multi\\nline\"\nD=\"back\\\\slash \\\"quoted\\\"\"\nA=\"\"\n"
	if text != want {
		t.Errorf("String() = %q, want %q", text, want)
	}

	got, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(String()) error: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReasonString(t *testing.T) {
	if got := MissingClosingQuote.String(); got != "a missing closing quote" {
		t.Errorf("MissingClosingQuote.String() = %q", got)
	}
	if got := Reason(42).String(); got != "Reason(42)" {
		t.Errorf("Reason(42).String() = %q", got)
	}
}
