package dossier

import (
	"testing"

	"github.com/postmodernjester/rolodex/internal/domain/contact"
)

func TestFallbackNameOnly(t *testing.T) {
	got := ComposeFallback(contact.Contact{FullName: "Jane Doe"})
	if got != "Jane Doe." {
		t.Fatalf("expected %q, got %q", "Jane Doe.", got)
	}
}

func TestFallbackFullFieldOrdering(t *testing.T) {
	got := ComposeFallback(contact.Contact{
		FullName:         "Jane Doe",
		Role:             "Engineer",
		Company:          "Acme",
		Location:         "Remote",
		RelationshipType: "Client",
	})
	want := "Jane Doe. Engineer at Acme. Remote. Classified as client."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFallbackRoleWithoutCompany(t *testing.T) {
	got := ComposeFallback(contact.Contact{FullName: "Jane Doe", Role: "Engineer"})
	want := "Jane Doe. works as Engineer."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFallbackCompanyWithoutRole(t *testing.T) {
	got := ComposeFallback(contact.Contact{FullName: "Jane Doe", Company: "Acme"})
	want := "Jane Doe. is affiliated with Acme."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFallbackHowWeMetIsOwnSentence(t *testing.T) {
	got := ComposeFallback(contact.Contact{
		FullName:         "Jane Doe",
		HowWeMet:         "a mutual friend",
		RelationshipType: "Mentor",
	})
	want := "Jane Doe. Connection originated via a mutual friend. Classified as mentor."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFallbackNoDoublePeriod(t *testing.T) {
	got := ComposeFallback(contact.Contact{FullName: "Jane Doe Jr."})
	if got != "Jane Doe Jr." {
		t.Fatalf("expected single trailing period, got %q", got)
	}
}

func TestFallbackTrimsWhitespace(t *testing.T) {
	got := ComposeFallback(contact.Contact{FullName: "  Jane Doe  ", Location: " Remote "})
	want := "Jane Doe. Remote."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFallbackEmptyContact(t *testing.T) {
	if got := ComposeFallback(contact.Contact{}); got != "" {
		t.Fatalf("expected empty summary for empty contact, got %q", got)
	}
}
