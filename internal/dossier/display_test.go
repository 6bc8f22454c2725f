package dossier

import (
	"testing"

	"github.com/postmodernjester/rolodex/internal/domain/contact"
	"github.com/postmodernjester/rolodex/internal/domain/profile"
)

func TestMergeDisplayContactFieldsWin(t *testing.T) {
	cx := Context{
		Contact: contact.Contact{FullName: "Jane Doe", Location: "Remote"},
		Profile: Fetched(profile.Profile{FullName: "J. Doe", Location: "Berlin"}),
	}

	d := MergeDisplay(cx)
	if d.Name != "Jane Doe" {
		t.Fatalf("expected contact name to win, got %q", d.Name)
	}
	if d.Location != "Remote" {
		t.Fatalf("expected contact location to win, got %q", d.Location)
	}
}

func TestMergeDisplayProfileFillsGaps(t *testing.T) {
	cx := Context{
		Contact: contact.Contact{FullName: "Jane Doe"},
		Profile: Fetched(profile.Profile{
			Location:  "Berlin",
			Website:   "https://janedoe.dev",
			AvatarURL: "https://cdn.example/jane.png",
		}),
	}

	d := MergeDisplay(cx)
	if d.Location != "Berlin" {
		t.Fatalf("expected profile location to fill gap, got %q", d.Location)
	}
	if d.Website != "https://janedoe.dev" {
		t.Fatalf("expected website from profile, got %q", d.Website)
	}
	if d.AvatarURL != "https://cdn.example/jane.png" {
		t.Fatalf("expected avatar from profile, got %q", d.AvatarURL)
	}
}

func TestMergeDisplayHeadlinePrefersProfileHeadline(t *testing.T) {
	cx := Context{
		Contact: contact.Contact{FullName: "Jane Doe", Role: "Engineer", Company: "Acme"},
		Profile: Fetched(profile.Profile{Headline: "Distributed systems"}),
	}

	d := MergeDisplay(cx)
	if d.Headline != "Distributed systems" {
		t.Fatalf("expected profile headline, got %q", d.Headline)
	}
}

func TestMergeDisplayHeadlineFallsBackToRoleCompany(t *testing.T) {
	cx := Context{
		Contact: contact.Contact{FullName: "Jane Doe", Role: "Engineer", Company: "Acme"},
	}

	d := MergeDisplay(cx)
	if d.Headline != "Engineer at Acme" {
		t.Fatalf("expected composed headline, got %q", d.Headline)
	}
}

func TestMergeDisplayCountsOpenActions(t *testing.T) {
	cx := Context{
		Contact: contact.Contact{FullName: "Jane Doe"},
		Notes: []contact.Note{
			{Content: "a", ActionText: "follow up"},
			{Content: "b", ActionText: "send invoice", ActionCompleted: true},
			{Content: "c"},
			{Content: "d", ActionText: "intro to Sam"},
		},
	}

	d := MergeDisplay(cx)
	if d.OpenActions != 2 {
		t.Fatalf("expected 2 open actions, got %d", d.OpenActions)
	}
}
