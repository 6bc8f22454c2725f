package dossier

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/postmodernjester/rolodex/internal/domain/contact"
	"github.com/postmodernjester/rolodex/internal/domain/profile"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCompileFactsFixedOrderSkipsAbsentFields(t *testing.T) {
	cx := Context{
		Contact: contact.Contact{
			FullName:         "Jane Doe",
			Company:          "Acme",
			RelationshipType: "Client",
		},
	}

	got := Compile(cx).Facts
	want := strings.Join([]string{
		"Name: Jane Doe",
		"Company: Acme",
		"Relationship: Client",
	}, "\n")
	if got != want {
		t.Fatalf("expected facts\n%q\ngot\n%q", want, got)
	}
}

func TestCompileFactsIncludesLinkedProfileAndVisibleKeyLinks(t *testing.T) {
	cx := Context{
		Contact: contact.Contact{FullName: "Jane Doe", Role: "Engineer"},
		Profile: Fetched(profile.Profile{
			Headline: "Distributed systems",
			Bio:      "Builds data planes.",
			Location: "Berlin",
			Website:  "https://janedoe.dev",
			KeyLinks: []profile.KeyLink{
				{Label: "GitHub", URL: "https://github.com/janedoe", Visible: true},
				{Label: "Private", URL: "https://secret.example", Visible: false},
				{Label: "Empty", URL: "   ", Visible: true},
			},
		}),
	}

	got := Compile(cx).Facts
	want := strings.Join([]string{
		"Name: Jane Doe",
		"Role: Engineer",
		"Headline: Distributed systems",
		"About: Builds data planes.",
		"Profile location: Berlin",
		"Website: https://janedoe.dev",
		"GitHub: https://github.com/janedoe",
	}, "\n")
	if got != want {
		t.Fatalf("expected facts\n%q\ngot\n%q", want, got)
	}
}

func TestCompileFactsFromSynthesizedProfile(t *testing.T) {
	c := contact.Contact{
		FullName: "Jane Doe",
		Role:     "Engineer",
		Company:  "Acme",
		Location: "Remote",
	}
	cx := Context{Contact: c, Profile: Synthesized(c)}

	got := Compile(cx).Facts
	if !strings.Contains(got, "Headline: Engineer at Acme") {
		t.Fatalf("expected synthesized headline line, got\n%q", got)
	}
	if !strings.Contains(got, "Profile location: Remote") {
		t.Fatalf("expected synthesized profile location line, got\n%q", got)
	}
	if strings.Contains(got, "Website:") {
		t.Fatalf("expected no website line for synthesized profile, got\n%q", got)
	}
}

func TestCompileNotesFormatAndActionSuffix(t *testing.T) {
	cx := Context{
		Notes: []contact.Note{
			{EntryDate: date(2025, 4, 2), Content: "Caught up over coffee", ActionText: "send deck"},
			{EntryDate: date(2025, 4, 1), Content: "Met at the conference"},
		},
	}

	got := Compile(cx).Notes
	want := "[2025-04-02] Caught up over coffee [Action: send deck]\n[2025-04-01] Met at the conference"
	if got != want {
		t.Fatalf("expected notes\n%q\ngot\n%q", want, got)
	}
}

func TestCompileNotesEmptyUsesMarker(t *testing.T) {
	got := Compile(Context{}).Notes
	if got != NoNotesMarker {
		t.Fatalf("expected %q for empty notes, got %q", NoNotesMarker, got)
	}
}

func TestCompileURLsKeyLinkPriorityAndDedup(t *testing.T) {
	cx := Context{
		Profile: Fetched(profile.Profile{
			KeyLinks: []profile.KeyLink{
				{Label: "X", URL: "https://x.com/a", Visible: true},
			},
		}),
		Notes: []contact.Note{
			{EntryDate: date(2025, 4, 2), Content: "see https://x.com/a"},
			{EntryDate: date(2025, 4, 1), Content: "and https://y.com/b"},
		},
	}

	got := Compile(cx).URLs
	want := []string{"https://x.com/a", "https://y.com/b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected urls %v, got %v", want, got)
	}
}

func TestCompileURLsSkipsInvisibleKeyLinks(t *testing.T) {
	cx := Context{
		Profile: Fetched(profile.Profile{
			KeyLinks: []profile.KeyLink{
				{Label: "Hidden", URL: "https://hidden.example", Visible: false},
				{Label: "Shown", URL: "https://shown.example", Visible: true},
			},
		}),
	}

	got := Compile(cx).URLs
	want := []string{"https://shown.example"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected urls %v, got %v", want, got)
	}
}

func TestExtractURLsLexicalMatch(t *testing.T) {
	text := "intro http://a.example/x, then https://b.example/y. <https://c.example/z> end"
	got := ExtractURLs(text)
	// Trailing punctuation stays attached; '<' terminates a match.
	want := []string{"http://a.example/x,", "https://b.example/y.", "https://c.example/z>"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected urls %v, got %v", want, got)
	}
}

func TestExtractURLsNoMatch(t *testing.T) {
	if got := ExtractURLs("no links here"); len(got) != 0 {
		t.Fatalf("expected no urls, got %v", got)
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	cx := Context{
		Contact: contact.Contact{FullName: "Jane Doe", Email: "jane@acme.test"},
		Notes: []contact.Note{
			{EntryDate: date(2025, 4, 1), Content: "ping https://y.com/b"},
		},
	}

	a := Compile(cx)
	b := Compile(cx)
	if a.Facts != b.Facts || a.Notes != b.Notes || !reflect.DeepEqual(a.URLs, b.URLs) {
		t.Fatalf("expected identical output for identical input, got %v and %v", a, b)
	}
}
