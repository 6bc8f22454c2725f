package dossier

import (
	"regexp"
	"strings"

	"github.com/postmodernjester/rolodex/internal/domain/contact"
)

// NoNotesMarker replaces an empty notes block so the generator receives
// an unambiguous "no history exists" signal.
const NoNotesMarker = "(No notes yet)"

// urlPattern is a best-effort lexical match, not a URL parser: trailing
// punctuation may be included and that is accepted.
var urlPattern = regexp.MustCompile(`https?://[^\s<]+`)

// Compiled is the flattened context handed to the generation call.
type Compiled struct {
	Facts string
	Notes string
	URLs  []string
}

// Compile flattens a collected Context into the facts block, the notes
// block and the deduplicated URL list. Pure function, no I/O: the same
// Context always produces the same output.
func Compile(cx Context) Compiled {
	return Compiled{
		Facts: compileFacts(cx),
		Notes: compileNotes(cx.Notes),
		URLs:  collectURLs(cx),
	}
}

// compileFacts emits one labeled line per present field, in a fixed
// order. Absent fields contribute no line at all.
func compileFacts(cx Context) string {
	var lines []string
	add := func(label, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		lines = append(lines, label+": "+value)
	}

	c := cx.Contact
	add("Name", c.FullName)
	add("Role", c.Role)
	add("Company", c.Company)
	add("Location", c.Location)
	add("Email", c.Email)
	add("Relationship", c.RelationshipType)

	if cx.Profile != nil {
		p := cx.Profile.Profile
		add("Headline", p.Headline)
		add("About", p.Bio)
		add("Profile location", p.Location)
		add("Website", p.Website)
		for _, l := range p.KeyLinks {
			if !l.Visible || strings.TrimSpace(l.URL) == "" {
				continue
			}
			label := strings.TrimSpace(l.Label)
			if label == "" {
				label = "Link"
			}
			add(label, l.URL)
		}
	}

	return strings.Join(lines, "\n")
}

// compileNotes renders one line per note in the order given (most
// recent first as fetched), each as "[entry_date] content" with an
// " [Action: ...]" suffix when the note carries an action.
func compileNotes(notes []contact.Note) string {
	if len(notes) == 0 {
		return NoNotesMarker
	}
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		line := "[" + n.EntryDate.Format("2006-01-02") + "] " + strings.TrimSpace(n.Content)
		if action := strings.TrimSpace(n.ActionText); action != "" {
			line += " [Action: " + action + "]"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// collectURLs gathers visible key-link URLs first (they are considered
// more authoritative), then URLs matched inside note contents in note
// order, dropping duplicates while keeping the first occurrence.
func collectURLs(cx Context) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	add := func(u string) {
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}

	if cx.Profile != nil {
		for _, l := range cx.Profile.Profile.KeyLinks {
			if !l.Visible {
				continue
			}
			if u := strings.TrimSpace(l.URL); u != "" {
				add(u)
			}
		}
	}
	for _, n := range cx.Notes {
		for _, u := range ExtractURLs(n.Content) {
			add(u)
		}
	}
	return out
}

// ExtractURLs returns every http(s) URL-looking substring of text in
// order of appearance.
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}
