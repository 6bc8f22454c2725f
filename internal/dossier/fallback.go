package dossier

import (
	"strings"

	"github.com/postmodernjester/rolodex/internal/domain/contact"
)

// ComposeFallback derives a dossier summary from structured contact
// fields alone, used whenever remote generation is unavailable. Name,
// role/company and location fragments are joined with ". " into one
// closed sentence group; the origin and classification lines are
// appended as their own sentences. The result is non-empty whenever at
// least the name is known (degenerate case: "{name}.").
func ComposeFallback(c contact.Contact) string {
	frags := make([]string, 0, 3)
	if name := strings.TrimSpace(c.FullName); name != "" {
		frags = append(frags, name)
	}

	role := strings.TrimSpace(c.Role)
	company := strings.TrimSpace(c.Company)
	switch {
	case role != "" && company != "":
		frags = append(frags, role+" at "+company)
	case role != "":
		frags = append(frags, "works as "+role)
	case company != "":
		frags = append(frags, "is affiliated with "+company)
	}

	if loc := strings.TrimSpace(c.Location); loc != "" {
		frags = append(frags, loc)
	}

	var parts []string
	if len(frags) > 0 {
		parts = append(parts, closeSentence(strings.Join(frags, ". ")))
	}
	if how := strings.TrimSpace(c.HowWeMet); how != "" {
		parts = append(parts, closeSentence("Connection originated via "+how))
	}
	if rel := strings.TrimSpace(c.RelationshipType); rel != "" {
		parts = append(parts, closeSentence("Classified as "+strings.ToLower(rel)))
	}
	return strings.Join(parts, " ")
}

// closeSentence appends the final period unless the text already ends
// with one, so values like "Jane Doe Jr." do not double up.
func closeSentence(s string) string {
	if strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}
