// Package dossier turns a contact's accumulated records (own fields,
// owner notes, optionally a linked profile with its history) into the
// flat text context a summary generation call needs, and derives the
// deterministic fallback summary used when generation is unavailable.
package dossier

import (
	"strings"

	"github.com/postmodernjester/rolodex/internal/domain/contact"
	"github.com/postmodernjester/rolodex/internal/domain/profile"
)

// Origin says where the linked-profile data in a Context came from.
type Origin string

const (
	// OriginFetched means the linked profile row was read live.
	OriginFetched Origin = "fetched"
	// OriginSynthesized means the profile row was gone and a stand-in
	// was built from the contact's own denormalized fields.
	OriginSynthesized Origin = "synthesized"
)

// ProfileSource carries linked-profile data together with its origin,
// so downstream stages consume one typed value instead of re-checking
// nullability ad hoc.
type ProfileSource struct {
	Origin  Origin
	Profile profile.Profile
}

func Fetched(p profile.Profile) *ProfileSource {
	return &ProfileSource{Origin: OriginFetched, Profile: p}
}

// Synthesized builds a minimal stand-in profile from the contact's own
// fields, for when a link exists structurally but the profile row is
// missing or unreadable.
func Synthesized(c contact.Contact) *ProfileSource {
	p := profile.Profile{
		FullName: strings.TrimSpace(c.FullName),
		Headline: headlineFrom(c),
		Location: strings.TrimSpace(c.Location),
	}
	return &ProfileSource{Origin: OriginSynthesized, Profile: p}
}

func headlineFrom(c contact.Contact) string {
	role := strings.TrimSpace(c.Role)
	company := strings.TrimSpace(c.Company)
	switch {
	case role != "" && company != "":
		return role + " at " + company
	case role != "":
		return role
	default:
		return company
	}
}

// Context is everything the collector gathered for one contact. Work,
// Education and Chronicle are only populated when the profile was
// actually fetched; any of them may be empty on partial fetch failure.
type Context struct {
	Contact   contact.Contact
	Notes     []contact.Note
	Profile   *ProfileSource
	Work      []profile.WorkEntry
	Education []profile.EducationEntry
	Chronicle []profile.ChronicleEntry
}
