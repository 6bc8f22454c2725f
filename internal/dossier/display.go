package dossier

import "strings"

// Display is the merged header for a contact detail view: the owner's
// own contact fields win, linked-profile fields fill the gaps, and a
// fetched profile headline replaces the role/company composition.
type Display struct {
	Name        string
	Headline    string
	Location    string
	Website     string
	AvatarURL   string
	OpenActions int
}

func MergeDisplay(cx Context) Display {
	d := Display{
		Name:     strings.TrimSpace(cx.Contact.FullName),
		Headline: headlineFrom(cx.Contact),
		Location: strings.TrimSpace(cx.Contact.Location),
	}

	if cx.Profile != nil {
		p := cx.Profile.Profile
		if d.Name == "" {
			d.Name = strings.TrimSpace(p.FullName)
		}
		if h := strings.TrimSpace(p.Headline); h != "" {
			d.Headline = h
		}
		if d.Location == "" {
			d.Location = strings.TrimSpace(p.Location)
		}
		d.Website = strings.TrimSpace(p.Website)
		d.AvatarURL = strings.TrimSpace(p.AvatarURL)
	}

	for _, n := range cx.Notes {
		if n.HasAction() {
			d.OpenActions++
		}
	}
	return d
}
