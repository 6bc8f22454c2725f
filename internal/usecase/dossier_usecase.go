package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/postmodernjester/rolodex/internal/domain/contact"
	"github.com/postmodernjester/rolodex/internal/domain/profile"
	"github.com/postmodernjester/rolodex/internal/dossier"
	"github.com/postmodernjester/rolodex/internal/infrastructure/narrative"
	"github.com/postmodernjester/rolodex/internal/repository"

	"github.com/google/uuid"
)

const dossierAutoTTL = 30 * time.Minute

// DossierNotifier pushes a ready event to the owner's live sessions once
// a summary has been persisted.
type DossierNotifier interface {
	DossierReady(ownerID uuid.UUID, contactID uuid.UUID)
}

// DossierView is the full aggregation for one contact: the contact row,
// its notes, the linked profile (fetched or synthesized) with its
// history sections, plus merged display fields and the compiled URL
// list.
type DossierView struct {
	Contact   contact.Contact
	Notes     []contact.Note
	Profile   *dossier.ProfileSource
	Work      []profile.WorkEntry
	Education []profile.EducationEntry
	Chronicle []profile.ChronicleEntry
	Display   dossier.Display
	URLs      []string
}

type DossierUsecase interface {
	View(ctx context.Context, ownerID uuid.UUID, contactID uuid.UUID) (DossierView, error)
	Generate(ctx context.Context, ownerID uuid.UUID, contactID uuid.UUID) (contact.Contact, error)
}

type Dossier struct {
	contacts  repository.ContactRepository
	notes     repository.NoteRepository
	profiles  repository.ProfileRepository
	resume    repository.ResumeRepository
	narrative narrative.Client
	cache     Cache
	notifier  DossierNotifier
	logger    *log.Logger
}

func NewDossierUsecase(
	contacts repository.ContactRepository,
	notes repository.NoteRepository,
	profiles repository.ProfileRepository,
	resume repository.ResumeRepository,
	narrativeClient narrative.Client,
	cache Cache,
	notifier DossierNotifier,
	logger *log.Logger,
) *Dossier {
	return &Dossier{
		contacts:  contacts,
		notes:     notes,
		profiles:  profiles,
		resume:    resume,
		narrative: narrativeClient,
		cache:     cache,
		notifier:  notifier,
		logger:    logger,
	}
}

// View aggregates everything known about the contact. When the contact
// has a linked profile and no summary yet, a summary is generated in the
// same request so the first dossier open never shows an empty panel.
func (u *Dossier) View(ctx context.Context, ownerID uuid.UUID, contactID uuid.UUID) (DossierView, error) {
	cx, err := u.collect(ctx, ownerID, contactID)
	if err != nil {
		return DossierView{}, err
	}
	compiled := dossier.Compile(cx)

	view := DossierView{
		Contact:   cx.Contact,
		Notes:     cx.Notes,
		Profile:   cx.Profile,
		Work:      cx.Work,
		Education: cx.Education,
		Chronicle: cx.Chronicle,
		Display:   dossier.MergeDisplay(cx),
		URLs:      compiled.URLs,
	}

	if cx.Contact.LinkedProfileID != nil && strings.TrimSpace(cx.Contact.AISummary) == "" {
		if u.shouldAutoGenerate(ctx, ownerID, contactID) {
			updated, err := u.persistSummary(ctx, ownerID, contactID, cx, compiled)
			if err != nil {
				u.logf("[Dossier] auto generation failed contact=%s: %v", contactID, err)
			} else {
				view.Contact = updated
			}
		}
	}

	return view, nil
}

// Generate re-collects the contact's context and persists a fresh
// summary. Each invocation overwrites the previous one; there is no
// history and no server-side mutex, so the last write wins.
func (u *Dossier) Generate(ctx context.Context, ownerID uuid.UUID, contactID uuid.UUID) (contact.Contact, error) {
	cx, err := u.collect(ctx, ownerID, contactID)
	if err != nil {
		return contact.Contact{}, err
	}
	return u.persistSummary(ctx, ownerID, contactID, cx, dossier.Compile(cx))
}

// collect gathers the contact, its notes and the linked profile with its
// history sections. Only the contact fetch itself is fatal: every other
// miss is logged and leaves its section empty.
func (u *Dossier) collect(ctx context.Context, ownerID uuid.UUID, contactID uuid.UUID) (dossier.Context, error) {
	c, err := u.contacts.GetByID(ctx, ownerID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return dossier.Context{}, ErrContactNotFound
		}
		return dossier.Context{}, ErrInternal
	}

	cx := dossier.Context{Contact: c}

	notes, err := u.notes.ListByContact(ctx, ownerID, contactID)
	if err != nil {
		u.logf("[Dossier] partial notes unavailable contact=%s: %v", contactID, err)
		notes = make([]contact.Note, 0)
	}
	cx.Notes = notes

	if c.LinkedProfileID == nil {
		return cx, nil
	}

	p, err := u.profiles.GetByID(ctx, *c.LinkedProfileID)
	if err != nil {
		u.logf("[Dossier] linked profile unavailable contact=%s profile=%s: %v", contactID, *c.LinkedProfileID, err)
		cx.Profile = dossier.Synthesized(c)
		return cx, nil
	}
	cx.Profile = dossier.Fetched(p)

	work, err := u.resume.ListWork(ctx, p.ID)
	if err != nil {
		u.logf("[Dossier] partial work history unavailable profile=%s: %v", p.ID, err)
		work = make([]profile.WorkEntry, 0)
	}
	cx.Work = work

	education, err := u.resume.ListEducation(ctx, p.ID)
	if err != nil {
		u.logf("[Dossier] partial education unavailable profile=%s: %v", p.ID, err)
		education = make([]profile.EducationEntry, 0)
	}
	cx.Education = education

	chronicle, err := u.resume.ListChronicle(ctx, p.ID, true)
	if err != nil {
		u.logf("[Dossier] partial chronicle unavailable profile=%s: %v", p.ID, err)
		chronicle = make([]profile.ChronicleEntry, 0)
	}
	cx.Chronicle = chronicle

	return cx, nil
}

// persistSummary resolves a summary (remote generation or deterministic
// fallback), saves it and notifies the owner's sessions. Generation
// failure is absorbed here; only the save can fail.
func (u *Dossier) persistSummary(ctx context.Context, ownerID uuid.UUID, contactID uuid.UUID, cx dossier.Context, compiled dossier.Compiled) (contact.Contact, error) {
	summary, oneliner := u.resolve(ctx, cx, compiled)

	if err := u.contacts.UpdateSummary(ctx, ownerID, contactID, summary, oneliner); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return contact.Contact{}, ErrContactNotFound
		}
		return contact.Contact{}, ErrInternal
	}

	refreshed, err := u.contacts.GetByID(ctx, ownerID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return contact.Contact{}, ErrContactNotFound
		}
		return contact.Contact{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.DossierReady(ownerID, contactID)
	}
	return refreshed, nil
}

// resolve asks the generation endpoint first and composes the local
// fallback on any failure, so the caller always receives a summary.
func (u *Dossier) resolve(ctx context.Context, cx dossier.Context, compiled dossier.Compiled) (summary string, oneliner string) {
	if u.narrative != nil {
		res, err := u.narrative.Summarize(ctx, narrative.SummarizeRequest{
			Facts: compiled.Facts,
			Notes: compiled.Notes,
			URLs:  compiled.URLs,
		})
		if err == nil {
			return res.Summary, res.Oneliner
		}
		u.logf("[Dossier] generation unavailable contact=%s: %v", cx.Contact.ID, err)
	}
	return dossier.ComposeFallback(cx.Contact), ""
}

// shouldAutoGenerate rate-limits auto generation to once per (owner,
// contact) within the marker TTL. Without a cache the eligibility check
// alone decides, since a persisted summary ends eligibility anyway.
func (u *Dossier) shouldAutoGenerate(ctx context.Context, ownerID uuid.UUID, contactID uuid.UUID) bool {
	if u.cache == nil {
		return true
	}
	ok, err := u.cache.SetIfNotExists(ctx, DossierAutoKey(ownerID, contactID), "1", dossierAutoTTL)
	if err != nil {
		return true
	}
	return ok
}

func (u *Dossier) logf(format string, args ...any) {
	if u.logger == nil {
		return
	}
	u.logger.Printf(format, args...)
}
