package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/postmodernjester/rolodex/internal/domain/contact"
	"github.com/postmodernjester/rolodex/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrContactNotFound       = errors.New("contact not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidFollowUpStatus = errors.New("invalid follow up status")
)

const (
	defaultContactListLimit = 50
	maxContactListLimit     = 200
)

type ContactInput struct {
	FullName         string
	Email            string
	Phone            string
	Company          string
	Role             string
	Location         string
	RelationshipType string
	HowWeMet         string
	FollowUpStatus   string
	LastContactDate  *time.Time
	NextActionDate   *time.Time
	NextActionNote   string
}

type ListContactsInput struct {
	Status string
	Query  string
	Limit  int
	Offset int
}

type ContactUsecase interface {
	ListContacts(ctx context.Context, ownerID uuid.UUID, in ListContactsInput) ([]contact.Contact, error)
	CreateContact(ctx context.Context, ownerID uuid.UUID, in ContactInput) (contact.Contact, error)
	GetContact(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (contact.Contact, error)
	UpdateContact(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, in ContactInput) (contact.Contact, error)
	DeleteContact(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error
	LinkProfile(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, profileID uuid.UUID) (contact.Contact, error)
	UnlinkProfile(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (contact.Contact, error)
}

type Contact struct {
	contacts repository.ContactRepository
	profiles repository.ProfileRepository
	cache    Cache
}

func NewContactUsecase(contacts repository.ContactRepository, profiles repository.ProfileRepository, cache Cache) *Contact {
	return &Contact{contacts: contacts, profiles: profiles, cache: cache}
}

func (u *Contact) ListContacts(ctx context.Context, ownerID uuid.UUID, in ListContactsInput) ([]contact.Contact, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultContactListLimit
	}
	if limit > maxContactListLimit {
		limit = maxContactListLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status != "" && !isValidFollowUpStatus(status) {
		return nil, ErrInvalidFollowUpStatus
	}

	out, err := u.contacts.ListByOwner(ctx, ownerID, repository.ContactListFilter{
		Status: status,
		Query:  strings.TrimSpace(in.Query),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Contact) CreateContact(ctx context.Context, ownerID uuid.UUID, in ContactInput) (contact.Contact, error) {
	in, err := normalizeContactInput(in)
	if err != nil {
		return contact.Contact{}, err
	}

	created, err := u.contacts.Create(ctx, contact.Contact{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		FullName:         in.FullName,
		Email:            in.Email,
		Phone:            in.Phone,
		Company:          in.Company,
		Role:             in.Role,
		Location:         in.Location,
		RelationshipType: in.RelationshipType,
		HowWeMet:         in.HowWeMet,
		FollowUpStatus:   in.FollowUpStatus,
		LastContactDate:  in.LastContactDate,
		NextActionDate:   in.NextActionDate,
		NextActionNote:   in.NextActionNote,
	})
	if err != nil {
		return contact.Contact{}, ErrInternal
	}
	return created, nil
}

func (u *Contact) GetContact(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (contact.Contact, error) {
	c, err := u.contacts.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return contact.Contact{}, ErrContactNotFound
		}
		return contact.Contact{}, ErrInternal
	}
	return c, nil
}

func (u *Contact) UpdateContact(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, in ContactInput) (contact.Contact, error) {
	if id == uuid.Nil {
		return contact.Contact{}, ErrInvalidInput
	}
	in, err := normalizeContactInput(in)
	if err != nil {
		return contact.Contact{}, err
	}

	updated, err := u.contacts.Update(ctx, contact.Contact{
		ID:               id,
		OwnerID:          ownerID,
		FullName:         in.FullName,
		Email:            in.Email,
		Phone:            in.Phone,
		Company:          in.Company,
		Role:             in.Role,
		Location:         in.Location,
		RelationshipType: in.RelationshipType,
		HowWeMet:         in.HowWeMet,
		FollowUpStatus:   in.FollowUpStatus,
		LastContactDate:  in.LastContactDate,
		NextActionDate:   in.NextActionDate,
		NextActionNote:   in.NextActionNote,
	})
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return contact.Contact{}, ErrContactNotFound
		}
		return contact.Contact{}, ErrInternal
	}
	return updated, nil
}

func (u *Contact) DeleteContact(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.contacts.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return ErrContactNotFound
		}
		return ErrInternal
	}
	u.dropAutoMarker(ctx, ownerID, id)
	return nil
}

func (u *Contact) LinkProfile(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, profileID uuid.UUID) (contact.Contact, error) {
	if id == uuid.Nil || profileID == uuid.Nil {
		return contact.Contact{}, ErrInvalidInput
	}

	if _, err := u.profiles.GetByID(ctx, profileID); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return contact.Contact{}, ErrProfileNotFound
		}
		return contact.Contact{}, ErrInternal
	}

	if err := u.contacts.SetLinkedProfile(ctx, ownerID, id, &profileID); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return contact.Contact{}, ErrContactNotFound
		}
		return contact.Contact{}, ErrInternal
	}
	u.dropAutoMarker(ctx, ownerID, id)
	return u.GetContact(ctx, ownerID, id)
}

func (u *Contact) UnlinkProfile(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (contact.Contact, error) {
	if id == uuid.Nil {
		return contact.Contact{}, ErrInvalidInput
	}
	if err := u.contacts.SetLinkedProfile(ctx, ownerID, id, nil); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return contact.Contact{}, ErrContactNotFound
		}
		return contact.Contact{}, ErrInternal
	}
	u.dropAutoMarker(ctx, ownerID, id)
	return u.GetContact(ctx, ownerID, id)
}

// dropAutoMarker clears the auto-generation marker so a re-linked contact
// becomes eligible again without waiting for the marker TTL.
func (u *Contact) dropAutoMarker(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, DossierAutoKey(ownerID, id))
}

func normalizeContactInput(in ContactInput) (ContactInput, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	if in.FullName == "" {
		return in, ErrInvalidInput
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Company = strings.TrimSpace(in.Company)
	in.Role = strings.TrimSpace(in.Role)
	in.Location = strings.TrimSpace(in.Location)
	in.RelationshipType = strings.TrimSpace(in.RelationshipType)
	in.HowWeMet = strings.TrimSpace(in.HowWeMet)
	in.NextActionNote = strings.TrimSpace(in.NextActionNote)

	in.FollowUpStatus = strings.ToLower(strings.TrimSpace(in.FollowUpStatus))
	if in.FollowUpStatus == "" {
		in.FollowUpStatus = contact.FollowUpNone
	}
	if !isValidFollowUpStatus(in.FollowUpStatus) {
		return in, ErrInvalidFollowUpStatus
	}
	return in, nil
}

func isValidFollowUpStatus(s string) bool {
	switch s {
	case contact.FollowUpNone, contact.FollowUpPending, contact.FollowUpScheduled, contact.FollowUpDone:
		return true
	}
	return false
}
