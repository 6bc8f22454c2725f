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

var ErrNoteNotFound = errors.New("note not found")

type NoteInput struct {
	Content         string
	ContextLabel    string
	EntryDate       *time.Time
	ActionText      string
	ActionDueDate   *time.Time
	ActionCompleted bool
}

type NoteUsecase interface {
	ListNotes(ctx context.Context, ownerID uuid.UUID, contactID uuid.UUID) ([]contact.Note, error)
	AddNote(ctx context.Context, ownerID uuid.UUID, contactID uuid.UUID, in NoteInput) (contact.Note, error)
	UpdateNote(ctx context.Context, ownerID uuid.UUID, noteID uuid.UUID, in NoteInput) (contact.Note, error)
	DeleteNote(ctx context.Context, ownerID uuid.UUID, noteID uuid.UUID) error
}

type Note struct {
	notes    repository.NoteRepository
	contacts repository.ContactRepository
}

func NewNoteUsecase(notes repository.NoteRepository, contacts repository.ContactRepository) *Note {
	return &Note{notes: notes, contacts: contacts}
}

func (u *Note) ListNotes(ctx context.Context, ownerID uuid.UUID, contactID uuid.UUID) ([]contact.Note, error) {
	if _, err := u.contacts.GetByID(ctx, ownerID, contactID); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, ErrInternal
	}

	out, err := u.notes.ListByContact(ctx, ownerID, contactID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Note) AddNote(ctx context.Context, ownerID uuid.UUID, contactID uuid.UUID, in NoteInput) (contact.Note, error) {
	if contactID == uuid.Nil {
		return contact.Note{}, ErrInvalidInput
	}
	in, err := normalizeNoteInput(in)
	if err != nil {
		return contact.Note{}, err
	}

	entryDate := time.Now()
	if in.EntryDate != nil {
		entryDate = *in.EntryDate
	}

	created, err := u.notes.Create(ctx, contact.Note{
		ID:              uuid.New(),
		ContactID:       contactID,
		OwnerID:         ownerID,
		Content:         in.Content,
		ContextLabel:    in.ContextLabel,
		EntryDate:       entryDate,
		ActionText:      in.ActionText,
		ActionDueDate:   in.ActionDueDate,
		ActionCompleted: in.ActionCompleted,
	})
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return contact.Note{}, ErrContactNotFound
		}
		return contact.Note{}, ErrInternal
	}
	return created, nil
}

func (u *Note) UpdateNote(ctx context.Context, ownerID uuid.UUID, noteID uuid.UUID, in NoteInput) (contact.Note, error) {
	if noteID == uuid.Nil {
		return contact.Note{}, ErrInvalidInput
	}
	in, err := normalizeNoteInput(in)
	if err != nil {
		return contact.Note{}, err
	}
	if in.EntryDate == nil {
		return contact.Note{}, ErrInvalidInput
	}

	updated, err := u.notes.Update(ctx, contact.Note{
		ID:              noteID,
		OwnerID:         ownerID,
		Content:         in.Content,
		ContextLabel:    in.ContextLabel,
		EntryDate:       *in.EntryDate,
		ActionText:      in.ActionText,
		ActionDueDate:   in.ActionDueDate,
		ActionCompleted: in.ActionCompleted,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return contact.Note{}, ErrNoteNotFound
		}
		return contact.Note{}, ErrInternal
	}
	return updated, nil
}

func (u *Note) DeleteNote(ctx context.Context, ownerID uuid.UUID, noteID uuid.UUID) error {
	if noteID == uuid.Nil {
		return ErrInvalidInput
	}
	if _, err := u.notes.Delete(ctx, ownerID, noteID); err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		return ErrInternal
	}
	return nil
}

func normalizeNoteInput(in NoteInput) (NoteInput, error) {
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return in, ErrInvalidInput
	}
	in.ContextLabel = strings.TrimSpace(in.ContextLabel)
	in.ActionText = strings.TrimSpace(in.ActionText)
	return in, nil
}
