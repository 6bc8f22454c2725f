package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/postmodernjester/rolodex/internal/domain/contact"
	"github.com/postmodernjester/rolodex/internal/repository"

	"github.com/google/uuid"
)

func TestNoteUsecase_ListNotes_ForeignContactNotFound(t *testing.T) {
	owner := uuid.New()
	ct := contact.Contact{ID: uuid.New(), OwnerID: owner}
	notes := &mockNoteRepo{notes: []contact.Note{{ID: uuid.New()}}}
	uc := NewNoteUsecase(notes, &mockContactRepo{contact: ct})

	_, err := uc.ListNotes(context.Background(), uuid.New(), ct.ID)
	if !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound for foreign owner, got %v", err)
	}
}

func TestNoteUsecase_ListNotes_ReturnsRowsForOwner(t *testing.T) {
	owner := uuid.New()
	ct := contact.Contact{ID: uuid.New(), OwnerID: owner}
	want := []contact.Note{{ID: uuid.New(), Content: "first"}, {ID: uuid.New(), Content: "second"}}
	uc := NewNoteUsecase(&mockNoteRepo{notes: want}, &mockContactRepo{contact: ct})

	got, err := uc.ListNotes(context.Background(), owner, ct.ID)
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if len(got) != 2 || got[0].Content != "first" {
		t.Fatalf("expected repository rows back, got %+v", got)
	}
}

func TestNoteUsecase_AddNote_DefaultsEntryDate(t *testing.T) {
	owner := uuid.New()
	contactID := uuid.New()
	notes := &mockNoteRepo{}
	uc := NewNoteUsecase(notes, &mockContactRepo{})

	before := time.Now()
	created, err := uc.AddNote(context.Background(), owner, contactID, NoteInput{Content: "  coffee chat  "})
	if err != nil {
		t.Fatalf("expected add to succeed, got %v", err)
	}

	if created.Content != "coffee chat" {
		t.Fatalf("expected trimmed content, got %q", created.Content)
	}
	if created.EntryDate.Before(before) || created.EntryDate.After(time.Now()) {
		t.Fatalf("expected entry date to default to now, got %v", created.EntryDate)
	}
	if len(notes.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(notes.created))
	}
	if notes.created[0].OwnerID != owner || notes.created[0].ContactID != contactID {
		t.Fatalf("expected note scoped to owner and contact, got %+v", notes.created[0])
	}
}

func TestNoteUsecase_AddNote_RequiresContent(t *testing.T) {
	notes := &mockNoteRepo{}
	uc := NewNoteUsecase(notes, &mockContactRepo{})

	_, err := uc.AddNote(context.Background(), uuid.New(), uuid.New(), NoteInput{Content: "   "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(notes.created) != 0 {
		t.Fatalf("expected no create call, got %d", len(notes.created))
	}
}

func TestNoteUsecase_AddNote_ForeignContactNotFound(t *testing.T) {
	notes := &mockNoteRepo{createErr: repository.ErrContactNotFound}
	uc := NewNoteUsecase(notes, &mockContactRepo{})

	_, err := uc.AddNote(context.Background(), uuid.New(), uuid.New(), NoteInput{Content: "hi"})
	if !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestNoteUsecase_UpdateNote_RequiresEntryDate(t *testing.T) {
	uc := NewNoteUsecase(&mockNoteRepo{}, &mockContactRepo{})

	_, err := uc.UpdateNote(context.Background(), uuid.New(), uuid.New(), NoteInput{Content: "hi"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without entry date, got %v", err)
	}
}

func TestNoteUsecase_UpdateNote_NotFound(t *testing.T) {
	entry := time.Now()
	uc := NewNoteUsecase(&mockNoteRepo{updateErr: repository.ErrNoteNotFound}, &mockContactRepo{})

	_, err := uc.UpdateNote(context.Background(), uuid.New(), uuid.New(), NoteInput{Content: "hi", EntryDate: &entry})
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteUsecase_DeleteNote_NotFound(t *testing.T) {
	uc := NewNoteUsecase(&mockNoteRepo{deleteErr: repository.ErrNoteNotFound}, &mockContactRepo{})

	err := uc.DeleteNote(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}
