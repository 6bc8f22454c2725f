package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/postmodernjester/rolodex/internal/domain/profile"
	"github.com/postmodernjester/rolodex/internal/repository"

	"github.com/google/uuid"
)

func savedProfileFor(userID uuid.UUID) profile.Profile {
	return profile.Profile{ID: uuid.New(), UserID: userID, FullName: "Ada Deane"}
}

func TestResumeUsecase_AddWork_RequiresSavedProfile(t *testing.T) {
	resume := &mockResumeRepo{}
	uc := NewResumeUsecase(&mockProfileRepo{}, resume)

	_, err := uc.AddWork(context.Background(), uuid.New(), WorkInput{Company: "Acme", Title: "Engineer"})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound before the profile is saved, got %v", err)
	}
	if len(resume.createdWork) != 0 {
		t.Fatalf("expected no entry created without a profile")
	}
}

func TestResumeUsecase_AddWork_StampsOwnProfileID(t *testing.T) {
	userID := uuid.New()
	p := savedProfileFor(userID)
	resume := &mockResumeRepo{}
	uc := NewResumeUsecase(&mockProfileRepo{byUser: p}, resume)

	created, err := uc.AddWork(context.Background(), userID, WorkInput{Company: " Acme ", Title: " Engineer "})
	if err != nil {
		t.Fatalf("add work failed: %v", err)
	}
	if created.ProfileID != p.ID {
		t.Fatalf("expected entry bound to caller's profile, got %s", created.ProfileID)
	}
	if created.Company != "Acme" || created.Title != "Engineer" {
		t.Fatalf("expected trimmed fields, got %q %q", created.Company, created.Title)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected a generated entry id")
	}
}

func TestResumeUsecase_AddWork_CurrentRoleDropsEndDate(t *testing.T) {
	userID := uuid.New()
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	uc := NewResumeUsecase(&mockProfileRepo{byUser: savedProfileFor(userID)}, &mockResumeRepo{})

	created, err := uc.AddWork(context.Background(), userID, WorkInput{
		Company:   "Acme",
		Title:     "Engineer",
		EndDate:   &end,
		IsCurrent: true,
	})
	if err != nil {
		t.Fatalf("add work failed: %v", err)
	}
	if created.EndDate != nil {
		t.Fatalf("expected end date cleared for a current role, got %v", created.EndDate)
	}
	if !created.IsCurrent {
		t.Fatalf("expected is_current preserved")
	}
}

func TestResumeUsecase_AddWork_RejectsEndBeforeStart(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(-1, 0, 0)
	resume := &mockResumeRepo{}
	uc := NewResumeUsecase(&mockProfileRepo{byUser: savedProfileFor(userID)}, resume)

	_, err := uc.AddWork(context.Background(), userID, WorkInput{
		Company:   "Acme",
		Title:     "Engineer",
		StartDate: &start,
		EndDate:   &end,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(resume.createdWork) != 0 {
		t.Fatalf("expected no entry created on invalid range")
	}
}

func TestResumeUsecase_UpdateWork_NotFound(t *testing.T) {
	userID := uuid.New()
	resume := &mockResumeRepo{writeErr: repository.ErrResumeEntryNotFound}
	uc := NewResumeUsecase(&mockProfileRepo{byUser: savedProfileFor(userID)}, resume)

	_, err := uc.UpdateWork(context.Background(), userID, uuid.New(), WorkInput{Company: "Acme", Title: "Engineer"})
	if !errors.Is(err, ErrResumeEntryNotFound) {
		t.Fatalf("expected ErrResumeEntryNotFound, got %v", err)
	}
}

func TestResumeUsecase_AddEducation_RejectsReversedYears(t *testing.T) {
	userID := uuid.New()
	start, end := 2020, 2018
	resume := &mockResumeRepo{}
	uc := NewResumeUsecase(&mockProfileRepo{byUser: savedProfileFor(userID)}, resume)

	_, err := uc.AddEducation(context.Background(), userID, EducationInput{
		School:    "State",
		StartYear: &start,
		EndYear:   &end,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(resume.createdEducation) != 0 {
		t.Fatalf("expected no education entry created")
	}
}

func TestResumeUsecase_DeleteEducation_NotFound(t *testing.T) {
	userID := uuid.New()
	resume := &mockResumeRepo{writeErr: repository.ErrResumeEntryNotFound}
	uc := NewResumeUsecase(&mockProfileRepo{byUser: savedProfileFor(userID)}, resume)

	err := uc.DeleteEducation(context.Background(), userID, uuid.New())
	if !errors.Is(err, ErrResumeEntryNotFound) {
		t.Fatalf("expected ErrResumeEntryNotFound, got %v", err)
	}
}

func TestResumeUsecase_AddChronicle_DefaultsKindToOther(t *testing.T) {
	userID := uuid.New()
	uc := NewResumeUsecase(&mockProfileRepo{byUser: savedProfileFor(userID)}, &mockResumeRepo{})

	created, err := uc.AddChronicle(context.Background(), userID, ChronicleInput{Title: "Shipped v2"})
	if err != nil {
		t.Fatalf("add chronicle failed: %v", err)
	}
	if created.Kind != profile.ChronicleKindOther {
		t.Fatalf("expected kind defaulted to %q, got %q", profile.ChronicleKindOther, created.Kind)
	}
}

func TestResumeUsecase_AddChronicle_NormalizesKindCase(t *testing.T) {
	userID := uuid.New()
	uc := NewResumeUsecase(&mockProfileRepo{byUser: savedProfileFor(userID)}, &mockResumeRepo{})

	created, err := uc.AddChronicle(context.Background(), userID, ChronicleInput{Title: "GopherCon", Kind: " Talk "})
	if err != nil {
		t.Fatalf("add chronicle failed: %v", err)
	}
	if created.Kind != profile.ChronicleKindTalk {
		t.Fatalf("expected kind normalized to %q, got %q", profile.ChronicleKindTalk, created.Kind)
	}
}

func TestResumeUsecase_AddChronicle_RejectsUnknownKind(t *testing.T) {
	userID := uuid.New()
	resume := &mockResumeRepo{}
	uc := NewResumeUsecase(&mockProfileRepo{byUser: savedProfileFor(userID)}, resume)

	_, err := uc.AddChronicle(context.Background(), userID, ChronicleInput{Title: "Keynote", Kind: "keynote"})
	if !errors.Is(err, ErrInvalidChronicleKind) {
		t.Fatalf("expected ErrInvalidChronicleKind, got %v", err)
	}
	if len(resume.createdChronicle) != 0 {
		t.Fatalf("expected no chronicle entry created")
	}
}

func TestResumeUsecase_DeleteWork_RequiresEntryID(t *testing.T) {
	uc := NewResumeUsecase(&mockProfileRepo{}, &mockResumeRepo{})

	err := uc.DeleteWork(context.Background(), uuid.New(), uuid.Nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a nil entry id, got %v", err)
	}
}
