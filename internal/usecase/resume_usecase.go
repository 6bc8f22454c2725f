package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/postmodernjester/rolodex/internal/domain/profile"
	"github.com/postmodernjester/rolodex/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrResumeEntryNotFound  = errors.New("resume entry not found")
	ErrInvalidChronicleKind = errors.New("invalid chronicle kind")
)

type WorkInput struct {
	Company   string
	Title     string
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
	IsCurrent bool
	Summary   string
	Position  int
}

type EducationInput struct {
	School    string
	Degree    string
	Field     string
	StartYear *int
	EndYear   *int
	Note      string
}

type ChronicleInput struct {
	Title        string
	Kind         string
	HappenedOn   *time.Time
	Description  string
	LinkURL      string
	ShowOnResume bool
}

type ResumeUsecase interface {
	ListWork(ctx context.Context, userID uuid.UUID) ([]profile.WorkEntry, error)
	AddWork(ctx context.Context, userID uuid.UUID, in WorkInput) (profile.WorkEntry, error)
	UpdateWork(ctx context.Context, userID uuid.UUID, entryID uuid.UUID, in WorkInput) (profile.WorkEntry, error)
	DeleteWork(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) error

	ListEducation(ctx context.Context, userID uuid.UUID) ([]profile.EducationEntry, error)
	AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (profile.EducationEntry, error)
	UpdateEducation(ctx context.Context, userID uuid.UUID, entryID uuid.UUID, in EducationInput) (profile.EducationEntry, error)
	DeleteEducation(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) error

	ListChronicle(ctx context.Context, userID uuid.UUID) ([]profile.ChronicleEntry, error)
	AddChronicle(ctx context.Context, userID uuid.UUID, in ChronicleInput) (profile.ChronicleEntry, error)
	UpdateChronicle(ctx context.Context, userID uuid.UUID, entryID uuid.UUID, in ChronicleInput) (profile.ChronicleEntry, error)
	DeleteChronicle(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) error
}

type Resume struct {
	profiles repository.ProfileRepository
	resume   repository.ResumeRepository
}

func NewResumeUsecase(profiles repository.ProfileRepository, resume repository.ResumeRepository) *Resume {
	return &Resume{profiles: profiles, resume: resume}
}

// profileIDFor resolves the caller's profile. Resume entries hang off the
// profile row, so the profile must be saved before any entry exists.
func (u *Resume) profileIDFor(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return uuid.Nil, ErrProfileNotFound
		}
		return uuid.Nil, ErrInternal
	}
	return p.ID, nil
}

func (u *Resume) ListWork(ctx context.Context, userID uuid.UUID) ([]profile.WorkEntry, error) {
	profileID, err := u.profileIDFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	out, err := u.resume.ListWork(ctx, profileID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Resume) AddWork(ctx context.Context, userID uuid.UUID, in WorkInput) (profile.WorkEntry, error) {
	profileID, err := u.profileIDFor(ctx, userID)
	if err != nil {
		return profile.WorkEntry{}, err
	}
	in, err = normalizeWorkInput(in)
	if err != nil {
		return profile.WorkEntry{}, err
	}

	created, err := u.resume.CreateWork(ctx, profile.WorkEntry{
		ID:        uuid.New(),
		ProfileID: profileID,
		Company:   in.Company,
		Title:     in.Title,
		Location:  in.Location,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		IsCurrent: in.IsCurrent,
		Summary:   in.Summary,
		Position:  in.Position,
	})
	if err != nil {
		return profile.WorkEntry{}, ErrInternal
	}
	return created, nil
}

func (u *Resume) UpdateWork(ctx context.Context, userID uuid.UUID, entryID uuid.UUID, in WorkInput) (profile.WorkEntry, error) {
	if entryID == uuid.Nil {
		return profile.WorkEntry{}, ErrInvalidInput
	}
	profileID, err := u.profileIDFor(ctx, userID)
	if err != nil {
		return profile.WorkEntry{}, err
	}
	in, err = normalizeWorkInput(in)
	if err != nil {
		return profile.WorkEntry{}, err
	}

	updated, err := u.resume.UpdateWork(ctx, profile.WorkEntry{
		ID:        entryID,
		ProfileID: profileID,
		Company:   in.Company,
		Title:     in.Title,
		Location:  in.Location,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		IsCurrent: in.IsCurrent,
		Summary:   in.Summary,
		Position:  in.Position,
	})
	if err != nil {
		if errors.Is(err, repository.ErrResumeEntryNotFound) {
			return profile.WorkEntry{}, ErrResumeEntryNotFound
		}
		return profile.WorkEntry{}, ErrInternal
	}
	return updated, nil
}

func (u *Resume) DeleteWork(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) error {
	if entryID == uuid.Nil {
		return ErrInvalidInput
	}
	profileID, err := u.profileIDFor(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.resume.DeleteWork(ctx, profileID, entryID); err != nil {
		if errors.Is(err, repository.ErrResumeEntryNotFound) {
			return ErrResumeEntryNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Resume) ListEducation(ctx context.Context, userID uuid.UUID) ([]profile.EducationEntry, error) {
	profileID, err := u.profileIDFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	out, err := u.resume.ListEducation(ctx, profileID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Resume) AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (profile.EducationEntry, error) {
	profileID, err := u.profileIDFor(ctx, userID)
	if err != nil {
		return profile.EducationEntry{}, err
	}
	in, err = normalizeEducationInput(in)
	if err != nil {
		return profile.EducationEntry{}, err
	}

	created, err := u.resume.CreateEducation(ctx, profile.EducationEntry{
		ID:        uuid.New(),
		ProfileID: profileID,
		School:    in.School,
		Degree:    in.Degree,
		Field:     in.Field,
		StartYear: in.StartYear,
		EndYear:   in.EndYear,
		Note:      in.Note,
	})
	if err != nil {
		return profile.EducationEntry{}, ErrInternal
	}
	return created, nil
}

func (u *Resume) UpdateEducation(ctx context.Context, userID uuid.UUID, entryID uuid.UUID, in EducationInput) (profile.EducationEntry, error) {
	if entryID == uuid.Nil {
		return profile.EducationEntry{}, ErrInvalidInput
	}
	profileID, err := u.profileIDFor(ctx, userID)
	if err != nil {
		return profile.EducationEntry{}, err
	}
	in, err = normalizeEducationInput(in)
	if err != nil {
		return profile.EducationEntry{}, err
	}

	updated, err := u.resume.UpdateEducation(ctx, profile.EducationEntry{
		ID:        entryID,
		ProfileID: profileID,
		School:    in.School,
		Degree:    in.Degree,
		Field:     in.Field,
		StartYear: in.StartYear,
		EndYear:   in.EndYear,
		Note:      in.Note,
	})
	if err != nil {
		if errors.Is(err, repository.ErrResumeEntryNotFound) {
			return profile.EducationEntry{}, ErrResumeEntryNotFound
		}
		return profile.EducationEntry{}, ErrInternal
	}
	return updated, nil
}

func (u *Resume) DeleteEducation(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) error {
	if entryID == uuid.Nil {
		return ErrInvalidInput
	}
	profileID, err := u.profileIDFor(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.resume.DeleteEducation(ctx, profileID, entryID); err != nil {
		if errors.Is(err, repository.ErrResumeEntryNotFound) {
			return ErrResumeEntryNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Resume) ListChronicle(ctx context.Context, userID uuid.UUID) ([]profile.ChronicleEntry, error) {
	profileID, err := u.profileIDFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	out, err := u.resume.ListChronicle(ctx, profileID, false)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Resume) AddChronicle(ctx context.Context, userID uuid.UUID, in ChronicleInput) (profile.ChronicleEntry, error) {
	profileID, err := u.profileIDFor(ctx, userID)
	if err != nil {
		return profile.ChronicleEntry{}, err
	}
	in, err = normalizeChronicleInput(in)
	if err != nil {
		return profile.ChronicleEntry{}, err
	}

	created, err := u.resume.CreateChronicle(ctx, profile.ChronicleEntry{
		ID:           uuid.New(),
		ProfileID:    profileID,
		Title:        in.Title,
		Kind:         in.Kind,
		HappenedOn:   in.HappenedOn,
		Description:  in.Description,
		LinkURL:      in.LinkURL,
		ShowOnResume: in.ShowOnResume,
	})
	if err != nil {
		return profile.ChronicleEntry{}, ErrInternal
	}
	return created, nil
}

func (u *Resume) UpdateChronicle(ctx context.Context, userID uuid.UUID, entryID uuid.UUID, in ChronicleInput) (profile.ChronicleEntry, error) {
	if entryID == uuid.Nil {
		return profile.ChronicleEntry{}, ErrInvalidInput
	}
	profileID, err := u.profileIDFor(ctx, userID)
	if err != nil {
		return profile.ChronicleEntry{}, err
	}
	in, err = normalizeChronicleInput(in)
	if err != nil {
		return profile.ChronicleEntry{}, err
	}

	updated, err := u.resume.UpdateChronicle(ctx, profile.ChronicleEntry{
		ID:           entryID,
		ProfileID:    profileID,
		Title:        in.Title,
		Kind:         in.Kind,
		HappenedOn:   in.HappenedOn,
		Description:  in.Description,
		LinkURL:      in.LinkURL,
		ShowOnResume: in.ShowOnResume,
	})
	if err != nil {
		if errors.Is(err, repository.ErrResumeEntryNotFound) {
			return profile.ChronicleEntry{}, ErrResumeEntryNotFound
		}
		return profile.ChronicleEntry{}, ErrInternal
	}
	return updated, nil
}

func (u *Resume) DeleteChronicle(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) error {
	if entryID == uuid.Nil {
		return ErrInvalidInput
	}
	profileID, err := u.profileIDFor(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.resume.DeleteChronicle(ctx, profileID, entryID); err != nil {
		if errors.Is(err, repository.ErrResumeEntryNotFound) {
			return ErrResumeEntryNotFound
		}
		return ErrInternal
	}
	return nil
}

func normalizeWorkInput(in WorkInput) (WorkInput, error) {
	in.Company = strings.TrimSpace(in.Company)
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	in.Summary = strings.TrimSpace(in.Summary)
	if in.Company == "" || in.Title == "" {
		return in, ErrInvalidInput
	}
	if in.IsCurrent {
		in.EndDate = nil
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return in, ErrInvalidInput
	}
	if in.Position < 0 {
		in.Position = 0
	}
	return in, nil
}

func normalizeEducationInput(in EducationInput) (EducationInput, error) {
	in.School = strings.TrimSpace(in.School)
	in.Degree = strings.TrimSpace(in.Degree)
	in.Field = strings.TrimSpace(in.Field)
	in.Note = strings.TrimSpace(in.Note)
	if in.School == "" {
		return in, ErrInvalidInput
	}
	if in.StartYear != nil && in.EndYear != nil && *in.EndYear < *in.StartYear {
		return in, ErrInvalidInput
	}
	return in, nil
}

func normalizeChronicleInput(in ChronicleInput) (ChronicleInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, ErrInvalidInput
	}
	in.Description = strings.TrimSpace(in.Description)
	in.LinkURL = strings.TrimSpace(in.LinkURL)

	in.Kind = strings.ToLower(strings.TrimSpace(in.Kind))
	if in.Kind == "" {
		in.Kind = profile.ChronicleKindOther
	}
	if !isValidChronicleKind(in.Kind) {
		return in, ErrInvalidChronicleKind
	}
	return in, nil
}

func isValidChronicleKind(s string) bool {
	switch s {
	case profile.ChronicleKindMilestone, profile.ChronicleKindProject, profile.ChronicleKindTalk,
		profile.ChronicleKindPublication, profile.ChronicleKindAward, profile.ChronicleKindOther:
		return true
	}
	return false
}
