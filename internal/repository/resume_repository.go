package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/postmodernjester/rolodex/internal/database"
	"github.com/postmodernjester/rolodex/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrResumeEntryNotFound = errors.New("resume entry not found")

func isNoRows(err error) bool {
	return err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows)
}

// ResumeRepository covers the three history tables hanging off a
// profile. All writes are scoped by (id, profile_id) so a caller can
// only touch entries of a profile it already resolved as its own.
type ResumeRepository interface {
	ListWork(ctx context.Context, profileID uuid.UUID) ([]profile.WorkEntry, error)
	CreateWork(ctx context.Context, w profile.WorkEntry) (profile.WorkEntry, error)
	UpdateWork(ctx context.Context, w profile.WorkEntry) (profile.WorkEntry, error)
	DeleteWork(ctx context.Context, profileID uuid.UUID, id uuid.UUID) error

	ListEducation(ctx context.Context, profileID uuid.UUID) ([]profile.EducationEntry, error)
	CreateEducation(ctx context.Context, e profile.EducationEntry) (profile.EducationEntry, error)
	UpdateEducation(ctx context.Context, e profile.EducationEntry) (profile.EducationEntry, error)
	DeleteEducation(ctx context.Context, profileID uuid.UUID, id uuid.UUID) error

	ListChronicle(ctx context.Context, profileID uuid.UUID, resumeOnly bool) ([]profile.ChronicleEntry, error)
	CreateChronicle(ctx context.Context, e profile.ChronicleEntry) (profile.ChronicleEntry, error)
	UpdateChronicle(ctx context.Context, e profile.ChronicleEntry) (profile.ChronicleEntry, error)
	DeleteChronicle(ctx context.Context, profileID uuid.UUID, id uuid.UUID) error
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

const workColumns = `id, profile_id, company, title, location, start_date, end_date,
	is_current, summary, position, created_at, updated_at`

func scanWork(s scanner) (profile.WorkEntry, error) {
	var w profile.WorkEntry
	err := s.Scan(
		&w.ID, &w.ProfileID, &w.Company, &w.Title, &w.Location, &w.StartDate, &w.EndDate,
		&w.IsCurrent, &w.Summary, &w.Position, &w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}

func (r *PostgresResumeRepository) ListWork(ctx context.Context, profileID uuid.UUID) ([]profile.WorkEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+workColumns+`
		 FROM work_entries
		 WHERE profile_id = $1
		 ORDER BY is_current DESC, start_date DESC NULLS LAST, position ASC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.WorkEntry, 0)
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) CreateWork(ctx context.Context, w profile.WorkEntry) (profile.WorkEntry, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO work_entries (id, profile_id, company, title, location, start_date, end_date, is_current, summary, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		w.ID, w.ProfileID, w.Company, w.Title, w.Location, w.StartDate, w.EndDate, w.IsCurrent, w.Summary, w.Position,
	)
	if err != nil {
		return profile.WorkEntry{}, err
	}
	return r.getWork(ctx, w.ProfileID, w.ID)
}

func (r *PostgresResumeRepository) UpdateWork(ctx context.Context, w profile.WorkEntry) (profile.WorkEntry, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE work_entries
		 SET company = $1, title = $2, location = $3, start_date = $4, end_date = $5,
			is_current = $6, summary = $7, position = $8, updated_at = now()
		 WHERE id = $9 AND profile_id = $10`,
		w.Company, w.Title, w.Location, w.StartDate, w.EndDate,
		w.IsCurrent, w.Summary, w.Position,
		w.ID, w.ProfileID,
	)
	if err != nil {
		return profile.WorkEntry{}, err
	}
	if rowsAffected == 0 {
		return profile.WorkEntry{}, ErrResumeEntryNotFound
	}
	return r.getWork(ctx, w.ProfileID, w.ID)
}

func (r *PostgresResumeRepository) DeleteWork(ctx context.Context, profileID uuid.UUID, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM work_entries WHERE id = $1 AND profile_id = $2`,
		id, profileID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrResumeEntryNotFound
	}
	return nil
}

func (r *PostgresResumeRepository) getWork(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (profile.WorkEntry, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+workColumns+` FROM work_entries WHERE id = $1 AND profile_id = $2`,
		id, profileID,
	)
	w, err := scanWork(row)
	if err != nil {
		if isNoRows(err) {
			return profile.WorkEntry{}, ErrResumeEntryNotFound
		}
		return profile.WorkEntry{}, err
	}
	return w, nil
}

const educationColumns = `id, profile_id, school, degree, field, start_year, end_year, note, created_at, updated_at`

func scanEducation(s scanner) (profile.EducationEntry, error) {
	var e profile.EducationEntry
	err := s.Scan(
		&e.ID, &e.ProfileID, &e.School, &e.Degree, &e.Field, &e.StartYear, &e.EndYear,
		&e.Note, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *PostgresResumeRepository) ListEducation(ctx context.Context, profileID uuid.UUID) ([]profile.EducationEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+educationColumns+`
		 FROM education
		 WHERE profile_id = $1
		 ORDER BY COALESCE(end_year, 9999) DESC, COALESCE(start_year, 0) DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.EducationEntry, 0)
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) CreateEducation(ctx context.Context, e profile.EducationEntry) (profile.EducationEntry, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO education (id, profile_id, school, degree, field, start_year, end_year, note)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.ProfileID, e.School, e.Degree, e.Field, e.StartYear, e.EndYear, e.Note,
	)
	if err != nil {
		return profile.EducationEntry{}, err
	}
	return r.getEducation(ctx, e.ProfileID, e.ID)
}

func (r *PostgresResumeRepository) UpdateEducation(ctx context.Context, e profile.EducationEntry) (profile.EducationEntry, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE education
		 SET school = $1, degree = $2, field = $3, start_year = $4, end_year = $5, note = $6, updated_at = now()
		 WHERE id = $7 AND profile_id = $8`,
		e.School, e.Degree, e.Field, e.StartYear, e.EndYear, e.Note,
		e.ID, e.ProfileID,
	)
	if err != nil {
		return profile.EducationEntry{}, err
	}
	if rowsAffected == 0 {
		return profile.EducationEntry{}, ErrResumeEntryNotFound
	}
	return r.getEducation(ctx, e.ProfileID, e.ID)
}

func (r *PostgresResumeRepository) DeleteEducation(ctx context.Context, profileID uuid.UUID, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM education WHERE id = $1 AND profile_id = $2`,
		id, profileID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrResumeEntryNotFound
	}
	return nil
}

func (r *PostgresResumeRepository) getEducation(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (profile.EducationEntry, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+educationColumns+` FROM education WHERE id = $1 AND profile_id = $2`,
		id, profileID,
	)
	e, err := scanEducation(row)
	if err != nil {
		if isNoRows(err) {
			return profile.EducationEntry{}, ErrResumeEntryNotFound
		}
		return profile.EducationEntry{}, err
	}
	return e, nil
}

const chronicleColumns = `id, profile_id, title, kind, happened_on, description, link_url, show_on_resume, created_at, updated_at`

func scanChronicle(s scanner) (profile.ChronicleEntry, error) {
	var e profile.ChronicleEntry
	err := s.Scan(
		&e.ID, &e.ProfileID, &e.Title, &e.Kind, &e.HappenedOn, &e.Description,
		&e.LinkURL, &e.ShowOnResume, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *PostgresResumeRepository) ListChronicle(ctx context.Context, profileID uuid.UUID, resumeOnly bool) ([]profile.ChronicleEntry, error) {
	query := `SELECT ` + chronicleColumns + ` FROM chronicle_entries WHERE profile_id = $1`
	if resumeOnly {
		query += ` AND show_on_resume = TRUE`
	}
	query += ` ORDER BY happened_on DESC NULLS LAST, created_at DESC`

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.ChronicleEntry, 0)
	for rows.Next() {
		e, err := scanChronicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) CreateChronicle(ctx context.Context, e profile.ChronicleEntry) (profile.ChronicleEntry, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO chronicle_entries (id, profile_id, title, kind, happened_on, description, link_url, show_on_resume)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.ProfileID, e.Title, e.Kind, e.HappenedOn, e.Description, e.LinkURL, e.ShowOnResume,
	)
	if err != nil {
		return profile.ChronicleEntry{}, err
	}
	return r.getChronicle(ctx, e.ProfileID, e.ID)
}

func (r *PostgresResumeRepository) UpdateChronicle(ctx context.Context, e profile.ChronicleEntry) (profile.ChronicleEntry, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE chronicle_entries
		 SET title = $1, kind = $2, happened_on = $3, description = $4, link_url = $5,
			show_on_resume = $6, updated_at = now()
		 WHERE id = $7 AND profile_id = $8`,
		e.Title, e.Kind, e.HappenedOn, e.Description, e.LinkURL,
		e.ShowOnResume,
		e.ID, e.ProfileID,
	)
	if err != nil {
		return profile.ChronicleEntry{}, err
	}
	if rowsAffected == 0 {
		return profile.ChronicleEntry{}, ErrResumeEntryNotFound
	}
	return r.getChronicle(ctx, e.ProfileID, e.ID)
}

func (r *PostgresResumeRepository) DeleteChronicle(ctx context.Context, profileID uuid.UUID, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM chronicle_entries WHERE id = $1 AND profile_id = $2`,
		id, profileID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrResumeEntryNotFound
	}
	return nil
}

func (r *PostgresResumeRepository) getChronicle(ctx context.Context, profileID uuid.UUID, id uuid.UUID) (profile.ChronicleEntry, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+chronicleColumns+` FROM chronicle_entries WHERE id = $1 AND profile_id = $2`,
		id, profileID,
	)
	e, err := scanChronicle(row)
	if err != nil {
		if isNoRows(err) {
			return profile.ChronicleEntry{}, ErrResumeEntryNotFound
		}
		return profile.ChronicleEntry{}, err
	}
	return e, nil
}
