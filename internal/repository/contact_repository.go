package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/postmodernjester/rolodex/internal/database"
	"github.com/postmodernjester/rolodex/internal/domain/contact"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrContactNotFound = errors.New("contact not found")

const contactColumns = `id, owner_id, full_name, email, phone, company, role, location,
	relationship_type, how_we_met, follow_up_status, last_contact_date, next_action_date,
	next_action_note, ai_summary, mini_summary, linked_profile_id, created_at, updated_at`

type ContactListFilter struct {
	Status string
	Query  string
	Limit  int
	Offset int
}

type ContactRepository interface {
	Create(ctx context.Context, c contact.Contact) (contact.Contact, error)
	GetByID(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (contact.Contact, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, f ContactListFilter) ([]contact.Contact, error)
	Update(ctx context.Context, c contact.Contact) (contact.Contact, error)
	Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error
	SetLinkedProfile(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, profileID *uuid.UUID) error
	UpdateSummary(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, summary string, mini string) error
}

type PostgresContactRepository struct {
	db database.DB
}

func NewPostgresContactRepository(db database.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(s scanner) (contact.Contact, error) {
	var c contact.Contact
	err := s.Scan(
		&c.ID, &c.OwnerID, &c.FullName, &c.Email, &c.Phone, &c.Company, &c.Role, &c.Location,
		&c.RelationshipType, &c.HowWeMet, &c.FollowUpStatus, &c.LastContactDate, &c.NextActionDate,
		&c.NextActionNote, &c.AISummary, &c.MiniSummary, &c.LinkedProfileID, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *PostgresContactRepository) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO contacts (id, owner_id, full_name, email, phone, company, role, location,
			relationship_type, how_we_met, follow_up_status, last_contact_date, next_action_date, next_action_note)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		c.ID, c.OwnerID, c.FullName, c.Email, c.Phone, c.Company, c.Role, c.Location,
		c.RelationshipType, c.HowWeMet, c.FollowUpStatus, c.LastContactDate, c.NextActionDate, c.NextActionNote,
	)
	if err != nil {
		return contact.Contact{}, err
	}
	return r.GetByID(ctx, c.OwnerID, c.ID)
}

func (r *PostgresContactRepository) GetByID(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (contact.Contact, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)

	c, err := scanContact(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return contact.Contact{}, ErrContactNotFound
		}
		return contact.Contact{}, err
	}
	return c, nil
}

func (r *PostgresContactRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, f ContactListFilter) ([]contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1`
	args := []any{ownerID}

	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND follow_up_status = $%d", len(args))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (full_name ILIKE $%d OR company ILIKE $%d OR email ILIKE $%d)", n, n, n)
	}
	query += ` ORDER BY updated_at DESC`

	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]contact.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresContactRepository) Update(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE contacts
		 SET full_name = $1, email = $2, phone = $3, company = $4, role = $5, location = $6,
			relationship_type = $7, how_we_met = $8, follow_up_status = $9,
			last_contact_date = $10, next_action_date = $11, next_action_note = $12,
			updated_at = now()
		 WHERE id = $13 AND owner_id = $14`,
		c.FullName, c.Email, c.Phone, c.Company, c.Role, c.Location,
		c.RelationshipType, c.HowWeMet, c.FollowUpStatus,
		c.LastContactDate, c.NextActionDate, c.NextActionNote,
		c.ID, c.OwnerID,
	)
	if err != nil {
		return contact.Contact{}, err
	}
	if rowsAffected == 0 {
		return contact.Contact{}, ErrContactNotFound
	}
	return r.GetByID(ctx, c.OwnerID, c.ID)
}

func (r *PostgresContactRepository) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM contacts WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *PostgresContactRepository) SetLinkedProfile(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, profileID *uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE contacts SET linked_profile_id = $1, updated_at = now() WHERE id = $2 AND owner_id = $3`,
		profileID, id, ownerID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// UpdateSummary writes the generated summary fields. Payload variants
// are tried most-complete first so a schema still missing mini_summary
// keeps accepting the long summary on its own.
func (r *PostgresContactRepository) UpdateSummary(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, summary string, mini string) error {
	variants := []struct {
		query string
		args  []any
	}{
		{
			query: `UPDATE contacts SET ai_summary = $1, mini_summary = $2, updated_at = now() WHERE id = $3 AND owner_id = $4`,
			args:  []any{summary, mini, id, ownerID},
		},
		{
			query: `UPDATE contacts SET ai_summary = $1, updated_at = now() WHERE id = $2 AND owner_id = $3`,
			args:  []any{summary, id, ownerID},
		},
	}

	var lastErr error
	for _, v := range variants {
		rowsAffected, err := r.db.Exec(ctx, v.query, v.args...)
		if err != nil {
			if isUndefinedColumn(err) {
				lastErr = err
				continue
			}
			return err
		}
		if rowsAffected == 0 {
			return ErrContactNotFound
		}
		return nil
	}
	return lastErr
}

func isUndefinedColumn(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42703"
	}
	return false
}
