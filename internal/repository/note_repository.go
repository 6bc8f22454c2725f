package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/postmodernjester/rolodex/internal/database"
	"github.com/postmodernjester/rolodex/internal/domain/contact"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNoteNotFound = errors.New("note not found")

const noteColumns = `id, contact_id, owner_id, content, context_label, entry_date,
	action_text, action_due_date, action_completed, created_at, updated_at`

type NoteRepository interface {
	ListByContact(ctx context.Context, ownerID uuid.UUID, contactID uuid.UUID) ([]contact.Note, error)
	Create(ctx context.Context, n contact.Note) (contact.Note, error)
	Update(ctx context.Context, n contact.Note) (contact.Note, error)
	Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (uuid.UUID, error)
}

type PostgresNoteRepository struct {
	db database.DB
}

func NewPostgresNoteRepository(db database.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{db: db}
}

func scanNote(s scanner) (contact.Note, error) {
	var n contact.Note
	err := s.Scan(
		&n.ID, &n.ContactID, &n.OwnerID, &n.Content, &n.ContextLabel, &n.EntryDate,
		&n.ActionText, &n.ActionDueDate, &n.ActionCompleted, &n.CreatedAt, &n.UpdatedAt,
	)
	return n, err
}

func (r *PostgresNoteRepository) ListByContact(ctx context.Context, ownerID uuid.UUID, contactID uuid.UUID) ([]contact.Note, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+noteColumns+`
		 FROM contact_notes
		 WHERE contact_id = $1 AND owner_id = $2
		 ORDER BY entry_date DESC, created_at ASC, id ASC`,
		contactID, ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]contact.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts the note and touches the parent contact's updated_at
// in one transaction, so recency-sorted contact lists reflect note
// activity. The touch doubles as the ownership check: zero rows means
// the contact is not the caller's.
func (r *PostgresNoteRepository) Create(ctx context.Context, n contact.Note) (contact.Note, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return contact.Note{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	touched, err := tx.Exec(ctx,
		`UPDATE contacts SET updated_at = now() WHERE id = $1 AND owner_id = $2`,
		n.ContactID, n.OwnerID,
	)
	if err != nil {
		return contact.Note{}, err
	}
	if touched == 0 {
		return contact.Note{}, ErrContactNotFound
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO contact_notes (id, contact_id, owner_id, content, context_label, entry_date,
			action_text, action_due_date, action_completed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, n.ContactID, n.OwnerID, n.Content, n.ContextLabel, n.EntryDate,
		n.ActionText, n.ActionDueDate, n.ActionCompleted,
	)
	if err != nil {
		return contact.Note{}, err
	}

	row := tx.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM contact_notes WHERE id = $1`,
		n.ID,
	)
	created, err := scanNote(row)
	if err != nil {
		return contact.Note{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return contact.Note{}, err
	}
	return created, nil
}

func (r *PostgresNoteRepository) Update(ctx context.Context, n contact.Note) (contact.Note, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return contact.Note{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	rowsAffected, err := tx.Exec(ctx,
		`UPDATE contact_notes
		 SET content = $1, context_label = $2, entry_date = $3,
			action_text = $4, action_due_date = $5, action_completed = $6,
			updated_at = now()
		 WHERE id = $7 AND owner_id = $8`,
		n.Content, n.ContextLabel, n.EntryDate,
		n.ActionText, n.ActionDueDate, n.ActionCompleted,
		n.ID, n.OwnerID,
	)
	if err != nil {
		return contact.Note{}, err
	}
	if rowsAffected == 0 {
		return contact.Note{}, ErrNoteNotFound
	}

	row := tx.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM contact_notes WHERE id = $1`,
		n.ID,
	)
	updated, err := scanNote(row)
	if err != nil {
		return contact.Note{}, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE contacts SET updated_at = now() WHERE id = $1 AND owner_id = $2`,
		updated.ContactID, n.OwnerID,
	)
	if err != nil {
		return contact.Note{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return contact.Note{}, err
	}
	return updated, nil
}

// Delete removes the note and returns the parent contact id so callers
// can invalidate anything keyed by contact.
func (r *PostgresNoteRepository) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (uuid.UUID, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var contactID uuid.UUID
	row := tx.QueryRow(ctx,
		`SELECT contact_id FROM contact_notes WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err := row.Scan(&contactID); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrNoteNotFound
		}
		return uuid.Nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM contact_notes WHERE id = $1`, id); err != nil {
		return uuid.Nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE contacts SET updated_at = now() WHERE id = $1 AND owner_id = $2`,
		contactID, ownerID,
	)
	if err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, err
	}
	return contactID, nil
}
