package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/postmodernjester/rolodex/internal/database"
	"github.com/postmodernjester/rolodex/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProfileNotFound = errors.New("profile not found")

const profileColumns = `id, user_id, full_name, headline, bio, location, website,
	avatar_url, skills, key_links, created_at, updated_at`

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	LookupByEmail(ctx context.Context, email string) (profile.Profile, error)
	Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func scanProfile(s scanner) (profile.Profile, error) {
	var p profile.Profile
	var rawLinks []byte
	err := s.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Headline, &p.Bio, &p.Location,
		&p.Website, &p.AvatarURL, &p.Skills, &rawLinks, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return profile.Profile{}, err
	}
	if len(rawLinks) > 0 {
		if err := json.Unmarshal(rawLinks, &p.KeyLinks); err != nil {
			return profile.Profile{}, err
		}
	}
	return p, nil
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`,
		id,
	)

	p, err := scanProfile(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`,
		userID,
	)

	p, err := scanProfile(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) LookupByEmail(ctx context.Context, email string) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT p.id, p.user_id, p.full_name, p.headline, p.bio, p.location, p.website,
			p.avatar_url, p.skills, p.key_links, p.created_at, p.updated_at
		 FROM profiles p
		 JOIN users u ON u.id = p.user_id
		 WHERE u.email = $1`,
		email,
	)

	p, err := scanProfile(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	links := p.KeyLinks
	if links == nil {
		links = []profile.KeyLink{}
	}
	rawLinks, err := json.Marshal(links)
	if err != nil {
		return profile.Profile{}, err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO profiles (id, user_id, full_name, headline, bio, location, website, avatar_url, skills, key_links)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (user_id) DO UPDATE
		 SET full_name = EXCLUDED.full_name, headline = EXCLUDED.headline, bio = EXCLUDED.bio,
			location = EXCLUDED.location, website = EXCLUDED.website, avatar_url = EXCLUDED.avatar_url,
			skills = EXCLUDED.skills, key_links = EXCLUDED.key_links, updated_at = now()`,
		p.ID, p.UserID, p.FullName, p.Headline, p.Bio, p.Location, p.Website, p.AvatarURL, skills, rawLinks,
	)
	if err != nil {
		return profile.Profile{}, err
	}
	return r.GetByUserID(ctx, p.UserID)
}
