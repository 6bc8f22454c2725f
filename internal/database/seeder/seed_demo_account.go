package seeder

import (
	"context"
	"fmt"

	"github.com/postmodernjester/rolodex/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoEmail    = "demo@rolodex.local"
	demoPassword = "rolodex-demo"
)

var demoProfileID = uuid.MustParse("d0000000-0000-4000-8000-000000000001")

// DemoAccountSeeder creates the demo login (demo@rolodex.local / rolodex-demo)
// with a filled-in profile so a fresh environment has something to show.
type DemoAccountSeeder struct{}

func (DemoAccountSeeder) Name() string { return "demo_account" }

func (DemoAccountSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "created_at"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "profiles", "id", "user_id", "full_name", "headline", "skills", "key_links"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO users (id, email, password_hash) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (email) DO NOTHING`,
		demoEmail,
		string(hash),
	); err != nil {
		return err
	}

	ownerID, err := demoOwnerID(ctx, tx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO profiles (id, user_id, full_name, headline, bio, location, website, skills, key_links)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO NOTHING`,
		demoProfileID,
		ownerID,
		"Demo Owner",
		"Keeps in touch so you don't have to",
		"Sample account for exploring the API.",
		"Jakarta",
		"https://rolodex.local",
		[]string{"Networking", "Writing"},
		`[{"label":"GitHub","url":"https://github.com/rolodex-demo","visible":true}]`,
	); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// demoOwnerID resolves the demo user's actual row id. The email conflict
// keeps whatever row was there first, so the id cannot be assumed.
func demoOwnerID(ctx context.Context, tx database.Tx) (uuid.UUID, error) {
	var id uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, demoEmail).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("demo user lookup: %w", err)
	}
	return id, nil
}
