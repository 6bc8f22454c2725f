// Package schema verifies at boot that the tables the repositories
// query actually carry the columns they reference, so a half-applied
// migration fails fast instead of surfacing as scattered query errors.
package schema

import (
	"context"
	"fmt"

	"github.com/postmodernjester/rolodex/internal/database"
)

func Verify(ctx context.Context, db database.DB) error {
	checks := []struct {
		table   string
		columns []string
	}{
		{"users", []string{"id", "email", "password_hash", "created_at", "updated_at"}},
		{"contacts", []string{
			"id", "owner_id", "full_name", "email", "phone", "company", "role", "location",
			"relationship_type", "how_we_met", "follow_up_status",
			"last_contact_date", "next_action_date", "next_action_note",
			"ai_summary", "mini_summary", "linked_profile_id", "created_at", "updated_at",
		}},
		{"contact_notes", []string{
			"id", "contact_id", "owner_id", "content", "context_label", "entry_date",
			"action_text", "action_due_date", "action_completed", "created_at", "updated_at",
		}},
		{"profiles", []string{
			"id", "user_id", "full_name", "headline", "bio", "location", "website",
			"avatar_url", "skills", "key_links", "created_at", "updated_at",
		}},
		{"work_entries", []string{
			"id", "profile_id", "company", "title", "location",
			"start_date", "end_date", "is_current", "summary", "position",
		}},
		{"education", []string{"id", "profile_id", "school", "degree", "field", "start_year", "end_year", "note"}},
		{"chronicle_entries", []string{
			"id", "profile_id", "title", "kind", "happened_on", "description", "link_url", "show_on_resume",
		}},
	}

	for _, c := range checks {
		if err := ensureTableColumns(ctx, db, c.table, c.columns...); err != nil {
			return err
		}
	}
	return nil
}

func ensureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column")
		}
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}
