package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/postmodernjester/rolodex/internal/database"

	"github.com/google/uuid"
)

// DemoContactsSeeder fills the demo account's rolodex with a few contacts in
// different follow-up states, each with a note or two. Fixed ids keep reruns
// from duplicating rows.
type DemoContactsSeeder struct{}

func (DemoContactsSeeder) Name() string { return "demo_contacts" }

type demoContact struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	Company        string
	Role           string
	HowWeMet       string
	FollowUpStatus string
	Notes          []demoNote
}

type demoNote struct {
	ID           uuid.UUID
	Content      string
	ContextLabel string
	DaysAgo      int
	ActionText   string
	ActionInDays int
}

func demoContacts() []demoContact {
	return []demoContact{
		{
			ID:             uuid.MustParse("c0000000-0000-4000-8000-000000000001"),
			FullName:       "Maya Santoso",
			Email:          "maya@example.com",
			Company:        "Northwind Labs",
			Role:           "Engineering manager",
			HowWeMet:       "GopherCon hallway track",
			FollowUpStatus: "pending",
			Notes: []demoNote{
				{
					ID:           uuid.MustParse("a0000000-0000-4000-8000-000000000001"),
					Content:      "Talked about their migration off a monolith. Offered to share our runbook.",
					ContextLabel: "conference",
					DaysAgo:      12,
					ActionText:   "Send the migration runbook",
					ActionInDays: 2,
				},
				{
					ID:           uuid.MustParse("a0000000-0000-4000-8000-000000000002"),
					Content:      "Followed up over coffee, they are hiring two backend roles.",
					ContextLabel: "coffee",
					DaysAgo:      4,
				},
			},
		},
		{
			ID:             uuid.MustParse("c0000000-0000-4000-8000-000000000002"),
			FullName:       "Jonas Wirth",
			Email:          "jonas@example.com",
			Company:        "Ferrum",
			Role:           "CTO",
			HowWeMet:       "Intro through a former colleague",
			FollowUpStatus: "done",
			Notes: []demoNote{
				{
					ID:           uuid.MustParse("a0000000-0000-4000-8000-000000000003"),
					Content:      "Closed the loop on the consulting question, not a fit right now.",
					ContextLabel: "email",
					DaysAgo:      30,
				},
			},
		},
		{
			ID:             uuid.MustParse("c0000000-0000-4000-8000-000000000003"),
			FullName:       "Priya Nair",
			Email:          "priya@example.com",
			Company:        "Independent",
			Role:           "Technical writer",
			HowWeMet:       "Writers meetup",
			FollowUpStatus: "none",
		},
	}
}

func (DemoContactsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "contacts", "id", "owner_id", "full_name", "follow_up_status", "updated_at"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "contact_notes", "id", "contact_id", "owner_id", "content", "entry_date"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	ownerID, err := demoOwnerID(ctx, tx)
	if err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, c := range demoContacts() {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO contacts (id, owner_id, full_name, email, company, role, how_we_met, follow_up_status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (id) DO NOTHING`,
			c.ID, ownerID, c.FullName, c.Email, c.Company, c.Role, c.HowWeMet, c.FollowUpStatus,
		); err != nil {
			return err
		}

		for _, n := range c.Notes {
			entryDate := today.AddDate(0, 0, -n.DaysAgo)
			var actionDue *time.Time
			if n.ActionText != "" {
				due := today.AddDate(0, 0, n.ActionInDays)
				actionDue = &due
			}
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO contact_notes (id, contact_id, owner_id, content, context_label, entry_date, action_text, action_due_date)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				 ON CONFLICT (id) DO NOTHING`,
				n.ID, c.ID, ownerID, n.Content, n.ContextLabel, entryDate, n.ActionText, actionDue,
			); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
