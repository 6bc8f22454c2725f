package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/postmodernjester/rolodex/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type execResult struct {
	rows int64
	err  error
}

type fakeDB struct {
	execQueries  []string
	execResults  []execResult
	queryQueries []string
	rowQueue     []database.Row
	begun        *fakeTx
	beginErr     error
}

func (db *fakeDB) Ping(ctx context.Context) error { return nil }
func (db *fakeDB) Close() error                   { return nil }
func (db *fakeDB) SQLDB() *sql.DB                 { return nil }

func (db *fakeDB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	db.execQueries = append(db.execQueries, query)
	if len(db.execResults) == 0 {
		return 1, nil
	}
	res := db.execResults[0]
	db.execResults = db.execResults[1:]
	return res.rows, res.err
}

func (db *fakeDB) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	db.queryQueries = append(db.queryQueries, query)
	return emptyRows{}, nil
}

func (db *fakeDB) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	if len(db.rowQueue) == 0 {
		return valsRow{err: errors.New("unexpected query row")}
	}
	r := db.rowQueue[0]
	db.rowQueue = db.rowQueue[1:]
	return r
}

func (db *fakeDB) Begin(ctx context.Context) (database.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	t := &fakeTx{db: db}
	db.begun = t
	return t, nil
}

type fakeTx struct {
	db         *fakeDB
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return t.db.Exec(ctx, query, args...)
}

func (t *fakeTx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, query, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.db.QueryRow(ctx, query, args...)
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type emptyRows struct{}

func (emptyRows) Close()                 {}
func (emptyRows) Next() bool             { return false }
func (emptyRows) Scan(dest ...any) error { return errors.New("no rows") }
func (emptyRows) Err() error             { return nil }

type valsRow struct {
	vals []any
	err  error
}

func (r valsRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return fmt.Errorf("scan dest mismatch: want %d, got %d", len(r.vals), len(dest))
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *uuid.UUID:
			val, ok := r.vals[i].(uuid.UUID)
			if !ok {
				return fmt.Errorf("scan type mismatch uuid at %d", i)
			}
			*d = val
		case *string:
			val, ok := r.vals[i].(string)
			if !ok {
				return fmt.Errorf("scan type mismatch string at %d", i)
			}
			*d = val
		case *bool:
			val, ok := r.vals[i].(bool)
			if !ok {
				return fmt.Errorf("scan type mismatch bool at %d", i)
			}
			*d = val
		case *time.Time:
			val, ok := r.vals[i].(time.Time)
			if !ok {
				return fmt.Errorf("scan type mismatch time at %d", i)
			}
			*d = val
		case **time.Time:
			if r.vals[i] == nil {
				*d = nil
				continue
			}
			val, ok := r.vals[i].(time.Time)
			if !ok {
				return fmt.Errorf("scan type mismatch *time at %d", i)
			}
			*d = &val
		case **uuid.UUID:
			if r.vals[i] == nil {
				*d = nil
				continue
			}
			val, ok := r.vals[i].(uuid.UUID)
			if !ok {
				return fmt.Errorf("scan type mismatch *uuid at %d", i)
			}
			*d = &val
		default:
			return fmt.Errorf("unsupported scan type %T at %d", dest[i], i)
		}
	}
	return nil
}

func TestUpdateSummaryFallsBackWhenMiniColumnMissing(t *testing.T) {
	db := &fakeDB{
		execResults: []execResult{
			{rows: 0, err: &pgconn.PgError{Code: "42703"}},
			{rows: 1, err: nil},
		},
	}
	repo := NewPostgresContactRepository(db)

	err := repo.UpdateSummary(context.Background(), uuid.New(), uuid.New(), "long text", "short text")
	if err != nil {
		t.Fatalf("expected fallback variant to succeed, got %v", err)
	}
	if len(db.execQueries) != 2 {
		t.Fatalf("expected 2 update attempts, got %d", len(db.execQueries))
	}
	if !strings.Contains(db.execQueries[0], "mini_summary") {
		t.Fatalf("expected first variant to carry mini_summary, got %q", db.execQueries[0])
	}
	if strings.Contains(db.execQueries[1], "mini_summary") {
		t.Fatalf("expected second variant to drop mini_summary, got %q", db.execQueries[1])
	}
}

func TestUpdateSummaryStopsOnUnrelatedError(t *testing.T) {
	boom := errors.New("connection reset")
	db := &fakeDB{execResults: []execResult{{rows: 0, err: boom}}}
	repo := NewPostgresContactRepository(db)

	err := repo.UpdateSummary(context.Background(), uuid.New(), uuid.New(), "s", "m")
	if !errors.Is(err, boom) {
		t.Fatalf("expected unrelated error to propagate, got %v", err)
	}
	if len(db.execQueries) != 1 {
		t.Fatalf("expected no retry on unrelated error, got %d attempts", len(db.execQueries))
	}
}

func TestUpdateSummaryReportsNotFoundForForeignOwner(t *testing.T) {
	db := &fakeDB{execResults: []execResult{{rows: 0, err: nil}}}
	repo := NewPostgresContactRepository(db)

	err := repo.UpdateSummary(context.Background(), uuid.New(), uuid.New(), "s", "m")
	if !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestUpdateSummaryReturnsLastErrorWhenAllVariantsFail(t *testing.T) {
	db := &fakeDB{
		execResults: []execResult{
			{rows: 0, err: &pgconn.PgError{Code: "42703"}},
			{rows: 0, err: &pgconn.PgError{Code: "42703"}},
		},
	}
	repo := NewPostgresContactRepository(db)

	err := repo.UpdateSummary(context.Background(), uuid.New(), uuid.New(), "s", "m")
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "42703" {
		t.Fatalf("expected undefined-column error when all variants fail, got %v", err)
	}
}

func TestDeleteReportsNotFoundForForeignOwner(t *testing.T) {
	db := &fakeDB{execResults: []execResult{{rows: 0, err: nil}}}
	repo := NewPostgresContactRepository(db)

	err := repo.Delete(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestListByOwnerOrdersByRecencyAndAppliesPaging(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresContactRepository(db)

	_, err := repo.ListByOwner(context.Background(), uuid.New(), ContactListFilter{
		Status: "pending",
		Query:  "acme",
		Limit:  50,
		Offset: 10,
	})
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}

	if len(db.queryQueries) != 1 {
		t.Fatalf("expected one query, got %d", len(db.queryQueries))
	}
	q := db.queryQueries[0]
	if !strings.Contains(q, "ORDER BY updated_at DESC") {
		t.Fatalf("expected recency ordering, got %q", q)
	}
	if !strings.Contains(q, "follow_up_status = $2") {
		t.Fatalf("expected status filter, got %q", q)
	}
	if !strings.Contains(q, "ILIKE") {
		t.Fatalf("expected substring filter, got %q", q)
	}
	if !strings.Contains(q, "LIMIT $4") || !strings.Contains(q, "OFFSET $5") {
		t.Fatalf("expected paging placeholders, got %q", q)
	}
}
