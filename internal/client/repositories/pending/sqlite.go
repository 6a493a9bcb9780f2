package pending

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/client/models"
	"github.com/dmitrijs2005/pricekeeper/internal/common"
	"github.com/dmitrijs2005/pricekeeper/internal/dbx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const selectColumns = `local_id, owner_id, product_ref, supplier_ref, price, quantity,
	notes, entry_date, created_at, synced, synced_at`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

type Option func(*SQLiteRepository)

// WithClock replaces time.Now for CreatedAt and SyncedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(r *SQLiteRepository) { r.now = now }
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX, opts ...Option) *SQLiteRepository {
	r := &SQLiteRepository{db: db, now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Append inserts e with synced=0. The caller's LocalID, CreatedAt and sync
// fields are overwritten.
func (r *SQLiteRepository) Append(ctx context.Context, e *models.PendingPriceEntry) (string, error) {
	e.LocalID = uuid.NewString()
	e.CreatedAt = r.now().UTC()
	e.Synced = false
	e.SyncedAt = nil

	query := `INSERT INTO pending_price_entries
		(local_id, owner_id, product_ref, supplier_ref, price, quantity, notes, entry_date, created_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`

	_, err := r.db.ExecContext(ctx, query,
		e.LocalID, e.OwnerID, e.ProductRef, e.SupplierRef,
		e.Price.String(), e.Quantity.String(), e.Notes,
		formatTime(e.EntryDate), formatTime(e.CreatedAt))
	if err != nil {
		return "", storageErr("append", err)
	}
	return e.LocalID, nil
}

// ListUnsynced returns records with synced=0 in insertion order.
func (r *SQLiteRepository) ListUnsynced(ctx context.Context) ([]*models.PendingPriceEntry, error) {
	query := `SELECT ` + selectColumns + ` FROM pending_price_entries
		WHERE synced = 0 ORDER BY created_at, rowid`
	return r.list(ctx, "list unsynced", query)
}

// ListAll returns every record, most recently created first.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]*models.PendingPriceEntry, error) {
	query := `SELECT ` + selectColumns + ` FROM pending_price_entries
		ORDER BY created_at DESC, rowid DESC`
	return r.list(ctx, "list all", query)
}

func (r *SQLiteRepository) list(ctx context.Context, op, query string) ([]*models.PendingPriceEntry, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	var result []*models.PendingPriceEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return result, nil
}

// MarkSynced only touches a row that is still unsynced, so repeating it
// keeps the first SyncedAt.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, localID string) error {
	query := `UPDATE pending_price_entries SET synced = 1, synced_at = ?
		WHERE local_id = ? AND synced = 0`
	if _, err := r.db.ExecContext(ctx, query, formatTime(r.now()), localID); err != nil {
		return storageErr("mark synced", err)
	}
	return nil
}

// GetByID returns a wrapped common.ErrorNotFound for an unknown id.
func (r *SQLiteRepository) GetByID(ctx context.Context, localID string) (*models.PendingPriceEntry, error) {
	query := `SELECT ` + selectColumns + ` FROM pending_price_entries WHERE local_id = ?`
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, localID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pending entry %s: %w", localID, common.ErrorNotFound)
	}
	if err != nil {
		return nil, storageErr("get by id", err)
	}
	return e, nil
}

func (r *SQLiteRepository) Counts(ctx context.Context) (Stats, error) {
	query := `SELECT COALESCE(SUM(CASE WHEN synced = 0 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN synced = 1 THEN 1 ELSE 0 END), 0)
		FROM pending_price_entries`
	var s Stats
	if err := r.db.QueryRowContext(ctx, query).Scan(&s.Unsynced, &s.Synced); err != nil {
		return Stats{}, storageErr("counts", err)
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*models.PendingPriceEntry, error) {
	var (
		e                    models.PendingPriceEntry
		price, qty           string
		entryDate, createdAt string
		synced               int
		syncedAt             sql.NullString
	)
	if err := row.Scan(&e.LocalID, &e.OwnerID, &e.ProductRef, &e.SupplierRef,
		&price, &qty, &e.Notes, &entryDate, &createdAt, &synced, &syncedAt); err != nil {
		return nil, err
	}

	var err error
	if e.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("bad price %q: %w", price, err)
	}
	if e.Quantity, err = decimal.NewFromString(qty); err != nil {
		return nil, fmt.Errorf("bad quantity %q: %w", qty, err)
	}
	if e.EntryDate, err = time.Parse(timeLayout, entryDate); err != nil {
		return nil, fmt.Errorf("bad entry_date: %w", err)
	}
	if e.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("bad created_at: %w", err)
	}
	e.Synced = synced != 0
	if syncedAt.Valid {
		t, err := time.Parse(timeLayout, syncedAt.String)
		if err != nil {
			return nil, fmt.Errorf("bad synced_at: %w", err)
		}
		e.SyncedAt = &t
	}
	return &e, nil
}
