package priceentries

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pricekeeper/internal/dbx"
	"github.com/dmitrijs2005/pricekeeper/internal/server/models"
)

// PostgresRepository implements price entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores a new row. The entry must already carry its ID and CreatedAt.
func (r *PostgresRepository) Insert(ctx context.Context, entry *models.PriceEntry) error {
	query := `
		INSERT INTO price_entries (id, owner_id, product_id, supplier_id, price, quantity, notes, entry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	res, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.OwnerID, entry.ProductID, entry.SupplierID,
		entry.Price, entry.Quantity, entry.Notes, entry.EntryDate, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}
