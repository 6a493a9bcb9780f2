package pending

import (
	"context"

	"github.com/dmitrijs2005/pricekeeper/internal/client/models"
)

// Stats holds the number of rows per sync state.
type Stats struct {
	Unsynced int
	Synced   int
}

// Repository is the local queue used by the sync engine and the submission
// facade.
type Repository interface {
	// Append stores e as unsynced, assigning LocalID and CreatedAt, and
	// returns the new LocalID.
	Append(ctx context.Context, e *models.PendingPriceEntry) (string, error)

	// ListUnsynced returns every unsynced record, oldest first.
	ListUnsynced(ctx context.Context) ([]*models.PendingPriceEntry, error)

	// MarkSynced flags the record as synced. Unknown or already synced ids are
	// a no-op.
	MarkSynced(ctx context.Context, localID string) error

	GetByID(ctx context.Context, localID string) (*models.PendingPriceEntry, error)

	// ListAll returns synced and unsynced records, newest first.
	ListAll(ctx context.Context) ([]*models.PendingPriceEntry, error)

	Counts(ctx context.Context) (Stats, error)
}
