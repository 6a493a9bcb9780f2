// Package priceentries provides PostgreSQL-backed storage for price entries
// accepted by the server.
package priceentries

import (
	"context"

	"github.com/dmitrijs2005/pricekeeper/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, entry *models.PriceEntry) error
}
