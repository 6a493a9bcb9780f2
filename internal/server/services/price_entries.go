package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/common"
	"github.com/dmitrijs2005/pricekeeper/internal/server/models"
	"github.com/dmitrijs2005/pricekeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type PriceEntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewPriceEntryService(db *sql.DB, repomanager repomanager.RepositoryManager) *PriceEntryService {
	return &PriceEntryService{
		db:          db,
		repomanager: repomanager,
		now:         time.Now,
	}
}

// Insert stores entry for ownerID and returns the new row id.
// An empty OwnerID on the entry is filled from ownerID; a different one is
// rejected with common.ErrForbidden. A zero CreatedAt is stamped with the
// server clock.
func (s *PriceEntryService) Insert(ctx context.Context, ownerID string, entry *models.PriceEntry) (string, error) {
	if entry.OwnerID == "" {
		entry.OwnerID = ownerID
	}
	if entry.OwnerID != ownerID {
		return "", common.ErrForbidden
	}
	if err := validate(entry); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidEntry, err)
	}

	entry.ID = uuid.NewString()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}

	if err := s.repomanager.PriceEntries(s.db).Insert(ctx, entry); err != nil {
		return "", err
	}
	return entry.ID, nil
}

func validate(e *models.PriceEntry) error {
	var errs []error
	if strings.TrimSpace(e.OwnerID) == "" {
		errs = append(errs, errors.New("owner_id is required"))
	}
	if strings.TrimSpace(e.ProductID) == "" {
		errs = append(errs, errors.New("product_id is required"))
	}
	if strings.TrimSpace(e.SupplierID) == "" {
		errs = append(errs, errors.New("supplier_id is required"))
	}
	if e.Price.IsNegative() {
		errs = append(errs, errors.New("price must not be negative"))
	}
	if !e.Quantity.IsPositive() {
		errs = append(errs, errors.New("quantity must be positive"))
	}
	if e.EntryDate.IsZero() {
		errs = append(errs, errors.New("entry_date is required"))
	}
	return errors.Join(errs...)
}
