package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceEntry is a supplier price stored in the price_entries table.
type PriceEntry struct {
	ID         string
	OwnerID    string
	ProductID  string
	SupplierID string
	Price      decimal.Decimal
	Quantity   decimal.Decimal
	Notes      string
	EntryDate  time.Time
	CreatedAt  time.Time
}
