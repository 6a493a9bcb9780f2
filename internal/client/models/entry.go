// Package models defines the client-side price entry types: the payload a
// user submits, the record kept in the local queue, and the shape written to
// the remote price store.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingOwner     = errors.New("owner id is required")
	ErrMissingProduct   = errors.New("product reference is required")
	ErrMissingSupplier  = errors.New("supplier reference is required")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrNonPositiveQty   = errors.New("quantity must be positive")
	ErrMissingEntryDate = errors.New("entry date is required")
)

// PriceEntryPayload is what a user records: one observed supplier price.
type PriceEntryPayload struct {
	OwnerID     string
	ProductRef  string
	SupplierRef string
	Price       decimal.Decimal
	Quantity    decimal.Decimal
	Notes       string
	// EntryDate is when the price was observed, not when it was submitted.
	EntryDate time.Time
}

// Validate checks the payload shape. Product and supplier references are
// opaque here; the remote store owns them.
func (p PriceEntryPayload) Validate() error {
	var errs []error
	if strings.TrimSpace(p.OwnerID) == "" {
		errs = append(errs, ErrMissingOwner)
	}
	if strings.TrimSpace(p.ProductRef) == "" {
		errs = append(errs, ErrMissingProduct)
	}
	if strings.TrimSpace(p.SupplierRef) == "" {
		errs = append(errs, ErrMissingSupplier)
	}
	if p.Price.IsNegative() {
		errs = append(errs, ErrNegativePrice)
	}
	if !p.Quantity.IsPositive() {
		errs = append(errs, ErrNonPositiveQty)
	}
	if p.EntryDate.IsZero() {
		errs = append(errs, ErrMissingEntryDate)
	}
	return errors.Join(errs...)
}

// PendingPriceEntry is a price entry recorded while offline and kept in the
// local queue. Synced flips to true once, after the remote store accepted it,
// and the row is kept afterwards as history.
type PendingPriceEntry struct {
	LocalID     string
	OwnerID     string
	ProductRef  string
	SupplierRef string
	Price       decimal.Decimal
	Quantity    decimal.Decimal
	Notes       string
	EntryDate   time.Time
	CreatedAt   time.Time
	Synced      bool
	SyncedAt    *time.Time
}

// NewPendingPriceEntry copies a payload into a queue record. LocalID and
// CreatedAt are assigned by the queue on append.
func NewPendingPriceEntry(p PriceEntryPayload) *PendingPriceEntry {
	return &PendingPriceEntry{
		OwnerID:     p.OwnerID,
		ProductRef:  p.ProductRef,
		SupplierRef: p.SupplierRef,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Notes:       p.Notes,
		EntryDate:   p.EntryDate,
	}
}

// Remote returns the record as written to the remote store, including the
// local creation time.
func (e *PendingPriceEntry) Remote() RemotePriceEntry {
	return RemotePriceEntry{
		OwnerID:     e.OwnerID,
		ProductRef:  e.ProductRef,
		SupplierRef: e.SupplierRef,
		Price:       e.Price,
		Quantity:    e.Quantity,
		Notes:       e.Notes,
		EntryDate:   e.EntryDate,
		CreatedAt:   e.CreatedAt,
	}
}

func (e *PendingPriceEntry) String() string {
	state := "pending"
	if e.Synced {
		state = "synced"
	}
	return fmt.Sprintf("%s  %s  product=%s supplier=%s price=%s qty=%s  [%s]",
		e.LocalID, e.EntryDate.Format(time.DateOnly), e.ProductRef, e.SupplierRef,
		e.Price.StringFixed(2), e.Quantity.String(), state)
}

// RemotePriceEntry is the insert sent to the remote price store.
// A zero CreatedAt lets the server stamp its own time.
type RemotePriceEntry struct {
	OwnerID     string
	ProductRef  string
	SupplierRef string
	Price       decimal.Decimal
	Quantity    decimal.Decimal
	Notes       string
	EntryDate   time.Time
	CreatedAt   time.Time
}

// RemoteFromPayload is used for direct online submissions.
func RemoteFromPayload(p PriceEntryPayload) RemotePriceEntry {
	return RemotePriceEntry{
		OwnerID:     p.OwnerID,
		ProductRef:  p.ProductRef,
		SupplierRef: p.SupplierRef,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Notes:       p.Notes,
		EntryDate:   p.EntryDate,
	}
}
