package rpc

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"
)

// Struct field names.
const (
	FieldOwnerID    = "owner_id"
	FieldProductID  = "product_id"
	FieldSupplierID = "supplier_id"
	FieldPrice      = "price"
	FieldQuantity   = "quantity"
	FieldNotes      = "notes"
	FieldEntryDate  = "entry_date"
	FieldCreatedAt  = "created_at"
	FieldID         = "id"
)

var ErrMalformed = errors.New("malformed message")

// Entry is the price entry carried by InsertPriceEntry. A zero CreatedAt is
// omitted from the message.
type Entry struct {
	OwnerID    string
	ProductID  string
	SupplierID string
	Price      decimal.Decimal
	Quantity   decimal.Decimal
	Notes      string
	EntryDate  time.Time
	CreatedAt  time.Time
}

func EncodeEntry(e Entry) (*structpb.Struct, error) {
	fields := map[string]any{
		FieldOwnerID:    e.OwnerID,
		FieldProductID:  e.ProductID,
		FieldSupplierID: e.SupplierID,
		FieldPrice:      e.Price.String(),
		FieldQuantity:   e.Quantity.String(),
		FieldNotes:      e.Notes,
		FieldEntryDate:  e.EntryDate.UTC().Format(time.RFC3339Nano),
	}
	if !e.CreatedAt.IsZero() {
		fields[FieldCreatedAt] = e.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return structpb.NewStruct(fields)
}

// DecodeEntry reads an Entry, returning an error wrapping ErrMalformed when a
// field has the wrong type or cannot be parsed. Missing optional fields decode
// to zero values; semantic validation is left to the caller.
func DecodeEntry(s *structpb.Struct) (Entry, error) {
	var e Entry
	if s == nil {
		return e, fmt.Errorf("%w: empty entry", ErrMalformed)
	}
	f := s.GetFields()

	var err error
	if e.OwnerID, err = stringField(f, FieldOwnerID); err != nil {
		return e, err
	}
	if e.ProductID, err = stringField(f, FieldProductID); err != nil {
		return e, err
	}
	if e.SupplierID, err = stringField(f, FieldSupplierID); err != nil {
		return e, err
	}
	if e.Notes, err = stringField(f, FieldNotes); err != nil {
		return e, err
	}
	if e.Price, err = decimalField(f, FieldPrice); err != nil {
		return e, err
	}
	if e.Quantity, err = decimalField(f, FieldQuantity); err != nil {
		return e, err
	}
	if e.EntryDate, err = timeField(f, FieldEntryDate); err != nil {
		return e, err
	}
	if e.CreatedAt, err = timeField(f, FieldCreatedAt); err != nil {
		return e, err
	}
	return e, nil
}

func EncodeInsertResult(id string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldID: structpb.NewStringValue(id),
	}}
}

func DecodeInsertResult(s *structpb.Struct) (string, error) {
	if s == nil {
		return "", fmt.Errorf("%w: empty result", ErrMalformed)
	}
	id, err := stringField(s.GetFields(), FieldID)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("%w: missing %s", ErrMalformed, FieldID)
	}
	return id, nil
}

func stringField(f map[string]*structpb.Value, name string) (string, error) {
	v, ok := f[name]
	if !ok || v == nil {
		return "", nil
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrMalformed, name)
	}
	return sv.StringValue, nil
}

func decimalField(f map[string]*structpb.Value, name string) (decimal.Decimal, error) {
	s, err := stringField(f, name)
	if err != nil {
		return decimal.Zero, err
	}
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: missing %s", ErrMalformed, name)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	return d, nil
}

func timeField(f map[string]*structpb.Value, name string) (time.Time, error) {
	s, err := stringField(f, name)
	if err != nil || s == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	return t, nil
}
