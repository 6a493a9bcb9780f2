package client

import (
	"context"

	"github.com/dmitrijs2005/pricekeeper/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	// Insert writes one price entry and returns the id assigned by the store.
	Insert(ctx context.Context, e models.RemotePriceEntry) (string, error)
}
