package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pricekeeper/internal/dbx"
	"github.com/dmitrijs2005/pricekeeper/internal/server/repositories/priceentries"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	PriceEntries(db dbx.DBTX) priceentries.Repository
}
