// Package server wires the price store together: configuration, the
// PostgreSQL database and migrations, the gRPC service and the HTTP health
// endpoint, plus graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/pricekeeper/internal/logging"
	"github.com/dmitrijs2005/pricekeeper/internal/server/config"
	"github.com/dmitrijs2005/pricekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pricekeeper/internal/server/services"

	gs "github.com/dmitrijs2005/pricekeeper/internal/server/grpc"
	hs "github.com/dmitrijs2005/pricekeeper/internal/server/http"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	servers []runner
}

// NewApp opens the database, applies migrations and builds both servers.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := repomanager.OpenDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return newApp(c, logger, db, rm), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	es := services.NewPriceEntryService(db, rm)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		servers: []runner{
			gs.NewGRPCServer(c.EndpointAddrGRPC, logger, es, c.SecretKey, c.RateLimitRPS, c.RateLimitBurst),
			hs.NewHealthServer(c.EndpointAddrHTTP, db, logger),
		},
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until a termination signal arrives, ctx is cancelled or one of
// the servers fails. The first server error is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)

	for _, s := range app.servers {
		wg.Add(1)
		go func(s runner) {
			defer wg.Done()
			if err := s.Run(ctx); err != nil {
				app.logger.Error(ctx, err.Error())
				once.Do(func() { firstErr = err })
				cancelFunc()
			}
		}(s)
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}

	app.logger.Info(context.Background(), "App stopped")
	return firstErr
}
