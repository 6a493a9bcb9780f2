package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/client/client"
	"github.com/dmitrijs2005/pricekeeper/internal/client/config"
	"github.com/dmitrijs2005/pricekeeper/internal/client/connectivity"
	"github.com/dmitrijs2005/pricekeeper/internal/client/repositories/pending"
	"github.com/dmitrijs2005/pricekeeper/internal/client/services"
	"github.com/dmitrijs2005/pricekeeper/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoOwner = errors.New("owner id is not configured: pass -o or an access token with a subject")

type App struct {
	config    *config.Config
	db        *sql.DB
	apiClient client.Client
	queue     pending.Repository
	monitor   *connectivity.Monitor
	engine    *services.SyncEngine
	scheduler *services.Scheduler
	submitter *services.Submitter
	log       logging.Logger

	ownerID     string
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
	now         func() time.Time
}

// NewApp opens the local queue, creates the gRPC client and wires the sync
// components. The caller must call Run, which releases them on return.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	owner := c.OwnerID
	if owner == "" {
		owner = ownerFromToken(c.AccessToken)
	}
	if owner == "" {
		return nil, ErrNoOwner
	}

	db, err := client.OpenDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewPriceStoreClient(c.ServerEndpointAddr, c.AccessToken)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, apiClient, pending.NewSQLiteRepository(db), log)
	a.db = db
	a.ownerID = owner
	a.interactive = stdinIsTerminal()
	return a, nil
}

// newApp wires the services around an existing client and queue.
func newApp(c *config.Config, apiClient client.Client, queue pending.Repository, log logging.Logger) *App {
	monitor := connectivity.NewMonitor(apiClient, c.OnlineCheckInterval, log)
	engine := services.NewSyncEngine(apiClient, queue, monitor, c.RequestTimeout, log)

	return &App{
		config:    c,
		apiClient: apiClient,
		queue:     queue,
		monitor:   monitor,
		engine:    engine,
		scheduler: services.NewScheduler(engine, monitor, c.SyncInterval, log),
		submitter: services.NewSubmitter(apiClient, queue, monitor, c.RequestTimeout, log),
		log:       log,
		ownerID:   c.OwnerID,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		now:       time.Now,
	}
}

// ownerFromToken returns the token subject without verifying the signature;
// the server verifies it on every call.
func ownerFromToken(token string) string {
	if token == "" {
		return ""
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	return claims.Subject
}

// Run starts the connectivity watcher and the sync scheduler, then serves the
// REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.monitor.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		a.scheduler.Run(ctx)
	}()

	if a.interactive {
		printlnFn("Welcome to pricekeeper (type 'help' for commands)")
	}
	runREPL(ctx, a, a.getStatus, a.reader, a.interactive)

	cancel()
	wg.Wait()
	a.close()
}

func (a *App) close() {
	ctx := context.Background()
	if err := a.apiClient.Close(); err != nil {
		a.log.Warn(ctx, "failed to close client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "failed to close database", "error", err)
		}
	}
}

func (a *App) getStatus() string {
	mode := "offline"
	if a.monitor.IsOnline() {
		mode = "online"
	}
	return fmt.Sprintf("(%s %s)", a.ownerID, mode)
}
