package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/client/models"
	"github.com/dmitrijs2005/pricekeeper/internal/client/services"
	"github.com/dmitrijs2005/pricekeeper/internal/common"
	"github.com/shopspring/decimal"
)

var defaultQuantity = decimal.NewFromInt(1)

// Add records a price. With at least three args it reads
// product, supplier, price, quantity and date from them; otherwise it prompts.
func (a *App) Add(ctx context.Context, args []string) error {
	var (
		p   models.PriceEntryPayload
		err error
	)
	if len(args) >= 3 {
		p, err = a.payloadFromArgs(args)
	} else {
		p, err = a.payloadFromPrompts()
	}
	if err != nil {
		return err
	}
	p.OwnerID = a.ownerID

	res, err := a.submitter.Submit(ctx, p)
	if err != nil {
		return err
	}

	switch res.Outcome {
	case services.OutcomeAccepted:
		fmt.Fprintf(a.out, "Saved (id %s)\n", res.RemoteID)
	case services.OutcomeQueuedOffline:
		fmt.Fprintf(a.out, "Offline: saved locally (id %s), it will be sent when the server is reachable\n", res.LocalID)
	}
	return nil
}

func (a *App) payloadFromArgs(args []string) (models.PriceEntryPayload, error) {
	p := models.PriceEntryPayload{
		ProductRef:  args[0],
		SupplierRef: args[1],
		Quantity:    defaultQuantity,
	}

	var err error
	if p.Price, err = parseDecimal(args[2]); err != nil {
		return p, err
	}
	if len(args) > 3 {
		if p.Quantity, err = parseDecimal(args[3]); err != nil {
			return p, err
		}
	}
	date := ""
	if len(args) > 4 {
		date = args[4]
	}
	if p.EntryDate, err = parseDate(date, a.now()); err != nil {
		return p, err
	}
	if len(args) > 5 {
		p.Notes = strings.Join(args[5:], " ")
	}
	return p, nil
}

func (a *App) payloadFromPrompts() (models.PriceEntryPayload, error) {
	var (
		p   models.PriceEntryPayload
		err error
	)

	if p.ProductRef, err = GetSimpleText(a.reader, "Product", a.out); err != nil {
		return p, err
	}
	if p.SupplierRef, err = GetSimpleText(a.reader, "Supplier", a.out); err != nil {
		return p, err
	}
	if p.Price, err = GetDecimal(a.reader, "Price", a.out, nil); err != nil {
		return p, err
	}
	if p.Quantity, err = GetDecimal(a.reader, "Quantity (default 1)", a.out, &defaultQuantity); err != nil {
		return p, err
	}
	if p.EntryDate, err = GetDate(a.reader, "Date YYYY-MM-DD (default today)", a.out, a.now()); err != nil {
		return p, err
	}
	if p.Notes, err = GetSimpleText(a.reader, "Notes (optional)", a.out); err != nil {
		return p, err
	}
	return p, nil
}

func (a *App) Pending(ctx context.Context) error {
	list, err := a.queue.ListUnsynced(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "Nothing pending")
		return nil
	}
	for _, e := range list {
		fmt.Fprintln(a.out, e)
	}
	return nil
}

func (a *App) History(ctx context.Context) error {
	list, err := a.queue.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No entries recorded on this device")
		return nil
	}
	for _, e := range list {
		fmt.Fprintln(a.out, e)
	}
	return nil
}

// Show prints one queued entry in full, looked up by its local id.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: show <id>")
	}
	e, err := a.queue.GetByID(ctx, args[0])
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("no entry with id %s", args[0])
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, e)
	if e.Notes != "" {
		fmt.Fprintf(a.out, "notes:     %s\n", e.Notes)
	}
	fmt.Fprintf(a.out, "recorded:  %s\n", e.CreatedAt.Format(time.RFC3339))
	if e.SyncedAt != nil {
		fmt.Fprintf(a.out, "synced at: %s\n", e.SyncedAt.Format(time.RFC3339))
	}
	return nil
}

func (a *App) Status(ctx context.Context) error {
	stats, err := a.queue.Counts(ctx)
	if err != nil {
		return err
	}

	mode := "offline"
	switch {
	case a.monitor.Forced():
		mode = "offline (manual)"
	case a.monitor.IsOnline():
		mode = "online"
	}

	fmt.Fprintf(a.out, "server:  %s (%s)\n", a.config.ServerEndpointAddr, mode)
	fmt.Fprintf(a.out, "owner:   %s\n", a.ownerID)
	fmt.Fprintf(a.out, "pending: %d\n", stats.Unsynced)
	fmt.Fprintf(a.out, "synced:  %d\n", stats.Synced)
	if a.engine.Running() {
		fmt.Fprintln(a.out, "sync in progress")
	}
	return nil
}

func (a *App) Sync(ctx context.Context) error {
	if !a.monitor.IsOnline() {
		fmt.Fprintln(a.out, "Offline, nothing sent")
		return nil
	}

	report, ran, err := a.engine.TryPass(ctx)
	if err != nil {
		return err
	}
	if !ran {
		fmt.Fprintln(a.out, "Sync already in progress")
		return nil
	}
	fmt.Fprintf(a.out, "Synced %d of %d", report.Synced, report.Attempted)
	if report.Failed > 0 {
		fmt.Fprintf(a.out, ", %d will be retried", report.Failed)
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *App) Offline(ctx context.Context) error {
	a.monitor.ForceOffline()
	fmt.Fprintln(a.out, "Working offline; new entries are queued locally")
	return nil
}

func (a *App) Online(ctx context.Context) error {
	a.monitor.Resume()
	if a.monitor.Probe(ctx) {
		fmt.Fprintln(a.out, "Server reachable")
	} else {
		fmt.Fprintln(a.out, "Server not reachable, staying offline")
	}
	return nil
}
