package pricefeed

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/minedash/backend/internal/ledger"
)

// PollArgs is the periodic price poll job. It carries no payload; each run
// fetches a fresh quote.
type PollArgs struct{}

func (PollArgs) Kind() string { return "price_poll" }

// Broadcaster wakes live dashboard sessions after a price change.
type Broadcaster interface {
	Broadcast(topic ledger.Topic)
}

type PollWorker struct {
	river.WorkerDefaults[PollArgs]
	client *Client
	store  *Store
	hub    Broadcaster
	log    *slog.Logger
}

func NewPollWorker(client *Client, store *Store, hub Broadcaster, log *slog.Logger) *PollWorker {
	if log == nil {
		log = slog.Default()
	}
	return &PollWorker{client: client, store: store, hub: hub, log: log}
}

// Work fetches one quote. A failed fetch is logged and swallowed: the store
// keeps its last good pair and the next periodic tick tries again, so there
// is nothing for river to retry.
func (w *PollWorker) Work(ctx context.Context, job *river.Job[PollArgs]) error {
	pair, err := w.client.Fetch(ctx)
	if err != nil {
		w.log.Warn("price poll failed, keeping last good quote", "error", err)
		return nil
	}
	if !w.store.Update(pair) {
		return nil
	}
	w.log.Info("price updated", "usd", pair.USD, "brl", pair.BRL)
	w.hub.Broadcast(ledger.TopicPrice)
	return nil
}
