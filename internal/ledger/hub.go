package ledger

import (
	"sync"

	"github.com/google/uuid"

	"github.com/minedash/backend/internal/models"
)

// Topic identifies one input of the dashboard recompute. A notification
// carries no data: subscribers re-query a full snapshot on receipt, so a
// dropped or coalesced notification can never leave them with partial state.
type Topic string

const (
	TopicMiningLogs  Topic = Topic(models.KindMiningLog)
	TopicInvestors   Topic = Topic(models.KindInvestor)
	TopicWithdrawals Topic = Topic(models.KindWithdrawal)
	TopicPrice       Topic = "price"
)

type subscriber struct {
	owner uuid.UUID
	ch    chan Topic
}

// Hub fans out change notifications to live dashboard sessions. Collection
// changes are scoped to the owning account; price changes broadcast to all.
// No ordering is guaranteed across topics.
type Hub struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Subscribe registers a listener for the owner's topics. The returned cancel
// must be called when the session ends; afterwards the channel stops
// receiving and is eventually garbage collected.
func (h *Hub) Subscribe(owner uuid.UUID) (<-chan Topic, func()) {
	sub := &subscriber{owner: owner, ch: make(chan Topic, 8)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	cancel := func() {
		h.mu.Lock()
		delete(h.subs, sub)
		h.mu.Unlock()
	}
	return sub.ch, cancel
}

// Notify wakes the owner's subscribers after a collection change. Slow
// subscribers are skipped rather than blocked: they recompute from full
// snapshots anyway, so a missed wake-up is absorbed by the next one.
func (h *Hub) Notify(owner uuid.UUID, topic Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if sub.owner != owner {
			continue
		}
		select {
		case sub.ch <- topic:
		default:
		}
	}
}

// Broadcast wakes every subscriber regardless of owner. Used for price
// updates, which are global.
func (h *Hub) Broadcast(topic Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.ch <- topic:
		default:
		}
	}
}
