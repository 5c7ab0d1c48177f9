package grpc

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mr1hm/go-astrosky/internal/feeds"
)

const subscriberBuffer = 32

// FeedStatus is a circuit breaker transition for one upstream feed.
type FeedStatus struct {
	Feed string
	From feeds.BreakerState
	To   feeds.BreakerState
	At   time.Time
}

// Broadcaster fans feed status changes out to subscribers. It remembers the
// last state published per feed: repeats are dropped and new subscribers
// start with a snapshot of every known feed.
type Broadcaster struct {
	subscribers map[uint64]chan FeedStatus
	latest      map[string]FeedStatus
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan FeedStatus),
		latest:      make(map[string]FeedStatus),
	}
}

// Subscribe registers a channel pre-loaded with the latest status of each
// known feed, ordered by feed name.
func (b *Broadcaster) Subscribe() (uint64, chan FeedStatus) {
	id := b.nextID.Add(1)
	ch := make(chan FeedStatus, subscriberBuffer)

	b.mu.Lock()
	for _, feed := range slices.Sorted(maps.Keys(b.latest)) {
		select {
		case ch <- b.latest[feed]:
		default:
		}
	}
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

// Broadcast publishes st unless the feed is already in st.To, and reports
// whether it did. It never blocks: a subscriber with a full buffer misses
// the update.
func (b *Broadcaster) Broadcast(st FeedStatus) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if prev, ok := b.latest[st.Feed]; ok && prev.To == st.To {
		return false
	}
	b.latest[st.Feed] = st

	for _, ch := range b.subscribers {
		select {
		case ch <- st:
		default:
		}
	}
	return true
}

// Latest returns the last published status of feed.
func (b *Broadcaster) Latest(feed string) (FeedStatus, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	st, ok := b.latest[feed]
	return st, ok
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels so their consumers exit.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
