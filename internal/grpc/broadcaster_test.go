package grpc

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mr1hm/go-astrosky/internal/feeds"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// drain returns whatever is buffered on ch without blocking.
func drain(ch chan FeedStatus) []FeedStatus {
	var out []FeedStatus
	for {
		select {
		case st, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, st)
		default:
			return out
		}
	}
}

func transition(feed string, from, to feeds.BreakerState) FeedStatus {
	return FeedStatus{Feed: feed, From: from, To: to, At: time.Now()}
}

func TestBroadcaster_CoalescesRepeatedStatePerFeed(t *testing.T) {
	b := NewBroadcaster()
	id, ch := b.Subscribe()
	defer b.Unsubscribe(id)

	assert.True(t, b.Broadcast(transition(feeds.SourceNOAA, feeds.Closed, feeds.Open)))
	assert.False(t, b.Broadcast(transition(feeds.SourceNOAA, feeds.HalfOpen, feeds.Open)), "noaa is already open")
	// another feed's state is tracked separately
	assert.True(t, b.Broadcast(transition(feeds.SourceN2YO, feeds.Closed, feeds.Open)))
	assert.True(t, b.Broadcast(transition(feeds.SourceNOAA, feeds.Open, feeds.HalfOpen)))
	assert.True(t, b.Broadcast(transition(feeds.SourceNOAA, feeds.HalfOpen, feeds.Open)))

	got := drain(ch)
	require.Len(t, got, 4)
	assert.Equal(t, []feeds.BreakerState{feeds.Open, feeds.Open, feeds.HalfOpen, feeds.Open},
		[]feeds.BreakerState{got[0].To, got[1].To, got[2].To, got[3].To})
	assert.Equal(t, feeds.SourceN2YO, got[1].Feed)

	last, ok := b.Latest(feeds.SourceNOAA)
	require.True(t, ok)
	assert.Equal(t, feeds.HalfOpen, last.From)
	assert.Equal(t, feeds.Open, last.To)

	_, ok = b.Latest(feeds.SourceOpenMeteo)
	assert.False(t, ok)
}

func TestBroadcaster_LateSubscriberGetsSnapshot(t *testing.T) {
	b := NewBroadcaster()
	b.Broadcast(transition(feeds.SourceOpenMeteo, feeds.Closed, feeds.Open))
	b.Broadcast(transition(feeds.SourceN2YO, feeds.Closed, feeds.Closed))
	b.Broadcast(transition(feeds.SourceOpenMeteo, feeds.Open, feeds.HalfOpen))

	id, ch := b.Subscribe()
	defer b.Unsubscribe(id)

	got := drain(ch)
	require.Len(t, got, 2)
	assert.Equal(t, feeds.SourceN2YO, got[0].Feed)
	assert.Equal(t, feeds.Closed, got[0].To)
	assert.Equal(t, feeds.SourceOpenMeteo, got[1].Feed)
	assert.Equal(t, feeds.HalfOpen, got[1].To)
}

func TestBroadcaster_UnsubscribeAndCloseEndStreams(t *testing.T) {
	b := NewBroadcaster()

	id, first := b.Subscribe()
	_, second := b.Subscribe()
	assert.Equal(t, 2, b.SubscriberCount())

	b.Unsubscribe(id)
	b.Unsubscribe(id)
	assert.Equal(t, 1, b.SubscriberCount())
	_, ok := <-first
	assert.False(t, ok, "unsubscribed channel is closed")

	b.Close()
	assert.Zero(t, b.SubscriberCount())
	_, ok = <-second
	assert.False(t, ok, "close ends every stream")
}

func TestBroadcaster_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	b := NewBroadcaster()
	id, ch := b.Subscribe()
	defer b.Unsubscribe(id)

	// alternate states so nothing is coalesced
	states := []feeds.BreakerState{feeds.Open, feeds.HalfOpen}
	for i := range subscriberBuffer + 5 {
		assert.True(t, b.Broadcast(transition(feeds.SourceNOAA, states[(i+1)%2], states[i%2])))
	}

	got := drain(ch)
	assert.Len(t, got, subscriberBuffer)
	last, _ := b.Latest(feeds.SourceNOAA)
	assert.Equal(t, states[(subscriberBuffer+4)%2], last.To, "latest tracks dropped updates too")
}

func TestBroadcaster_ConcurrentUse(t *testing.T) {
	b := NewBroadcaster()
	var wg sync.WaitGroup

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, ch := b.Subscribe()
			go func() {
				for range ch {
				}
			}()
			time.Sleep(time.Millisecond)
			b.Unsubscribe(id)
		}()
	}
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			feed := []string{feeds.SourceNOAA, feeds.SourceN2YO, feeds.SourceOpenMeteo}[i%3]
			b.Broadcast(transition(feed, feeds.Closed, feeds.BreakerState(i%3)))
		}()
	}
	wg.Wait()

	assert.Zero(t, b.SubscriberCount())
	for _, feed := range []string{feeds.SourceNOAA, feeds.SourceN2YO, feeds.SourceOpenMeteo} {
		_, ok := b.Latest(feed)
		assert.True(t, ok, feed)
	}
}
