package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftlist/internal/models"
)

// scriptedConn feeds a fixed sequence of events, then fails the read.
type scriptedConn struct {
	mu     sync.Mutex
	events []models.Event
	closed bool
}

func (c *scriptedConn) ReadJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || len(c.events) == 0 {
		return errors.New("connection lost")
	}
	*(v.(*models.Event)) = c.events[0]
	c.events = c.events[1:]
	return nil
}

func (c *scriptedConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func TestBackoffDelayDoublesAndCaps(t *testing.T) {
	assert.Equal(t, time.Second, backoffDelay(0))
	assert.Equal(t, 2*time.Second, backoffDelay(1))
	assert.Equal(t, 4*time.Second, backoffDelay(2))
	assert.Equal(t, 16*time.Second, backoffDelay(4))
	assert.Equal(t, 30*time.Second, backoffDelay(5))
	assert.Equal(t, 30*time.Second, backoffDelay(20))
}

func TestConnDeliversEventsAndSwallowsPings(t *testing.T) {
	received := make(chan models.Event, 4)
	conn := NewConn("ws://test/api/ws/birthday-x7k2", func(e models.Event) { received <- e })

	dialed := make(chan struct{}, 1)
	conn.dial = func(ctx context.Context, url string) (wireConn, error) {
		select {
		case dialed <- struct{}{}:
		default:
			// after the scripted events run out, keep the test from
			// spinning through reconnects
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return &scriptedConn{events: []models.Event{
			{Type: models.EventPing},
			{Type: models.EventItemReserved, ItemID: "item-1"},
			{Type: models.EventPing},
			{Type: models.EventContributionAdded, ItemID: "item-2"},
		}}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go conn.Run(ctx)

	first := <-received
	assert.Equal(t, models.EventItemReserved, first.Type)
	assert.Equal(t, "item-1", first.ItemID)

	second := <-received
	assert.Equal(t, models.EventContributionAdded, second.Type)

	select {
	case extra := <-received:
		t.Fatalf("unexpected event delivered: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConnReconnectsAfterDrop(t *testing.T) {
	var mu sync.Mutex
	dials := 0

	conn := NewConn("ws://test/api/ws/birthday-x7k2", nil)
	conn.dial = func(ctx context.Context, url string) (wireConn, error) {
		mu.Lock()
		dials++
		mu.Unlock()
		return &scriptedConn{}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go conn.Run(ctx)

	// every read fails immediately, so each dial is followed by a backoff
	// wait; kicks shortcut those waits
	require.Eventually(t, func() bool {
		conn.Kick()
		mu.Lock()
		defer mu.Unlock()
		return dials >= 3
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConnStateAfterCancel(t *testing.T) {
	conn := NewConn("ws://test/api/ws/birthday-x7k2", nil)
	conn.dial = func(ctx context.Context, url string) (wireConn, error) {
		return nil, errors.New("refused")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		conn.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, Disconnected, conn.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "disconnected", Disconnected.String())
	assert.Equal(t, "connecting", Connecting.String())
	assert.Equal(t, "connected", Connected.String())
}
