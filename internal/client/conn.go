package client

import (
	"context"
	"sync"
	"time"

	"giftlist/internal/models"

	"github.com/gorilla/websocket"
)

// State is the realtime connection lifecycle state.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

const (
	backoffBase = time.Second
	backoffMax  = 30 * time.Second
)

// wireConn is the subset of the websocket connection the read loop needs.
type wireConn interface {
	ReadJSON(v any) error
	Close() error
}

// DialFunc opens a realtime connection to the given URL.
type DialFunc func(ctx context.Context, url string) (wireConn, error)

func defaultDial(ctx context.Context, url string) (wireConn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Conn maintains a realtime subscription to one wishlist topic,
// reconnecting with exponential backoff when the connection drops. Events
// surface through the onEvent callback; keepalive pings are swallowed.
type Conn struct {
	url     string
	onEvent func(models.Event)
	dial    DialFunc

	mu       sync.Mutex
	state    State
	attempts int

	kick chan struct{}
}

// NewConn creates a Conn for the given websocket URL. onEvent receives
// every non-ping event. The connection does nothing until Run is called.
func NewConn(url string, onEvent func(models.Event)) *Conn {
	return &Conn{
		url:     url,
		onEvent: onEvent,
		dial:    defaultDial,
		kick:    make(chan struct{}, 1),
	}
}

// State returns the current lifecycle state.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Kick shortcuts the current backoff wait. Wire it to visibility and
// online browser events so a tab coming back reconnects immediately.
func (c *Conn) Kick() {
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// Run drives the connection until ctx is cancelled. Each successful
// connection resets the backoff; each failure doubles it, starting at one
// second and capping at thirty.
func (c *Conn) Run(ctx context.Context) {
	defer c.setState(Disconnected)

	for {
		c.setState(Connecting)

		conn, err := c.dial(ctx, c.url)
		if err != nil {
			c.setState(Disconnected)
			if !c.waitBackoff(ctx) {
				return
			}
			continue
		}

		c.resetAttempts()
		c.setState(Connected)
		c.readLoop(ctx, conn)
		c.setState(Disconnected)

		if ctx.Err() != nil {
			return
		}
		if !c.waitBackoff(ctx) {
			return
		}
	}
}

func (c *Conn) readLoop(ctx context.Context, conn wireConn) {
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	for {
		var event models.Event
		if err := conn.ReadJSON(&event); err != nil {
			return
		}
		if event.Type == models.EventPing {
			continue
		}
		if c.onEvent != nil {
			c.onEvent(event)
		}
	}
}

// waitBackoff sleeps for the current backoff delay, or less when kicked.
// It returns false when ctx is done.
func (c *Conn) waitBackoff(ctx context.Context) bool {
	c.mu.Lock()
	delay := backoffDelay(c.attempts)
	c.attempts++
	c.mu.Unlock()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-c.kick:
		return true
	case <-timer.C:
		return true
	}
}

func (c *Conn) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Conn) resetAttempts() {
	c.mu.Lock()
	c.attempts = 0
	c.mu.Unlock()
}

// backoffDelay doubles per attempt: 1s, 2s, 4s ... capped at 30s.
func backoffDelay(attempts int) time.Duration {
	delay := backoffBase
	for i := 0; i < attempts; i++ {
		delay *= 2
		if delay >= backoffMax {
			return backoffMax
		}
	}
	return delay
}
