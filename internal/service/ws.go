package service

import (
	"net/http"
	"time"

	"giftlist/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Wishlist pages are shared by link across arbitrary origins; events
	// carry invalidation hints only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsHandler upgrades the connection and streams wishlist invalidation
// events to the viewer. A ping frame goes out every 30 seconds so idle
// connections survive intermediaries; the read pump exists only to detect
// the peer going away.
func (handlers *handlers) wsHandler(res http.ResponseWriter, req *http.Request) {
	slug := chi.URLParam(req, "slug")
	if err := handlers.app.ProcessCheckSlug(req.Context(), slug); err != nil {
		handlers.writeAppError(res, err)
		return
	}

	conn, err := upgrader.Upgrade(res, req, nil)
	if err != nil {
		handlers.log.Sugar().Errorf("Failed to upgrade websocket connection: %s", err)
		return
	}

	sub := handlers.hub.Subscribe(slug)

	// a delete landing between the first check and Subscribe has already
	// broadcast wishlist_deleted on the old topic; re-check so this
	// subscriber is not parked on a dead one
	if err := handlers.app.ProcessCheckSlug(req.Context(), slug); err != nil {
		sub.Close()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "wishlist deleted"))
		conn.Close()
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		sub.Close()
		conn.Close()
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.Events:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "topic closed"))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(models.Event{Type: models.EventPing}); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
