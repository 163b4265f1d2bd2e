package feed

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// StateEvent is the backend's broadcast format on its /ws endpoint.
type StateEvent struct {
	Type  string `json:"type"`
	Phase string `json:"phase"`
}

const reconnectDelay = 2 * time.Second

// Watch subscribes to the companion backend's websocket and forwards state
// events into the cell. It reconnects with a fixed delay on any failure and
// returns once the context is cancelled.
func Watch(ctx context.Context, url string, cell *Cell) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := watchOnce(ctx, url, cell); err != nil && ctx.Err() == nil {
			log.Printf("feed: connection lost (%v), retrying in %s", err, reconnectDelay)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func watchOnce(ctx context.Context, url string, cell *Cell) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Unblock ReadMessage when the caller tears down.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var ev StateEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			continue
		}
		if ev.Type != "state" {
			continue
		}
		cell.Set(ev.Phase, ev.Phase == "thinking")
	}
}
