package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestCell_LatestValueWins(t *testing.T) {
	c := NewCell()

	p, thinking := c.Phase()
	if p != "idle" || thinking {
		t.Fatalf("fresh cell should be idle, got %q/%v", p, thinking)
	}

	c.Set("memory", false)
	c.Set("thinking", true)

	p, thinking = c.Phase()
	if p != "thinking" || !thinking {
		t.Errorf("expected latest write to win, got %q/%v", p, thinking)
	}
}

func TestScript_At(t *testing.T) {
	s := NewScript([]ScriptStep{
		{Phase: "idle", Seconds: 2},
		{Phase: "thinking", Seconds: 1},
	})

	tests := []struct {
		elapsed float64
		want    string
	}{
		{0, "idle"},
		{1.9, "idle"},
		{2.0, "thinking"},
		{2.9, "thinking"},
		{3.0, "idle"},  // wrapped
		{65.5, "thinking"}, // 65.5 mod 3 = 2.5
	}
	for _, tt := range tests {
		if got := s.At(tt.elapsed).Phase; got != tt.want {
			t.Errorf("At(%.1f) = %q, want %q", tt.elapsed, got, tt.want)
		}
	}
}

func TestScript_Empty(t *testing.T) {
	s := NewScript(nil)
	if got := s.At(12.3).Phase; got != "idle" {
		t.Errorf("empty script should pin idle, got %q", got)
	}

	s = NewScript([]ScriptStep{{Phase: "memory", Seconds: -1}})
	if got := s.At(0).Phase; got != "idle" {
		t.Errorf("all-invalid script should pin idle, got %q", got)
	}
}

func TestWatch_ForwardsStateEvents(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteJSON(StateEvent{Type: "state", Phase: "memory"})
		conn.WriteJSON(map[string]string{"type": "chunk", "data": "ignored"})
		conn.WriteJSON(StateEvent{Type: "state", Phase: "decision"})
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	cell := NewCell()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		Watch(ctx, url, cell)
		close(done)
	}()

	deadline := time.After(3 * time.Second)
	for {
		p, _ := cell.Phase()
		if p == "decision" {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("cell never reached decision, stuck at %q", p)
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Watch did not return after cancellation")
	}
}
