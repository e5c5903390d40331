package stream

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jmorales/seatscout/internal/model"
)

func TestHubBroadcastAll(t *testing.T) {
	h := NewHub(nil)
	a := h.Subscribe(nil)
	b := h.Subscribe(nil)
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(b)

	u := model.PriceUpdate{GameID: "g1", VendorID: "stubhub", CheapCents: 1800}
	h.Broadcast(u)

	for _, sub := range []*Subscriber{a, b} {
		select {
		case got := <-sub.Updates():
			if got != u {
				t.Errorf("got %+v, want %+v", got, u)
			}
		default:
			t.Error("subscriber missed broadcast")
		}
	}
}

func TestHubGameFilter(t *testing.T) {
	h := NewHub(nil)
	only := h.Subscribe([]string{"g1"})
	all := h.Subscribe(nil)
	defer h.Unsubscribe(only)
	defer h.Unsubscribe(all)

	h.Broadcast(model.PriceUpdate{GameID: "g2", CheapCents: 900})

	select {
	case got := <-only.Updates():
		t.Errorf("filtered subscriber received %+v", got)
	default:
	}

	select {
	case <-all.Updates():
	default:
		t.Error("unfiltered subscriber missed update")
	}
}

func TestHubDropsWhenFull(t *testing.T) {
	h := NewHub(nil)
	sub := h.Subscribe(nil)
	defer h.Unsubscribe(sub)

	for i := 0; i < subscriberBuffer+5; i++ {
		h.Broadcast(model.PriceUpdate{GameID: "g1", CheapCents: int64(i)})
	}

	stats := h.Stats()
	if stats.Delivered != subscriberBuffer {
		t.Errorf("Delivered = %d, want %d", stats.Delivered, subscriberBuffer)
	}
	if stats.Dropped != 5 {
		t.Errorf("Dropped = %d, want 5", stats.Dropped)
	}
}

func TestHubUnsubscribeIdempotent(t *testing.T) {
	h := NewHub(nil)
	sub := h.Subscribe(nil)

	h.Unsubscribe(sub)
	h.Unsubscribe(sub) // must not panic

	if got := h.Subscribers(); got != 0 {
		t.Errorf("Subscribers = %d, want 0", got)
	}

	// Broadcast after removal must not reach the closed channel.
	h.Broadcast(model.PriceUpdate{GameID: "g1"})
}

func TestServeWSDeliversUpdates(t *testing.T) {
	h := NewHub(nil)
	server := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?game_id=g1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Wait for the subscription to register before broadcasting.
	deadline := time.Now().Add(time.Second)
	for h.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	want := model.PriceUpdate{GameID: "g1", VendorID: "demo", CheapCents: 2100, RecordedAt: 7}
	h.Broadcast(want)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got model.PriceUpdate
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
