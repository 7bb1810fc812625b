package share

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// newAckRelay starts a relay that reads one announcement, verifies its
// signature and replies with a small ack message.
func newAckRelay(t *testing.T, received *int32) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		var a Announcement
		if err := conn.ReadJSON(&a); err != nil {
			t.Errorf("Failed to read announcement: %v", err)
			return
		}
		if a.Game != "cavestrike" {
			t.Errorf("Expected game tag cavestrike, got %q", a.Game)
		}
		if !a.Verify() {
			t.Error("Expected a verifiable announcement on the relay side")
		}
		atomic.AddInt32(received, 1)

		if err := conn.WriteJSON(map[string]bool{"ok": true}); err != nil {
			t.Errorf("Failed to ack: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// wsURL converts an httptest server URL to a websocket URL.
func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func testAnnouncement(t *testing.T) *Announcement {
	t.Helper()
	a, err := NewAnnouncement(OutcomeVictory, 4200, 4200, 3, time.Now())
	if err != nil {
		t.Fatalf("NewAnnouncement failed: %v", err)
	}
	return a
}

func TestPublisherDeliversToAllRelays(t *testing.T) {
	var received int32
	relayA := newAckRelay(t, &received)
	relayB := newAckRelay(t, &received)

	p := NewPublisher(2 * time.Second)
	results := p.Publish(context.Background(), testAnnouncement(t),
		[]string{wsURL(relayA), wsURL(relayB)})

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("Expected delivery to %s, got error: %v", r.Relay, r.Err)
		}
		if r.Elapsed <= 0 {
			t.Errorf("Expected a positive elapsed time for %s", r.Relay)
		}
	}
	if got := atomic.LoadInt32(&received); got != 2 {
		t.Errorf("Expected both relays to receive the announcement, got %d", got)
	}
}

// TestPublisherAcceptsCloseAsAck covers relays that confirm receipt by
// closing the connection instead of replying.
func TestPublisherAcceptsCloseAsAck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		if _, _, err := conn.ReadMessage(); err != nil {
			t.Errorf("Failed to read announcement: %v", err)
			return
		}
		deadline := time.Now().Add(time.Second)
		if err := conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline); err != nil {
			t.Errorf("Failed to close: %v", err)
		}
	}))
	t.Cleanup(server.Close)

	p := NewPublisher(2 * time.Second)
	results := p.Publish(context.Background(), testAnnouncement(t), []string{wsURL(server)})

	if results[0].Err != nil {
		t.Errorf("Expected a normal close to count as delivered, got %v", results[0].Err)
	}
}

func TestPublisherReportsUnreachableRelay(t *testing.T) {
	// A closed server leaves a port that refuses connections.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead := wsURL(server)
	server.Close()

	p := NewPublisher(time.Second)
	results := p.Publish(context.Background(), testAnnouncement(t), []string{dead})

	if results[0].Err == nil {
		t.Error("Expected an error for an unreachable relay")
	}
	if results[0].Relay != dead {
		t.Errorf("Expected the result to name the relay, got %q", results[0].Relay)
	}
}

// TestPublisherSilentRelayTimesOut covers relays that accept the payload
// but never confirm it.
func TestPublisherSilentRelayTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		// Swallow the announcement, never ack, wait for the client to give up.
		conn.ReadMessage()
		conn.ReadMessage()
	}))
	t.Cleanup(server.Close)

	p := NewPublisher(200 * time.Millisecond)
	results := p.Publish(context.Background(), testAnnouncement(t), []string{wsURL(server)})

	if results[0].Err == nil {
		t.Error("Expected a timeout error for a silent relay")
	}
}

func TestPublisherMixedResultsKeepOrder(t *testing.T) {
	var received int32
	good := newAckRelay(t, &received)

	deadServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead := wsURL(deadServer)
	deadServer.Close()

	p := NewPublisher(time.Second)
	results := p.Publish(context.Background(), testAnnouncement(t),
		[]string{wsURL(good), dead})

	if results[0].Err != nil {
		t.Errorf("Expected the first relay to succeed, got %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("Expected the second relay to fail")
	}
	if results[0].Relay != wsURL(good) || results[1].Relay != dead {
		t.Error("Expected results in the same order as the relay list")
	}
}

func TestParseRelayList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"two relays with spaces", "ws://a.example/ws, wss://b.example/submit", 2, false},
		{"trailing comma", "ws://a.example/ws,", 1, false},
		{"empty string", "", 0, false},
		{"only separators", " , ,", 0, false},
		{"http scheme rejected", "http://a.example/ws", 0, true},
		{"missing scheme rejected", "a.example/ws", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			relays, err := ParseRelayList(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected an error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRelayList(%q) failed: %v", tt.input, err)
			}
			if len(relays) != tt.want {
				t.Errorf("Expected %d relays, got %d", tt.want, len(relays))
			}
		})
	}
}
