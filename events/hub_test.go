package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, hub *Hub, hrEmail string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, hrEmail)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastReachesSubscriber(t *testing.T) {
	hub := NewHub()
	conn := dial(t, hub, "hr@acme.com")

	// Give the hub a beat to register the client.
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast("hr@acme.com", Event{
		Type:       "request_approve",
		EntityType: "request",
		EntityID:   "r1",
		Actor:      "hr@acme.com",
		Timestamp:  time.Now().UTC(),
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "request_approve", event.Type)
	assert.Equal(t, "r1", event.EntityID)
}

func TestBroadcastIsScopedToHR(t *testing.T) {
	hub := NewHub()
	conn := dial(t, hub, "hr@acme.com")

	time.Sleep(50 * time.Millisecond)

	hub.Broadcast("other@corp.com", Event{Type: "asset_create", Timestamp: time.Now().UTC()})

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err) // deadline exceeded, nothing delivered
}

func TestBroadcastWithoutSubscribersIsNoop(t *testing.T) {
	hub := NewHub()
	// Must not panic or block.
	hub.Broadcast("nobody@x.com", Event{Type: "asset_create", Timestamp: time.Now().UTC()})
}
