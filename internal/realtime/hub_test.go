package realtime

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

func dialTestClient(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func subscribe(t *testing.T, conn *websocket.Conn, channel string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(clientAction{Action: "subscribe", Channel: channel}))
	// Give the hub a moment to process the subscription.
	time.Sleep(50 * time.Millisecond)
}

func TestHub_FanOut(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	sessionConn := dialTestClient(t, hub)
	leaderboardConn := dialTestClient(t, hub)

	subscribe(t, sessionConn, SessionChannel(10))
	subscribe(t, leaderboardConn, LeaderboardChannel)

	hub.VotesChanged(10)

	event := readEvent(t, sessionConn)
	assert.Equal(t, "invalidate", event.Type)
	assert.Equal(t, "votes", event.Table)
	assert.Equal(t, uint(10), event.BOFSessionID)

	event = readEvent(t, leaderboardConn)
	assert.Equal(t, "votes", event.Table)
}

func TestHub_ChannelIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := dialTestClient(t, hub)
	subscribe(t, conn, SessionChannel(10))

	// An event for another session must not reach this subscriber.
	hub.TopicsChanged(11)
	hub.TopicsChanged(10)

	event := readEvent(t, conn)
	assert.Equal(t, uint(10), event.BOFSessionID)
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := dialTestClient(t, hub)
	subscribe(t, conn, SessionChannel(10))

	require.NoError(t, conn.WriteJSON(clientAction{Action: "unsubscribe", Channel: SessionChannel(10)}))
	time.Sleep(50 * time.Millisecond)

	hub.VotesChanged(10)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "no event expected after unsubscribing")
}
