package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// wsPair dials a real websocket through httptest and hands back both ends.
func wsPair(t *testing.T) (server *websocket.Conn, client *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	ready := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _ := upgrader.Upgrade(w, r, nil)
		ready <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	server = <-ready
	require.NotNil(t, server)
	t.Cleanup(func() { server.Close() })
	return server, client
}

func TestLogUpdatedBroadcast(t *testing.T) {
	server, client := wsPair(t)
	hub := NewRealtimeHub()
	cl := &WSClient{UserID: 7, Conn: server}
	hub.Register(cl)

	hub.LogUpdated(7, "2026-08-01", map[string]interface{}{"calories": 1200})

	_, msg, err := client.ReadMessage()
	require.NoError(t, err)
	var ev RealtimeEvent
	require.NoError(t, json.Unmarshal(msg, &ev))
	require.Equal(t, "log.updated", ev.Type)
	require.Equal(t, "2026-08-01", ev.Date)
}

func TestBroadcastAndPingShareOneWriter(t *testing.T) {
	server, client := wsPair(t)
	hub := NewRealtimeHub()
	cl := &WSClient{UserID: 3, Conn: server}
	hub.Register(cl)

	// broadcasts and keepalive pings race against each other; the
	// per-client Send mutex keeps the connection to one writer at a time
	const frames = 50
	var wg sync.WaitGroup
	for i := 0; i < frames; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.LogUpdated(3, "2026-08-02", nil)
		}()
		go func() {
			defer wg.Done()
			_ = cl.Send(websocket.PingMessage, nil)
		}()
	}

	for i := 0; i < frames; i++ {
		_, msg, err := client.ReadMessage()
		require.NoError(t, err)
		require.Contains(t, string(msg), "log.updated")
	}
	wg.Wait()
}
