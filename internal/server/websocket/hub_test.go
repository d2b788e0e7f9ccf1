package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamdwell/dreamdwell/pkg/logging"
)

func TestHubBroadcastToClient(t *testing.T) {
	hub := NewHub(logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := NewClient("c1", hub, nil)
	require.True(t, hub.Register(client))
	require.Equal(t, 1, hub.ClientCount())

	hub.Broadcast(Message{Seq: 1, Type: "property.added", Timestamp: time.Now(), Data: "1"})
	got := <-client.send
	assert.Equal(t, "property.added", got.Type)
	assert.Equal(t, uint64(1), got.Seq)

	hub.remove(client)
	hub.remove(client)
	assert.Equal(t, 0, hub.ClientCount())
	_, open := <-client.send
	assert.False(t, open)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(logging.NewNopLogger())
	client := NewClient("slow", hub, nil)
	require.True(t, hub.Register(client))

	for i := range sendBuffer + 1 {
		hub.Broadcast(Message{Seq: uint64(i + 1), Type: "property.updated"})
	}
	assert.Equal(t, 0, hub.ClientCount())

	n := 0
	for range client.send {
		n++
	}
	assert.Equal(t, sendBuffer, n)
}

func TestHubRegisterAfterShutdown(t *testing.T) {
	hub := NewHub(logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	cancel()

	require.Eventually(t, hub.closed, time.Second, 5*time.Millisecond)
	assert.False(t, hub.Register(NewClient("late", hub, nil)))
}

func TestHubOverWebSocket(t *testing.T) {
	hub := NewHub(logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewClient("ws", hub, conn)
		if !hub.Register(c) {
			_ = conn.Close()
			return
		}
		c.Start()
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(Message{Type: "sync.completed", Timestamp: time.Now(), Data: map[string]int{"total": 3}})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string         `json:"type"`
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "sync.completed", msg.Type)
	assert.Equal(t, 3, msg.Data["total"])
}
