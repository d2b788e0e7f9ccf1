package sse

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamdwell/dreamdwell/pkg/logging"
)

func frameReader(t *testing.T, body io.Reader) func() string {
	reader := bufio.NewReader(body)
	return func() string {
		var lines []string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if line == "\n" {
				return strings.Join(lines, "")
			}
			lines = append(lines, line)
		}
	}
}

func TestBroadcasterStream(t *testing.T) {
	b := NewBroadcaster(logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	srv := httptest.NewServer(b)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	readEvent := frameReader(t, resp.Body)

	assert.Contains(t, readEvent(), "event: connected")
	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	b.Broadcast(Event{Event: "property.added", ID: "7", Data: map[string]string{"id": "7"}})
	got := readEvent()
	assert.Contains(t, got, "event: property.added\n")
	assert.Contains(t, got, "id: 7\n")
	assert.Contains(t, got, `data: {"id":"7"}`)
}

func TestBroadcasterShutdownEndsStreams(t *testing.T) {
	b := NewBroadcaster(logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go b.Run(ctx)

	srv := httptest.NewServer(b)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.Eventually(t, func() bool { return b.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		_, _ = bufio.NewReader(resp.Body).ReadString(0)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after shutdown")
	}
}

func TestBroadcasterReplaysAfterLastEventID(t *testing.T) {
	b := NewBroadcaster(logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	for _, id := range []string{"1", "2", "3"} {
		b.Broadcast(Event{Event: "property.updated", ID: id, Data: id})
	}

	srv := httptest.NewServer(b)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Last-Event-ID", "1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	readEvent := frameReader(t, resp.Body)
	assert.Contains(t, readEvent(), "event: connected")
	assert.Contains(t, readEvent(), "id: 2\n")
	assert.Contains(t, readEvent(), "id: 3\n")
}

func TestBroadcasterHistoryIsBounded(t *testing.T) {
	b := NewBroadcaster(logging.NewNopLogger())
	for i := range historySize + 5 {
		b.Broadcast(Event{ID: strconv.Itoa(i + 1)})
	}
	assert.Len(t, b.history, historySize)
	assert.Equal(t, "6", b.history[0].ID)
	assert.Len(t, b.since("not-a-number"), 0)
}
