package host

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixbridge/internal/domain/entity"
	"fixbridge/internal/infrastructure/logger"
)

func TestNoop(t *testing.T) {
	h := NewNoop(logger.NewNop())
	ctx := context.Background()

	assert.False(t, h.Available())
	assert.NoError(t, h.Post(ctx, entity.RelayMessage{Type: entity.MessageSelectionData}))
	assert.NoError(t, h.ShowUI(ctx, entity.SurfaceOptions{Width: 420, Height: 950}))
	assert.Nil(t, h.Inbox())
	assert.NoError(t, h.Close())
}

func TestChannel_RoundTrip(t *testing.T) {
	h := NewChannel(2)
	ctx := context.Background()

	require.True(t, h.Available())
	require.NoError(t, h.Send(ctx, entity.RelayMessage{ID: "1", Type: entity.MessageGetSelection}))

	msg := <-h.Inbox()
	assert.Equal(t, entity.MessageGetSelection, msg.Type)

	require.NoError(t, h.Post(ctx, entity.RelayMessage{Type: entity.MessageSelectionData}))
	out := <-h.Outbox()
	assert.Equal(t, entity.MessageSelectionData, out.Type)
}

func TestChannel_PostDropsWhenFull(t *testing.T) {
	h := NewChannel(1)
	ctx := context.Background()

	require.NoError(t, h.Post(ctx, entity.RelayMessage{Type: entity.MessageSelectionChanged}))
	assert.ErrorIs(t, h.Post(ctx, entity.RelayMessage{Type: entity.MessageSelectionChanged}), ErrOutboxFull)
}

func TestChannel_Close(t *testing.T) {
	h := NewChannel(1)
	ctx := context.Background()

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())

	assert.False(t, h.Available())
	assert.ErrorIs(t, h.Post(ctx, entity.RelayMessage{Type: entity.MessageClose}), entity.ErrHostUnavailable)
	assert.ErrorIs(t, h.Send(ctx, entity.RelayMessage{Type: entity.MessageClose}), entity.ErrHostUnavailable)

	_, ok := <-h.Inbox()
	assert.False(t, ok)
}

func TestChannel_CloseReleasesPendingSend(t *testing.T) {
	h := NewChannel(0)

	sent := make(chan error, 1)
	go func() {
		sent <- h.Send(context.Background(), entity.RelayMessage{ID: "late", Type: entity.MessageGetSelection})
	}()
	time.Sleep(50 * time.Millisecond)

	closed := make(chan struct{})
	go func() {
		_ = h.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close waited on a Send nobody reads")
	}

	select {
	case err := <-sent:
		assert.ErrorIs(t, err, entity.ErrHostUnavailable)
	case <-time.After(2 * time.Second):
		t.Fatal("pending Send not released by Close")
	}

	_, ok := <-h.Inbox()
	assert.False(t, ok)
}

func TestChannel_ShowUI(t *testing.T) {
	h := NewChannel(1)

	_, ok := h.Surface()
	assert.False(t, ok)

	require.NoError(t, h.ShowUI(context.Background(), entity.SurfaceOptions{Width: 420, Height: 950}))
	surface, ok := h.Surface()
	assert.True(t, ok)
	assert.Equal(t, 950, surface.Height)
}

func dialWebSocket(t *testing.T) (*WebSocket, *websocket.Conn) {
	t.Helper()

	hosts := make(chan *WebSocket, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := Upgrade(w, r, logger.NewNop())
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hosts <- ws
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case ws := <-hosts:
		t.Cleanup(func() { ws.Close() })
		return ws, client
	case <-time.After(5 * time.Second):
		t.Fatal("server side never upgraded")
		return nil, nil
	}
}

func TestWebSocket_Inbox(t *testing.T) {
	ws, client := dialWebSocket(t)

	require.NoError(t, client.WriteJSON(entity.RelayMessage{ID: "q1", Type: entity.MessageGetSelection}))
	require.NoError(t, client.WriteJSON(map[string]any{"payload": "no type"}))
	require.NoError(t, client.WriteJSON(entity.RelayMessage{ID: "q2", Type: entity.MessageClose}))

	first := <-ws.Inbox()
	assert.Equal(t, "q1", first.ID)
	assert.Equal(t, entity.MessageGetSelection, first.Type)

	second := <-ws.Inbox()
	assert.Equal(t, "q2", second.ID, "untyped messages are skipped")
}

func TestWebSocket_PostAndShowUI(t *testing.T) {
	ws, client := dialWebSocket(t)
	ctx := context.Background()

	require.NoError(t, ws.ShowUI(ctx, entity.SurfaceOptions{Width: 420, Height: 950}))

	var msg entity.RelayMessage
	require.NoError(t, client.ReadJSON(&msg))
	assert.Equal(t, entity.MessageShowUI, msg.Type)
	assert.NotEmpty(t, msg.ID)

	var opts entity.SurfaceOptions
	require.NoError(t, msg.Decode(&opts))
	assert.Equal(t, entity.SurfaceOptions{Width: 420, Height: 950}, opts)
}

func TestWebSocket_ClientDisconnect(t *testing.T) {
	ws, client := dialWebSocket(t)

	require.NoError(t, client.Close())

	select {
	case _, ok := <-ws.Inbox():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("inbox not closed after disconnect")
	}

	<-ws.Done()
	assert.False(t, ws.Available())
	assert.ErrorIs(t, ws.Post(context.Background(), entity.RelayMessage{Type: entity.MessageSelectionData}), entity.ErrHostUnavailable)
}
