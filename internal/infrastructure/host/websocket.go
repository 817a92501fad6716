package host

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"fixbridge/internal/application/port/output"
	"fixbridge/internal/domain/entity"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 1 << 20
	inboxSize      = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Local-only tool: any page may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

var _ output.MessagingHost = (*WebSocket)(nil)

// WebSocket hosts one controlling UI connection.
type WebSocket struct {
	conn   *websocket.Conn
	inbox  chan entity.RelayMessage
	logger output.LoggerPort

	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

// Upgrade accepts a websocket connection and starts reading from it.
func Upgrade(w http.ResponseWriter, r *http.Request, logger output.LoggerPort) (*WebSocket, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket upgrade: %w", err)
	}
	return NewWebSocket(conn, logger), nil
}

func NewWebSocket(conn *websocket.Conn, logger output.LoggerPort) *WebSocket {
	ws := &WebSocket{
		conn:   conn,
		inbox:  make(chan entity.RelayMessage, inboxSize),
		logger: logger.WithField("remote", conn.RemoteAddr().String()),
		done:   make(chan struct{}),
	}
	conn.SetReadLimit(maxMessageSize)
	go ws.readLoop()
	return ws
}

func (ws *WebSocket) readLoop() {
	defer close(ws.inbox)
	defer ws.Close()

	for {
		var msg entity.RelayMessage
		if err := ws.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ws.logger.Warn("Websocket read failed", "error", err)
			}
			return
		}
		if msg.Type == "" {
			ws.logger.Debug("Message without type ignored")
			continue
		}
		select {
		case ws.inbox <- msg:
		case <-ws.done:
			return
		}
	}
}

func (ws *WebSocket) Available() bool {
	select {
	case <-ws.done:
		return false
	default:
		return true
	}
}

func (ws *WebSocket) Post(ctx context.Context, msg entity.RelayMessage) error {
	if !ws.Available() {
		return entity.NewHostUnavailable("websocket.post")
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	ws.writeMu.Lock()
	defer ws.writeMu.Unlock()
	if err := ws.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := ws.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("write %s: %w", msg.Type, err)
	}
	return nil
}

func (ws *WebSocket) Inbox() <-chan entity.RelayMessage {
	return ws.inbox
}

// ShowUI forwards the surface request to the connected UI.
func (ws *WebSocket) ShowUI(ctx context.Context, opts entity.SurfaceOptions) error {
	msg, err := entity.NewRelayMessage(entity.MessageShowUI, opts)
	if err != nil {
		return err
	}
	return ws.Post(ctx, msg)
}

func (ws *WebSocket) Done() <-chan struct{} {
	return ws.done
}

func (ws *WebSocket) Close() error {
	var err error
	ws.closeOnce.Do(func() {
		close(ws.done)
		ws.writeMu.Lock()
		_ = ws.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		ws.writeMu.Unlock()
		err = ws.conn.Close()
	})
	return err
}
