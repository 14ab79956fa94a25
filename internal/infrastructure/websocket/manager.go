package websocket

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"deyelegliz/pkg/errors"
	"deyelegliz/pkg/logger"
)

const (
	MessageTypeSubscribe   = "subscribe"
	MessageTypeUnsubscribe = "unsubscribe"
	MessageTypeSnapshot    = "snapshot"
	MessageTypeError       = "error"
	MessageTypePing        = "ping"
	MessageTypePong        = "pong"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

type InboundMessage struct {
	Type    string            `json:"type"`
	Channel string            `json:"channel"`
	Params  map[string]string `json:"params,omitempty"`
}

type FrameError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type OutboundMessage struct {
	Type      string      `json:"type"`
	Channel   string      `json:"channel,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *FrameError `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Subscription identifies what a client asked to follow.
type Subscription struct {
	Channel string
	Params  map[string]string
}

// Source runs one live query until ctx is done, emitting each result set.
type Source interface {
	Stream(ctx context.Context, uid string, sub Subscription, emit func(data interface{})) error
}

// Client represents a WebSocket connection client
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	source Source
	subs   *Subscriptions
	allow  func(uid string) bool
	ctx    context.Context
	cancel context.CancelFunc
}

func NewClient(parent context.Context, id, userID string, conn *websocket.Conn, source Source, allow func(uid string) bool) *Client {
	ctx, cancel := context.WithCancel(parent)
	return &Client{
		ID:     id,
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 64),
		source: source,
		subs:   NewSubscriptions(ctx),
		allow:  allow,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Manager tracks connected clients so they can be closed on shutdown.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.ID] = client
				m.mutex.Unlock()
				logger.Debug("ws client registered: %s (user %s)", client.ID, client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.ID]; ok {
					delete(m.clients, client.ID)
				}
				m.mutex.Unlock()
				logger.Debug("ws client unregistered: %s", client.ID)

			case <-ctx.Done():
				m.mutex.Lock()
				for id, client := range m.clients {
					client.cancel()
					delete(m.clients, id)
				}
				m.mutex.Unlock()
				close(m.done)
				return
			}
		}
	}()
}

// Join registers c, reporting false once the manager has shut down.
func (m *Manager) Join(c *Client) bool {
	select {
	case m.Register <- c:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manager) ConnectedCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

func frame(msg OutboundMessage) []byte {
	msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	b, err := json.Marshal(msg)
	if err != nil {
		logger.Error("ws frame marshal failed: %v", err)
		return nil
	}
	return b
}

// push queues a frame unless the client is shutting down.
func (c *Client) push(ctx context.Context, msg OutboundMessage) {
	b := frame(msg)
	if b == nil {
		return
	}
	select {
	case c.Send <- b:
	case <-ctx.Done():
	}
}

func errorFrame(channel string, err error) OutboundMessage {
	code, message := errors.CodeInternal, "Live query failed"
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Status < 500 {
		code, message = appErr.Code, appErr.Message
	}
	return OutboundMessage{Type: MessageTypeError, Channel: channel, Error: &FrameError{Code: code, Message: message}}
}

// Handle applies one inbound message. Exposed for tests without a socket.
func (c *Client) Handle(msg InboundMessage) {
	switch msg.Type {
	case MessageTypeSubscribe:
		if msg.Channel == "" {
			c.push(c.ctx, errorFrame("", errors.BadRequest("channel is required", nil)))
			return
		}
		if c.allow != nil && !c.allow(c.UserID) {
			c.push(c.ctx, errorFrame(msg.Channel, errors.TooManyRequests("Too many subscriptions, slow down", nil)))
			return
		}
		sub := Subscription{Channel: msg.Channel, Params: msg.Params}
		c.subs.Replace(msg.Channel, func(ctx context.Context) {
			err := c.source.Stream(ctx, c.UserID, sub, func(data interface{}) {
				c.push(ctx, OutboundMessage{Type: MessageTypeSnapshot, Channel: sub.Channel, Data: data})
			})
			if err != nil && ctx.Err() == nil {
				logger.Warn("ws stream %s for %s ended: %v", sub.Channel, c.UserID, err)
				c.push(ctx, errorFrame(sub.Channel, err))
			}
		})

	case MessageTypeUnsubscribe:
		c.subs.Cancel(msg.Channel)

	case MessageTypePing:
		c.push(c.ctx, OutboundMessage{Type: MessageTypePong})

	default:
		c.push(c.ctx, errorFrame(msg.Channel, errors.BadRequest("unknown message type "+msg.Type, nil)))
	}
}

// Close stops every subscription owned by the client.
func (c *Client) Close() {
	c.cancel()
	c.subs.Close()
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		c.Close()
		select {
		case m.Unregister <- c:
		case <-m.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws read error for %s: %v", c.UserID, err)
			}
			return
		}

		var msg InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.push(c.ctx, errorFrame("", errors.BadRequest("malformed message", err)))
			continue
		}
		c.Handle(msg)
	}
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("ws write error for %s: %v", c.UserID, err)
				c.cancel()
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.cancel()
				return
			}
		case <-c.ctx.Done():
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
