package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"deyelegliz/internal/adapter/api/middleware"
	"deyelegliz/internal/infrastructure/ratelimit"
	ws "deyelegliz/internal/infrastructure/websocket"
	"deyelegliz/pkg/errors"
	"deyelegliz/pkg/logger"
	"deyelegliz/pkg/response"
)

const actionSubscribe = "subscribe"

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	source         ws.Source
	limiter        *ratelimit.RateLimiter
	upgrader       gorillaws.Upgrader
}

func NewWebSocketHandler(
	wsManager *ws.Manager,
	authMiddleware *middleware.AuthMiddleware,
	source ws.Source,
	limiter *ratelimit.RateLimiter,
	allowedOrigins []string,
) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		source:         source,
		limiter:        limiter,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

// HandleWebSocket upgrades anonymous visitors too; a "token" query parameter
// unlocks the per-user channels.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	var userID string
	if token := c.QueryParam("token"); token != "" {
		uid, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}
		userID = uid
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("websocket upgrade failed: %v", err)
		return nil
	}

	ip := c.RealIP()
	allow := func(uid string) bool {
		ok, _ := h.limiter.Allow(ip+"|"+uid, actionSubscribe)
		return ok
	}

	// The request context ends when this handler returns; the manager owns the
	// client's lifetime from here on.
	client := ws.NewClient(context.Background(), uuid.NewString(), userID, conn, h.source, allow)
	if !h.wsManager.Join(client) {
		client.Close()
		conn.Close()
		return nil
	}

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
