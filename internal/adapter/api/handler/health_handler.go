package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type ConnectionTester interface {
	TestConnection(ctx context.Context) error
}

type HealthHandler struct {
	firebaseAuth ConnectionTester
	connected    func() int
}

var healthHandler *HealthHandler

func NewHealthHandler(firebaseAuth ConnectionTester, connected func() int) *HealthHandler {
	return &HealthHandler{
		firebaseAuth: firebaseAuth,
		connected:    connected,
	}
}

func SetupHealthHandler(firebaseAuth ConnectionTester, connected func() int) {
	healthHandler = NewHealthHandler(firebaseAuth, connected)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	body := map[string]interface{}{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	}
	if h.connected != nil {
		body["websocket_clients"] = h.connected()
	}
	return c.JSON(http.StatusOK, body)
}

func (h *HealthHandler) CheckFirebaseHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.firebaseAuth.TestConnection(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "Firebase Auth connection failed",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "Firebase Auth connected successfully",
	})
}
