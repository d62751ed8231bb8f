package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The dashboard may be served from a different origin than the API.
		// The session cookie check in requireAdmin gates access.
		return true
	},
}

func (s *Server) handleStatsWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Warn("Failed to upgrade WebSocket", "error", err)
		return nil
	}

	if err := s.broadcaster.Register(conn); err != nil {
		slog.Warn("Rejected dashboard client", "error", err)
		_ = conn.Close()
		return nil
	}

	// Read pump (blocks until disconnect)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.broadcaster.Unregister(conn)
	return nil
}
