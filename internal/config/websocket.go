package config

import (
	"net/http"
	"os"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket builds the connection upgrader. WS_ALLOWED_ORIGIN
// restricts upgrades to one origin; unset allows all.
func NewWebSocket() (*WebSocket, error) {
	allowedOrigin := os.Getenv("WS_ALLOWED_ORIGIN")

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	ws := &WebSocket{
		Upgrader: upgrader,
	}

	return ws, nil
}
