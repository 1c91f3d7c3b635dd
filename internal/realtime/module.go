package realtime

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Module exposes the websocket endpoint and owns the hub.
type Module struct {
	hub            *Hub
	allowedOrigins []string
}

func NewModule(log *slog.Logger, allowedOrigins []string) *Module {
	return &Module{
		hub:            NewHub(log),
		allowedOrigins: allowedOrigins,
	}
}

// Hub returns the hub so mutation services can publish change events.
func (m *Module) Hub() *Hub {
	return m.hub
}

func (m *Module) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws", ServeWS(m.hub, m.allowedOrigins))
}
