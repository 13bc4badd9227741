package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/apolaki-ghub/Project3/internal/middleware"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ReportFeed godoc
// @Summary      Report event feed (WebSocket)
// @Description  Upgrades to a WebSocket and pushes a JSON event each time a report is written.
// @Description  **This is not a plain HTTP endpoint**; connect with `ws://` or `wss://`.
// @Tags         Events
// @Success      101  {string}  string  "Switching Protocols"
// @Router       /ws/reports [get]
func (h *Handler) ReportFeed(c *gin.Context) {
	log := middleware.Logger(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("ReportFeed(): failed to upgrade to WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	feed, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()
	log.Info("ReportFeed(): listener connected", zap.Int("listeners", h.hub.Subscribers()))

	// Read pump: only control frames are expected; any read error ends the session.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			log.Info("ReportFeed(): listener disconnected")
			return
		case event, ok := <-feed:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				log.Warn("ReportFeed(): failed to send event", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
