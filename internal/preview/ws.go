package preview

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"jsbin/internal/system"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// wsUpgrader upgrades HTTP connections to WebSocket.
var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
}

// streamUpdates streams Updates to one preview page.
//
// Protocol: the server sends JSON {"version":n,"doc":"..."} text frames,
// newest first on connect. The client sends nothing but pongs.
func (s *Server) streamUpdates(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		system.Logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	id, updates, cancel := s.Surface.Subscribe()
	defer cancel()
	system.Logger.Debug("viewer connected", "id", id)

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

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-closed:
			system.Logger.Debug("viewer disconnected", "id", id)
			return
		case <-c.Request.Context().Done():
			return
		case u := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(u); err != nil {
				system.Logger.Debug("viewer write failed", "id", id, "err", err)
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
