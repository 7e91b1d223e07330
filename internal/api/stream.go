package api

import (
	"net/http"
	"time"

	"github.com/haedavja/hahahahgo/internal/constants"
	"github.com/haedavja/hahahahgo/internal/game"
	"github.com/haedavja/hahahahgo/internal/logging"
	"github.com/haedavja/hahahahgo/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The session cookie already gates the endpoint.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	streamPollInterval = 500 * time.Millisecond
	streamWriteWait    = 5 * time.Second
	streamPingPeriod   = 30 * time.Second
)

type streamFrame struct {
	Turn    int          `json:"turn"`
	Phase   string       `json:"phase"`
	Outcome game.Outcome `json:"outcome"`
	Events  []game.Event `json:"events"`
}

// StreamBattle pushes battle log updates over a websocket. Frames carry only
// the events appended since the previous frame; the client keeps its own
// cursor in sync by counting.
func StreamBattle(repo storage.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := repo.GetBattleByUUID(c.Param("battleID"))
		if err != nil || b == nil {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
			return
		}
		if b.PlayerEmail != sessionEmail(c) {
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotYourBattle})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logging.Error("websocket upgrade failed", err, logging.Fields{constants.LogFieldBattleID: b.BattleUUID})
			return
		}
		defer conn.Close()

		// Discard client messages but notice disconnects.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		sent := 0
		ticker := time.NewTicker(streamPollInterval)
		pinger := time.NewTicker(streamPingPeriod)
		defer ticker.Stop()
		defer pinger.Stop()

		for {
			select {
			case <-c.Request.Context().Done():
				return
			case <-pinger.C:
				conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-ticker.C:
				cur, err := repo.GetBattleByUUID(b.BattleUUID)
				if err != nil || cur == nil {
					return
				}
				log := cur.State.Log
				if len(log) > sent || cur.Status != game.StatusInProgress {
					frame := streamFrame{
						Turn:    cur.Turn,
						Phase:   cur.Phase,
						Outcome: cur.Outcome,
					}
					if len(log) > sent {
						frame.Events = log[sent:]
						sent = len(log)
					}
					conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
					if err := conn.WriteJSON(frame); err != nil {
						return
					}
				}
				if cur.Status != game.StatusInProgress {
					return
				}
			}
		}
	}
}
