package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/config"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/middleware"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/service"
	ws "github.com/Raunak-23/EvalAI-paper-correction/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams notification events to connected clients.
type WSHandler struct {
	rdb                 *redis.Client
	notificationService *service.NotificationService
	log                 zerolog.Logger
	upgrader            websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, notificationService *service.NotificationService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:                 rdb,
		notificationService: notificationService,
		log:                 log.With().Str("component", "ws_handler").Logger(),
		upgrader:            buildUpgrader(allowedOrigins),
	}
}

// NotificationStream godoc
// WS /ws/v1/notifications
// Upgrades to WebSocket, sends the current log as a snapshot, then relays
// each newly emitted notification for this user as it happens.
func (h *WSHandler) NotificationStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	userID := claims.UserID
	wsLog := h.log.With().Int("user_id", userID).Logger()
	wsLog.Info().Msg("Notification stream connected")

	// Writes come from two goroutines (pubsub relay and pong replies).
	var writeMu sync.Mutex
	write := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return ws.WriteTyped(conn, v)
	}

	// Initial snapshot so the client does not need a separate fetch.
	items, unread := h.notificationService.List(c.Request.Context(), userID)
	if err := write(ws.SnapshotEvent{
		Event:         ws.EventSnapshot,
		Notifications: items,
		UnreadCount:   unread,
	}); err != nil {
		wsLog.Debug().Err(err).Msg("Snapshot write failed")
		return
	}

	pubsub := h.rdb.Subscribe(c.Request.Context(), config.StoreKey.NotificationChannel(userID))
	defer pubsub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range pubsub.Channel() {
			var event ws.NotificationEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				wsLog.Warn().Err(err).Msg("Malformed notification event")
				continue
			}
			if err := write(event); err != nil {
				return
			}
		}
	}()

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		if msg.Action == ws.ActionPing {
			if err := write(ws.PongResponse{Event: ws.EventPong}); err != nil {
				break
			}
		}
	}

	pubsub.Close()
	<-done
	wsLog.Info().Msg("Notification stream disconnected")
}
