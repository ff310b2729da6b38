package websocket

import "github.com/Raunak-23/EvalAI-paper-correction/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is the only client-to-server message on the notification
// stream; the stream is otherwise one-way.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError        Event = "error"
	EventSnapshot     Event = "snapshot"
	EventNotification Event = "notification"
	EventPong         Event = "pong"
)

// SnapshotEvent carries the full notification log and unread count, sent once
// when a client connects.
type SnapshotEvent struct {
	Event         Event                `json:"event"`
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int                  `json:"unread_count"`
}

// NotificationEvent carries one newly emitted notification.
type NotificationEvent struct {
	Event        Event              `json:"event"`
	Notification model.Notification `json:"notification"`
	UnreadCount  int                `json:"unread_count"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
