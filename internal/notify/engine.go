package notify

import (
	"sync"
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
	"github.com/google/uuid"
)

// MaxItems caps the notification log; the oldest entries are evicted first.
const MaxItems = 50

// Engine maintains one user's time-ordered notification log, newest first.
type Engine struct {
	mu    sync.Mutex
	items []model.Notification
	now   func() time.Time
	newID func() string
}

// NewEngine creates an empty Engine.
func NewEngine() *Engine {
	return &Engine{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Restore replaces the log with previously persisted items, newest first,
// truncated to the cap. Used when loading a user's state.
func (e *Engine) Restore(items []model.Notification) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	e.items = make([]model.Notification, len(items))
	copy(e.items, items)
}

// Emit prepends a new unread notification and truncates the log to the cap.
func (e *Engine) Emit(message string) model.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	item := model.Notification{
		ID:        e.newID(),
		Message:   message,
		Timestamp: e.now().UnixMilli(),
		Read:      false,
	}

	next := make([]model.Notification, 0, len(e.items)+1)
	next = append(next, item)
	next = append(next, e.items...)
	if len(next) > MaxItems {
		next = next[:MaxItems]
	}
	e.items = next
	return item
}

// MarkAllRead flags every item as read. Idempotent.
func (e *Engine) MarkAllRead() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		e.items[i].Read = true
	}
}

// Remove deletes the item with the given id. No-op if absent.
func (e *Engine) Remove(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID == id {
			e.items = append(e.items[:i], e.items[i+1:]...)
			return
		}
	}
}

// ClearAll empties the log.
func (e *Engine) ClearAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = nil
}

// UnreadCount counts items with read=false. Recomputed on every call rather
// than cached, so it cannot drift from the log.
func (e *Engine) UnreadCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for i := range e.items {
		if !e.items[i].Read {
			n++
		}
	}
	return n
}

// Items returns a snapshot of the log, newest first.
func (e *Engine) Items() []model.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]model.Notification, len(e.items))
	copy(out, e.items)
	return out
}
