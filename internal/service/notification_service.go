package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/config"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/notify"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/repository"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/websocket"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// userNotifications is one user's engine plus reminder settings. The engine
// guards itself; mu guards settings, so concurrent toggle writes and reminder
// checks for the same user stay serialized without the service-wide lock.
type userNotifications struct {
	engine *notify.Engine

	mu       sync.Mutex
	settings model.NotificationSettings
}

// reminders reads the toggle under the per-user lock.
func (u *userNotifications) reminders() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.settings.Reminders
}

// NotificationService owns per-user notification engines and the reminder
// toggle. State is loaded from the key-value store on first touch and written
// back (fire-and-forget) on every change; unparseable persisted payloads fall
// open to empty/default state.
type NotificationService struct {
	mu        sync.Mutex
	users     map[int]*userNotifications
	repo      repository.StateRepository
	persister *worker.StatePersister
	rdb       *redis.Client
	log       zerolog.Logger
	now       func() time.Time
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	repo repository.StateRepository,
	persister *worker.StatePersister,
	rdb *redis.Client,
	log zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		users:     make(map[int]*userNotifications),
		repo:      repo,
		persister: persister,
		rdb:       rdb,
		log:       log.With().Str("component", "notification_service").Logger(),
		now:       time.Now,
	}
}

// List returns the user's notification log (newest first) and unread count.
func (s *NotificationService) List(ctx context.Context, userID int) ([]model.Notification, int) {
	u := s.stateFor(ctx, userID)
	return u.engine.Items(), u.engine.UnreadCount()
}

// MarkAllRead flags every notification as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) {
	u := s.stateFor(ctx, userID)
	u.engine.MarkAllRead()
	s.persistLog(userID, u)
}

// Remove deletes one notification by id. No-op if absent.
func (s *NotificationService) Remove(ctx context.Context, userID int, id string) {
	u := s.stateFor(ctx, userID)
	u.engine.Remove(id)
	s.persistLog(userID, u)
}

// ClearAll empties the notification log.
func (s *NotificationService) ClearAll(ctx context.Context, userID int) {
	u := s.stateFor(ctx, userID)
	u.engine.ClearAll()
	s.persistLog(userID, u)
}

// Settings returns the user's notification settings.
func (s *NotificationService) Settings(ctx context.Context, userID int) model.NotificationSettings {
	u := s.stateFor(ctx, userID)

	u.mu.Lock()
	defer u.mu.Unlock()
	return u.settings
}

// UpdateSettings sets the reminder toggle and persists it.
func (s *NotificationService) UpdateSettings(ctx context.Context, userID int, reminders bool) model.NotificationSettings {
	u := s.stateFor(ctx, userID)

	u.mu.Lock()
	u.settings.Reminders = reminders
	settings := u.settings
	u.mu.Unlock()

	payload, err := json.Marshal(settings)
	if err == nil {
		s.persister.Enqueue(worker.PersistJob{
			Key:   config.StoreKey.NotificationSettingsKey(userID),
			Value: string(payload),
		})
	}
	return settings
}

// AssignmentCreated evaluates a newly added assignment against the reminder
// rules. Emits nothing when reminders are disabled or the due date is in the
// future.
func (s *NotificationService) AssignmentCreated(ctx context.Context, userID int, title string, due time.Time) {
	u := s.stateFor(ctx, userID)
	if !u.reminders() {
		return
	}
	if msg := notify.AssignmentCreated(title, due, s.now()); msg != "" {
		s.emit(ctx, userID, u, msg)
	}
}

// AssignmentCompleted evaluates a false-to-true completion transition.
// The caller is responsible for only invoking this on that transition.
func (s *NotificationService) AssignmentCompleted(ctx context.Context, userID int, title string, due time.Time) {
	u := s.stateFor(ctx, userID)
	if !u.reminders() {
		return
	}
	if msg := notify.AssignmentCompleted(title, due, s.now()); msg != "" {
		s.emit(ctx, userID, u, msg)
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

// stateFor returns the user's in-memory state, loading it from the key-value
// store on first access. The load happens outside the registry lock so a cold
// cache for one user never blocks traffic for others; a concurrent first
// touch may load twice, but only one result is kept.
func (s *NotificationService) stateFor(ctx context.Context, userID int) *userNotifications {
	s.mu.Lock()
	if u, ok := s.users[userID]; ok {
		s.mu.Unlock()
		return u
	}
	s.mu.Unlock()

	u := s.loadState(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[userID]; ok {
		return existing
	}
	s.users[userID] = u
	return u
}

// loadState reads a user's persisted log and settings, falling open to
// empty/default state on anything unreadable.
func (s *NotificationService) loadState(ctx context.Context, userID int) *userNotifications {
	u := &userNotifications{
		engine:   notify.NewEngine(),
		settings: model.DefaultNotificationSettings(),
	}

	if raw, ok, err := s.repo.Get(ctx, config.StoreKey.NotificationsKey(userID)); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Failed to load notification log")
	} else if ok {
		var items []model.Notification
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			s.log.Warn().Err(err).Int("user_id", userID).Msg("Corrupt notification log, starting empty")
		} else {
			u.engine.Restore(items)
		}
	}

	if raw, ok, err := s.repo.Get(ctx, config.StoreKey.NotificationSettingsKey(userID)); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Failed to load notification settings")
	} else if ok {
		var settings model.NotificationSettings
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			s.log.Warn().Err(err).Int("user_id", userID).Msg("Corrupt notification settings, using defaults")
		} else {
			u.settings = settings
		}
	}

	return u
}

// emit appends a notification, persists the log, and publishes it to the
// user's live stream channel.
func (s *NotificationService) emit(ctx context.Context, userID int, u *userNotifications, message string) {
	item := u.engine.Emit(message)
	s.persistLog(userID, u)

	if s.rdb == nil {
		return
	}
	event := websocket.NotificationEvent{
		Event:        websocket.EventNotification,
		Notification: item,
		UnreadCount:  u.engine.UnreadCount(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	channel := config.StoreKey.NotificationChannel(userID)
	if err := s.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Failed to publish notification event")
	}
}

// persistLog snapshots the log through the background persister.
func (s *NotificationService) persistLog(userID int, u *userNotifications) {
	payload, err := json.Marshal(u.engine.Items())
	if err != nil {
		s.log.Error().Err(err).Int("user_id", userID).Msg("Failed to marshal notification log")
		return
	}
	s.persister.Enqueue(worker.PersistJob{
		Key:   config.StoreKey.NotificationsKey(userID),
		Value: string(payload),
	})
}
