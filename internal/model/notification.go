package model

// Notification is one entry in a user's reminder log.
// Timestamp is milliseconds since epoch, matching the persisted wire shape.
type Notification struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Read      bool   `json:"read"`
}

// NotificationSettings gates reminder emission. A single toggle controls all
// assignment reminders; when false no qualifying event produces a notification.
type NotificationSettings struct {
	Reminders bool `json:"reminders"`
}

// DefaultNotificationSettings is the state assumed when nothing has been
// persisted yet, or when the persisted payload cannot be parsed.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Reminders: true}
}

// UpdateNotificationSettingsRequest is the payload for changing the reminder toggle.
type UpdateNotificationSettingsRequest struct {
	Reminders *bool `json:"reminders" binding:"required"`
}
