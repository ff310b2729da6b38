package config

import (
	"fmt"
)

type StoreKeyStruct struct{}

func NewStoreKeyStruct() *StoreKeyStruct {
	return &StoreKeyStruct{}
}

// SessionKey returns the key holding the active session JTI for a user
func (r *StoreKeyStruct) SessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// NotificationsKey returns the key holding a user's notification log
func (r *StoreKeyStruct) NotificationsKey(userID int) string {
	return fmt.Sprintf("evalai_notifications:%d", userID)
}

// NotificationSettingsKey returns the key holding a user's notification settings
func (r *StoreKeyStruct) NotificationSettingsKey(userID int) string {
	return fmt.Sprintf("evalai_notification_settings:%d", userID)
}

// DarkModeKey returns the key holding a user's dark-mode preference
func (r *StoreKeyStruct) DarkModeKey(userID int) string {
	return fmt.Sprintf("dark-mode:%d", userID)
}

// ProfileKey returns the key holding a user's legacy profile object
func (r *StoreKeyStruct) ProfileKey(userID int) string {
	return fmt.Sprintf("profile:%d", userID)
}

// GradingLockKey returns the key marking a user's in-flight evaluation
func (r *StoreKeyStruct) GradingLockKey(userID int) string {
	return fmt.Sprintf("grading:%d:inflight", userID)
}

// NotificationChannel returns the Redis PubSub channel for a user's notification stream
func (r *StoreKeyStruct) NotificationChannel(userID int) string {
	return fmt.Sprintf("user:%d:notifications", userID)
}

var StoreKey = NewStoreKeyStruct()
