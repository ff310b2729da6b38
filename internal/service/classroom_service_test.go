package service

import (
	"context"
	"testing"
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/classroom"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassroomService(t *testing.T) (*ClassroomService, *NotificationService) {
	t.Helper()
	repo := newMemStateRepo()
	p, drain := testPersister(repo)
	t.Cleanup(drain)

	notifications := newTestNotificationService(repo, p)
	return NewClassroomService(notifications, zerolog.Nop()), notifications
}

func TestAddAssignment_InvalidDueRejectedBeforeStore(t *testing.T) {
	s, _ := newTestClassroomService(t)
	cls, err := s.AddClass(1, "CS101", "Mon 10:00")
	require.NoError(t, err)

	err = s.AddAssignment(context.Background(), 1, cls.ID, "HW1", "not-a-date")
	require.Error(t, err)

	// The invalid assignment never reached the store.
	classes := s.Classes(1)
	require.Len(t, classes, 1)
	assert.Empty(t, classes[0].Assignments)
}

func TestAddAssignment_UnknownClass(t *testing.T) {
	s, _ := newTestClassroomService(t)
	err := s.AddAssignment(context.Background(), 1, 999, "HW1", "2025-01-01")
	assert.ErrorIs(t, err, classroom.ErrClassNotFound)
}

func TestAddAssignment_DueTodayEmitsReminder(t *testing.T) {
	s, notifications := newTestClassroomService(t)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	notifications.now = func() time.Time { return now }

	cls, err := s.AddClass(1, "CS101", "Mon 10:00")
	require.NoError(t, err)
	require.NoError(t, s.AddAssignment(context.Background(), 1, cls.ID, "HW1", "2025-01-01"))

	items, _ := notifications.List(context.Background(), 1)
	require.Len(t, items, 1)
	assert.Equal(t, `Assignment "HW1" is due today`, items[0].Message)
}

func TestSetCompletion_OnlyTransitionNotifies(t *testing.T) {
	s, notifications := newTestClassroomService(t)
	now := time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)
	notifications.now = func() time.Time { return now }

	cls, err := s.AddClass(1, "CS101", "Mon 10:00")
	require.NoError(t, err)
	// Future due date: creation emits nothing.
	require.NoError(t, s.AddAssignment(context.Background(), 1, cls.ID, "HW1", "2025-02-01"))

	items, _ := notifications.List(context.Background(), 1)
	require.Empty(t, items)

	// false -> true notifies.
	require.NoError(t, s.SetCompletion(context.Background(), 1, cls.ID, 0, true))
	items, _ = notifications.List(context.Background(), 1)
	require.Len(t, items, 1)
	assert.Equal(t, `Assignment "HW1" marked as completed`, items[0].Message)

	// Repeating true and unchecking both stay silent.
	require.NoError(t, s.SetCompletion(context.Background(), 1, cls.ID, 0, true))
	require.NoError(t, s.SetCompletion(context.Background(), 1, cls.ID, 0, false))
	items, _ = notifications.List(context.Background(), 1)
	assert.Len(t, items, 1)

	// Completing again after the uncheck is a fresh false -> true transition
	// and notifies a second time.
	require.NoError(t, s.SetCompletion(context.Background(), 1, cls.ID, 0, true))
	items, _ = notifications.List(context.Background(), 1)
	require.Len(t, items, 2)
	assert.Equal(t, `Assignment "HW1" marked as completed`, items[0].Message)
}

func TestSetCompletion_LateCompletionMessage(t *testing.T) {
	s, notifications := newTestClassroomService(t)

	createdAt := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	notifications.now = func() time.Time { return createdAt }

	cls, err := s.AddClass(1, "CS101", "Mon 10:00")
	require.NoError(t, err)
	require.NoError(t, s.AddAssignment(context.Background(), 1, cls.ID, "HW1", "2025-01-02"))

	// Complete it three days after the due date.
	notifications.now = func() time.Time { return time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC) }
	require.NoError(t, s.SetCompletion(context.Background(), 1, cls.ID, 0, true))

	items, _ := notifications.List(context.Background(), 1)
	require.Len(t, items, 1)
	assert.Equal(t, `Assignment "HW1" was completed late`, items[0].Message)
}

func TestClassroomStoresIsolatedPerUser(t *testing.T) {
	s, _ := newTestClassroomService(t)

	_, err := s.AddClass(1, "CS101", "Mon 10:00")
	require.NoError(t, err)

	assert.Len(t, s.Classes(1), 1)
	assert.Empty(t, s.Classes(2))
}
