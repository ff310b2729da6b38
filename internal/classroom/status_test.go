package classroom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(
		time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC),
		time.Date(2025, 1, 1, 23, 59, 59, 0, time.UTC),
	))
	assert.False(t, SameDay(date(2025, 1, 1), date(2025, 1, 2)))
	assert.False(t, SameDay(date(2025, 1, 1), date(2025, 2, 1)))
	assert.False(t, SameDay(date(2025, 1, 1), date(2026, 1, 1)))
}

func TestParseDue(t *testing.T) {
	due, err := ParseDue("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, date(2025, 1, 15), due)

	_, err = ParseDue("15/01/2025")
	assert.Error(t, err)

	_, err = ParseDue("")
	assert.Error(t, err)
}

func TestResolveStatus_CompletedWins(t *testing.T) {
	now := date(2025, 1, 10)

	// Completion overrides date logic in every position relative to now.
	assert.Equal(t, StatusCompleted, ResolveStatus(date(2025, 1, 5), true, now))
	assert.Equal(t, StatusCompleted, ResolveStatus(date(2025, 1, 10), true, now))
	assert.Equal(t, StatusCompleted, ResolveStatus(date(2025, 1, 20), true, now))
}

func TestResolveStatus_DueToday(t *testing.T) {
	now := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, StatusOngoing, ResolveStatus(date(2025, 1, 10), false, now))
}

func TestResolveStatus_Future(t *testing.T) {
	now := date(2025, 1, 10)
	assert.Equal(t, StatusUpcoming, ResolveStatus(date(2025, 1, 11), false, now))
	assert.Equal(t, StatusUpcoming, ResolveStatus(date(2026, 6, 1), false, now))
}

func TestResolveStatus_OverdueResolvesCompleted(t *testing.T) {
	// A past-due assignment never marked done still reads Completed.
	now := date(2025, 1, 10)
	assert.Equal(t, StatusCompleted, ResolveStatus(date(2025, 1, 9), false, now))
	assert.Equal(t, StatusCompleted, ResolveStatus(date(2024, 12, 1), false, now))
}

func TestResolveStatus_DerivedNotStale(t *testing.T) {
	// The same assignment resolves differently as the clock moves past it.
	due := date(2025, 1, 10)

	assert.Equal(t, StatusUpcoming, ResolveStatus(due, false, date(2025, 1, 9)))
	assert.Equal(t, StatusOngoing, ResolveStatus(due, false, date(2025, 1, 10)))
	assert.Equal(t, StatusCompleted, ResolveStatus(due, false, date(2025, 1, 11)))
}
