package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAssignmentCreated(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

	// Due today qualifies regardless of the time of day.
	assert.Equal(t, `Assignment "HW1" is due today`,
		AssignmentCreated("HW1", day(2025, 1, 1), now))

	// Already past due qualifies with the overdue message.
	assert.Equal(t, `Assignment "HW1" is already overdue`,
		AssignmentCreated("HW1", day(2024, 12, 30), now))

	// Future due dates produce nothing at creation time.
	assert.Empty(t, AssignmentCreated("HW1", day(2025, 1, 2), now))
	assert.Empty(t, AssignmentCreated("HW1", day(2025, 6, 1), now))
}

func TestAssignmentCompleted(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, `Assignment "HW1" completed on time`,
		AssignmentCompleted("HW1", day(2025, 1, 1), now))

	assert.Equal(t, `Assignment "HW1" was completed late`,
		AssignmentCompleted("HW1", day(2024, 12, 30), now))

	// Completing ahead of the due date always says something.
	assert.Equal(t, `Assignment "HW1" marked as completed`,
		AssignmentCompleted("HW1", day(2025, 1, 5), now))
}
