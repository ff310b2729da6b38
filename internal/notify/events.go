package notify

import (
	"fmt"
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/classroom"
)

// Reminder derivation for assignment lifecycle events. Each function returns
// the reminder message for a qualifying event, or "" when the event does not
// qualify. Whether reminders are enabled at all is the caller's concern.

// AssignmentCreated derives the reminder for a newly added assignment.
// Only due-today and already-overdue assignments qualify.
func AssignmentCreated(title string, due, now time.Time) string {
	switch {
	case classroom.SameDay(due, now):
		return fmt.Sprintf("Assignment %q is due today", title)
	case due.Before(now):
		return fmt.Sprintf("Assignment %q is already overdue", title)
	default:
		return ""
	}
}

// AssignmentCompleted derives the reminder for a false-to-true completion
// transition. Every such transition qualifies; the message reflects timing.
// Toggling an assignment back to incomplete never produces a reminder.
func AssignmentCompleted(title string, due, now time.Time) string {
	switch {
	case classroom.SameDay(due, now):
		return fmt.Sprintf("Assignment %q completed on time", title)
	case now.After(due):
		return fmt.Sprintf("Assignment %q was completed late", title)
	default:
		return fmt.Sprintf("Assignment %q marked as completed", title)
	}
}
