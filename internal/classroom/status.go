package classroom

import (
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
)

// Status is the display state of an assignment. It is derived on every read
// from (due, completed, now) and is never stored, so it cannot go stale.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusOngoing   Status = "Ongoing"
	StatusUpcoming  Status = "Upcoming"
)

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ParseDue parses an assignment due date ("2006-01-02", no time component).
func ParseDue(due string) (time.Time, error) {
	return time.Parse(model.DueDateLayout, due)
}

// ResolveStatus derives the display status of an assignment.
//
// An explicit completion flag wins over any date logic. Otherwise an
// assignment due today is Ongoing and one due later is Upcoming. A past-due
// assignment that was never marked done also resolves to Completed; that
// policy conflates "overdue" with "done" and is kept for compatibility with
// the existing client.
func ResolveStatus(due time.Time, completed bool, now time.Time) Status {
	if completed {
		return StatusCompleted
	}
	if SameDay(due, now) {
		return StatusOngoing
	}
	if due.After(now) {
		return StatusUpcoming
	}
	return StatusCompleted
}
