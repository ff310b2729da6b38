package model

// DueDateLayout is the calendar-date format assignments carry (no time component).
const DueDateLayout = "2006-01-02"

// Assignment is a single piece of work inside a class. It has no id of its
// own; its position in the class's list is its identity, so the list is
// append-only and indexes stay stable for the lifetime of the entry.
type Assignment struct {
	Title     string `json:"title"`
	Due       string `json:"due"`
	Completed bool   `json:"completed"`
}

// Class groups assignments under a name and a timetable slot.
// The id is derived from the creation timestamp.
type Class struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Slot        string       `json:"slot"`
	Assignments []Assignment `json:"assignments"`
}

// CreateClassRequest is the payload for adding a class.
type CreateClassRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Slot string `json:"slot" binding:"required,min=1,max=50"`
}

// AddAssignmentRequest is the payload for adding an assignment to a class.
type AddAssignmentRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
	Due   string `json:"due" binding:"required,datetime=2006-01-02"`
}

// SetCompletionRequest is the payload for toggling an assignment's completion flag.
type SetCompletionRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}
