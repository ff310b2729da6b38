package classroom

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
)

// Store-level errors. Blank fields are a caller validation failure; unknown
// class or index references are a contract violation by the caller.
var (
	ErrBlankField         = errors.New("name and slot must not be blank")
	ErrClassNotFound      = errors.New("class not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// Store holds one user's classes and their assignments in memory.
//
// Mutations replace the affected class's assignment list wholesale
// (copy-on-write), so a snapshot taken by Classes is never observed
// partially updated by a concurrent reader.
type Store struct {
	mu      sync.RWMutex
	classes []model.Class
	lastID  int64
	now     func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// AddClass appends a new class with a fresh id and an empty assignment list.
// Returns ErrBlankField if name or slot is empty or whitespace.
func (s *Store) AddClass(name, slot string) (model.Class, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(slot) == "" {
		return model.Class{}, ErrBlankField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Class ids are creation timestamps (ms). Bump on collision so two
	// classes created within the same millisecond stay distinct.
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	cls := model.Class{
		ID:          id,
		Name:        name,
		Slot:        slot,
		Assignments: []model.Assignment{},
	}
	s.classes = append(s.classes, cls)
	return cls, nil
}

// AddAssignment appends an assignment with completed=false to the identified
// class. Returns ErrClassNotFound if classID does not match any class.
func (s *Store) AddAssignment(classID int64, title, due string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(classID)
	if i < 0 {
		return ErrClassNotFound
	}

	prev := s.classes[i].Assignments
	next := make([]model.Assignment, len(prev), len(prev)+1)
	copy(next, prev)
	next = append(next, model.Assignment{Title: title, Due: due, Completed: false})
	s.classes[i].Assignments = next
	return nil
}

// SetCompletion sets the completion flag of the assignment at index within
// the identified class. The returned bool reports whether this call was a
// false-to-true transition, which is the only mutation that may qualify for
// a reminder.
func (s *Store) SetCompletion(classID int64, index int, completed bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(classID)
	if i < 0 {
		return false, ErrClassNotFound
	}
	prev := s.classes[i].Assignments
	if index < 0 || index >= len(prev) {
		return false, ErrAssignmentNotFound
	}

	next := make([]model.Assignment, len(prev))
	copy(next, prev)
	transitioned := completed && !next[index].Completed
	next[index].Completed = completed
	s.classes[i].Assignments = next
	return transitioned, nil
}

// Assignment returns a copy of the assignment at (classID, index).
func (s *Store) Assignment(classID int64, index int) (model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(classID)
	if i < 0 {
		return model.Assignment{}, ErrClassNotFound
	}
	if index < 0 || index >= len(s.classes[i].Assignments) {
		return model.Assignment{}, ErrAssignmentNotFound
	}
	return s.classes[i].Assignments[index], nil
}

// Classes returns a snapshot of all classes in creation order. The returned
// slices are safe to read while the store keeps mutating.
func (s *Store) Classes() []model.Class {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Class, len(s.classes))
	copy(out, s.classes)
	return out
}

// indexOf returns the position of a class by id, or -1. Caller holds the lock.
func (s *Store) indexOf(classID int64) int {
	for i := range s.classes {
		if s.classes[i].ID == classID {
			return i
		}
	}
	return -1
}
