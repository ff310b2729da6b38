package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/classroom"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
	"github.com/rs/zerolog"
)

// ClassroomService owns one in-memory assignment store per user and drives
// reminder derivation on qualifying mutations.
type ClassroomService struct {
	mu            sync.Mutex
	stores        map[int]*classroom.Store
	notifications *NotificationService
	log           zerolog.Logger
}

// NewClassroomService creates a new ClassroomService.
func NewClassroomService(notifications *NotificationService, log zerolog.Logger) *ClassroomService {
	return &ClassroomService{
		stores:        make(map[int]*classroom.Store),
		notifications: notifications,
		log:           log.With().Str("component", "classroom_service").Logger(),
	}
}

// Classes returns a snapshot of the user's classes.
func (s *ClassroomService) Classes(userID int) []model.Class {
	return s.storeFor(userID).Classes()
}

// AddClass creates a class for the user.
func (s *ClassroomService) AddClass(userID int, name, slot string) (model.Class, error) {
	return s.storeFor(userID).AddClass(name, slot)
}

// AddAssignment appends an assignment to a class, then evaluates reminder
// rules for the creation event.
func (s *ClassroomService) AddAssignment(ctx context.Context, userID int, classID int64, title, due string) error {
	dueDate, err := classroom.ParseDue(due)
	if err != nil {
		return fmt.Errorf("parse due date: %w", err)
	}

	if err := s.storeFor(userID).AddAssignment(classID, title, due); err != nil {
		return err
	}

	s.notifications.AssignmentCreated(ctx, userID, title, dueDate)
	return nil
}

// SetCompletion toggles an assignment's completion flag. Reminder rules run
// only on a false-to-true transition; unchecking emits nothing.
func (s *ClassroomService) SetCompletion(ctx context.Context, userID int, classID int64, index int, completed bool) error {
	store := s.storeFor(userID)

	transitioned, err := store.SetCompletion(classID, index, completed)
	if err != nil {
		return err
	}
	if !transitioned {
		return nil
	}

	a, err := store.Assignment(classID, index)
	if err != nil {
		return err
	}
	dueDate, err := classroom.ParseDue(a.Due)
	if err != nil {
		// Stored due dates are validated on the way in; a parse failure here
		// means the entry predates validation. Skip the reminder.
		s.log.Warn().Err(err).Str("due", a.Due).Msg("Unparseable stored due date")
		return nil
	}

	s.notifications.AssignmentCompleted(ctx, userID, a.Title, dueDate)
	return nil
}

// storeFor returns the user's store, creating it on first access.
func (s *ClassroomService) storeFor(userID int) *classroom.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.stores[userID]
	if !ok {
		store = classroom.NewStore()
		s.stores[userID] = store
	}
	return store
}
