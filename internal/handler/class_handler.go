package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/classroom"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/middleware"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/response"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/service"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ClassHandler handles class and assignment management.
type ClassHandler struct {
	classroomService *service.ClassroomService
	log              zerolog.Logger
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classroomService *service.ClassroomService, log zerolog.Logger) *ClassHandler {
	return &ClassHandler{
		classroomService: classroomService,
		log:              log.With().Str("component", "class_handler").Logger(),
	}
}

// AssignmentView is an assignment annotated with its display status, which is
// derived per request and never stored.
type AssignmentView struct {
	Title     string           `json:"title"`
	Due       string           `json:"due"`
	Completed bool             `json:"completed"`
	Status    classroom.Status `json:"status"`
}

// ClassView is a class with status-annotated assignments.
type ClassView struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Slot        string           `json:"slot"`
	Assignments []AssignmentView `json:"assignments"`
}

// ListClasses godoc
// GET /api/v1/classes
// Lists the user's classes with per-assignment display statuses.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	claims := middleware.GetClaims(c)
	classes := h.classroomService.Classes(claims.UserID)

	now := time.Now()
	views := make([]ClassView, 0, len(classes))
	for _, cls := range classes {
		view := ClassView{
			ID:          cls.ID,
			Name:        cls.Name,
			Slot:        cls.Slot,
			Assignments: make([]AssignmentView, 0, len(cls.Assignments)),
		}
		for _, a := range cls.Assignments {
			av := AssignmentView{Title: a.Title, Due: a.Due, Completed: a.Completed}
			if due, err := classroom.ParseDue(a.Due); err == nil {
				av.Status = classroom.ResolveStatus(due, a.Completed, now)
			}
			view.Assignments = append(view.Assignments, av)
		}
		views = append(views, view)
	}

	response.Success(c, http.StatusOK, gin.H{"classes": views})
}

// CreateClass godoc
// POST /api/v1/classes
// Creates a new class with an empty assignment list.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	cls, err := h.classroomService.AddClass(claims.UserID, req.Name, req.Slot)
	if err != nil {
		if errors.Is(err, classroom.ErrBlankField) {
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": cls})
}

// AddAssignment godoc
// POST /api/v1/classes/:id/assignments
// Appends an assignment to a class and evaluates reminder rules.
func (h *ClassHandler) AddAssignment(c *gin.Context) {
	claims := middleware.GetClaims(c)

	classID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AddAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.classroomService.AddAssignment(c.Request.Context(), claims.UserID, classID, req.Title, req.Due); err != nil {
		h.failMutation(c, err, classID)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{})
}

// SetCompletion godoc
// PUT /api/v1/classes/:id/assignments/:index/completion
// Toggles an assignment's completion flag; only a false-to-true transition
// can emit a reminder.
func (h *ClassHandler) SetCompletion(c *gin.Context) {
	claims := middleware.GetClaims(c)

	classID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SetCompletionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.classroomService.SetCompletion(c.Request.Context(), claims.UserID, classID, index, *req.Completed); err != nil {
		h.failMutation(c, err, classID)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// failMutation maps store errors onto API errors. Unknown class or index
// references cannot happen with a well-formed client, so they are logged as
// contract violations rather than recovered.
func (h *ClassHandler) failMutation(c *gin.Context, err error, classID int64) {
	switch {
	case errors.Is(err, classroom.ErrClassNotFound), errors.Is(err, classroom.ErrAssignmentNotFound):
		h.log.Warn().Err(err).Int64("class_id", classID).Msg("Reference to nonexistent class or assignment")
		response.Fail(c, http.StatusNotFound, response.ErrClassNotFound)
	default:
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
	}
}
