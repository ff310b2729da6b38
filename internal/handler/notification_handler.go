package handler

import (
	"net/http"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/middleware"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/response"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/service"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/validator"
	"github.com/gin-gonic/gin"
)

// NotificationHandler handles the reminder log and its settings.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications godoc
// GET /api/v1/notifications
// Returns the notification log, newest first, with the unread count.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	claims := middleware.GetClaims(c)
	items, unread := h.notificationService.List(c.Request.Context(), claims.UserID)

	response.Success(c, http.StatusOK, gin.H{
		"notifications": items,
		"unread_count":  unread,
	})
}

// MarkAllRead godoc
// POST /api/v1/notifications/read-all
// Flags every notification as read. Idempotent.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	claims := middleware.GetClaims(c)
	h.notificationService.MarkAllRead(c.Request.Context(), claims.UserID)
	response.Success(c, http.StatusOK, gin.H{})
}

// RemoveNotification godoc
// DELETE /api/v1/notifications/:id
// Deletes one notification. Removing an unknown id is a no-op.
func (h *NotificationHandler) RemoveNotification(c *gin.Context) {
	claims := middleware.GetClaims(c)
	h.notificationService.Remove(c.Request.Context(), claims.UserID, c.Param("id"))
	response.Success(c, http.StatusOK, gin.H{})
}

// ClearNotifications godoc
// DELETE /api/v1/notifications
// Empties the notification log.
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	claims := middleware.GetClaims(c)
	h.notificationService.ClearAll(c.Request.Context(), claims.UserID)
	response.Success(c, http.StatusOK, gin.H{})
}

// GetSettings godoc
// GET /api/v1/notifications/settings
// Returns the reminder toggle.
func (h *NotificationHandler) GetSettings(c *gin.Context) {
	claims := middleware.GetClaims(c)
	settings := h.notificationService.Settings(c.Request.Context(), claims.UserID)
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings godoc
// PUT /api/v1/notifications/settings
// Sets the reminder toggle; when off, no event emits a notification.
func (h *NotificationHandler) UpdateSettings(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.UpdateNotificationSettingsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	settings := h.notificationService.UpdateSettings(c.Request.Context(), claims.UserID, *req.Reminders)
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}
