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

// PreferenceHandler handles display preferences (dark mode, legacy profile).
type PreferenceHandler struct {
	preferenceService *service.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(preferenceService *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// SetDarkModeRequest is the payload for the dark-mode toggle.
type SetDarkModeRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// GetDarkMode godoc
// GET /api/v1/preferences/dark-mode
func (h *PreferenceHandler) GetDarkMode(c *gin.Context) {
	claims := middleware.GetClaims(c)
	enabled := h.preferenceService.DarkMode(c.Request.Context(), claims.UserID)
	response.Success(c, http.StatusOK, gin.H{"enabled": enabled})
}

// SetDarkMode godoc
// PUT /api/v1/preferences/dark-mode
func (h *PreferenceHandler) SetDarkMode(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req SetDarkModeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	h.preferenceService.SetDarkMode(c.Request.Context(), claims.UserID, *req.Enabled)
	response.Success(c, http.StatusOK, gin.H{"enabled": *req.Enabled})
}

// GetProfile godoc
// GET /api/v1/preferences/profile
// Returns the legacy profile object, or null when none is stored.
func (h *PreferenceHandler) GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	profile := h.preferenceService.Profile(c.Request.Context(), claims.UserID)
	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

// SetProfile godoc
// PUT /api/v1/preferences/profile
func (h *PreferenceHandler) SetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.Profile
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.preferenceService.SetProfile(c.Request.Context(), claims.UserID, req); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile": req})
}
