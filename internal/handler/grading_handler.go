package handler

import (
	"errors"
	"net/http"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/grading"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/middleware"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/response"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// GradingHandler relays answer sheet uploads to the grading service.
type GradingHandler struct {
	gradingService *service.GradingService
	log            zerolog.Logger
}

// NewGradingHandler creates a new GradingHandler.
func NewGradingHandler(gradingService *service.GradingService, log zerolog.Logger) *GradingHandler {
	return &GradingHandler{
		gradingService: gradingService,
		log:            log.With().Str("component", "grading_handler").Logger(),
	}
}

// Evaluate godoc
// POST /api/v1/grade
// Accepts multipart fields student_pdf and qp_or_key_pdf, forwards them to
// the grading service, and relays the evaluation JSON unchanged. The error
// body distinguishes an unreachable service from one that answered with an
// error status.
func (h *GradingHandler) Evaluate(c *gin.Context) {
	claims := middleware.GetClaims(c)

	studentPDF, err := c.FormFile("student_pdf")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	keyPDF, err := c.FormFile("qp_or_key_pdf")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	result, err := h.gradingService.Evaluate(c.Request.Context(), claims.UserID, studentPDF, keyPDF)
	if err != nil {
		h.failEvaluate(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *GradingHandler) failEvaluate(c *gin.Context, err error) {
	var statusErr *grading.StatusError
	switch {
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
	case errors.Is(err, service.ErrEvaluationInFlight):
		response.Fail(c, http.StatusConflict, response.ErrEvaluationInFlight)
	case errors.Is(err, grading.ErrNoResponse):
		response.Fail(c, http.StatusBadGateway, response.ErrGradingUnreachable)
	case errors.As(err, &statusErr):
		h.log.Error().Int("upstream_status", statusErr.StatusCode).Msg("Grading service error")
		response.Fail(c, http.StatusBadGateway, response.ErrGradingServerError)
	case errors.Is(err, grading.ErrBadResponse):
		response.Fail(c, http.StatusBadGateway, response.ErrGradingBadResponse)
	default:
		// Anything else failed on our side (opening the upload, lock checks).
		h.log.Error().Err(err).Msg("Evaluation failed locally")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
