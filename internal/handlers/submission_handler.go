package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conjugo/quiz-service/internal/services"
	"github.com/conjugo/quiz-service/internal/utils"
)

// SubmissionHandler accepts answer sets and returns the graded result.
type SubmissionHandler struct {
	BaseHandler
	submissions services.SubmissionService
}

func NewSubmissionHandler(submissions services.SubmissionService, logger utils.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler: NewBaseHandler(logger),
		submissions: submissions,
	}
}

// Submit grades a student's answers, records them, and returns the
// per-cell detail alongside the score.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	result, err := h.submissions.Submit(c.Request.Context(), req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Submission graded", result)
}
