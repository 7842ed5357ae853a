// Package evaluations provides REST API handlers for recording and listing
// judge evaluations.
package evaluations

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/startup-demoday/jurado/internal/apierr"
	"github.com/startup-demoday/jurado/internal/metrics"
	"github.com/startup-demoday/jurado/internal/models"
	evalsvc "github.com/startup-demoday/jurado/internal/service/evaluations"
	"github.com/startup-demoday/jurado/pkg/logger"
)

// EvaluationService interface for evaluation operations.
type EvaluationService interface {
	Record(ctx context.Context, judgeID, projectID, questionID string, rawScore float64) (*models.Evaluation, error)
	List(ctx context.Context, judgeID, projectID string) ([]models.Evaluation, error)
}

// Handler handles evaluation API requests.
type Handler struct {
	evalService EvaluationService
	log         *logger.Logger
}

// NewHandler creates a new evaluation handler.
func NewHandler(evalService *evalsvc.Service, log *logger.Logger) *Handler {
	return &Handler{evalService: evalService, log: log}
}

// NewHandlerWithInterfaces creates a new evaluation handler with interface dependencies (useful for testing).
func NewHandlerWithInterfaces(evalService EvaluationService, log *logger.Logger) *Handler {
	return &Handler{evalService: evalService, log: log}
}

// recordRequest is the submission payload. Score is a pointer so a missing
// field is distinguishable from a legitimate zero (which clamps to 1).
type recordRequest struct {
	JudgeID    string   `json:"judge_id" binding:"required"`
	ProjectID  string   `json:"project_id" binding:"required"`
	QuestionID string   `json:"question_id" binding:"required"`
	Score      *float64 `json:"score" binding:"required"`
}

// Record stores one score for a (judge, project, question) triple.
// POST /api/v1/evaluations.
func (h *Handler) Record(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponseStatus(c, http.StatusBadRequest, "judge_id, project_id, question_id and score are required")
		return
	}

	evaluation, err := h.evalService.Record(c.Request.Context(), req.JudgeID, req.ProjectID, req.QuestionID, *req.Score)
	if err != nil {
		metrics.RecordEvaluation("error")
		h.log.Error().Err(err).
			Str("judge_id", req.JudgeID).
			Str("project_id", req.ProjectID).
			Msg("Failed to record evaluation")
		h.errorResponse(c, err, "Failed to record evaluation")
		return
	}

	metrics.RecordEvaluation("ok")
	metrics.ObserveScore(evaluation.Score)

	c.JSON(http.StatusOK, evaluation)
}

// List returns evaluations, optionally filtered by judge and/or project.
// GET /api/v1/evaluations?judge_id=...&project_id=...
func (h *Handler) List(c *gin.Context) {
	judgeID := c.Query("judge_id")
	projectID := c.Query("project_id")

	evaluations, err := h.evalService.List(c.Request.Context(), judgeID, projectID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list evaluations")
		h.errorResponse(c, err, "Failed to retrieve evaluations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"evaluations": evaluations,
		"total":       len(evaluations),
	})
}

func (h *Handler) errorResponse(c *gin.Context, err error, fallback string) {
	c.JSON(apierr.StatusFor(err), gin.H{
		"error": apierr.MessageFor(err, fallback),
	})
}

func (h *Handler) errorResponseStatus(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
