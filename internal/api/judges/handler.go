// Package judges provides REST API handlers for judge token validation and
// the voting lifecycle.
package judges

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/startup-demoday/jurado/internal/apierr"
	"github.com/startup-demoday/jurado/internal/metrics"
	"github.com/startup-demoday/jurado/internal/models"
	judgesvc "github.com/startup-demoday/jurado/internal/service/judges"
	"github.com/startup-demoday/jurado/pkg/logger"
)

// JudgeService interface for judge operations.
type JudgeService interface {
	Validate(ctx context.Context, token string) (*models.Judge, error)
	CloseVoting(ctx context.Context) (int64, error)
	Status(ctx context.Context) (*judgesvc.VotingStatus, error)
}

// Handler handles judge API requests.
type Handler struct {
	judgeService JudgeService
	log          *logger.Logger
}

// NewHandler creates a new judge handler.
func NewHandler(judgeService *judgesvc.Service, log *logger.Logger) *Handler {
	return &Handler{judgeService: judgeService, log: log}
}

// NewHandlerWithInterfaces creates a new judge handler with interface dependencies (useful for testing).
func NewHandlerWithInterfaces(judgeService JudgeService, log *logger.Logger) *Handler {
	return &Handler{judgeService: judgeService, log: log}
}

// Validate resolves an access token to its judge.
// GET /api/v1/judges/validate/:token.
func (h *Handler) Validate(c *gin.Context) {
	token := c.Param("token")

	judge, err := h.judgeService.Validate(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, judgesvc.ErrVotingClosed) {
			metrics.RecordTokenValidation("closed")
			c.JSON(http.StatusForbidden, gin.H{
				"error":  "voting is closed",
				"closed": true,
			})
			return
		}
		metrics.RecordTokenValidation("invalid")
		h.errorResponse(c, err, "Failed to validate token")
		return
	}

	metrics.RecordTokenValidation("valid")
	c.JSON(http.StatusOK, gin.H{
		"judge": gin.H{
			"id":       judge.ID,
			"name":     judge.Name,
			"category": judge.Category,
		},
	})
}

// CloseVoting revokes every active judge.
// POST /api/v1/judges/close-voting.
func (h *Handler) CloseVoting(c *gin.Context) {
	affected, err := h.judgeService.CloseVoting(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to close voting")
		h.errorResponse(c, err, "Failed to close voting")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"judges_disabled": affected,
	})
}

// Status reports the voting lifecycle state.
// GET /api/v1/judges/voting-status.
func (h *Handler) Status(c *gin.Context) {
	status, err := h.judgeService.Status(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get voting status")
		h.errorResponse(c, err, "Failed to retrieve voting status")
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *Handler) errorResponse(c *gin.Context, err error, fallback string) {
	c.JSON(apierr.StatusFor(err), gin.H{
		"error": apierr.MessageFor(err, fallback),
	})
}
