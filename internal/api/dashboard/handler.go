// Package dashboard provides REST API handlers for the live results view.
// It exposes the ranked project scores and event-wide judge progress.
package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/startup-demoday/jurado/internal/apierr"
	"github.com/startup-demoday/jurado/internal/metrics"
	"github.com/startup-demoday/jurado/internal/service/scoring"
	"github.com/startup-demoday/jurado/pkg/logger"
)

// ScoringService interface for score aggregation operations.
type ScoringService interface {
	Dashboard(ctx context.Context, program string) ([]scoring.ProjectScore, error)
	Stats(ctx context.Context) (*scoring.JudgeStats, error)
}

// Handler handles dashboard API requests.
type Handler struct {
	scoringService ScoringService
	log            *logger.Logger
}

// NewHandler creates a new dashboard handler.
func NewHandler(scoringService *scoring.Service, log *logger.Logger) *Handler {
	return &Handler{
		scoringService: scoringService,
		log:            log,
	}
}

// NewHandlerWithInterfaces creates a new dashboard handler with interface dependencies (useful for testing).
func NewHandlerWithInterfaces(scoringService ScoringService, log *logger.Logger) *Handler {
	return &Handler{
		scoringService: scoringService,
		log:            log,
	}
}

// GetDashboard returns ranked project scores, optionally filtered to one
// program before ranking.
// GET /api/v1/dashboard?program=Incubación.
func (h *Handler) GetDashboard(c *gin.Context) {
	program := c.Query("program")

	start := time.Now()
	scores, err := h.scoringService.Dashboard(c.Request.Context(), program)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to aggregate dashboard")
		h.errorResponse(c, err, "Failed to retrieve dashboard")
		return
	}
	metrics.ObserveAggregation(time.Since(start).Seconds())

	h.log.Info().
		Str("program", program).
		Int("projects", len(scores)).
		Msg("Retrieved dashboard")

	c.JSON(http.StatusOK, gin.H{
		"projects":     scores,
		"program":      program,
		"total":        len(scores),
		"generated_at": time.Now().UTC(),
	})
}

// GetJudgeStats returns event-wide judge progress counters.
// GET /api/v1/dashboard/judge-stats.
func (h *Handler) GetJudgeStats(c *gin.Context) {
	stats, err := h.scoringService.Stats(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to compute judge stats")
		h.errorResponse(c, err, "Failed to retrieve judge statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) errorResponse(c *gin.Context, err error, fallback string) {
	c.JSON(apierr.StatusFor(err), gin.H{
		"error": apierr.MessageFor(err, fallback),
	})
}
