// Package questions provides the REST API handler serving the evaluation
// form: the blocks and questions applicable to one project.
package questions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/startup-demoday/jurado/internal/models"
	"github.com/startup-demoday/jurado/internal/repository"
	questsvc "github.com/startup-demoday/jurado/internal/service/questions"
	"github.com/startup-demoday/jurado/pkg/logger"
)

// ProjectRepository interface for project reads.
type ProjectRepository interface {
	GetByID(id string) (*models.Project, error)
}

// QuestionRepository interface for question reads.
type QuestionRepository interface {
	List() ([]models.Question, error)
}

// BlockRepository interface for block reads.
type BlockRepository interface {
	List() ([]models.Block, error)
}

// Handler serves the per-project evaluation form.
type Handler struct {
	projectRepo  ProjectRepository
	questionRepo QuestionRepository
	blockRepo    BlockRepository
	log          *logger.Logger
}

// NewHandler creates a new questions handler.
func NewHandler(
	projectRepo *repository.ProjectRepository,
	questionRepo *repository.QuestionRepository,
	blockRepo *repository.BlockRepository,
	log *logger.Logger,
) *Handler {
	return &Handler{
		projectRepo:  projectRepo,
		questionRepo: questionRepo,
		blockRepo:    blockRepo,
		log:          log,
	}
}

// NewHandlerWithInterfaces creates a new questions handler with interface dependencies (useful for testing).
func NewHandlerWithInterfaces(
	projectRepo ProjectRepository,
	questionRepo QuestionRepository,
	blockRepo BlockRepository,
	log *logger.Logger,
) *Handler {
	return &Handler{
		projectRepo:  projectRepo,
		questionRepo: questionRepo,
		blockRepo:    blockRepo,
		log:          log,
	}
}

// formBlock is one block of the evaluation form with its questions in
// display order.
type formBlock struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Order     int               `json:"order"`
	Questions []models.Question `json:"questions"`
}

// GetForProject returns the blocks and questions a judge must answer for one
// project, filtered by program family.
// GET /api/v1/projects/:id/questions.
func (h *Handler) GetForProject(c *gin.Context) {
	project, err := h.projectRepo.GetByID(c.Param("id"))
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to load project")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load project"})
		return
	}

	allQuestions, err := h.questionRepo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load questions")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load questions"})
		return
	}

	allBlocks, err := h.blockRepo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load blocks")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load blocks"})
		return
	}

	applicable := questsvc.ForProject(project, allQuestions)
	blocks := questsvc.BlocksForProject(project, allQuestions, allBlocks)

	byBlock := make(map[string][]models.Question, len(blocks))
	for _, q := range applicable {
		byBlock[q.BlockID] = append(byBlock[q.BlockID], q)
	}

	form := make([]formBlock, 0, len(blocks))
	total := 0
	for _, b := range blocks {
		questionsInBlock := byBlock[b.ID]
		total += len(questionsInBlock)
		form = append(form, formBlock{
			ID:        b.ID,
			Name:      b.Name,
			Order:     b.Order,
			Questions: questionsInBlock,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id":      project.ID,
		"blocks":          form,
		"total_questions": total,
	})
}
