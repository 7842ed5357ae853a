// Package admin provides REST API handlers for managing the evaluation
// catalog: programs, blocks, questions, teams, projects and judges.
package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/startup-demoday/jurado/internal/apierr"
	"github.com/startup-demoday/jurado/internal/models"
	"github.com/startup-demoday/jurado/internal/repository"
	"github.com/startup-demoday/jurado/internal/seed"
	judgesvc "github.com/startup-demoday/jurado/internal/service/judges"
	"github.com/startup-demoday/jurado/pkg/logger"
)

// ProgramRepository interface for program persistence.
type ProgramRepository interface {
	Create(program *models.Program) error
	GetByID(id string) (*models.Program, error)
	List() ([]models.Program, error)
	Update(program *models.Program) error
	Delete(id string) error
}

// BlockRepository interface for block persistence.
type BlockRepository interface {
	Create(block *models.Block) error
	GetByID(id string) (*models.Block, error)
	List() ([]models.Block, error)
	Update(block *models.Block) error
	Delete(id string) error
}

// QuestionRepository interface for question persistence.
type QuestionRepository interface {
	Create(question *models.Question) error
	GetByID(id string) (*models.Question, error)
	List() ([]models.Question, error)
	Update(question *models.Question) error
	Delete(id string) error
}

// TeamRepository interface for team persistence.
type TeamRepository interface {
	Create(team *models.Team) error
	GetByID(id string) (*models.Team, error)
	List() ([]models.Team, error)
	Update(team *models.Team) error
	Delete(id string) error
}

// ProjectRepository interface for project persistence.
type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id string) (*models.Project, error)
	List() ([]models.Project, error)
	Update(project *models.Project) error
	Delete(id string) error
}

// JudgeService interface for judge management.
type JudgeService interface {
	Create(ctx context.Context, judge *models.Judge) error
	List(ctx context.Context) ([]models.Judge, error)
}

// Seeder interface for loading demo fixtures.
type Seeder interface {
	Seed(ctx context.Context) (*seed.Summary, error)
}

// Handler handles catalog administration requests.
type Handler struct {
	programRepo  ProgramRepository
	blockRepo    BlockRepository
	questionRepo QuestionRepository
	teamRepo     TeamRepository
	projectRepo  ProjectRepository
	judgeService JudgeService
	seeder       Seeder
	log          *logger.Logger
}

// Deps bundles the handler's dependencies.
type Deps struct {
	ProgramRepo  ProgramRepository
	BlockRepo    BlockRepository
	QuestionRepo QuestionRepository
	TeamRepo     TeamRepository
	ProjectRepo  ProjectRepository
	JudgeService JudgeService
	Seeder       Seeder
}

// NewHandler creates a new admin handler.
func NewHandler(
	programRepo *repository.ProgramRepository,
	blockRepo *repository.BlockRepository,
	questionRepo *repository.QuestionRepository,
	teamRepo *repository.TeamRepository,
	projectRepo *repository.ProjectRepository,
	judgeService *judgesvc.Service,
	seeder *seed.Seeder,
	log *logger.Logger,
) *Handler {
	return &Handler{
		programRepo:  programRepo,
		blockRepo:    blockRepo,
		questionRepo: questionRepo,
		teamRepo:     teamRepo,
		projectRepo:  projectRepo,
		judgeService: judgeService,
		seeder:       seeder,
		log:          log,
	}
}

// NewHandlerWithInterfaces creates a new admin handler with interface dependencies (useful for testing).
func NewHandlerWithInterfaces(deps Deps, log *logger.Logger) *Handler {
	return &Handler{
		programRepo:  deps.ProgramRepo,
		blockRepo:    deps.BlockRepo,
		questionRepo: deps.QuestionRepo,
		teamRepo:     deps.TeamRepo,
		projectRepo:  deps.ProjectRepo,
		judgeService: deps.JudgeService,
		seeder:       deps.Seeder,
		log:          log,
	}
}

// CreateProgram creates a program.
// POST /api/v1/admin/programs.
func (h *Handler) CreateProgram(c *gin.Context) {
	var program models.Program
	if err := c.ShouldBindJSON(&program); err != nil {
		h.badRequest(c, "invalid program payload")
		return
	}
	if program.ID == "" || program.Name == "" {
		h.badRequest(c, "program id and name are required")
		return
	}

	if err := h.programRepo.Create(&program); err != nil {
		h.storeError(c, err, "Failed to create program")
		return
	}
	c.JSON(http.StatusCreated, program)
}

// ListPrograms lists all programs.
// GET /api/v1/admin/programs.
func (h *Handler) ListPrograms(c *gin.Context) {
	programs, err := h.programRepo.List()
	if err != nil {
		h.storeError(c, err, "Failed to list programs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"programs": programs, "total": len(programs)})
}

// UpdateProgram updates a program.
// PUT /api/v1/admin/programs/:id.
func (h *Handler) UpdateProgram(c *gin.Context) {
	existing, err := h.programRepo.GetByID(c.Param("id"))
	if err != nil {
		h.notFoundOrStoreError(c, err, "program")
		return
	}

	var payload models.Program
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.badRequest(c, "invalid program payload")
		return
	}

	existing.Name = payload.Name
	existing.Description = payload.Description
	existing.Family = payload.Family
	if err := h.programRepo.Update(existing); err != nil {
		h.storeError(c, err, "Failed to update program")
		return
	}
	c.JSON(http.StatusOK, existing)
}

// DeleteProgram deletes a program.
// DELETE /api/v1/admin/programs/:id.
func (h *Handler) DeleteProgram(c *gin.Context) {
	if err := h.programRepo.Delete(c.Param("id")); err != nil {
		h.notFoundOrStoreError(c, err, "program")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateBlock creates a block.
// POST /api/v1/admin/blocks.
func (h *Handler) CreateBlock(c *gin.Context) {
	var block models.Block
	if err := c.ShouldBindJSON(&block); err != nil {
		h.badRequest(c, "invalid block payload")
		return
	}
	if block.ID == "" || block.Name == "" {
		h.badRequest(c, "block id and name are required")
		return
	}

	if err := h.blockRepo.Create(&block); err != nil {
		h.storeError(c, err, "Failed to create block")
		return
	}
	c.JSON(http.StatusCreated, block)
}

// ListBlocks lists all blocks.
// GET /api/v1/admin/blocks.
func (h *Handler) ListBlocks(c *gin.Context) {
	blocks, err := h.blockRepo.List()
	if err != nil {
		h.storeError(c, err, "Failed to list blocks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": blocks, "total": len(blocks)})
}

// UpdateBlock updates a block.
// PUT /api/v1/admin/blocks/:id.
func (h *Handler) UpdateBlock(c *gin.Context) {
	existing, err := h.blockRepo.GetByID(c.Param("id"))
	if err != nil {
		h.notFoundOrStoreError(c, err, "block")
		return
	}

	var payload models.Block
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.badRequest(c, "invalid block payload")
		return
	}

	existing.Name = payload.Name
	existing.Description = payload.Description
	existing.Order = payload.Order
	existing.ProgramID = payload.ProgramID
	if err := h.blockRepo.Update(existing); err != nil {
		h.storeError(c, err, "Failed to update block")
		return
	}
	c.JSON(http.StatusOK, existing)
}

// DeleteBlock deletes a block.
// DELETE /api/v1/admin/blocks/:id.
func (h *Handler) DeleteBlock(c *gin.Context) {
	if err := h.blockRepo.Delete(c.Param("id")); err != nil {
		h.notFoundOrStoreError(c, err, "block")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateQuestion creates a question. A question created without a weight gets
// the default weight so new catalogs stay in the weighted regime.
// POST /api/v1/admin/questions.
func (h *Handler) CreateQuestion(c *gin.Context) {
	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		h.badRequest(c, "invalid question payload")
		return
	}
	if question.ID == "" || question.Text == "" || question.BlockID == "" {
		h.badRequest(c, "question id, text and block_id are required")
		return
	}
	if question.Weight == nil {
		weight := models.DefaultQuestionWeight
		question.Weight = &weight
	}

	if err := h.questionRepo.Create(&question); err != nil {
		h.storeError(c, err, "Failed to create question")
		return
	}
	c.JSON(http.StatusCreated, question)
}

// ListQuestions lists all questions.
// GET /api/v1/admin/questions.
func (h *Handler) ListQuestions(c *gin.Context) {
	questions, err := h.questionRepo.List()
	if err != nil {
		h.storeError(c, err, "Failed to list questions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions, "total": len(questions)})
}

// UpdateQuestion updates a question.
// PUT /api/v1/admin/questions/:id.
func (h *Handler) UpdateQuestion(c *gin.Context) {
	existing, err := h.questionRepo.GetByID(c.Param("id"))
	if err != nil {
		h.notFoundOrStoreError(c, err, "question")
		return
	}

	var payload models.Question
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.badRequest(c, "invalid question payload")
		return
	}

	existing.Text = payload.Text
	existing.Description = payload.Description
	existing.Weight = payload.Weight
	existing.BlockID = payload.BlockID
	existing.ProgramID = payload.ProgramID
	existing.Family = payload.Family
	existing.Order = payload.Order
	if err := h.questionRepo.Update(existing); err != nil {
		h.storeError(c, err, "Failed to update question")
		return
	}
	c.JSON(http.StatusOK, existing)
}

// DeleteQuestion deletes a question.
// DELETE /api/v1/admin/questions/:id.
func (h *Handler) DeleteQuestion(c *gin.Context) {
	if err := h.questionRepo.Delete(c.Param("id")); err != nil {
		h.notFoundOrStoreError(c, err, "question")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateTeam creates a team.
// POST /api/v1/admin/teams.
func (h *Handler) CreateTeam(c *gin.Context) {
	var team models.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		h.badRequest(c, "invalid team payload")
		return
	}
	if team.ID == "" || team.Name == "" {
		h.badRequest(c, "team id and name are required")
		return
	}

	if err := h.teamRepo.Create(&team); err != nil {
		h.storeError(c, err, "Failed to create team")
		return
	}
	c.JSON(http.StatusCreated, team)
}

// ListTeams lists all teams.
// GET /api/v1/admin/teams.
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.teamRepo.List()
	if err != nil {
		h.storeError(c, err, "Failed to list teams")
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams, "total": len(teams)})
}

// CreateProject creates a project.
// POST /api/v1/admin/projects.
func (h *Handler) CreateProject(c *gin.Context) {
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		h.badRequest(c, "invalid project payload")
		return
	}
	if project.ID == "" || project.Name == "" {
		h.badRequest(c, "project id and name are required")
		return
	}

	if err := h.projectRepo.Create(&project); err != nil {
		h.storeError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, project)
}

// ListProjects lists all projects.
// GET /api/v1/admin/projects.
func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.projectRepo.List()
	if err != nil {
		h.storeError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects, "total": len(projects)})
}

// UpdateProject updates a project.
// PUT /api/v1/admin/projects/:id.
func (h *Handler) UpdateProject(c *gin.Context) {
	existing, err := h.projectRepo.GetByID(c.Param("id"))
	if err != nil {
		h.notFoundOrStoreError(c, err, "project")
		return
	}

	var payload models.Project
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.badRequest(c, "invalid project payload")
		return
	}

	existing.Name = payload.Name
	existing.Description = payload.Description
	existing.ProgramID = payload.ProgramID
	existing.TeamID = payload.TeamID
	if err := h.projectRepo.Update(existing); err != nil {
		h.storeError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, existing)
}

// DeleteProject deletes a project.
// DELETE /api/v1/admin/projects/:id.
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.projectRepo.Delete(c.Param("id")); err != nil {
		h.notFoundOrStoreError(c, err, "project")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateJudge registers a judge, generating a token when none is supplied.
// POST /api/v1/admin/judges.
func (h *Handler) CreateJudge(c *gin.Context) {
	var judge models.Judge
	if err := c.ShouldBindJSON(&judge); err != nil {
		h.badRequest(c, "invalid judge payload")
		return
	}
	if judge.ID == "" {
		h.badRequest(c, "judge id is required")
		return
	}

	if err := h.judgeService.Create(c.Request.Context(), &judge); err != nil {
		h.storeError(c, err, "Failed to create judge")
		return
	}
	c.JSON(http.StatusCreated, judge)
}

// ListJudges lists all judges.
// GET /api/v1/admin/judges.
func (h *Handler) ListJudges(c *gin.Context) {
	judgeList, err := h.judgeService.List(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "Failed to list judges")
		return
	}
	c.JSON(http.StatusOK, gin.H{"judges": judgeList, "total": len(judgeList)})
}

// SeedDemoData replaces the catalog with the configured demo fixture.
// POST /api/v1/admin/seed.
func (h *Handler) SeedDemoData(c *gin.Context) {
	summary, err := h.seeder.Seed(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to seed demo data")
		h.storeError(c, err, "Failed to seed demo data")
		return
	}

	h.log.Info().
		Int("programs", summary.Programs).
		Int("projects", summary.Projects).
		Int("judges", summary.Judges).
		Msg("Seeded demo data")

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func (h *Handler) storeError(c *gin.Context, err error, fallback string) {
	if repository.IsDuplicate(err) {
		c.JSON(http.StatusConflict, gin.H{"error": "an entity with this id or name already exists"})
		return
	}
	c.JSON(apierr.StatusFor(err), gin.H{
		"error": apierr.MessageFor(err, fallback),
	})
}

func (h *Handler) notFoundOrStoreError(c *gin.Context, err error, entity string) {
	if repository.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
		return
	}
	h.storeError(c, err, "Failed to load "+entity)
}
