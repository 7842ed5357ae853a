// Package seed loads the demo-data fixture consumed by the admin seed
// endpoint.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/startup-demoday/jurado/internal/models"
	"github.com/startup-demoday/jurado/internal/repository"
	judgesvc "github.com/startup-demoday/jurado/internal/service/judges"
	"github.com/startup-demoday/jurado/pkg/logger"
)

// Fixture is the YAML document describing a complete demo catalog.
type Fixture struct {
	Programs []ProgramFixture `yaml:"programs"`
	Blocks   []BlockFixture   `yaml:"blocks"`
	Teams    []TeamFixture    `yaml:"teams"`
	Projects []ProjectFixture `yaml:"projects"`
	Judges   []JudgeFixture   `yaml:"judges"`
}

// ProgramFixture describes one program and its questions.
type ProgramFixture struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Family      string `yaml:"family"`
}

// BlockFixture describes one question block.
type BlockFixture struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Order     int               `yaml:"order"`
	ProgramID string            `yaml:"program_id"`
	Questions []QuestionFixture `yaml:"questions"`
}

// QuestionFixture describes one evaluation criterion within a block.
type QuestionFixture struct {
	ID     string   `yaml:"id"`
	Text   string   `yaml:"text"`
	Weight *float64 `yaml:"weight"`
	Order  int      `yaml:"order"`
}

// TeamFixture describes one founding team.
type TeamFixture struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ProjectFixture describes one project under evaluation.
type ProjectFixture struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	ProgramID   string `yaml:"program_id"`
	TeamID      string `yaml:"team_id"`
}

// JudgeFixture describes one judge. Token is optional; a missing token is
// generated on insert.
type JudgeFixture struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Token    string `yaml:"token"`
	Category string `yaml:"category"`
}

// Summary reports how many entities a seed run inserted.
type Summary struct {
	Programs  int `json:"programs"`
	Blocks    int `json:"blocks"`
	Questions int `json:"questions"`
	Teams     int `json:"teams"`
	Projects  int `json:"projects"`
	Judges    int `json:"judges"`
}

// ProgramRepository interface for program inserts.
type ProgramRepository interface {
	Create(program *models.Program) error
}

// BlockRepository interface for block inserts.
type BlockRepository interface {
	Create(block *models.Block) error
}

// QuestionRepository interface for question inserts.
type QuestionRepository interface {
	Create(question *models.Question) error
}

// TeamRepository interface for team inserts.
type TeamRepository interface {
	Create(team *models.Team) error
}

// ProjectRepository interface for project inserts.
type ProjectRepository interface {
	Create(project *models.Project) error
}

// JudgeService interface for judge registration.
type JudgeService interface {
	Create(ctx context.Context, judge *models.Judge) error
}

// EvaluationRepository interface for clearing evaluations before a reseed.
type EvaluationRepository interface {
	DeleteAll() error
}

// Seeder replaces the catalog with the fixture's contents.
type Seeder struct {
	fixturePath  string
	programRepo  ProgramRepository
	blockRepo    BlockRepository
	questionRepo QuestionRepository
	teamRepo     TeamRepository
	projectRepo  ProjectRepository
	judgeService JudgeService
	evalRepo     EvaluationRepository
	log          *logger.Logger
}

// NewSeeder creates a new seeder with concrete dependencies.
func NewSeeder(
	fixturePath string,
	programRepo *repository.ProgramRepository,
	blockRepo *repository.BlockRepository,
	questionRepo *repository.QuestionRepository,
	teamRepo *repository.TeamRepository,
	projectRepo *repository.ProjectRepository,
	judgeService *judgesvc.Service,
	evalRepo *repository.EvaluationRepository,
	log *logger.Logger,
) *Seeder {
	return &Seeder{
		fixturePath:  fixturePath,
		programRepo:  programRepo,
		blockRepo:    blockRepo,
		questionRepo: questionRepo,
		teamRepo:     teamRepo,
		projectRepo:  projectRepo,
		judgeService: judgeService,
		evalRepo:     evalRepo,
		log:          log,
	}
}

// Deps bundles seeder dependencies for interface-based construction.
type Deps struct {
	ProgramRepo  ProgramRepository
	BlockRepo    BlockRepository
	QuestionRepo QuestionRepository
	TeamRepo     TeamRepository
	ProjectRepo  ProjectRepository
	JudgeService JudgeService
	EvalRepo     EvaluationRepository
}

// NewSeederWithInterfaces creates a new seeder with interface dependencies (useful for testing).
func NewSeederWithInterfaces(fixturePath string, deps Deps, log *logger.Logger) *Seeder {
	return &Seeder{
		fixturePath:  fixturePath,
		programRepo:  deps.ProgramRepo,
		blockRepo:    deps.BlockRepo,
		questionRepo: deps.QuestionRepo,
		teamRepo:     deps.TeamRepo,
		projectRepo:  deps.ProjectRepo,
		judgeService: deps.JudgeService,
		evalRepo:     deps.EvalRepo,
		log:          log,
	}
}

// LoadFixture parses a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return &fixture, nil
}

// Seed clears existing evaluations and inserts the fixture's catalog.
// Existing catalog rows with clashing IDs cause insert errors; seeding is
// meant for fresh or demo databases, not live events.
func (s *Seeder) Seed(ctx context.Context) (*Summary, error) {
	fixture, err := LoadFixture(s.fixturePath)
	if err != nil {
		return nil, err
	}

	if err := s.evalRepo.DeleteAll(); err != nil {
		return nil, err
	}

	summary := &Summary{}

	for _, p := range fixture.Programs {
		program := &models.Program{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Family:      models.ProgramFamily(p.Family),
		}
		if program.Family == models.FamilyNone {
			program.Family = models.FamilyFromName(p.Name)
		}
		if err := s.programRepo.Create(program); err != nil {
			return nil, fmt.Errorf("program %s: %w", p.ID, err)
		}
		summary.Programs++
	}

	for _, b := range fixture.Blocks {
		programID := b.ProgramID
		block := &models.Block{
			ID:    b.ID,
			Name:  b.Name,
			Order: b.Order,
		}
		if programID != "" {
			block.ProgramID = &programID
		}
		if err := s.blockRepo.Create(block); err != nil {
			return nil, fmt.Errorf("block %s: %w", b.ID, err)
		}
		summary.Blocks++

		for _, q := range b.Questions {
			question := &models.Question{
				ID:      q.ID,
				Text:    q.Text,
				Weight:  q.Weight,
				BlockID: b.ID,
				Order:   q.Order,
			}
			if programID != "" {
				question.ProgramID = &programID
			}
			if err := s.questionRepo.Create(question); err != nil {
				return nil, fmt.Errorf("question %s: %w", q.ID, err)
			}
			summary.Questions++
		}
	}

	for _, t := range fixture.Teams {
		team := &models.Team{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
		}
		if err := s.teamRepo.Create(team); err != nil {
			return nil, fmt.Errorf("team %s: %w", t.ID, err)
		}
		summary.Teams++
	}

	for _, p := range fixture.Projects {
		programID := p.ProgramID
		teamID := p.TeamID
		project := &models.Project{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
		}
		if programID != "" {
			project.ProgramID = &programID
		}
		if teamID != "" {
			project.TeamID = &teamID
		}
		if err := s.projectRepo.Create(project); err != nil {
			return nil, fmt.Errorf("project %s: %w", p.ID, err)
		}
		summary.Projects++
	}

	for _, j := range fixture.Judges {
		judge := &models.Judge{
			ID:       j.ID,
			Name:     j.Name,
			Email:    j.Email,
			Token:    j.Token,
			Category: j.Category,
		}
		if err := s.judgeService.Create(ctx, judge); err != nil {
			return nil, fmt.Errorf("judge %s: %w", j.ID, err)
		}
		summary.Judges++
	}

	return summary, nil
}
