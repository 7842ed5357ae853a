//nolint:noctx // Test file uses httptest.NewRequest for simplicity
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/startup-demoday/jurado/internal/models"
	"github.com/startup-demoday/jurado/internal/seed"
	"github.com/startup-demoday/jurado/pkg/logger"
)

// Mock catalog store
type mockCatalog struct {
	programs  map[string]*models.Program
	blocks    map[string]*models.Block
	questions map[string]*models.Question
	teams     map[string]*models.Team
	projects  map[string]*models.Project
	judges    []models.Judge
	seeded    bool
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		programs:  make(map[string]*models.Program),
		blocks:    make(map[string]*models.Block),
		questions: make(map[string]*models.Question),
		teams:     make(map[string]*models.Team),
		projects:  make(map[string]*models.Project),
	}
}

type mockProgramRepo struct{ c *mockCatalog }

func (m *mockProgramRepo) Create(p *models.Program) error { m.c.programs[p.ID] = p; return nil }
func (m *mockProgramRepo) GetByID(id string) (*models.Program, error) {
	p, ok := m.c.programs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}
func (m *mockProgramRepo) List() ([]models.Program, error) {
	result := make([]models.Program, 0, len(m.c.programs))
	for _, p := range m.c.programs {
		result = append(result, *p)
	}
	return result, nil
}
func (m *mockProgramRepo) Update(p *models.Program) error { m.c.programs[p.ID] = p; return nil }
func (m *mockProgramRepo) Delete(id string) error {
	if _, ok := m.c.programs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.c.programs, id)
	return nil
}

type mockBlockRepo struct{ c *mockCatalog }

func (m *mockBlockRepo) Create(b *models.Block) error { m.c.blocks[b.ID] = b; return nil }
func (m *mockBlockRepo) GetByID(id string) (*models.Block, error) {
	b, ok := m.c.blocks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}
func (m *mockBlockRepo) List() ([]models.Block, error) { return nil, nil }
func (m *mockBlockRepo) Update(b *models.Block) error  { m.c.blocks[b.ID] = b; return nil }
func (m *mockBlockRepo) Delete(id string) error {
	delete(m.c.blocks, id)
	return nil
}

type mockQuestionRepo struct{ c *mockCatalog }

func (m *mockQuestionRepo) Create(q *models.Question) error { m.c.questions[q.ID] = q; return nil }
func (m *mockQuestionRepo) GetByID(id string) (*models.Question, error) {
	q, ok := m.c.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}
func (m *mockQuestionRepo) List() ([]models.Question, error) { return nil, nil }
func (m *mockQuestionRepo) Update(q *models.Question) error  { m.c.questions[q.ID] = q; return nil }
func (m *mockQuestionRepo) Delete(id string) error {
	if _, ok := m.c.questions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.c.questions, id)
	return nil
}

type mockTeamRepo struct{ c *mockCatalog }

func (m *mockTeamRepo) Create(t *models.Team) error { m.c.teams[t.ID] = t; return nil }
func (m *mockTeamRepo) GetByID(id string) (*models.Team, error) {
	t, ok := m.c.teams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}
func (m *mockTeamRepo) List() ([]models.Team, error) { return nil, nil }
func (m *mockTeamRepo) Update(t *models.Team) error  { m.c.teams[t.ID] = t; return nil }
func (m *mockTeamRepo) Delete(id string) error {
	delete(m.c.teams, id)
	return nil
}

type mockProjectRepo struct{ c *mockCatalog }

func (m *mockProjectRepo) Create(p *models.Project) error { m.c.projects[p.ID] = p; return nil }
func (m *mockProjectRepo) GetByID(id string) (*models.Project, error) {
	p, ok := m.c.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}
func (m *mockProjectRepo) List() ([]models.Project, error) { return nil, nil }
func (m *mockProjectRepo) Update(p *models.Project) error  { m.c.projects[p.ID] = p; return nil }
func (m *mockProjectRepo) Delete(id string) error {
	delete(m.c.projects, id)
	return nil
}

type mockJudgeService struct{ c *mockCatalog }

func (m *mockJudgeService) Create(ctx context.Context, j *models.Judge) error {
	if j.Token == "" {
		j.Token = "generated"
	}
	m.c.judges = append(m.c.judges, *j)
	return nil
}

func (m *mockJudgeService) List(ctx context.Context) ([]models.Judge, error) {
	return m.c.judges, nil
}

type mockSeeder struct{ c *mockCatalog }

func (m *mockSeeder) Seed(ctx context.Context) (*seed.Summary, error) {
	m.c.seeded = true
	return &seed.Summary{Programs: 2, Projects: 10, Judges: 21}, nil
}

func setupRouter(c *mockCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandlerWithInterfaces(Deps{
		ProgramRepo:  &mockProgramRepo{c},
		BlockRepo:    &mockBlockRepo{c},
		QuestionRepo: &mockQuestionRepo{c},
		TeamRepo:     &mockTeamRepo{c},
		ProjectRepo:  &mockProjectRepo{c},
		JudgeService: &mockJudgeService{c},
		Seeder:       &mockSeeder{c},
	}, logger.Nop())

	router := gin.New()
	admin := router.Group("/api/v1/admin")
	admin.POST("/programs", handler.CreateProgram)
	admin.GET("/programs", handler.ListPrograms)
	admin.PUT("/programs/:id", handler.UpdateProgram)
	admin.DELETE("/programs/:id", handler.DeleteProgram)
	admin.POST("/questions", handler.CreateQuestion)
	admin.POST("/judges", handler.CreateJudge)
	admin.POST("/seed", handler.SeedDemoData)
	return router
}

func doJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateProgram(t *testing.T) {
	c := newMockCatalog()
	router := setupRouter(c)

	w := doJSON(router, http.MethodPost, "/api/v1/admin/programs", gin.H{
		"id":   "prog1",
		"name": "Incubación 2026",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, c.programs, "prog1")
}

func TestCreateProgramMissingName(t *testing.T) {
	router := setupRouter(newMockCatalog())

	w := doJSON(router, http.MethodPost, "/api/v1/admin/programs", gin.H{"id": "prog1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProgramNotFound(t *testing.T) {
	router := setupRouter(newMockCatalog())

	w := doJSON(router, http.MethodPut, "/api/v1/admin/programs/ghost", gin.H{"name": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProgram(t *testing.T) {
	c := newMockCatalog()
	c.programs["prog1"] = &models.Program{ID: "prog1", Name: "Old"}
	router := setupRouter(c)

	w := doJSON(router, http.MethodDelete, "/api/v1/admin/programs/prog1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/v1/admin/programs/prog1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateQuestionDefaultsWeight(t *testing.T) {
	c := newMockCatalog()
	router := setupRouter(c)

	w := doJSON(router, http.MethodPost, "/api/v1/admin/questions", gin.H{
		"id":       "q1",
		"text":     "Clarity",
		"block_id": "b1",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, c.questions["q1"].Weight)
	assert.InDelta(t, models.DefaultQuestionWeight, *c.questions["q1"].Weight, 0.0001)
}

func TestCreateJudgeGeneratesToken(t *testing.T) {
	c := newMockCatalog()
	router := setupRouter(c)

	w := doJSON(router, http.MethodPost, "/api/v1/admin/judges", gin.H{
		"id":   "j1",
		"name": "Ana",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, c.judges, 1)
	assert.Equal(t, "generated", c.judges[0].Token)
}

func TestSeedDemoData(t *testing.T) {
	c := newMockCatalog()
	router := setupRouter(c)

	w := doJSON(router, http.MethodPost, "/api/v1/admin/seed", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, c.seeded)

	var summary seed.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 21, summary.Judges)
}
