package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startup-demoday/jurado/internal/models"
	"github.com/startup-demoday/jurado/pkg/logger"
)

const testFixture = `
programs:
  - id: prog-inc
    name: Incubación 2026
  - id: prog-acc
    name: Aceleración 2026
    family: acceleration

blocks:
  - id: b1
    name: Pitch
    order: 1
    program_id: prog-inc
    questions:
      - id: q1
        text: Clarity of the pitch
        weight: 0.5
        order: 1
      - id: q2
        text: Delivery
        weight: 1.0
        order: 2

teams:
  - id: t1
    name: Founders United

projects:
  - id: p1
    name: Orion
    program_id: prog-inc
    team_id: t1

judges:
  - id: j1
    name: Ana
    email: ana@example.com
    category: Jurados nacionales
  - id: j2
    name: Luis
    token: fixed-token
`

// Recording mocks
type recordingStore struct {
	programs     []*models.Program
	blocks       []*models.Block
	questions    []*models.Question
	teams        []*models.Team
	projects     []*models.Project
	judges       []*models.Judge
	evalsCleared bool
}

func (r *recordingStore) createProgram(p *models.Program) error {
	r.programs = append(r.programs, p)
	return nil
}

type programRepoFunc func(*models.Program) error

func (f programRepoFunc) Create(p *models.Program) error { return f(p) }

type blockRepoFunc func(*models.Block) error

func (f blockRepoFunc) Create(b *models.Block) error { return f(b) }

type questionRepoFunc func(*models.Question) error

func (f questionRepoFunc) Create(q *models.Question) error { return f(q) }

type teamRepoFunc func(*models.Team) error

func (f teamRepoFunc) Create(t *models.Team) error { return f(t) }

type projectRepoFunc func(*models.Project) error

func (f projectRepoFunc) Create(p *models.Project) error { return f(p) }

type judgeServiceFunc func(context.Context, *models.Judge) error

func (f judgeServiceFunc) Create(ctx context.Context, j *models.Judge) error { return f(ctx, j) }

type evalRepoFunc func() error

func (f evalRepoFunc) DeleteAll() error { return f() }

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newRecordingSeeder(t *testing.T, fixturePath string) (*Seeder, *recordingStore) {
	t.Helper()
	store := &recordingStore{}
	seeder := NewSeederWithInterfaces(fixturePath, Deps{
		ProgramRepo: programRepoFunc(store.createProgram),
		BlockRepo: blockRepoFunc(func(b *models.Block) error {
			store.blocks = append(store.blocks, b)
			return nil
		}),
		QuestionRepo: questionRepoFunc(func(q *models.Question) error {
			store.questions = append(store.questions, q)
			return nil
		}),
		TeamRepo: teamRepoFunc(func(tm *models.Team) error {
			store.teams = append(store.teams, tm)
			return nil
		}),
		ProjectRepo: projectRepoFunc(func(p *models.Project) error {
			store.projects = append(store.projects, p)
			return nil
		}),
		JudgeService: judgeServiceFunc(func(_ context.Context, j *models.Judge) error {
			if j.Token == "" {
				j.Token = "generated"
			}
			store.judges = append(store.judges, j)
			return nil
		}),
		EvalRepo: evalRepoFunc(func() error {
			store.evalsCleared = true
			return nil
		}),
	}, logger.Nop())
	return seeder, store
}

func TestLoadFixture(t *testing.T) {
	path := writeFixture(t, testFixture)

	fixture, err := LoadFixture(path)
	require.NoError(t, err)

	assert.Len(t, fixture.Programs, 2)
	assert.Len(t, fixture.Blocks, 1)
	assert.Len(t, fixture.Blocks[0].Questions, 2)
	assert.Len(t, fixture.Judges, 2)
	require.NotNil(t, fixture.Blocks[0].Questions[0].Weight)
	assert.InDelta(t, 0.5, *fixture.Blocks[0].Questions[0].Weight, 0.0001)
}

func TestLoadFixtureMissingFile(t *testing.T) {
	_, err := LoadFixture("/nonexistent/fixture.yaml")
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	seeder, store := newRecordingSeeder(t, writeFixture(t, testFixture))

	summary, err := seeder.Seed(context.Background())
	require.NoError(t, err)

	assert.True(t, store.evalsCleared)
	assert.Equal(t, 2, summary.Programs)
	assert.Equal(t, 1, summary.Blocks)
	assert.Equal(t, 2, summary.Questions)
	assert.Equal(t, 1, summary.Teams)
	assert.Equal(t, 1, summary.Projects)
	assert.Equal(t, 2, summary.Judges)

	// Family derivation: explicit tag kept, missing tag derived from the name.
	assert.Equal(t, models.FamilyIncubation, store.programs[0].Family)
	assert.Equal(t, models.FamilyAcceleration, store.programs[1].Family)

	// Questions inherit the block's program.
	require.NotNil(t, store.questions[0].ProgramID)
	assert.Equal(t, "prog-inc", *store.questions[0].ProgramID)

	// Token handling: generated when absent, kept when supplied.
	assert.Equal(t, "generated", store.judges[0].Token)
	assert.Equal(t, "fixed-token", store.judges[1].Token)
}
