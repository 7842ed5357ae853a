package judges

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/startup-demoday/jurado/internal/apierr"
	"github.com/startup-demoday/jurado/internal/models"
	"github.com/startup-demoday/jurado/pkg/logger"
)

// Mock repository for testing
type mockJudgeRepository struct {
	judges map[string]*models.Judge
}

func newMockJudgeRepository(judges ...*models.Judge) *mockJudgeRepository {
	m := &mockJudgeRepository{judges: make(map[string]*models.Judge)}
	for _, j := range judges {
		m.judges[j.ID] = j
	}
	return m
}

func (m *mockJudgeRepository) Create(judge *models.Judge) error {
	m.judges[judge.ID] = judge
	return nil
}

func (m *mockJudgeRepository) GetByID(id string) (*models.Judge, error) {
	judge, ok := m.judges[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return judge, nil
}

func (m *mockJudgeRepository) GetByToken(token string) (*models.Judge, error) {
	for _, j := range m.judges {
		if j.Token == token || j.Token == models.DisabledTokenPrefix+token {
			return j, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJudgeRepository) List() ([]models.Judge, error) {
	var result []models.Judge
	for _, j := range m.judges {
		result = append(result, *j)
	}
	return result, nil
}

func (m *mockJudgeRepository) Update(judge *models.Judge) error {
	m.judges[judge.ID] = judge
	return nil
}

func (m *mockJudgeRepository) Delete(id string) error {
	if _, ok := m.judges[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.judges, id)
	return nil
}

func (m *mockJudgeRepository) DisableAll() (int64, error) {
	var affected int64
	for _, j := range m.judges {
		if j.Status == models.JudgeStatusActive {
			j.Status = models.JudgeStatusDisabled
			affected++
		}
	}
	return affected, nil
}

func (m *mockJudgeRepository) CountDisabled() (int64, error) {
	var count int64
	for _, j := range m.judges {
		if j.IsDisabled() {
			count++
		}
	}
	return count, nil
}

func (m *mockJudgeRepository) CountAll() (int64, error) {
	return int64(len(m.judges)), nil
}

func TestGenerateToken(t *testing.T) {
	first, err := GenerateToken()
	require.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestValidateActiveJudge(t *testing.T) {
	repo := newMockJudgeRepository(
		&models.Judge{ID: "j1", Name: "Ana", Token: "abc123", Status: models.JudgeStatusActive},
	)
	svc := NewServiceWithInterfaces(repo, logger.Nop())

	judge, err := svc.Validate(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "j1", judge.ID)
}

func TestValidateUnknownToken(t *testing.T) {
	svc := NewServiceWithInterfaces(newMockJudgeRepository(), logger.Nop())

	_, err := svc.Validate(context.Background(), "nope")
	assert.True(t, apierr.IsKind(err, apierr.KindNotFound))
}

func TestValidateEmptyToken(t *testing.T) {
	svc := NewServiceWithInterfaces(newMockJudgeRepository(), logger.Nop())

	_, err := svc.Validate(context.Background(), "")
	assert.True(t, apierr.IsKind(err, apierr.KindConstraint))
}

func TestValidateDisabledJudge(t *testing.T) {
	repo := newMockJudgeRepository(
		&models.Judge{ID: "j1", Name: "Ana", Token: "abc123", Status: models.JudgeStatusDisabled},
	)
	svc := NewServiceWithInterfaces(repo, logger.Nop())

	_, err := svc.Validate(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrVotingClosed)
}

func TestValidateLegacyPrefixedToken(t *testing.T) {
	// Revoked the old way: the stored token itself carries the prefix and the
	// status column still says active.
	repo := newMockJudgeRepository(
		&models.Judge{ID: "j1", Name: "Ana", Token: "DISABLED_abc123", Status: models.JudgeStatusActive},
	)
	svc := NewServiceWithInterfaces(repo, logger.Nop())

	// Presenting the bare token finds the prefixed row and reports closure.
	_, err := svc.Validate(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrVotingClosed)

	// Presenting the prefixed token short-circuits to the same answer.
	_, err = svc.Validate(context.Background(), "DISABLED_abc123")
	assert.ErrorIs(t, err, ErrVotingClosed)
}

func TestCloseVotingIsIdempotent(t *testing.T) {
	repo := newMockJudgeRepository(
		&models.Judge{ID: "j1", Token: "t1", Status: models.JudgeStatusActive},
		&models.Judge{ID: "j2", Token: "t2", Status: models.JudgeStatusActive},
	)
	svc := NewServiceWithInterfaces(repo, logger.Nop())

	affected, err := svc.CloseVoting(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	affected, err = svc.CloseVoting(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	_, err = svc.Validate(context.Background(), "t1")
	assert.ErrorIs(t, err, ErrVotingClosed)
}

func TestCreateGeneratesToken(t *testing.T) {
	repo := newMockJudgeRepository()
	svc := NewServiceWithInterfaces(repo, logger.Nop())

	judge := &models.Judge{ID: "j1", Name: "Ana"}
	require.NoError(t, svc.Create(context.Background(), judge))

	assert.Len(t, judge.Token, 32)
	assert.Equal(t, models.JudgeStatusActive, judge.Status)
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewServiceWithInterfaces(newMockJudgeRepository(), logger.Nop())

	err := svc.Create(context.Background(), &models.Judge{ID: "j1"})
	assert.True(t, apierr.IsKind(err, apierr.KindConstraint))
}

func TestStatus(t *testing.T) {
	repo := newMockJudgeRepository(
		&models.Judge{ID: "j1", Token: "t1", Status: models.JudgeStatusActive},
		&models.Judge{ID: "j2", Token: "t2", Status: models.JudgeStatusDisabled},
	)
	svc := NewServiceWithInterfaces(repo, logger.Nop())

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalJudges)
	assert.Equal(t, int64(1), status.DisabledJudges)
	assert.False(t, status.Closed)

	_, err = svc.CloseVoting(context.Background())
	require.NoError(t, err)

	status, err = svc.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Closed)
}
