//nolint:noctx // Test file uses httptest.NewRequest for simplicity
package evaluations

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

	"github.com/startup-demoday/jurado/internal/apierr"
	"github.com/startup-demoday/jurado/internal/models"
	"github.com/startup-demoday/jurado/pkg/logger"
)

// Mock Evaluation Service
type mockEvaluationService struct {
	recorded  []models.Evaluation
	recordErr error
}

func (m *mockEvaluationService) Record(ctx context.Context, judgeID, projectID, questionID string, rawScore float64) (*models.Evaluation, error) {
	if m.recordErr != nil {
		return nil, m.recordErr
	}
	evaluation := models.Evaluation{
		ID:         uint(len(m.recorded) + 1),
		JudgeID:    judgeID,
		ProjectID:  projectID,
		QuestionID: questionID,
		Score:      rawScore,
	}
	m.recorded = append(m.recorded, evaluation)
	return &evaluation, nil
}

func (m *mockEvaluationService) List(ctx context.Context, judgeID, projectID string) ([]models.Evaluation, error) {
	var result []models.Evaluation
	for _, e := range m.recorded {
		if judgeID != "" && e.JudgeID != judgeID {
			continue
		}
		if projectID != "" && e.ProjectID != projectID {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func setupRouter(svc *mockEvaluationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandlerWithInterfaces(svc, logger.Nop())

	router := gin.New()
	router.POST("/api/v1/evaluations", handler.Record)
	router.GET("/api/v1/evaluations", handler.List)
	return router
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRecordEvaluation(t *testing.T) {
	svc := &mockEvaluationService{}
	router := setupRouter(svc)

	w := postJSON(router, "/api/v1/evaluations", gin.H{
		"judge_id":    "j1",
		"project_id":  "p1",
		"question_id": "q1",
		"score":       4.5,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var evaluation models.Evaluation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &evaluation))
	assert.InDelta(t, 4.5, evaluation.Score, 0.0001)
	assert.Len(t, svc.recorded, 1)
}

func TestRecordEvaluationZeroScoreAccepted(t *testing.T) {
	// Zero is a legitimate slider value; the service clamps it to 1.
	svc := &mockEvaluationService{}
	router := setupRouter(svc)

	w := postJSON(router, "/api/v1/evaluations", gin.H{
		"judge_id":    "j1",
		"project_id":  "p1",
		"question_id": "q1",
		"score":       0,
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecordEvaluationMissingFields(t *testing.T) {
	router := setupRouter(&mockEvaluationService{})

	w := postJSON(router, "/api/v1/evaluations", gin.H{
		"judge_id": "j1",
		"score":    4.0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordEvaluationMissingScore(t *testing.T) {
	router := setupRouter(&mockEvaluationService{})

	w := postJSON(router, "/api/v1/evaluations", gin.H{
		"judge_id":    "j1",
		"project_id":  "p1",
		"question_id": "q1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordEvaluationUnknownJudge(t *testing.T) {
	svc := &mockEvaluationService{recordErr: apierr.NotFound("judge ghost not found")}
	router := setupRouter(svc)

	w := postJSON(router, "/api/v1/evaluations", gin.H{
		"judge_id":    "ghost",
		"project_id":  "p1",
		"question_id": "q1",
		"score":       3.0,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListEvaluations(t *testing.T) {
	svc := &mockEvaluationService{}
	router := setupRouter(svc)

	postJSON(router, "/api/v1/evaluations", gin.H{
		"judge_id": "j1", "project_id": "p1", "question_id": "q1", "score": 4.0,
	})
	postJSON(router, "/api/v1/evaluations", gin.H{
		"judge_id": "j2", "project_id": "p1", "question_id": "q1", "score": 2.0,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/evaluations?judge_id=j1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Evaluations []models.Evaluation `json:"evaluations"`
		Total       int                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Total)
	assert.Equal(t, "j1", response.Evaluations[0].JudgeID)
}
