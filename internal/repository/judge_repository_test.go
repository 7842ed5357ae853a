package repository

import (
	"testing"

	"github.com/startup-demoday/jurado/internal/models"
)

func TestJudgeRepository_GetByToken(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	repo := NewJudgeRepository(db)
	if err := repo.Create(&models.Judge{ID: "j1", Name: "Ana", Token: "tok-ana"}); err != nil {
		t.Fatalf("Failed to create judge: %v", err)
	}

	judge, err := repo.GetByToken("tok-ana")
	if err != nil {
		t.Fatalf("Failed to get judge by token: %v", err)
	}
	if judge.ID != "j1" {
		t.Errorf("Expected judge j1, got %s", judge.ID)
	}

	if _, err := repo.GetByToken("missing"); err == nil {
		t.Error("Expected error for unknown token")
	}
}

func TestJudgeRepository_GetByTokenMatchesLegacyPrefix(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	repo := NewJudgeRepository(db)
	if err := repo.Create(&models.Judge{
		ID: "j1", Name: "Ana", Token: models.DisabledTokenPrefix + "tok-ana",
	}); err != nil {
		t.Fatalf("Failed to create judge: %v", err)
	}

	// The bare token still resolves the prefixed row.
	judge, err := repo.GetByToken("tok-ana")
	if err != nil {
		t.Fatalf("Failed to get judge by bare token: %v", err)
	}
	if !judge.IsDisabled() {
		t.Error("Expected judge with prefixed token to report disabled")
	}
}

func TestJudgeRepository_DisableAll(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	repo := NewJudgeRepository(db)
	for _, j := range []models.Judge{
		{ID: "j1", Name: "Ana", Token: "t1", Status: models.JudgeStatusActive},
		{ID: "j2", Name: "Luis", Token: "t2", Status: models.JudgeStatusActive},
		{ID: "j3", Name: "Eva", Token: "t3", Status: models.JudgeStatusDisabled},
	} {
		judge := j
		if err := repo.Create(&judge); err != nil {
			t.Fatalf("Failed to create judge: %v", err)
		}
	}

	affected, err := repo.DisableAll()
	if err != nil {
		t.Fatalf("Failed to disable judges: %v", err)
	}
	if affected != 2 {
		t.Errorf("Expected 2 judges disabled, got %d", affected)
	}

	disabled, err := repo.CountDisabled()
	if err != nil {
		t.Fatalf("Failed to count disabled judges: %v", err)
	}
	if disabled != 3 {
		t.Errorf("Expected 3 disabled judges, got %d", disabled)
	}

	// Second run touches nothing.
	affected, err = repo.DisableAll()
	if err != nil {
		t.Fatalf("Failed to disable judges again: %v", err)
	}
	if affected != 0 {
		t.Errorf("Expected 0 judges affected on second run, got %d", affected)
	}
}

func TestJudgeRepository_CountDisabledIncludesLegacyRows(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	repo := NewJudgeRepository(db)
	for _, j := range []models.Judge{
		{ID: "j1", Name: "Ana", Token: "t1", Status: models.JudgeStatusActive},
		{ID: "j2", Name: "Luis", Token: models.DisabledTokenPrefix + "t2", Status: models.JudgeStatusActive},
	} {
		judge := j
		if err := repo.Create(&judge); err != nil {
			t.Fatalf("Failed to create judge: %v", err)
		}
	}

	disabled, err := repo.CountDisabled()
	if err != nil {
		t.Fatalf("Failed to count disabled judges: %v", err)
	}
	if disabled != 1 {
		t.Errorf("Expected 1 disabled judge, got %d", disabled)
	}
}

func TestJudgeRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	repo := NewJudgeRepository(db)
	if err := repo.Create(&models.Judge{ID: "j1", Name: "Ana", Token: "t1"}); err != nil {
		t.Fatalf("Failed to create judge: %v", err)
	}

	if err := repo.Delete("j1"); err != nil {
		t.Fatalf("Failed to delete judge: %v", err)
	}

	err := repo.Delete("j1")
	if !IsNotFound(err) {
		t.Errorf("Expected not-found error on second delete, got %v", err)
	}
}
