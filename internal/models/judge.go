package models

import (
	"strings"
	"time"
)

// Judge status values. Status is the authoritative revocation flag; the
// legacy DISABLED_ token prefix is still honored for rows written before the
// status column existed.
const (
	JudgeStatusActive   = "active"
	JudgeStatusDisabled = "disabled"
)

// DisabledTokenPrefix marks revoked tokens in legacy data. A stored token
// carrying this prefix must be rejected regardless of whether the bare token
// also matches.
const DisabledTokenPrefix = "DISABLED_"

// Judge represents an evaluator with a unique access token. Category groups
// judges for reporting (e.g. "Jurados nacionales", "Jurados internacionales").
type Judge struct {
	ID        string    `gorm:"primaryKey;size:255" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	Token     string    `gorm:"uniqueIndex;not null;size:255" json:"token"`
	Category  string    `gorm:"size:255;default:'Jurados nacionales'" json:"category"`
	Status    string    `gorm:"size:50;not null;default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Judge model.
func (Judge) TableName() string {
	return "judges"
}

// IsDisabled reports whether the judge's access has been revoked, either via
// the status column or the legacy token prefix.
func (j *Judge) IsDisabled() bool {
	return j.Status == JudgeStatusDisabled || strings.HasPrefix(j.Token, DisabledTokenPrefix)
}

// Evaluation is one judge's star rating (1-5, two decimals) for one question
// on one project. At most one row exists per (judge, project, question); a
// re-submission updates the row in place.
type Evaluation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Score      float64   `gorm:"type:decimal(4,2);not null" json:"score"`
	JudgeID    string    `gorm:"not null;size:255;uniqueIndex:idx_eval_triple,priority:1" json:"judge_id"`
	Judge      *Judge    `gorm:"foreignKey:JudgeID" json:"judge,omitempty"`
	ProjectID  string    `gorm:"not null;size:255;uniqueIndex:idx_eval_triple,priority:2" json:"project_id"`
	Project    *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	QuestionID string    `gorm:"not null;size:255;uniqueIndex:idx_eval_triple,priority:3" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for Evaluation model.
func (Evaluation) TableName() string {
	return "evaluations"
}

// Star rating domain.
const (
	MinScore = 1.0
	MaxScore = 5.0
)
