// Package models defines domain models for the event evaluation system.
package models

import (
	"strings"
	"time"
)

// ProgramFamily identifies the evaluation track a program belongs to.
// It replaces the historical substring matching on Spanish/English program
// names with an explicit tag stored on both programs and questions.
type ProgramFamily string

// Known program families. An empty family means "unclassified": questions
// without a family apply to every project, and projects without a family
// accept every question.
const (
	FamilyNone         ProgramFamily = ""
	FamilyIncubation   ProgramFamily = "incubation"
	FamilyAcceleration ProgramFamily = "acceleration"
)

// Program represents a named evaluation track (e.g. Incubación, Aceleración)
// with its own blocks, questions and point budget.
type Program struct {
	ID          string        `gorm:"primaryKey;size:255" json:"id"`
	Name        string        `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Family      ProgramFamily `gorm:"size:50;index" json:"family"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName specifies the table name for Program model.
func (Program) TableName() string {
	return "programs"
}

// ResolveFamily returns the program's family tag, deriving it from the
// program name for legacy rows created before the family column existed.
// Historical data mixes Spanish and English identifiers, so the derivation
// matches on name fragments. Unknown names resolve to FamilyNone.
func (p *Program) ResolveFamily() ProgramFamily {
	if p.Family != FamilyNone {
		return p.Family
	}
	return FamilyFromName(p.Name)
}

// FamilyFromName derives a program family from a free-form program name or
// legacy program identifier.
func FamilyFromName(name string) ProgramFamily {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "incubaci") || strings.Contains(n, "incubat"):
		return FamilyIncubation
	case strings.Contains(n, "aceleraci") || strings.Contains(n, "accelerat"):
		return FamilyAcceleration
	default:
		return FamilyNone
	}
}

// Block represents a thematic grouping of questions (e.g. "Mercado",
// "Equipo") within a program. Order defines the display and aggregation
// sequence and should be unique within a program.
type Block struct {
	ID          string    `gorm:"primaryKey;size:255" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Order       int       `gorm:"column:display_order;not null;default:0" json:"order"`
	ProgramID   *string   `gorm:"size:255;index" json:"program_id"`
	Program     *Program  `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Block model.
func (Block) TableName() string {
	return "blocks"
}

// Question represents one evaluation criterion. Weight is the point value a
// perfect 5-star rating contributes to the program's maximum score; it is
// nullable because data predating the weighted scoring system carries no
// weights at all.
type Question struct {
	ID          string        `gorm:"primaryKey;size:255" json:"id"`
	Text        string        `gorm:"type:text;not null" json:"text"`
	Description string        `gorm:"type:text" json:"description"`
	Weight      *float64      `gorm:"type:decimal(3,2)" json:"weight"`
	BlockID     string        `gorm:"not null;size:255;index" json:"block_id"`
	Block       *Block        `gorm:"foreignKey:BlockID" json:"block,omitempty"`
	ProgramID   *string       `gorm:"size:255;index" json:"program_id"`
	Program     *Program      `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	Family      ProgramFamily `gorm:"size:50;index" json:"family"`
	Order       int           `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName specifies the table name for Question model.
func (Question) TableName() string {
	return "questions"
}

// ResolveFamily returns the question's family tag, falling back to the
// owning program's family and then to the legacy program identifier when the
// family column is empty.
func (q *Question) ResolveFamily() ProgramFamily {
	if q.Family != FamilyNone {
		return q.Family
	}
	if q.Program != nil {
		return q.Program.ResolveFamily()
	}
	if q.ProgramID == nil {
		return FamilyNone
	}
	return FamilyFromName(*q.ProgramID)
}

// DefaultQuestionWeight is the weight assumed for newly created questions
// when the admin does not set one.
const DefaultQuestionWeight = 0.5
