package models

import (
	"time"
)

// Team represents the group of people behind a project. The current schema
// assumes one team maps to one project, though this is not enforced.
type Team struct {
	ID          string    `gorm:"primaryKey;size:255" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Team model.
func (Team) TableName() string {
	return "teams"
}

// Project is the unit being evaluated and ranked. Program and team references
// may dangle after admin deletions; readers must tolerate missing joins.
type Project struct {
	ID          string    `gorm:"primaryKey;size:255" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ProgramID   *string   `gorm:"size:255;index" json:"program_id"`
	Program     *Program  `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	TeamID      *string   `gorm:"size:255;index" json:"team_id"`
	Team        *Team     `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Project model.
func (Project) TableName() string {
	return "projects"
}

// ProgramName returns the joined program name or "" when the reference is
// missing.
func (p *Project) ProgramName() string {
	if p.Program == nil {
		return ""
	}
	return p.Program.Name
}

// ResolveFamily returns the family of the project's program, or FamilyNone
// when the project has no (or a dangling) program reference.
func (p *Project) ResolveFamily() ProgramFamily {
	if p.Program == nil {
		return FamilyNone
	}
	return p.Program.ResolveFamily()
}
