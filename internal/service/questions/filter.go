// Package questions decides which questions and blocks apply to a project
// based on program families.
package questions

import (
	"sort"

	"github.com/startup-demoday/jurado/internal/models"
)

// ForProject returns the questions applicable to a project.
//
// A question without a family applies to every project: historical data
// predates per-program questions, so default inclusion keeps old forms
// working. A question with a family applies only to projects whose program
// resolves to the same family. Projects whose program resolves to no known
// family (including brand-new program names) accept every question, matching
// the legacy behavior.
func ForProject(project *models.Project, all []models.Question) []models.Question {
	if project == nil {
		return all
	}

	projectFamily := project.ResolveFamily()

	filtered := make([]models.Question, 0, len(all))
	for _, q := range all {
		family := q.ResolveFamily()
		if family == models.FamilyNone || projectFamily == models.FamilyNone || family == projectFamily {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// BlocksForProject returns the blocks referenced by at least one applicable
// question, sorted ascending by display order.
func BlocksForProject(project *models.Project, all []models.Question, blocks []models.Block) []models.Block {
	applicable := ForProject(project, all)

	referenced := make(map[string]bool, len(applicable))
	for _, q := range applicable {
		referenced[q.BlockID] = true
	}

	result := make([]models.Block, 0, len(referenced))
	for _, b := range blocks {
		if referenced[b.ID] {
			result = append(result, b)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Order < result[j].Order
	})
	return result
}

// ApplicableCount returns how many questions a judge must answer to fully
// evaluate the project. This replaces the historical fixed per-program
// question-count assumption with the actual filtered count.
func ApplicableCount(project *models.Project, all []models.Question) int {
	return len(ForProject(project, all))
}
