package scrape

import (
	"strings"
)

var relevanceTitleKeywords = []string{
	"manager", "analyst", "consultant", "director", "strategy",
	"product", "business", "operations", "marketing", "finance",
}

var relevanceSkillKeywords = []string{
	"mba", "strategy", "analytics", "leadership", "project management",
}

var prestigiousCompanies = []string{
	"google", "microsoft", "amazon", "apple", "meta", "tesla",
	"mckinsey", "bcg", "bain", "deloitte", "pwc", "accenture",
	"goldman", "morgan", "jpmorgan", "blackstone", "kkr",
}

// RelevanceInput is the subset of a posting the scorer looks at.
type RelevanceInput struct {
	Title       string
	CompanyName string
	Skills      []string
	SalaryMin   *int64
}

// RelevanceScore rates a posting for business-track job hunters on a
// [0, 1] scale. Weights: title 40%, skills 30%, salary 20%, company 10%.
func RelevanceScore(input RelevanceInput) float64 {
	var score, maxScore float64

	title := strings.ToLower(input.Title)
	company := strings.ToLower(input.CompanyName)

	titleMatches := 0
	for _, keyword := range relevanceTitleKeywords {
		if strings.Contains(title, keyword) {
			titleMatches++
		}
	}
	score += minFloat(float64(titleMatches)/3, 1.0) * 0.4
	maxScore += 0.4

	if len(input.Skills) > 0 {
		skillMatches := 0
		for _, skill := range input.Skills {
			lower := strings.ToLower(skill)
			for _, keyword := range relevanceSkillKeywords {
				if strings.Contains(lower, keyword) {
					skillMatches++
					break
				}
			}
		}
		score += minFloat(float64(skillMatches)/5, 1.0) * 0.3
	}
	maxScore += 0.3

	// Business-track roles cluster above 60k; scale toward 200k.
	if input.SalaryMin != nil && *input.SalaryMin >= 60000 {
		score += minFloat(float64(*input.SalaryMin-60000)/140000, 1.0) * 0.2
	}
	maxScore += 0.2

	companyScore := 0.05
	for _, name := range prestigiousCompanies {
		if strings.Contains(company, name) {
			companyScore = 0.1
			break
		}
	}
	score += companyScore
	maxScore += 0.1

	if maxScore == 0 {
		return 0
	}
	return score / maxScore
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
