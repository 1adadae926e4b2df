// Package analyzer scores a job posting against a candidate profile.
// Scoring is deterministic: component scores for skills, experience,
// location, and salary are combined with fixed weights.
package analyzer

import (
	"strings"

	"github.com/jobhunt-app/jobhunt-be/internal/api/model"
	"github.com/jobhunt-app/jobhunt-be/internal/scrape"
)

const (
	weightSkill      = 0.4
	weightExperience = 0.2
	weightLocation   = 0.15
	weightSalary     = 0.15
	weightCulture    = 0.1

	// cultureScore is a flat placeholder until company signals exist.
	cultureScore = 0.75

	// ModelVersion identifies the scoring algorithm on analysis rows.
	ModelVersion = "match-scorer/1.0"
)

// Profile describes the candidate a job is scored against.
type Profile struct {
	Skills             []string
	ExperienceLevel    string
	PreferredLocations []string
	SalaryMin          int64
	SalaryMax          int64
}

// Result carries the component and overall scores plus generated notes.
// All scores are in [0, 1].
type Result struct {
	OverallScore    float64
	ConfidenceScore float64
	SkillScore      float64
	ExperienceScore float64
	LocationScore   float64
	SalaryScore     float64
	KeyInsights     []string
	Recommendations []string
	RedFlags        []string
}

// ScoreJob computes the match between a job and a profile.
func ScoreJob(job *model.Job, profile Profile) Result {
	jobSkills := []string(job.ExtractedSkills)
	if len(jobSkills) == 0 {
		var text strings.Builder
		if job.Description != nil {
			text.WriteString(*job.Description)
		}
		if job.Requirements != nil {
			text.WriteString(" ")
			text.WriteString(*job.Requirements)
		}
		jobSkills = scrape.ExtractSkills(text.String())
	}

	result := Result{
		ConfidenceScore: 0.85,
		SkillScore:      skillMatch(jobSkills, profile.Skills),
		ExperienceScore: experienceMatch(job, profile.ExperienceLevel),
		LocationScore:   locationMatch(job, profile.PreferredLocations),
		SalaryScore:     salaryMatch(job, profile),
	}

	overall := result.SkillScore*weightSkill +
		result.ExperienceScore*weightExperience +
		result.LocationScore*weightLocation +
		result.SalaryScore*weightSalary +
		cultureScore*weightCulture
	result.OverallScore = model.ClampScore(overall)

	result.KeyInsights, result.Recommendations, result.RedFlags = generateNotes(job, result)

	return result
}

// skillMatch is the fraction of job skills present in the profile.
// Jobs with no detectable skills get a default score.
func skillMatch(jobSkills, userSkills []string) float64 {
	if len(jobSkills) == 0 {
		return 0.8
	}

	userSet := make(map[string]struct{}, len(userSkills))
	for _, skill := range userSkills {
		userSet[strings.ToLower(skill)] = struct{}{}
	}

	matches := 0
	for _, skill := range jobSkills {
		if _, ok := userSet[strings.ToLower(skill)]; ok {
			matches++
		}
	}

	return model.ClampScore(float64(matches) / float64(len(jobSkills)))
}

var experienceLevels = map[string]int{
	"entry":     1,
	"junior":    2,
	"mid":       3,
	"senior":    4,
	"lead":      5,
	"principal": 6,
}

// experienceMatch compares seniority inferred from the job text with the
// profile's level. Each level of distance costs 0.2.
func experienceMatch(job *model.Job, userExperience string) float64 {
	userLevel, ok := experienceLevels[strings.ToLower(userExperience)]
	if !ok {
		userLevel = 3
	}

	jobText := strings.ToLower(job.Title)
	if job.Description != nil {
		jobText += " " + strings.ToLower(*job.Description)
	}

	jobLevel := 3
	switch {
	case strings.Contains(jobText, "entry") || strings.Contains(jobText, "junior"):
		jobLevel = 2
	case strings.Contains(jobText, "lead") || strings.Contains(jobText, "principal"):
		jobLevel = 5
	case strings.Contains(jobText, "senior"):
		jobLevel = 4
	}

	diff := jobLevel - userLevel
	if diff < 0 {
		diff = -diff
	}

	return model.ClampScore(1.0 - float64(diff)*0.2)
}

func locationMatch(job *model.Job, preferences []string) float64 {
	if job.Location == nil || *job.Location == "" {
		return 0.5
	}
	if len(preferences) == 0 {
		return 0.7
	}

	jobLocation := strings.ToLower(*job.Location)

	for _, pref := range preferences {
		prefLower := strings.ToLower(pref)
		if strings.Contains(jobLocation, prefLower) || strings.Contains(prefLower, jobLocation) {
			return 1.0
		}
		if strings.Contains(prefLower, "remote") && (strings.Contains(jobLocation, "remote") || job.RemoteFriendly) {
			return 1.0
		}
	}

	return 0.3
}

// salaryMatch scores the overlap between the job's salary band and the
// profile's expectations.
func salaryMatch(job *model.Job, profile Profile) float64 {
	if profile.SalaryMin == 0 && profile.SalaryMax == 0 {
		return 0.7
	}
	if job.SalaryMin == nil && job.SalaryMax == nil {
		return 0.6
	}

	userMin := profile.SalaryMin
	userMax := profile.SalaryMax
	if userMax == 0 {
		userMax = 1 << 40
	}

	var jobMin, jobMax int64
	if job.SalaryMin != nil {
		jobMin = *job.SalaryMin
	}
	switch {
	case job.SalaryMax != nil:
		jobMax = *job.SalaryMax
	case jobMin > 0:
		jobMax = jobMin
	default:
		jobMax = userMax
	}

	overlapMin := maxInt64(userMin, jobMin)
	overlapMax := minInt64(userMax, jobMax)

	if overlapMin <= overlapMax {
		userRange := userMax - userMin
		jobRange := jobMax - jobMin
		if userRange > 0 && jobRange > 0 {
			widest := maxInt64(userRange, jobRange)
			return model.ClampScore(float64(overlapMax-overlapMin) / float64(widest))
		}
		return 0.8
	}

	if userMax < jobMin {
		// Job pays above expectations.
		return 0.9
	}

	// Job pays below expectations: penalize by the relative gap.
	if userMin <= 0 {
		return 0.2
	}
	gap := userMin - jobMax
	penalty := float64(gap) / float64(userMin)
	if penalty > 0.8 {
		penalty = 0.8
	}
	score := 1.0 - penalty
	if score < 0.1 {
		score = 0.1
	}
	return score
}

func generateNotes(job *model.Job, result Result) (insights, recommendations, redFlags []string) {
	if result.SkillScore >= 0.7 {
		insights = append(insights, "Strong skill alignment with this role")
	}
	if result.SalaryScore >= 0.8 && job.HasSalaryInfo() {
		insights = append(insights, "Salary range fits expectations")
	}
	if job.RemoteFriendly {
		insights = append(insights, "Remote-friendly position")
	}
	if job.IsRecent() {
		insights = append(insights, "Recently posted, likely still accepting applications")
	}

	if result.SkillScore < 0.5 {
		recommendations = append(recommendations, "Highlight transferable skills to close the gap")
	}
	if result.OverallScore >= 0.8 {
		recommendations = append(recommendations, "Prioritize this application")
	} else if result.OverallScore >= 0.6 {
		recommendations = append(recommendations, "Worth applying with a tailored resume")
	}

	if !job.HasSalaryInfo() {
		redFlags = append(redFlags, "No salary information disclosed")
	}
	if result.ExperienceScore < 0.5 {
		redFlags = append(redFlags, "Experience level mismatch")
	}
	if job.IsExpired() {
		redFlags = append(redFlags, "Posting appears to be expired")
	}

	return insights, recommendations, redFlags
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
