package analyzer

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/jobhunt-app/jobhunt-be/internal/api/model"
)

func strp(v string) *string        { return &v }
func i64p(v int64) *int64          { return &v }
func timep(v time.Time) *time.Time { return &v }

func sampleJob() *model.Job {
	posted := time.Now().Add(-3 * 24 * time.Hour)
	return &model.Job{
		Title:           "Senior Business Analyst",
		CompanyName:     "Acme Analytics",
		Location:        strp("New York, New York"),
		SalaryMin:       i64p(120000),
		SalaryMax:       i64p(150000),
		Currency:        "USD",
		Description:     strp("Drive strategy with SQL and Tableau dashboards."),
		RemoteFriendly:  false,
		PostedDate:      timep(posted),
		ExtractedSkills: pq.StringArray{"SQL", "Tableau", "Strategy"},
		IsActive:        true,
	}
}

func TestScoreJob_StrongMatch(t *testing.T) {
	profile := Profile{
		Skills:             []string{"SQL", "Tableau", "Strategy", "Excel"},
		ExperienceLevel:    "senior",
		PreferredLocations: []string{"New York"},
		SalaryMin:          110000,
		SalaryMax:          160000,
	}

	result := ScoreJob(sampleJob(), profile)

	assert.Equal(t, 1.0, result.SkillScore)
	assert.Equal(t, 1.0, result.ExperienceScore)
	assert.Equal(t, 1.0, result.LocationScore)
	assert.Greater(t, result.OverallScore, 0.8)
	assert.LessOrEqual(t, result.OverallScore, 1.0)
	assert.Contains(t, result.KeyInsights, "Strong skill alignment with this role")
	assert.Contains(t, result.Recommendations, "Prioritize this application")
}

func TestScoreJob_WeakMatch(t *testing.T) {
	profile := Profile{
		Skills:             []string{"Welding", "Forklift"},
		ExperienceLevel:    "entry",
		PreferredLocations: []string{"Miami"},
		SalaryMin:          200000,
		SalaryMax:          250000,
	}

	result := ScoreJob(sampleJob(), profile)

	assert.Equal(t, 0.0, result.SkillScore)
	assert.Less(t, result.ExperienceScore, 0.5)
	assert.Equal(t, 0.3, result.LocationScore)
	assert.Less(t, result.OverallScore, 0.5)
	assert.Contains(t, result.Recommendations, "Highlight transferable skills to close the gap")
	assert.Contains(t, result.RedFlags, "Experience level mismatch")
}

func TestScoreJob_ScoresWithinUnitInterval(t *testing.T) {
	profiles := []Profile{
		{},
		{Skills: []string{"SQL"}, SalaryMin: 1, SalaryMax: 2},
		{ExperienceLevel: "principal", SalaryMin: 500000},
	}

	for _, profile := range profiles {
		result := ScoreJob(sampleJob(), profile)

		for _, score := range []float64{
			result.OverallScore, result.SkillScore, result.ExperienceScore,
			result.LocationScore, result.SalaryScore, result.ConfidenceScore,
		} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestSkillMatch_Defaults(t *testing.T) {
	job := sampleJob()
	job.ExtractedSkills = nil
	job.Description = strp("friendly workplace, no specific tooling mentioned")

	// No detectable skills on the job side falls back to the default.
	result := ScoreJob(job, Profile{Skills: []string{"SQL"}})
	assert.Equal(t, 0.8, result.SkillScore)
}

func TestLocationMatch_RemotePreference(t *testing.T) {
	job := sampleJob()
	job.RemoteFriendly = true

	result := ScoreJob(job, Profile{PreferredLocations: []string{"Remote"}})
	assert.Equal(t, 1.0, result.LocationScore)
}

func TestSalaryMatch_JobPaysAboveExpectations(t *testing.T) {
	job := sampleJob()
	job.SalaryMin = i64p(180000)
	job.SalaryMax = i64p(220000)

	result := ScoreJob(job, Profile{SalaryMin: 90000, SalaryMax: 120000})
	assert.Equal(t, 0.9, result.SalaryScore)
}

func TestSalaryMatch_NoJobSalary(t *testing.T) {
	job := sampleJob()
	job.SalaryMin = nil
	job.SalaryMax = nil

	result := ScoreJob(job, Profile{SalaryMin: 100000, SalaryMax: 150000})
	assert.Equal(t, 0.6, result.SalaryScore)
	assert.Contains(t, result.RedFlags, "No salary information disclosed")
}
