package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func i64(v int64) *int64           { return &v }
func f64(v float64) *float64       { return &v }
func str(v string) *string         { return &v }
func intp(v int) *int              { return &v }
func timep(v time.Time) *time.Time { return &v }

func TestJob_SalaryRangeDisplay(t *testing.T) {
	tests := []struct {
		name string
		job  Job
		want string
	}{
		{
			name: "full range in USD",
			job:  Job{SalaryMin: i64(120000), SalaryMax: i64(150000), Currency: "USD"},
			want: "$120,000 - $150,000",
		},
		{
			name: "min only",
			job:  Job{SalaryMin: i64(90000), Currency: "USD"},
			want: "$90,000+",
		},
		{
			name: "max only",
			job:  Job{SalaryMax: i64(150000), Currency: "USD"},
			want: "Up to $150,000",
		},
		{
			name: "non-USD currency keeps the code",
			job:  Job{SalaryMin: i64(80000), SalaryMax: i64(95000), Currency: "EUR"},
			want: "EUR80,000 - EUR95,000",
		},
		{
			name: "no salary info",
			job:  Job{Currency: "USD"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.job.SalaryRangeDisplay())
		})
	}
}

func TestJob_Flags(t *testing.T) {
	now := time.Now()

	recent := Job{PostedDate: timep(now.Add(-5 * 24 * time.Hour))}
	assert.True(t, recent.IsRecent())

	stale := Job{PostedDate: timep(now.Add(-45 * 24 * time.Hour))}
	assert.False(t, stale.IsRecent())

	noDate := Job{}
	assert.False(t, noDate.IsRecent())

	expired := Job{ExpiresDate: timep(now.Add(-time.Hour))}
	assert.True(t, expired.IsExpired())

	open := Job{ExpiresDate: timep(now.Add(time.Hour))}
	assert.False(t, open.IsExpired())
	assert.False(t, (&Job{}).IsExpired())

	assert.True(t, (&Job{SalaryMin: i64(1)}).HasSalaryInfo())
	assert.True(t, (&Job{SalaryMax: i64(1)}).HasSalaryInfo())
	assert.False(t, (&Job{}).HasSalaryInfo())
}

func TestCompany_DisplayLocation(t *testing.T) {
	tests := []struct {
		name    string
		company Company
		want    string
	}{
		{
			name: "city state country",
			company: Company{
				HeadquartersCity:    str("Austin"),
				HeadquartersState:   str("Texas"),
				HeadquartersCountry: str("United States"),
			},
			want: "Austin, Texas, United States",
		},
		{
			name:    "city only",
			company: Company{HeadquartersCity: str("Berlin")},
			want:    "Berlin",
		},
		{
			name:    "nothing set",
			company: Company{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.company.DisplayLocation())
		})
	}
}

func TestCompany_IsStartup(t *testing.T) {
	thisYear := time.Now().Year()

	bySize := Company{Size: str("Startup")}
	assert.True(t, bySize.IsStartup())

	byAge := Company{FoundedYear: intp(thisYear - 3)}
	assert.True(t, byAge.IsStartup())

	old := Company{FoundedYear: intp(thisYear - 50)}
	assert.False(t, old.IsStartup())

	unknown := Company{}
	assert.False(t, unknown.IsStartup())
}

func TestCompany_HasGoodRating(t *testing.T) {
	assert.True(t, (&Company{GlassdoorRating: f64(4.2)}).HasGoodRating())
	assert.False(t, (&Company{GlassdoorRating: f64(3.9)}).HasGoodRating())
	assert.False(t, (&Company{}).HasGoodRating())
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, ClampScore(-0.5))
	assert.Equal(t, 1.0, ClampScore(1.5))
	assert.Equal(t, 0.73, ClampScore(0.73))
}

func TestAnalysis_Levels(t *testing.T) {
	tests := []struct {
		name       string
		matchScore *float64
		wantLevel  string
		highMatch  bool
	}{
		{"excellent", f64(0.95), "excellent", true},
		{"good", f64(0.75), "good", false},
		{"fair", f64(0.55), "fair", false},
		{"poor", f64(0.2), "poor", false},
		{"unknown", nil, "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analysis{MatchScore: tt.matchScore}
			assert.Equal(t, tt.wantLevel, a.MatchLevel())
			assert.Equal(t, tt.highMatch, a.IsHighMatch())
		})
	}

	assert.Equal(t, "high", (&Analysis{ConfidenceScore: 0.85}).ConfidenceLevel())
	assert.Equal(t, "medium", (&Analysis{ConfidenceScore: 0.65}).ConfidenceLevel())
	assert.Equal(t, "low", (&Analysis{ConfidenceScore: 0.3}).ConfidenceLevel())
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "0", formatThousands(0))
	assert.Equal(t, "950", formatThousands(950))
	assert.Equal(t, "1,000", formatThousands(1000))
	assert.Equal(t, "120,000", formatThousands(120000))
	assert.Equal(t, "1,234,567", formatThousands(1234567))
}
