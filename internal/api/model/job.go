package model

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Job represents a job posting row
type Job struct {
	ID              int64          `db:"id"`
	Title           string         `db:"title"`
	CompanyName     string         `db:"company_name"`
	Location        *string        `db:"location"`
	SalaryMin       *int64         `db:"salary_min"`
	SalaryMax       *int64         `db:"salary_max"`
	Currency        string         `db:"currency"`
	Description     *string        `db:"description"`
	Requirements    *string        `db:"requirements"`
	JobLevel        *string        `db:"job_level"`
	EmploymentType  *string        `db:"employment_type"`
	RemoteFriendly  bool           `db:"remote_friendly"`
	PostedDate      *time.Time     `db:"posted_date"`
	ExpiresDate     *time.Time     `db:"expires_date"`
	SourceURL       string         `db:"source_url"`
	SourcePlatform  string         `db:"source_platform"`
	ExtractedSkills pq.StringArray `db:"extracted_skills"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	IsActive        bool           `db:"is_active"`
}

// SalaryRangeDisplay formats the salary bounds for presentation.
// Returns "" when no salary information is available.
func (j *Job) SalaryRangeDisplay() string {
	if j.SalaryMin == nil && j.SalaryMax == nil {
		return ""
	}

	symbol := j.Currency
	if j.Currency == "USD" {
		symbol = "$"
	}

	switch {
	case j.SalaryMin != nil && j.SalaryMax != nil:
		return fmt.Sprintf("%s%s - %s%s", symbol, formatThousands(*j.SalaryMin), symbol, formatThousands(*j.SalaryMax))
	case j.SalaryMin != nil:
		return fmt.Sprintf("%s%s+", symbol, formatThousands(*j.SalaryMin))
	default:
		return fmt.Sprintf("Up to %s%s", symbol, formatThousands(*j.SalaryMax))
	}
}

// HasSalaryInfo reports whether either salary bound is present.
func (j *Job) HasSalaryInfo() bool {
	return j.SalaryMin != nil || j.SalaryMax != nil
}

// IsRecent reports whether the job was posted within the last 30 days.
func (j *Job) IsRecent() bool {
	if j.PostedDate == nil {
		return false
	}
	return time.Since(*j.PostedDate) <= 30*24*time.Hour
}

// IsExpired reports whether the posting has passed its expiry date.
func (j *Job) IsExpired() bool {
	if j.ExpiresDate == nil {
		return false
	}
	return time.Now().After(*j.ExpiresDate)
}

// formatThousands renders n with comma separators (1234567 -> "1,234,567").
func formatThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		s = s[1:]
	}

	var out []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digit)
	}

	if n < 0 {
		return "-" + string(out)
	}
	return string(out)
}
