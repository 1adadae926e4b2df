package model

import (
	"strings"
	"time"
)

// Company represents a company row
type Company struct {
	ID                  int64     `db:"id"`
	Name                string    `db:"name"`
	Description         *string   `db:"description"`
	Website             *string   `db:"website"`
	Industry            *string   `db:"industry"`
	Size                *string   `db:"size"`
	Type                *string   `db:"type"`
	FoundedYear         *int      `db:"founded_year"`
	HeadquartersCity    *string   `db:"headquarters_city"`
	HeadquartersState   *string   `db:"headquarters_state"`
	HeadquartersCountry *string   `db:"headquarters_country"`
	GlassdoorRating     *float64  `db:"glassdoor_rating"`
	EmployeeCount       *int      `db:"employee_count"`
	IsActive            bool      `db:"is_active"`
	IsHiring            bool      `db:"is_hiring"`
	JobCount            int       `db:"job_count"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// DisplayLocation joins the headquarters fields that are present.
func (c *Company) DisplayLocation() string {
	var parts []string
	if c.HeadquartersCity != nil && *c.HeadquartersCity != "" {
		parts = append(parts, *c.HeadquartersCity)
	}
	if c.HeadquartersState != nil && *c.HeadquartersState != "" {
		parts = append(parts, *c.HeadquartersState)
	}
	if c.HeadquartersCountry != nil && *c.HeadquartersCountry != "" {
		parts = append(parts, *c.HeadquartersCountry)
	}
	return strings.Join(parts, ", ")
}

// CompanyAge returns the company age in years, or 0 when unknown.
func (c *Company) CompanyAge() int {
	if c.FoundedYear == nil || *c.FoundedYear <= 0 {
		return 0
	}
	age := time.Now().Year() - *c.FoundedYear
	if age < 0 {
		return 0
	}
	return age
}

// IsStartup reports whether the company is sized as a startup or
// founded within the last 10 years.
func (c *Company) IsStartup() bool {
	if c.Size != nil && strings.EqualFold(*c.Size, "startup") {
		return true
	}
	if age := c.CompanyAge(); age > 0 && age <= 10 {
		return true
	}
	return false
}

// HasGoodRating reports whether the Glassdoor rating is at least 4.0.
func (c *Company) HasGoodRating() bool {
	return c.GlassdoorRating != nil && *c.GlassdoorRating >= 4.0
}
