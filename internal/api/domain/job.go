package domain

import (
	"errors"
)

// Sort directions accepted by list/search endpoints.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Employment types as stored on job rows.
const (
	EmploymentFullTime   = "full-time"
	EmploymentPartTime   = "part-time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
)

// Source platforms jobs are scraped from.
const (
	PlatformLinkedIn = "linkedin"
	PlatformIndeed   = "indeed"
	PlatformAdzuna   = "adzuna"
	PlatformManual   = "manual"
)

var (
	ErrJobNotFound      = errors.New("job not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrDuplicateJob     = errors.New("job with this source_url already exists")
	ErrDuplicateCompany = errors.New("company with this name already exists")
	ErrInvalidSalary    = errors.New("salary_min must not exceed salary_max")
	ErrInvalidSortKey   = errors.New("unsupported sort key")
	ErrInvalidSortOrder = errors.New("sort order must be asc or desc")
)
