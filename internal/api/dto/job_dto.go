package dto

type CreateJobRequest struct {
	Title          string   `json:"title" binding:"required"`
	CompanyName    string   `json:"company_name" binding:"required"`
	Location       *string  `json:"location"`
	SalaryMin      *int64   `json:"salary_min"`
	SalaryMax      *int64   `json:"salary_max"`
	Currency       string   `json:"currency"`
	Description    *string  `json:"description"`
	Requirements   *string  `json:"requirements"`
	JobLevel       *string  `json:"job_level"`
	EmploymentType *string  `json:"employment_type"`
	RemoteFriendly bool     `json:"remote_friendly"`
	PostedDate     *string  `json:"posted_date"`
	ExpiresDate    *string  `json:"expires_date"`
	SourceURL      string   `json:"source_url" binding:"required"`
	SourcePlatform string   `json:"source_platform"`
	Skills         []string `json:"skills"`
	RunAnalysis    bool     `json:"run_analysis"`
}

type UpdateJobRequest struct {
	Title          *string  `json:"title"`
	Location       *string  `json:"location"`
	SalaryMin      *int64   `json:"salary_min"`
	SalaryMax      *int64   `json:"salary_max"`
	Description    *string  `json:"description"`
	Requirements   *string  `json:"requirements"`
	JobLevel       *string  `json:"job_level"`
	EmploymentType *string  `json:"employment_type"`
	RemoteFriendly *bool    `json:"remote_friendly"`
	ExpiresDate    *string  `json:"expires_date"`
	Skills         []string `json:"skills"`
	IsActive       *bool    `json:"is_active"`
}

type ListJobsRequest struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// SearchJobsRequest carries the filter set for GET /jobs/search.
// Pointer fields distinguish "absent" from zero values.
type SearchJobsRequest struct {
	Query          *string  `form:"q"`
	Location       *string  `form:"location"`
	Company        *string  `form:"company"`
	EmploymentType *string  `form:"employment_type"`
	SalaryMin      *int64   `form:"salary_min"`
	SalaryMax      *int64   `form:"salary_max"`
	Remote         *bool    `form:"remote"`
	HasSalary      *bool    `form:"has_salary"`
	PostedDaysAgo  *int     `form:"posted_days_ago"`
	Skills         []string `form:"skills"`
	Skip           int      `form:"skip"`
	Limit          int      `form:"limit"`
	SortBy         string   `form:"sort_by"`
	SortOrder      string   `form:"sort_order"`
}

type JobDTO struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	CompanyName     string   `json:"company_name"`
	Location        *string  `json:"location,omitempty"`
	SalaryMin       *int64   `json:"salary_min,omitempty"`
	SalaryMax       *int64   `json:"salary_max,omitempty"`
	Currency        string   `json:"currency"`
	SalaryRange     string   `json:"salary_range,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Requirements    *string  `json:"requirements,omitempty"`
	JobLevel        *string  `json:"job_level,omitempty"`
	EmploymentType  *string  `json:"employment_type,omitempty"`
	RemoteFriendly  bool     `json:"remote_friendly"`
	PostedDate      *string  `json:"posted_date,omitempty"`
	ExpiresDate     *string  `json:"expires_date,omitempty"`
	SourceURL       string   `json:"source_url"`
	SourcePlatform  string   `json:"source_platform"`
	ExtractedSkills []string `json:"extracted_skills"`
	IsActive        bool     `json:"is_active"`
	IsRecent        bool     `json:"is_recent"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

type ListJobsResponse struct {
	Jobs  []JobDTO `json:"jobs"`
	Total int64    `json:"total"`
	Skip  int      `json:"skip"`
	Limit int      `json:"limit"`
}

type JobStatisticsResponse struct {
	TotalJobs        int64            `json:"total_jobs"`
	ActiveJobs       int64            `json:"active_jobs"`
	RecentJobs       int64            `json:"recent_jobs_7d"`
	JobsWithSalary   int64            `json:"jobs_with_salary"`
	RemoteShare      float64          `json:"remote_share"`
	TopCompanies     []NameCountEntry `json:"top_companies"`
	TopLocations     []NameCountEntry `json:"top_locations"`
	AverageSalaryMin *float64         `json:"average_salary_min,omitempty"`
	AverageSalaryMax *float64         `json:"average_salary_max,omitempty"`
}

type NameCountEntry struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
