package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/jobhunt-app/jobhunt-be/internal/api/domain"
	"github.com/jobhunt-app/jobhunt-be/internal/api/model"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// jobSortColumns whitelists the sort keys accepted by search. Anything
// outside this map is rejected before query construction.
var jobSortColumns = map[string]string{
	"posted_date":  "posted_date",
	"created_at":   "created_at",
	"salary_max":   "salary_max",
	"title":        "title",
	"company_name": "company_name",
}

// nullableSortColumns marks sort keys whose column may be NULL; those
// rows sort last in either direction.
var nullableSortColumns = map[string]bool{
	"posted_date": true,
	"salary_max":  true,
}

const jobColumns = `
	id, title, company_name, location, salary_min, salary_max, currency,
	description, requirements, job_level, employment_type, remote_friendly,
	posted_date, expires_date, source_url, source_platform, extracted_skills,
	created_at, updated_at, is_active
`

// JobSearchFilter carries the search predicate set. Pointer fields
// distinguish "not filtered" from zero values.
type JobSearchFilter struct {
	Query          *string
	Location       *string
	Company        *string
	EmploymentType *string
	SalaryMin      *int64
	SalaryMax      *int64
	Remote         *bool
	HasSalary      *bool
	PostedDaysAgo  *int
	Skills         []string

	Skip  int
	Limit int

	SortBy    string
	SortOrder string
}

// Normalize applies pagination defaults and validates the sort key and
// direction against the whitelist.
func (f *JobSearchFilter) Normalize() error {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}

	if f.SortBy == "" {
		f.SortBy = "posted_date"
	}
	if _, ok := jobSortColumns[f.SortBy]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrInvalidSortKey, f.SortBy)
	}

	if f.SortOrder == "" {
		f.SortOrder = domain.SortDesc
	}
	f.SortOrder = strings.ToLower(f.SortOrder)
	if f.SortOrder != domain.SortAsc && f.SortOrder != domain.SortDesc {
		return fmt.Errorf("%w: %s", domain.ErrInvalidSortOrder, f.SortOrder)
	}

	return nil
}

// buildJobSearchConditions translates the non-nil filters into conjunctive
// predicates with positional args. Shared by the search and count queries.
func buildJobSearchConditions(f JobSearchFilter) (string, []interface{}) {
	conds := []string{"is_active = true"}
	args := []interface{}{}
	idx := 1

	if f.Query != nil && *f.Query != "" {
		pattern := "%" + *f.Query + "%"
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE $%d OR company_name ILIKE $%d OR description ILIKE $%d)",
			idx, idx+1, idx+2,
		))
		args = append(args, pattern, pattern, pattern)
		idx += 3
	}

	if f.Location != nil && *f.Location != "" {
		conds = append(conds, fmt.Sprintf("location ILIKE $%d", idx))
		args = append(args, "%"+*f.Location+"%")
		idx++
	}

	if f.Company != nil && *f.Company != "" {
		conds = append(conds, fmt.Sprintf("company_name ILIKE $%d", idx))
		args = append(args, "%"+*f.Company+"%")
		idx++
	}

	if f.EmploymentType != nil && *f.EmploymentType != "" {
		conds = append(conds, fmt.Sprintf("employment_type = $%d", idx))
		args = append(args, *f.EmploymentType)
		idx++
	}

	// Either bound satisfying the requested floor/ceiling counts as a
	// match, so jobs with a single bound are not excluded.
	if f.SalaryMin != nil {
		conds = append(conds, fmt.Sprintf("(salary_min >= $%d OR salary_max >= $%d)", idx, idx+1))
		args = append(args, *f.SalaryMin, *f.SalaryMin)
		idx += 2
	}

	if f.SalaryMax != nil {
		conds = append(conds, fmt.Sprintf("(salary_max <= $%d OR salary_min <= $%d)", idx, idx+1))
		args = append(args, *f.SalaryMax, *f.SalaryMax)
		idx += 2
	}

	if f.Remote != nil {
		conds = append(conds, fmt.Sprintf("remote_friendly = $%d", idx))
		args = append(args, *f.Remote)
		idx++
	}

	if f.HasSalary != nil {
		if *f.HasSalary {
			conds = append(conds, "(salary_min IS NOT NULL OR salary_max IS NOT NULL)")
		} else {
			conds = append(conds, "(salary_min IS NULL AND salary_max IS NULL)")
		}
	}

	if f.PostedDaysAgo != nil && *f.PostedDaysAgo > 0 {
		conds = append(conds, fmt.Sprintf("posted_date >= $%d", idx))
		args = append(args, time.Now().AddDate(0, 0, -*f.PostedDaysAgo))
		idx++
	}

	for _, skill := range f.Skills {
		if skill == "" {
			continue
		}
		pattern := "%" + skill + "%"
		conds = append(conds, fmt.Sprintf(
			"(description ILIKE $%d OR requirements ILIKE $%d OR array_to_string(extracted_skills, ' ') ILIKE $%d)",
			idx, idx+1, idx+2,
		))
		args = append(args, pattern, pattern, pattern)
		idx += 3
	}

	return strings.Join(conds, " AND "), args
}

// buildJobSearchQuery produces the full search query with ordering and
// pagination. Pure function so the SQL is testable without a database;
// the filter must be normalized first.
func buildJobSearchQuery(f JobSearchFilter) (string, []interface{}) {
	where, args := buildJobSearchConditions(f)

	orderBy := jobSortColumns[f.SortBy] + " " + strings.ToUpper(f.SortOrder)
	if nullableSortColumns[f.SortBy] {
		orderBy += " NULLS LAST"
	}

	query := fmt.Sprintf(
		"SELECT %s FROM jobs WHERE %s ORDER BY %s",
		strings.TrimSpace(jobColumns), where, orderBy,
	)
	if f.SortBy != "created_at" {
		query += ", created_at DESC"
	}

	query += fmt.Sprintf(" OFFSET $%d LIMIT $%d", len(args)+1, len(args)+2)
	args = append(args, f.Skip, f.Limit)

	return query, args
}

func buildJobSearchCountQuery(f JobSearchFilter) (string, []interface{}) {
	where, args := buildJobSearchConditions(f)
	return "SELECT COUNT(*) FROM jobs WHERE " + where, args
}

// CreateJob inserts a job. Returns domain.ErrDuplicateJob when a row with
// the same source_url already exists.
func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (
			title, company_name, location, salary_min, salary_max, currency,
			description, requirements, job_level, employment_type, remote_friendly,
			posted_date, expires_date, source_url, source_platform, extracted_skills,
			created_at, updated_at, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16,
			$17, $18, $19
		)
		ON CONFLICT (source_url) DO NOTHING
		RETURNING id
	`

	skills := job.ExtractedSkills
	if skills == nil {
		skills = pq.StringArray{}
	}

	err := s.db.QueryRowContext(
		ctx,
		query,
		job.Title,
		job.CompanyName,
		job.Location,
		job.SalaryMin,
		job.SalaryMax,
		job.Currency,
		job.Description,
		job.Requirements,
		job.JobLevel,
		job.EmploymentType,
		job.RemoteFriendly,
		job.PostedDate,
		job.ExpiresDate,
		job.SourceURL,
		job.SourcePlatform,
		skills,
		job.CreatedAt,
		job.UpdatedAt,
		job.IsActive,
	).Scan(&job.ID)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrDuplicateJob
	}
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

func (s *Storage) GetJobByID(ctx context.Context, id int64) (*model.Job, error) {
	var job model.Job
	query := fmt.Sprintf("SELECT %s FROM jobs WHERE id = $1", strings.TrimSpace(jobColumns))

	err := s.db.GetContext(ctx, &job, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

func (s *Storage) ListJobs(ctx context.Context, skip, limit int) ([]model.Job, int64, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	query := fmt.Sprintf(`
		SELECT %s FROM jobs
		WHERE is_active = true
		ORDER BY posted_date DESC NULLS LAST, created_at DESC
		OFFSET $1 LIMIT $2
	`, strings.TrimSpace(jobColumns))

	jobs := []model.Job{}
	if err := s.db.SelectContext(ctx, &jobs, query, skip, limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}

	var total int64
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM jobs WHERE is_active = true"); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	return jobs, total, nil
}

// SearchJobs runs the filter set against the jobs table and returns the
// matching page plus the unpaginated total.
func (s *Storage) SearchJobs(ctx context.Context, filter JobSearchFilter) ([]model.Job, int64, error) {
	if err := filter.Normalize(); err != nil {
		return nil, 0, err
	}

	query, args := buildJobSearchQuery(filter)

	jobs := []model.Job{}
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to search jobs: %w", err)
	}

	countQuery, countArgs := buildJobSearchCountQuery(filter)

	var total int64
	if err := s.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	return jobs, total, nil
}

// JobUpdate carries the mutable fields of a job row. Nil fields are left
// untouched.
type JobUpdate struct {
	Title           *string
	Location        *string
	SalaryMin       *int64
	SalaryMax       *int64
	Description     *string
	Requirements    *string
	JobLevel        *string
	EmploymentType  *string
	RemoteFriendly  *bool
	ExpiresDate     *time.Time
	ExtractedSkills []string
	IsActive        *bool
}

func (s *Storage) UpdateJob(ctx context.Context, id int64, update JobUpdate) (*model.Job, error) {
	sets := []string{}
	args := []interface{}{}
	idx := 1

	set := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if update.Title != nil {
		set("title", *update.Title)
	}
	if update.Location != nil {
		set("location", *update.Location)
	}
	if update.SalaryMin != nil {
		set("salary_min", *update.SalaryMin)
	}
	if update.SalaryMax != nil {
		set("salary_max", *update.SalaryMax)
	}
	if update.Description != nil {
		set("description", *update.Description)
	}
	if update.Requirements != nil {
		set("requirements", *update.Requirements)
	}
	if update.JobLevel != nil {
		set("job_level", *update.JobLevel)
	}
	if update.EmploymentType != nil {
		set("employment_type", *update.EmploymentType)
	}
	if update.RemoteFriendly != nil {
		set("remote_friendly", *update.RemoteFriendly)
	}
	if update.ExpiresDate != nil {
		set("expires_date", *update.ExpiresDate)
	}
	if update.ExtractedSkills != nil {
		set("extracted_skills", pq.StringArray(update.ExtractedSkills))
	}
	if update.IsActive != nil {
		set("is_active", *update.IsActive)
	}

	if len(sets) == 0 {
		return s.GetJobByID(ctx, id)
	}

	set("updated_at", time.Now())

	query := fmt.Sprintf(
		"UPDATE jobs SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), idx, strings.TrimSpace(jobColumns),
	)
	args = append(args, id)

	var job model.Job
	err := s.db.GetContext(ctx, &job, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	return &job, nil
}

// SoftDeleteJob flips is_active off; the row is kept for reporting.
func (s *Storage) SoftDeleteJob(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(
		ctx,
		"UPDATE jobs SET is_active = false, updated_at = $1 WHERE id = $2 AND is_active = true",
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if rows == 0 {
		return domain.ErrJobNotFound
	}

	return nil
}

// DeactivateExpiredJobs soft-deletes active jobs whose expiry has passed.
// Returns the number of rows affected.
func (s *Storage) DeactivateExpiredJobs(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(
		ctx,
		"UPDATE jobs SET is_active = false, updated_at = $1 WHERE is_active = true AND expires_date IS NOT NULL AND expires_date < $1",
		time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired jobs: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired jobs: %w", err)
	}

	return rows, nil
}

// PurgeInactiveJobs removes soft-deleted jobs older than maxAge.
func (s *Storage) PurgeInactiveJobs(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)

	result, err := s.db.ExecContext(
		ctx,
		"DELETE FROM jobs WHERE is_active = false AND updated_at < $1",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge inactive jobs: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to purge inactive jobs: %w", err)
	}

	return rows, nil
}

// ListJobIDsWithoutAnalysis returns active job IDs that have no analysis
// row yet, capped at limit. Feeds the periodic analyze task.
func (s *Storage) ListJobIDsWithoutAnalysis(ctx context.Context, limit int) ([]int64, error) {
	query := `
		SELECT j.id
		FROM jobs j
		LEFT JOIN analyses a ON a.job_id = j.id
		WHERE j.is_active = true AND a.id IS NULL
		ORDER BY j.created_at DESC
		LIMIT $1
	`

	ids := []int64{}
	if err := s.db.SelectContext(ctx, &ids, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list unanalyzed jobs: %w", err)
	}

	return ids, nil
}

// JobStatistics aggregates the summary numbers for the statistics endpoint.
type JobStatistics struct {
	TotalJobs        int64
	ActiveJobs       int64
	RecentJobs       int64
	JobsWithSalary   int64
	RemoteJobs       int64
	AverageSalaryMin *float64
	AverageSalaryMax *float64
	TopCompanies     []NameCount
	TopLocations     []NameCount
}

type NameCount struct {
	Name  string `db:"name"`
	Count int64  `db:"count"`
}

func (s *Storage) GetJobStatistics(ctx context.Context) (*JobStatistics, error) {
	var stats JobStatistics

	summary := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_active) AS active,
			COUNT(*) FILTER (WHERE is_active AND posted_date >= $1) AS recent,
			COUNT(*) FILTER (WHERE is_active AND (salary_min IS NOT NULL OR salary_max IS NOT NULL)) AS with_salary,
			COUNT(*) FILTER (WHERE is_active AND remote_friendly) AS remote,
			AVG(salary_min) FILTER (WHERE is_active) AS avg_min,
			AVG(salary_max) FILTER (WHERE is_active) AS avg_max
		FROM jobs
	`

	row := s.db.QueryRowxContext(ctx, summary, time.Now().AddDate(0, 0, -7))
	err := row.Scan(
		&stats.TotalJobs,
		&stats.ActiveJobs,
		&stats.RecentJobs,
		&stats.JobsWithSalary,
		&stats.RemoteJobs,
		&stats.AverageSalaryMin,
		&stats.AverageSalaryMax,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get job statistics: %w", err)
	}

	topCompanies := `
		SELECT company_name AS name, COUNT(*) AS count
		FROM jobs
		WHERE is_active = true
		GROUP BY company_name
		ORDER BY count DESC, name ASC
		LIMIT 10
	`
	if err := s.db.SelectContext(ctx, &stats.TopCompanies, topCompanies); err != nil {
		return nil, fmt.Errorf("failed to get top companies: %w", err)
	}

	topLocations := `
		SELECT location AS name, COUNT(*) AS count
		FROM jobs
		WHERE is_active = true AND location IS NOT NULL
		GROUP BY location
		ORDER BY count DESC, name ASC
		LIMIT 10
	`
	if err := s.db.SelectContext(ctx, &stats.TopLocations, topLocations); err != nil {
		return nil, fmt.Errorf("failed to get top locations: %w", err)
	}

	return &stats, nil
}
