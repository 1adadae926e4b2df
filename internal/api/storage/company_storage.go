package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jobhunt-app/jobhunt-be/internal/api/domain"
	"github.com/jobhunt-app/jobhunt-be/internal/api/model"
)

const companyColumns = `
	id, name, description, website, industry, size, type, founded_year,
	headquarters_city, headquarters_state, headquarters_country,
	glassdoor_rating, employee_count, is_active, is_hiring, job_count,
	created_at, updated_at
`

func (s *Storage) CreateCompany(ctx context.Context, company *model.Company) error {
	query := `
		INSERT INTO companies (
			name, description, website, industry, size, type, founded_year,
			headquarters_city, headquarters_state, headquarters_country,
			glassdoor_rating, employee_count, is_active, is_hiring, job_count,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10,
			$11, $12, $13, $14, $15,
			$16, $17
		)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		company.Name,
		company.Description,
		company.Website,
		company.Industry,
		company.Size,
		company.Type,
		company.FoundedYear,
		company.HeadquartersCity,
		company.HeadquartersState,
		company.HeadquartersCountry,
		company.GlassdoorRating,
		company.EmployeeCount,
		company.IsActive,
		company.IsHiring,
		company.JobCount,
		company.CreatedAt,
		company.UpdatedAt,
	).Scan(&company.ID)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrDuplicateCompany
	}
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

func (s *Storage) GetCompanyByID(ctx context.Context, id int64) (*model.Company, error) {
	var company model.Company
	query := fmt.Sprintf("SELECT %s FROM companies WHERE id = $1", strings.TrimSpace(companyColumns))

	err := s.db.GetContext(ctx, &company, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &company, nil
}

func (s *Storage) GetCompanyByName(ctx context.Context, name string) (*model.Company, error) {
	var company model.Company
	query := fmt.Sprintf("SELECT %s FROM companies WHERE lower(name) = lower($1)", strings.TrimSpace(companyColumns))

	err := s.db.GetContext(ctx, &company, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &company, nil
}

type CompanyFilter struct {
	Industry *string
	IsHiring *bool
	Skip     int
	Limit    int
}

func (s *Storage) ListCompanies(ctx context.Context, filter CompanyFilter) ([]model.Company, int64, error) {
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageLimit
	}
	if filter.Limit > MaxPageLimit {
		filter.Limit = MaxPageLimit
	}

	conds := []string{"is_active = true"}
	args := []interface{}{}
	idx := 1

	if filter.Industry != nil && *filter.Industry != "" {
		conds = append(conds, fmt.Sprintf("industry ILIKE $%d", idx))
		args = append(args, "%"+*filter.Industry+"%")
		idx++
	}

	if filter.IsHiring != nil {
		conds = append(conds, fmt.Sprintf("is_hiring = $%d", idx))
		args = append(args, *filter.IsHiring)
		idx++
	}

	where := strings.Join(conds, " AND ")

	var total int64
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM companies WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM companies WHERE %s ORDER BY job_count DESC, name ASC OFFSET $%d LIMIT $%d",
		strings.TrimSpace(companyColumns), where, idx, idx+1,
	)
	args = append(args, filter.Skip, filter.Limit)

	companies := []model.Company{}
	if err := s.db.SelectContext(ctx, &companies, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}

	return companies, total, nil
}

// UpsertCompanyByName creates the company if it does not exist and returns
// the row either way. The scrape pipeline calls this for every posting.
func (s *Storage) UpsertCompanyByName(ctx context.Context, name string) (*model.Company, error) {
	now := time.Now()

	query := fmt.Sprintf(`
		INSERT INTO companies (name, is_active, is_hiring, job_count, created_at, updated_at)
		VALUES ($1, true, true, 0, $2, $2)
		ON CONFLICT (name) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING %s
	`, strings.TrimSpace(companyColumns))

	var company model.Company
	if err := s.db.GetContext(ctx, &company, query, name, now); err != nil {
		return nil, fmt.Errorf("failed to upsert company: %w", err)
	}

	return &company, nil
}

// RefreshCompanyJobCount recomputes job_count from active job rows.
func (s *Storage) RefreshCompanyJobCount(ctx context.Context, name string) error {
	query := `
		UPDATE companies
		SET job_count = (
			SELECT COUNT(*) FROM jobs
			WHERE lower(company_name) = lower(companies.name) AND is_active = true
		), updated_at = $1
		WHERE lower(name) = lower($2)
	`

	if _, err := s.db.ExecContext(ctx, query, time.Now(), name); err != nil {
		return fmt.Errorf("failed to refresh company job count: %w", err)
	}

	return nil
}
