package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobhunt-app/jobhunt-be/internal/api/domain"
)

func strp(v string) *string { return &v }
func i64p(v int64) *int64   { return &v }
func boolp(v bool) *bool    { return &v }
func intp(v int) *int       { return &v }

func TestJobSearchFilter_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		filter    JobSearchFilter
		wantErr   error
		wantSkip  int
		wantLimit int
		wantSort  string
		wantOrder string
	}{
		{
			name:      "defaults applied",
			filter:    JobSearchFilter{},
			wantSkip:  0,
			wantLimit: DefaultPageLimit,
			wantSort:  "posted_date",
			wantOrder: "desc",
		},
		{
			name:      "limit capped",
			filter:    JobSearchFilter{Limit: 5000},
			wantLimit: MaxPageLimit,
			wantSort:  "posted_date",
			wantOrder: "desc",
		},
		{
			name:      "negative skip reset",
			filter:    JobSearchFilter{Skip: -10},
			wantSkip:  0,
			wantLimit: DefaultPageLimit,
			wantSort:  "posted_date",
			wantOrder: "desc",
		},
		{
			name:      "explicit sort preserved",
			filter:    JobSearchFilter{SortBy: "salary_max", SortOrder: "ASC", Limit: 50},
			wantLimit: 50,
			wantSort:  "salary_max",
			wantOrder: "asc",
		},
		{
			name:    "unknown sort key rejected",
			filter:  JobSearchFilter{SortBy: "salary_min; DROP TABLE jobs"},
			wantErr: domain.ErrInvalidSortKey,
		},
		{
			name:    "unknown sort order rejected",
			filter:  JobSearchFilter{SortOrder: "sideways"},
			wantErr: domain.ErrInvalidSortOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Normalize()

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSkip, tt.filter.Skip)
			assert.Equal(t, tt.wantLimit, tt.filter.Limit)
			assert.Equal(t, tt.wantSort, tt.filter.SortBy)
			assert.Equal(t, tt.wantOrder, tt.filter.SortOrder)
		})
	}
}

func normalized(t *testing.T, f JobSearchFilter) JobSearchFilter {
	t.Helper()
	require.NoError(t, f.Normalize())
	return f
}

func TestBuildJobSearchQuery_NoFilters(t *testing.T) {
	f := normalized(t, JobSearchFilter{})

	query, args := buildJobSearchQuery(f)

	assert.Contains(t, query, "WHERE is_active = true")
	assert.Contains(t, query, "ORDER BY posted_date DESC NULLS LAST, created_at DESC")
	assert.Contains(t, query, "OFFSET $1 LIMIT $2")
	assert.Equal(t, []interface{}{0, DefaultPageLimit}, args)
}

func TestBuildJobSearchQuery_TextQuery(t *testing.T) {
	f := normalized(t, JobSearchFilter{Query: strp("product manager")})

	query, args := buildJobSearchQuery(f)

	assert.Contains(t, query, "(title ILIKE $1 OR company_name ILIKE $2 OR description ILIKE $3)")
	require.Len(t, args, 5) // 3 pattern args + offset + limit
	assert.Equal(t, "%product manager%", args[0])
	assert.Equal(t, "%product manager%", args[1])
	assert.Equal(t, "%product manager%", args[2])
}

func TestBuildJobSearchQuery_SalaryBounds(t *testing.T) {
	f := normalized(t, JobSearchFilter{SalaryMin: i64p(100000)})

	query, args := buildJobSearchQuery(f)

	assert.Contains(t, query, "(salary_min >= $1 OR salary_max >= $2)")
	assert.Equal(t, int64(100000), args[0])
	assert.Equal(t, int64(100000), args[1])

	f = normalized(t, JobSearchFilter{SalaryMax: i64p(200000)})

	query, args = buildJobSearchQuery(f)

	assert.Contains(t, query, "(salary_max <= $1 OR salary_min <= $2)")
	assert.Equal(t, int64(200000), args[0])
}

func TestBuildJobSearchQuery_HasSalary(t *testing.T) {
	f := normalized(t, JobSearchFilter{HasSalary: boolp(true)})
	query, args := buildJobSearchQuery(f)
	assert.Contains(t, query, "(salary_min IS NOT NULL OR salary_max IS NOT NULL)")
	assert.Len(t, args, 2) // only offset + limit

	f = normalized(t, JobSearchFilter{HasSalary: boolp(false)})
	query, _ = buildJobSearchQuery(f)
	assert.Contains(t, query, "(salary_min IS NULL AND salary_max IS NULL)")
}

func TestBuildJobSearchQuery_Skills(t *testing.T) {
	f := normalized(t, JobSearchFilter{Skills: []string{"python", "sql"}})

	query, args := buildJobSearchQuery(f)

	// Each skill contributes its own conjunct: both must match.
	assert.Equal(t, 2, strings.Count(query, "array_to_string(extracted_skills, ' ')"))
	require.Len(t, args, 8) // 3 per skill + offset + limit
	assert.Equal(t, "%python%", args[0])
	assert.Equal(t, "%sql%", args[3])
}

func TestBuildJobSearchQuery_CombinedFilters(t *testing.T) {
	f := normalized(t, JobSearchFilter{
		Query:          strp("analyst"),
		Location:       strp("New York"),
		EmploymentType: strp("full-time"),
		Remote:         boolp(true),
		PostedDaysAgo:  intp(14),
		Skip:           40,
		Limit:          20,
		SortBy:         "title",
		SortOrder:      "asc",
	})

	query, args := buildJobSearchQuery(f)

	assert.Contains(t, query, "location ILIKE $4")
	assert.Contains(t, query, "employment_type = $5")
	assert.Contains(t, query, "remote_friendly = $6")
	assert.Contains(t, query, "posted_date >= $7")
	assert.Contains(t, query, "ORDER BY title ASC, created_at DESC")
	assert.Contains(t, query, "OFFSET $8 LIMIT $9")

	require.Len(t, args, 9)
	assert.Equal(t, 40, args[7])
	assert.Equal(t, 20, args[8])
}

func TestBuildJobSearchQuery_NullableSortKeysOrderNullsLast(t *testing.T) {
	f := normalized(t, JobSearchFilter{SortBy: "salary_max", SortOrder: "desc"})

	query, _ := buildJobSearchQuery(f)

	assert.Contains(t, query, "ORDER BY salary_max DESC NULLS LAST, created_at DESC")

	f = normalized(t, JobSearchFilter{SortBy: "title", SortOrder: "asc"})

	query, _ = buildJobSearchQuery(f)

	// NOT NULL columns need no NULLS LAST clause.
	assert.Contains(t, query, "ORDER BY title ASC, created_at DESC")
	assert.NotContains(t, query, "NULLS LAST")
}

func TestBuildJobSearchQuery_CreatedAtSortNotDuplicated(t *testing.T) {
	f := normalized(t, JobSearchFilter{SortBy: "created_at", SortOrder: "asc"})

	query, _ := buildJobSearchQuery(f)

	assert.Contains(t, query, "ORDER BY created_at ASC")
	assert.NotContains(t, query, "created_at ASC, created_at DESC")
}

func TestBuildJobSearchCountQuery(t *testing.T) {
	f := normalized(t, JobSearchFilter{Company: strp("Acme"), Skip: 200, Limit: 50})

	query, args := buildJobSearchCountQuery(f)

	assert.True(t, strings.HasPrefix(query, "SELECT COUNT(*) FROM jobs WHERE "))
	assert.Contains(t, query, "company_name ILIKE $1")
	// Count ignores pagination.
	assert.NotContains(t, query, "OFFSET")
	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, []interface{}{"%Acme%"}, args)
}

func TestBuildJobSearchQuery_EmptyStringsIgnored(t *testing.T) {
	f := normalized(t, JobSearchFilter{
		Query:    strp(""),
		Location: strp(""),
		Skills:   []string{""},
	})

	query, args := buildJobSearchQuery(f)

	assert.NotContains(t, query, "ILIKE")
	assert.Len(t, args, 2)
}
