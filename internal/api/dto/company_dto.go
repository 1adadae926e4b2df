package dto

type CreateCompanyRequest struct {
	Name                string   `json:"name" binding:"required"`
	Description         *string  `json:"description"`
	Website             *string  `json:"website"`
	Industry            *string  `json:"industry"`
	Size                *string  `json:"size"`
	Type                *string  `json:"type"`
	FoundedYear         *int     `json:"founded_year"`
	HeadquartersCity    *string  `json:"headquarters_city"`
	HeadquartersState   *string  `json:"headquarters_state"`
	HeadquartersCountry *string  `json:"headquarters_country"`
	GlassdoorRating     *float64 `json:"glassdoor_rating"`
	EmployeeCount       *int     `json:"employee_count"`
	IsHiring            *bool    `json:"is_hiring"`
}

type ListCompaniesRequest struct {
	Industry *string `form:"industry"`
	IsHiring *bool   `form:"is_hiring"`
	Skip     int     `form:"skip"`
	Limit    int     `form:"limit"`
}

type CompanyDTO struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     *string  `json:"description,omitempty"`
	Website         *string  `json:"website,omitempty"`
	Industry        *string  `json:"industry,omitempty"`
	Size            *string  `json:"size,omitempty"`
	Type            *string  `json:"type,omitempty"`
	FoundedYear     *int     `json:"founded_year,omitempty"`
	Location        string   `json:"location,omitempty"`
	GlassdoorRating *float64 `json:"glassdoor_rating,omitempty"`
	EmployeeCount   *int     `json:"employee_count,omitempty"`
	IsActive        bool     `json:"is_active"`
	IsHiring        bool     `json:"is_hiring"`
	IsStartup       bool     `json:"is_startup"`
	JobCount        int      `json:"job_count"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

type ListCompaniesResponse struct {
	Companies []CompanyDTO `json:"companies"`
	Total     int64        `json:"total"`
	Skip      int          `json:"skip"`
	Limit     int          `json:"limit"`
}
