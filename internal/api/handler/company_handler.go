package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobhunt-app/jobhunt-be/internal/api/dto"
	"github.com/jobhunt-app/jobhunt-be/internal/api/model"
	"github.com/jobhunt-app/jobhunt-be/internal/api/storage"
	"github.com/jobhunt-app/jobhunt-be/internal/apperror"
)

// ListCompanies handles GET /companies
func (h *Handler) ListCompanies(c *gin.Context) {
	var req dto.ListCompaniesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.renderError(c, apperror.CodeValidationError, err.Error())
		return
	}

	filter := storage.CompanyFilter{
		Industry: req.Industry,
		IsHiring: req.IsHiring,
		Skip:     req.Skip,
		Limit:    req.Limit,
	}

	companies, total, err := h.storage.ListCompanies(c.Request.Context(), filter)
	if err != nil {
		h.renderDomainError(c, err)
		return
	}

	out := make([]dto.CompanyDTO, 0, len(companies))
	for i := range companies {
		out = append(out, companyToDTO(&companies[i]))
	}

	c.JSON(http.StatusOK, dto.ListCompaniesResponse{
		Companies: out,
		Total:     total,
		Skip:      filter.Skip,
		Limit:     filter.Limit,
	})
}

// GetCompany handles GET /companies/:id
func (h *Handler) GetCompany(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.renderError(c, apperror.CodeValidationError, "invalid company id")
		return
	}

	company, err := h.storage.GetCompanyByID(c.Request.Context(), id)
	if err != nil {
		h.renderDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, companyToDTO(company))
}

// CreateCompany handles POST /companies
func (h *Handler) CreateCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderError(c, apperror.CodeValidationError, err.Error())
		return
	}

	now := time.Now()
	company := &model.Company{
		Name:                req.Name,
		Description:         req.Description,
		Website:             req.Website,
		Industry:            req.Industry,
		Size:                req.Size,
		Type:                req.Type,
		FoundedYear:         req.FoundedYear,
		HeadquartersCity:    req.HeadquartersCity,
		HeadquartersState:   req.HeadquartersState,
		HeadquartersCountry: req.HeadquartersCountry,
		GlassdoorRating:     req.GlassdoorRating,
		EmployeeCount:       req.EmployeeCount,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if req.IsHiring != nil {
		company.IsHiring = *req.IsHiring
	}

	if err := h.storage.CreateCompany(c.Request.Context(), company); err != nil {
		h.renderDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, companyToDTO(company))
}
