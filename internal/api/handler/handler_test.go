package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobhunt-app/jobhunt-be/internal/api/model"
	"github.com/jobhunt-app/jobhunt-be/internal/config"
	"github.com/jobhunt-app/jobhunt-be/shared/logger"
)

func newTestHandler() *Handler {
	return &Handler{
		logger: logger.NewDefault().Logger,
		cfg: &config.Config{
			App: config.AppConfig{
				Name:    "jobhunt-api-service",
				Version: "0.1.0",
			},
		},
	}
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/health", h.Health)
	r.GET("/live", h.Live)
	r.GET("/api/v1/jobs/:id", h.GetJob)
	r.PUT("/api/v1/jobs/:id", h.UpdateJob)
	r.DELETE("/api/v1/jobs/:id", h.DeleteJob)
	r.POST("/api/v1/jobs", h.CreateJob)
	r.GET("/api/v1/analyses/:id", h.GetAnalysis)

	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorEnvelope struct {
	Error struct {
		Code           string `json:"code"`
		Message        string `json:"message"`
		RecoveryAction string `json:"recovery_action"`
		Details        string `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestInvalidIDParamsReturnValidationError(t *testing.T) {
	r := newTestRouter(newTestHandler())

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"get job non-numeric", http.MethodGet, "/api/v1/jobs/abc"},
		{"get job zero", http.MethodGet, "/api/v1/jobs/0"},
		{"get job negative", http.MethodGet, "/api/v1/jobs/-4"},
		{"delete job non-numeric", http.MethodDelete, "/api/v1/jobs/x"},
		{"get analysis non-numeric", http.MethodGet, "/api/v1/analyses/latest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.method, tt.path, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			envelope := decodeError(t, w)
			assert.Equal(t, "validation_error", envelope.Error.Code)
			assert.NotEmpty(t, envelope.Error.Message)
		})
	}
}

func TestCreateJobRejectsMissingRequiredFields(t *testing.T) {
	r := newTestRouter(newTestHandler())

	w := doRequest(r, http.MethodPost, "/api/v1/jobs", `{"title": "Data Analyst"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeError(t, w)
	assert.Equal(t, "validation_error", envelope.Error.Code)
}

func TestCreateJobRejectsInvertedSalaryBounds(t *testing.T) {
	r := newTestRouter(newTestHandler())

	body := `{
		"title": "Data Analyst",
		"company_name": "Acme",
		"source_url": "https://example.com/jobs/1",
		"salary_min": 150000,
		"salary_max": 90000
	}`
	w := doRequest(r, http.MethodPost, "/api/v1/jobs", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeError(t, w)
	assert.Equal(t, "validation_error", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Details, "salary_min")
}

func TestUpdateJobRejectsInvertedSalaryBounds(t *testing.T) {
	r := newTestRouter(newTestHandler())

	w := doRequest(r, http.MethodPut, "/api/v1/jobs/7", `{"salary_min": 200000, "salary_max": 100000}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeError(t, w)
	assert.Equal(t, "validation_error", envelope.Error.Code)
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(newTestHandler())

	w := doRequest(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var health map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "jobhunt-api-service", health["service"])
	assert.Equal(t, "0.1.0", health["version"])

	w = doRequest(r, http.MethodGet, "/live", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"alive":true`)
}

func TestJobToDTOMapping(t *testing.T) {
	location := "Remote"
	min := int64(120000)
	max := int64(150000)
	posted := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

	job := &model.Job{
		ID:              42,
		Title:           "Product Manager",
		CompanyName:     "Initech",
		Location:        &location,
		SalaryMin:       &min,
		SalaryMax:       &max,
		Currency:        "USD",
		RemoteFriendly:  true,
		PostedDate:      &posted,
		SourceURL:       "https://example.com/jobs/42",
		SourcePlatform:  "adzuna",
		ExtractedSkills: pq.StringArray{"SQL", "Strategy"},
		CreatedAt:       posted,
		UpdatedAt:       posted,
		IsActive:        true,
	}

	out := jobToDTO(job)

	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, "$120,000 - $150,000", out.SalaryRange)
	assert.Equal(t, []string{"SQL", "Strategy"}, out.ExtractedSkills)
	require.NotNil(t, out.PostedDate)
	assert.Equal(t, "2026-08-20T09:00:00Z", *out.PostedDate)
	assert.True(t, out.IsRecent)
}

func TestJobToDTODefaultsSkillsToEmptySlice(t *testing.T) {
	job := &model.Job{Title: "Analyst", CompanyName: "Acme", Currency: "USD"}

	out := jobToDTO(job)

	assert.NotNil(t, out.ExtractedSkills)
	assert.Empty(t, out.ExtractedSkills)
}

func TestAnalysisToDTOMapping(t *testing.T) {
	score := 0.87
	analysis := &model.Analysis{
		ID:              9,
		JobID:           42,
		AnalysisType:    model.DefaultAnalysisType,
		AnalysisVersion: model.DefaultAnalysisVersion,
		MatchScore:      &score,
		ConfidenceScore: 0.85,
		KeyInsights:     []byte(`["Strong skill alignment with this role"]`),
		Recommendations: []byte(`["Prioritize this application"]`),
		RedFlags:        []byte(`[]`),
		Status:          model.AnalysisStatusCompleted,
	}

	out := analysisToDTO(analysis)

	assert.Equal(t, "good", out.MatchLevel)
	assert.Equal(t, "high", out.ConfidenceLevel)
	assert.Equal(t, []string{"Strong skill alignment with this role"}, out.KeyInsights)
	assert.Empty(t, out.RedFlags)
}

func TestParseTimePtr(t *testing.T) {
	rfc := "2026-08-01T12:00:00Z"
	date := "2026-08-01"
	bad := "yesterday"

	parsed, err := parseTimePtr(&rfc)
	require.NoError(t, err)
	assert.Equal(t, 12, parsed.Hour())

	parsed, err = parseTimePtr(&date)
	require.NoError(t, err)
	assert.Equal(t, time.August, parsed.Month())

	_, err = parseTimePtr(&bad)
	assert.Error(t, err)

	parsed, err = parseTimePtr(nil)
	require.NoError(t, err)
	assert.Nil(t, parsed)
}
