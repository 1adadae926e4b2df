package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jobhunt-app/jobhunt-be/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(h *handler.Handler, logger *slog.Logger) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger))
	r.Use(MetricsMiddleware())
	r.Use(CORSMiddleware())

	// Health and operational endpoints
	r.GET("/health", h.Health)
	r.GET("/health/detailed", h.HealthDetailed)
	r.GET("/health/ready", h.Ready)
	r.GET("/health/live", h.Live)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		jobs := v1.Group("/jobs")
		{
			jobs.POST("", h.CreateJob)
			jobs.GET("", h.ListJobs)
			jobs.GET("/search", h.SearchJobs)
			jobs.GET("/statistics/summary", h.GetJobStatistics)
			jobs.GET("/:id", h.GetJob)
			jobs.PUT("/:id", h.UpdateJob)
			jobs.DELETE("/:id", h.DeleteJob)
			jobs.GET("/:id/analysis", h.GetJobAnalysis)
		}

		companies := v1.Group("/companies")
		{
			companies.POST("", h.CreateCompany)
			companies.GET("", h.ListCompanies)
			companies.GET("/:id", h.GetCompany)
		}

		analysis := v1.Group("/analysis")
		{
			analysis.POST("", h.CreateAnalysis)
			analysis.POST("/jobs/:id/analyze", h.AnalyzeJob)
			analysis.GET("/statistics", h.GetAnalysisStatistics)
			analysis.GET("/:id", h.GetAnalysis)
		}
	}

	return r
}
