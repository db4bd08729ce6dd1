// Package handler provides the HTTP handlers for the CareerHub API.
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/ncore/logging/logger"
	"github.com/ncobase/ncore/net/resp"

	"github.com/isabelarvelo/careerhub/internal/model"
	"github.com/isabelarvelo/careerhub/internal/service"
)

// Handler aggregates all HTTP handlers.
type Handler struct {
	Job      *JobHandler
	Industry *IndustryHandler
	Company  *CompanyHandler
	logger   *logger.Logger
}

// NewHandler creates a new handler instance with all sub-handlers initialized.
func NewHandler(svc *service.Service, logger *logger.Logger) *Handler {
	return &Handler{
		Job:      NewJobHandler(svc.Job, logger),
		Industry: NewIndustryHandler(svc.Industry, logger),
		Company:  NewCompanyHandler(svc.Company, logger),
		logger:   logger,
	}
}

// RegisterRoutes registers all HTTP routes. GET on the mutation endpoints
// returns usage instructions instead of performing an action.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Index)

	r.GET("/create/jobPost", h.Job.CreateUsage)
	r.POST("/create/jobPost", h.Job.Create)

	r.GET("/add/industry_info", h.Industry.UpsertUsage)
	r.POST("/add/industry_info", h.Industry.Upsert)

	r.GET("/search_by_job_id/:job_id", h.Job.GetByID)

	r.GET("/update_by_job_title", h.Job.UpdateUsage)
	r.POST("/update_by_job_title", h.Job.Update)

	r.GET("/delete_by_job_title", h.Job.DeleteUsage)
	r.POST("/delete_by_job_title", h.Job.Delete)

	r.GET("/jobs_by_salary", h.Job.BySalary)
	r.GET("/jobs_by_experience", h.Job.ByExperience)
	r.GET("/top_companies_by_industry", h.Job.TopCompanies)

	r.GET("/industry_info", h.Industry.Info)
	r.GET("/company_info", h.Company.Info)
	r.GET("/search_by_industry/", h.Job.ByIndustry)
}

// Index is the API welcome endpoint.
func (h *Handler) Index(c *gin.Context) {
	resp.Success(c.Writer, gin.H{
		"apiVersion": "v1.0",
		"status":     "200",
		"message":    "Welcome to the Career Hub API!",
		"endpoints": []gin.H{
			{"path": "/create/jobPost", "method": "POST", "description": "Create a new job posting"},
			{"path": "/search_by_job_id/<job_id>", "method": "GET", "description": "View Job Details"},
			{"path": "/update_by_job_title", "method": "POST", "description": "Update job details"},
			{"path": "/delete_by_job_title", "method": "POST", "description": "Remove job listing"},
			{"path": "/jobs_by_salary", "method": "GET", "description": "Get jobs within a specified salary range"},
			{"path": "/jobs_by_experience", "method": "GET", "description": "Get jobs by experience level"},
			{"path": "/top_companies_by_industry", "method": "GET", "description": "Fetch top companies in a given industry"},
		},
		"note": "All POST endpoints provide detailed instructions when accessed with a GET request",
	})
}

// fail maps a domain error to the HTTP error taxonomy: InvalidError to 400,
// NotFoundError to 404, everything else to 500 with diagnostic detail.
func fail(c *gin.Context, log *logger.Logger, err error) {
	var invalid *model.InvalidError
	var notFound *model.NotFoundError
	switch {
	case errors.As(err, &invalid):
		resp.Fail(c.Writer, resp.BadRequest(invalid.Msg))
	case errors.As(err, &notFound):
		resp.Fail(c.Writer, resp.NotFound(notFound.Msg))
	default:
		log.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		resp.Fail(c.Writer, resp.InternalServer("An unexpected error occurred", err.Error()))
	}
}

// bindBody decodes an optional JSON request body. Query endpoints accept
// bodies on GET requests; an absent body is fine, a malformed one is not.
func bindBody(c *gin.Context, out any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(out); err != nil {
		return model.Invalidf("Invalid JSON in request body")
	}
	return nil
}

// fieldsRequest is the optional projection body shared by read endpoints.
type fieldsRequest struct {
	Fields []string `json:"fields"`
}
