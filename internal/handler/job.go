package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/ncore/logging/logger"
	"github.com/ncobase/ncore/net/resp"

	"github.com/isabelarvelo/careerhub/internal/query"
	"github.com/isabelarvelo/careerhub/internal/service"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	svc    *service.JobService
	logger *logger.Logger
}

// NewJobHandler creates a new job handler.
func NewJobHandler(svc *service.JobService, logger *logger.Logger) *JobHandler {
	return &JobHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles job post creation. Fields beyond the required three are
// stored verbatim.
func (h *JobHandler) Create(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		resp.Fail(c.Writer, resp.BadRequest("Invalid JSON in request body"))
		return
	}

	result, err := h.svc.Create(c.Request.Context(), payload)
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	body := gin.H{
		"message": "Job post created successfully",
		"job_id":  result.JobID,
	}
	if result.NewIndustry {
		body["additional_info"] = fmt.Sprintf("A new industry '%s' was added to the database. You can use the add_industry_info function to provide more details about it if you want.", result.Industry)
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, body)
}

// CreateUsage documents the creation endpoint for GET callers.
func (h *JobHandler) CreateUsage(c *gin.Context) {
	resp.Success(c.Writer, gin.H{
		"message": "This endpoint creates a new job posting. Send a POST request with job details in the body to create a new job post. Required fields are 'title', 'industry', and 'company_name'. Any additional fields provided will be included in the job post.",
	})
}

// GetByID returns the job matching the path id, as a list of zero or one
// documents, shaped by the optional fields body.
func (h *JobHandler) GetByID(c *gin.Context) {
	var req fieldsRequest
	if err := bindBody(c, &req); err != nil {
		fail(c, h.logger, err)
		return
	}

	jobs, err := h.svc.GetByID(c.Request.Context(), c.Param("job_id"), req.Fields)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, jobs)
}

// Update drives the two-phase update workflow.
func (h *JobHandler) Update(c *gin.Context) {
	var req service.UpdateJobsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c.Writer, resp.BadRequest("Invalid JSON in request body"))
		return
	}

	result, err := h.svc.UpdateByTitle(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	switch {
	case result.Preview != nil:
		resp.Success(c.Writer, result.Preview)
	case result.Updated > 0:
		resp.Success(c.Writer, gin.H{
			"message":        fmt.Sprintf("Successfully updated %d job(s) matching the criteria", result.Updated),
			"updated_fields": result.UpdatedFields,
		})
	default:
		resp.Success(c.Writer, gin.H{"message": "No changes were made"})
	}
}

// UpdateUsage documents the two-phase update workflow for GET callers.
func (h *JobHandler) UpdateUsage(c *gin.Context) {
	resp.Success(c.Writer, gin.H{
		"message": "To update a job, follow these steps:",
		"instructions": gin.H{
			"1": "Send a POST request to this endpoint with the job title, at least one other field, and update data",
			"2": "If job(s) are found, you'll receive a confirmation request",
			"3": "Send another POST request with 'confirm_update' to finalize the update",
		},
		"example": gin.H{
			"first_request": gin.H{
				"title":           "<job title>",
				"job_id":          "<job_id>",
				"company_name":    "<company name>",
				"employment_type": "<employment type>",
				"update": gin.H{
					"description":    "New description",
					"average_salary": 75000,
					"location":       "New location",
				},
			},
			"confirmation_request": gin.H{
				"title":           "<job title>",
				"job_id":          "<job_id>",
				"company_name":    "<company name>",
				"employment_type": "<employment type>",
				"update": gin.H{
					"description":    "New description",
					"average_salary": 75000,
					"location":       "New location",
				},
				"confirm_update": "true",
			},
		},
	})
}

// Delete drives the two-phase delete workflow.
func (h *JobHandler) Delete(c *gin.Context) {
	var req service.DeleteJobsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c.Writer, resp.BadRequest("Invalid JSON in request body"))
		return
	}

	result, err := h.svc.DeleteByTitle(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	switch {
	case result.Preview != nil:
		resp.Success(c.Writer, result.Preview)
	case result.Deleted > 0:
		resp.Success(c.Writer, gin.H{
			"message": fmt.Sprintf("Successfully deleted %d job(s) matching the criteria", result.Deleted),
		})
	default:
		resp.Fail(c.Writer, resp.InternalServer("Failed to delete jobs"))
	}
}

// DeleteUsage documents the two-phase delete workflow for GET callers.
func (h *JobHandler) DeleteUsage(c *gin.Context) {
	resp.Success(c.Writer, gin.H{
		"message": "To delete a job, follow these steps:",
		"instructions": gin.H{
			"1": "Send a POST request to this endpoint with the job title and optional parameters",
			"2": "If job(s) are found, you'll receive a confirmation request",
			"3": "Send another POST request with 'confirm_delete' to finalize deletion",
		},
		"example": gin.H{
			"first_request": gin.H{
				"title":           "<job title>",
				"job_id":          "<job_id>",
				"company":         "<company name>",
				"employment_type": "<employment type>",
			},
			"confirmation_request": gin.H{
				"title":           "<job title>",
				"job_id":          "<job_id>",
				"company":         "<company name>",
				"employment_type": "<employment type>",
				"confirm_delete":  "true",
			},
		},
	})
}

// salaryRangeRequest tolerates numeric strings for the bounds, which are
// coerced before validation.
type salaryRangeRequest struct {
	MinSalary any      `json:"min_salary"`
	MaxSalary any      `json:"max_salary"`
	Fields    []string `json:"fields"`
}

// BySalary returns jobs with average_salary inside the inclusive range.
func (h *JobHandler) BySalary(c *gin.Context) {
	var req salaryRangeRequest
	if err := bindBody(c, &req); err != nil {
		fail(c, h.logger, err)
		return
	}

	if req.MinSalary == nil || req.MaxSalary == nil {
		resp.Fail(c.Writer, resp.BadRequest("Both min_salary and max_salary must be provided"))
		return
	}

	minSalary, err := query.ToFloat64(req.MinSalary)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	maxSalary, err := query.ToFloat64(req.MaxSalary)
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	jobs, err := h.svc.BySalary(c.Request.Context(), minSalary, maxSalary, req.Fields)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, gin.H{"jobs": jobs})
}

// experienceRequest accepts a single level string or a list of them.
type experienceRequest struct {
	ExperienceLevel any      `json:"experience_level"`
	Fields          []string `json:"fields"`
}

// ByExperience returns jobs whose experience_level matches any of the
// classified input levels.
func (h *JobHandler) ByExperience(c *gin.Context) {
	var req experienceRequest
	if err := bindBody(c, &req); err != nil {
		fail(c, h.logger, err)
		return
	}

	jobs, err := h.svc.ByExperience(c.Request.Context(), req.ExperienceLevel, req.Fields)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, gin.H{"jobs": jobs})
}

// industryRequest is the keyed lookup body shared by industry endpoints.
type industryRequest struct {
	IndustryName string   `json:"industry_name"`
	Fields       []string `json:"fields"`
}

// TopCompanies ranks companies in an industry by number of job postings.
func (h *JobHandler) TopCompanies(c *gin.Context) {
	var req industryRequest
	if err := bindBody(c, &req); err != nil {
		fail(c, h.logger, err)
		return
	}

	if req.IndustryName == "" {
		resp.Fail(c.Writer, resp.BadRequest("industry parameter must be provided"))
		return
	}

	top, err := h.svc.TopCompanies(c.Request.Context(), req.IndustryName)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, gin.H{"top_companies": top})
}

// ByIndustry lists jobs in an industry with a default projection of title,
// company_name and average_salary.
func (h *JobHandler) ByIndustry(c *gin.Context) {
	var req industryRequest
	if err := bindBody(c, &req); err != nil {
		fail(c, h.logger, err)
		return
	}

	jobs, err := h.svc.ByIndustry(c.Request.Context(), req.IndustryName, req.Fields)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, gin.H{
		"jobs":       jobs,
		"total_jobs": len(jobs),
	})
}
