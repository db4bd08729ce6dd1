package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/ncore/logging/logger"
	"github.com/ncobase/ncore/net/resp"

	"github.com/isabelarvelo/careerhub/internal/service"
)

// IndustryHandler handles HTTP requests for industries.
type IndustryHandler struct {
	svc    *service.IndustryService
	logger *logger.Logger
}

// NewIndustryHandler creates a new industry handler.
func NewIndustryHandler(svc *service.IndustryService, logger *logger.Logger) *IndustryHandler {
	return &IndustryHandler{
		svc:    svc,
		logger: logger,
	}
}

// Upsert adds or replaces industry attributes keyed by industry_name.
func (h *IndustryHandler) Upsert(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		resp.Fail(c.Writer, resp.BadRequest("Invalid JSON in request body"))
		return
	}

	result, err := h.svc.Upsert(c.Request.Context(), payload)
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	var action string
	switch {
	case result.Modified:
		action = "updated"
	case result.Created:
		action = "added"
	default:
		resp.Fail(c.Writer, resp.InternalServer("Failed to add/update industry information"))
		return
	}

	resp.Success(c.Writer, gin.H{
		"message":       fmt.Sprintf("Industry information %s successfully", action),
		"industry_name": payload["industry_name"],
	})
}

// UpsertUsage documents the upsert endpoint for GET callers.
func (h *IndustryHandler) UpsertUsage(c *gin.Context) {
	resp.Success(c.Writer, gin.H{
		"message": "This endpoint adds or updates industry information. Send a POST request with industry details in the body. 'industry_name' is required, all other fields are optional and will be added or updated as provided.",
	})
}

// Info returns industry details for a keyed lookup with an optional field
// subset.
func (h *IndustryHandler) Info(c *gin.Context) {
	var req industryRequest
	if err := bindBody(c, &req); err != nil {
		fail(c, h.logger, err)
		return
	}

	industry, err := h.svc.Info(c.Request.Context(), req.IndustryName, req.Fields)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, gin.H{"industry_info": industry})
}

// CompanyHandler handles HTTP requests for companies.
type CompanyHandler struct {
	svc    *service.CompanyService
	logger *logger.Logger
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(svc *service.CompanyService, logger *logger.Logger) *CompanyHandler {
	return &CompanyHandler{
		svc:    svc,
		logger: logger,
	}
}

// companyRequest is the keyed company lookup body.
type companyRequest struct {
	CompanyName string   `json:"company_name"`
	Fields      []string `json:"fields"`
}

// Info returns company details for a keyed lookup with an optional field
// subset.
func (h *CompanyHandler) Info(c *gin.Context) {
	var req companyRequest
	if err := bindBody(c, &req); err != nil {
		fail(c, h.logger, err)
		return
	}

	company, err := h.svc.Info(c.Request.Context(), req.CompanyName, req.Fields)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	resp.Success(c.Writer, gin.H{"company_info": company})
}
