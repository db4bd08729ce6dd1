// Package service contains the request-handling business logic for the
// CareerHub API.
package service

import (
	"github.com/ncobase/ncore/logging/logger"

	"github.com/isabelarvelo/careerhub/internal/data"
)

// Service aggregates all business logic services.
type Service struct {
	Job      *JobService
	Industry *IndustryService
	Company  *CompanyService
}

// NewService creates a new service instance with all sub-services initialized.
func NewService(d *data.Data, logger *logger.Logger) *Service {
	return &Service{
		Job:      NewJobService(d, logger),
		Industry: NewIndustryService(d, logger),
		Company:  NewCompanyService(d, logger),
	}
}
