package service

import (
	"context"

	"github.com/ncobase/ncore/logging/logger"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/isabelarvelo/careerhub/internal/data"
	"github.com/isabelarvelo/careerhub/internal/data/repository"
	"github.com/isabelarvelo/careerhub/internal/model"
	"github.com/isabelarvelo/careerhub/internal/query"
)

// Base field allow-lists for the keyed info lookups. Caller-requested
// fields are added on top of these.
var (
	industryInfoFields = []string{"industry_name", "top_companies", "trends"}
	companyInfoFields  = []string{"name", "industry_name"}
)

// IndustryService handles industry-related business logic.
type IndustryService struct {
	data   *data.Data
	logger *logger.Logger
}

// NewIndustryService creates a new industry service.
func NewIndustryService(d *data.Data, logger *logger.Logger) *IndustryService {
	return &IndustryService{
		data:   d,
		logger: logger,
	}
}

// Upsert replaces the supplied attributes on the industry keyed by
// industry_name, inserting the record when absent. Attribute values replace
// existing ones wholesale, they are not merged.
func (s *IndustryService) Upsert(ctx context.Context, payload map[string]any) (*repository.UpsertResult, error) {
	name, _ := payload["industry_name"].(string)
	if name == "" {
		return nil, model.Invalidf("industry_name is a required field")
	}

	attrs := bson.M{}
	for k, v := range payload {
		if k != "industry_name" {
			attrs[k] = v
		}
	}

	if len(attrs) == 0 {
		created, err := s.data.Industries.EnsureExists(ctx, name)
		if err != nil {
			return nil, err
		}
		return &repository.UpsertResult{Created: created}, nil
	}

	result, err := s.data.Industries.Upsert(ctx, name, attrs)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "industry info upserted", "name", name, "created", result.Created)
	return result, nil
}

// Info returns the industry document keyed by name, restricted to the info
// allow-list plus any caller-requested fields.
func (s *IndustryService) Info(ctx context.Context, name string, fields []string) (bson.M, error) {
	if name == "" {
		return nil, model.Invalidf("industry_name parameter must be provided")
	}

	projection := query.ProjectionExtend(industryInfoFields, fields)
	industry, err := s.data.Industries.FindByName(ctx, name, projection)
	if err != nil {
		return nil, err
	}
	if industry == nil {
		return nil, model.NotFoundf("No information found for industry: %s", name)
	}
	return industry, nil
}

// CompanyService handles company lookups. Companies are read-only through
// the API; the collection is populated by the seed step.
type CompanyService struct {
	data   *data.Data
	logger *logger.Logger
}

// NewCompanyService creates a new company service.
func NewCompanyService(d *data.Data, logger *logger.Logger) *CompanyService {
	return &CompanyService{
		data:   d,
		logger: logger,
	}
}

// Info returns the company document keyed by name, restricted to the info
// allow-list plus any caller-requested fields.
func (s *CompanyService) Info(ctx context.Context, name string, fields []string) (bson.M, error) {
	if name == "" {
		return nil, model.Invalidf("company_name parameter must be provided")
	}

	projection := query.ProjectionExtend(companyInfoFields, fields)
	company, err := s.data.Companies.FindByName(ctx, name, projection)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, model.NotFoundf("No information found for company: %s", name)
	}
	return company, nil
}
