package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ncobase/ncore/logging/logger"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/isabelarvelo/careerhub/internal/data"
	"github.com/isabelarvelo/careerhub/internal/model"
	"github.com/isabelarvelo/careerhub/internal/query"
)

// Fields a confirmed update is allowed to touch. job_id is immutable and
// everything else is set once at creation.
var updatableFields = map[string]bool{
	"description":    true,
	"average_salary": true,
	"location":       true,
}

// Default projection for industry job searches when the caller names no
// fields.
var industrySearchDefaults = []string{"title", "company_name", "average_salary"}

// JobService handles job-related business logic.
type JobService struct {
	data   *data.Data
	logger *logger.Logger
}

// NewJobService creates a new job service.
func NewJobService(d *data.Data, logger *logger.Logger) *JobService {
	return &JobService{
		data:   d,
		logger: logger,
	}
}

// CreateJobResult reports the outcome of a job creation.
type CreateJobResult struct {
	JobID       int64
	Industry    string
	NewIndustry bool
}

// Create validates the payload, assigns the next job id, implicitly creates
// the referenced industry when unseen, and stores the document verbatim.
func (s *JobService) Create(ctx context.Context, payload map[string]any) (*CreateJobResult, error) {
	title, _ := payload["title"].(string)
	industry, _ := payload["industry"].(string)
	companyName, _ := payload["company_name"].(string)

	if title == "" || industry == "" || companyName == "" {
		return nil, model.Invalidf("Title, industry, and company name are required fields")
	}

	doc := bson.M{}
	for k, v := range payload {
		doc[k] = v
	}
	doc["created_at"] = time.Now().UTC()

	id, err := s.data.Jobs.NextID(ctx)
	if err != nil {
		return nil, err
	}
	doc["job_id"] = id

	created, err := s.data.Industries.EnsureExists(ctx, model.CapitalizeIndustry(industry))
	if err != nil {
		return nil, err
	}

	if err := s.data.Jobs.Insert(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "job post created", "job_id", id, "title", title)
	return &CreateJobResult{
		JobID:       id,
		Industry:    industry,
		NewIndustry: created,
	}, nil
}

// GetByID returns the jobs matching a path-supplied id, shaped by the
// optional field list. Conceptually zero or one documents, returned as a
// list.
func (s *JobService) GetByID(ctx context.Context, jobID string, fields []string) ([]bson.M, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(jobID), 10, 64)
	if err != nil {
		return nil, model.Invalidf("Invalid job_id format")
	}

	jobs, err := s.data.Jobs.Find(ctx, bson.M{"job_id": id}, query.Projection(fields...))
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []bson.M{}
	}
	return jobs, nil
}

// UpdateJobsRequest carries the identifying criteria, the update payload and
// the optional confirmation value for the two-phase update workflow.
type UpdateJobsRequest struct {
	Title          string         `json:"title"`
	JobID          any            `json:"job_id"`
	CompanyName    string         `json:"company_name"`
	EmploymentType string         `json:"employment_type"`
	Update         map[string]any `json:"update"`
	ConfirmUpdate  *string        `json:"confirm_update"`
}

// MutationPreview is returned from the first phase of the confirmation
// workflow. Update previews list every match; delete previews one sample.
type MutationPreview struct {
	Message      string   `json:"message"`
	JobCount     int      `json:"job_count"`
	MatchingJobs []bson.M `json:"matching_jobs,omitempty"`
	SampleJob    bson.M   `json:"sample_job,omitempty"`
	Instructions string   `json:"instructions"`
}

// UpdateJobsResult is either a preview awaiting confirmation or the applied
// mutation counts.
type UpdateJobsResult struct {
	Preview       *MutationPreview
	Updated       int64
	UpdatedFields []string
}

// UpdateByTitle drives the confirm-then-mutate update workflow. Without the
// confirmation sentinel it only previews the matches; with it, all matching
// documents are updated, restricted to the updatable field allow-list.
func (s *JobService) UpdateByTitle(ctx context.Context, req *UpdateJobsRequest) (*UpdateJobsResult, error) {
	if req.Title == "" {
		return nil, model.Invalidf("Job title is required")
	}
	if !provided(req.JobID) && req.CompanyName == "" && req.EmploymentType == "" {
		return nil, model.Invalidf("At least one additional field (job_id, company_name, or employment_type) is required")
	}

	filter := query.NewFilter().
		Eq("title", req.Title).
		Eq("company_name", req.CompanyName).
		Eq("employment_type", req.EmploymentType)
	if err := filter.EqInt("job_id", req.JobID); err != nil {
		return nil, err
	}

	jobs, err := s.data.Jobs.Find(ctx, filter.Build(), query.Projection())
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, model.NotFoundf("No jobs found matching the criteria")
	}

	if req.ConfirmUpdate == nil {
		matching := make([]bson.M, 0, len(jobs))
		for _, job := range jobs {
			matching = append(matching, bson.M{
				"title":           fieldOr(job, "title"),
				"company_name":    fieldOr(job, "company_name"),
				"employment_type": fieldOr(job, "employment_type"),
				"description":     fieldOr(job, "description"),
			})
		}
		return &UpdateJobsResult{Preview: &MutationPreview{
			Message:      previewMessage(len(jobs), "update"),
			JobCount:     len(jobs),
			MatchingJobs: matching,
			Instructions: "To confirm update, send another POST request with 'confirm_update:true' and the same search criteria",
		}}, nil
	}

	if *req.ConfirmUpdate != "true" {
		return nil, model.Invalidf("Invalid confirmation value")
	}

	set, updatedFields, err := validateUpdatePayload(req.Update)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return &UpdateJobsResult{}, nil
	}

	modified, err := s.data.Jobs.UpdateMany(ctx, filter.Build(), set)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "jobs updated", "title", req.Title, "modified", modified)
	return &UpdateJobsResult{
		Updated:       modified,
		UpdatedFields: updatedFields,
	}, nil
}

// validateUpdatePayload checks the update map against the allow-list and
// coerces average_salary to a float. job_id can never be supplied.
func validateUpdatePayload(update map[string]any) (bson.M, []string, error) {
	if _, ok := update["job_id"]; ok {
		return nil, nil, model.Invalidf("The job_id field cannot be manually updated by users as it should remain unique. Please remove job_id from your update request and try again.")
	}

	set := bson.M{}
	fields := make([]string, 0, len(update))
	for field, value := range update {
		if !updatableFields[field] {
			return nil, nil, model.Invalidf("Invalid update field: %s", field)
		}
		set[field] = value
		fields = append(fields, field)
	}

	if v, ok := set["average_salary"]; ok {
		salary, err := query.ToFloat64(v)
		if err != nil {
			return nil, nil, model.Invalidf("Invalid salary format")
		}
		set["average_salary"] = salary
	}
	return set, fields, nil
}

// DeleteJobsRequest carries the identifying criteria and the optional
// confirmation value for the two-phase delete workflow. The company
// criterion arrives under "company" and matches the stored company_name.
type DeleteJobsRequest struct {
	Title          string  `json:"title"`
	JobID          any     `json:"job_id"`
	Company        string  `json:"company"`
	EmploymentType string  `json:"employment_type"`
	JobPostingURL  string  `json:"job_posting_url"`
	ConfirmDelete  *string `json:"confirm_delete"`
}

// DeleteJobsResult is either a preview awaiting confirmation or the applied
// deletion count.
type DeleteJobsResult struct {
	Preview *MutationPreview
	Deleted int64
}

// DeleteByTitle drives the confirm-then-mutate delete workflow. The preview
// shows a single sample record; the confirmed phase deletes every match.
func (s *JobService) DeleteByTitle(ctx context.Context, req *DeleteJobsRequest) (*DeleteJobsResult, error) {
	if req.Title == "" || (!provided(req.JobID) && req.Company == "" && req.EmploymentType == "") {
		return nil, model.Invalidf("Job title and at least one additional field is required")
	}

	filter := query.NewFilter().
		Eq("title", req.Title).
		Eq("company_name", req.Company).
		Eq("employment_type", req.EmploymentType).
		Eq("job_posting_url", req.JobPostingURL)
	if err := filter.EqInt("job_id", req.JobID); err != nil {
		return nil, err
	}

	jobs, err := s.data.Jobs.Find(ctx, filter.Build(), query.Projection())
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, model.NotFoundf("No jobs found matching the criteria")
	}

	if req.ConfirmDelete == nil {
		sample := bson.M{
			"title":           fieldOr(jobs[0], "title"),
			"job_id":          fieldOr(jobs[0], "job_id"),
			"company":         fieldOr(jobs[0], "company_name"),
			"employment_type": fieldOr(jobs[0], "employment_type"),
			"description":     fieldOr(jobs[0], "description"),
		}
		return &DeleteJobsResult{Preview: &MutationPreview{
			Message:      previewMessage(len(jobs), "delete"),
			JobCount:     len(jobs),
			SampleJob:    sample,
			Instructions: "To confirm deletion, send another POST request with 'confirm_delete:true' and the same search criteria",
		}}, nil
	}

	if *req.ConfirmDelete != "true" {
		return nil, model.Invalidf("Invalid confirmation value")
	}

	deleted, err := s.data.Jobs.DeleteMany(ctx, filter.Build())
	if err != nil {
		return nil, err
	}
	return &DeleteJobsResult{Deleted: deleted}, nil
}

// BySalary returns jobs whose average_salary falls within the inclusive
// range, shaped by the optional field list.
func (s *JobService) BySalary(ctx context.Context, minSalary, maxSalary float64, fields []string) ([]bson.M, error) {
	if minSalary > maxSalary {
		return nil, model.Invalidf("min_salary cannot be greater than max_salary")
	}

	filter := bson.M{
		"$and": []bson.M{
			{"average_salary": bson.M{"$gte": minSalary}},
			{"average_salary": bson.M{"$lte": maxSalary}},
		},
	}

	jobs, err := s.data.Jobs.Find(ctx, filter, query.Projection(fields...))
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, model.NotFoundf("No jobs found in the specified salary range")
	}
	return jobs, nil
}

// ByExperience classifies the level input (a string or list of strings)
// into canonical labels and returns the union of matching jobs. One
// unrecognized token fails the whole request.
func (s *JobService) ByExperience(ctx context.Context, levelInput any, fields []string) ([]bson.M, error) {
	tokens, err := experienceTokens(levelInput)
	if err != nil {
		return nil, err
	}

	levels := make([]string, 0, len(tokens))
	for _, token := range tokens {
		level, ok := model.ClassifyExperience(token)
		if !ok {
			return nil, model.NotFoundf("%s is not a valid experience level in the career hub. Valid options include Entry Level, Mid Level, and Senior Level", strings.ToLower(token))
		}
		levels = append(levels, level)
	}

	filter := bson.M{"experience_level": bson.M{"$in": levels}}
	jobs, err := s.data.Jobs.Find(ctx, filter, query.Projection(fields...))
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, model.NotFoundf("No jobs found for experience level(s): %s", strings.Join(levels, ", "))
	}
	return jobs, nil
}

// experienceTokens normalizes the experience_level input shape.
func experienceTokens(input any) ([]string, error) {
	switch v := input.(type) {
	case nil:
		return nil, model.Invalidf("experience_level parameter must be provided")
	case string:
		if v == "" {
			return nil, model.Invalidf("experience_level parameter must be provided")
		}
		return []string{v}, nil
	case []string:
		if len(v) == 0 {
			return nil, model.Invalidf("experience_level parameter must be provided")
		}
		return v, nil
	case []any:
		if len(v) == 0 {
			return nil, model.Invalidf("experience_level parameter must be provided")
		}
		tokens := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, model.Invalidf("experience_level must be a string or a list of strings")
			}
			tokens = append(tokens, s)
		}
		return tokens, nil
	default:
		return nil, model.Invalidf("experience_level must be a string or a list of strings")
	}
}

// TopCompanies ranks the companies posting in an industry by job count.
func (s *JobService) TopCompanies(ctx context.Context, industryName string) ([]bson.M, error) {
	if industryName == "" {
		return nil, model.Invalidf("industry parameter must be provided")
	}

	counts, err := s.data.Jobs.TopCompaniesByIndustry(ctx, industryName)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, model.NotFoundf("No companies found for industry: %s", industryName)
	}

	top := make([]bson.M, 0, len(counts))
	for _, c := range counts {
		top = append(top, bson.M{"company_name": c.CompanyName, "job_count": c.JobCount})
	}
	return top, nil
}

// ByIndustry returns jobs posted in an industry, with a documented default
// projection when the caller names no fields.
func (s *JobService) ByIndustry(ctx context.Context, industryName string, fields []string) ([]bson.M, error) {
	if industryName == "" {
		return nil, model.Invalidf("industry_name parameter must be provided in the request body")
	}

	projection := query.ProjectionDefault(fields, industrySearchDefaults)
	jobs, err := s.data.Jobs.Find(ctx, bson.M{"industry_name": industryName}, projection)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, model.NotFoundf("No jobs found in the %s industry", industryName)
	}
	return jobs, nil
}

// provided reports whether an optional criterion was actually supplied.
// Empty strings count as absent, matching how absent filter criteria are
// treated everywhere else.
func provided(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// fieldOr returns the document value for key, or "N/A" for previews of
// documents missing the field.
func fieldOr(doc bson.M, key string) any {
	if v, ok := doc[key]; ok && v != nil {
		return v
	}
	return "N/A"
}

func previewMessage(count int, verb string) string {
	return "Found " + strconv.Itoa(count) + " job(s) matching the criteria. Are you sure you want to " + verb + " these job(s)?"
}
