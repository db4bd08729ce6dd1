package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/isabelarvelo/careerhub/internal/data/repository"
	"github.com/isabelarvelo/careerhub/internal/model"
)

func TestCreateRequiresFields(t *testing.T) {
	svc := NewJobService(newTestData(nil, nil, nil), testLogger())

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"empty payload", map[string]any{}},
		{"missing title", map[string]any{"industry": "Tech", "company_name": "Acme"}},
		{"missing industry", map[string]any{"title": "Engineer", "company_name": "Acme"}},
		{"missing company", map[string]any{"title": "Engineer", "industry": "Tech"}},
		{"non-string title", map[string]any{"title": 7, "industry": "Tech", "company_name": "Acme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.payload)
			var invalid *model.InvalidError
			if !errors.As(err, &invalid) {
				t.Fatalf("Create() error = %v, want InvalidError", err)
			}
		})
	}
}

func TestCreateAssignsIDAndIndustry(t *testing.T) {
	jobs := &fakeJobRepo{}
	industries := &fakeIndustryRepo{createdOnNew: true}
	svc := NewJobService(newTestData(jobs, industries, nil), testLogger())

	result, err := svc.Create(context.Background(), map[string]any{
		"title":        "Data Engineer",
		"industry":     "finance",
		"company_name": "Acme",
		"location":     "Remote",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if result.JobID != 1 {
		t.Errorf("JobID = %d, want 1", result.JobID)
	}
	if !result.NewIndustry {
		t.Error("NewIndustry = false, want true")
	}
	if result.Industry != "finance" {
		t.Errorf("Industry = %q, want the submitted value", result.Industry)
	}

	if got, want := industries.ensured, []string{"Finance"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ensured industries = %v, want %v", got, want)
	}

	if len(jobs.inserted) != 1 {
		t.Fatalf("inserted %d docs, want 1", len(jobs.inserted))
	}
	doc := jobs.inserted[0]
	if doc["job_id"] != int64(1) {
		t.Errorf("stored job_id = %v, want 1", doc["job_id"])
	}
	if doc["location"] != "Remote" {
		t.Errorf("extra field not stored verbatim: %v", doc["location"])
	}
	if _, ok := doc["created_at"]; !ok {
		t.Error("created_at not stamped on document")
	}
}

func TestGetByID(t *testing.T) {
	jobs := &fakeJobRepo{findResult: []bson.M{{"job_id": int64(3), "title": "Analyst"}}}
	svc := NewJobService(newTestData(jobs, nil, nil), testLogger())

	got, err := svc.GetByID(context.Background(), "3", nil)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(got) != 1 || got[0]["title"] != "Analyst" {
		t.Errorf("GetByID() = %v", got)
	}
	if !reflect.DeepEqual(jobs.lastFilter, bson.M{"job_id": int64(3)}) {
		t.Errorf("filter = %v", jobs.lastFilter)
	}
}

func TestGetByIDInvalidFormat(t *testing.T) {
	svc := NewJobService(newTestData(nil, nil, nil), testLogger())

	_, err := svc.GetByID(context.Background(), "abc", nil)
	var invalid *model.InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("GetByID() error = %v, want InvalidError", err)
	}
}

func TestGetByIDNoMatchesReturnsEmptyList(t *testing.T) {
	svc := NewJobService(newTestData(&fakeJobRepo{}, nil, nil), testLogger())

	got, err := svc.GetByID(context.Background(), "999", nil)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("GetByID() = %v, want empty non-nil list", got)
	}
}

func TestUpdateByTitleValidation(t *testing.T) {
	svc := NewJobService(newTestData(nil, nil, nil), testLogger())

	tests := []struct {
		name string
		req  *UpdateJobsRequest
	}{
		{"missing title", &UpdateJobsRequest{CompanyName: "Acme"}},
		{"missing secondary criteria", &UpdateJobsRequest{Title: "Engineer"}},
		{"empty-string job_id does not count", &UpdateJobsRequest{Title: "Engineer", JobID: " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateByTitle(context.Background(), tt.req)
			var invalid *model.InvalidError
			if !errors.As(err, &invalid) {
				t.Fatalf("UpdateByTitle() error = %v, want InvalidError", err)
			}
		})
	}
}

func TestUpdateByTitleNoMatches(t *testing.T) {
	svc := NewJobService(newTestData(&fakeJobRepo{}, nil, nil), testLogger())

	_, err := svc.UpdateByTitle(context.Background(), &UpdateJobsRequest{Title: "Engineer", CompanyName: "Acme"})
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("UpdateByTitle() error = %v, want NotFoundError", err)
	}
}

func TestUpdateByTitlePreview(t *testing.T) {
	jobs := &fakeJobRepo{findResult: []bson.M{
		{"title": "Engineer", "company_name": "Acme", "employment_type": "Full-Time", "description": "Build things"},
		{"title": "Engineer", "company_name": "Acme"},
	}}
	svc := NewJobService(newTestData(jobs, nil, nil), testLogger())

	result, err := svc.UpdateByTitle(context.Background(), &UpdateJobsRequest{Title: "Engineer", CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("UpdateByTitle() error = %v", err)
	}
	if result.Preview == nil {
		t.Fatal("expected a preview without confirmation")
	}
	if result.Preview.JobCount != 2 {
		t.Errorf("JobCount = %d, want 2", result.Preview.JobCount)
	}
	if len(result.Preview.MatchingJobs) != 2 {
		t.Fatalf("MatchingJobs = %v, want all matches listed", result.Preview.MatchingJobs)
	}
	if got := result.Preview.MatchingJobs[1]["description"]; got != "N/A" {
		t.Errorf("missing field rendered as %v, want N/A", got)
	}
	if want := "Found 2 job(s) matching the criteria. Are you sure you want to update these job(s)?"; result.Preview.Message != want {
		t.Errorf("Message = %q, want %q", result.Preview.Message, want)
	}
}

func TestUpdateByTitleInvalidConfirmation(t *testing.T) {
	jobs := &fakeJobRepo{findResult: []bson.M{{"title": "Engineer"}}}
	svc := NewJobService(newTestData(jobs, nil, nil), testLogger())

	_, err := svc.UpdateByTitle(context.Background(), &UpdateJobsRequest{
		Title:         "Engineer",
		CompanyName:   "Acme",
		ConfirmUpdate: strPtr("yes"),
	})
	var invalid *model.InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("UpdateByTitle() error = %v, want InvalidError", err)
	}
}

func TestUpdateByTitleRejectsBadPayload(t *testing.T) {
	jobs := &fakeJobRepo{findResult: []bson.M{{"title": "Engineer"}}}
	svc := NewJobService(newTestData(jobs, nil, nil), testLogger())

	tests := []struct {
		name   string
		update map[string]any
	}{
		{"job_id immutable", map[string]any{"job_id": 99}},
		{"unknown field", map[string]any{"title": "New Title"}},
		{"bad salary", map[string]any{"average_salary": "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateByTitle(context.Background(), &UpdateJobsRequest{
				Title:         "Engineer",
				CompanyName:   "Acme",
				Update:        tt.update,
				ConfirmUpdate: strPtr("true"),
			})
			var invalid *model.InvalidError
			if !errors.As(err, &invalid) {
				t.Fatalf("UpdateByTitle() error = %v, want InvalidError", err)
			}
		})
	}
}

func TestUpdateByTitleConfirmed(t *testing.T) {
	jobs := &fakeJobRepo{
		findResult:   []bson.M{{"title": "Engineer"}, {"title": "Engineer"}},
		updatedCount: 2,
	}
	svc := NewJobService(newTestData(jobs, nil, nil), testLogger())

	result, err := svc.UpdateByTitle(context.Background(), &UpdateJobsRequest{
		Title:       "Engineer",
		CompanyName: "Acme",
		Update: map[string]any{
			"description":    "New description",
			"average_salary": "85000",
		},
		ConfirmUpdate: strPtr("true"),
	})
	if err != nil {
		t.Fatalf("UpdateByTitle() error = %v", err)
	}
	if result.Preview != nil {
		t.Fatal("confirmed update still returned a preview")
	}
	if result.Updated != 2 {
		t.Errorf("Updated = %d, want 2", result.Updated)
	}
	if len(result.UpdatedFields) != 2 {
		t.Errorf("UpdatedFields = %v, want both fields", result.UpdatedFields)
	}
	if got := jobs.lastSet["average_salary"]; got != float64(85000) {
		t.Errorf("average_salary stored as %v (%T), want coerced float", got, got)
	}
}

func TestUpdateByTitleEmptyUpdateIsNoOp(t *testing.T) {
	jobs := &fakeJobRepo{findResult: []bson.M{{"title": "Engineer"}}}
	svc := NewJobService(newTestData(jobs, nil, nil), testLogger())

	result, err := svc.UpdateByTitle(context.Background(), &UpdateJobsRequest{
		Title:         "Engineer",
		CompanyName:   "Acme",
		ConfirmUpdate: strPtr("true"),
	})
	if err != nil {
		t.Fatalf("UpdateByTitle() error = %v", err)
	}
	if result.Preview != nil || result.Updated != 0 {
		t.Errorf("empty update result = %+v, want zero-value result", result)
	}
	if jobs.lastSet != nil {
		t.Errorf("UpdateMany was called with %v", jobs.lastSet)
	}
}

func TestDeleteByTitleValidation(t *testing.T) {
	svc := NewJobService(newTestData(nil, nil, nil), testLogger())

	tests := []struct {
		name string
		req  *DeleteJobsRequest
	}{
		{"missing title", &DeleteJobsRequest{Company: "Acme"}},
		{"missing secondary criteria", &DeleteJobsRequest{Title: "Engineer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.DeleteByTitle(context.Background(), tt.req)
			var invalid *model.InvalidError
			if !errors.As(err, &invalid) {
				t.Fatalf("DeleteByTitle() error = %v, want InvalidError", err)
			}
		})
	}
}

func TestDeleteByTitlePreviewShowsSample(t *testing.T) {
	jobs := &fakeJobRepo{findResult: []bson.M{
		{"title": "Engineer", "job_id": int64(4), "company_name": "Acme", "employment_type": "Full-Time"},
		{"title": "Engineer", "job_id": int64(5), "company_name": "Acme"},
	}}
	svc := NewJobService(newTestData(jobs, nil, nil), testLogger())

	result, err := svc.DeleteByTitle(context.Background(), &DeleteJobsRequest{Title: "Engineer", Company: "Acme"})
	if err != nil {
		t.Fatalf("DeleteByTitle() error = %v", err)
	}
	if result.Preview == nil {
		t.Fatal("expected a preview without confirmation")
	}
	if result.Preview.JobCount != 2 {
		t.Errorf("JobCount = %d, want 2", result.Preview.JobCount)
	}
	if result.Preview.MatchingJobs != nil {
		t.Error("delete preview listed all matches, want a single sample")
	}
	sample := result.Preview.SampleJob
	if sample["job_id"] != int64(4) {
		t.Errorf("sample job_id = %v, want first match", sample["job_id"])
	}
	if sample["company"] != "Acme" {
		t.Errorf("sample company = %v, want the stored company_name", sample["company"])
	}
	if sample["description"] != "N/A" {
		t.Errorf("missing description rendered as %v, want N/A", sample["description"])
	}
}

func TestDeleteByTitleConfirmed(t *testing.T) {
	jobs := &fakeJobRepo{
		findResult:   []bson.M{{"title": "Engineer"}},
		deletedCount: 3,
	}
	svc := NewJobService(newTestData(jobs, nil, nil), testLogger())

	result, err := svc.DeleteByTitle(context.Background(), &DeleteJobsRequest{
		Title:         "Engineer",
		Company:       "Acme",
		ConfirmDelete: strPtr("true"),
	})
	if err != nil {
		t.Fatalf("DeleteByTitle() error = %v", err)
	}
	if result.Deleted != 3 {
		t.Errorf("Deleted = %d, want 3", result.Deleted)
	}
	if got := jobs.lastFilter["company_name"]; got != "Acme" {
		t.Errorf("company criterion filtered on %v, want company_name", jobs.lastFilter)
	}
}

func TestBySalary(t *testing.T) {
	jobs := &fakeJobRepo{findResult: []bson.M{{"title": "Engineer"}}}
	svc := NewJobService(newTestData(jobs, nil, nil), testLogger())

	got, err := svc.BySalary(context.Background(), 50000, 100000, nil)
	if err != nil {
		t.Fatalf("BySalary() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("BySalary() = %v", got)
	}

	want := bson.M{"$and": []bson.M{
		{"average_salary": bson.M{"$gte": float64(50000)}},
		{"average_salary": bson.M{"$lte": float64(100000)}},
	}}
	if !reflect.DeepEqual(jobs.lastFilter, want) {
		t.Errorf("filter = %v, want %v", jobs.lastFilter, want)
	}
}

func TestBySalaryInvertedRange(t *testing.T) {
	svc := NewJobService(newTestData(nil, nil, nil), testLogger())

	_, err := svc.BySalary(context.Background(), 100000, 50000, nil)
	var invalid *model.InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("BySalary() error = %v, want InvalidError", err)
	}
}

func TestBySalaryNoMatches(t *testing.T) {
	svc := NewJobService(newTestData(&fakeJobRepo{}, nil, nil), testLogger())

	_, err := svc.BySalary(context.Background(), 50000, 100000, nil)
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("BySalary() error = %v, want NotFoundError", err)
	}
}

func TestByExperience(t *testing.T) {
	jobs := &fakeJobRepo{findResult: []bson.M{{"title": "Engineer"}}}
	svc := NewJobService(newTestData(jobs, nil, nil), testLogger())

	_, err := svc.ByExperience(context.Background(), []any{"entry", "Senior"}, nil)
	if err != nil {
		t.Fatalf("ByExperience() error = %v", err)
	}

	want := bson.M{"experience_level": bson.M{"$in": []string{model.ExperienceEntry, model.ExperienceSenior}}}
	if !reflect.DeepEqual(jobs.lastFilter, want) {
		t.Errorf("filter = %v, want %v", jobs.lastFilter, want)
	}
}

func TestByExperienceInputValidation(t *testing.T) {
	svc := NewJobService(newTestData(&fakeJobRepo{findResult: []bson.M{{}}}, nil, nil), testLogger())

	tests := []struct {
		name     string
		input    any
		notFound bool
	}{
		{"nil input", nil, false},
		{"empty string", "", false},
		{"empty list", []any{}, false},
		{"non-string item", []any{42}, false},
		{"unsupported type", 42, false},
		{"unknown level", "expert", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ByExperience(context.Background(), tt.input, nil)
			if tt.notFound {
				var notFound *model.NotFoundError
				if !errors.As(err, &notFound) {
					t.Fatalf("ByExperience() error = %v, want NotFoundError", err)
				}
				return
			}
			var invalid *model.InvalidError
			if !errors.As(err, &invalid) {
				t.Fatalf("ByExperience() error = %v, want InvalidError", err)
			}
		})
	}
}

func TestTopCompanies(t *testing.T) {
	jobs := &fakeJobRepo{topCounts: []repository.CompanyJobCount{
		{CompanyName: "Acme", JobCount: 5},
		{CompanyName: "Globex", JobCount: 2},
	}}
	svc := NewJobService(newTestData(jobs, nil, nil), testLogger())

	got, err := svc.TopCompanies(context.Background(), "Technology")
	if err != nil {
		t.Fatalf("TopCompanies() error = %v", err)
	}
	if len(got) != 2 || got[0]["company_name"] != "Acme" || got[0]["job_count"] != int64(5) {
		t.Errorf("TopCompanies() = %v", got)
	}
}

func TestTopCompaniesValidation(t *testing.T) {
	svc := NewJobService(newTestData(nil, nil, nil), testLogger())

	_, err := svc.TopCompanies(context.Background(), "")
	var invalid *model.InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("TopCompanies() error = %v, want InvalidError", err)
	}

	_, err = svc.TopCompanies(context.Background(), "Ghost Industry")
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("TopCompanies() error = %v, want NotFoundError", err)
	}
}

func TestByIndustryDefaultProjection(t *testing.T) {
	jobs := &fakeJobRepo{findResult: []bson.M{{"title": "Engineer"}}}
	svc := NewJobService(newTestData(jobs, nil, nil), testLogger())

	_, err := svc.ByIndustry(context.Background(), "Technology", nil)
	if err != nil {
		t.Fatalf("ByIndustry() error = %v", err)
	}

	want := bson.M{"_id": 0, "title": 1, "company_name": 1, "average_salary": 1}
	if !reflect.DeepEqual(jobs.lastProjection, want) {
		t.Errorf("projection = %v, want defaults %v", jobs.lastProjection, want)
	}
}

func TestByIndustryValidation(t *testing.T) {
	svc := NewJobService(newTestData(&fakeJobRepo{}, nil, nil), testLogger())

	_, err := svc.ByIndustry(context.Background(), "", nil)
	var invalid *model.InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("ByIndustry() error = %v, want InvalidError", err)
	}

	_, err = svc.ByIndustry(context.Background(), "Ghost Industry", nil)
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("ByIndustry() error = %v, want NotFoundError", err)
	}
}
