package service

import (
	"context"

	"github.com/ncobase/ncore/logging/logger"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/isabelarvelo/careerhub/internal/data"
	"github.com/isabelarvelo/careerhub/internal/data/repository"
)

// fakeJobRepo is an in-memory JobRepository that records the documents it
// receives and serves canned results.
type fakeJobRepo struct {
	findResult []bson.M
	findErr    error
	topCounts  []repository.CompanyJobCount

	nextID       int64
	updatedCount int64
	deletedCount int64

	inserted       []bson.M
	lastFilter     bson.M
	lastProjection bson.M
	lastSet        bson.M
}

func (f *fakeJobRepo) Insert(ctx context.Context, doc bson.M) error {
	f.inserted = append(f.inserted, doc)
	return nil
}

func (f *fakeJobRepo) Find(ctx context.Context, filter, projection bson.M) ([]bson.M, error) {
	f.lastFilter = filter
	f.lastProjection = projection
	return f.findResult, f.findErr
}

func (f *fakeJobRepo) UpdateMany(ctx context.Context, filter, set bson.M) (int64, error) {
	f.lastFilter = filter
	f.lastSet = set
	return f.updatedCount, nil
}

func (f *fakeJobRepo) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	f.lastFilter = filter
	return f.deletedCount, nil
}

func (f *fakeJobRepo) TopCompaniesByIndustry(ctx context.Context, industryName string) ([]repository.CompanyJobCount, error) {
	return f.topCounts, nil
}

func (f *fakeJobRepo) NextID(ctx context.Context) (int64, error) {
	f.nextID++
	return f.nextID, nil
}

func (f *fakeJobRepo) EnsureCounter(ctx context.Context) error {
	return nil
}

// fakeIndustryRepo serves one canned industry document and records upserts.
type fakeIndustryRepo struct {
	doc          bson.M
	createdOnNew bool
	upsertResult *repository.UpsertResult

	ensured   []string
	lastAttrs bson.M
}

func (f *fakeIndustryRepo) FindByName(ctx context.Context, name string, projection bson.M) (bson.M, error) {
	return f.doc, nil
}

func (f *fakeIndustryRepo) EnsureExists(ctx context.Context, name string) (bool, error) {
	f.ensured = append(f.ensured, name)
	return f.createdOnNew, nil
}

func (f *fakeIndustryRepo) Upsert(ctx context.Context, name string, attrs bson.M) (*repository.UpsertResult, error) {
	f.ensured = append(f.ensured, name)
	f.lastAttrs = attrs
	return f.upsertResult, nil
}

// fakeCompanyRepo serves one canned company document.
type fakeCompanyRepo struct {
	doc bson.M
}

func (f *fakeCompanyRepo) FindByName(ctx context.Context, name string, projection bson.M) (bson.M, error) {
	return f.doc, nil
}

func newTestData(jobs *fakeJobRepo, industries *fakeIndustryRepo, companies *fakeCompanyRepo) *data.Data {
	if jobs == nil {
		jobs = &fakeJobRepo{}
	}
	if industries == nil {
		industries = &fakeIndustryRepo{}
	}
	if companies == nil {
		companies = &fakeCompanyRepo{}
	}
	return &data.Data{
		Jobs:       jobs,
		Industries: industries,
		Companies:  companies,
	}
}

func testLogger() *logger.Logger {
	return logger.StdLogger()
}

func strPtr(s string) *string {
	return &s
}
