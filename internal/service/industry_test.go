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

func TestIndustryUpsertRequiresName(t *testing.T) {
	svc := NewIndustryService(newTestData(nil, nil, nil), testLogger())

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"empty payload", map[string]any{}},
		{"empty name", map[string]any{"industry_name": ""}},
		{"non-string name", map[string]any{"industry_name": 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upsert(context.Background(), tt.payload)
			var invalid *model.InvalidError
			if !errors.As(err, &invalid) {
				t.Fatalf("Upsert() error = %v, want InvalidError", err)
			}
		})
	}
}

func TestIndustryUpsertNameOnlyEnsuresRecord(t *testing.T) {
	industries := &fakeIndustryRepo{createdOnNew: true}
	svc := NewIndustryService(newTestData(nil, industries, nil), testLogger())

	result, err := svc.Upsert(context.Background(), map[string]any{"industry_name": "Technology"})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if !result.Created || result.Modified {
		t.Errorf("result = %+v, want created only", result)
	}
	if industries.lastAttrs != nil {
		t.Errorf("attribute upsert was called with %v", industries.lastAttrs)
	}
}

func TestIndustryUpsertReplacesAttributes(t *testing.T) {
	industries := &fakeIndustryRepo{upsertResult: &repository.UpsertResult{Modified: true}}
	svc := NewIndustryService(newTestData(nil, industries, nil), testLogger())

	result, err := svc.Upsert(context.Background(), map[string]any{
		"industry_name": "Technology",
		"trends":        []any{"AI", "Cloud"},
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if !result.Modified {
		t.Errorf("result = %+v, want modified", result)
	}

	want := bson.M{"trends": []any{"AI", "Cloud"}}
	if !reflect.DeepEqual(industries.lastAttrs, want) {
		t.Errorf("attrs = %v, want %v (without industry_name)", industries.lastAttrs, want)
	}
}

func TestIndustryInfo(t *testing.T) {
	industries := &fakeIndustryRepo{doc: bson.M{"industry_name": "Technology", "trends": []string{"AI"}}}
	svc := NewIndustryService(newTestData(nil, industries, nil), testLogger())

	got, err := svc.Info(context.Background(), "Technology", nil)
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if got["industry_name"] != "Technology" {
		t.Errorf("Info() = %v", got)
	}
}

func TestIndustryInfoErrors(t *testing.T) {
	svc := NewIndustryService(newTestData(nil, nil, nil), testLogger())

	_, err := svc.Info(context.Background(), "", nil)
	var invalid *model.InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("Info() error = %v, want InvalidError", err)
	}

	_, err = svc.Info(context.Background(), "Ghost Industry", nil)
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Info() error = %v, want NotFoundError", err)
	}
}

func TestCompanyInfo(t *testing.T) {
	companies := &fakeCompanyRepo{doc: bson.M{"name": "Acme", "industry_name": "Technology"}}
	svc := NewCompanyService(newTestData(nil, nil, companies), testLogger())

	got, err := svc.Info(context.Background(), "Acme", nil)
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if got["name"] != "Acme" {
		t.Errorf("Info() = %v", got)
	}
}

func TestCompanyInfoErrors(t *testing.T) {
	svc := NewCompanyService(newTestData(nil, nil, nil), testLogger())

	_, err := svc.Info(context.Background(), "", nil)
	var invalid *model.InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("Info() error = %v, want InvalidError", err)
	}

	_, err = svc.Info(context.Background(), "Ghost Corp", nil)
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Info() error = %v, want NotFoundError", err)
	}
}
