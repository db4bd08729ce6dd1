// Package model holds the document types shared by the API and the seed
// pipeline, plus the domain error types handlers map to HTTP statuses.
package model

import (
	"strings"
	"time"
	"unicode"
)

// Canonical experience levels stored on job documents.
const (
	ExperienceEntry  = "Entry Level"
	ExperienceMid    = "Mid Level"
	ExperienceSenior = "Senior Level"
)

// Job is the denormalized job document produced by the seed pipeline.
// Documents created through the API are free-form maps and may carry fewer
// fields; only job_id, title, industry, company_name and created_at are
// guaranteed there.
type Job struct {
	JobID              int64      `bson:"job_id" json:"job_id"`
	Title              string     `bson:"title" json:"title"`
	Description        string     `bson:"description" json:"description"`
	DetailedDesc       string     `bson:"detailed_description" json:"detailed_description"`
	Responsibilities   []string   `bson:"responsibilities" json:"responsibilities"`
	Requirements       []string   `bson:"requirements" json:"requirements"`
	YearsOfExperience  int        `bson:"years_of_experience" json:"years_of_experience"`
	ExperienceLevel    string     `bson:"experience_level" json:"experience_level"`
	EmploymentType     string     `bson:"employment_type" json:"employment_type"`
	AverageSalary      *float64   `bson:"average_salary" json:"average_salary"`
	Benefits           []string   `bson:"benefits" json:"benefits"`
	Remote             bool       `bson:"remote" json:"remote"`
	JobPostingURL      string     `bson:"job_posting_url" json:"job_posting_url"`
	PostingDate        *time.Time `bson:"posting_date" json:"posting_date"`
	ClosingDate        *time.Time `bson:"closing_date" json:"closing_date"`
	RequiredEducation  string     `bson:"required_education" json:"required_education"`
	PreferredSkills    []string   `bson:"preferred_skills" json:"preferred_skills"`
	CompanyID          *int64     `bson:"company_id" json:"company_id"`
	CompanyName        *string    `bson:"company_name" json:"company_name"`
	CompanySize        *string    `bson:"company_size" json:"company_size"`
	CompanyType        *string    `bson:"company_type" json:"company_type"`
	CompanyLocation    *string    `bson:"company_location" json:"company_location"`
	CompanyWebsite     *string    `bson:"company_website" json:"company_website"`
	CompanyDescription *string    `bson:"company_description" json:"company_description"`
	CompanyHRContact   *string    `bson:"company_hr_contact" json:"company_hr_contact"`
	IndustryName       *string    `bson:"industry_name" json:"industry_name"`
}

// Industry aggregates the attributes of one industry across its source rows.
type Industry struct {
	IndustryName   string    `bson:"industry_name" json:"industry_name"`
	GrowthRates    []float64 `bson:"growth_rates" json:"growth_rates"`
	IndustrySkills []string  `bson:"industry_skills" json:"industry_skills"`
	TopCompanies   []string  `bson:"top_companies" json:"top_companies"`
	Trends         []string  `bson:"trends" json:"trends"`
}

// Company is read-only through the API; it is populated by the seed step.
type Company struct {
	CompanyID    int64  `bson:"company_id" json:"company_id"`
	Name         string `bson:"name" json:"name"`
	Size         string `bson:"size" json:"size"`
	Type         string `bson:"type" json:"type"`
	Location     string `bson:"location" json:"location"`
	Website      string `bson:"website" json:"website"`
	Description  string `bson:"description" json:"description"`
	HRContact    string `bson:"hr_contact" json:"hr_contact"`
	IndustryName string `bson:"industry_name" json:"industry_name"`
}

// CapitalizeIndustry normalizes an industry name the way implicit creation
// stores it: first rune upper-cased, the rest lower-cased.
func CapitalizeIndustry(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(strings.ToLower(name))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ExperienceLevelForYears maps years of experience to a canonical level.
func ExperienceLevelForYears(years int) string {
	switch {
	case years < 2:
		return ExperienceEntry
	case years < 5:
		return ExperienceMid
	default:
		return ExperienceSenior
	}
}

// ClassifyExperience maps a caller-supplied level string to a canonical
// label by case-insensitive substring match. The second return is false for
// unrecognized input.
func ClassifyExperience(level string) (string, bool) {
	l := strings.ToLower(level)
	switch {
	case strings.Contains(l, "entry"):
		return ExperienceEntry, true
	case strings.Contains(l, "mid"):
		return ExperienceMid, true
	case strings.Contains(l, "senior"):
		return ExperienceSenior, true
	default:
		return "", false
	}
}
