// Package seed transforms the raw CSV exports into the denormalized
// documents the API serves: one job document per posting with company and
// employment details folded in, plus condensed industry and company
// records. It assumes the same row index in jobs.csv, companies.csv and
// industry_info.csv describes the same posting.
package seed

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/isabelarvelo/careerhub/internal/model"
)

// Dataset holds the transformed collections ready to write or load.
type Dataset struct {
	Jobs       []model.Job
	Industries []model.Industry
	Companies  []model.Company
}

type employmentDetails struct {
	employmentType string
	averageSalary  *float64
	benefits       []string
	remote         bool
	jobPostingURL  string
	postingDate    *time.Time
	closingDate    *time.Time
}

type educationSkills struct {
	requiredEducation string
	preferredSkills   []string
}

// Load reads the five source CSVs from dir and joins them into a Dataset.
// All joins are keyed map lookups.
func Load(dir string) (*Dataset, error) {
	industryRows, err := readCSV(filepath.Join(dir, "industry_info.csv"))
	if err != nil {
		return nil, err
	}
	companyRows, err := readCSV(filepath.Join(dir, "companies.csv"))
	if err != nil {
		return nil, err
	}
	jobRows, err := readCSV(filepath.Join(dir, "jobs.csv"))
	if err != nil {
		return nil, err
	}
	eduRows, err := readCSV(filepath.Join(dir, "education_and_skills.csv"))
	if err != nil {
		return nil, err
	}
	empRows, err := readCSV(filepath.Join(dir, "employment_details.csv"))
	if err != nil {
		return nil, err
	}

	industryNameByID := make(map[int64]string, len(industryRows))
	for _, row := range industryRows {
		id, err := strconv.ParseInt(row["id"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("industry_info.csv: bad id %q: %w", row["id"], err)
		}
		industryNameByID[id] = row["industry_name"]
	}

	companies, companiesByID, err := buildCompanies(companyRows, industryNameByID)
	if err != nil {
		return nil, err
	}

	eduByJobID := make(map[int64]educationSkills, len(eduRows))
	for _, row := range eduRows {
		id, err := strconv.ParseInt(row["job_id"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("education_and_skills.csv: bad job_id %q: %w", row["job_id"], err)
		}
		eduByJobID[id] = educationSkills{
			requiredEducation: row["required_education"],
			preferredSkills:   parseList(row["preferred_skills"]),
		}
	}

	empByID := make(map[int64]employmentDetails, len(empRows))
	for _, row := range empRows {
		id, err := strconv.ParseInt(row["id"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("employment_details.csv: bad id %q: %w", row["id"], err)
		}
		emp := employmentDetails{
			employmentType: row["employment_type"],
			benefits:       parseList(row["benefits"]),
			remote:         row["remote"] == "True",
			jobPostingURL:  row["job_posting_url"],
		}
		if salary, err := strconv.ParseFloat(row["average_salary"], 64); err == nil {
			emp.averageSalary = &salary
		}
		emp.postingDate = parseDate(row["posting_date"])
		emp.closingDate = parseDate(row["closing_date"])
		empByID[id] = emp
	}

	jobs := make([]model.Job, 0, len(jobRows))
	for _, row := range jobRows {
		id, err := strconv.ParseInt(row["id"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("jobs.csv: bad id %q: %w", row["id"], err)
		}
		years, err := strconv.Atoi(row["years_of_experience"])
		if err != nil {
			return nil, fmt.Errorf("jobs.csv: bad years_of_experience %q: %w", row["years_of_experience"], err)
		}

		emp := empByID[id]
		edu := eduByJobID[id]

		job := model.Job{
			JobID:             id,
			Title:             row["title"],
			Description:       row["description"],
			DetailedDesc:      row["detailed_description"],
			Responsibilities:  parseList(row["responsibilities"]),
			Requirements:      parseList(row["requirements"]),
			YearsOfExperience: years,
			ExperienceLevel:   model.ExperienceLevelForYears(years),
			EmploymentType:    emp.employmentType,
			AverageSalary:     emp.averageSalary,
			Benefits:          emp.benefits,
			Remote:            emp.remote,
			JobPostingURL:     emp.jobPostingURL,
			PostingDate:       emp.postingDate,
			ClosingDate:       emp.closingDate,
			RequiredEducation: edu.requiredEducation,
			PreferredSkills:   edu.preferredSkills,
		}

		// Source rows with the same index describe the same posting, so
		// the company is joined by the job's own id.
		if company, ok := companiesByID[id]; ok {
			job.CompanyID = &company.CompanyID
			job.CompanyName = &company.Name
			job.CompanySize = &company.Size
			job.CompanyType = &company.Type
			job.CompanyLocation = &company.Location
			job.CompanyWebsite = &company.Website
			job.CompanyDescription = &company.Description
			job.CompanyHRContact = &company.HRContact
			job.IndustryName = &company.IndustryName
		}
		jobs = append(jobs, job)
	}

	return &Dataset{
		Jobs:       jobs,
		Industries: condenseIndustries(industryRows),
		Companies:  companies,
	}, nil
}

// buildCompanies maps company rows and resolves each industry_name by id.
func buildCompanies(rows []map[string]string, industryNameByID map[int64]string) ([]model.Company, map[int64]*model.Company, error) {
	companies := make([]model.Company, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row["id"], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("companies.csv: bad id %q: %w", row["id"], err)
		}
		industryName, ok := industryNameByID[id]
		if !ok {
			industryName = "Unknown"
		}
		companies = append(companies, model.Company{
			CompanyID:    id,
			Name:         row["name"],
			Size:         row["size"],
			Type:         row["type"],
			Location:     row["location"],
			Website:      row["website"],
			Description:  row["description"],
			HRContact:    row["hr_contact"],
			IndustryName: industryName,
		})
	}

	byID := make(map[int64]*model.Company, len(companies))
	for i := range companies {
		byID[companies[i].CompanyID] = &companies[i]
	}
	return companies, byID, nil
}

// condenseIndustries merges the per-row industry records into one record
// per unique name: growth rates are kept in row order, the string
// attributes are deduplicated and sorted.
func condenseIndustries(rows []map[string]string) []model.Industry {
	type accumulator struct {
		growthRates []float64
		skills      map[string]struct{}
		companies   map[string]struct{}
		trends      map[string]struct{}
	}

	order := make([]string, 0, len(rows))
	byName := make(map[string]*accumulator, len(rows))
	for _, row := range rows {
		name := row["industry_name"]
		acc, ok := byName[name]
		if !ok {
			acc = &accumulator{
				skills:    make(map[string]struct{}),
				companies: make(map[string]struct{}),
				trends:    make(map[string]struct{}),
			}
			byName[name] = acc
			order = append(order, name)
		}
		if rate, err := strconv.ParseFloat(row["growth_rate"], 64); err == nil {
			acc.growthRates = append(acc.growthRates, rate)
		}
		for _, s := range parseList(row["industry_skills"]) {
			acc.skills[s] = struct{}{}
		}
		for _, c := range parseList(row["top_companies"]) {
			acc.companies[c] = struct{}{}
		}
		for _, t := range parseList(row["trends"]) {
			acc.trends[t] = struct{}{}
		}
	}

	industries := make([]model.Industry, 0, len(order))
	for _, name := range order {
		acc := byName[name]
		industries = append(industries, model.Industry{
			IndustryName:   name,
			GrowthRates:    acc.growthRates,
			IndustrySkills: sortedKeys(acc.skills),
			TopCompanies:   sortedKeys(acc.companies),
			Trends:         sortedKeys(acc.trends),
		})
	}
	return industries
}

// readCSV returns the file's records as header-keyed maps.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", filepath.Base(path))
	}

	header := records[0]
	// Exports written on Windows carry a BOM on the first header cell.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(record) {
				row[key] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseList splits a quoted comma-separated cell into trimmed items.
func parseList(s string) []string {
	s = strings.Trim(s, `"`)
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
