// Package query translates optional request criteria into MongoDB filter and
// projection documents.
package query

import (
	"encoding/json"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/isabelarvelo/careerhub/internal/model"
)

// Filter accumulates equality clauses into a conjunctive MongoDB filter.
// Absent or empty criteria are omitted rather than matched against the empty
// value.
type Filter struct {
	clauses bson.M
}

// NewFilter returns an empty filter.
func NewFilter() *Filter {
	return &Filter{clauses: bson.M{}}
}

// Eq adds an equality clause for field. Empty values are skipped.
func (f *Filter) Eq(field, value string) *Filter {
	if value != "" {
		f.clauses[field] = value
	}
	return f
}

// EqInt adds an equality clause for an integer-typed field, coercing the
// value from whatever shape JSON decoding produced. Nil and empty-string
// values are skipped; non-numeric values yield an InvalidError.
func (f *Filter) EqInt(field string, value any) error {
	if value == nil {
		return nil
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := ToInt64(value)
	if err != nil {
		return err
	}
	f.clauses[field] = n
	return nil
}

// Build returns the filter document. An empty filter matches everything.
func (f *Filter) Build() bson.M {
	return f.clauses
}

// ToInt64 coerces a decoded JSON value to an integer. Floats are truncated
// toward zero, matching the int() coercion of the original service.
func ToInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		if fl, err := v.Float64(); err == nil {
			return int64(fl), nil
		}
		return 0, model.Invalidf("invalid integer value: %s", v.String())
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, model.Invalidf("invalid integer value: %s", v)
		}
		return n, nil
	default:
		return 0, model.Invalidf("invalid integer value: %v", value)
	}
}

// ToFloat64 coerces a decoded JSON value to a float.
func ToFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		fl, err := v.Float64()
		if err != nil {
			return 0, model.Invalidf("invalid number value: %s", v.String())
		}
		return fl, nil
	case string:
		fl, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, model.Invalidf("invalid number value: %s", v)
		}
		return fl, nil
	default:
		return 0, model.Invalidf("invalid number value: %v", value)
	}
}
