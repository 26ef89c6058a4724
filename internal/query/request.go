package query

import (
	"strings"
)

// MaxSize is the provider's hard maximum of records per search call.
const MaxSize = 100

// DefaultDataInclude lists the record attributes requested from the provider.
var DefaultDataInclude = []string{
	"id",
	"full_name",
	"first_name",
	"last_name",
	"job_title",
	"job_company_name",
	"job_company_size",
	"job_company_industry",
	"location_name",
	"location_locality",
	"location_region",
	"location_country",
	"linkedin_url",
	"skills",
	"inferred_years_experience",
	"work_email",
	"emails",
	"personal_emails",
	"recommended_personal_email",
}

// Request is the JSON body sent to the person-search endpoint.
type Request struct {
	Query       CompiledQuery `json:"query"`
	Size        int           `json:"size"`
	DataInclude string        `json:"data_include,omitempty"`
}

// NewRequest builds a search body with size clamped to [1, MaxSize].
func NewRequest(q CompiledQuery, size int, fields []string) Request {
	return Request{
		Query:       q,
		Size:        ClampSize(size),
		DataInclude: strings.Join(fields, ","),
	}
}

// ClampSize clamps a requested result count to what one call may return.
func ClampSize(size int) int {
	if size < 1 {
		return 1
	}
	if size > MaxSize {
		return MaxSize
	}
	return size
}
