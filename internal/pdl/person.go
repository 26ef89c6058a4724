package pdl

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

// dottedDomainRe requires a dot in the domain part, which the email tag does not.
var dottedDomainRe = regexp.MustCompile(`@[^\s@.]+(\.[^\s@.]+)+$`)

// ValidEmail reports whether s is a syntactically valid local@domain.tld address.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || !dottedDomainRe.MatchString(s) {
		return false
	}
	return validate.Var(s, "required,email") == nil
}

// Person is a raw provider hit narrowed to the fields this project reads.
// Every field is optional; absence is meaningful, never an error.
type Person struct {
	ID              string   `mapstructure:"id" json:"id,omitempty"`
	FullName        string   `mapstructure:"full_name" json:"full_name,omitempty"`
	FirstName       string   `mapstructure:"first_name" json:"first_name,omitempty"`
	LastName        string   `mapstructure:"last_name" json:"last_name,omitempty"`
	JobTitle        string   `mapstructure:"job_title" json:"job_title,omitempty"`
	CompanyName     string   `mapstructure:"job_company_name" json:"job_company_name,omitempty"`
	CompanySize     string   `mapstructure:"job_company_size" json:"job_company_size,omitempty"`
	CompanyIndustry string   `mapstructure:"job_company_industry" json:"job_company_industry,omitempty"`
	LocationName    string   `mapstructure:"location_name" json:"location_name,omitempty"`
	LinkedinURL     string   `mapstructure:"linkedin_url" json:"linkedin_url,omitempty"`
	Skills          []string `mapstructure:"skills" json:"skills,omitempty"`
	YearsExperience int      `mapstructure:"inferred_years_experience" json:"inferred_years_experience,omitempty"`

	// Emails are the contact email candidates in preference order.
	Emails []string `mapstructure:"-" json:"emails,omitempty"`
}

// rawContacts holds the email fields whose shape varies by plan and dataset.
type rawContacts struct {
	WorkEmail                any `mapstructure:"work_email"`
	Emails                   any `mapstructure:"emails"`
	RecommendedPersonalEmail any `mapstructure:"recommended_personal_email"`
	PersonalEmails           any `mapstructure:"personal_emails"`
}

// DisplayName is the full name, falling back to the first and last name when
// only a first name is known.
func (p *Person) DisplayName() string {
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	first := strings.TrimSpace(p.FirstName)
	if first == "" {
		return ""
	}
	return strings.TrimSpace(first + " " + strings.TrimSpace(p.LastName))
}

// ContactEmail is the first syntactically valid email candidate, or "".
func (p *Person) ContactEmail() string {
	for _, email := range p.Emails {
		if ValidEmail(email) {
			return strings.TrimSpace(email)
		}
	}
	return ""
}

// Location is the provider's display location.
func (p *Person) Location() string {
	return strings.TrimSpace(p.LocationName)
}

// DecodePerson decodes one raw hit.
func DecodePerson(raw map[string]any) (*Person, error) {
	var person Person
	if err := decode(raw, &person); err != nil {
		return nil, fmt.Errorf("decode person: %w", err)
	}

	var contacts rawContacts
	if err := decode(raw, &contacts); err != nil {
		return nil, fmt.Errorf("decode person contacts: %w", err)
	}
	person.Emails = contacts.candidates()

	return &person, nil
}

func decode(raw map[string]any, target any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(dropBoolStrings, dropNonStringItems),
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// dropBoolStrings turns boolean placeholders ("field exists but is hidden by
// the plan") into empty strings instead of "1"/"0".
func dropBoolStrings(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.Bool && to.Kind() == reflect.String {
		return "", nil
	}
	return data, nil
}

// dropNonStringItems keeps only string items when decoding into []string.
func dropNonStringItems(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
		return data, nil
	}
	items, ok := data.([]any)
	if !ok {
		if from.Kind() == reflect.Bool {
			return []string{}, nil
		}
		return data, nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r rawContacts) candidates() []string {
	var professional, other []string
	for _, item := range asList(r.Emails) {
		switch v := item.(type) {
		case string:
			other = append(other, v)
		case map[string]any:
			address := asString(v["address"])
			if strings.Contains(strings.ToLower(asString(v["type"])), "professional") {
				professional = append(professional, address)
			} else {
				other = append(other, address)
			}
		}
	}

	var out []string
	out = append(out, asString(r.WorkEmail))
	out = append(out, professional...)
	out = append(out, asString(r.RecommendedPersonalEmail))
	out = append(out, other...)
	for _, item := range asList(r.PersonalEmails) {
		out = append(out, asString(item))
	}

	seen := make(map[string]struct{}, len(out))
	emails := make([]string, 0, len(out))
	for _, email := range out {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		key := strings.ToLower(email)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		emails = append(emails, email)
	}
	return emails
}

func asList(v any) []any {
	switch list := v.(type) {
	case []any:
		return list
	case []string:
		out := make([]any, 0, len(list))
		for _, s := range list {
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
