// Package criteria defines the structured description of who an outreach
// search is looking for.
package criteria

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// OutreachType selects which title field is meaningful.
type OutreachType string

const (
	Recruiting OutreachType = "recruiting"
	Sales      OutreachType = "sales"
)

// OutreachCriteria is the input of a single search. It is treated as immutable.
type OutreachCriteria struct {
	OutreachType    OutreachType `yaml:"outreach_type" mapstructure:"outreach_type" json:"outreach_type" validate:"required,oneof=recruiting sales"`
	RoleTitle       string       `yaml:"role_title" mapstructure:"role_title" json:"role_title,omitempty"`
	BuyerTitle      string       `yaml:"buyer_title" mapstructure:"buyer_title" json:"buyer_title,omitempty"`
	NormalizedTitle string       `yaml:"normalized_title" mapstructure:"normalized_title" json:"normalized_title,omitempty"`
	TitleVariants   []string     `yaml:"title_variants" mapstructure:"title_variants" json:"title_variants,omitempty"`
	SeniorityLevels []string     `yaml:"seniority_levels" mapstructure:"seniority_levels" json:"seniority_levels,omitempty" validate:"dive,oneof=entry training senior manager director vp cxo owner partner"`
	Skills          string       `yaml:"skills" mapstructure:"skills" json:"skills,omitempty"`
	PainPoint       string       `yaml:"pain_point" mapstructure:"pain_point" json:"pain_point,omitempty"`
	ExperienceLevel string       `yaml:"experience_level" mapstructure:"experience_level" json:"experience_level,omitempty"`
	CompanySize     string       `yaml:"company_size" mapstructure:"company_size" json:"company_size,omitempty"`
	Industry        string       `yaml:"industry" mapstructure:"industry" json:"industry,omitempty"`
	Location        string       `yaml:"location" mapstructure:"location" json:"location,omitempty"`
}

// ErrNoTitle is returned by Validate when no title is set for the outreach type.
var ErrNoTitle = errors.New("a target title is required")

var validate = validator.New()

// Validate checks the criteria at the boundary of the system. The query
// compiler accepts anything, so this is the only place where bad input is rejected.
func (c *OutreachCriteria) Validate() error {
	if c == nil {
		return errors.New("criteria are required")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid criteria: %w", err)
	}
	if strings.TrimSpace(c.Title()) == "" && strings.TrimSpace(c.NormalizedTitle) == "" {
		field := "role_title"
		if c.OutreachType == Sales {
			field = "buyer_title"
		}
		return fmt.Errorf("%w: set %s", ErrNoTitle, field)
	}
	return nil
}

// Title returns the title that is meaningful for the outreach type.
func (c *OutreachCriteria) Title() string {
	if c.OutreachType == Sales {
		return strings.TrimSpace(c.BuyerTitle)
	}
	return strings.TrimSpace(c.RoleTitle)
}

// TargetTitle is the title used for comparisons: the outreach title, falling
// back to the normalized title.
func (c *OutreachCriteria) TargetTitle() string {
	if title := c.Title(); title != "" {
		return title
	}
	return strings.TrimSpace(c.NormalizedTitle)
}

// IsRecruiting reports whether skills are meaningful.
func (c *OutreachCriteria) IsRecruiting() bool {
	return c.OutreachType == Recruiting
}

// IsSales reports whether the pain point is meaningful.
func (c *OutreachCriteria) IsSales() bool {
	return c.OutreachType == Sales
}

var skillSeparator = regexp.MustCompile(`(?i)\s*(?:,|&|\band\b)\s*`)

// SkillTokens splits the skills text on commas, ampersands and the word "and",
// returning trimmed, lower-cased, non-empty and unique tokens in input order.
func (c *OutreachCriteria) SkillTokens() []string {
	return SplitSkills(c.Skills)
}

// SplitSkills is SkillTokens for arbitrary text.
func SplitSkills(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var tokens []string
	for _, part := range skillSeparator.Split(text, -1) {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}

// Clone returns a deep copy, so enrichment never touches the caller's value.
func (c *OutreachCriteria) Clone() OutreachCriteria {
	out := *c
	out.TitleVariants = append([]string(nil), c.TitleVariants...)
	out.SeniorityLevels = append([]string(nil), c.SeniorityLevels...)
	return out
}

// LoadFile reads criteria from a YAML file.
func LoadFile(path string) (*OutreachCriteria, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading criteria file %q: %w", path, err)
	}

	var c OutreachCriteria
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing criteria file %q: %w", path, err)
	}

	c.OutreachType = OutreachType(strings.ToLower(strings.TrimSpace(string(c.OutreachType))))

	return &c, nil
}
