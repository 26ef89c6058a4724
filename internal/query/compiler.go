package query

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/spigell/prospector/internal/criteria"
	"github.com/spigell/prospector/internal/normalize"
)

// Provider record fields referenced by compiled queries.
const (
	FieldJobTitle        = "job_title"
	FieldJobTitleLevels  = "job_title_levels"
	FieldJobTitleRole    = "job_title_role"
	FieldCompanySize     = "job_company_size"
	FieldCompanyIndustry = "job_company_industry"
	FieldCountry         = "location_country"
	FieldRegion          = "location_region"
	FieldMetro           = "location_metro"
	FieldLocality        = "location_locality"
	FieldSkills          = "skills"
)

// RoleHumanResources is the department excluded from engineering searches.
const RoleHumanResources = "human_resources"

const (
	painPointMinLength = 4
	painPointMaxTokens = 5
)

var engineeringTitle = regexp.MustCompile(`(?i)\b(engineer|engineering|developer|software|devops|sre|programmer|architect|cto)\b`)

// Compiler turns criteria into a CompiledQuery using the normalization tables.
type Compiler struct {
	tables *normalize.Tables
}

// NewCompiler returns a compiler backed by tables, or by the default tables when nil.
func NewCompiler(tables *normalize.Tables) *Compiler {
	if tables == nil {
		tables = normalize.Default()
	}
	return &Compiler{tables: tables}
}

// Compile is a pure function of c and the tables. It never fails: a criterion
// left blank adds no clause.
func (cp *Compiler) Compile(c *criteria.OutreachCriteria) CompiledQuery {
	var q CompiledQuery
	if c == nil {
		return q
	}

	cp.title(&q, c)
	cp.seniority(&q, c)
	cp.functionExclusion(&q, c)
	cp.companySize(&q, c)
	cp.geography(&q, c)
	cp.skills(&q, c)
	cp.industry(&q, c)
	cp.painPoint(&q, c)

	if len(q.Should) > 0 {
		q.MinimumShouldMatch = 1
	}

	return q
}

// title adds a mandatory match-any group over the title and its synonyms.
func (cp *Compiler) title(q *CompiledQuery, c *criteria.OutreachCriteria) {
	type phrase struct {
		text   string
		weight float64
	}

	var phrases []phrase
	seen := map[string]struct{}{}
	add := func(text string, weight float64) {
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			return
		}
		if _, ok := seen[text]; ok {
			return
		}
		seen[text] = struct{}{}
		phrases = append(phrases, phrase{text: text, weight: weight})
	}

	base := strings.TrimSpace(c.NormalizedTitle)
	add(base, normalize.DefaultTitleWeight)
	for _, variant := range c.TitleVariants {
		add(variant, normalize.DefaultTitleWeight)
	}

	if len(phrases) == 0 {
		base = c.Title()
		add(base, normalize.DefaultTitleWeight)
	}

	if len(c.TitleVariants) == 0 {
		for _, variant := range cp.tables.TitleVariants(base) {
			add(variant.Phrase, variant.Weight)
		}
	}

	if len(phrases) == 0 {
		return
	}

	group := make([]Clause, 0, len(phrases))
	for _, p := range phrases {
		group = append(group, MatchPhrase(FieldJobTitle, p.text, p.weight))
	}
	q.Must = append(q.Must, AnyOf(group...))
}

func (cp *Compiler) geography(q *CompiledQuery, c *criteria.OutreachCriteria) {
	location := strings.TrimSpace(c.Location)
	if location == "" || normalize.IsRemote(location) {
		return
	}

	loc, _ := cp.tables.Location(location)
	if loc.IsZero() {
		return
	}
	if loc.Country != "" {
		q.Filter = append(q.Filter, Term(FieldCountry, loc.Country))
	}
	if loc.Region != "" {
		q.Filter = append(q.Filter, Term(FieldRegion, loc.Region))
	}
	if loc.Metro != "" {
		q.Should = append(q.Should, Match(FieldMetro, loc.Metro))
	}
	if loc.City != "" {
		q.Should = append(q.Should, Match(FieldLocality, loc.City))
	}
}

func (cp *Compiler) seniority(q *CompiledQuery, c *criteria.OutreachCriteria) {
	if level := strings.TrimSpace(c.ExperienceLevel); level != "" {
		if tags, ok := cp.tables.Seniority(level); ok {
			q.Filter = append(q.Filter, Terms(FieldJobTitleLevels, tags...))
			return
		}
	}

	if len(c.SeniorityLevels) > 0 {
		q.Filter = append(q.Filter, Terms(FieldJobTitleLevels, c.SeniorityLevels...))
		return
	}

	if normalize.IsLeadershipTitle(c.TargetTitle()) {
		q.Filter = append(q.Filter, Terms(FieldJobTitleLevels, normalize.LeadershipLevels...))
	}
}

func (cp *Compiler) functionExclusion(q *CompiledQuery, c *criteria.OutreachCriteria) {
	if engineeringTitle.MatchString(c.TargetTitle()) {
		q.MustNot = append(q.MustNot, Term(FieldJobTitleRole, RoleHumanResources))
	}
}

func (cp *Compiler) companySize(q *CompiledQuery, c *criteria.OutreachCriteria) {
	if normalize.ImpliesStartup(c.CompanySize) || normalize.ImpliesStartup(c.Industry) || normalize.ImpliesStartup(c.TargetTitle()) {
		if sizes := cp.tables.StartupSizes(); len(sizes) > 0 {
			q.Filter = append(q.Filter, Terms(FieldCompanySize, sizes...))
		}
		return
	}

	if sizes, ok := cp.tables.CompanySizes(c.CompanySize); ok && len(sizes) > 0 {
		q.Filter = append(q.Filter, Terms(FieldCompanySize, sizes...))
	}
}

func (cp *Compiler) skills(q *CompiledQuery, c *criteria.OutreachCriteria) {
	if !c.IsRecruiting() {
		return
	}
	for _, skill := range c.SkillTokens() {
		q.Should = append(q.Should, MatchPhrase(FieldSkills, skill, 0))
	}
}

func (cp *Compiler) industry(q *CompiledQuery, c *criteria.OutreachCriteria) {
	for _, industry := range cp.tables.Industries(c.Industry) {
		q.Should = append(q.Should, Match(FieldCompanyIndustry, industry))
	}
}

// painPoint adds weak industry matches for the first few significant words.
// There is no better field to match a pain point against.
func (cp *Compiler) painPoint(q *CompiledQuery, c *criteria.OutreachCriteria) {
	if !c.IsSales() {
		return
	}
	for _, token := range PainPointTokens(c.PainPoint) {
		q.Should = append(q.Should, Match(FieldCompanyIndustry, token))
	}
}

// PainPointTokens returns up to five whitespace-separated words longer than
// three characters, lower-cased and stripped of surrounding punctuation. The
// length is measured on the word as written.
func PainPointTokens(text string) []string {
	var tokens []string
	for _, word := range strings.Fields(text) {
		if len([]rune(word)) < painPointMinLength {
			continue
		}
		word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}))
		if word == "" {
			continue
		}
		tokens = append(tokens, word)
		if len(tokens) == painPointMaxTokens {
			break
		}
	}
	return tokens
}
