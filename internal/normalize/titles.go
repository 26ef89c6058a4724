package normalize

import (
	"slices"
	"strings"
)

// DefaultTitleWeight is the weight of a title phrase that has no table entry.
const DefaultTitleWeight = 1.0

// TitleVariant is a realistic synonym or adjacent title with its relative weight.
type TitleVariant struct {
	Phrase string
	Weight float64
}

// TitleVariants returns the expansion of a title. Titles missing from the table
// expand to themselves at DefaultTitleWeight, so an unknown title never fails.
func (t *Tables) TitleVariants(title string) []TitleVariant {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil
	}

	if variants, ok := t.titles[normalizeKey(trimmed)]; ok {
		return slices.Clone(variants)
	}

	return []TitleVariant{{Phrase: strings.ToLower(trimmed), Weight: DefaultTitleWeight}}
}

var defaultTitles = map[string][]TitleVariant{
	"vp of engineering": {
		{"vp of engineering", 1.0},
		{"vice president of engineering", 1.0},
		{"vp engineering", 1.0},
		{"head of engineering", 0.9},
		{"svp engineering", 0.8},
		{"senior director of engineering", 0.7},
	},
	"head of engineering": {
		{"head of engineering", 1.0},
		{"vp of engineering", 0.9},
		{"engineering director", 0.8},
		{"director of engineering", 0.8},
	},
	"director of engineering": {
		{"director of engineering", 1.0},
		{"engineering director", 1.0},
		{"head of engineering", 0.8},
		{"senior engineering manager", 0.6},
	},
	"engineering manager": {
		{"engineering manager", 1.0},
		{"software engineering manager", 1.0},
		{"manager, software engineering", 0.9},
		{"tech lead manager", 0.7},
	},
	"cto": {
		{"cto", 1.0},
		{"chief technology officer", 1.0},
		{"co-founder & cto", 0.9},
		{"vp of engineering", 0.6},
	},
	"chief technology officer": {
		{"chief technology officer", 1.0},
		{"cto", 1.0},
		{"vp of engineering", 0.6},
	},
	"software engineer": {
		{"software engineer", 1.0},
		{"software developer", 0.9},
		{"backend engineer", 0.8},
		{"full stack engineer", 0.8},
		{"senior software engineer", 0.8},
	},
	"senior software engineer": {
		{"senior software engineer", 1.0},
		{"senior software developer", 0.9},
		{"staff software engineer", 0.8},
		{"senior backend engineer", 0.8},
	},
	"backend engineer": {
		{"backend engineer", 1.0},
		{"back end engineer", 1.0},
		{"backend developer", 0.9},
		{"server engineer", 0.7},
	},
	"frontend engineer": {
		{"frontend engineer", 1.0},
		{"front end engineer", 1.0},
		{"frontend developer", 0.9},
		{"ui engineer", 0.7},
	},
	"full stack engineer": {
		{"full stack engineer", 1.0},
		{"fullstack engineer", 1.0},
		{"full stack developer", 0.9},
	},
	"devops engineer": {
		{"devops engineer", 1.0},
		{"site reliability engineer", 0.9},
		{"platform engineer", 0.8},
		{"infrastructure engineer", 0.8},
	},
	"data scientist": {
		{"data scientist", 1.0},
		{"machine learning scientist", 0.8},
		{"applied scientist", 0.8},
		{"data analyst", 0.5},
	},
	"machine learning engineer": {
		{"machine learning engineer", 1.0},
		{"ml engineer", 1.0},
		{"ai engineer", 0.9},
		{"applied scientist", 0.7},
	},
	"product manager": {
		{"product manager", 1.0},
		{"senior product manager", 0.9},
		{"product owner", 0.7},
		{"technical product manager", 0.8},
	},
	"product designer": {
		{"product designer", 1.0},
		{"ux designer", 0.9},
		{"ui/ux designer", 0.8},
	},
	"head of sales": {
		{"head of sales", 1.0},
		{"vp of sales", 0.9},
		{"sales director", 0.8},
		{"chief revenue officer", 0.7},
	},
	"vp of sales": {
		{"vp of sales", 1.0},
		{"vice president of sales", 1.0},
		{"vp sales", 1.0},
		{"head of sales", 0.9},
		{"chief revenue officer", 0.7},
	},
	"account executive": {
		{"account executive", 1.0},
		{"enterprise account executive", 0.9},
		{"sales executive", 0.8},
		{"account manager", 0.6},
	},
	"sales development representative": {
		{"sales development representative", 1.0},
		{"sdr", 1.0},
		{"business development representative", 0.9},
	},
	"head of marketing": {
		{"head of marketing", 1.0},
		{"vp of marketing", 0.9},
		{"marketing director", 0.8},
		{"cmo", 0.7},
	},
	"vp of marketing": {
		{"vp of marketing", 1.0},
		{"vice president of marketing", 1.0},
		{"head of marketing", 0.9},
		{"cmo", 0.7},
	},
	"cmo": {
		{"cmo", 1.0},
		{"chief marketing officer", 1.0},
		{"vp of marketing", 0.6},
	},
	"ceo": {
		{"ceo", 1.0},
		{"chief executive officer", 1.0},
		{"founder", 0.8},
		{"co-founder", 0.8},
	},
	"founder": {
		{"founder", 1.0},
		{"co-founder", 1.0},
		{"ceo", 0.8},
	},
	"cfo": {
		{"cfo", 1.0},
		{"chief financial officer", 1.0},
		{"vp of finance", 0.7},
	},
	"head of people": {
		{"head of people", 1.0},
		{"vp of people", 0.9},
		{"head of hr", 0.9},
		{"chief people officer", 0.8},
	},
	"recruiter": {
		{"recruiter", 1.0},
		{"technical recruiter", 0.9},
		{"talent acquisition partner", 0.9},
		{"talent acquisition specialist", 0.8},
	},
	"head of growth": {
		{"head of growth", 1.0},
		{"vp of growth", 0.9},
		{"growth lead", 0.8},
	},
}
