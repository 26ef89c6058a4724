// Package ranking scores parsed people against the criteria and orders them.
package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/spigell/prospector/internal/criteria"
	"github.com/spigell/prospector/internal/normalize"
	"github.com/spigell/prospector/internal/pdl"
)

const (
	TitleWeight    = 40.0
	SkillsWeight   = 30.0
	SizeWeight     = 15.0
	IndustryWeight = 15.0

	MaxScore = 100.0

	containmentSimilarity = 0.8
	mappedIndustryMatch   = 0.8
)

// Scorer computes the relevance of a person for a set of criteria.
type Scorer struct {
	tables *normalize.Tables
}

// NewScorer builds a scorer over tables; nil means normalize.Default().
func NewScorer(tables *normalize.Tables) *Scorer {
	if tables == nil {
		tables = normalize.Default()
	}
	return &Scorer{tables: tables}
}

// Score returns a relevance score in [0, 100]. A factor whose criterion is
// absent adds nothing, so the reachable maximum shrinks with it.
func (s *Scorer) Score(p *pdl.Person, c *criteria.OutreachCriteria) float64 {
	if p == nil || c == nil {
		return 0
	}

	var score float64
	if target := c.TargetTitle(); target != "" {
		score += TitleWeight * TitleSimilarity(p.JobTitle, target)
	}
	if c.IsRecruiting() {
		if tokens := c.SkillTokens(); len(tokens) > 0 {
			score += SkillsWeight * SkillsMatch(p.Skills, tokens)
		}
	}
	if target := strings.TrimSpace(c.CompanySize); target != "" {
		score += SizeWeight * SizeMatch(p.CompanySize, target)
	}
	if target := strings.TrimSpace(c.Industry); target != "" {
		score += IndustryWeight * s.IndustryMatch(p.CompanyIndustry, target)
	}

	return math.Max(0, math.Min(MaxScore, score))
}

// Rank scores every person and sorts the candidates by descending score.
// Ties keep the input order.
func (s *Scorer) Rank(people []*pdl.Person, c *criteria.OutreachCriteria) Candidates {
	candidates := make(Candidates, 0, len(people))
	for _, p := range people {
		candidates = append(candidates, NewCandidate(p, s.Score(p, c)))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RelevanceScore > candidates[j].RelevanceScore
	})

	return candidates
}

// TitleSimilarity is 1 for equal titles, 0.8 when one contains the other,
// otherwise the shared word count over the longer title's word count.
func TitleSimilarity(title, target string) float64 {
	a := strings.ToLower(strings.TrimSpace(title))
	b := strings.ToLower(strings.TrimSpace(target))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return containmentSimilarity
	}

	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)

	set := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		set[w] = struct{}{}
	}

	shared := 0
	counted := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		if _, ok := set[w]; !ok {
			continue
		}
		if _, ok := counted[w]; ok {
			continue
		}
		counted[w] = struct{}{}
		shared++
	}

	longer := len(wordsA)
	if len(wordsB) > longer {
		longer = len(wordsB)
	}
	return float64(shared) / float64(longer)
}

// SkillsMatch is the fraction of target tokens matched by at least one of the
// person's skills, substring either way.
func SkillsMatch(skills []string, tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}

	normalized := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.ToLower(strings.TrimSpace(skill)); skill != "" {
			normalized = append(normalized, skill)
		}
	}

	matched := 0
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		for _, skill := range normalized {
			if strings.Contains(skill, token) || strings.Contains(token, skill) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(tokens))
}

// SizeMatch is 1 when the person's company size contains the target size.
func SizeMatch(size, target string) float64 {
	size = strings.ToLower(strings.TrimSpace(size))
	target = strings.ToLower(strings.TrimSpace(target))
	if size == "" || target == "" {
		return 0
	}
	if strings.Contains(size, target) {
		return 1
	}
	return 0
}

// IndustryMatch is 1 when either industry contains the other, 0.8 when one of
// the target's mapped industries is part of the person's industry. The generic
// tech industries used to broaden the query do not count here.
func (s *Scorer) IndustryMatch(industry, target string) float64 {
	industry = strings.ToLower(strings.TrimSpace(industry))
	target = strings.ToLower(strings.TrimSpace(target))
	if industry == "" || target == "" {
		return 0
	}
	if strings.Contains(industry, target) || strings.Contains(target, industry) {
		return 1
	}
	for _, canonical := range s.tables.MappedIndustries(target) {
		if canonical != "" && strings.Contains(industry, canonical) {
			return mappedIndustryMatch
		}
	}
	return 0
}
