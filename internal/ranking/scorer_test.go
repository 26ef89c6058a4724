package ranking

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/prospector/internal/criteria"
	"github.com/spigell/prospector/internal/pdl"
)

func recruiting(title string) *criteria.OutreachCriteria {
	return &criteria.OutreachCriteria{OutreachType: criteria.Recruiting, RoleTitle: title}
}

func TestTitleSimilarity(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		target string
		want   float64
	}{
		{name: "equal ignoring case", title: "VP of Engineering", target: "vp of engineering", want: 1},
		{name: "containment", title: "Senior VP of Engineering", target: "VP of Engineering", want: 0.8},
		{name: "reverse containment", title: "CTO", target: "CTO and Co-Founder", want: 0.8},
		{name: "word overlap", title: "Director of Engineering", target: "VP of Engineering", want: 2.0 / 3.0},
		{name: "longer title decides", title: "Head of Platform Engineering", target: "VP Engineering", want: 1.0 / 4.0},
		{name: "nothing shared", title: "Accountant", target: "CTO", want: 0},
		{name: "empty record title", title: "", target: "CTO", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TitleSimilarity(tt.title, tt.target), 1e-9)
		})
	}
}

func TestScoreTitleOverlapScenario(t *testing.T) {
	s := NewScorer(nil)
	score := s.Score(&pdl.Person{JobTitle: "Director of Engineering"}, recruiting("VP of Engineering"))
	assert.InDelta(t, 26.67, score, 0.01)
}

func TestSkillsMatch(t *testing.T) {
	assert.InDelta(t, 1.0, SkillsMatch([]string{"Golang", "Kubernetes"}, []string{"go", "kubernetes"}), 1e-9)
	assert.InDelta(t, 0.5, SkillsMatch([]string{"python"}, []string{"python", "rust"}), 1e-9)
	// A skill contained in the token counts as well.
	assert.InDelta(t, 1.0, SkillsMatch([]string{"react"}, []string{"react native"}), 1e-9)
	assert.Zero(t, SkillsMatch(nil, []string{"go"}))
	assert.Zero(t, SkillsMatch([]string{"go"}, nil))
}

func TestSkillsOnlyForRecruiting(t *testing.T) {
	s := NewScorer(nil)
	person := &pdl.Person{Skills: []string{"go", "postgres"}}

	c := &criteria.OutreachCriteria{OutreachType: criteria.Recruiting, Skills: "Go, Postgres"}
	assert.InDelta(t, SkillsWeight, s.Score(person, c), 1e-9)

	c.OutreachType = criteria.Sales
	assert.Zero(t, s.Score(person, c))
}

func TestSizeMatch(t *testing.T) {
	assert.Equal(t, 1.0, SizeMatch("51-200", "51-200"))
	assert.Equal(t, 1.0, SizeMatch("1001-5000", "1001"))
	assert.Equal(t, 0.0, SizeMatch("11-50", "51-200"))
	assert.Equal(t, 0.0, SizeMatch("", "51-200"))
}

func TestIndustryMatch(t *testing.T) {
	s := NewScorer(nil)

	assert.Equal(t, 1.0, s.IndustryMatch("Computer Software", "software"))
	assert.Equal(t, 1.0, s.IndustryMatch("banking", "online banking"))
	assert.Equal(t, 0.8, s.IndustryMatch("financial services", "fintech"))
	assert.Equal(t, 0.0, s.IndustryMatch("farming", "fintech"))
	assert.Equal(t, 0.0, s.IndustryMatch("internet", "fintech"))
	assert.Equal(t, 0.8, s.IndustryMatch("computer software", "fintech"))
	assert.Equal(t, 0.0, s.IndustryMatch("", "fintech"))
}

func TestAbsentCriteriaContributeNothing(t *testing.T) {
	s := NewScorer(nil)
	person := &pdl.Person{
		JobTitle:        "CTO",
		CompanySize:     "11-50",
		CompanyIndustry: "computer software",
		Skills:          []string{"go"},
	}

	assert.Zero(t, s.Score(person, &criteria.OutreachCriteria{OutreachType: criteria.Recruiting}))
	assert.InDelta(t, TitleWeight, s.Score(person, recruiting("CTO")), 1e-9)

	full := recruiting("CTO")
	full.Skills = "go"
	full.CompanySize = "11-50"
	full.Industry = "software"
	assert.InDelta(t, MaxScore, s.Score(person, full), 1e-9)
}

func TestScoreBounds(t *testing.T) {
	s := NewScorer(nil)
	people := []*pdl.Person{
		{},
		{JobTitle: "VP of Engineering", Skills: []string{"go", "go", "go"}, CompanySize: "51-200", CompanyIndustry: "computer software"},
		{JobTitle: "engineering", Skills: []string{"g"}, CompanySize: "51-200 51-200", CompanyIndustry: "software software"},
	}
	crit := []*criteria.OutreachCriteria{
		{},
		recruiting("VP of Engineering"),
		{OutreachType: criteria.Recruiting, RoleTitle: "VP of Engineering", Skills: "go and go", CompanySize: "51-200", Industry: "software"},
		{OutreachType: criteria.Sales, BuyerTitle: "Head of Sales", Industry: "saas", CompanySize: "startup"},
	}

	for _, p := range people {
		for _, c := range crit {
			score := s.Score(p, c)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, MaxScore)
		}
	}

	assert.Zero(t, s.Score(nil, recruiting("CTO")))
	assert.Zero(t, s.Score(&pdl.Person{JobTitle: "CTO"}, nil))
}

func TestRankIsStableAndDescending(t *testing.T) {
	s := NewScorer(nil)
	people := []*pdl.Person{
		{ID: "a", FullName: "A", JobTitle: "Accountant", Emails: []string{"a@x.io"}},
		{ID: "b", FullName: "B", JobTitle: "Director of Engineering", Emails: []string{"b@x.io"}},
		{ID: "c", FullName: "C", JobTitle: "Painter", Emails: []string{"c@x.io"}},
		{ID: "d", FullName: "D", JobTitle: "VP of Engineering", Emails: []string{"d@x.io"}},
		{ID: "e", FullName: "E", JobTitle: "Director of Engineering", Emails: []string{"e@x.io"}},
	}

	ranked := s.Rank(people, recruiting("VP of Engineering"))
	require.Equal(t, 5, ranked.Len())

	var ids []string
	for _, c := range ranked {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"d", "b", "e", "a", "c"}, ids)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].RelevanceScore, ranked[i].RelevanceScore)
	}
}

func TestNewCandidate(t *testing.T) {
	c := NewCandidate(&pdl.Person{
		ID:              "p1",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		JobTitle:        "CTO",
		CompanyName:     "Engines",
		LinkedinURL:     "linkedin.com/in/ada",
		LocationName:    "London",
		YearsExperience: 12,
		Emails:          []string{"nope", "ada@engines.io"},
	}, 42)

	assert.Equal(t, "Ada Lovelace", c.Name)
	assert.Equal(t, "ada@engines.io", c.Email)
	assert.Equal(t, "https://linkedin.com/in/ada", c.ProfileURL)
	assert.Equal(t, "London", c.Location)
	assert.Equal(t, 12, c.ExperienceYears)
	assert.Equal(t, 42.0, c.RelevanceScore)
}

func TestCandidatesDumpAndExclude(t *testing.T) {
	candidates := Candidates{
		{ID: "1", Name: "One", Email: "one@x.io", Company: "X"},
		{ID: "2", Name: "Two", Email: "two@y.io"},
	}

	path, err := candidates.DumpToTmpFile()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Candidates
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, candidates, decoded)

	excluded := candidates.ToExcluded()
	assert.Equal(t, []string{"one@x.io", "two@y.io"}, excluded.Emails())
	assert.Equal(t, []string{"1", "2"}, excluded.IDs())

	report := candidates.ReportByCompany()
	assert.Len(t, report["X"], 1)
	assert.Len(t, report["unknown"], 1)
}
