package ranking

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/spigell/prospector/internal/filtering"
	"github.com/spigell/prospector/internal/pdl"
)

// Candidate is a ranked person ready for outreach. Email is always a valid
// address because the parser drops everyone else.
type Candidate struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Title           string   `json:"title,omitempty"`
	Company         string   `json:"company,omitempty"`
	CompanySize     string   `json:"company_size,omitempty"`
	CompanyIndustry string   `json:"company_industry,omitempty"`
	ProfileURL      string   `json:"profile_url,omitempty"`
	Location        string   `json:"location,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	ExperienceYears int      `json:"experience_years,omitempty"`
	RelevanceScore  float64  `json:"relevance_score"`
}

type Candidates []*Candidate

func NewCandidate(p *pdl.Person, score float64) *Candidate {
	return &Candidate{
		ID:              p.ID,
		Name:            p.DisplayName(),
		Email:           p.ContactEmail(),
		Title:           p.JobTitle,
		Company:         p.CompanyName,
		CompanySize:     p.CompanySize,
		CompanyIndustry: p.CompanyIndustry,
		ProfileURL:      profileURL(p.LinkedinURL),
		Location:        p.Location(),
		Skills:          append([]string(nil), p.Skills...),
		ExperienceYears: p.YearsExperience,
		RelevanceScore:  score,
	}
}

func (c Candidates) Len() int {
	return len(c)
}

func (c Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ToExcluded converts candidates into exclude file entries.
func (c Candidates) ToExcluded() *filtering.ExcludedPeople {
	excluded := &filtering.ExcludedPeople{}
	now := time.Now().UTC()
	for _, candidate := range c {
		excluded.Items = append(excluded.Items, &filtering.ExcludedPerson{
			ID:         candidate.ID,
			Name:       candidate.Name,
			Email:      candidate.Email,
			Company:    candidate.Company,
			ExcludedAt: now,
		})
	}
	return excluded
}

// ReportByCompany groups candidate names by company, for printing.
func (c Candidates) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, candidate := range c {
		company := candidate.Company
		if company == "" {
			company = "unknown"
		}
		report[company] = append(report[company], map[string]string{
			"name":  candidate.Name,
			"email": candidate.Email,
			"title": candidate.Title,
		})
	}
	return report
}

// profileURL adds a scheme to the provider's bare profile links.
func profileURL(link string) string {
	if link == "" {
		return ""
	}
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return "https://" + link
}
