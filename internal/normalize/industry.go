package normalize

import "strings"

var (
	// genericTechIndustries broaden any tech-flavored industry so a narrow
	// canonical mapping does not filter everything out.
	genericTechIndustries = []string{
		"computer software",
		"information technology and services",
		"internet",
	}
	techSubstrings = []string{"tech", "software", "saas", "cloud", "cyber", "data", "digital"}
	techWords      = []string{"ai", "ml", "it"}
)

// Industries maps an umbrella industry term to canonical provider industries.
// Unknown terms fall back to the literal lower-cased term, except the bare
// token "ai", which would match far too broadly.
func (t *Tables) Industries(term string) []string {
	key := normalizeKey(term)
	if key == "" {
		return nil
	}

	out := t.mappedIndustries(key)
	if t.isTechAdjacent(key) {
		out = append(out, t.techIndustry...)
	}

	return dedupe(out)
}

// MappedIndustries is Industries without the generic tech broadening.
func (t *Tables) MappedIndustries(term string) []string {
	key := normalizeKey(term)
	if key == "" {
		return nil
	}
	return dedupe(t.mappedIndustries(key))
}

func (t *Tables) mappedIndustries(key string) []string {
	var out []string
	if values, ok := t.industries[key]; ok {
		return append(out, values...)
	}
	for _, match := range scanAll(key, t.industryKeys) {
		out = append(out, t.industries[match]...)
	}
	if len(out) == 0 && key != "ai" {
		out = append(out, key)
	}
	return out
}

func (t *Tables) isTechAdjacent(term string) bool {
	for _, marker := range t.techMarkers {
		if strings.Contains(term, marker) {
			return true
		}
	}
	for _, word := range t.techWordMarks {
		if ContainsWord(term, word) {
			return true
		}
	}
	return false
}

var defaultIndustries = map[string][]string{
	"saas":                    {"computer software", "internet"},
	"software":                {"computer software"},
	"fintech":                 {"financial services", "banking", "computer software"},
	"finance":                 {"financial services", "banking", "investment management"},
	"banking":                 {"banking", "financial services"},
	"insurtech":               {"insurance", "computer software"},
	"insurance":               {"insurance"},
	"artificial intelligence": {"computer software", "research"},
	"machine learning":        {"computer software", "research"},
	"healthtech":              {"hospital & health care", "health, wellness and fitness", "computer software"},
	"healthcare":              {"hospital & health care", "medical devices"},
	"biotech":                 {"biotechnology", "pharmaceuticals"},
	"pharma":                  {"pharmaceuticals"},
	"edtech":                  {"e-learning", "education management"},
	"education":               {"education management", "higher education"},
	"ecommerce":               {"internet", "retail", "consumer goods"},
	"e commerce":              {"internet", "retail", "consumer goods"},
	"retail":                  {"retail", "consumer goods"},
	"cybersecurity":           {"computer & network security"},
	"security":                {"computer & network security", "security and investigations"},
	"crypto":                  {"financial services", "internet", "computer software"},
	"web3":                    {"financial services", "internet", "computer software"},
	"blockchain":              {"financial services", "computer software"},
	"gaming":                  {"computer games"},
	"marketing":               {"marketing and advertising"},
	"adtech":                  {"marketing and advertising", "computer software"},
	"media":                   {"media production", "online media", "broadcast media"},
	"real estate":             {"real estate", "commercial real estate"},
	"proptech":                {"real estate", "computer software"},
	"logistics":               {"logistics and supply chain", "transportation/trucking/railroad"},
	"hardware":                {"computer hardware", "semiconductors"},
	"semiconductors":          {"semiconductors"},
	"telecom":                 {"telecommunications"},
	"consulting":              {"management consulting", "information technology and services"},
	"legal":                   {"law practice", "legal services"},
	"manufacturing":           {"mechanical or industrial engineering", "industrial automation"},
	"energy":                  {"oil & energy", "renewables & environment"},
	"climate":                 {"renewables & environment"},
}
