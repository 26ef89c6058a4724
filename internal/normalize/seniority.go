package normalize

import (
	"slices"
	"strings"
)

// Seniority maps a free-text experience level to canonical level tags.
// Unknown levels return false; the caller must not invent a default.
func (t *Tables) Seniority(level string) ([]string, bool) {
	key := normalizeKey(level)
	if key == "" {
		return nil, false
	}

	if tags, ok := t.seniority[key]; ok {
		return slices.Clone(tags), true
	}

	if match, ok := scan(key, t.seniorityKeys); ok {
		return slices.Clone(t.seniority[match]), true
	}

	return nil, false
}

// Markers match whole words. Prefixed VP ranks are listed on their own.
var leadershipMarkers = []string{"vp", "svp", "evp", "avp", "chief", "director", "head", "vice president"}

// LeadershipLevels is the level set inferred for leadership titles.
var LeadershipLevels = []string{LevelDirector, LevelVP, LevelCXO, LevelManager}

// IsLeadershipTitle reports whether a title contains a leadership marker word.
func IsLeadershipTitle(title string) bool {
	if strings.TrimSpace(title) == "" {
		return false
	}
	for _, marker := range leadershipMarkers {
		if ContainsWord(title, marker) {
			return true
		}
	}
	return false
}

var defaultSeniority = map[string][]string{
	"intern":         {LevelTraining},
	"internship":     {LevelTraining},
	"trainee":        {LevelTraining},
	"entry":          {LevelEntry, LevelTraining},
	"entry level":    {LevelEntry, LevelTraining},
	"junior":         {LevelEntry},
	"associate":      {LevelEntry},
	"mid":            {LevelSenior},
	"mid level":      {LevelSenior},
	"senior":         {LevelSenior},
	"staff":          {LevelSenior},
	"principal":      {LevelSenior, LevelDirector},
	"lead":           {LevelSenior, LevelManager},
	"manager":        {LevelManager},
	"management":     {LevelManager, LevelDirector},
	"director":       {LevelDirector},
	"head":           {LevelDirector, LevelVP},
	"vp":             {LevelVP},
	"vice president": {LevelVP},
	"executive":      {LevelVP, LevelCXO},
	"c level":        {LevelCXO},
	"c suite":        {LevelCXO},
	"cxo":            {LevelCXO},
	"founder":        {LevelCXO, LevelOwner},
	"owner":          {LevelOwner},
	"partner":        {LevelPartner},
}
