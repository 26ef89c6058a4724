// Package normalize holds the read-only lookup tables that turn free-text outreach
// criteria into canonical values understood by the person-search provider.
//
// A *Tables value is built once at startup and never mutated afterwards, so it is
// safe to share between any number of concurrent searches.
package normalize

import (
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Canonical seniority tags used by the provider's job_title_levels field.
const (
	LevelEntry    = "entry"
	LevelTraining = "training"
	LevelSenior   = "senior"
	LevelManager  = "manager"
	LevelDirector = "director"
	LevelVP       = "vp"
	LevelCXO      = "cxo"
	LevelOwner    = "owner"
	LevelPartner  = "partner"
)

// Data is the raw content of the tables. It is copied by New, so the caller may
// reuse or modify it afterwards without affecting the built tables.
type Data struct {
	Locations    map[string]Location
	Seniority    map[string][]string
	CompanySizes map[string][]string
	Industries   map[string][]string
	Titles       map[string][]TitleVariant
}

// Tables is the immutable set of normalization tables.
type Tables struct {
	locations    map[string]Location
	locationKeys []string

	seniority     map[string][]string
	seniorityKeys []string

	sizes    map[string][]string
	sizeKeys []string

	industries    map[string][]string
	industryKeys  []string
	techIndustry  []string
	techMarkers   []string
	techWordMarks []string

	titles map[string][]TitleVariant
}

// New builds tables from the provided data. Keys are normalized to lower case.
func New(data Data) *Tables {
	t := &Tables{
		locations:     make(map[string]Location, len(data.Locations)),
		seniority:     copyLists(data.Seniority),
		sizes:         copyLists(data.CompanySizes),
		industries:    copyLists(data.Industries),
		titles:        make(map[string][]TitleVariant, len(data.Titles)),
		techIndustry:  slices.Clone(genericTechIndustries),
		techMarkers:   slices.Clone(techSubstrings),
		techWordMarks: slices.Clone(techWords),
	}

	for key, loc := range data.Locations {
		t.locations[normalizeKey(key)] = loc
	}
	for key, variants := range data.Titles {
		t.titles[normalizeKey(key)] = slices.Clone(variants)
	}

	t.locationKeys = scanOrder(t.locations)
	t.seniorityKeys = scanOrder(t.seniority)
	t.sizeKeys = scanOrder(t.sizes)
	t.industryKeys = scanOrder(t.industries)

	return t
}

// Default returns the built-in tables.
func Default() *Tables {
	return New(Data{
		Locations:    defaultLocations,
		Seniority:    defaultSeniority,
		CompanySizes: defaultCompanySizes,
		Industries:   defaultIndustries,
		Titles:       defaultTitles,
	})
}

func copyLists(src map[string][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for key, values := range src {
		dst[normalizeKey(key)] = slices.Clone(values)
	}
	return dst
}

// scanOrder returns the keys in the order used for containment scans: longest
// first so that "new york city" wins over "york", then alphabetically.
func scanOrder[V any](m map[string]V) []string {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	return keys
}

// scan returns the first key (in scan order) contained in text as a whole phrase.
func scan(text string, keys []string) (string, bool) {
	padded := pad(text)
	for _, key := range keys {
		if strings.Contains(padded, pad(key)) {
			return key, true
		}
	}
	return "", false
}

// scanAll returns every key contained in text as a whole phrase, in scan order.
func scanAll(text string, keys []string) []string {
	padded := pad(text)
	var found []string
	for _, key := range keys {
		if strings.Contains(padded, pad(key)) {
			found = append(found, key)
		}
	}
	return found
}

func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// pad lower-cases s, turns punctuation into spaces and surrounds the result with
// single spaces, so that phrase containment only matches on word boundaries.
func pad(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return " " + strings.Join(strings.Fields(mapped), " ") + " "
}

// ContainsWord reports whether text contains word (or a multi-word phrase) on word boundaries.
func ContainsWord(text, word string) bool {
	if strings.TrimSpace(word) == "" {
		return false
	}
	return strings.Contains(pad(text), pad(word))
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
