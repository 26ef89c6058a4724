package normalize

import "strings"

// Location is the canonical geography for a free-text place.
// Empty fields are unknown.
type Location struct {
	City    string
	Region  string
	Country string
	Metro   string
}

// IsZero reports whether no part of the location is known.
func (l Location) IsZero() bool {
	return l == Location{}
}

var remoteMarkers = []string{"remote", "global", "anywhere"}

// IsRemote reports whether the location means "no geographic restriction".
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	for _, marker := range remoteMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Location resolves free text to a canonical location. The boolean is true when
// the table recognized the input; otherwise the trimmed input is returned as a
// literal city name.
func (t *Tables) Location(input string) (Location, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Location{}, false
	}

	if loc, ok := t.locations[normalizeKey(trimmed)]; ok {
		return loc, true
	}

	if key, ok := scan(trimmed, t.locationKeys); ok {
		return t.locations[key], true
	}

	return Location{City: trimmed}, false
}

const (
	unitedStates  = "United States"
	california    = "California"
	bayArea       = "San Francisco Bay Area"
	newYorkMetro  = "New York City Metropolitan Area"
	unitedKingdom = "United Kingdom"
)

var defaultLocations = map[string]Location{
	"san francisco": {City: "San Francisco", Region: california, Country: unitedStates, Metro: bayArea},
	"sf":            {City: "San Francisco", Region: california, Country: unitedStates, Metro: bayArea},
	"bay area":      {Region: california, Country: unitedStates, Metro: bayArea},
	"silicon valley": {
		Region: california, Country: unitedStates, Metro: bayArea,
	},
	"palo alto":     {City: "Palo Alto", Region: california, Country: unitedStates, Metro: bayArea},
	"san jose":      {City: "San Jose", Region: california, Country: unitedStates, Metro: bayArea},
	"oakland":       {City: "Oakland", Region: california, Country: unitedStates, Metro: bayArea},
	"los angeles":   {City: "Los Angeles", Region: california, Country: unitedStates, Metro: "Greater Los Angeles Area"},
	"la":            {City: "Los Angeles", Region: california, Country: unitedStates, Metro: "Greater Los Angeles Area"},
	"san diego":     {City: "San Diego", Region: california, Country: unitedStates, Metro: "Greater San Diego Area"},
	"new york":      {City: "New York", Region: "New York", Country: unitedStates, Metro: newYorkMetro},
	"new york city": {City: "New York", Region: "New York", Country: unitedStates, Metro: newYorkMetro},
	"nyc":           {City: "New York", Region: "New York", Country: unitedStates, Metro: newYorkMetro},
	"brooklyn":      {City: "Brooklyn", Region: "New York", Country: unitedStates, Metro: newYorkMetro},
	"seattle":       {City: "Seattle", Region: "Washington", Country: unitedStates, Metro: "Greater Seattle Area"},
	"austin":        {City: "Austin", Region: "Texas", Country: unitedStates, Metro: "Austin, Texas Area"},
	"dallas":        {City: "Dallas", Region: "Texas", Country: unitedStates, Metro: "Dallas-Fort Worth Metroplex"},
	"houston":       {City: "Houston", Region: "Texas", Country: unitedStates, Metro: "Greater Houston"},
	"boston":        {City: "Boston", Region: "Massachusetts", Country: unitedStates, Metro: "Greater Boston"},
	"chicago":       {City: "Chicago", Region: "Illinois", Country: unitedStates, Metro: "Greater Chicago Area"},
	"denver":        {City: "Denver", Region: "Colorado", Country: unitedStates, Metro: "Denver Metropolitan Area"},
	"miami":         {City: "Miami", Region: "Florida", Country: unitedStates, Metro: "Miami-Fort Lauderdale Area"},
	"atlanta":       {City: "Atlanta", Region: "Georgia", Country: unitedStates, Metro: "Atlanta Metropolitan Area"},
	"washington dc": {City: "Washington", Region: "District of Columbia", Country: unitedStates, Metro: "Washington DC-Baltimore Area"},
	"california":    {Region: california, Country: unitedStates},
	"texas":         {Region: "Texas", Country: unitedStates},
	"massachusetts": {Region: "Massachusetts", Country: unitedStates},
	"washington":    {Region: "Washington", Country: unitedStates},
	"usa":           {Country: unitedStates},
	"us":            {Country: unitedStates},
	"united states": {Country: unitedStates},
	"america":       {Country: unitedStates},
	"london":        {City: "London", Region: "England", Country: unitedKingdom, Metro: "Greater London"},
	"manchester":    {City: "Manchester", Region: "England", Country: unitedKingdom, Metro: "Greater Manchester"},
	"uk":            {Country: unitedKingdom},
	"united kingdom": {
		Country: unitedKingdom,
	},
	"england":   {Region: "England", Country: unitedKingdom},
	"toronto":   {City: "Toronto", Region: "Ontario", Country: "Canada", Metro: "Greater Toronto Area"},
	"vancouver": {City: "Vancouver", Region: "British Columbia", Country: "Canada", Metro: "Greater Vancouver"},
	"canada":    {Country: "Canada"},
	"berlin":    {City: "Berlin", Region: "Berlin", Country: "Germany", Metro: "Berlin Metropolitan Area"},
	"munich":    {City: "Munich", Region: "Bavaria", Country: "Germany", Metro: "Munich Metropolitan Area"},
	"germany":   {Country: "Germany"},
	"paris":     {City: "Paris", Region: "Ile-de-France", Country: "France", Metro: "Paris Metropolitan Region"},
	"france":    {Country: "France"},
	"amsterdam": {City: "Amsterdam", Region: "North Holland", Country: "Netherlands", Metro: "Amsterdam Area"},
	"bangalore": {City: "Bengaluru", Region: "Karnataka", Country: "India", Metro: "Bengaluru Area"},
	"bengaluru": {City: "Bengaluru", Region: "Karnataka", Country: "India", Metro: "Bengaluru Area"},
	"india":     {Country: "India"},
	"singapore": {City: "Singapore", Country: "Singapore"},
	"sydney":    {City: "Sydney", Region: "New South Wales", Country: "Australia", Metro: "Greater Sydney Area"},
	"australia": {Country: "Australia"},
	"tel aviv":  {City: "Tel Aviv", Region: "Tel Aviv District", Country: "Israel", Metro: "Tel Aviv Metropolitan Area"},
	"israel":    {Country: "Israel"},
}
