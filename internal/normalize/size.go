package normalize

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// StartupBucket is the size bucket forced whenever the criteria imply a startup.
const StartupBucket = "startup"

type sizeRange struct {
	label string
	min   int
	max   int
}

// sizeRanges are the provider's canonical employee-count ranges, ascending.
var sizeRanges = []sizeRange{
	{label: "1-10", min: 1, max: 10},
	{label: "11-50", min: 11, max: 50},
	{label: "51-200", min: 51, max: 200},
	{label: "201-500", min: 201, max: 500},
	{label: "501-1000", min: 501, max: 1000},
	{label: "1001-5000", min: 1001, max: 5000},
	{label: "5001-10000", min: 5001, max: 10000},
	{label: "10001+", min: 10001, max: math.MaxInt},
}

var startupMarkers = []string{"startup", "start-up", "start up", "early stage", "early-stage", "seed stage"}

// ImpliesStartup reports whether free text describes a startup.
func ImpliesStartup(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range startupMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// StartupSizes returns the size ranges of the startup bucket.
func (t *Tables) StartupSizes() []string {
	return slices.Clone(t.sizes[StartupBucket])
}

// CompanySizes maps a size descriptor to canonical ranges. Descriptive buckets
// win; free text with digits falls back to the numeric range parser.
func (t *Tables) CompanySizes(text string) ([]string, bool) {
	key := normalizeKey(text)
	if key == "" {
		return nil, false
	}

	if sizes, ok := t.sizes[key]; ok {
		return slices.Clone(sizes), true
	}

	if match, ok := scan(key, t.sizeKeys); ok {
		return slices.Clone(t.sizes[match]), true
	}

	lo, hi, ok := ParseSizeRange(key)
	if !ok {
		return nil, false
	}

	return rangesBetween(lo, hi), true
}

var (
	sizeNumberRe = regexp.MustCompile(`(\d[\d,]*)(\s*k\b)?`)
	atLeastWords = []string{"+", "over", "more than", "at least", ">", "above"}
	atMostWords  = []string{"under", "less than", "fewer than", "up to", "<", "below"}
)

// ParseSizeRange extracts an employee-count interval from free text such as
// "50-200 employees", "500+", "under 50" or "1k-5k". The upper bound is
// math.MaxInt when open.
func ParseSizeRange(text string) (lo, hi int, ok bool) {
	lower := strings.ToLower(text)

	var nums []int
	for _, m := range sizeNumberRe.FindAllStringSubmatch(lower, -1) {
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		if strings.TrimSpace(m[2]) != "" {
			n *= 1000
		}
		nums = append(nums, n)
	}

	switch {
	case len(nums) >= 2:
		lo, hi = nums[0], nums[1]
		if lo > hi {
			lo, hi = hi, lo
		}
	case len(nums) == 1:
		n := nums[0]
		switch {
		case containsAny(lower, atLeastWords):
			lo, hi = n, math.MaxInt
		case containsAny(lower, atMostWords):
			lo, hi = 1, n
		default:
			lo, hi = n, n
		}
	default:
		return 0, 0, false
	}

	if lo < 1 {
		lo = 1
	}

	return lo, hi, true
}

func rangesBetween(lo, hi int) []string {
	var labels []string
	for _, r := range sizeRanges {
		if r.min <= hi && r.max >= lo {
			labels = append(labels, r.label)
		}
	}
	return labels
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

var defaultCompanySizes = map[string][]string{
	StartupBucket: {"1-10", "11-50", "51-200"},
	"early stage": {"1-10", "11-50"},
	"small":       {"1-10", "11-50"},
	"smb":         {"11-50", "51-200", "201-500"},
	"scaleup":     {"51-200", "201-500", "501-1000"},
	"scale up":    {"51-200", "201-500", "501-1000"},
	"mid size":    {"201-500", "501-1000", "1001-5000"},
	"midsize":     {"201-500", "501-1000", "1001-5000"},
	"mid market":  {"201-500", "501-1000", "1001-5000"},
	"medium":      {"201-500", "501-1000", "1001-5000"},
	"large":       {"1001-5000", "5001-10000", "10001+"},
	"enterprise":  {"5001-10000", "10001+"},
	"fortune 500": {"10001+"},
}
