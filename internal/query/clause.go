// Package query compiles outreach criteria into a graduated boolean query for
// the person-search provider and keeps it within the provider's size budget.
package query

import (
	"encoding/json"
	"fmt"
)

// Kind is the type of an atomic predicate.
type Kind int

const (
	KindMatchPhrase Kind = iota
	KindMatch
	KindTerm
	KindTerms
	// KindAnyOf is an inner group that matches when any of its clauses matches.
	KindAnyOf
)

func (k Kind) String() string {
	switch k {
	case KindMatchPhrase:
		return "match_phrase"
	case KindMatch:
		return "match"
	case KindTerm:
		return "term"
	case KindTerms:
		return "terms"
	case KindAnyOf:
		return "any_of"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Clause is a single predicate of a compiled query.
type Clause struct {
	Kind   Kind
	Field  string
	Value  string
	Values []string
	// Boost is the relative weight of a soft clause. Zero means the provider default.
	Boost float64
	Any   []Clause
}

func MatchPhrase(field, value string, boost float64) Clause {
	return Clause{Kind: KindMatchPhrase, Field: field, Value: value, Boost: boost}
}

func Match(field, value string) Clause {
	return Clause{Kind: KindMatch, Field: field, Value: value}
}

func Term(field, value string) Clause {
	return Clause{Kind: KindTerm, Field: field, Value: value}
}

func Terms(field string, values ...string) Clause {
	return Clause{Kind: KindTerms, Field: field, Values: values}
}

func AnyOf(clauses ...Clause) Clause {
	return Clause{Kind: KindAnyOf, Any: clauses}
}

// MarshalJSON renders the clause in the provider's Elasticsearch dialect.
func (c Clause) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindMatchPhrase, KindMatch:
		var value any = c.Value
		if c.Boost != 0 && c.Boost != 1 {
			value = map[string]any{"query": c.Value, "boost": c.Boost}
		}
		return json.Marshal(map[string]any{c.Kind.String(): map[string]any{c.Field: value}})
	case KindTerm:
		return json.Marshal(map[string]any{"term": map[string]string{c.Field: c.Value}})
	case KindTerms:
		values := c.Values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(map[string]any{"terms": map[string][]string{c.Field: values}})
	case KindAnyOf:
		return json.Marshal(map[string]any{"bool": map[string]any{
			"should":               nonNil(c.Any),
			"minimum_should_match": 1,
		}})
	default:
		return nil, fmt.Errorf("unsupported clause kind %s", c.Kind)
	}
}

func nonNil(clauses []Clause) []Clause {
	if clauses == nil {
		return []Clause{}
	}
	return clauses
}

// CompiledQuery is the graduated boolean query: Must and Filter are hard
// constraints, Should clauses only count through MinimumShouldMatch.
type CompiledQuery struct {
	Must               []Clause
	Should             []Clause
	Filter             []Clause
	MustNot            []Clause
	MinimumShouldMatch int
}

// ClauseCount returns the number of top-level clauses.
func (q CompiledQuery) ClauseCount() int {
	return len(q.Must) + len(q.Should) + len(q.Filter) + len(q.MustNot)
}

// MarshalJSON renders the query as {"bool": {...}}, omitting empty lists.
func (q CompiledQuery) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if len(q.Must) > 0 {
		body["must"] = q.Must
	}
	if len(q.Should) > 0 {
		body["should"] = q.Should
	}
	if len(q.Filter) > 0 {
		body["filter"] = q.Filter
	}
	if len(q.MustNot) > 0 {
		body["must_not"] = q.MustNot
	}
	if q.MinimumShouldMatch > 0 {
		body["minimum_should_match"] = q.MinimumShouldMatch
	}
	return json.Marshal(map[string]any{"bool": body})
}
