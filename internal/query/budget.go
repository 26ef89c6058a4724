package query

import "slices"

// DefaultMaxClauses is the default per-list clause budget.
const DefaultMaxClauses = 100

// Bound keeps the Should and Must lists within maxClauses by dropping trailing
// entries. Order is preserved, so the clauses compiled first (title, seniority,
// size) survive over broad industry and pain-point clauses. A non-positive
// maxClauses disables the guard. The input query is not modified.
func Bound(q CompiledQuery, maxClauses int) CompiledQuery {
	out := CompiledQuery{
		Must:               slices.Clone(q.Must),
		Should:             slices.Clone(q.Should),
		Filter:             slices.Clone(q.Filter),
		MustNot:            slices.Clone(q.MustNot),
		MinimumShouldMatch: q.MinimumShouldMatch,
	}
	if maxClauses <= 0 {
		return out
	}

	if len(out.Should) > maxClauses {
		out.Should = out.Should[:maxClauses]
	}
	if len(out.Must) > maxClauses {
		out.Must = out.Must[:maxClauses]
	}
	if out.MinimumShouldMatch > len(out.Should) {
		out.MinimumShouldMatch = len(out.Should)
	}

	return out
}

// Trimmed reports how many top-level clauses Bound removed.
func Trimmed(before, after CompiledQuery) int {
	return before.ClauseCount() - after.ClauseCount()
}
