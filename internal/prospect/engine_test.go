package prospect

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/prospector/internal/criteria"
	"github.com/spigell/prospector/internal/filtering"
	"github.com/spigell/prospector/internal/pdl"
	"github.com/spigell/prospector/internal/query"
)

type fakeSearcher struct {
	resp  *pdl.Response
	err   error
	calls int
	query query.CompiledQuery
	limit int
}

func (f *fakeSearcher) Search(_ context.Context, q query.CompiledQuery, limit int) (*pdl.Response, error) {
	f.calls++
	f.query = q
	f.limit = limit
	return f.resp, f.err
}

type fakeExpander struct {
	titles []string
	err    error
	calls  int
}

func (f *fakeExpander) ExpandTitle(context.Context, *criteria.OutreachCriteria) ([]string, error) {
	f.calls++
	return f.titles, f.err
}

func vpCriteria() *criteria.OutreachCriteria {
	return &criteria.OutreachCriteria{
		OutreachType: criteria.Recruiting,
		RoleTitle:    "VP of Engineering",
		Location:     "San Francisco",
	}
}

func TestFindRanksParsedPeople(t *testing.T) {
	searcher := &fakeSearcher{resp: &pdl.Response{
		Total:    1234,
		Attempts: 1,
		Hits: []map[string]any{
			{"id": "1", "full_name": "Dana Director", "job_title": "Director of Engineering", "work_email": "dana@x.io"},
			{"id": "2", "full_name": "No Email", "job_title": "VP of Engineering", "work_email": "not-an-email"},
			{"id": "3", "full_name": "Val VP", "job_title": "VP of Engineering", "work_email": "val@y.io"},
			{"id": "4", "job_title": "VP of Engineering", "work_email": "anon@y.io"},
		},
	}}
	engine := New(zap.NewNop(), searcher, Options{})
	engine.newID = func() string { return "search-1" }

	result, err := engine.Find(context.Background(), vpCriteria(), 500)
	require.NoError(t, err)

	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, 500, searcher.limit)
	assert.Equal(t, "search-1", result.SearchID)
	assert.Equal(t, 1234, result.Total)
	assert.Equal(t, 4, result.Hits)

	require.Equal(t, 2, result.Candidates.Len())
	assert.Equal(t, "3", result.Candidates[0].ID)
	assert.InDelta(t, 40.0, result.Candidates[0].RelevanceScore, 1e-9)
	assert.Equal(t, "1", result.Candidates[1].ID)
	assert.InDelta(t, 26.67, result.Candidates[1].RelevanceScore, 0.01)

	assert.Contains(t, searcher.query.Filter, query.Term(query.FieldCountry, "United States"))
	assert.Equal(t, 1, searcher.query.MinimumShouldMatch)
}

func TestFindEmptyResultIsSuccess(t *testing.T) {
	engine := New(nil, &fakeSearcher{resp: &pdl.Response{}}, Options{})

	result, err := engine.Find(context.Background(), vpCriteria(), 0)
	require.NoError(t, err)
	assert.Zero(t, result.Candidates.Len())
	assert.Zero(t, result.Total)
}

func TestFindDefaultLimit(t *testing.T) {
	searcher := &fakeSearcher{resp: &pdl.Response{}}
	_, err := New(nil, searcher, Options{}).Find(context.Background(), vpCriteria(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, searcher.limit)
}

func TestFindPropagatesProviderErrors(t *testing.T) {
	rateLimited := &pdl.RateLimitError{Attempts: 3}
	engine := New(nil, &fakeSearcher{err: rateLimited}, Options{})

	_, err := engine.Find(context.Background(), vpCriteria(), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, pdl.ErrRateLimitExceeded)

	fatal := &pdl.FatalError{StatusCode: 401, Message: "invalid api key"}
	engine = New(nil, &fakeSearcher{err: fatal}, Options{})
	_, err = engine.Find(context.Background(), vpCriteria(), 10)
	var target *pdl.FatalError
	assert.ErrorAs(t, err, &target)
}

func TestFindRejectsInvalidCriteria(t *testing.T) {
	searcher := &fakeSearcher{resp: &pdl.Response{}}
	engine := New(nil, searcher, Options{})

	_, err := engine.Find(context.Background(), &criteria.OutreachCriteria{OutreachType: criteria.Recruiting}, 10)
	assert.ErrorIs(t, err, criteria.ErrNoTitle)
	assert.Zero(t, searcher.calls)

	_, err = engine.Find(context.Background(), &criteria.OutreachCriteria{OutreachType: "partnerships", RoleTitle: "CTO"}, 10)
	assert.Error(t, err)
	assert.Zero(t, searcher.calls)
}

func TestFindWithoutSearcher(t *testing.T) {
	_, err := New(nil, nil, Options{}).Find(context.Background(), vpCriteria(), 10)
	assert.Error(t, err)
}

func TestPrepareTrimsToBudget(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	engine := New(zap.New(core), nil, Options{MaxClauses: 1})

	c := vpCriteria()
	c.Skills = "go, rust, kubernetes"

	plan, err := engine.Prepare(context.Background(), c)
	require.NoError(t, err)

	assert.Len(t, plan.Query.Should, 1)
	assert.Positive(t, plan.Trimmed)
	require.Equal(t, 1, logs.FilterMessage("query exceeds clause budget, trimming").Len())

	entry := logs.All()[0]
	assert.Equal(t, plan.SearchID, entry.ContextMap()["search_id"])
	assert.Equal(t, "recruiting", entry.ContextMap()["outreach_type"])
}

func TestPrepareUsesTitleExpansion(t *testing.T) {
	expander := &fakeExpander{titles: []string{"head of engineering", "engineering director"}}
	engine := New(nil, nil, Options{Expander: expander})

	c := vpCriteria()
	plan, err := engine.Prepare(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, 1, expander.calls)
	assert.Equal(t, "VP of Engineering", plan.Criteria.TitleVariants[0])
	assert.Contains(t, plan.Criteria.TitleVariants, "head of engineering")
	assert.Contains(t, plan.Criteria.TitleVariants, "engineering director")
	assert.Empty(t, c.TitleVariants, "caller criteria must not change")

	require.NotEmpty(t, plan.Query.Must)
	assert.Contains(t, plan.Query.Must[0].Any, query.MatchPhrase(query.FieldJobTitle, "engineering director", 1))
	assert.Contains(t, plan.Query.Must[0].Any, query.MatchPhrase(query.FieldJobTitle, "vp of engineering", 1))
}

func TestPrepareSkipsExpansion(t *testing.T) {
	expander := &fakeExpander{titles: []string{"head of engineering"}}
	engine := New(nil, nil, Options{Expander: expander})

	c := vpCriteria()
	c.TitleVariants = []string{"vp engineering"}
	plan, err := engine.Prepare(context.Background(), c)
	require.NoError(t, err)
	assert.Zero(t, expander.calls)
	assert.Equal(t, []string{"vp engineering"}, plan.Criteria.TitleVariants)

	failing := &fakeExpander{err: errors.New("quota")}
	plan, err = New(nil, nil, Options{Expander: failing}).Prepare(context.Background(), vpCriteria())
	require.NoError(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Empty(t, plan.Criteria.TitleVariants)
}

func TestFindAppliesExclusions(t *testing.T) {
	searcher := &fakeSearcher{resp: &pdl.Response{Hits: []map[string]any{
		{"id": "1", "full_name": "Competitor", "job_title": "CTO", "work_email": "cto@rival.com"},
		{"id": "2", "full_name": "Prospect", "job_title": "CTO", "work_email": "cto@prospect.io"},
	}}}
	parser := filtering.NewParser(nil, &filtering.Config{ExcludeDomains: []string{"rival.com"}})
	engine := New(nil, searcher, Options{Parser: parser})

	result, err := engine.Find(context.Background(), &criteria.OutreachCriteria{OutreachType: criteria.Sales, BuyerTitle: "CTO"}, 10)
	require.NoError(t, err)
	require.Equal(t, 1, result.Candidates.Len())
	assert.Equal(t, "2", result.Candidates[0].ID)
}
