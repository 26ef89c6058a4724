// Package prospect runs one candidate search end to end: compile the criteria,
// bound the query, call the provider, parse the hits and rank the people.
package prospect

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/prospector/internal/ai"
	"github.com/spigell/prospector/internal/criteria"
	"github.com/spigell/prospector/internal/filtering"
	"github.com/spigell/prospector/internal/logger"
	"github.com/spigell/prospector/internal/normalize"
	"github.com/spigell/prospector/internal/pdl"
	"github.com/spigell/prospector/internal/query"
	"github.com/spigell/prospector/internal/ranking"
)

const DefaultLimit = 25

// Searcher executes a compiled query against the provider.
type Searcher interface {
	Search(ctx context.Context, q query.CompiledQuery, limit int) (*pdl.Response, error)
}

type Options struct {
	// Tables defaults to normalize.Default().
	Tables *normalize.Tables
	// Parser defaults to a parser with the default steps and no exclusions.
	Parser *filtering.Parser
	// Expander is optional.
	Expander   ai.TitleExpander
	MaxClauses int
}

type Engine struct {
	tables     *normalize.Tables
	compiler   *query.Compiler
	scorer     *ranking.Scorer
	parser     *filtering.Parser
	searcher   Searcher
	expander   ai.TitleExpander
	maxClauses int
	logger     *zap.Logger
	newID      func() string
}

// Plan is a compiled and bounded query together with the criteria it was
// compiled from.
type Plan struct {
	SearchID string
	Criteria *criteria.OutreachCriteria
	Query    query.CompiledQuery
	Trimmed  int
}

type Result struct {
	Plan
	Candidates ranking.Candidates
	// Total is the provider's count of matching people, not len(Candidates).
	Total    int
	Hits     int
	Attempts int
}

func New(log *zap.Logger, searcher Searcher, opts Options) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	tables := opts.Tables
	if tables == nil {
		tables = normalize.Default()
	}
	parser := opts.Parser
	if parser == nil {
		parser = filtering.NewParser(log, nil)
	}

	return &Engine{
		tables:     tables,
		compiler:   query.NewCompiler(tables),
		scorer:     ranking.NewScorer(tables),
		parser:     parser,
		searcher:   searcher,
		expander:   opts.Expander,
		maxClauses: opts.MaxClauses,
		logger:     log,
		newID:      uuid.NewString,
	}
}

// Prepare validates and enriches the criteria, then compiles and bounds the query.
// The caller's criteria are never modified.
func (e *Engine) Prepare(ctx context.Context, c *criteria.OutreachCriteria) (*Plan, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	plan := &Plan{SearchID: e.newID()}
	log := logger.WithFields(e.logger, logger.SearchFields(plan.SearchID, string(c.OutreachType))...)

	plan.Criteria = e.enrich(ctx, log, c)

	compiled := e.compiler.Compile(plan.Criteria)
	plan.Query = query.Bound(compiled, e.maxClauses)
	plan.Trimmed = query.Trimmed(compiled, plan.Query)

	if plan.Trimmed > 0 {
		log.Warn("query exceeds clause budget, trimming",
			zap.Int("max_clauses", e.maxClauses),
			zap.Int("trimmed", plan.Trimmed),
		)
	}
	log.Debug("query compiled",
		zap.Int("must", len(plan.Query.Must)),
		zap.Int("should", len(plan.Query.Should)),
		zap.Int("filter", len(plan.Query.Filter)),
		zap.Int("must_not", len(plan.Query.MustNot)),
	)

	return plan, nil
}

// Find runs a full search and returns at most limit candidates ranked by
// relevance. An empty result is not an error.
func (e *Engine) Find(ctx context.Context, c *criteria.OutreachCriteria, limit int) (*Result, error) {
	if e.searcher == nil {
		return nil, fmt.Errorf("searcher is not configured")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	plan, err := e.Prepare(ctx, c)
	if err != nil {
		return nil, err
	}
	log := logger.WithFields(e.logger, logger.SearchFields(plan.SearchID, string(c.OutreachType))...)

	resp, err := e.searcher.Search(ctx, plan.Query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching people: %w", err)
	}

	people, err := e.parser.Parse(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("parsing people: %w", err)
	}

	result := &Result{
		Plan:       *plan,
		Candidates: e.scorer.Rank(people.Items, plan.Criteria),
		Total:      resp.Total,
		Hits:       resp.Len(),
		Attempts:   resp.Attempts,
	}

	log.Info("search completed",
		zap.Int("provider_status", resp.Status),
		zap.Int("total", result.Total),
		zap.Int("hits", result.Hits),
		zap.Int("candidates", result.Candidates.Len()),
		zap.Int("attempts", result.Attempts),
	)

	return result, nil
}

// enrich fills title variants from the expander when the criteria have none.
// Expansion failures are logged and the table variants are used instead.
func (e *Engine) enrich(ctx context.Context, log *zap.Logger, c *criteria.OutreachCriteria) *criteria.OutreachCriteria {
	enriched := c.Clone()
	if e.expander == nil || len(c.TitleVariants) > 0 {
		return &enriched
	}

	suggestions, err := e.expander.ExpandTitle(ctx, c)
	if err != nil {
		log.Warn("title expansion failed, using built-in variants", zap.Error(err))
		return &enriched
	}
	if len(suggestions) == 0 {
		return &enriched
	}

	base := c.TargetTitle()
	variants := []string{base}
	for _, variant := range e.tables.TitleVariants(base) {
		variants = append(variants, variant.Phrase)
	}
	enriched.TitleVariants = append(variants, suggestions...)

	log.Info("title expanded", zap.Strings("suggestions", suggestions))

	return &enriched
}
