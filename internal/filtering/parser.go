// Package filtering turns raw provider hits into contactable people.
package filtering

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/prospector/internal/pdl"
)

// Parser decodes provider hits and runs them through the filter steps.
type Parser struct {
	cfg    *Config
	logger *zap.Logger
	steps  []Filter
}

// DefaultSteps returns the parser pipeline: the name and email checks first,
// then the configured exclusions.
func DefaultSteps() []Filter {
	return []Filter{
		NewValidName(),
		NewValidEmail(),
		NewExcludeDomains(),
		NewExcludeFile(),
	}
}

// NewParser builds a parser. With no steps given, DefaultSteps is used.
func NewParser(logger *zap.Logger, cfg *Config, steps ...Filter) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if len(steps) == 0 {
		steps = DefaultSteps()
	}
	return &Parser{cfg: cfg, logger: logger, steps: steps}
}

func (p *Parser) Steps() []Filter {
	return p.steps
}

// Parse decodes every hit in provider order and keeps the people that pass
// all enabled steps. Undecodable hits are dropped like invalid ones.
func (p *Parser) Parse(ctx context.Context, resp *pdl.Response) (*pdl.People, error) {
	var hits []map[string]any
	if resp != nil {
		hits = resp.Hits
	}

	people, failed := pdl.DecodePeople(hits)
	if len(failed) > 0 {
		indexes := make([]int, 0, len(failed))
		for idx := range failed {
			indexes = append(indexes, idx)
		}
		sort.Ints(indexes)
		for _, idx := range indexes {
			p.logger.Debug("dropping undecodable record", zap.Int("index", idx), zap.Error(failed[idx]))
		}
	}

	return Run(ctx, p.cfg, Deps{Logger: p.logger}, p.steps, people)
}
