// Package ai holds the model-backed helpers used to enrich search criteria.
package ai

import (
	"context"

	"github.com/spigell/prospector/internal/criteria"
)

// TitleExpander suggests alternative phrasings of a job title. Suggestions
// never include the title itself.
type TitleExpander interface {
	ExpandTitle(ctx context.Context, c *criteria.OutreachCriteria) ([]string, error)
}
