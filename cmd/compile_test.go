package cmd

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/prospector/internal/ai"
	"github.com/spigell/prospector/internal/criteria"
)

func TestCompileRequestSkipsTitleExpansion(t *testing.T) {
	var built []*AIConfig
	original := buildTitleExpander
	buildTitleExpander = func(_ context.Context, cfg *AIConfig, _ *zap.Logger) (ai.TitleExpander, error) {
		built = append(built, cfg)
		return nil, nil
	}
	t.Cleanup(func() { buildTitleExpander = original })

	config := &Config{
		Limit: 500,
		AI:    &AIConfig{Enabled: true, Gemini: &GeminiConfig{APIKey: "key"}},
	}
	c := &criteria.OutreachCriteria{OutreachType: criteria.Recruiting, RoleTitle: "CTO", Location: "San Francisco"}

	plan, request, err := compileRequest(context.Background(), config, c, zap.NewNop())
	if err != nil {
		t.Fatalf("compileRequest: %v", err)
	}

	if len(built) != 1 || built[0] != nil {
		t.Fatalf("dry run must build the engine without ai config, got %v", built)
	}
	if config.AI == nil || !config.AI.Enabled {
		t.Fatalf("compileRequest must not modify the config")
	}
	if plan.SearchID == "" {
		t.Fatalf("expected a search id")
	}
	if request.Size != 100 {
		t.Fatalf("expected size clamped to 100, got %d", request.Size)
	}
	if plan.Query.ClauseCount() == 0 {
		t.Fatalf("expected compiled clauses")
	}
}
