package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/prospector/internal/criteria"
	"github.com/spigell/prospector/internal/filtering"
	"github.com/spigell/prospector/internal/ranking"
)

func TestLoadCriteria(t *testing.T) {
	path := filepath.Join(t.TempDir(), "criteria.yaml")
	content := "outreach_type: sales\nbuyer_title: Head of Finance\nindustry: fintech\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write criteria: %v", err)
	}

	inline := &criteria.OutreachCriteria{OutreachType: criteria.Recruiting, RoleTitle: "CTO"}

	fromFile, err := loadCriteria(&Config{CriteriaFile: path, Criteria: inline})
	if err != nil {
		t.Fatalf("loadCriteria: %v", err)
	}
	if fromFile.BuyerTitle != "Head of Finance" || fromFile.OutreachType != criteria.Sales {
		t.Fatalf("criteria file must win over inline criteria, got %+v", fromFile)
	}

	fromConfig, err := loadCriteria(&Config{Criteria: inline})
	if err != nil || fromConfig != inline {
		t.Fatalf("expected inline criteria, got %+v (err %v)", fromConfig, err)
	}

	if _, err := loadCriteria(&Config{}); err == nil {
		t.Fatalf("expected error without criteria")
	}
}

func TestRedactedDoesNotLeakKeys(t *testing.T) {
	config := &Config{
		Provider: &ProviderConfig{APIKey: "provider-secret"},
		AI:       &AIConfig{Enabled: true, Gemini: &GeminiConfig{APIKey: "gemini-secret", Model: "m"}},
	}

	safe := redacted(config)
	if safe.Provider.APIKey != "***" || safe.AI.Gemini.APIKey != "***" {
		t.Fatalf("keys are not redacted: %+v %+v", safe.Provider, safe.AI.Gemini)
	}
	if config.Provider.APIKey != "provider-secret" || config.AI.Gemini.APIKey != "gemini-secret" {
		t.Fatalf("redacted must not modify the original config")
	}
}

func TestAppendToExcludeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")
	candidates := ranking.Candidates{
		{ID: "1", Name: "One", Email: "one@x.io"},
		{ID: "2", Name: "Two", Email: "two@x.io"},
	}

	if err := appendToExcludeFile(path, candidates, zap.NewNop()); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := appendToExcludeFile(path, candidates[:1], zap.NewNop()); err != nil {
		t.Fatalf("append again: %v", err)
	}

	excluded, err := filtering.LoadExcluded(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if excluded.Len() != 2 {
		t.Fatalf("expected 2 excluded people, got %d", excluded.Len())
	}

	if err := appendToExcludeFile(" ", candidates, zap.NewNop()); err == nil {
		t.Fatalf("expected error without exclude file")
	}
}

func TestNewProviderClientRequiresKey(t *testing.T) {
	t.Setenv("PDL_API_KEY", "")

	if _, err := newProviderClient(&Config{}, zap.NewNop()); err == nil {
		t.Fatalf("expected error without api key")
	}

	client, err := newProviderClient(&Config{Provider: &ProviderConfig{
		APIKey:      "key",
		APIURL:      "http://localhost:8080/",
		MaxAttempts: 5,
	}}, zap.NewNop())
	if err != nil {
		t.Fatalf("newProviderClient: %v", err)
	}
	if client.APIURL != "http://localhost:8080" || client.MaxAttempts != 5 {
		t.Fatalf("unexpected client settings: %s %d", client.APIURL, client.MaxAttempts)
	}
}
