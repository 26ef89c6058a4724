package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/prospector/internal/ai"
	"github.com/spigell/prospector/internal/ai/gemini"
	"github.com/spigell/prospector/internal/criteria"
	"github.com/spigell/prospector/internal/filtering"
	"github.com/spigell/prospector/internal/logger"
	"github.com/spigell/prospector/internal/pdl"
	"github.com/spigell/prospector/internal/prospect"
	"github.com/spigell/prospector/internal/secrets"
)

// loadCriteria returns the criteria from the criteria file, falling back to
// the inline criteria section of the config.
func loadCriteria(config *Config) (*criteria.OutreachCriteria, error) {
	if path := strings.TrimSpace(config.CriteriaFile); path != "" {
		return criteria.LoadFile(path)
	}
	if config.Criteria != nil {
		return config.Criteria, nil
	}
	return nil, errors.New("no criteria: set criteria-file or the criteria section in the config")
}

func providerConfig(config *Config) *ProviderConfig {
	if config.Provider == nil {
		return &ProviderConfig{}
	}
	return config.Provider
}

func newProviderClient(config *Config, log *zap.Logger) (*pdl.Client, error) {
	cfg := providerConfig(config)

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "provider api key",
		File:  cfg.APIKeyFile,
		Value: cfg.APIKey,
		Env:   "PDL_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set provider.api-key-file or PDL_API_KEY_FILE)", err)
	}

	client := pdl.New(logger.WithFields(log, logger.ProviderFields("pdl", "")...), apiKey)
	if cfg.APIURL != "" {
		client.APIURL = strings.TrimRight(cfg.APIURL, "/")
	}
	if cfg.UserAgent != "" {
		client.UserAgent = cfg.UserAgent
	}
	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}
	if cfg.MaxAttempts > 0 {
		client.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.RetryDelay > 0 {
		client.RetryDelay = cfg.RetryDelay
	}
	client.SetRateLimit(cfg.RateLimitRPS)

	return client, nil
}

var buildTitleExpander = newTitleExpander

func newTitleExpander(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.TitleExpander, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Value: cfg.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithFields(log, logger.ProviderFields("gemini", cfg.Gemini.Model)...)

	generator, err := gemini.NewGenerator(ctx, genLogger, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}
	log.Debug("title expansion enabled", zap.String("model", generator.Model()))

	return gemini.NewTitleSuggester(generator, genLogger, cfg.Gemini.MaxLogLength), nil
}

func newParser(config *Config, log *zap.Logger) *filtering.Parser {
	cfg := &filtering.Config{ExcludeFile: config.ExcludeFile}
	if config.Exclude != nil {
		cfg.ExcludeDomains = config.Exclude.Domains
	}
	return filtering.NewParser(log, cfg)
}

// newEngine wires the engine. searcher may be nil for commands that only compile.
func newEngine(ctx context.Context, config *Config, searcher prospect.Searcher, parser *filtering.Parser, log *zap.Logger) *prospect.Engine {
	expander, err := buildTitleExpander(ctx, config.AI, log)
	if err != nil {
		log.Warn("skipping title expansion", zap.Error(err))
		expander = nil
	}

	return prospect.New(log, searcher, prospect.Options{
		Parser:     parser,
		Expander:   expander,
		MaxClauses: providerConfig(config).MaxClauses,
	})
}
