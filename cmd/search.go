package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/prospector/internal/filtering"
	"github.com/spigell/prospector/internal/logger"
	"github.com/spigell/prospector/internal/pdl"
	"github.com/spigell/prospector/internal/ranking"
)

const (
	PromptPrint               = "Print candidates"
	PromptReportByCompany     = "Report by company"
	PromptCandidatesToFile    = "Dump candidates to file"
	PromptAppendToExcludeFile = "Append all candidates to exclude file"
	PromptExit                = "Exit"
)

var errExit = errors.New("exit requested")

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the provider and rank the people found",
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolP("do-not-exclude", "f", false, "do not exclude people listed in the exclude file")
	searchCmd.Flags().BoolP("yes", "y", false, "print the candidates and exit without asking")
	searchCmd.Flags().StringP("exclude-file", "e", "", "file with people to exclude. Default is unset.")

	viper.BindPFlag("exclude-file", searchCmd.Flags().Lookup("exclude-file"))
}

func search(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the prospector", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	c, err := loadCriteria(config)
	if err != nil {
		logger.Fatal("loading criteria", zap.Error(err))
	}

	client, err := newProviderClient(config, logger)
	if err != nil {
		logger.Fatal(
			"creating provider client",
			zap.Error(err),
			zap.String("hint", "set PDL_API_KEY_FILE environment variable or the 'provider.api-key-file' key in the configuration file"),
		)
	}

	parser := newParser(config, logger)
	if cmd.Flag("do-not-exclude").Value.String() == "true" {
		filtering.DisableByName(parser.Steps(), filtering.ExcludeFileStep, "do-not-exclude flag is set")
	}
	for _, status := range filtering.Describe(parser.Steps()) {
		logger.Debug("filter", zap.String("name", status.Name), zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason), zap.Any("details", status.Details))
	}

	engine := newEngine(ctx, config, client, parser, logger)

	result, err := engine.Find(ctx, c, config.Limit)
	if err != nil {
		var rateLimited *pdl.RateLimitError
		if errors.As(err, &rateLimited) {
			logger.Fatal("provider rate limit exceeded", zap.Int("attempts", rateLimited.Attempts), zap.Error(err))
		}
		logger.Fatal("searching candidates", zap.Error(err))
	}

	if result.Candidates.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates found"), zap.Int("total", result.Total))
		return
	}

	if cmd.Flag("yes").Value.String() == "true" {
		if err := printCandidates(result.Candidates); err != nil {
			logger.Fatal("printing candidates", zap.Error(err))
		}
		return
	}

	for {
		items := []string{PromptPrint, PromptReportByCompany, PromptCandidatesToFile}
		if config.ExcludeFile != "" {
			items = append(items, PromptAppendToExcludeFile)
		}
		items = append(items, PromptExit)

		prompt := promptui.Select{
			Label: fmt.Sprintf("Found %d candidates (%d total matches). What next?", result.Candidates.Len(), result.Total),
			Items: items,
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, config, result.Candidates); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, candidates ranking.Candidates) error {
	switch action {
	case PromptPrint:
		return printCandidates(candidates)
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(candidates.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", candidates.Len()))
		return nil
	case PromptCandidatesToFile:
		filename, err := candidates.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(config.ExcludeFile, candidates, logger)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func appendToExcludeFile(path string, candidates ranking.Candidates, logger *zap.Logger) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("exclude file is not configured")
	}

	excluded, err := filtering.LoadExcluded(path)
	if err != nil {
		return err
	}

	before := excluded.Len()
	excluded.Append(candidates.ToExcluded())

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("added", excluded.Len()-before))
	return nil
}

func printCandidates(candidates ranking.Candidates) error {
	pretty, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(pretty))
	return err
}

// redacted returns a copy of config that is safe to log.
func redacted(config *Config) *Config {
	out := *config
	if config.Provider != nil {
		provider := *config.Provider
		if provider.APIKey != "" {
			provider.APIKey = "***"
		}
		out.Provider = &provider
	}
	if config.AI != nil && config.AI.Gemini != nil {
		aiCfg := *config.AI
		gem := *config.AI.Gemini
		if gem.APIKey != "" {
			gem.APIKey = "***"
		}
		aiCfg.Gemini = &gem
		out.AI = &aiCfg
	}
	return &out
}
