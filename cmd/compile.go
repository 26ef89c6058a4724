package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/prospector/internal/criteria"
	"github.com/spigell/prospector/internal/logger"
	"github.com/spigell/prospector/internal/prospect"
	"github.com/spigell/prospector/internal/query"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Print the provider request for the criteria without sending it",
	Run: func(_ *cobra.Command, _ []string) {
		compile()
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func compile() {
	ctx := context.Background()

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

	c, err := loadCriteria(config)
	if err != nil {
		logger.Fatal("loading criteria", zap.Error(err))
	}

	plan, request, err := compileRequest(ctx, config, c, logger)
	if err != nil {
		logger.Fatal("compiling criteria", zap.Error(err))
	}

	pretty, err := json.MarshalIndent(request, "", "  ")
	if err != nil {
		logger.Fatal("encoding request", zap.Error(err))
	}

	logger.Info("query compiled",
		zap.String("search_id", plan.SearchID),
		zap.Int("clauses", plan.Query.ClauseCount()),
		zap.Int("trimmed", plan.Trimmed),
	)
	fmt.Fprintln(os.Stdout, string(pretty))
}

// compileRequest prepares the request without calling the provider. Title
// expansion is off for dry runs, so no AI request is made either.
func compileRequest(ctx context.Context, config *Config, c *criteria.OutreachCriteria, log *zap.Logger) (*prospect.Plan, query.Request, error) {
	dry := *config
	dry.AI = nil

	plan, err := newEngine(ctx, &dry, nil, nil, log).Prepare(ctx, c)
	if err != nil {
		return nil, query.Request{}, err
	}

	return plan, query.NewRequest(plan.Query, config.Limit, query.DefaultDataInclude), nil
}
