package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/prospector/internal/criteria"
)

const (
	app = "prospector"
)

type Config struct {
	Criteria     *criteria.OutreachCriteria `mapstructure:"criteria"`
	CriteriaFile string                     `mapstructure:"criteria-file"`
	Limit        int                        `mapstructure:"limit"`
	ExcludeFile  string                     `mapstructure:"exclude-file"`
	Exclude      *struct {
		Domains []string `mapstructure:"domains"`
	} `mapstructure:"exclude"`
	Provider *ProviderConfig `mapstructure:"provider"`
	AI       *AIConfig       `mapstructure:"ai"`
}

type ProviderConfig struct {
	APIURL       string        `mapstructure:"api-url"`
	APIKey       string        `mapstructure:"api-key"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	UserAgent    string        `mapstructure:"user-agent"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxClauses   int           `mapstructure:"max-clauses"`
	MaxAttempts  int           `mapstructure:"max-attempts"`
	RetryDelay   time.Duration `mapstructure:"retry-delay"`
	RateLimitRPS float64       `mapstructure:"rate-limit-rps"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "prospector finds and ranks people to reach out to, for recruiting or sales",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"provider.api-key-file":  "PDL_API_KEY_FILE",
		"provider.api-key":       "PDL_API_KEY",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("limit", 25)
	viper.SetDefault("provider.max-clauses", 100)
	viper.SetDefault("provider.max-attempts", 3)
	viper.SetDefault("provider.retry-delay", time.Second)
	viper.SetDefault("provider.timeout", 30*time.Second)
	viper.SetDefault("ai.gemini.max-log-length", 200)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is prospector.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("criteria-file", "c", "", "a YAML file with the search criteria")
	rootCmd.PersistentFlags().IntP("limit", "l", 0, "maximum number of people to request (capped at 100)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("criteria-file", rootCmd.PersistentFlags().Lookup("criteria-file"))
	viper.BindPFlag("limit", rootCmd.PersistentFlags().Lookup("limit"))
}

func initConfig() {
	// Config is used only by the search and compile commands.
	if searchCmd.CalledAs() == "" && compileCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// A missing default config is fine: everything can come from flags and env.
	// An explicit or unparseable one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
