package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       App       `mapstructure:"app"`
	Providers Providers `mapstructure:"providers"`
	AI        AI        `mapstructure:"ai"`
	Cache     Cache     `mapstructure:"cache"`
	Server    Server    `mapstructure:"server"`
	Pipeline  Pipeline  `mapstructure:"pipeline"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	LogLevel   string `mapstructure:"log_level"`
	DataDir    string `mapstructure:"data_dir"`
	ConfigFile string `mapstructure:"config_file"`
}

// Providers holds per-provider credentials and settings. Adapters receive
// only the sub-struct they need; a provider with an empty key is skipped
// and recorded in the run's missing_envs.
type Providers struct {
	NewsAPI    NewsAPIConfig    `mapstructure:"newsapi"`
	GNews      GNewsConfig      `mapstructure:"gnews"`
	TheNewsAPI TheNewsAPIConfig `mapstructure:"thenewsapi"`
	NewsData   NewsDataConfig   `mapstructure:"newsdata"`
	Stocks     StocksConfig     `mapstructure:"stocks"`
	Sports     SportsConfig     `mapstructure:"sports"`
	RSS        RSSConfig        `mapstructure:"rss"`
}

// NewsAPIConfig holds NewsAPI.org configuration
type NewsAPIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// GNewsConfig holds GNews configuration
type GNewsConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// TheNewsAPIConfig holds TheNewsAPI configuration
type TheNewsAPIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// NewsDataConfig holds NewsData.io configuration
type NewsDataConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// StocksConfig holds the financial-quotes provider configuration
type StocksConfig struct {
	APIKey  string   `mapstructure:"api_key"`
	Symbols []string `mapstructure:"symbols"`
}

// SportsConfig holds the two sports-schedule provider configurations
type SportsConfig struct {
	ScoresAPIKey   string `mapstructure:"scores_api_key"`
	ScheduleAPIKey string `mapstructure:"schedule_api_key"`
	FollowedTeam   string `mapstructure:"followed_team"`
}

// RSSConfig holds supplemental RSS feed configuration
type RSSConfig struct {
	FeedURLs  []string `mapstructure:"feed_urls"`
	UserAgent string   `mapstructure:"user_agent"`
}

// AI holds AI/LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     string  `mapstructure:"timeout"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

// Cache holds cache configuration
type Cache struct {
	Directory string    `mapstructure:"directory"`
	TTL       TTLConfig `mapstructure:"ttl"`
}

// TTLConfig holds TTL hours for the cached content types
type TTLConfig struct {
	NewsHours    int `mapstructure:"news_hours"`
	StocksHours  int `mapstructure:"stocks_hours"`
	SportsHours  int `mapstructure:"sports_hours"`
	CuratedHours int `mapstructure:"curated_hours"`
}

// Server holds the trigger endpoint configuration
type Server struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    string   `mapstructure:"read_timeout"`
	WriteTimeout   string   `mapstructure:"write_timeout"`
	ServiceRoleKey string   `mapstructure:"service_role_key"`
	WorkerToken    string   `mapstructure:"worker_token"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
}

// Pipeline holds refresh-pipeline tuning knobs
type Pipeline struct {
	MaxTries          int    `mapstructure:"max_tries"`
	BaseDelayMs       int    `mapstructure:"base_delay_ms"`
	TimeoutMs         int    `mapstructure:"timeout_ms"`
	MaxConcurrency    int    `mapstructure:"max_concurrency"`
	ShortlistMax      int    `mapstructure:"shortlist_max"`
	CuratedCount      int    `mapstructure:"curated_count"`
	RefreshInterval   string `mapstructure:"refresh_interval"`
	OctoberMLBBoost   int    `mapstructure:"october_mlb_boost"`
	FollowedTeamBoost int    `mapstructure:"followed_team_boost"`
}

var globalConfig *Config

// Load loads the configuration from .env, config file, and environment variables
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".newsdesk")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.data_dir", ".newsdesk-cache")

	// AI defaults
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash-preview-05-20")
	viper.SetDefault("ai.gemini.timeout", "45s")
	viper.SetDefault("ai.gemini.max_tokens", 8192)
	viper.SetDefault("ai.gemini.temperature", 0.2)

	// Provider defaults
	viper.SetDefault("providers.stocks.symbols", []string{"SPY", "QQQ", "DIA"})
	viper.SetDefault("providers.rss.user_agent", "Newsdesk/1.0")

	// Cache defaults
	viper.SetDefault("cache.directory", ".newsdesk-cache")
	viper.SetDefault("cache.ttl.news_hours", 2)
	viper.SetDefault("cache.ttl.stocks_hours", 1)
	viper.SetDefault("cache.ttl.sports_hours", 2)
	viper.SetDefault("cache.ttl.curated_hours", 4)

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")

	// Pipeline defaults
	viper.SetDefault("pipeline.max_tries", 3)
	viper.SetDefault("pipeline.base_delay_ms", 500)
	viper.SetDefault("pipeline.timeout_ms", 10000)
	viper.SetDefault("pipeline.max_concurrency", 8)
	viper.SetDefault("pipeline.shortlist_max", 25)
	viper.SetDefault("pipeline.curated_count", 10)
	viper.SetDefault("pipeline.refresh_interval", "")
	viper.SetDefault("pipeline.october_mlb_boost", 15)
	viper.SetDefault("pipeline.followed_team_boost", 10)
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	// Gemini API key - support multiple formats
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("providers.newsapi.api_key", []string{"NEWSAPI_KEY", "NEWS_API_KEY"})
	bindEnvKeys("providers.gnews.api_key", []string{"GNEWS_API_KEY"})
	bindEnvKeys("providers.thenewsapi.api_key", []string{"THENEWSAPI_KEY"})
	bindEnvKeys("providers.newsdata.api_key", []string{"NEWSDATA_API_KEY"})
	bindEnvKeys("providers.stocks.api_key", []string{"STOCKS_API_KEY", "FINNHUB_API_KEY"})
	bindEnvKeys("providers.sports.scores_api_key", []string{"SPORTS_SCORES_API_KEY"})
	bindEnvKeys("providers.sports.schedule_api_key", []string{"SPORTS_SCHEDULE_API_KEY"})

	bindEnvKeys("server.service_role_key", []string{"SERVICE_ROLE_KEY"})
	bindEnvKeys("server.worker_token", []string{"WORKER_TOKEN"})
}

// bindEnvKeys binds the first set environment variable from names to the viper key
func bindEnvKeys(viperKey string, envNames []string) {
	for _, envName := range envNames {
		if value := os.Getenv(envName); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// validateConfig checks values that would otherwise fail deep inside a run
func validateConfig(config *Config) error {
	if config.Pipeline.MaxTries < 1 {
		return fmt.Errorf("pipeline.max_tries must be >= 1, got %d", config.Pipeline.MaxTries)
	}
	if config.Pipeline.CuratedCount < 1 {
		return fmt.Errorf("pipeline.curated_count must be >= 1, got %d", config.Pipeline.CuratedCount)
	}
	if config.Pipeline.ShortlistMax < config.Pipeline.CuratedCount {
		return fmt.Errorf("pipeline.shortlist_max (%d) must be >= pipeline.curated_count (%d)",
			config.Pipeline.ShortlistMax, config.Pipeline.CuratedCount)
	}
	if config.Pipeline.RefreshInterval != "" {
		if _, err := time.ParseDuration(config.Pipeline.RefreshInterval); err != nil {
			return fmt.Errorf("invalid pipeline.refresh_interval: %w", err)
		}
	}
	return nil
}

// MissingProviders returns the names of providers that are not configured.
// A missing provider is skipped by the orchestrator, never an error.
func (p Providers) MissingProviders() []string {
	var missing []string
	if p.NewsAPI.APIKey == "" {
		missing = append(missing, "newsapi")
	}
	if p.GNews.APIKey == "" {
		missing = append(missing, "gnews")
	}
	if p.TheNewsAPI.APIKey == "" {
		missing = append(missing, "thenewsapi")
	}
	if p.NewsData.APIKey == "" {
		missing = append(missing, "newsdata")
	}
	if p.Stocks.APIKey == "" {
		missing = append(missing, "stocks")
	}
	if p.Sports.ScoresAPIKey == "" {
		missing = append(missing, "sports_scores")
	}
	if p.Sports.ScheduleAPIKey == "" {
		missing = append(missing, "sports_schedule")
	}
	return missing
}

// Convenience getters
func GetApp() App             { return Get().App }
func GetProviders() Providers { return Get().Providers }
func GetAI() AI               { return Get().AI }
func GetCache() Cache         { return Get().Cache }
func GetServer() Server       { return Get().Server }
func GetPipeline() Pipeline   { return Get().Pipeline }

func GetGeminiAPIKey() string   { return Get().AI.Gemini.APIKey }
func GetGeminiModel() string    { return Get().AI.Gemini.Model }
func GetCacheDirectory() string { return Get().Cache.Directory }
func IsDebugMode() bool         { return Get().App.Debug }

// Reset clears the global configuration (used in tests)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
