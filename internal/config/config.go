package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultConfigFile = "config.yaml"
	DefaultEnvFile    = ".env"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// APIConfig describes how to reach the options backend
type APIConfig struct {
	BaseURL              string `yaml:"base_url"`
	TimeoutSeconds       int    `yaml:"timeout_seconds"`
	SlowRequestSeconds   int    `yaml:"slow_request_seconds"`
	FetchHistoricalChart bool   `yaml:"fetch_historical_chart"`
	ExpirationsCacheMins int    `yaml:"expirations_cache_minutes"`
}

// ScreenerConfig holds the initial values of the screener form
type ScreenerConfig struct {
	DefaultTickers  []string `yaml:"default_tickers"`
	WatchlistFile   string   `yaml:"watchlist_file"`
	MinVolume       int      `yaml:"min_volume"`
	MinOpenInterest int      `yaml:"min_open_interest"`
	MaxBidAskSpread float64  `yaml:"max_bid_ask_spread"`
	OptionType      string   `yaml:"option_type"`
}

// CSVConfig represents CSV export configuration
type CSVConfig struct {
	FilenameFormat string `yaml:"filename_format"`
}

type Config struct {
	// Server settings
	Port string

	API      APIConfig
	Screener ScreenerConfig
	Logging  LoggingConfig
	CSV      CSVConfig
}

// yamlAPIConfig uses pointers where false or zero is a meaningful setting
type yamlAPIConfig struct {
	BaseURL              string `yaml:"base_url"`
	TimeoutSeconds       int    `yaml:"timeout_seconds"`
	SlowRequestSeconds   int    `yaml:"slow_request_seconds"`
	FetchHistoricalChart *bool  `yaml:"fetch_historical_chart"`
	ExpirationsCacheMins *int   `yaml:"expirations_cache_minutes"`
}

type YAMLConfig struct {
	Port     string         `yaml:"port"`
	API      yamlAPIConfig  `yaml:"api"`
	Screener ScreenerConfig `yaml:"screener"`
	Logging  LoggingConfig  `yaml:"logging"`
	CSV      CSVConfig      `yaml:"csv"`
}

// Load reads .env and config.yaml from the working directory
func Load() *Config {
	return LoadFrom(DefaultConfigFile, DefaultEnvFile)
}

// LoadFrom builds the config from defaults, then the YAML file, then the
// environment. Variables from envFile never override ones already exported.
func LoadFrom(configFile, envFile string) *Config {
	if envFile != "" {
		// Missing .env is normal in production
		_ = godotenv.Load(envFile)
	}

	cfg := &Config{
		Port: "8080",
		API: APIConfig{
			BaseURL:              "http://127.0.0.1:5000",
			TimeoutSeconds:       30,
			SlowRequestSeconds:   5,
			FetchHistoricalChart: true,
			ExpirationsCacheMins: 15,
		},
		Screener: ScreenerConfig{
			DefaultTickers:  []string{},
			MinVolume:       100,
			MinOpenInterest: 50,
			MaxBidAskSpread: 10,
			OptionType:      "both",
		},
		Logging: LoggingConfig{
			LogLevel: "info",
			LogFile:  "options-screener.log",
		},
		CSV: CSVConfig{
			FilenameFormat: "{time}_{tickers}tickers_screener.csv",
		},
	}

	if yamlCfg := loadYAMLConfig(configFile); yamlCfg != nil {
		if yamlCfg.Port != "" {
			cfg.Port = yamlCfg.Port
		}
		if yamlCfg.API.BaseURL != "" {
			cfg.API.BaseURL = yamlCfg.API.BaseURL
		}
		if yamlCfg.API.TimeoutSeconds > 0 {
			cfg.API.TimeoutSeconds = yamlCfg.API.TimeoutSeconds
		}
		if yamlCfg.API.SlowRequestSeconds > 0 {
			cfg.API.SlowRequestSeconds = yamlCfg.API.SlowRequestSeconds
		}
		if yamlCfg.API.FetchHistoricalChart != nil {
			cfg.API.FetchHistoricalChart = *yamlCfg.API.FetchHistoricalChart
		}
		if yamlCfg.API.ExpirationsCacheMins != nil && *yamlCfg.API.ExpirationsCacheMins >= 0 {
			cfg.API.ExpirationsCacheMins = *yamlCfg.API.ExpirationsCacheMins
		}

		if len(yamlCfg.Screener.DefaultTickers) > 0 {
			cfg.Screener.DefaultTickers = yamlCfg.Screener.DefaultTickers
		}
		if yamlCfg.Screener.WatchlistFile != "" {
			cfg.Screener.WatchlistFile = yamlCfg.Screener.WatchlistFile
		}
		if yamlCfg.Screener.MinVolume > 0 {
			cfg.Screener.MinVolume = yamlCfg.Screener.MinVolume
		}
		if yamlCfg.Screener.MinOpenInterest > 0 {
			cfg.Screener.MinOpenInterest = yamlCfg.Screener.MinOpenInterest
		}
		if yamlCfg.Screener.MaxBidAskSpread > 0 {
			cfg.Screener.MaxBidAskSpread = yamlCfg.Screener.MaxBidAskSpread
		}
		if yamlCfg.Screener.OptionType != "" {
			cfg.Screener.OptionType = yamlCfg.Screener.OptionType
		}

		// Logging configuration from YAML
		if yamlCfg.Logging.LogLevel != "" {
			cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
		}
		if yamlCfg.Logging.LogFile != "" {
			cfg.Logging.LogFile = yamlCfg.Logging.LogFile
		}

		if yamlCfg.CSV.FilenameFormat != "" {
			cfg.CSV.FilenameFormat = yamlCfg.CSV.FilenameFormat
		}
	}

	// Environment wins over YAML
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.API.BaseURL = strings.TrimRight(getEnv("API_BASE_URL", cfg.API.BaseURL), "/")
	cfg.API.TimeoutSeconds = getEnvInt("API_TIMEOUT_SECONDS", cfg.API.TimeoutSeconds)
	cfg.API.SlowRequestSeconds = getEnvInt("SLOW_REQUEST_SECONDS", cfg.API.SlowRequestSeconds)
	cfg.API.FetchHistoricalChart = getEnvBool("FETCH_HISTORICAL_CHART", cfg.API.FetchHistoricalChart)
	cfg.API.ExpirationsCacheMins = getEnvInt("EXPIRATIONS_CACHE_MINUTES", cfg.API.ExpirationsCacheMins)
	cfg.Screener.DefaultTickers = getEnvStringSlice("DEFAULT_TICKERS", cfg.Screener.DefaultTickers)
	cfg.Screener.WatchlistFile = getEnv("WATCHLIST_FILE", cfg.Screener.WatchlistFile)
	cfg.Screener.MinVolume = getEnvInt("SCREENER_MIN_VOLUME", cfg.Screener.MinVolume)
	cfg.Screener.MinOpenInterest = getEnvInt("SCREENER_MIN_OPEN_INTEREST", cfg.Screener.MinOpenInterest)
	cfg.Screener.MaxBidAskSpread = getEnvFloat("SCREENER_MAX_BID_ASK_SPREAD", cfg.Screener.MaxBidAskSpread)
	cfg.Screener.OptionType = getEnv("SCREENER_OPTION_TYPE", cfg.Screener.OptionType)
	cfg.Logging.LogLevel = getEnv("LOG_LEVEL", cfg.Logging.LogLevel)
	cfg.Logging.LogFile = getEnv("LOG_FILE", cfg.Logging.LogFile)
	cfg.CSV.FilenameFormat = getEnv("CSV_FILENAME_FORMAT", cfg.CSV.FilenameFormat)

	return cfg
}

// Timeout returns the backend request timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// SlowRequestThreshold returns the duration above which backend calls are logged as slow
func (c *Config) SlowRequestThreshold() time.Duration {
	return time.Duration(c.API.SlowRequestSeconds) * time.Second
}

// ExpirationsCacheTTL returns how long expiration lists are served from cache
func (c *Config) ExpirationsCacheTTL() time.Duration {
	return time.Duration(c.API.ExpirationsCacheMins) * time.Minute
}

func loadYAMLConfig(path string) *YAMLConfig {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Could not read config file - silently return nil
		return nil
	}

	var yamlCfg YAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		// Could not parse config file - silently return nil
		return nil
	}

	return &yamlCfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}

// FormatCSVFilename fills the configured filename template
func FormatCSVFilename(format string, now time.Time, tickerCount int) string {
	result := format
	result = strings.ReplaceAll(result, "{time}", now.Format("2006-01-02_15-04-05"))
	result = strings.ReplaceAll(result, "{tickers}", strconv.Itoa(tickerCount))
	return result
}
