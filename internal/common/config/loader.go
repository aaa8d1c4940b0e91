// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	return load(v, true)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	return load(v, false)
}

func load(v *viper.Viper, mergeEnvFile bool) (*Config, error) {
	// Enable ENV override like DATABASE_POSTGRES_HOST
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || !mergeEnvFile {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	if mergeEnvFile {
		env := os.Getenv("APP_ENVIRONMENT")
		if env == "" {
			env = "development"
		}
		v.SetConfigName(fmt.Sprintf("config.%s", env))
		_ = v.MergeInConfig() // ignore error if not found
	}

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the first of several candidate locations.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env", // tests in test/e2e/
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.Sources.DataGov.APIKey == "" {
		if val := os.Getenv("DATA_GOV_API_KEY"); val != "" {
			cfg.Sources.DataGov.APIKey = val
		}
	}

	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}

	if cfg.Survey.SNSTopicARN == "" {
		if val := os.Getenv("SURVEY_SNS_TOPIC_ARN"); val != "" {
			cfg.Survey.SNSTopicARN = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "rural-assist"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 45000
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 40000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	// Camunda defaults
	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	// Database defaults
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	// Source defaults
	if cfg.Sources.DataGov.BaseURL == "" {
		cfg.Sources.DataGov.BaseURL = "https://api.data.gov.in"
	}
	if cfg.Sources.ABDM.BaseURL == "" {
		cfg.Sources.ABDM.BaseURL = "https://facility.abdm.gov.in"
	}
	if cfg.Sources.Postal.BaseURL == "" {
		cfg.Sources.Postal.BaseURL = "https://api.postalpincode.in"
	}
	if cfg.Sources.RateLimitPerMinute == 0 {
		cfg.Sources.RateLimitPerMinute = 100
	}
	if cfg.Sources.Timeout == 0 {
		cfg.Sources.Timeout = 30000
	}
	if cfg.Sources.Breaker.MaxRequests == 0 {
		cfg.Sources.Breaker.MaxRequests = 1
	}
	if cfg.Sources.Breaker.Interval == 0 {
		cfg.Sources.Breaker.Interval = 60000
	}
	if cfg.Sources.Breaker.OpenTimeout == 0 {
		cfg.Sources.Breaker.OpenTimeout = 30000
	}
	if cfg.Sources.Breaker.ConsecutiveFailures == 0 {
		cfg.Sources.Breaker.ConsecutiveFailures = 5
	}

	// Scraper defaults
	if cfg.Scraper.UserAgent == "" {
		cfg.Scraper.UserAgent = "Mozilla/5.0 (compatible; rural-assist/1.0)"
	}
	if cfg.Scraper.Timeout == 0 {
		cfg.Scraper.Timeout = 30000
	}
	if cfg.Scraper.PMAYGURL == "" {
		cfg.Scraper.PMAYGURL = "https://pmayg.nic.in"
	}
	if cfg.Scraper.PMAYUURL == "" {
		cfg.Scraper.PMAYUURL = "https://pmay-urban.gov.in"
	}
	if cfg.Scraper.AgmarknetURL == "" {
		cfg.Scraper.AgmarknetURL = "https://agmarknet.gov.in/SearchCmmMkt.aspx"
	}

	// Calibration defaults
	if cfg.Classifier.KeywordWeight == 0 && cfg.Classifier.PatternWeight == 0 {
		cfg.Classifier.KeywordWeight = 0.6
		cfg.Classifier.PatternWeight = 0.4
	}
	if cfg.Classifier.FallbackConfidence == 0 {
		cfg.Classifier.FallbackConfidence = 0.1
	}
	if cfg.Classifier.ValidationThreshold == 0 {
		cfg.Classifier.ValidationThreshold = 0.5
	}
	if cfg.Sentiment.IntensifierWeight == 0 {
		cfg.Sentiment.IntensifierWeight = 1.5
	}
	if cfg.Sentiment.NeutralFloor == 0 {
		cfg.Sentiment.NeutralFloor = 0.1
	}
	if cfg.Sentiment.NegationWindow == 0 {
		cfg.Sentiment.NegationWindow = 3
	}
	if cfg.Sentiment.IntensifierWindow == 0 {
		cfg.Sentiment.IntensifierWindow = 2
	}
	if cfg.Sentiment.BatchConcurrency == 0 {
		cfg.Sentiment.BatchConcurrency = 8
	}

	// Session, cache and knowledge base
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 30 * 60 * 1000
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 10 * 60 * 1000
	}
	if cfg.Knowledge.Index == "" {
		cfg.Knowledge.Index = "faqs"
	}
	if cfg.Knowledge.Timeout == 0 {
		cfg.Knowledge.Timeout = 5000
	}
	if cfg.Knowledge.MinHits == 0 {
		cfg.Knowledge.MinHits = 1
	}
	if cfg.Survey.RecentLimit == 0 {
		cfg.Survey.RecentLimit = 10
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Registry.Path == "" {
		cfg.Registry.Path = "configs/activity-registry.json"
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		if worker.MaxRetries == 0 {
			worker.MaxRetries = 3
		}
		cfg.Workers[key] = worker
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", cfg.Server.Port)
	}

	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if cfg.Database.Postgres.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}

	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}

	if sum := cfg.Classifier.KeywordWeight + cfg.Classifier.PatternWeight; sum <= 0 || sum > 1.0001 {
		return fmt.Errorf("classifier keyword_weight + pattern_weight must be in (0, 1], got %.3f", sum)
	}
	if cfg.Sentiment.IntensifierWeight < 1 {
		return fmt.Errorf("sentiment.intensifier_weight must be >= 1")
	}

	if cfg.Survey.NotifyNegative && cfg.Integrations.AWS.SNS.Enabled && cfg.Survey.SNSTopicARN == "" {
		return fmt.Errorf("survey.sns_topic_arn is required when negative-opinion alerts are enabled")
	}

	return nil
}

// ValidateWorkerMode checks settings required only by the job-worker command.
func ValidateWorkerMode(cfg *Config) error {
	if cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}

	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    3,
	}
}

// IsWorkerEnabled checks if a specific worker is enabled
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker.Enabled
	}
	return true
}
