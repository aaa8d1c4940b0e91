// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig               `mapstructure:"app"`
	Server       ServerConfig            `mapstructure:"server"`
	Camunda      CamundaConfig           `mapstructure:"camunda"`
	Database     DatabaseConfig          `mapstructure:"database"`
	Sources      SourcesConfig           `mapstructure:"sources"`
	Scraper      ScraperConfig           `mapstructure:"scraper"`
	Classifier   ClassifierConfig        `mapstructure:"classifier"`
	Sentiment    SentimentConfig         `mapstructure:"sentiment"`
	Responses    ResponsesConfig         `mapstructure:"responses"`
	Session      SessionConfig           `mapstructure:"session"`
	Cache        CacheConfig             `mapstructure:"cache"`
	Knowledge    KnowledgeConfig         `mapstructure:"knowledge"`
	Survey       SurveyConfig            `mapstructure:"survey"`
	Workers      map[string]WorkerConfig `mapstructure:"workers"`
	Integrations IntegrationConfig       `mapstructure:"integrations"`
	Logging      LoggingConfig           `mapstructure:"logging"`
	Registry     RegistryConfig          `mapstructure:"registry"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Mode            string `mapstructure:"mode"`             // gin mode: debug, release, test
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	RequestTimeout  int    `mapstructure:"request_timeout"`  // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// Address returns host:port for the HTTP listener.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

// Enabled reports whether any Elasticsearch endpoint is configured.
func (e ElasticsearchConfig) Enabled() bool {
	return e.GetURL() != ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every job worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// --- Data Source Chain ---

// SourcesConfig configures the live API tier.
type SourcesConfig struct {
	DataGov struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
	} `mapstructure:"data_gov"`
	ABDM struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"abdm"`
	Postal struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"postal"`

	RateLimitPerMinute int           `mapstructure:"rate_limit_per_minute"`
	Timeout            int           `mapstructure:"timeout"` // milliseconds, per tier attempt
	MaxRetries         int           `mapstructure:"max_retries"`
	Breaker            BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig configures the per-API circuit breaker.
type BreakerConfig struct {
	MaxRequests         uint32 `mapstructure:"max_requests"`
	Interval            int    `mapstructure:"interval"` // milliseconds
	OpenTimeout         int    `mapstructure:"open_timeout"`
	ConsecutiveFailures uint32 `mapstructure:"consecutive_failures"`
}

// ScraperConfig configures the scraped-page tier.
type ScraperConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	UserAgent    string `mapstructure:"user_agent"`
	Timeout      int    `mapstructure:"timeout"` // milliseconds
	PMAYGURL     string `mapstructure:"pmayg_url"`
	PMAYUURL     string `mapstructure:"pmayu_url"`
	AgmarknetURL string `mapstructure:"agmarknet_url"`
}

// --- Calibration ---

// ClassifierConfig exposes the intent scoring constants.
type ClassifierConfig struct {
	KeywordWeight       float64 `mapstructure:"keyword_weight"`
	PatternWeight       float64 `mapstructure:"pattern_weight"`
	FallbackConfidence  float64 `mapstructure:"fallback_confidence"`
	ValidationThreshold float64 `mapstructure:"validation_threshold"`
}

// SentimentConfig exposes the sentiment scoring constants.
type SentimentConfig struct {
	IntensifierWeight float64 `mapstructure:"intensifier_weight"`
	NeutralFloor      float64 `mapstructure:"neutral_floor"`
	NegationWindow    int     `mapstructure:"negation_window"`
	IntensifierWindow int     `mapstructure:"intensifier_window"`
	BatchConcurrency  int     `mapstructure:"batch_concurrency"`
}

// ResponsesConfig configures the response assembler. A zero seed means
// seed from the clock.
type ResponsesConfig struct {
	RandomSeed int64 `mapstructure:"random_seed"`
}

type SessionConfig struct {
	TTL int `mapstructure:"ttl"` // milliseconds
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	TTL     int  `mapstructure:"ttl"` // milliseconds
}

// KnowledgeConfig configures FAQ search.
type KnowledgeConfig struct {
	Index   string `mapstructure:"index"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
	MinHits int    `mapstructure:"min_hits"`
}

// SurveyConfig configures survey persistence and alerting.
type SurveyConfig struct {
	NotifyNegative bool   `mapstructure:"notify_negative"`
	SNSTopicARN    string `mapstructure:"sns_topic_arn"`
	SESFrom        string `mapstructure:"ses_from"`
	SESTo          string `mapstructure:"ses_to"`
	RecentLimit    int    `mapstructure:"recent_limit"`
}

// IntegrationConfig holds settings for external cloud services.
type IntegrationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled bool `mapstructure:"enabled"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled bool `mapstructure:"enabled"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// RegistryConfig points at the job-type registry file.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}
