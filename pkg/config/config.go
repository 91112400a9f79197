package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BodyStoreFile  = "file"
	BodyStoreRedis = "redis"

	FetcherHTTP     = "http"
	FetcherChromedp = "chromedp"
)

// Config stores all configuration for the application.
type Config struct {
	SeedURL  string `mapstructure:"SEED_URL"`
	Keywords string `mapstructure:"KEYWORDS"`

	BodyStoreBackend string `mapstructure:"BODY_STORE_BACKEND"`
	BodyStorePath    string `mapstructure:"BODY_STORE_PATH"`
	BodyStoreKey     string `mapstructure:"BODY_STORE_KEY"`
	BodyStoreFormat  string `mapstructure:"BODY_STORE_FORMAT"`

	Fetcher       string `mapstructure:"FETCHER"`
	FetchTimeout  int    `mapstructure:"FETCH_TIMEOUT"`
	LoaderWorkers int    `mapstructure:"LOADER_WORKERS"`

	AuthorityWeight             int  `mapstructure:"AUTHORITY_WEIGHT"`
	QueryWeight                 int  `mapstructure:"QUERY_WEIGHT"`
	SelfReferencePenalty        int  `mapstructure:"SELF_REFERENCE_PENALTY"`
	SelfReferencePenalizesCalls bool `mapstructure:"SELF_REFERENCE_PENALIZES_CALLS"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	PostgresURL string `mapstructure:"POSTGRES_URL"`
	ServerPort  string `mapstructure:"SERVER_PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"SEED_URL":                       "https://lucasfarias072.github.io/mock-web-page-blade-runner/",
	"KEYWORDS":                       "matrix,ficção científica,realidade,universo,viagem",
	"BODY_STORE_BACKEND":             BodyStoreFile,
	"BODY_STORE_PATH":                "./bodies.txt",
	"BODY_STORE_KEY":                 "linkrank:bodies",
	"BODY_STORE_FORMAT":              "tagged",
	"FETCHER":                        FetcherHTTP,
	"FETCH_TIMEOUT":                  30, // in seconds
	"LOADER_WORKERS":                 1,
	"AUTHORITY_WEIGHT":               10,
	"QUERY_WEIGHT":                   5,
	"SELF_REFERENCE_PENALTY":         -15,
	"SELF_REFERENCE_PENALIZES_CALLS": true,
	"REDIS_ADDR":                     "localhost:6379",
	"REDIS_PASSWORD":                 "",
	"REDIS_DB":                       0,
	"POSTGRES_URL":                   "",
	"SERVER_PORT":                    "8080",
	"LOG_LEVEL":                      "info",
}

// Load reads configuration from the given .env file and environment variables.
// A missing file is not an error, so production can rely on the environment alone.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.BodyStoreBackend {
	case BodyStoreFile, BodyStoreRedis:
	default:
		return fmt.Errorf("unknown BODY_STORE_BACKEND %q", c.BodyStoreBackend)
	}
	switch c.Fetcher {
	case FetcherHTTP, FetcherChromedp:
	default:
		return fmt.Errorf("unknown FETCHER %q", c.Fetcher)
	}
	if c.LoaderWorkers < 1 {
		return fmt.Errorf("LOADER_WORKERS must be at least 1, got %d", c.LoaderWorkers)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("FETCH_TIMEOUT must not be negative, got %d", c.FetchTimeout)
	}
	return nil
}

// KeywordList splits the comma separated KEYWORDS setting.
func (c *Config) KeywordList() []string {
	var out []string
	for _, k := range strings.Split(c.Keywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// FetchTimeoutDuration returns FETCH_TIMEOUT as a duration. Zero disables the timeout.
func (c *Config) FetchTimeoutDuration() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}
