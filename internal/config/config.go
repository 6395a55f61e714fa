// Package config loads service settings from an optional .env file, an optional
// YAML file at CONFIG_PATH and environment variables, in that order of precedence
// from lowest to highest.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv   string         `yaml:"app_env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Amadeus  AmadeusConfig  `yaml:"amadeus"`
	Cache    CacheConfig    `yaml:"cache"`
	Airports AirportsConfig `yaml:"airports"`
}

type HTTPConfig struct {
	Address        string        `yaml:"address"`
	RateLimitRPS   float64       `yaml:"rate_limit_rps"`
	RateLimitBurst int           `yaml:"rate_limit_burst"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// Enabled reports whether a fare history database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type KafkaConfig struct {
	Brokers     []string `yaml:"brokers"`
	SearchTopic string   `yaml:"search_topic"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type AmadeusConfig struct {
	BaseURL      string        `yaml:"base_url"`
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxOffers    int           `yaml:"max_offers"`
}

func (a AmadeusConfig) Enabled() bool {
	return a.ClientID != "" && a.ClientSecret != ""
}

type CacheConfig struct {
	SearchTTL time.Duration `yaml:"search_ttl"`
	// FallbackSearchTTL caches estimates served after a live provider failure.
	FallbackSearchTTL time.Duration `yaml:"fallback_search_ttl"`
	CalendarTTL       time.Duration `yaml:"calendar_ttl"`
	SamplesTTL        time.Duration `yaml:"samples_ttl"`
	// HistoryTimeout bounds each fare history lookup.
	HistoryTimeout time.Duration `yaml:"history_timeout"`
}

// AirportsConfig names the airports used when free text cannot be resolved.
// Empty codes fall back to the first and second directory entries.
type AirportsConfig struct {
	DefaultOrigin      string `yaml:"default_origin"`
	DefaultDestination string `yaml:"default_destination"`
}

func Default() *Config {
	return &Config{
		AppEnv: "development",
		HTTP: HTTPConfig{
			Address:        ":8080",
			RateLimitRPS:   5,
			RateLimitBurst: 20,
			AllowedOrigins: []string{"https://*", "http://localhost:5173"},
			RequestTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Port:    5432,
			SSLMode: "disable",
		},
		Kafka: KafkaConfig{
			SearchTopic: "flight-searches",
		},
		Amadeus: AmadeusConfig{
			BaseURL:   "https://test.api.amadeus.com",
			Timeout:   8 * time.Second,
			MaxOffers: 10,
		},
		Cache: CacheConfig{
			SearchTTL:         2 * time.Minute,
			FallbackSearchTTL: 15 * time.Second,
			CalendarTTL:       15 * time.Minute,
			SamplesTTL:        10 * time.Minute,
			HistoryTimeout:    2 * time.Second,
		},
	}
}

// Load builds the configuration. A missing .env or YAML file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)

	c.HTTP.Address = getEnv("HTTP_ADDR", c.HTTP.Address)
	c.HTTP.RateLimitRPS = getFloat("RATE_LIMIT_RPS", c.HTTP.RateLimitRPS)
	c.HTTP.RateLimitBurst = getInt("RATE_LIMIT_BURST", c.HTTP.RateLimitBurst)
	c.HTTP.AllowedOrigins = getList("CORS_ALLOWED_ORIGINS", c.HTTP.AllowedOrigins)
	c.HTTP.RequestTimeout = getDuration("HTTP_REQUEST_TIMEOUT", c.HTTP.RequestTimeout)

	c.Database.Host = getEnv("PG_HOST", c.Database.Host)
	c.Database.Port = getInt("PG_PORT", c.Database.Port)
	c.Database.User = getEnv("PG_USER", c.Database.User)
	c.Database.Password = getEnv("PG_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("PG_DB", c.Database.Name)
	c.Database.SSLMode = getEnv("PG_SSLMODE", c.Database.SSLMode)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getInt("REDIS_DB", c.Redis.DB)

	c.Kafka.Brokers = getList("KAFKA_BROKERS", c.Kafka.Brokers)
	c.Kafka.SearchTopic = getEnv("KAFKA_SEARCH_TOPIC", c.Kafka.SearchTopic)

	c.Amadeus.BaseURL = getEnv("AMADEUS_BASE_URL", c.Amadeus.BaseURL)
	c.Amadeus.ClientID = getEnv("AMADEUS_API_KEY", c.Amadeus.ClientID)
	c.Amadeus.ClientSecret = getEnv("AMADEUS_API_SECRET", c.Amadeus.ClientSecret)
	c.Amadeus.Timeout = getDuration("AMADEUS_TIMEOUT", c.Amadeus.Timeout)
	c.Amadeus.MaxOffers = getInt("AMADEUS_MAX_OFFERS", c.Amadeus.MaxOffers)

	c.Cache.SearchTTL = getDuration("CACHE_SEARCH_TTL", c.Cache.SearchTTL)
	c.Cache.FallbackSearchTTL = getDuration("CACHE_FALLBACK_SEARCH_TTL", c.Cache.FallbackSearchTTL)
	c.Cache.CalendarTTL = getDuration("CACHE_CALENDAR_TTL", c.Cache.CalendarTTL)
	c.Cache.SamplesTTL = getDuration("CACHE_SAMPLES_TTL", c.Cache.SamplesTTL)
	c.Cache.HistoryTimeout = getDuration("FARE_HISTORY_TIMEOUT", c.Cache.HistoryTimeout)

	c.Airports.DefaultOrigin = getEnv("DEFAULT_ORIGIN_AIRPORT", c.Airports.DefaultOrigin)
	c.Airports.DefaultDestination = getEnv("DEFAULT_DESTINATION_AIRPORT", c.Airports.DefaultDestination)
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	var problems []string
	if c.HTTP.Address == "" {
		problems = append(problems, "http address is required")
	}
	if c.HTTP.RateLimitRPS <= 0 {
		problems = append(problems, "rate limit rps must be positive")
	}
	if c.HTTP.RateLimitBurst <= 0 {
		problems = append(problems, "rate limit burst must be positive")
	}
	if c.Amadeus.Timeout <= 0 {
		problems = append(problems, "amadeus timeout must be positive")
	}
	if c.Amadeus.MaxOffers <= 0 {
		problems = append(problems, "amadeus max offers must be positive")
	}
	if c.Cache.SearchTTL <= 0 || c.Cache.FallbackSearchTTL <= 0 || c.Cache.CalendarTTL <= 0 || c.Cache.SamplesTTL <= 0 {
		problems = append(problems, "cache ttls must be positive")
	}
	if c.Cache.HistoryTimeout <= 0 {
		problems = append(problems, "fare history timeout must be positive")
	}
	if c.Kafka.Enabled() && c.Kafka.SearchTopic == "" {
		problems = append(problems, "kafka search topic is required when brokers are set")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
