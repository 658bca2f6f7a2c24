package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// LLM providers
const (
	ProviderZo   = "zo"
	ProviderGroq = "groq"
)

// Storage backends
const (
	StorageMinio      = "minio"
	StorageFilesystem = "filesystem"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Pulse    PulseConfig
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	Passcode        string   `envconfig:"SIGNAL_PULSE_PASSCODE"`
	PasscodeSet     bool     `ignored:"true"`
}

// LLMConfig holds the model provider configuration
type LLMConfig struct {
	Provider         string        `envconfig:"LLM_PROVIDER" default:"zo"`
	ZoAPIKey         string        `envconfig:"ZO_API_KEY"`
	ZoIdentityToken  string        `envconfig:"ZO_CLIENT_IDENTITY_TOKEN"`
	ZoBaseURL        string        `envconfig:"ZO_API_URL" default:"https://api.zo.computer"`
	ZoModel          string        `envconfig:"ZO_MODEL" default:"openai:gpt-5.2-2025-12-11"`
	GroqAPIKey       string        `envconfig:"GROQ_API_KEY"`
	GroqBaseURL      string        `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	GroqModel        string        `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	Timeout          time.Duration `envconfig:"LLM_TIMEOUT" default:"120s"`
	MaxElapsed       time.Duration `envconfig:"LLM_MAX_ELAPSED" default:"3m"`
	SaveRawOnFailure bool          `envconfig:"LLM_SAVE_RAW_ON_FAILURE" default:"true"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled     bool   `envconfig:"DB_ENABLED" default:"false"`
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"signal_pulse"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled      bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host         string `envconfig:"REDIS_HOST" default:"localhost"`
	Port         string `envconfig:"REDIS_PORT" default:"6379"`
	Password     string `envconfig:"REDIS_PASSWORD"`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	HistoryLimit int    `envconfig:"HISTORY_LIMIT" default:"500"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Type            string `envconfig:"STORAGE_TYPE" default:"filesystem"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"signal-pulse"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	Region          string `envconfig:"STORAGE_REGION" default:"us-east-1"`
	Root            string `envconfig:"STORAGE_ROOT" default:"signal-pulse-runs"`
}

// PulseConfig holds report defaults
type PulseConfig struct {
	DefaultTone    string `envconfig:"DEFAULT_TONE" default:"Structured professional"`
	ReportTimezone string `envconfig:"REPORT_TIMEZONE" default:"America/New_York"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	return FromEnv()
}

// FromEnv populates the configuration from the process environment only
func FromEnv() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	_, config.Server.PasscodeSet = os.LookupEnv("SIGNAL_PULSE_PASSCODE")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderZo, ProviderGroq:
	default:
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderZo, ProviderGroq, c.LLM.Provider)
	}
	switch c.Storage.Type {
	case StorageMinio, StorageFilesystem:
	default:
		return fmt.Errorf("STORAGE_TYPE must be %q or %q, got %q", StorageMinio, StorageFilesystem, c.Storage.Type)
	}
	if c.Redis.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive")
	}
	if _, err := time.LoadLocation(c.Pulse.ReportTimezone); err != nil {
		return fmt.Errorf("REPORT_TIMEZONE is invalid: %w", err)
	}
	return nil
}

// ZoToken returns the Zo credential, preferring the API key over the identity token
func (c *Config) ZoToken() string {
	if key := strings.TrimSpace(c.LLM.ZoAPIKey); key != "" {
		return key
	}
	return strings.TrimSpace(c.LLM.ZoIdentityToken)
}

// ZoAuthorization returns the authorization header value for Zo. Access
// tokens use the bearer scheme, identity tokens are sent as is.
func (c *Config) ZoAuthorization() string {
	if key := strings.TrimSpace(c.LLM.ZoAPIKey); key != "" {
		return "Bearer " + key
	}
	return strings.TrimSpace(c.LLM.ZoIdentityToken)
}

// LLMToken returns the credential of the configured provider
func (c *Config) LLMToken() string {
	if c.LLM.Provider == ProviderGroq {
		return strings.TrimSpace(c.LLM.GroqAPIKey)
	}
	return c.ZoToken()
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
