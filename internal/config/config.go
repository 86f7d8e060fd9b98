package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	Auth   AuthConfig
	Client ClientConfig
	CORS   CORSConfig
	Server ServerConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port int
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// AuthConfig describes the external identity provider. Tokens are never
// issued by this service; they are only verified against the provider's
// published key set.
type AuthConfig struct {
	Domain   string
	Audience string
}

// ClientConfig holds the non-secret values exposed to the web client
// through GET /api/config.
type ClientConfig struct {
	APIURL   string
	ClientID string
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
}

func Load(env string) (*Config, error) {
	if err := loadEnvFile(env); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "cufc-member-api"),
			Env:  env,
			Port: getEnvAsInt("APP_PORT", 8080),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", ""),
			Database:       getEnv("MONGO_DATABASE", "cufc"),
			ConnectTimeout: getEnvAsDuration("MONGO_CONNECT_TIMEOUT", "10s"),
		},
		Auth: AuthConfig{
			Domain:   getEnv("AUTH0_DOMAIN", ""),
			Audience: getEnv("AUTH0_AUDIENCE", ""),
		},
		Client: ClientConfig{
			APIURL:   getEnv("API_URL", ""),
			ClientID: getEnv("AUTH0_CLIENT_ID", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},
		Server: ServerConfig{
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			GracefulTimeout: getEnvAsDuration("GRACEFUL_TIMEOUT", "30s"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadEnvFile(env string) error {
	envFile := fmt.Sprintf(".env.%s", env)

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Warn("env file not found, falling back to system environment",
			"file", envFile)
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to read env file %s: %w", envFile, err)
	}

	absPath, _ := filepath.Abs(envFile)
	slog.Info("env file loaded", "file", absPath)
	return nil
}

func (c *Config) Validate() error {
	var errors []string

	// App validation
	if c.App.Port < 1 || c.App.Port > 65535 {
		errors = append(errors, "invalid port number")
	}

	// Datastore validation
	if c.Mongo.URI == "" {
		errors = append(errors, "MONGO_URI is required")
	}

	// Identity provider validation
	if c.Auth.Domain == "" {
		errors = append(errors, "AUTH0_DOMAIN is required")
	}
	if c.Auth.Audience == "" {
		errors = append(errors, "AUTH0_AUDIENCE is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errors, ", "))
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "local" || c.App.Env == "dev"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "prod"
}

// Environment returns the environment name exposed to the web client.
// An unset environment reports "development".
func (c *Config) Environment() string {
	if c.App.Env == "" {
		return "development"
	}
	return c.App.Env
}

// Issuer returns the expected token issuer, derived from the provider domain.
func (c *AuthConfig) Issuer() string {
	return fmt.Sprintf("https://%s/", c.Domain)
}

// JWKSURL returns the provider's published signing-key set endpoint.
func (c *AuthConfig) JWKSURL() string {
	return fmt.Sprintf("https://%s/.well-known/jwks.json", c.Domain)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if defaultDuration, err := time.ParseDuration(defaultValue); err == nil {
		return defaultDuration
	}
	return 0
}
