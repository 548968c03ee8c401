package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Server struct {
		Port     string
		GinMode  string
		LogLevel string
	}

	JWT struct {
		Secret string
		TTL    time.Duration
	}

	Ledger struct {
		RPCURL          string
		ContractAddress string
		PrivateKey      string
		Timeout         time.Duration
	}

	ObjectStore struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
	}

	CORS struct {
		AllowOrigins string
		AllowMethods string
		AllowHeaders string
	}
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "evote")
	config.DB.Password = getEnv("DB_PASSWORD", "evote_password")
	config.DB.Name = getEnv("DB_NAME", "evote_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	config.Server.Port = getEnv("PORT", "8080")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")
	config.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	config.JWT.Secret = getEnv("JWT_SECRET", "dev-secret-change-me")
	config.JWT.TTL = getEnvAsDuration("JWT_TTL", 24*time.Hour)

	config.Ledger.RPCURL = getEnv("LEDGER_RPC_URL", "")
	config.Ledger.ContractAddress = getEnv("LEDGER_CONTRACT_ADDRESS", "")
	config.Ledger.PrivateKey = getEnv("LEDGER_PRIVATE_KEY", "")
	config.Ledger.Timeout = getEnvAsDuration("LEDGER_TIMEOUT", 30*time.Second)

	config.ObjectStore.Endpoint = getEnv("OBJECTSTORE_ENDPOINT", "")
	config.ObjectStore.AccessKey = getEnv("OBJECTSTORE_ACCESS_KEY", "")
	config.ObjectStore.SecretKey = getEnv("OBJECTSTORE_SECRET_KEY", "")
	config.ObjectStore.Bucket = getEnv("OBJECTSTORE_BUCKET", "evote-uploads")
	config.ObjectStore.UseSSL = getEnvAsBool("OBJECTSTORE_USE_SSL", false)

	config.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")
	config.CORS.AllowMethods = getEnv("CORS_ALLOW_METHODS", "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS")
	config.CORS.AllowHeaders = getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type,Authorization")

	return config
}

// LedgerEnabled reports whether the on-chain vote attestation path is
// configured. Both the RPC endpoint and the contract address are required.
func (c *Config) LedgerEnabled() bool {
	return c.Ledger.RPCURL != "" && c.Ledger.ContractAddress != ""
}

// ObjectStoreEnabled reports whether S3-compatible photo storage is configured.
func (c *Config) ObjectStoreEnabled() bool {
	return c.ObjectStore.Endpoint != ""
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
