// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage and journal drivers.
const (
	DriverMinio  = "minio"
	DriverS3     = "s3"
	DriverMemory = "memory"

	JournalBucket   = "bucket"
	JournalPostgres = "postgres"
)

const defaultJWTSecret = "change_me_in_production"

// Config holds all runtime configuration for the service.
type Config struct {
	Port       string
	AppEnv     string
	UseSandbox bool
	LogLevel   string

	JWTSecret     string
	AdminUsername string
	AdminPassword string

	// Object storage. The AWS_* names are shared by every driver so the same
	// credentials work against S3 and S3-compatible providers.
	StorageDriver            string
	StorageEndpoint          string
	StorageAccessKey         string
	StorageSecretKey         string
	StorageRegion            string
	StorageBucket            string
	StorageUseSSL            bool
	StorageConditionalWrites bool
	ListPageSize             int

	JournalDriver string
	DatabaseURL   string

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// ConfigValidation reports which storage credentials are present, without
// exposing their values.
type ConfigValidation struct {
	HasAWSAccess bool `json:"hasAWSAccess"`
	HasAWSSecret bool `json:"hasAWSSecret"`
	HasAWSRegion bool `json:"hasAWSRegion"`
	HasAWSBucket bool `json:"hasAWSBucket"`
}

// Complete reports whether every storage setting is present.
func (v ConfigValidation) Complete() bool {
	return v.HasAWSAccess && v.HasAWSSecret && v.HasAWSRegion && v.HasAWSBucket
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() *Config {
	loaded := godotenv.Load() == nil

	driver := strings.ToLower(getEnv("STORAGE_DRIVER", DriverMinio))
	// MinIO needs an endpoint; S3 falls back to the AWS regional endpoint.
	endpointFallback := ""
	if driver == DriverMinio {
		endpointFallback = "localhost:9000"
	}

	return &Config{
		Port:       getEnv("PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),
		UseSandbox: getEnvBool("USE_SANDBOX", false),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		JWTSecret:     getEnv("JWT_SECRET", defaultJWTSecret),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		StorageDriver:            driver,
		StorageEndpoint:          getEnv("STORAGE_ENDPOINT", endpointFallback),
		StorageAccessKey:         os.Getenv("AWS_ACCESS_KEY_ID"),
		StorageSecretKey:         os.Getenv("AWS_SECRET_ACCESS_KEY"),
		StorageRegion:            os.Getenv("AWS_REGION"),
		StorageBucket:            os.Getenv("AWS_S3_BUCKET_NAME"),
		StorageUseSSL:            getEnvBool("STORAGE_USE_SSL", false),
		StorageConditionalWrites: getEnvBool("STORAGE_CONDITIONAL_WRITES", true),
		ListPageSize:             getEnvInt("LIST_PAGE_SIZE", 0),

		JournalDriver: strings.ToLower(getEnv("JOURNAL_DRIVER", JournalBucket)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		EnvFileLoaded: loaded,
	}
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AuthEnabled reports whether API routes require a session token. Local
// development without the sandbox flag runs unauthenticated.
func (c *Config) AuthEnabled() bool {
	return c.AppEnv != "development" || c.UseSandbox
}

// Validate reports which storage credentials are configured.
func (c *Config) Validate() ConfigValidation {
	return ConfigValidation{
		HasAWSAccess: c.StorageAccessKey != "",
		HasAWSSecret: c.StorageSecretKey != "",
		HasAWSRegion: c.StorageRegion != "",
		HasAWSBucket: c.StorageBucket != "",
	}
}

// Problems lists settings that prevent the service from starting.
func (c *Config) Problems() []string {
	var problems []string
	if c.StorageBucket == "" {
		problems = append(problems, "AWS_S3_BUCKET_NAME is required")
	}
	switch c.StorageDriver {
	case DriverMinio, DriverS3, DriverMemory:
	default:
		problems = append(problems, "STORAGE_DRIVER must be one of minio, s3, memory")
	}
	switch c.JournalDriver {
	case JournalBucket:
	case JournalPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required with JOURNAL_DRIVER=postgres")
		}
	default:
		problems = append(problems, "JOURNAL_DRIVER must be one of bucket, postgres")
	}
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		problems = append(problems, "JWT_SECRET must be set in production")
	}
	if c.AuthEnabled() && c.AdminPassword == "" {
		problems = append(problems, "ADMIN_PASSWORD is required when authentication is enabled")
	}
	return problems
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
