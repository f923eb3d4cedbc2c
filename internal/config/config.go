package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	CORS   CORSConfig
	Auth   AuthConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// MongoConfig holds document store connection configuration.
type MongoConfig struct {
	URI               string
	Database          string
	ListingCollection string
	UserCollection    string
	MessageCollection string
	ConnectTimeout    time.Duration
}

// RedisConfig holds listing-cache configuration.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// AuthConfig holds settings for verifying identity-provider access tokens.
// Token issuance stays with the external provider; the API only checks the
// signature and the issuer/audience claims.
type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
}

// Load reads configuration from environment variables.
// It uses viper to read values and provides sensible defaults for development.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults for development
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "leasehold")
	v.SetDefault("MONGO_LISTING_COLLECTION", "properties")
	v.SetDefault("MONGO_USER_COLLECTION", "users")
	v.SetDefault("MONGO_MESSAGE_COLLECTION", "messages")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")
	v.SetDefault("AUTH_JWT_ISSUER", "leasehold-auth")

	// Bind environment variables
	v.AutomaticEnv()

	// Build configuration
	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Mongo: MongoConfig{
			URI:               v.GetString("MONGO_URI"),
			Database:          v.GetString("MONGO_DB"),
			ListingCollection: v.GetString("MONGO_LISTING_COLLECTION"),
			UserCollection:    v.GetString("MONGO_USER_COLLECTION"),
			MessageCollection: v.GetString("MONGO_MESSAGE_COLLECTION"),
			ConnectTimeout:    v.GetDuration("MONGO_CONNECT_TIMEOUT"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		Auth: AuthConfig{
			JWTSecret:   v.GetString("AUTH_JWT_SECRET"),
			JWTIssuer:   v.GetString("AUTH_JWT_ISSUER"),
			JWTAudience: v.GetString("AUTH_JWT_AUDIENCE"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	// Validate document store config
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("MONGO_DB is required")
	}
	if c.Mongo.ListingCollection == "" {
		return fmt.Errorf("MONGO_LISTING_COLLECTION is required")
	}
	if c.Mongo.UserCollection == "" {
		return fmt.Errorf("MONGO_USER_COLLECTION is required")
	}
	if c.Mongo.MessageCollection == "" {
		return fmt.Errorf("MONGO_MESSAGE_COLLECTION is required")
	}
	if c.Mongo.ConnectTimeout <= 0 {
		return fmt.Errorf("MONGO_CONNECT_TIMEOUT must be positive")
	}

	// Validate cache config
	if c.Redis.Address == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}
	if c.Redis.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	// Validate auth config
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	// Validate CORS config
	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	return nil
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
