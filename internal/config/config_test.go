package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_WithDefaults(t *testing.T) {
	// Clear all environment variables
	clearConfigEnvVars()

	// Set only required env var (the JWT secret has no default)
	os.Setenv("AUTH_JWT_SECRET", "test-secret")
	defer os.Unsetenv("AUTH_JWT_SECRET")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("Expected env development, got %s", cfg.Server.Env)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Expected default mongo URI, got %s", cfg.Mongo.URI)
	}
	if cfg.Mongo.Database != "leasehold" {
		t.Errorf("Expected db leasehold, got %s", cfg.Mongo.Database)
	}
	if cfg.Mongo.ListingCollection != "properties" {
		t.Errorf("Expected listing collection properties, got %s", cfg.Mongo.ListingCollection)
	}
	if cfg.Mongo.ConnectTimeout != 10*time.Second {
		t.Errorf("Expected connect timeout 10s, got %s", cfg.Mongo.ConnectTimeout)
	}
	if cfg.Redis.Address != "localhost:6379" {
		t.Errorf("Expected redis addr localhost:6379, got %s", cfg.Redis.Address)
	}
	if cfg.Redis.TTL != 30*time.Second {
		t.Errorf("Expected cache TTL 30s, got %s", cfg.Redis.TTL)
	}
	if cfg.Auth.JWTIssuer != "leasehold-auth" {
		t.Errorf("Expected issuer leasehold-auth, got %s", cfg.Auth.JWTIssuer)
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %d", len(cfg.CORS.Origins))
	}
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	// Set all environment variables
	os.Setenv("PORT", "9090")
	os.Setenv("ENV", "production")
	os.Setenv("MONGO_URI", "mongodb://mongo:27017")
	os.Setenv("MONGO_DB", "testdb")
	os.Setenv("MONGO_LISTING_COLLECTION", "listings")
	os.Setenv("MONGO_USER_COLLECTION", "profiles")
	os.Setenv("MONGO_MESSAGE_COLLECTION", "chat")
	os.Setenv("MONGO_CONNECT_TIMEOUT", "5s")
	os.Setenv("REDIS_ADDR", "redis:6380")
	os.Setenv("REDIS_PASSWORD", "redispass")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("CACHE_TTL", "1m")
	os.Setenv("CORS_ORIGINS", "http://example.com,https://app.example.com")
	os.Setenv("AUTH_JWT_SECRET", "prod-secret")
	os.Setenv("AUTH_JWT_ISSUER", "identity-provider")
	os.Setenv("AUTH_JWT_AUDIENCE", "leasehold-api")
	defer clearConfigEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify all values from environment
	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "production" {
		t.Errorf("Expected env production, got %s", cfg.Server.Env)
	}
	if cfg.Mongo.URI != "mongodb://mongo:27017" {
		t.Errorf("Expected mongo URI mongodb://mongo:27017, got %s", cfg.Mongo.URI)
	}
	if cfg.Mongo.Database != "testdb" {
		t.Errorf("Expected db testdb, got %s", cfg.Mongo.Database)
	}
	if cfg.Mongo.ListingCollection != "listings" {
		t.Errorf("Expected listing collection listings, got %s", cfg.Mongo.ListingCollection)
	}
	if cfg.Mongo.UserCollection != "profiles" {
		t.Errorf("Expected user collection profiles, got %s", cfg.Mongo.UserCollection)
	}
	if cfg.Mongo.MessageCollection != "chat" {
		t.Errorf("Expected message collection chat, got %s", cfg.Mongo.MessageCollection)
	}
	if cfg.Mongo.ConnectTimeout != 5*time.Second {
		t.Errorf("Expected connect timeout 5s, got %s", cfg.Mongo.ConnectTimeout)
	}
	if cfg.Redis.Address != "redis:6380" {
		t.Errorf("Expected redis addr redis:6380, got %s", cfg.Redis.Address)
	}
	if cfg.Redis.Password != "redispass" {
		t.Errorf("Expected redis password redispass, got %s", cfg.Redis.Password)
	}
	if cfg.Redis.DB != 2 {
		t.Errorf("Expected redis db 2, got %d", cfg.Redis.DB)
	}
	if cfg.Redis.TTL != time.Minute {
		t.Errorf("Expected cache TTL 1m, got %s", cfg.Redis.TTL)
	}
	if cfg.Auth.JWTSecret != "prod-secret" {
		t.Errorf("Expected JWT secret prod-secret, got %s", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.JWTIssuer != "identity-provider" {
		t.Errorf("Expected issuer identity-provider, got %s", cfg.Auth.JWTIssuer)
	}
	if cfg.Auth.JWTAudience != "leasehold-api" {
		t.Errorf("Expected audience leasehold-api, got %s", cfg.Auth.JWTAudience)
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %d", len(cfg.CORS.Origins))
	}
	if cfg.CORS.Origins[0] != "http://example.com" {
		t.Errorf("Expected first origin http://example.com, got %s", cfg.CORS.Origins[0])
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	// Clear all environment variables (the JWT secret has no default)
	clearConfigEnvVars()

	_, err := Load()
	if err == nil {
		t.Error("Expected error when AUTH_JWT_SECRET is missing")
	}
}

func TestValidate_InvalidDurations(t *testing.T) {
	tests := []struct {
		name           string
		connectTimeout time.Duration
		cacheTTL       time.Duration
		wantErr        bool
	}{
		{
			name:           "valid durations",
			connectTimeout: 10 * time.Second,
			cacheTTL:       30 * time.Second,
			wantErr:        false,
		},
		{
			name:           "zero connect timeout",
			connectTimeout: 0,
			cacheTTL:       30 * time.Second,
			wantErr:        true,
		},
		{
			name:           "negative cache TTL",
			connectTimeout: 10 * time.Second,
			cacheTTL:       -time.Second,
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server: ServerConfig{Port: "8080", Env: "test"},
				Mongo: MongoConfig{
					URI:               "mongodb://localhost:27017",
					Database:          "leasehold",
					ListingCollection: "properties",
					UserCollection:    "users",
					MessageCollection: "messages",
					ConnectTimeout:    tt.connectTimeout,
				},
				Redis: RedisConfig{
					Address: "localhost:6379",
					TTL:     tt.cacheTTL,
				},
				CORS: CORSConfig{Origins: []string{"http://localhost:3000"}},
				Auth: AuthConfig{JWTSecret: "secret"},
			}

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"two origins", "http://a.com,http://b.com", 2},
		{"whitespace trimmed", " http://a.com , http://b.com ", 2},
		{"empty string", "", 0},
		{"trailing comma", "http://a.com,", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOrigins(tt.input)
			if len(got) != tt.want {
				t.Errorf("Expected %d origins, got %d", tt.want, len(got))
			}
		})
	}
}

// clearConfigEnvVars unsets every env var the config reads so tests start
// from a clean slate.
func clearConfigEnvVars() {
	vars := []string{
		"PORT", "ENV",
		"MONGO_URI", "MONGO_DB", "MONGO_LISTING_COLLECTION",
		"MONGO_USER_COLLECTION", "MONGO_MESSAGE_COLLECTION", "MONGO_CONNECT_TIMEOUT",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL",
		"CORS_ORIGINS",
		"AUTH_JWT_SECRET", "AUTH_JWT_ISSUER", "AUTH_JWT_AUDIENCE",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
