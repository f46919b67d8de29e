// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, and external endpoints

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Endpoints contains external API endpoint configuration
	Endpoints EndpointsConfig

	// Search contains observation search defaults
	Search SearchConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RequestTimeout is the external HTTP client timeout in seconds
	RequestTimeout int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file location
	Path string
}

// EndpointsConfig holds the base URLs of every external API the
// application talks to. Each one can be pointed at a test server.
type EndpointsConfig struct {
	// WikidataAPI is the Wikidata action API endpoint
	WikidataAPI string

	// WikipediaAPI is the Wikipedia action API endpoint
	WikipediaAPI string

	// WikipediaREST is the Wikipedia REST summary endpoint
	WikipediaREST string

	// INaturalistAPI is the iNaturalist API base URL
	INaturalistAPI string

	// GeoIPAPI is the IP geolocation endpoint
	GeoIPAPI string

	// TranslateAPI is the translation endpoint
	TranslateAPI string

	// ClassifierAPI is the image classification inference endpoint
	ClassifierAPI string

	// ClassifierModel is the model identifier appended to ClassifierAPI
	ClassifierModel string
}

// SearchConfig holds observation search defaults
type SearchConfig struct {
	// DefaultRadiusKm is the search radius used when a request omits one
	DefaultRadiusKm int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8000"),
			RequestTimeout: getEnvAsIntOrDefault("REQUEST_TIMEOUT", 30),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "cache.db"),
			},
		},
		Endpoints: EndpointsConfig{
			WikidataAPI:     getEnvOrDefault("WIKIDATA_API_URL", "https://www.wikidata.org/w/api.php"),
			WikipediaAPI:    getEnvOrDefault("WIKIPEDIA_API_URL", "https://en.wikipedia.org/w/api.php"),
			WikipediaREST:   getEnvOrDefault("WIKIPEDIA_REST_URL", "https://en.wikipedia.org/api/rest_v1"),
			INaturalistAPI:  getEnvOrDefault("INATURALIST_API_URL", "https://api.inaturalist.org/v1"),
			GeoIPAPI:        getEnvOrDefault("GEOIP_API_URL", "http://ip-api.com/json"),
			TranslateAPI:    getEnvOrDefault("TRANSLATE_API_URL", "https://translate.googleapis.com/translate_a/single"),
			ClassifierAPI:   getEnvOrDefault("CLASSIFIER_API_URL", "https://api-inference.huggingface.co/models"),
			ClassifierModel: getEnvOrDefault("CLASSIFIER_MODEL", "Sisigoks/FloraSense"),
		},
		Search: SearchConfig{
			DefaultRadiusKm: getEnvAsIntOrDefault("DEFAULT_SEARCH_RADIUS_KM", 25),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RequestTimeout < 1 {
		return errors.New("request timeout must be at least 1 second")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" && c.Cache.Type != "sqlite" {
		return errors.New("cache type must be 'redis', 'memory' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Endpoints.ClassifierModel == "" {
		return errors.New("classifier model cannot be empty")
	}

	if c.Search.DefaultRadiusKm < 1 {
		return errors.New("default search radius must be at least 1 km")
	}

	return nil
}
