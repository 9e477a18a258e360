package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Local store backends.
const (
	LocalStoreRedis  = "redis"
	LocalStoreMemory = "memory"
)

type Config struct {
	Environment         string // ENV: production, development, etc.
	Port                string
	Host                string   // Raw HOST env (e.g. https://api.example.com)
	AllowedHost         string   // Hostname only, production host check
	AllowedOrigins      []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	TrustProxy          bool     // honour X-Forwarded-For when resolving client IPs
	LogLevel            string
	MongoURI            string
	MongoDatabase       string
	PostgresURI         string
	RedisURI            string
	LocalStore          string // redis | memory
	BackupEnabled       bool
	RemoteRecentLimit   int           // page size of the remote "most recent" list query
	RemoteTimeout       time.Duration // per remote call
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))
	host := getEnv("HOST", "http://localhost:8080")

	// AllowedHost is only set in production; host check is skipped in development
	var allowedHost string
	if env == "production" {
		allowedHost = hostname(host)
	}

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" && !containsOrigin(allowedOrigins, u) {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	localStore := strings.ToLower(strings.TrimSpace(getEnv("LOCAL_STORE", LocalStoreRedis)))
	if localStore != LocalStoreMemory {
		localStore = LocalStoreRedis
	}

	return &Config{
		Environment:         env,
		Port:                getEnv("PORT", "8080"),
		Host:                host,
		AllowedHost:         allowedHost,
		AllowedOrigins:      allowedOrigins,
		TrustProxy:          getBool("TRUST_PROXY", false),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		MongoURI:            getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/diary")),
		MongoDatabase:       getEnv("MONGODB_DATABASE", ""),
		PostgresURI:         getEnv("POSTGRES_URI", "postgres://localhost:5432/diary?sslmode=disable"),
		RedisURI:            getEnv("REDIS_URI", "redis://localhost:6379/0"),
		LocalStore:          localStore,
		BackupEnabled:       getBool("BACKUP_ENABLED", false),
		RemoteRecentLimit:   getInt("REMOTE_RECENT_LIMIT", 50),
		RemoteTimeout:       getDuration("REMOTE_TIMEOUT", 5*time.Second),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
	}
}

// hostname strips scheme, path and port from a HOST value.
func hostname(host string) string {
	for _, prefix := range []string{"https://", "http://"} {
		host = strings.TrimPrefix(host, prefix)
	}
	if idx := strings.Index(host, "/"); idx != -1 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return strings.TrimSpace(host)
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// StickerUploadsEnabled reports whether all Cloudinary credentials are present.
func (c *Config) StickerUploadsEnabled() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}
