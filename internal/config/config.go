package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
// URL, when set, is used verbatim and the discrete fields are ignored.
type DatabaseConfig struct {
	URL                string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// UploadConfig selects where the relay service keeps uploaded resumes.
// Backend is "local" (Dir on disk) or "minio".
type UploadConfig struct {
	Backend  string
	Dir      string
	MaxBytes int64
}

// GeminiConfig holds settings for the generative model used by the structurer.
type GeminiConfig struct {
	APIKey     string
	Model      string
	TimeoutSec int
}

// WebhookConfig points at the external workflow-automation webhook.
type WebhookConfig struct {
	URL        string
	TimeoutSec int
}

// NotifyConfig carries values added to every analysis notification.
type NotifyConfig struct {
	DefaultIdentity string
	RapidAPIKey     string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	JSON  bool
	Debug bool
}

// AppConfig is the centralized configuration struct shared by both services.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	MCPPort     string
	BackendPort string
	Database    DatabaseConfig
	MinIO       MinIOConfig
	Upload      UploadConfig
	Gemini      GeminiConfig
	Webhook     WebhookConfig
	Notify      NotifyConfig
	Log         LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		MCPPort:     getEnv("MCP_PORT", "8000"),
		BackendPort: getEnv("BACKEND_PORT", "8001"),
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Upload: UploadConfig{
			Backend:  getEnv("UPLOAD_BACKEND", "local"),
			Dir:      getEnv("UPLOAD_DIR", "uploads"),
			MaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 15<<20)),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GOOGLE_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			TimeoutSec: getEnvInt("LLM_TIMEOUT_SEC", 60),
		},
		Webhook: WebhookConfig{
			URL:        getEnv("N8N_WEBHOOK_URL", ""),
			TimeoutSec: getEnvInt("WEBHOOK_TIMEOUT_SEC", 15),
		},
		Notify: NotifyConfig{
			DefaultIdentity: getEnv("NOTIFY_DEFAULT_IDENTITY", "user@example.com"),
			RapidAPIKey:     getEnv("RAPIDAPI_KEY", ""),
		},
		Log: LogConfig{
			JSON:  getEnvBool("LOG_JSON", true),
			Debug: getEnvBool("LOG_DEBUG", false),
		},
	}
}

// Timeout converts a seconds setting into a duration.
func Timeout(sec int) time.Duration {
	if sec <= 0 {
		return 0
	}
	return time.Duration(sec) * time.Second
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
