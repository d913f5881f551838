package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	AI       AIConfig
	Feedback FeedbackConfig
	Log      LogConfig
	Import   ImportConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type JWTConfig struct {
	Secret   string
	Audience string
}

type AIConfig struct {
	GeminiAPIKey   string
	Model          string
	EmbeddingModel string
	MaxLogLength   int
}

type FeedbackConfig struct {
	Workers       int
	QueueSize     int
	RatePerSecond int
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type ImportConfig struct {
	Headless       bool
	UnidocLicense  string
	MaxUploadBytes int64
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment. When CONFIG_FILE points at a
// yaml/toml/json file its values are used as the lowest-priority layer.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	setDefaults(v)

	if file := strings.TrimSpace(v.GetString("CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_POOL_MAX_CONNS", 10)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_EMBEDDING_MODEL", "text-embedding-004")
	v.SetDefault("AI_MAX_LOG_LENGTH", 200)
	v.SetDefault("FEEDBACK_WORKERS", 2)
	v.SetDefault("FEEDBACK_QUEUE_SIZE", 64)
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
	}

	cfg.JWT = JWTConfig{
		Secret:   req("JWT_SECRET"),
		Audience: opt("JWT_AUDIENCE"),
	}

	cfg.AI = AIConfig{
		GeminiAPIKey:   opt("GEMINI_API_KEY"),
		Model:          opt("GEMINI_MODEL"),
		EmbeddingModel: opt("GEMINI_EMBEDDING_MODEL"),
		MaxLogLength:   v.GetInt("AI_MAX_LOG_LENGTH"),
	}

	cfg.Feedback = FeedbackConfig{
		Workers:   v.GetInt("FEEDBACK_WORKERS"),
		QueueSize: v.GetInt("FEEDBACK_QUEUE_SIZE"),

		RatePerSecond: v.GetInt("FEEDBACK_RATE_PER_SECOND"),
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	cfg.Import = ImportConfig{
		Headless:       v.GetBool("JD_FETCH_HEADLESS"),
		UnidocLicense:  opt("UNIDOC_LICENSE_API_KEY"),
		MaxUploadBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}
