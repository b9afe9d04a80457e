package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Settings holds everything read from the environment at startup.
type Settings struct {
	AppPort string

	DBDriver string
	DBDSN    string

	CacheBackend         string
	CacheTTL             time.Duration
	CacheSize            int
	CacheJanitorInterval time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PageSize           int
	CountWordsPost     int
	CountCharPostTitle int

	JWTSecret string
	MediaRoot string
	SeedDemo  bool
}

var Cfg Settings

// Init loads .env (if any) and fills Cfg. Missing required values are fatal.
func Init() {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	Cfg = Settings{
		AppPort:              getEnv("APP_PORT", "8000"),
		DBDriver:             getEnv("DB_DRIVER", "mysql"),
		DBDSN:                os.Getenv("DB_DSN"),
		CacheBackend:         getEnv("CACHE_BACKEND", "memory"),
		CacheTTL:             getDuration("CACHE_TTL", 20*time.Second),
		CacheSize:            getInt("CACHE_SIZE", 256),
		CacheJanitorInterval: getDuration("CACHE_JANITOR_INTERVAL", time.Minute),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              getInt("REDIS_DB", 0),
		PageSize:             getInt("PAGE_SIZE", 10),
		CountWordsPost:       getInt("COUNT_WORDS_POST", 30),
		CountCharPostTitle:   getInt("COUNT_CHAR_POST_TITLE", 30),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		MediaRoot:            getEnv("MEDIA_ROOT", "media"),
		SeedDemo:             getBool("SEED_DEMO", false),
	}

	if Cfg.DBDSN == "" {
		Logger.Fatal("DB_DSN is not set")
	}
	if Cfg.CacheBackend == "redis" && Cfg.RedisAddr == "" {
		Logger.Fatal("REDIS_ADDR is not set")
	}
	if Cfg.JWTSecret == "" {
		Logger.Fatal("JWT_SECRET is not set")
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		Logger.Warn("invalid int in environment, using default", zap.String("key", key), zap.String("value", v))
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		Logger.Warn("invalid duration in environment, using default", zap.String("key", key), zap.String("value", v))
		return def
	}
	return d
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
