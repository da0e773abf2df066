package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	RedisAddr       string
	RateLimitPerMin int
	RabbitURL       string
	Prod            bool
}

func Load() Config {
	return Config{
		Port:            getenv("APP_PORT", "8080"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "posts_db"),
		JWTSecret:       getenv("JWT", "default_secret_key"),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "60")),
		RabbitURL:       getenv("RABBIT_URL", ""),
		Prod:            getenv("APP_ENV", "dev") == "prod",
	}
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
