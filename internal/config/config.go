package config

import "os"

type Config struct {
	Port        string
	DataFile    string
	RedisURL    string
	LogLevel    string
	Environment string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "4000"),
		DataFile:    getEnv("DB_FILE", "db.json"),
		RedisURL:    getEnv("REDIS_URL", ""), // empty disables the cache layer
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
