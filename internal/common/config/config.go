package config

import (
	"os"
	"strconv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	ContentDir   string
	DataDir      string
	StaticDir    string
	TemplatesDir string

	ScenarioDBPath string
	BroadcasterURL string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "5000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		ContentDir:   getEnv("CONTENT_DIR", "content"),
		DataDir:      getEnv("DATA_DIR", "data"),
		StaticDir:    getEnv("STATIC_DIR", "static"),
		TemplatesDir: getEnv("TEMPLATES_DIR", "templates"),

		ScenarioDBPath: getEnv("SCENARIO_DB_PATH", "data/db/scenarios.db"),
		BroadcasterURL: getEnv("BROADCASTER_URL", "http://localhost:5050"),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
