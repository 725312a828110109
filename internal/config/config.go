package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DatabaseURL      string
	WorkerCount      int
	SourceEncoding   string
	TargetEncoding   string
	BookExtensions   []string
	ScriptExtensions []string
	LogLevel         string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		DatabaseURL:      getEnv("MWFILTER_DATABASE_URL", ""),
		WorkerCount:      getEnvInt("MWFILTER_WORKER_COUNT", 4),
		SourceEncoding:   getEnv("MWFILTER_SOURCE_ENCODING", "utf-8"),
		TargetEncoding:   getEnv("MWFILTER_TARGET_ENCODING", "utf-8"),
		BookExtensions:   getEnvList("MWFILTER_BOOK_EXTENSIONS", ".mwbook"),
		ScriptExtensions: getEnvList("MWFILTER_SCRIPT_EXTENSIONS", ".mwscript"),
		LogLevel:         getEnv("MWFILTER_LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer, using default")
		return fallback
	}
	return n
}

// getEnvList splits a comma separated value, dropping empty items.
func getEnvList(key, fallback string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, fallback), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
