package config_test

import (
	"testing"

	"mwfilter/internal/config"

	"github.com/stretchr/testify/assert"
)

// These tests mutate the environment and therefore do not run in parallel.

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"MWFILTER_DATABASE_URL",
		"MWFILTER_WORKER_COUNT",
		"MWFILTER_SOURCE_ENCODING",
		"MWFILTER_TARGET_ENCODING",
		"MWFILTER_BOOK_EXTENSIONS",
		"MWFILTER_SCRIPT_EXTENSIONS",
		"MWFILTER_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := config.FromEnv()

	assert.Equal(t, &config.Config{
		DatabaseURL:      "",
		WorkerCount:      4,
		SourceEncoding:   "utf-8",
		TargetEncoding:   "utf-8",
		BookExtensions:   []string{".mwbook"},
		ScriptExtensions: []string{".mwscript"},
		LogLevel:         "info",
	}, cfg)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("MWFILTER_DATABASE_URL", "postgres://tm:5432/omegat")
	t.Setenv("MWFILTER_WORKER_COUNT", "12")
	t.Setenv("MWFILTER_SOURCE_ENCODING", "windows-1252")
	t.Setenv("MWFILTER_TARGET_ENCODING", "windows-1251")
	t.Setenv("MWFILTER_BOOK_EXTENSIONS", ".mwbook, .book,,")
	t.Setenv("MWFILTER_SCRIPT_EXTENSIONS", ".mwscript,.mws")
	t.Setenv("MWFILTER_LOG_LEVEL", "debug")

	cfg := config.FromEnv()

	assert.Equal(t, "postgres://tm:5432/omegat", cfg.DatabaseURL)
	assert.Equal(t, 12, cfg.WorkerCount)
	assert.Equal(t, "windows-1252", cfg.SourceEncoding)
	assert.Equal(t, "windows-1251", cfg.TargetEncoding)
	assert.Equal(t, []string{".mwbook", ".book"}, cfg.BookExtensions)
	assert.Equal(t, []string{".mwscript", ".mws"}, cfg.ScriptExtensions)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnv_InvalidWorkerCount(t *testing.T) {
	t.Setenv("MWFILTER_WORKER_COUNT", "many")

	assert.Equal(t, 4, config.FromEnv().WorkerCount)
}
