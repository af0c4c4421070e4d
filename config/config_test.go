package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 15*time.Minute, cfg.Import.BatchTTL)
	assert.Equal(t, int64(10<<20), cfg.Import.MaxFileSize)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", ":9090")
	t.Setenv("IMPORT_BATCH_TTL_MINUTES", "30")
	t.Setenv("IMPORT_MAX_FILE_MB", "5")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	cfg := LoadEnv()

	assert.Equal(t, ":9090", cfg.Server.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.Import.BatchTTL)
	assert.Equal(t, int64(5<<20), cfg.Import.MaxFileSize)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}

func TestLoadEnvIgnoresUnparsableInt(t *testing.T) {
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "not-a-number")

	cfg := LoadEnv()
	assert.Equal(t, 10, cfg.Postgres.MaxOpenConns)
}
