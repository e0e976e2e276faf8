package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvIntDefault(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, EnvIntDefault("SOME_INT", 1))

	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 1, EnvIntDefault("SOME_INT", 1))

	assert.Equal(t, 7, EnvIntDefault("MISSING_INT_KEY", 7))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_EXPIRATION_MS", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_DRIVER", "")

	cfg := Load()
	require.NotNil(t, cfg)
	assert.Equal(t, []byte("secret"), cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "yoga_events", cfg.KafkaTopic)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "yoga", DBPassword: "pw", DBName: "studio"}
	assert.Equal(t, "postgres://yoga:pw@db:5432/studio?sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", cfg.DSN())

	assert.Equal(t, "", (&Config{}).DSN())
}

func TestEnvBool(t *testing.T) {
	t.Setenv("SEED_DEMO_DATA", "true")
	assert.True(t, EnvBool("SEED_DEMO_DATA", false))

	t.Setenv("SEED_DEMO_DATA", "maybe")
	assert.False(t, EnvBool("SEED_DEMO_DATA", false))
}
