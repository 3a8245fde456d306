package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_NAME", "DB_MIGRATE", "MAX_BODY_BYTES"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "schools_db", cfg.DBName)
	assert.True(t, cfg.DBMigrate)
	assert.Equal(t, int64(8<<20), cfg.MaxBodyBytes)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("MAX_BODY_BYTES", "not-a-number")
	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.False(t, cfg.DBMigrate)
	assert.Equal(t, int64(8<<20), cfg.MaxBodyBytes)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBDriver:   "mysql",
		DBHost:     "db.local",
		DBPort:     "3307",
		DBUser:     "app",
		DBPassword: "secret",
		DBName:     "schools_db",
	}
	dsn := cfg.DSN()
	assert.Contains(t, dsn, "app:secret@tcp(db.local:3307)/schools_db")
	assert.Contains(t, dsn, "parseTime=true")

	cfg.DBDriver = "sqlite3"
	cfg.DBPath = "/tmp/schools.db"
	assert.Equal(t, "/tmp/schools.db", cfg.DSN())
}
