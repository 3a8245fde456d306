package config

import (
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

type Config struct {
	AppPort      string
	MaxBodyBytes int64

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string
	DBMigrate  bool

	LogLevel  string
	LogFormat string
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getBool(k string, def bool) bool {
	b, err := strconv.ParseBool(get(k, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return b
}

func getInt64(k string, def int64) int64 {
	n, err := strconv.ParseInt(get(k, ""), 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func Load() *Config {
	return &Config{
		AppPort:      get("APP_PORT", "8000"),
		MaxBodyBytes: getInt64("MAX_BODY_BYTES", 8<<20),

		DBDriver:   get("DB_DRIVER", "mysql"),
		DBHost:     get("DB_HOST", "127.0.0.1"),
		DBPort:     get("DB_PORT", "3306"),
		DBUser:     get("DB_USER", "root"),
		DBPassword: get("DB_PASSWORD", ""),
		DBName:     get("DB_NAME", "schools_db"),
		DBPath:     get("DB_PATH", "schools.db"),
		DBMigrate:  getBool("DB_MIGRATE", true),

		LogLevel:  get("LOG_LEVEL", "info"),
		LogFormat: get("LOG_FORMAT", "text"),
	}
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite3" {
		return c.DBPath
	}
	mc := mysql.NewConfig()
	mc.User = c.DBUser
	mc.Passwd = c.DBPassword
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.DBHost, c.DBPort)
	mc.DBName = c.DBName
	mc.ParseTime = true
	mc.Timeout = 10 * time.Second
	return mc.FormatDSN()
}

func (c *Config) Addr() string {
	return ":" + c.AppPort
}
