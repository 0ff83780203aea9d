package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppPort string `mapstructure:"APP_PORT"`

	DBDriver      string `mapstructure:"DB_DRIVER"`
	DBLogLevel    string `mapstructure:"DB_LOG_LEVEL"`
	DBAutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`

	MySQLHost string `mapstructure:"MYSQL_HOST"`
	MySQLPort string `mapstructure:"MYSQL_PORT"`
	MySQLDB   string `mapstructure:"MYSQL_DB"`
	MySQLUser string `mapstructure:"MYSQL_USER"`
	MySQLPass string `mapstructure:"MYSQL_PASS"`

	SQLitePath string `mapstructure:"SQLITE_PATH"`

	RedisAddr string `mapstructure:"REDIS_ADDR"`
	RedisDB   int    `mapstructure:"REDIS_DB"`

	IdempTTLSecs      int `mapstructure:"IDEMPOTENCY_TTL_SECONDS"`
	StatsCacheTTLSecs int `mapstructure:"STATS_CACHE_TTL_SECONDS"`

	JWTSecret     string `mapstructure:"JWT_SECRET"`
	JWTTTLMinutes int    `mapstructure:"JWT_TTL_MINUTES"`

	AMQPURL        string `mapstructure:"AMQP_URL"`
	EventsExchange string `mapstructure:"EVENTS_EXCHANGE"`

	ReminderSchedule   string `mapstructure:"REMINDER_SCHEDULE"`
	ReminderWindowDays int    `mapstructure:"REMINDER_WINDOW_DAYS"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var keys = []string{
	"APP_PORT",
	"DB_DRIVER", "DB_LOG_LEVEL", "DB_AUTO_MIGRATE",
	"MYSQL_HOST", "MYSQL_PORT", "MYSQL_DB", "MYSQL_USER", "MYSQL_PASS",
	"SQLITE_PATH",
	"REDIS_ADDR", "REDIS_DB",
	"IDEMPOTENCY_TTL_SECONDS", "STATS_CACHE_TTL_SECONDS",
	"JWT_SECRET", "JWT_TTL_MINUTES",
	"AMQP_URL", "EVENTS_EXCHANGE",
	"REMINDER_SCHEDULE", "REMINDER_WINDOW_DAYS",
	"LOG_LEVEL", "LOG_FORMAT",
}

// Load reads configuration from the environment. Call Validate before use.
func Load() (*Config, error) {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("DB_DRIVER", DriverMySQL)
	viper.SetDefault("DB_LOG_LEVEL", "warn")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("MYSQL_HOST", "mysql")
	viper.SetDefault("MYSQL_PORT", "3306")
	viper.SetDefault("MYSQL_DB", "loanbook")
	viper.SetDefault("MYSQL_USER", "loanbook")
	viper.SetDefault("MYSQL_PASS", "loanbook")
	viper.SetDefault("SQLITE_PATH", "loanbook.db")
	viper.SetDefault("REDIS_ADDR", "redis:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("IDEMPOTENCY_TTL_SECONDS", 300)
	viper.SetDefault("STATS_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("JWT_TTL_MINUTES", 60)
	viper.SetDefault("EVENTS_EXCHANGE", "loanbook.events")
	viper.SetDefault("REMINDER_SCHEDULE", "0 7 * * *") // daily at 07:00
	viper.SetDefault("REMINDER_WINDOW_DAYS", 3)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.AutomaticEnv()

	for _, k := range keys {
		_ = viper.BindEnv(k)
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	return &c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want mysql or sqlite)", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.JWTTTLMinutes <= 0 {
		return errors.New("JWT_TTL_MINUTES must be positive")
	}
	if c.IdempTTLSecs <= 0 || c.StatsCacheTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS and STATS_CACHE_TTL_SECONDS must be positive")
	}
	if c.ReminderWindowDays <= 0 {
		return errors.New("REMINDER_WINDOW_DAYS must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC keeps due dates stable
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) StatsCacheTTL() time.Duration {
	return time.Duration(c.StatsCacheTTLSecs) * time.Second
}

func (c *Config) JWTTTL() time.Duration { return time.Duration(c.JWTTTLMinutes) * time.Minute }

func (c *Config) ReminderWindow() time.Duration {
	return time.Duration(c.ReminderWindowDays) * 24 * time.Hour
}
