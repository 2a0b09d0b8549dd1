package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

// DefaultOrigins is the CORS allow-list used when none is configured.
var DefaultOrigins = []string{
	"https://topsurvey.cloudspace-consulting.com",
	"http://localhost:3000",
}

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	AllowedOrigins []string
	LogLevel       slog.Level
	LogFormat      string
}

// LoadDotEnv reads variables from the given .env files into the process
// environment. Missing files are ignored and existing variables are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var origins, level string

	fs := flag.NewFlagSet("survey-api", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&origins, "origins", "", "Comma separated CORS origins")
	fs.StringVar(&level, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 80
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	assembled := false
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = postgresURLFromEnv()
		assembled = cfg.DatabaseURL != ""
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d, DATABASE_URL or DB_HOST)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = guessDatabaseType(cfg.DatabaseURL, assembled)
	}
	if cfg.DatabaseType != DatabasePostgres && cfg.DatabaseType != DatabaseSQLite {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if origins == "" {
		origins = os.Getenv("CORS_ORIGINS")
	}
	cfg.AllowedOrigins = splitList(origins)
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = append([]string(nil), DefaultOrigins...)
	}

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", level)
		}
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}

	return cfg, nil
}

// postgresURLFromEnv builds a connection string from the DB_* variables
// used by the container deployment. Empty when DB_HOST is unset.
func postgresURLFromEnv() string {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	port := envOr("DB_PORT", "5432")
	name := envOr("DB_NAME", "surveys")

	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD")),
		Host:   host + ":" + port,
		Path:   "/" + name,
	}
	return u.String()
}

func guessDatabaseType(dsn string, assembled bool) string {
	if assembled || strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DatabasePostgres
	}
	return DatabaseSQLite
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
