package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config is loaded once at startup and passed down explicitly.
type Config struct {
	ServerPort         string
	CORSAllowedOrigins []string
	JWTSecret          []byte
	JWTTTL             time.Duration
	BcryptCost         int
	StoreDriver        string
	Database           Database
	Firebase           Firebase
	Log                Log
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the lib/pq key=value connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type Firebase struct {
	CredentialsPath string
	ProjectID       string
}

// Enabled reports whether activity history should be written to Firestore.
func (f Firebase) Enabled() bool {
	return f.CredentialsPath != ""
}

type Log struct {
	Level string
	File  string
}

// Load reads .env (when present) and then the process environment.
// The returned bool reports whether a .env file was found.
func Load() (Config, bool, error) {
	dotenv := godotenv.Load() == nil
	cfg, err := FromEnv(os.Getenv)
	return cfg, dotenv, err
}

// FromEnv builds a Config from a lookup function so tests can supply their own.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		ServerPort:  get("SERVER_PORT", "3000"),
		StoreDriver: get("STORE_DRIVER", StoreDriverPostgres),
		Database: Database{
			Host:     get("DB_HOST", "localhost"),
			Port:     get("DB_PORT", "5432"),
			User:     get("DB_USER", "postgres"),
			Password: getenv("DB_PASSWORD"),
			Name:     get("DB_NAME", "taskboard"),
			SSLMode:  get("DB_SSLMODE", "disable"),
		},
		Firebase: Firebase{
			CredentialsPath: get("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       get("FIREBASE_PROJECT_ID", ""),
		},
		Log: Log{
			Level: get("LOG_LEVEL", "info"),
			File:  get("LOG_FILE", ""),
		},
	}

	for _, origin := range strings.Split(get("CORS_ALLOWED_ORIGINS", "http://localhost:5000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	secret := getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET is not set")
	}
	cfg.JWTSecret = []byte(secret)

	ttl, err := time.ParseDuration(get("JWT_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, errors.New("JWT_TTL must be positive")
	}
	cfg.JWTTTL = ttl

	cost, err := strconv.Atoi(get("BCRYPT_COST", "10"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	cfg.BcryptCost = cost

	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}
