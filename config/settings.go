package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// SettingsError names the environment variable holding a bad value.
type SettingsError struct {
	Var     string
	Message string
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("settings error: %s - %s", e.Var, e.Message)
}

// Settings are the process-level knobs, read from the environment.
type Settings struct {
	Port           int
	DBPath         string
	PolicyPath     string
	LogLevel       string
	Env            string // "development" or "production"
	Workers        int
	AllowedOrigins []string
}

// Environment variable names.
const (
	EnvPort           = "SHIFTPAY_PORT"
	EnvDB             = "SHIFTPAY_DB"
	EnvPolicy         = "SHIFTPAY_POLICY"
	EnvLogLevel       = "SHIFTPAY_LOG_LEVEL"
	EnvEnv            = "SHIFTPAY_ENV"
	EnvWorkers        = "SHIFTPAY_WORKERS"
	EnvAllowedOrigins = "SHIFTPAY_ALLOWED_ORIGINS"
)

// DefaultSettings is what an empty environment produces.
func DefaultSettings() Settings {
	return Settings{
		Port:           8080,
		DBPath:         "./data/shifts.db",
		PolicyPath:     "./policy.yaml",
		LogLevel:       "info",
		Env:            "development",
		Workers:        4,
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
	}
}

// LoadSettings loads .env files into the environment (without overriding
// variables already set) and reads the settings. With no files given it
// tries ./.env; a missing file is not an error.
func LoadSettings(envFiles ...string) (Settings, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, err
	}
	return SettingsFromEnv()
}

// SettingsFromEnv reads the settings from the current environment.
func SettingsFromEnv() (Settings, error) {
	s := DefaultSettings()
	var err error

	if s.Port, err = getEnvInt(EnvPort, s.Port); err != nil {
		return Settings{}, err
	}
	if s.Workers, err = getEnvInt(EnvWorkers, s.Workers); err != nil {
		return Settings{}, err
	}
	s.DBPath = getEnvString(EnvDB, s.DBPath)
	s.PolicyPath = getEnvString(EnvPolicy, s.PolicyPath)
	s.LogLevel = getEnvString(EnvLogLevel, s.LogLevel)
	s.Env = getEnvString(EnvEnv, s.Env)
	if v := os.Getenv(EnvAllowedOrigins); v != "" {
		s.AllowedOrigins = splitList(v)
	}

	return s, s.Validate()
}

// Validate checks the settings for values the server cannot start with.
func (s Settings) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return &SettingsError{Var: EnvPort, Message: "port must be 1-65535"}
	}
	if s.Workers < 1 {
		return &SettingsError{Var: EnvWorkers, Message: "need at least one worker"}
	}
	if s.DBPath == "" {
		return &SettingsError{Var: EnvDB, Message: "database path is required"}
	}
	switch s.Env {
	case "development", "production":
	default:
		return &SettingsError{Var: EnvEnv, Message: "must be development or production"}
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &SettingsError{Var: key, Message: "must be an integer"}
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
