package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jaekwang-park/todo-chat-api/internal/llm"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

type Config struct {
	ServerPort  string
	AppEnv      string
	AuthDevMode bool
	LogLevel    string
	// JWTSecret verifies HS256 bearer tokens minted by the web frontend.
	JWTSecret string
	DB        DBConfig
	LLM       LLMConfig
	Cognito   CognitoConfig
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks everything needed to serve. The migrate command only
// needs DB.Validate.
func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if c.AuthDevMode && c.AppEnv != "local" {
		return fmt.Errorf("AUTH_DEV_MODE must not be enabled in %s environment", c.AppEnv)
	}
	if !c.AuthDevMode && c.JWTSecret == "" && !c.Cognito.Enabled() {
		return fmt.Errorf("AUTH_JWT_SECRET or COGNITO_USER_POOL_ID and COGNITO_APP_CLIENT_ID are required when AUTH_DEV_MODE is disabled")
	}
	if c.Cognito.UserPoolID != "" && c.Cognito.AppClientID == "" {
		return fmt.Errorf("COGNITO_APP_CLIENT_ID is required when COGNITO_USER_POOL_ID is set")
	}
	if err := c.DB.Validate(); err != nil {
		return err
	}
	return c.LLM.Validate()
}

type DBConfig struct {
	Driver string
	// URL, when set, is used verbatim for postgres instead of the parts below.
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// Path is the database file for the sqlite driver.
	Path string
}

func (d DBConfig) Validate() error {
	switch d.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid DB_DRIVER %q: must be postgres or sqlite", d.Driver)
	}
	if d.Driver == "sqlite" && d.Path == "" {
		return fmt.Errorf("DB_PATH is required for the sqlite driver")
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (d DBConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	if d.URL != "" {
		return d.URL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

func (l LLMConfig) Validate() error {
	if l.APIKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY is required")
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

type CognitoConfig struct {
	Region          string
	UserPoolID      string
	AppClientID     string
	AppClientSecret string
}

// Enabled reports whether a user pool is configured for sign-in and RS256 tokens.
func (c CognitoConfig) Enabled() bool {
	return c.UserPoolID != "" && c.AppClientID != ""
}

func Load() Config {
	return Config{
		ServerPort:  envOrDefault("SERVER_PORT", "8080"),
		AppEnv:      envOrDefault("APP_ENV", "local"),
		AuthDevMode: strings.EqualFold(envOrDefault("AUTH_DEV_MODE", "false"), "true"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		JWTSecret:   envOrDefault("AUTH_JWT_SECRET", os.Getenv("BETTER_AUTH_SECRET")),
		DB: DBConfig{
			Driver:   envOrDefault("DB_DRIVER", "postgres"),
			URL:      os.Getenv("DATABASE_URL"),
			Host:     envOrDefault("DB_HOST", "localhost"),
			Port:     envOrDefault("DB_PORT", "5432"),
			User:     envOrDefault("DB_USER", "todo"),
			Password: envOrDefault("DB_PASSWORD", "todo"),
			Name:     envOrDefault("DB_NAME", "todo"),
			SSLMode:  envOrDefault("DB_SSLMODE", "disable"),
			Path:     envOrDefault("DB_PATH", "todo.db"),
		},
		LLM: LLMConfig{
			APIKey:  os.Getenv("OPENROUTER_API_KEY"),
			BaseURL: envOrDefault("OPENROUTER_BASE_URL", llm.DefaultBaseURL),
			Model:   envOrDefault("LLM_MODEL", llm.DefaultModel),
			Timeout: time.Duration(envIntOrDefault("LLM_TIMEOUT_SECONDS", int(llm.DefaultTimeout/time.Second))) * time.Second,
		},
		Cognito: CognitoConfig{
			Region:          envOrDefault("COGNITO_REGION", "ap-northeast-1"),
			UserPoolID:      os.Getenv("COGNITO_USER_POOL_ID"),
			AppClientID:     os.Getenv("COGNITO_APP_CLIENT_ID"),
			AppClientSecret: os.Getenv("COGNITO_APP_CLIENT_SECRET"),
		},
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// envIntOrDefault falls back on unparsable values as well as unset ones; a
// negative number is kept so Validate can reject it.
func envIntOrDefault(key string, defaultVal int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return v
}
