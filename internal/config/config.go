package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/SAP-F-2025/nova-scholar-service/internal/identity"
)

const (
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMemory    = "memory"

	AuthFirebase = "firebase"
	AuthCasdoor  = "casdoor"
	AuthStatic   = "static"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	Store StoreConfig
	Auth  AuthConfig

	// Casdoor is used when Auth.Provider is "casdoor"
	Casdoor identity.CasdoorConfig

	AI    AIConfig
	Kafka KafkaConfig

	RedisURL string

	CORSOrigins []string
	// StrictStatus maps application errors to HTTP status codes instead of
	// the always-200 error envelope
	StrictStatus bool
	// DemoDelay is the simulated processing time of the OSI demo answer
	DemoDelay time.Duration
}

type StoreConfig struct {
	Backend         string
	ProjectID       string
	CredentialsFile string
	PostgresDSN     string
}

type AuthConfig struct {
	Provider            string
	EnforceTeacherScope bool
	// StaticTokens are "token:uid:email" entries for AUTH_PROVIDER=static
	StaticTokens []string
}

type AIConfig struct {
	APIKey          string
	Model           string
	Timeout         time.Duration
	RateLimit       int
	RateLimitWindow time.Duration
}

type KafkaConfig struct {
	Brokers     []string
	TopicPrefix string
}

// LoadConfig reads .env (when present) and the environment
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("STORE_BACKEND", StoreFirestore)
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "")
	v.SetDefault("DATABASE_URL", "")

	v.SetDefault("AUTH_PROVIDER", AuthFirebase)
	v.SetDefault("AUTH_ENFORCE_TEACHER_SCOPE", false)
	v.SetDefault("AUTH_STATIC_TOKENS", "")

	v.SetDefault("CASDOOR_ENDPOINT", "")
	v.SetDefault("CASDOOR_CLIENT_ID", "")
	v.SetDefault("CASDOOR_CLIENT_SECRET", "")
	v.SetDefault("CASDOOR_CERT", "")
	v.SetDefault("CASDOOR_ORGANIZATION", "")
	v.SetDefault("CASDOOR_APPLICATION", "")

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("AI_TIMEOUT", 20*time.Second)
	v.SetDefault("AI_RATE_LIMIT", 30)
	v.SetDefault("AI_RATE_WINDOW", time.Minute)

	v.SetDefault("REDIS_URL", "")

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC_PREFIX", "nova-scholar")

	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("HTTP_STRICT_STATUS", false)
	v.SetDefault("DEMO_DELAY", time.Duration(0))
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENVIRONMENT"),
		Store: StoreConfig{
			Backend:         strings.ToLower(v.GetString("STORE_BACKEND")),
			ProjectID:       v.GetString("FIREBASE_PROJECT_ID"),
			CredentialsFile: v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
			PostgresDSN:     v.GetString("DATABASE_URL"),
		},
		Auth: AuthConfig{
			Provider:            strings.ToLower(v.GetString("AUTH_PROVIDER")),
			EnforceTeacherScope: v.GetBool("AUTH_ENFORCE_TEACHER_SCOPE"),
			StaticTokens:        splitList(v.GetString("AUTH_STATIC_TOKENS")),
		},
		Casdoor: identity.CasdoorConfig{
			Endpoint:     v.GetString("CASDOOR_ENDPOINT"),
			ClientID:     v.GetString("CASDOOR_CLIENT_ID"),
			ClientSecret: v.GetString("CASDOOR_CLIENT_SECRET"),
			Cert:         v.GetString("CASDOOR_CERT"),
			Organization: v.GetString("CASDOOR_ORGANIZATION"),
			Application:  v.GetString("CASDOOR_APPLICATION"),
		},
		AI: AIConfig{
			APIKey:          v.GetString("GEMINI_API_KEY"),
			Model:           v.GetString("GEMINI_MODEL"),
			Timeout:         v.GetDuration("AI_TIMEOUT"),
			RateLimit:       v.GetInt("AI_RATE_LIMIT"),
			RateLimitWindow: v.GetDuration("AI_RATE_WINDOW"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(v.GetString("KAFKA_BROKERS")),
			TopicPrefix: v.GetString("KAFKA_TOPIC_PREFIX"),
		},
		RedisURL:     v.GetString("REDIS_URL"),
		CORSOrigins:  splitList(v.GetString("CORS_ORIGINS")),
		StrictStatus: v.GetBool("HTTP_STRICT_STATUS"),
		DemoDelay:    v.GetDuration("DEMO_DELAY"),
	}

	level, err := parseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the combinations that would fail at startup anyway
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreFirestore:
		if c.Store.ProjectID == "" && c.Store.CredentialsFile == "" {
			return fmt.Errorf("firestore backend needs FIREBASE_PROJECT_ID or GOOGLE_APPLICATION_CREDENTIALS")
		}
	case StorePostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("postgres backend needs DATABASE_URL")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	switch c.Auth.Provider {
	case AuthFirebase, AuthStatic:
	case AuthCasdoor:
		if c.Casdoor.Endpoint == "" || c.Casdoor.Cert == "" {
			return fmt.Errorf("casdoor provider needs CASDOOR_ENDPOINT and CASDOOR_CERT")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.Auth.Provider)
	}

	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
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
