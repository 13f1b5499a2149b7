package config

import (
	"errors"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `env:"APP_ENV" env-default:"development"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	Addr     string `env:"LISTEN_ADDR" env-default:":8000"`

	StorageBackend string `env:"STORAGE_BACKEND" env-default:"file"`
	PostgresDSN    string `env:"POSTGRES_DSN"`
	DataDir        string `env:"DATA_DIR" env-default:"data"`

	JWTSecret      string        `env:"JWT_SECRET" env-default:"dev-only-secret-change-me"`
	JWTIssuer      string        `env:"JWT_ISSUER" env-default:"vibetrack"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"30m"`

	GroqAPIKey string `env:"GROQ_API_KEY"`
	GroqModel  string `env:"GROQ_MODEL" env-default:"mixtral-8x7b-32768"`
	GroqURL    string `env:"GROQ_URL" env-default:"https://api.groq.com/openai/v1/chat/completions"`

	ElevenLabsAPIKey string `env:"ELEVENLABS_API_KEY"`
	ElevenLabsURL    string `env:"ELEVENLABS_URL" env-default:"https://api.elevenlabs.io"`
	VoiceAgentID     string `env:"VOICE_AGENT_ID" env-default:"fznwkKVgHrHX2VrqsPr4"`

	// Categories is the closed set every aggregation bucket is keyed by.
	// Palette colors are assigned by position.
	Categories       []string `env:"CATEGORIES" env-default:"Work,Health,Learning,Personal,Creative,Social"`
	Palette          []string `env:"CATEGORY_COLORS" env-default:"#FF6B6B,#4ECDC4,#45B7D1,#96CEB4,#FFEEAD,#D4A5A5"`
	DefaultCategory  string   `env:"DEFAULT_CATEGORY" env-default:"Personal"`
	SuggestionsLimit int      `env:"SUGGESTIONS_LIMIT" env-default:"5"`
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			panic("Invalid config: " + err.Error())
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.StorageBackend != "file" && c.StorageBackend != "postgres" {
		return errors.New("STORAGE_BACKEND must be one of: file, postgres")
	}
	if c.StorageBackend == "postgres" && c.PostgresDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.StorageBackend == "file" && c.DataDir == "" {
		return errors.New("File storage requires DATA_DIR to be set")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if len(c.Categories) == 0 {
		return errors.New("CATEGORIES must not be empty")
	}
	if len(c.Palette) < len(c.Categories) {
		return errors.New("CATEGORY_COLORS must provide a color per category")
	}
	if !contains(c.Categories, c.DefaultCategory) {
		return errors.New("DEFAULT_CATEGORY must be one of CATEGORIES")
	}
	if c.Env == "production" && c.JWTSecret == "dev-only-secret-change-me" {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
