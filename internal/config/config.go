package config

import (
	"time"

	"github.com/caarlos0/env/v8"
)

type Server struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"`
}

type Mongo struct {
	// Empty URI means the server runs on the in-memory store.
	URI    string `env:"MONGODB_URI"`
	DBName string `env:"DB_NAME" envDefault:"echofeed"`
}

type AI struct {
	// Empty API key disables enrichment entirely.
	ApiKey       string        `env:"AI_API_KEY"`
	ApiUrl       string        `env:"AI_API_URL" envDefault:"https://api.openai.com/v1/chat/completions"`
	Model        string        `env:"AI_MODEL" envDefault:"gpt-4o-mini"`
	MaxAttempts  int           `env:"AI_MAX_ATTEMPTS" envDefault:"3"`
	InitialDelay time.Duration `env:"AI_RETRY_DELAY" envDefault:"1s"`
}

type Notify struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	FromEmail    string `env:"FROM_EMAIL"`
	NotifyEmail  string `env:"NOTIFY_EMAIL"`
}

type Sentry struct {
	DSN string `env:"SENTRY_DSN"`
}

type Config struct {
	Server
	Mongo
	AI
	Notify
	Sentry
}

func Load() (Config, error) {
	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
