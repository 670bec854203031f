package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	LogLevel        zerolog.Level
	OpenAIAPIKey    string
	AIModel         string
	AIBaseURL       string
	AIMaxTokens     int
	AITemperature   float32
	MockLatency     bool
	SeedDemoData    bool
	IncrementalSync bool
	AssistantRate   int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// AssistantEnabled reports whether a text generation credential is present.
func (c Config) AssistantEnabled() bool {
	return strings.TrimSpace(c.OpenAIAPIKey) != ""
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EDUDOCS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("openai_api_key", "EDUDOCS_OPENAI_API_KEY", "OPENAI_API_KEY")

	v.SetDefault("app.name", "EduDocs API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.max_tokens", 512)
	v.SetDefault("ai.temperature", 0.3)
	v.SetDefault("mock.latency", true)
	v.SetDefault("mock.seed", true)
	v.SetDefault("session.incremental_sync", false)
	v.SetDefault("assistant.rate_per_minute", 10)

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("log.level")))
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}

	temperature := v.GetFloat64("ai.temperature")
	if temperature < 0 || temperature > 2 {
		return Config{}, fmt.Errorf("ai temperature must be between 0 and 2, got %v", temperature)
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		LogLevel:        level,
		OpenAIAPIKey:    v.GetString("openai_api_key"),
		AIModel:         v.GetString("ai.model"),
		AIBaseURL:       v.GetString("ai.base_url"),
		AIMaxTokens:     v.GetInt("ai.max_tokens"),
		AITemperature:   float32(temperature),
		MockLatency:     v.GetBool("mock.latency"),
		SeedDemoData:    v.GetBool("mock.seed"),
		IncrementalSync: v.GetBool("session.incremental_sync"),
		AssistantRate:   v.GetInt("assistant.rate_per_minute"),
	}

	if cfg.AIMaxTokens <= 0 {
		cfg.AIMaxTokens = 512
	}
	if cfg.AssistantRate <= 0 {
		cfg.AssistantRate = 10
	}

	return cfg, nil
}
