package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries every environment-driven setting. Credentials stay out of
// flags on purpose; they arrive via the environment or a local .env file.
type Config struct {
	// Game data provider
	RawgAPIKey string
	RawgURL    string // override for tests; empty selects the real API

	// Model providers. Provider selects which one to use: openai,
	// openrouter, gemini, or auto (first one with a key, scripted echo as
	// the last resort).
	Provider string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterReferer string
	OpenRouterApp     string

	GeminiAPIKey string
	GeminiModel  string

	// Mediator
	MaxAgentRounds int
	ToolTimeout    time.Duration

	// HTTP chat surface
	ServerPort int
}

// Load reads .env (when present) and the environment. A .env value wins
// over the inherited environment so local credential edits take effect
// without restarting the shell.
func Load() *Config {
	_ = godotenv.Overload()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("NERDBOT_PROVIDER", "auto")
	v.SetDefault("MAX_AGENT_ROUNDS", 6)
	v.SetDefault("TOOL_TIMEOUT_SECONDS", 30)
	v.SetDefault("SERVER_PORT", 8080)

	return &Config{
		RawgAPIKey: v.GetString("RAWG_API_KEY"),
		RawgURL:    v.GetString("RAWG_BASE_URL"),

		Provider: v.GetString("NERDBOT_PROVIDER"),

		OpenAIAPIKey:  v.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),
		OpenAIModel:   v.GetString("OPENAI_MODEL"),

		OpenRouterAPIKey:  v.GetString("OPENROUTER_API_KEY"),
		OpenRouterModel:   v.GetString("OPENROUTER_MODEL"),
		OpenRouterReferer: v.GetString("OPENROUTER_REFERER"),
		OpenRouterApp:     v.GetString("OPENROUTER_APP_NAME"),

		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
		GeminiModel:  v.GetString("GEMINI_MODEL"),

		MaxAgentRounds: v.GetInt("MAX_AGENT_ROUNDS"),
		ToolTimeout:    time.Duration(v.GetInt("TOOL_TIMEOUT_SECONDS")) * time.Second,

		ServerPort: v.GetInt("SERVER_PORT"),
	}
}
